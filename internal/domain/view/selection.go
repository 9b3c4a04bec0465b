package view

import (
	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
)

// MaxSelected bounds the comparison selection set.
const MaxSelected = 2

// Selection is the set of history ids chosen for comparison, in selection
// order. Not safe for concurrent use.
type Selection struct {
	ids []string
}

// Toggle flips membership of id. Selecting an already-selected id removes it.
// A third distinct id while the set is full is ignored, not queued or rotated.
// Returns true when the set changed.
func (s *Selection) Toggle(id string) bool {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	if len(s.ids) >= MaxSelected {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

func (s *Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

func (s *Selection) Count() int { return len(s.ids) }

func (s *Selection) Clear() { s.ids = nil }

// CanCompare reports whether exactly two items are selected.
func (s *Selection) CanCompare() bool { return len(s.ids) == MaxSelected }

// Resolve looks both selected ids up in items. ok is false unless exactly two
// items are selected and both ids are found in the source list.
func (s *Selection) Resolve(items []*domain.Result) (a, b *domain.Result, ok bool) {
	if !s.CanCompare() {
		return nil, nil, false
	}
	find := func(id string) *domain.Result {
		for _, it := range items {
			if it.ID == id {
				return it
			}
		}
		return nil
	}
	a, b = find(s.ids[0]), find(s.ids[1])
	if a == nil || b == nil {
		return nil, nil, false
	}
	return a, b, true
}
