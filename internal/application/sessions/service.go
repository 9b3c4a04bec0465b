package sessions

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bryanwahyu/song-critic/internal/application/analyses"
	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
	"github.com/bryanwahyu/song-critic/internal/domain/view"
)

// Service holds the per-session view machine and comparison selection.
// Sessions live in memory only; they are exactly as durable as the original
// browser tab they replace.
type Service struct {
	Analyses *analyses.Service

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	owner     string
	machine   *view.Machine
	selection *view.Selection
}

func NewService(a *analyses.Service) *Service {
	return &Service{Analyses: a, sessions: make(map[string]*session)}
}

// View is a renderable snapshot of one session.
type View struct {
	State      view.State       `json:"state"`
	Error      string           `json:"error,omitempty"`
	Result     *domain.Result   `json:"result,omitempty"`
	Comparison []*domain.Result `json:"comparison,omitempty"`
	Selected   []string         `json:"selected"`
}

// Create opens a session bound to the (possibly empty) owner identity.
func (s *Service) Create(owner string) string {
	id := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{
		owner:     owner,
		machine:   view.NewMachine(),
		selection: &view.Selection{},
	}
	return id
}

func (s *Service) get(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	return st, nil
}

func (s *Service) snapshot(st *session) View {
	v := View{
		State:    st.machine.State(),
		Error:    st.machine.Err(),
		Result:   st.machine.Result(),
		Selected: st.selection.IDs(),
	}
	if a, b := st.machine.Comparison(); a != nil && b != nil {
		v.Comparison = []*domain.Result{a, b}
	}
	if v.Selected == nil {
		v.Selected = []string{}
	}
	return v
}

// Snapshot returns the current view without transitioning.
func (s *Service) Snapshot(sid string) (View, error) {
	st, err := s.get(sid)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(st), nil
}

// Submit runs an analysis for the session. On success the session shows the
// report; on failure it stays on the input view with the message attached.
// The error is also returned so the transport can map a status code.
func (s *Service) Submit(ctx context.Context, sid string, req domain.Request) (View, error) {
	st, err := s.get(sid)
	if err != nil {
		return View{}, err
	}

	// The model call happens outside the lock; only the transition is guarded.
	res, aerr := s.Analyses.Analyze(ctx, st.owner, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	if aerr != nil {
		st.machine.Fail(aerr.Error())
		return s.snapshot(st), aerr
	}
	st.machine.ShowReport(res)
	return s.snapshot(st), nil
}

// ShowExample displays the canned report. No network call is made.
func (s *Service) ShowExample(sid string) (View, error) {
	st, err := s.get(sid)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st.machine.ShowReport(s.Analyses.Example())
	return s.snapshot(st), nil
}

// Reset discards the current report and returns to the input view.
func (s *Service) Reset(sid string) (View, error) {
	st, err := s.get(sid)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st.machine.Reset()
	return s.snapshot(st), nil
}

// Select displays one saved analysis from the owner's history.
func (s *Service) Select(ctx context.Context, sid, analysisID string) (View, error) {
	st, err := s.get(sid)
	if err != nil {
		return View{}, err
	}

	res, gerr := s.Analyses.Get(ctx, st.owner, analysisID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gerr != nil {
		// No transition on a failed lookup; the current view stands.
		return s.snapshot(st), gerr
	}
	st.machine.ShowReport(res)
	return s.snapshot(st), nil
}

// Toggle flips one history id in the comparison selection.
func (s *Service) Toggle(sid, analysisID string) (View, error) {
	st, err := s.get(sid)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st.selection.Toggle(analysisID)
	return s.snapshot(st), nil
}

// Compare resolves the two selected ids against the owner's history and
// enters the comparison view. Requires exactly two selected items; a selected
// id that no longer resolves yields a not-found error and no transition.
func (s *Service) Compare(ctx context.Context, sid string) (View, error) {
	st, err := s.get(sid)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	if !st.selection.CanCompare() {
		defer s.mu.Unlock()
		return s.snapshot(st), fmt.Errorf("%w: select exactly two analyses to compare", domain.ErrInvalidInput)
	}
	s.mu.Unlock()

	items, herr := s.Analyses.History(ctx, st.owner)

	s.mu.Lock()
	defer s.mu.Unlock()
	if herr != nil {
		return s.snapshot(st), herr
	}
	a, b, ok := st.selection.Resolve(items)
	if !ok {
		return s.snapshot(st), fmt.Errorf("%w: a selected analysis is no longer in the history", domain.ErrNotFound)
	}
	st.machine.Compare(a, b)
	return s.snapshot(st), nil
}

// ClearSelection empties the comparison selection.
func (s *Service) ClearSelection(sid string) (View, error) {
	st, err := s.get(sid)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st.selection.Clear()
	return s.snapshot(st), nil
}

// Export renders the report the session is currently showing.
func (s *Service) Export(ctx context.Context, sid, format string) (*analyses.Artifact, error) {
	st, err := s.get(sid)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	res := st.machine.Result()
	owner := st.owner
	s.mu.Unlock()
	if res == nil {
		return nil, fmt.Errorf("%w: no report to export", domain.ErrInvalidInput)
	}
	return s.Analyses.ExportResult(ctx, owner, res, format)
}
