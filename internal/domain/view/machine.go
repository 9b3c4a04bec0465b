package view

import (
	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
)

// State enumerates what the client should render.
type State string

const (
	StateInput      State = "input"
	StateReport     State = "report"
	StateComparison State = "comparison"
)

// Machine decides which view is shown and what it holds. At most one payload
// exists at a time (a single result or a comparison pair); entering a state
// replaces the payload wholesale. Only Input may carry no payload. A failed
// submission keeps the machine on Input with a display-only error attached.
//
// Not safe for concurrent use; callers serialize access.
type Machine struct {
	state   State
	result  *domain.Result
	pairA   *domain.Result
	pairB   *domain.Result
	lastErr string
}

func NewMachine() *Machine {
	return &Machine{state: StateInput}
}

func (m *Machine) State() State { return m.state }

// Result is the single-report payload, nil outside StateReport.
func (m *Machine) Result() *domain.Result { return m.result }

// Comparison is the pair payload, both nil outside StateComparison.
func (m *Machine) Comparison() (*domain.Result, *domain.Result) { return m.pairA, m.pairB }

// Err is the display-only error from the last failed submission.
func (m *Machine) Err() string { return m.lastErr }

// ShowReport enters the single-report view. Used for a successful submission,
// a history selection and the canned example. A nil result is ignored so the
// report view is never reachable without a payload.
func (m *Machine) ShowReport(r *domain.Result) {
	if r == nil {
		return
	}
	m.state = StateReport
	m.result = r
	m.pairA, m.pairB = nil, nil
	m.lastErr = ""
}

// Fail records a failed submission. The machine returns to Input with the
// message attached for display and any held payload discarded.
func (m *Machine) Fail(msg string) {
	m.state = StateInput
	m.result, m.pairA, m.pairB = nil, nil, nil
	m.lastErr = msg
}

// Compare enters the comparison view. Both payloads must be present and
// distinct; otherwise the machine does not transition.
func (m *Machine) Compare(a, b *domain.Result) bool {
	if a == nil || b == nil || a == b {
		return false
	}
	m.state = StateComparison
	m.result = nil
	m.pairA, m.pairB = a, b
	m.lastErr = ""
	return true
}

// Reset discards the held payload and returns to the input view.
func (m *Machine) Reset() {
	m.state = StateInput
	m.result, m.pairA, m.pairB = nil, nil, nil
	m.lastErr = ""
}
