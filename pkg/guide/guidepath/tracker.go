package guidepath

import (
	"campus-guide-be/pkg/guide/step"
)

const (
	MsgAdvanced  = "Perfect! Now, click the highlighted element to continue."
	MsgCompleted = "We've reached your destination! Is there anything else you need?"
)

// Outcome of feeding one interaction to the tracker.
type Outcome string

const (
	OutcomeIgnored   Outcome = "ignored"
	OutcomeAdvanced  Outcome = "advanced"
	OutcomeCompleted Outcome = "completed"
	OutcomeDeviated  Outcome = "deviated"
)

type Progress struct {
	Outcome   Outcome
	Message   string
	Highlight step.ID // zero once the path is done or idle
	Index     int
}

// Tracker follows the user along a guide path. Index is -1 while idle.
// It is not safe for concurrent use; the engine serializes access.
type Tracker struct {
	path     step.Path
	index    int
	deviated bool
}

func NewTracker() *Tracker {
	return &Tracker{index: -1}
}

// Start replaces any in-flight path and highlights its first step.
func (t *Tracker) Start(p step.Path) error {
	if err := p.Validate(); err != nil {
		return err
	}
	t.path = p.Clone()
	t.index = 0
	t.deviated = false
	return nil
}

func (t *Tracker) Clear() {
	t.path = nil
	t.index = -1
	t.deviated = false
}

func (t *Tracker) Active() bool {
	return len(t.path) > 0
}

func (t *Tracker) Index() int {
	return t.index
}

func (t *Tracker) Deviated() bool {
	return t.deviated
}

func (t *Tracker) Path() step.Path {
	return t.path.Clone()
}

// Highlight is the step the user should click next.
func (t *Tracker) Highlight() (step.ID, bool) {
	if t.index < 0 || t.index >= len(t.path) {
		return step.ID{}, false
	}
	return t.path[t.index], true
}

// Track records a click. A click on the highlighted step advances the path
// and clears any deviation; any other click while a path is active marks
// the user as off course, except assistant panel controls.
func (t *Tracker) Track(id step.ID) Progress {
	current, ok := t.Highlight()
	if ok && current == id {
		next := t.index + 1
		t.deviated = false
		if next < len(t.path) {
			t.index = next
			return Progress{Outcome: OutcomeAdvanced, Message: MsgAdvanced, Highlight: t.path[next], Index: next}
		}
		t.path = nil
		t.index = -1
		return Progress{Outcome: OutcomeCompleted, Message: MsgCompleted, Index: -1}
	}

	if !t.Active() || id.IsAgent() {
		return Progress{Outcome: OutcomeIgnored, Highlight: current, Index: t.index}
	}

	t.deviated = true
	return Progress{Outcome: OutcomeDeviated, Highlight: current, Index: t.index}
}
