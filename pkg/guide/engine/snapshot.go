package engine

import (
	"campus-guide-be/pkg/guide/advisor"
	"campus-guide-be/pkg/guide/catalog"
	"campus-guide-be/pkg/guide/nav"
	"campus-guide-be/pkg/guide/step"
)

// PendingView describes an open clarification question.
type PendingView struct {
	Query       string          `json:"query"`
	Kind        catalog.Kind    `json:"kind"`
	CandidateID string          `json:"candidate_id"`
	Label       string          `json:"label"`
	Question    string          `json:"question"`
	Path        step.Path       `json:"path"`
	Destination nav.Destination `json:"destination"`
}

// Snapshot is a deep copy of the engine state. Mutating it never affects
// the engine.
type Snapshot struct {
	SessionID     string                     `json:"session_id"`
	Path          step.Path                  `json:"path"`
	StepIndex     int                        `json:"step_index"`
	Highlight     string                     `json:"highlight,omitempty"`
	Deviated      bool                       `json:"deviated"`
	Pending       *PendingView               `json:"pending,omitempty"`
	View          nav.Destination            `json:"view"`
	AssistantOpen bool                       `json:"assistant_open"`
	Notification  bool                       `json:"notification"`
	Activity      int                        `json:"activity"`
	Transcript    []advisor.Turn             `json:"transcript"`
	History       map[string]nav.Destination `json:"history"`
}

// snapshotLocked must be called with e.mu held.
func (e *Engine) snapshotLocked() Snapshot {
	s := Snapshot{
		SessionID:     e.id,
		Path:          e.tracker.Path(),
		StepIndex:     e.tracker.Index(),
		Deviated:      e.tracker.Deviated(),
		View:          e.view,
		AssistantOpen: e.assistantOpen,
		Notification:  e.notification,
		Activity:      e.activity,
		Transcript:    append([]advisor.Turn(nil), e.transcript...),
		History:       e.history.Entries(),
	}
	if s.Path == nil {
		s.Path = step.Path{}
	}
	if h, ok := e.tracker.Highlight(); ok {
		s.Highlight = h.String()
	}
	if p := e.clarify.Pending(); p != nil {
		view := &PendingView{
			Query:       p.Query,
			Kind:        p.Kind,
			Question:    p.Question,
			Path:        p.Path,
			Destination: p.Destination,
		}
		if p.Candidate != nil {
			view.CandidateID = p.Candidate.ItemID()
			view.Label = p.Candidate.SearchField()
		}
		s.Pending = view
	}
	return s
}
