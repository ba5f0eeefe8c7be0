package clarify

import (
	"fmt"

	"campus-guide-be/pkg/guide/intent"
	"campus-guide-be/pkg/guide/query"
)

const (
	MsgConfirmed = "Got it. Let's head there now. Click on the highlighted tab."
	MsgDeclined  = "Understood. Please provide more details so I can find exactly what you need."
)

var (
	affirmativeWords = []string{"yes", "yeah", "correct", "yup"}
	negativeWords    = []string{"no", "wrong", "nope"}
)

// Policy decides what happens to a pending question when the reply is
// neither yes nor no.
type Policy string

const (
	// PolicyReclassify drops the question and treats the reply as a new request.
	PolicyReclassify Policy = "reclassify"
	// PolicyReask keeps the question open and asks it again.
	PolicyReask Policy = "reask"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyReclassify, PolicyReask:
		return Policy(s), nil
	case "":
		return PolicyReclassify, nil
	default:
		return "", fmt.Errorf("unknown clarification policy %q", s)
	}
}

type Outcome string

const (
	OutcomeNone      Outcome = "none" // nothing was pending
	OutcomeConfirmed Outcome = "confirmed"
	OutcomeDeclined  Outcome = "declined"
	OutcomeAbandoned Outcome = "abandoned"
	OutcomeReask     Outcome = "reask"
)

// Decision carries the pending record the reply settled, if any.
type Decision struct {
	Outcome Outcome
	Pending *intent.Pending
	Message string
}

// Manager holds at most one open question. Idle when pending is nil.
// Not safe for concurrent use.
type Manager struct {
	pending *intent.Pending
	policy  Policy
}

func NewManager(policy Policy) *Manager {
	if policy == "" {
		policy = PolicyReclassify
	}
	return &Manager{policy: policy}
}

func (m *Manager) Policy() Policy {
	return m.policy
}

// Offer opens a question, replacing any question already open.
func (m *Manager) Offer(p *intent.Pending) {
	m.pending = p
}

func (m *Manager) Pending() *intent.Pending {
	if m.pending == nil {
		return nil
	}
	cp := *m.pending
	cp.Path = m.pending.Path.Clone()
	return &cp
}

func (m *Manager) IsPending() bool {
	return m.pending != nil
}

func (m *Manager) Clear() {
	m.pending = nil
}

// Reply settles the open question. Words are matched whole, so "incorrect"
// is not a yes and "not" is not a no. Yes wins when both appear.
func (m *Manager) Reply(text string) Decision {
	if m.pending == nil {
		return Decision{Outcome: OutcomeNone}
	}

	p := m.pending
	switch {
	case query.HasWord(text, affirmativeWords):
		m.pending = nil
		return Decision{Outcome: OutcomeConfirmed, Pending: p, Message: MsgConfirmed}
	case query.HasWord(text, negativeWords):
		m.pending = nil
		return Decision{Outcome: OutcomeDeclined, Pending: p, Message: MsgDeclined}
	}

	if m.policy == PolicyReask {
		return Decision{Outcome: OutcomeReask, Pending: p, Message: p.Question}
	}
	m.pending = nil
	return Decision{Outcome: OutcomeAbandoned, Pending: p}
}
