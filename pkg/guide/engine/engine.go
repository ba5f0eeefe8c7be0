package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"campus-guide-be/pkg/guide/advisor"
	"campus-guide-be/pkg/guide/catalog"
	"campus-guide-be/pkg/guide/clarify"
	"campus-guide-be/pkg/guide/guidepath"
	"campus-guide-be/pkg/guide/history"
	"campus-guide-be/pkg/guide/intent"
	"campus-guide-be/pkg/guide/nav"
	"campus-guide-be/pkg/guide/query"
	"campus-guide-be/pkg/guide/step"
)

const (
	MsgRecalled           = "I remember this one. Taking you straight to %s."
	MsgTabGuess           = "Certainly. I'll take you to the %s section. Click the highlighted tab."
	MsgNudge              = "I noticed you're moving around a lot! Are you having trouble finding something specific?"
	MsgCatalogUnavailable = "I'm having trouble loading your records right now. Please try again in a moment."
)

const (
	DefaultNudgeThreshold = 150
	DefaultHistoryWindow  = 10
)

// Assistant panel controls.
var (
	StepOpenAssistant  = step.Agent("open-button")
	StepCloseAssistant = step.Agent("close-button")
)

var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("another message is still being answered")
)

// Source tells which stage of the pipeline produced a reply.
type Source string

const (
	SourceRecall        Source = "recall"
	SourceClarification Source = "clarification"
	SourceClassifier    Source = "classifier"
	SourceAdvisor       Source = "advisor"
	SourceSystem        Source = "system"
)

type Options struct {
	Vocabulary     intent.Vocabulary
	Policy         clarify.Policy
	NudgeThreshold int
	HistoryWindow  int
	// TurnWait bounds how long Submit waits behind an earlier message.
	// Zero waits until ctx ends. Answering itself is bounded only by ctx.
	TurnWait time.Duration
	Logger   Logger
	Notifier Notifier
}

func (o Options) withDefaults() Options {
	if o.NudgeThreshold <= 0 {
		o.NudgeThreshold = DefaultNudgeThreshold
	}
	if o.HistoryWindow <= 0 {
		o.HistoryWindow = DefaultHistoryWindow
	}
	if o.Policy == "" {
		o.Policy = clarify.PolicyReclassify
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	if o.Notifier == nil {
		o.Notifier = nopNotifier{}
	}
	return o
}

type Reply struct {
	Message  string      `json:"message"`
	Source   Source      `json:"source"`
	Kind     intent.Kind `json:"kind,omitempty"`
	Snapshot Snapshot    `json:"snapshot"`
}

type Interaction struct {
	Outcome  guidepath.Outcome `json:"outcome"`
	Message  string            `json:"message,omitempty"`
	Snapshot Snapshot          `json:"snapshot"`
}

type Activity struct {
	Nudged   bool     `json:"nudged"`
	Message  string   `json:"message,omitempty"`
	Snapshot Snapshot `json:"snapshot"`
}

// Engine owns the guide state of one session. Messages are handled one at
// a time; clicks and activity reports may arrive while a message waits on
// the advisor and are applied under the state lock.
type Engine struct {
	id         string
	catalogs   catalog.Provider
	advisor    advisor.Advisor
	classifier *intent.Classifier
	opts       Options

	turn chan struct{}

	mu            sync.Mutex
	tracker       *guidepath.Tracker
	clarify       *clarify.Manager
	history       *history.Cache
	target        nav.Destination // where the active path ends
	view          nav.Destination
	transcript    []advisor.Turn
	assistantOpen bool
	notification  bool
	activity      int
}

func New(id string, catalogs catalog.Provider, adv advisor.Advisor, opts Options) *Engine {
	opts = opts.withDefaults()
	if adv == nil {
		adv = advisor.Disabled{}
	}
	return &Engine{
		id:         id,
		catalogs:   catalogs,
		advisor:    adv,
		classifier: intent.NewClassifier(opts.Vocabulary),
		opts:       opts,
		turn:       make(chan struct{}, 1),
		tracker:    guidepath.NewTracker(),
		clarify:    clarify.NewManager(opts.Policy),
		history:    history.New(),
		view:       nav.Destination{Tab: nav.TabDashboard},
	}
}

func (e *Engine) ID() string {
	return e.id
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Submit runs one user message through recall, clarification,
// classification and the advisor, in that order. A second Submit waits
// until the first returns, ctx ends or TurnWait elapses.
func (e *Engine) Submit(ctx context.Context, text string) (Reply, error) {
	if strings.TrimSpace(text) == "" {
		return Reply{}, ErrEmptyMessage
	}

	if err := e.acquireTurn(ctx); err != nil {
		return Reply{}, err
	}
	defer func() { <-e.turn }()

	out := &outbox{sessionID: e.id}
	defer out.flush(ctx, e.opts.Notifier)

	q := query.Normalize(text)

	e.mu.Lock()
	// clicks may append model turns while the catalog loads, so the
	// current message is tracked by position rather than as the last entry
	at := len(e.transcript)
	e.transcript = append(e.transcript, advisor.Turn{Role: advisor.RoleUser, Text: text})
	if reply, done := e.recallLocked(q, out); done {
		e.mu.Unlock()
		return reply, nil
	}
	if reply, done := e.settleClarificationLocked(text, out); done {
		e.mu.Unlock()
		return reply, nil
	}
	e.mu.Unlock()

	cat, err := e.catalogs.Catalog(ctx)
	if err != nil {
		e.opts.Logger.Error("GuideEngine", "Failed to load catalog", map[string]interface{}{
			"session_id": e.id,
			"error":      err.Error(),
		})
		return e.finish(SourceSystem, "", MsgCatalogUnavailable, out), nil
	}

	res := e.classifier.Classify(q, cat)
	if res.Kind != intent.KindUnresolved {
		return e.applyResolution(q, res, out), nil
	}
	return e.consultAdvisor(ctx, text, q, at, cat, out), nil
}

func (e *Engine) acquireTurn(ctx context.Context) error {
	var expired <-chan time.Time
	if e.opts.TurnWait > 0 {
		timer := time.NewTimer(e.opts.TurnWait)
		defer timer.Stop()
		expired = timer.C
	}
	select {
	case e.turn <- struct{}{}:
		return nil
	case <-expired:
		return ErrBusy
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) recallLocked(q string, out *outbox) (Reply, bool) {
	dest, ok := e.history.Recall(q)
	if !ok {
		return Reply{}, false
	}
	e.tracker.Clear()
	e.clarify.Clear()
	e.target = nav.Destination{}
	e.view = dest
	msg := fmt.Sprintf(MsgRecalled, dest.Tab)
	e.transcript = append(e.transcript, advisor.Turn{Role: advisor.RoleModel, Text: msg})

	out.add(EventHistoryRecalled, map[string]interface{}{"query": q, "tab": dest.Tab, "sub_view": dest.SubView, "selected_item": dest.SelectedItem})
	out.add(EventMessageResolved, map[string]interface{}{"source": string(SourceRecall)})
	return Reply{Message: msg, Source: SourceRecall, Snapshot: e.snapshotLocked()}, true
}

func (e *Engine) settleClarificationLocked(text string, out *outbox) (Reply, bool) {
	d := e.clarify.Reply(text)
	switch d.Outcome {
	case clarify.OutcomeNone:
		return Reply{}, false

	case clarify.OutcomeConfirmed:
		if err := e.tracker.Start(d.Pending.Path); err != nil {
			e.opts.Logger.Error("GuideEngine", "Rejected clarified path", map[string]interface{}{"session_id": e.id, "error": err.Error()})
		} else {
			e.target = d.Pending.Destination
			e.history.Remember(d.Pending.Query, d.Pending.Destination)
			out.add(EventPathStarted, pathData(d.Pending.Path))
		}

	case clarify.OutcomeAbandoned:
		e.opts.Logger.Warn("GuideEngine", "Clarification abandoned by unrelated reply", map[string]interface{}{
			"session_id": e.id,
			"question":   d.Pending.Question,
			"reply":      text,
		})
		out.add(EventClarificationResolved, map[string]interface{}{"outcome": string(d.Outcome), "query": d.Pending.Query})
		return Reply{}, false
	}

	out.add(EventClarificationResolved, map[string]interface{}{"outcome": string(d.Outcome), "query": d.Pending.Query})
	out.add(EventMessageResolved, map[string]interface{}{"source": string(SourceClarification), "outcome": string(d.Outcome)})
	e.transcript = append(e.transcript, advisor.Turn{Role: advisor.RoleModel, Text: d.Message})
	return Reply{Message: d.Message, Source: SourceClarification, Snapshot: e.snapshotLocked()}, true
}

func (e *Engine) applyResolution(q string, res intent.Resolution, out *outbox) Reply {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch res.Kind {
	case intent.KindDirect:
		if err := e.tracker.Start(res.Path); err != nil {
			e.opts.Logger.Error("GuideEngine", "Rejected resolved path", map[string]interface{}{"session_id": e.id, "error": err.Error()})
			break
		}
		e.target = res.Destination
		e.history.Remember(q, res.Destination)
		out.add(EventPathStarted, pathData(res.Path))

	case intent.KindClarify:
		// a question and a guide path are never open together
		e.tracker.Clear()
		e.target = nav.Destination{}
		e.clarify.Offer(res.Pending)
		out.add(EventClarificationRequested, map[string]interface{}{
			"query":        q,
			"kind":         string(res.Pending.Kind),
			"candidate_id": res.Pending.Candidate.ItemID(),
		})
	}

	out.add(EventMessageResolved, map[string]interface{}{"source": string(SourceClassifier), "kind": string(res.Kind), "bucket": string(res.Bucket)})
	e.transcript = append(e.transcript, advisor.Turn{Role: advisor.RoleModel, Text: res.Message})
	return Reply{Message: res.Message, Source: SourceClassifier, Kind: res.Kind, Snapshot: e.snapshotLocked()}
}

// consultAdvisor calls out without holding the state lock.
func (e *Engine) consultAdvisor(ctx context.Context, text, q string, at int, cat *catalog.Catalog, out *outbox) Reply {
	e.mu.Lock()
	currentTab := e.view.Tab
	window := e.recentTurnsLocked(at)
	e.mu.Unlock()

	ctx = advisor.WithProfile(ctx, advisor.Profile{Student: cat.Student, Dues: dues(cat.Fees)})

	tab := e.advisor.ClassifyTab(ctx, q)
	if tab != nav.TabNone && nav.IsTab(tab) && tab != currentTab {
		e.mu.Lock()
		defer e.mu.Unlock()
		path := step.Path{step.Tab(tab)}
		if err := e.tracker.Start(path); err == nil {
			e.target = nav.Destination{Tab: tab}
			e.history.Remember(q, e.target)
			out.add(EventPathStarted, pathData(path))
		}
		msg := fmt.Sprintf(MsgTabGuess, tab)
		e.transcript = append(e.transcript, advisor.Turn{Role: advisor.RoleModel, Text: msg})
		out.add(EventAdvisorFallback, map[string]interface{}{"tab": tab, "advice": false})
		out.add(EventMessageResolved, map[string]interface{}{"source": string(SourceAdvisor), "kind": string(intent.KindUnresolved)})
		return Reply{Message: msg, Source: SourceAdvisor, Kind: intent.KindUnresolved, Snapshot: e.snapshotLocked()}
	}

	advice := e.advisor.Advise(ctx, window, text)

	out.add(EventAdvisorFallback, map[string]interface{}{"tab": tab, "advice": true})
	out.add(EventMessageResolved, map[string]interface{}{"source": string(SourceAdvisor), "kind": string(intent.KindUnresolved)})
	return e.finish(SourceAdvisor, intent.KindUnresolved, advice, out)
}

func (e *Engine) finish(src Source, kind intent.Kind, msg string, out *outbox) Reply {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transcript = append(e.transcript, advisor.Turn{Role: advisor.RoleModel, Text: msg})
	return Reply{Message: msg, Source: src, Kind: kind, Snapshot: e.snapshotLocked()}
}

// recentTurnsLocked returns the last turns of the transcript without the
// message at index at, which the advisor receives separately.
func (e *Engine) recentTurnsLocked(at int) []advisor.Turn {
	prior := make([]advisor.Turn, 0, len(e.transcript))
	for i, turn := range e.transcript {
		if i != at {
			prior = append(prior, turn)
		}
	}
	if len(prior) > e.opts.HistoryWindow {
		prior = prior[len(prior)-e.opts.HistoryWindow:]
	}
	return append([]advisor.Turn(nil), prior...)
}

// TrackInteraction feeds one click to the path tracker. Tab clicks also
// switch the active view; assistant panel clicks open or close the panel.
func (e *Engine) TrackInteraction(ctx context.Context, rawStep string) (Interaction, error) {
	id, err := step.Parse(rawStep)
	if err != nil {
		return Interaction{}, err
	}

	out := &outbox{sessionID: e.id}
	defer out.flush(ctx, e.opts.Notifier)

	e.mu.Lock()
	defer e.mu.Unlock()

	wasDeviated := e.tracker.Deviated()
	expected, _ := e.tracker.Highlight()
	progress := e.tracker.Track(id)

	switch {
	case id.Namespace == step.NamespaceTab && nav.IsTab(id.Local):
		e.view = nav.Destination{Tab: id.Local}
		e.activity = 0
	case id == StepOpenAssistant:
		e.assistantOpen = true
		e.notification = false
	case id == StepCloseAssistant:
		e.assistantOpen = false
	}

	switch progress.Outcome {
	case guidepath.OutcomeAdvanced:
		out.add(EventStepAdvanced, map[string]interface{}{"step": id.String(), "index": progress.Index, "highlight": progress.Highlight.String()})
	case guidepath.OutcomeCompleted:
		if !e.target.IsZero() {
			e.view = e.target
		}
		e.target = nav.Destination{}
		out.add(EventPathCompleted, map[string]interface{}{"step": id.String(), "tab": e.view.Tab})
	case guidepath.OutcomeDeviated:
		if !e.assistantOpen {
			e.notification = true
		}
		if !wasDeviated {
			out.add(EventDeviation, map[string]interface{}{"step": id.String(), "expected": expected.String()})
		}
	}

	if progress.Message != "" {
		e.transcript = append(e.transcript, advisor.Turn{Role: advisor.RoleModel, Text: progress.Message})
	}
	return Interaction{Outcome: progress.Outcome, Message: progress.Message, Snapshot: e.snapshotLocked()}, nil
}

// RecordActivity counts pointer activity reported by the client. Too much
// of it with the assistant closed and no path active earns a nudge.
func (e *Engine) RecordActivity(ctx context.Context, count int) Activity {
	out := &outbox{sessionID: e.id}
	defer out.flush(ctx, e.opts.Notifier)

	e.mu.Lock()
	defer e.mu.Unlock()

	if count > 0 {
		e.activity += count
	}
	if e.activity <= e.opts.NudgeThreshold || e.assistantOpen || e.tracker.Active() {
		return Activity{Snapshot: e.snapshotLocked()}
	}

	e.activity = 0
	e.notification = true
	e.transcript = append(e.transcript, advisor.Turn{Role: advisor.RoleModel, Text: MsgNudge})
	out.add(EventNudge, nil)
	return Activity{Nudged: true, Message: MsgNudge, Snapshot: e.snapshotLocked()}
}

func pathData(p step.Path) map[string]interface{} {
	return map[string]interface{}{"path": p.Strings(), "length": len(p)}
}

func dues(fees []catalog.FeeItem) []catalog.FeeItem {
	var out []catalog.FeeItem
	for _, f := range fees {
		if strings.EqualFold(f.Status, "due") {
			out = append(out, f)
		}
	}
	return out
}
