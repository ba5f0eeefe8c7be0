package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"campus-guide-be/pkg/events"
	"campus-guide-be/pkg/guide/advisor"
	"campus-guide-be/pkg/guide/catalog"
	"campus-guide-be/pkg/guide/clarify"
	"campus-guide-be/pkg/guide/guidepath"
	"campus-guide-be/pkg/guide/intent"
	"campus-guide-be/pkg/guide/nav"
	"campus-guide-be/pkg/guide/step"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdvisor struct {
	mu      sync.Mutex
	tab     string
	advice  string
	tabCall int
	history []advisor.Turn
	entered chan struct{}
	release chan struct{}
}

func (f *fakeAdvisor) ClassifyTab(ctx context.Context, q string) string {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tabCall++
	if f.tab == "" {
		return nav.TabNone
	}
	return f.tab
}

func (f *fakeAdvisor) Advise(ctx context.Context, history []advisor.Turn, q string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = history
	return f.advice
}

type recordingNotifier struct {
	mu    sync.Mutex
	types []string
}

func (r *recordingNotifier) Notify(ctx context.Context, ev events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, ev.EventType())
}

func (r *recordingNotifier) count(typ string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.types {
		if t == typ {
			n++
		}
	}
	return n
}

type failingProvider struct{}

func (failingProvider) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	return nil, errors.New("connection refused")
}

func newEngine(adv advisor.Advisor, n Notifier) *Engine {
	return New("session-1", catalog.NewStatic(catalog.Sample()), adv, Options{Notifier: n})
}

func TestClarifyConfirmThenRecall(t *testing.T) {
	ctx := context.Background()
	n := &recordingNotifier{}
	e := newEngine(&fakeAdvisor{}, n)

	reply, err := e.Submit(ctx, "cyber laws marks")
	require.NoError(t, err)
	assert.Equal(t, intent.KindClarify, reply.Kind)
	assert.Equal(t, `Are you searching for marks/internals in "Cyber Laws"?`, reply.Message)
	require.NotNil(t, reply.Snapshot.Pending)
	assert.Equal(t, "19LAW101", reply.Snapshot.Pending.CandidateID)
	assert.Empty(t, reply.Snapshot.Path)

	reply, err = e.Submit(ctx, "yes")
	require.NoError(t, err)
	assert.Equal(t, SourceClarification, reply.Source)
	assert.Equal(t, clarify.MsgConfirmed, reply.Message)
	assert.Equal(t, []string{"tab:Academics", "btn:view-marks-19LAW101"}, reply.Snapshot.Path.Strings())
	assert.Equal(t, "tab:Academics", reply.Snapshot.Highlight)
	assert.Nil(t, reply.Snapshot.Pending)
	assert.Contains(t, reply.Snapshot.History, "cyber laws marks")

	reply, err = e.Submit(ctx, "Cyber Laws Marks")
	require.NoError(t, err)
	assert.Equal(t, SourceRecall, reply.Source)
	assert.Equal(t, "I remember this one. Taking you straight to Academics.", reply.Message)
	assert.Empty(t, reply.Snapshot.Path)
	assert.Nil(t, reply.Snapshot.Pending)
	assert.Equal(t, nav.Destination{Tab: nav.TabAcademics, SubView: nav.SubViewInternals, SelectedItem: "19LAW101"}, reply.Snapshot.View)

	assert.Equal(t, 1, n.count(EventClarificationRequested))
	assert.Equal(t, 1, n.count(EventClarificationResolved))
	assert.Equal(t, 1, n.count(EventHistoryRecalled))
}

func TestClarifyDecline(t *testing.T) {
	ctx := context.Background()
	e := newEngine(&fakeAdvisor{}, nil)

	_, err := e.Submit(ctx, "networks exam")
	require.NoError(t, err)

	reply, err := e.Submit(ctx, "no")
	require.NoError(t, err)

	assert.Equal(t, clarify.MsgDeclined, reply.Message)
	assert.Nil(t, reply.Snapshot.Pending)
	assert.Empty(t, reply.Snapshot.Path)
	assert.Empty(t, reply.Snapshot.History)
}

func TestAmbiguousReplyReclassifies(t *testing.T) {
	ctx := context.Background()
	n := &recordingNotifier{}
	e := newEngine(&fakeAdvisor{}, n)

	_, err := e.Submit(ctx, "cyber laws marks")
	require.NoError(t, err)

	reply, err := e.Submit(ctx, "pay via upi")
	require.NoError(t, err)

	assert.Equal(t, SourceClassifier, reply.Source)
	assert.Equal(t, intent.KindDirect, reply.Kind)
	assert.Nil(t, reply.Snapshot.Pending)
	assert.Equal(t, []string{"tab:Finance", "btn:pay-outstanding", "btn:mode-upi"}, reply.Snapshot.Path.Strings())
	assert.Equal(t, 1, n.count(EventClarificationResolved))
}

func TestAmbiguousReplyReasks(t *testing.T) {
	ctx := context.Background()
	e := New("s", catalog.NewStatic(catalog.Sample()), &fakeAdvisor{}, Options{Policy: clarify.PolicyReask})

	first, err := e.Submit(ctx, "cyber laws marks")
	require.NoError(t, err)

	reply, err := e.Submit(ctx, "pay via upi")
	require.NoError(t, err)

	assert.Equal(t, first.Message, reply.Message)
	assert.NotNil(t, reply.Snapshot.Pending)
	assert.Empty(t, reply.Snapshot.Path)
}

func TestClarificationClearsActivePath(t *testing.T) {
	ctx := context.Background()
	e := newEngine(&fakeAdvisor{}, nil)

	reply, err := e.Submit(ctx, "pay fees")
	require.NoError(t, err)
	require.NotEmpty(t, reply.Snapshot.Path)

	reply, err = e.Submit(ctx, "cyber laws marks")
	require.NoError(t, err)

	assert.Empty(t, reply.Snapshot.Path)
	assert.Equal(t, -1, reply.Snapshot.StepIndex)
	assert.NotNil(t, reply.Snapshot.Pending)
}

func TestDirectPathWalkthrough(t *testing.T) {
	ctx := context.Background()
	n := &recordingNotifier{}
	e := newEngine(&fakeAdvisor{}, n)

	reply, err := e.Submit(ctx, "third last exam")
	require.NoError(t, err)
	require.Equal(t, []string{"tab:Exam Schedule", "btn:view-exam-19CSE302"}, reply.Snapshot.Path.Strings())

	got, err := e.TrackInteraction(ctx, "tab:Exam Schedule")
	require.NoError(t, err)
	assert.Equal(t, guidepath.OutcomeAdvanced, got.Outcome)
	assert.Equal(t, guidepath.MsgAdvanced, got.Message)
	assert.Equal(t, nav.TabExamSchedule, got.Snapshot.View.Tab)

	got, err = e.TrackInteraction(ctx, "btn:view-exam-19CSE302")
	require.NoError(t, err)
	assert.Equal(t, guidepath.OutcomeCompleted, got.Outcome)
	assert.Equal(t, guidepath.MsgCompleted, got.Message)
	assert.Empty(t, got.Snapshot.Path)
	assert.Equal(t, nav.Destination{Tab: nav.TabExamSchedule, SubView: nav.SubViewDetails, SelectedItem: "19CSE302"}, got.Snapshot.View)

	assert.Equal(t, 1, n.count(EventPathStarted))
	assert.Equal(t, 1, n.count(EventStepAdvanced))
	assert.Equal(t, 1, n.count(EventPathCompleted))
}

func TestDeviationRaisesNotificationWhileClosed(t *testing.T) {
	ctx := context.Background()
	n := &recordingNotifier{}
	e := newEngine(&fakeAdvisor{}, n)

	_, err := e.Submit(ctx, "pay fees")
	require.NoError(t, err)

	got, err := e.TrackInteraction(ctx, "tab:Profile")
	require.NoError(t, err)
	assert.Equal(t, guidepath.OutcomeDeviated, got.Outcome)
	assert.True(t, got.Snapshot.Deviated)
	assert.True(t, got.Snapshot.Notification)

	_, err = e.TrackInteraction(ctx, "tab:Academics")
	require.NoError(t, err)
	assert.Equal(t, 1, n.count(EventDeviation), "only the transition is reported")

	got, err = e.TrackInteraction(ctx, "agent:open-button")
	require.NoError(t, err)
	assert.Equal(t, guidepath.OutcomeIgnored, got.Outcome)
	assert.True(t, got.Snapshot.AssistantOpen)
	assert.False(t, got.Snapshot.Notification)
	assert.True(t, got.Snapshot.Deviated, "panel clicks neither deviate nor recover")

	got, err = e.TrackInteraction(ctx, "tab:Finance")
	require.NoError(t, err)
	assert.Equal(t, guidepath.OutcomeAdvanced, got.Outcome)
	assert.False(t, got.Snapshot.Deviated)
}

func TestTrackInteractionRejectsMalformedStep(t *testing.T) {
	e := newEngine(&fakeAdvisor{}, nil)

	_, err := e.TrackInteraction(context.Background(), "Finance")

	assert.ErrorIs(t, err, step.ErrMalformed)
}

func TestAdvisorTabGuess(t *testing.T) {
	ctx := context.Background()
	adv := &fakeAdvisor{tab: nav.TabProfile}
	e := newEngine(adv, nil)

	reply, err := e.Submit(ctx, "where do I change where I live")
	require.NoError(t, err)

	assert.Equal(t, SourceAdvisor, reply.Source)
	assert.Equal(t, "Certainly. I'll take you to the Profile section. Click the highlighted tab.", reply.Message)
	assert.Equal(t, []string{"tab:Profile"}, reply.Snapshot.Path.Strings())
	assert.Equal(t, nav.Destination{Tab: nav.TabProfile}, reply.Snapshot.History["where do i change where i live"])
}

func TestAdvisorAdviceWhenTabIsCurrent(t *testing.T) {
	ctx := context.Background()
	adv := &fakeAdvisor{tab: nav.TabDashboard, advice: "You need 75% attendance."}
	e := newEngine(adv, nil)

	reply, err := e.Submit(ctx, "what is the attendance rule")
	require.NoError(t, err)

	assert.Equal(t, "You need 75% attendance.", reply.Message)
	assert.Empty(t, reply.Snapshot.Path)
	assert.Empty(t, reply.Snapshot.History)
}

func TestAdvisorHistoryWindow(t *testing.T) {
	ctx := context.Background()
	adv := &fakeAdvisor{advice: "ok"}
	e := newEngine(adv, nil)

	for i := 0; i < 8; i++ {
		_, err := e.Submit(ctx, "tell me something")
		require.NoError(t, err)
	}

	adv.mu.Lock()
	defer adv.mu.Unlock()
	assert.Len(t, adv.history, DefaultHistoryWindow)
	assert.Equal(t, advisor.RoleModel, adv.history[len(adv.history)-1].Role, "current message is not part of the window")
}

// gatedProvider serves the sample catalog, holding every call after the
// first until release is closed.
type gatedProvider struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (p *gatedProvider) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	p.mu.Lock()
	p.calls++
	first := p.calls == 1
	p.mu.Unlock()
	if !first {
		p.entered <- struct{}{}
		<-p.release
	}
	return catalog.Sample(), nil
}

func TestAdvisorWindowWithClickDuringMessage(t *testing.T) {
	ctx := context.Background()
	adv := &fakeAdvisor{advice: "ok"}
	provider := &gatedProvider{entered: make(chan struct{}), release: make(chan struct{})}
	e := New("session-1", provider, adv, Options{})

	first, err := e.Submit(ctx, "pay via upi")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := e.Submit(ctx, "tell me something")
		assert.NoError(t, err)
	}()
	<-provider.entered

	res, err := e.TrackInteraction(ctx, "tab:Finance")
	require.NoError(t, err)
	require.Equal(t, guidepath.OutcomeAdvanced, res.Outcome)

	close(provider.release)
	<-done

	adv.mu.Lock()
	defer adv.mu.Unlock()
	want := []advisor.Turn{
		{Role: advisor.RoleUser, Text: "pay via upi"},
		{Role: advisor.RoleModel, Text: first.Message},
		{Role: advisor.RoleModel, Text: guidepath.MsgAdvanced},
	}
	assert.Equal(t, want, adv.history)
}

func TestUnknownTabClickKeepsView(t *testing.T) {
	ctx := context.Background()
	e := newEngine(&fakeAdvisor{}, nil)

	_, err := e.TrackInteraction(ctx, "tab:Finance")
	require.NoError(t, err)

	res, err := e.TrackInteraction(ctx, "tab:Library")
	require.NoError(t, err)
	assert.Equal(t, nav.Destination{Tab: nav.TabFinance}, res.Snapshot.View)
}

func TestCatalogFailure(t *testing.T) {
	e := New("s", failingProvider{}, &fakeAdvisor{}, Options{})

	reply, err := e.Submit(context.Background(), "third exam")

	require.NoError(t, err)
	assert.Equal(t, SourceSystem, reply.Source)
	assert.Equal(t, MsgCatalogUnavailable, reply.Message)
}

func TestSubmitEmpty(t *testing.T) {
	e := newEngine(&fakeAdvisor{}, nil)

	_, err := e.Submit(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestRecordActivityNudge(t *testing.T) {
	ctx := context.Background()
	n := &recordingNotifier{}
	e := newEngine(&fakeAdvisor{}, n)

	got := e.RecordActivity(ctx, 150)
	assert.False(t, got.Nudged)

	got = e.RecordActivity(ctx, 1)
	assert.True(t, got.Nudged)
	assert.Equal(t, MsgNudge, got.Message)
	assert.True(t, got.Snapshot.Notification)
	assert.Equal(t, 0, got.Snapshot.Activity)
	assert.Equal(t, 1, n.count(EventNudge))
}

func TestNoNudgeWhileGuidingOrOpen(t *testing.T) {
	ctx := context.Background()
	e := newEngine(&fakeAdvisor{}, nil)

	_, err := e.Submit(ctx, "pay fees")
	require.NoError(t, err)
	assert.False(t, e.RecordActivity(ctx, 500).Nudged)

	open := newEngine(&fakeAdvisor{}, nil)
	_, err = open.TrackInteraction(ctx, "agent:open-button")
	require.NoError(t, err)
	assert.False(t, open.RecordActivity(ctx, 500).Nudged)
}

func TestTabClickResetsActivity(t *testing.T) {
	ctx := context.Background()
	e := newEngine(&fakeAdvisor{}, nil)

	e.RecordActivity(ctx, 100)
	got, err := e.TrackInteraction(ctx, "tab:Finance")
	require.NoError(t, err)

	assert.Equal(t, 0, got.Snapshot.Activity)
	assert.Equal(t, nav.TabFinance, got.Snapshot.View.Tab)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	ctx := context.Background()
	e := newEngine(&fakeAdvisor{}, nil)
	_, err := e.Submit(ctx, "pay via upi")
	require.NoError(t, err)

	s := e.Snapshot()
	s.Path[0] = step.Tab("Profile")
	s.Transcript[0].Text = "mutated"
	s.History["pay via upi"] = nav.Destination{Tab: "x"}

	fresh := e.Snapshot()
	assert.Equal(t, "tab:Finance", fresh.Path[0].String())
	assert.Equal(t, "pay via upi", fresh.Transcript[0].Text)
	assert.Equal(t, nav.TabFinance, fresh.History["pay via upi"].Tab)
}

func TestSubmitIsSerialized(t *testing.T) {
	adv := &fakeAdvisor{entered: make(chan struct{}), release: make(chan struct{}), advice: "ok"}
	e := newEngine(adv, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := e.Submit(context.Background(), "something unrelated")
		assert.NoError(t, err)
	}()
	<-adv.entered

	// clicks are not blocked by a message waiting on the advisor
	_, err := e.TrackInteraction(context.Background(), "tab:Finance")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = e.Submit(ctx, "pay fees")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(adv.release)
	<-done

	reply, err := e.Submit(context.Background(), "pay fees")
	require.NoError(t, err)
	assert.Equal(t, intent.KindDirect, reply.Kind)
}

func TestTurnWaitBoundsOnlyQueueing(t *testing.T) {
	adv := &fakeAdvisor{entered: make(chan struct{}), release: make(chan struct{}), advice: "ok"}
	e := New("session-1", catalog.NewStatic(catalog.Sample()), adv, Options{TurnWait: 20 * time.Millisecond})

	done := make(chan Reply, 1)
	go func() {
		reply, err := e.Submit(context.Background(), "something unrelated")
		assert.NoError(t, err)
		done <- reply
	}()
	<-adv.entered

	_, err := e.Submit(context.Background(), "pay fees")
	assert.ErrorIs(t, err, ErrBusy)

	// the answer in flight outlives the wait
	time.Sleep(40 * time.Millisecond)
	close(adv.release)
	reply := <-done
	assert.Equal(t, SourceAdvisor, reply.Source)
	assert.Equal(t, "ok", reply.Message)

	reply, err = e.Submit(context.Background(), "pay fees")
	require.NoError(t, err)
	assert.Equal(t, intent.KindDirect, reply.Kind)
}
