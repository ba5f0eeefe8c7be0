package engine

import (
	"context"

	"campus-guide-be/pkg/events"
)

// Event types emitted by the engine.
const (
	EventMessageResolved        = "GUIDE_MESSAGE_RESOLVED"
	EventPathStarted            = "GUIDE_PATH_STARTED"
	EventStepAdvanced           = "GUIDE_STEP_ADVANCED"
	EventPathCompleted          = "GUIDE_PATH_COMPLETED"
	EventDeviation              = "GUIDE_DEVIATION"
	EventClarificationRequested = "GUIDE_CLARIFICATION_REQUESTED"
	EventClarificationResolved  = "GUIDE_CLARIFICATION_RESOLVED"
	EventHistoryRecalled        = "GUIDE_HISTORY_RECALLED"
	EventAdvisorFallback        = "GUIDE_ADVISOR_FALLBACK"
	EventNudge                  = "GUIDE_NUDGE"
)

// Notifier receives engine events after the state change is applied.
type Notifier interface {
	Notify(ctx context.Context, event events.Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, events.Event) {}

// Logger is the subset of the app logger the engine writes to.
type Logger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}

// outbox collects events under the state lock and flushes them after.
type outbox struct {
	sessionID string
	events    []events.Event
}

func (o *outbox) add(typ string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["session_id"] = o.sessionID
	o.events = append(o.events, events.New(typ, data))
}

func (o *outbox) flush(ctx context.Context, n Notifier) {
	for _, ev := range o.events {
		n.Notify(ctx, ev)
	}
	o.events = nil
}
