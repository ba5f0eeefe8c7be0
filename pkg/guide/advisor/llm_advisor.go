package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"campus-guide-be/pkg/guide/nav"
	"campus-guide-be/pkg/llm"
)

const (
	OpClassifyTab = "classify_tab"
	OpAdvise      = "advise"

	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
)

// Logger is the subset of the app logger the advisor writes to.
type Logger interface {
	Warn(module, message string, details map[string]interface{})
}

// Recorder receives one call per advisor request, for metrics.
type Recorder interface {
	AdvisorCall(op, outcome string)
}

type Option func(*LLMAdvisor)

func WithTabModel(model string) Option {
	return func(a *LLMAdvisor) { a.tabModel = model }
}

func WithAdviceModel(model string) Option {
	return func(a *LLMAdvisor) { a.adviceModel = model }
}

func WithLogger(l Logger) Option {
	return func(a *LLMAdvisor) { a.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(a *LLMAdvisor) { a.recorder = r }
}

// LLMAdvisor answers through any llm.LLMProvider.
type LLMAdvisor struct {
	provider    llm.LLMProvider
	tabModel    string
	adviceModel string
	logger      Logger
	recorder    Recorder
}

var _ Advisor = (*LLMAdvisor)(nil)

func NewLLMAdvisor(provider llm.LLMProvider, opts ...Option) *LLMAdvisor {
	a := &LLMAdvisor{provider: provider}
	for _, o := range opts {
		o(a)
	}
	return a
}

type tabAnswer struct {
	TargetTab string `json:"targetTab"`
}

func (a *LLMAdvisor) ClassifyTab(ctx context.Context, query string) string {
	out, err := a.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: tabSystemPrompt},
		{Role: llm.RoleUser, Content: query},
	}, llm.WithModel(a.tabModel), llm.WithTemperature(0), llm.WithJSONResponse())
	if err != nil {
		a.warn("tab classification failed", map[string]interface{}{"error": err.Error()})
		a.record(OpClassifyTab, OutcomeError)
		return nav.TabNone
	}

	tab := parseTab(out)
	if !nav.IsTab(tab) {
		outcome := OutcomeInvalid
		if tab == nav.TabNone {
			outcome = OutcomeOK
		}
		a.record(OpClassifyTab, outcome)
		return nav.TabNone
	}
	a.record(OpClassifyTab, OutcomeOK)
	return tab
}

func (a *LLMAdvisor) Advise(ctx context.Context, history []Turn, query string) string {
	profile, hasProfile := profileFrom(ctx)

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: adviceSystemPrompt})
	for _, t := range history {
		role := llm.RoleUser
		if t.Role == RoleModel {
			role = llm.RoleModel
		}
		messages = append(messages, llm.Message{Role: role, Content: t.Text})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: advicePrompt(profile, hasProfile, query)})

	out, err := a.provider.Chat(ctx, messages, llm.WithModel(a.adviceModel), llm.WithTemperature(0.7))
	if err != nil {
		a.warn("advice request failed", map[string]interface{}{"error": err.Error()})
		a.record(OpAdvise, OutcomeError)
		return MsgServiceError
	}
	if strings.TrimSpace(out) == "" {
		a.record(OpAdvise, OutcomeEmpty)
		return MsgEmptyAdvice
	}
	a.record(OpAdvise, OutcomeOK)
	return out
}

// parseTab reads {"targetTab": ...}, tolerating markdown fences and bare
// tab names.
func parseTab(raw string) string {
	b := bytes.TrimSpace([]byte(raw))
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	b = bytes.TrimSpace(b)

	var ans tabAnswer
	if err := json.Unmarshal(b, &ans); err == nil {
		return strings.TrimSpace(ans.TargetTab)
	}
	return strings.Trim(string(b), `"' `)
}

func (a *LLMAdvisor) warn(msg string, details map[string]interface{}) {
	if a.logger != nil {
		a.logger.Warn("Advisor", msg, details)
	}
}

func (a *LLMAdvisor) record(op, outcome string) {
	if a.recorder != nil {
		a.recorder.AdvisorCall(op, outcome)
	}
}
