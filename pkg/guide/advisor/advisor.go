package advisor

import (
	"context"

	"campus-guide-be/pkg/guide/catalog"
	"campus-guide-be/pkg/guide/nav"
)

const (
	MsgServiceError = "Error connecting to service."
	MsgEmptyAdvice  = "I'm sorry, I couldn't process that request."
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one line of the conversation shown to the advisor.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Advisor is the last resort when no keyword bucket resolves a message.
// Neither method returns an error: failures come back as "None" or as a
// fixed apology so the conversation always continues.
type Advisor interface {
	ClassifyTab(ctx context.Context, query string) string
	Advise(ctx context.Context, history []Turn, query string) string
}

// Profile is the student context folded into advice prompts.
type Profile struct {
	Student catalog.Student
	Dues    []catalog.FeeItem
}

type profileKey struct{}

// WithProfile attaches the asking student's context to ctx.
func WithProfile(ctx context.Context, p Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, p)
}

func profileFrom(ctx context.Context) (Profile, bool) {
	p, ok := ctx.Value(profileKey{}).(Profile)
	return p, ok
}

// Disabled answers without calling anything. Used when no model is
// configured.
type Disabled struct{}

var _ Advisor = Disabled{}

func (Disabled) ClassifyTab(ctx context.Context, query string) string { return nav.TabNone }

func (Disabled) Advise(ctx context.Context, history []Turn, query string) string {
	return MsgServiceError
}
