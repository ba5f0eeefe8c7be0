package guidepath

import (
	"testing"

	"campus-guide-be/pkg/guide/step"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func financePath() step.Path {
	return step.Path{step.Tab("Finance"), step.Button("pay-outstanding"), step.Button("mode-upi")}
}

func TestTrackCompletesAfterEveryStep(t *testing.T) {
	tr := NewTracker()
	p := financePath()
	require.NoError(t, tr.Start(p))

	for i, id := range p {
		progress := tr.Track(id)
		if i < len(p)-1 {
			assert.Equal(t, OutcomeAdvanced, progress.Outcome)
			assert.Equal(t, MsgAdvanced, progress.Message)
			assert.Equal(t, p[i+1], progress.Highlight)
			assert.Equal(t, i+1, tr.Index())
		} else {
			assert.Equal(t, OutcomeCompleted, progress.Outcome)
			assert.Equal(t, MsgCompleted, progress.Message)
		}
	}

	assert.False(t, tr.Active())
	assert.Equal(t, -1, tr.Index())
	_, ok := tr.Highlight()
	assert.False(t, ok)
}

func TestTrackDeviation(t *testing.T) {
	tests := []struct {
		name         string
		click        step.ID
		wantOutcome  Outcome
		wantDeviated bool
	}{
		{"wrong tab", step.Tab("Academics"), OutcomeDeviated, true},
		{"later step out of order", step.Button("mode-upi"), OutcomeDeviated, true},
		{"assistant panel", step.Agent("open-button"), OutcomeIgnored, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			require.NoError(t, tr.Start(financePath()))

			progress := tr.Track(tt.click)

			assert.Equal(t, tt.wantOutcome, progress.Outcome)
			assert.Equal(t, tt.wantDeviated, tr.Deviated())
			assert.Equal(t, 0, tr.Index(), "index never moves on a mismatch")
		})
	}
}

func TestDeviationClearsOnCorrectClick(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.Start(financePath()))

	tr.Track(step.Tab("Profile"))
	require.True(t, tr.Deviated())

	progress := tr.Track(step.Tab("Finance"))

	assert.Equal(t, OutcomeAdvanced, progress.Outcome)
	assert.False(t, tr.Deviated())
}

func TestIdleTrackerIgnoresClicks(t *testing.T) {
	tr := NewTracker()

	progress := tr.Track(step.Tab("Finance"))

	assert.Equal(t, OutcomeIgnored, progress.Outcome)
	assert.False(t, tr.Deviated())
	assert.Equal(t, -1, tr.Index())
}

func TestStartRejectsInvalidPath(t *testing.T) {
	tr := NewTracker()

	assert.ErrorIs(t, tr.Start(nil), step.ErrEmptyPath)
	assert.ErrorIs(t, tr.Start(step.Path{step.Tab("Finance"), step.Tab("Finance")}), step.ErrDuplicateStep)
	assert.False(t, tr.Active())
}

func TestStartReplacesPath(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.Start(financePath()))
	tr.Track(step.Tab("Finance"))
	tr.Track(step.Tab("Profile"))

	require.NoError(t, tr.Start(step.Path{step.Tab("Academics")}))

	assert.Equal(t, 0, tr.Index())
	assert.False(t, tr.Deviated())
	h, _ := tr.Highlight()
	assert.Equal(t, step.Tab("Academics"), h)
}
