package history

import (
	"testing"

	"campus-guide-be/pkg/guide/nav"

	"github.com/stretchr/testify/assert"
)

func TestRememberRecall(t *testing.T) {
	h := New()
	dest := nav.Destination{Tab: nav.TabAcademics, SubView: nav.SubViewInternals, SelectedItem: "19LAW101"}

	h.Remember("Cyber Laws Marks ", dest)

	got, ok := h.Recall("cyber laws marks")
	assert.True(t, ok)
	assert.Equal(t, dest, got)

	_, ok = h.Recall("cyber law marks")
	assert.False(t, ok, "keys are exact, not fuzzy")
}

func TestDistinctQueriesSameDestination(t *testing.T) {
	h := New()
	first := nav.Destination{Tab: nav.TabFinance, SubView: nav.SubViewModeSelection}
	h.Remember("pay fees", first)
	h.Remember("pay my dues", first)

	h.Remember("pay my dues", nav.Destination{Tab: nav.TabFinance, SubView: nav.SubViewPaymentDetails, SelectedItem: "upi"})

	got, ok := h.Recall("pay fees")
	assert.True(t, ok)
	assert.Equal(t, first, got)
	assert.Equal(t, 2, h.Len())
}

func TestRememberIgnoresEmpty(t *testing.T) {
	h := New()

	h.Remember("   ", nav.Destination{Tab: nav.TabProfile})
	h.Remember("profile", nav.Destination{})

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Entries())
}
