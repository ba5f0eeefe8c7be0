package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTab(t *testing.T) {
	for _, tab := range Tabs() {
		assert.True(t, IsTab(tab), tab)
	}
	assert.False(t, IsTab(TabNone))
	assert.False(t, IsTab("exam schedule"))
}

func TestTabsReturnsCopy(t *testing.T) {
	got := Tabs()
	got[0] = "Mutated"
	assert.Equal(t, TabDashboard, Tabs()[0])
}
