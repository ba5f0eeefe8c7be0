package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "cyber laws marks", Normalize("  Cyber Laws MARKS \n"))
	assert.Equal(t, "", Normalize("   "))
}

func TestHasWord(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"exact", "yes", true},
		{"inside sentence", "yes, that one", true},
		{"punctuated", "Yup!", true},
		{"substring only", "yesterday", false},
		{"no match", "maybe", false},
	}

	words := []string{"yes", "yup"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasWord(tt.text, words))
		})
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keywords []string
		want     string
	}{
		{"plural keyword", "cyber laws marks", []string{"mark", "internal", "grade"}, "cyber laws"},
		{"phrase keyword", "how did i do in compiler design", []string{"how did i do", "mark"}, "in compiler design"},
		{"leading keyword", "exam networks", []string{"exam", "test"}, "networks"},
		{"nothing left", "exams", []string{"exam"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.text, tt.keywords))
		})
	}
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("pay my fees", []string{"fee"}))
	assert.False(t, ContainsAny("show grades", []string{"fee", "pay"}))
	assert.False(t, ContainsAny("anything", []string{""}))
}
