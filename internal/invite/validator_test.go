package invite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_OpenWithoutCodes(t *testing.T) {
	for _, codes := range [][]string{nil, {}, {"", "   "}} {
		v := New(codes)

		assert.False(t, v.Required())
		assert.True(t, v.Allow(""))
		assert.True(t, v.Allow("anything"))
	}
}

func TestValidator_Allow(t *testing.T) {
	v := New([]string{"COHORT-24", "cohort-25", " Mentors "})

	tests := []struct {
		code string
		want bool
	}{
		{"COHORT-24", true},
		{"cohort-24", true},
		{"  Cohort-25 ", true},
		{"MENTORS", true},
		{"COHORT", false},
		{"COHORT-244", false},
		{"", false},
		{"   ", false},
	}
	assert.True(t, v.Required())
	for _, tt := range tests {
		assert.Equal(t, tt.want, v.Allow(tt.code), "code %q", tt.code)
	}
}

func TestNew_Deduplicates(t *testing.T) {
	v := New([]string{"alpha", "ALPHA", " Alpha "})

	assert.Len(t, v.codes, 1)
}

func TestParseList(t *testing.T) {
	assert.Nil(t, ParseList(""))
	assert.Nil(t, ParseList("  "))
	assert.Equal(t, []string{"a", " b", "c "}, ParseList("a, b,c "))
}
