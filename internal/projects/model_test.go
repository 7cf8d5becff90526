package projects

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusOpen, StatusClosed, true},
		{StatusOpen, StatusArchived, true},
		{StatusClosed, StatusOpen, true},
		{StatusClosed, StatusArchived, true},
		{StatusArchived, StatusOpen, false},
		{StatusArchived, StatusClosed, false},
		{StatusOpen, StatusOpen, true},
		{StatusArchived, StatusArchived, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, canTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, validStatus(StatusOpen))
	assert.True(t, validStatus(StatusClosed))
	assert.True(t, validStatus(StatusArchived))
	assert.False(t, validStatus("deleted"))
	assert.False(t, validStatus(""))
	assert.False(t, validStatus("Open"))
}

func TestNewPublicIDFormat(t *testing.T) {
	re := regexp.MustCompile(`^muse-\d{5}-\d{4}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := NewPublicID("muse")
		require.NoError(t, err)
		assert.Regexp(t, re, id)
		seen[id] = true
	}
	// collisions in 50 draws over a ~9e8 space would be suspect
	assert.Greater(t, len(seen), 45)
}
