package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusSucceeded, true},
		{StatusPending, StatusFailed, true},
		{StatusSucceeded, StatusRefunded, true},
		{StatusPending, StatusRefunded, false},
		{StatusFailed, StatusSucceeded, false},
		{StatusFailed, StatusRefunded, false},
		{StatusRefunded, StatusPending, false},
		{StatusSucceeded, StatusSucceeded, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, canTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, validStatus(StatusPending))
	assert.True(t, validStatus(StatusRefunded))
	assert.False(t, validStatus("charged"))
	assert.False(t, validStatus(""))
}
