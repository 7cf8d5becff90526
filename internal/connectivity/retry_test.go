package connectivity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyDoSucceedsAfterRetries(t *testing.T) {
	ResetMetrics()

	p := Policy{BaseDelay: time.Millisecond, MaxRetries: 4}

	attempts := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	m := GetMetrics()
	assert.Equal(t, int64(1), m.Calls())
	assert.Equal(t, int64(0), m.Errors())
}

func TestPolicyDoExhaustsRetries(t *testing.T) {
	ResetMetrics()

	p := Policy{BaseDelay: time.Millisecond, MaxRetries: 2}
	boom := errors.New("down")

	attempts := 0
	err := p.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return boom
	})

	require.ErrorIs(t, err, boom)
	// initial attempt plus two retries
	assert.Equal(t, 3, attempts)

	m := GetMetrics()
	assert.Equal(t, int64(1), m.Calls())
	assert.Equal(t, int64(1), m.Errors())
}

func TestPolicyDoRespectsContext(t *testing.T) {
	p := Policy{BaseDelay: 50 * time.Millisecond, MaxRetries: 10}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := p.Do(ctx, func(ctx context.Context) error {
		return errors.New("still down")
	})
	require.Error(t, err)
}

func TestMetricsErrorRate(t *testing.T) {
	ResetMetrics()

	recordDependencyCall(10*time.Millisecond, nil)
	recordDependencyCall(30*time.Millisecond, errors.New("x"))

	m := GetMetrics()
	assert.Equal(t, int64(2), m.Calls())
	assert.Equal(t, int64(1), m.Errors())
	assert.InDelta(t, 50.0, m.ErrorRate(), 0.001)
	assert.InDelta(t, 20.0, m.AverageLatency(), 0.001)
}

func TestMonitorSnapshotBeforeFirstCheck(t *testing.T) {
	m := NewMonitor(nil, nil, time.Minute)

	s := m.Snapshot()
	assert.False(t, s.Healthy())
	assert.True(t, s.CheckedAt.IsZero())
}

func TestMonitorCheckWithoutDependencies(t *testing.T) {
	m := NewMonitor(nil, nil, time.Minute)

	s := m.Check(context.Background())
	assert.True(t, s.DB)
	assert.True(t, s.Redis)
	assert.True(t, s.Healthy())
	assert.False(t, s.CheckedAt.IsZero())
}
