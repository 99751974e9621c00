package timing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartEndTimingRecordsDuration(t *testing.T) {
	tracker := NewTracker()
	ctx := tracker.StartTiming(context.Background(), "enhanced")
	tracker.EndTiming(ctx)

	timings := tracker.GetTimings("enhanced")
	require.Len(t, timings, 1)
	assert.GreaterOrEqual(t, timings[0], time.Duration(0))
}

func TestEndTimingWithoutStartIsNoop(t *testing.T) {
	tracker := NewTracker()
	tracker.EndTiming(context.Background())
	assert.Empty(t, tracker.GetTimings("enhanced"))
}

func TestDisabledTrackerRecordsNothing(t *testing.T) {
	tracker := NewTracker()
	tracker.SetEnabled(false)
	ctx := tracker.StartTiming(context.Background(), "enhanced")
	tracker.EndTiming(ctx)
	assert.Empty(t, tracker.GetAllTimings())
}

func TestResetClearsOneOperation(t *testing.T) {
	tracker := NewTracker()
	tracker.EndTiming(tracker.StartTiming(context.Background(), "enhanced"))
	tracker.EndTiming(tracker.StartTiming(context.Background(), "canny"))

	tracker.Reset("enhanced")

	assert.Empty(t, tracker.GetTimings("enhanced"))
	assert.NotEmpty(t, tracker.GetTimings("canny"))
}
