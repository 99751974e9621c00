// Package timing provides the optional per-strategy timing
// instrumentation a scan can attach (ambient bookkeeping the driver
// itself never depends on).
package timing

import (
	"context"
	"sync"
	"time"
)

const timingKey = "timing_start"

type TimingInfo struct {
	Operation string
	StartTime time.Time
}

// Tracker accumulates per-operation durations. The zero value is not
// usable; construct with NewTracker.
type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
	enabled bool
}

func NewTracker() *Tracker {
	return &Tracker{
		timings: make(map[string][]time.Duration),
		enabled: true,
	}
}

// StartTiming returns a context carrying the operation's start time, to
// be passed to EndTiming once the operation completes.
func (tt *Tracker) StartTiming(ctx context.Context, operation string) context.Context {
	if !tt.enabled {
		return ctx
	}
	return context.WithValue(ctx, timingKey, TimingInfo{
		Operation: operation,
		StartTime: time.Now(),
	})
}

func (tt *Tracker) EndTiming(ctx context.Context) {
	if !tt.enabled {
		return
	}
	info, ok := ctx.Value(timingKey).(TimingInfo)
	if !ok {
		return
	}

	duration := time.Since(info.StartTime)
	tt.mu.Lock()
	tt.timings[info.Operation] = append(tt.timings[info.Operation], duration)
	tt.mu.Unlock()
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}
	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) GetAllTimings() map[string][]time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	result := make(map[string][]time.Duration, len(tt.timings))
	for operation, timings := range tt.timings {
		result[operation] = append([]time.Duration(nil), timings...)
	}
	return result
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range timings {
		total += d
	}
	return total / time.Duration(len(timings))
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, operation)
	}
}
