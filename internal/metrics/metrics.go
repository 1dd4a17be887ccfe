// Package metrics records serve-mode rebuild observations.
package metrics

import "time"

// Recorder receives build observations from the serve loop.
type Recorder interface {
	// RecordRebuild counts one rebuild by trigger ("watch", "schedule",
	// "initial") and outcome ("success", "failure").
	RecordRebuild(trigger, outcome string)
	// RecordBuildDuration observes how long a rebuild took.
	RecordBuildDuration(d time.Duration)
	// SetPostCount publishes the current number of posts in the store.
	SetPostCount(n int)
}

// NoopRecorder discards all observations. Used when metrics are disabled.
type NoopRecorder struct{}

func (NoopRecorder) RecordRebuild(string, string)      {}
func (NoopRecorder) RecordBuildDuration(time.Duration) {}
func (NoopRecorder) SetPostCount(int)                  {}
