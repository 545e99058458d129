// Package metrics records conversion and editing activity.
package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultConverted ResultLabel = "converted"
	ResultEmpty     ResultLabel = "empty"
	ResultSuccess   ResultLabel = "success"
	ResultRejected  ResultLabel = "rejected"
)

// Recorder defines observability hooks for conversions, link inserts and
// downloads.
type Recorder interface {
	ObserveConversion(parser string, d time.Duration, result ResultLabel, links int)
	IncLinkInsert(result ResultLabel)
	IncDownload(format string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not served).
type NoopRecorder struct{}

func (NoopRecorder) ObserveConversion(string, time.Duration, ResultLabel, int) {}
func (NoopRecorder) IncLinkInsert(ResultLabel)                                 {}
func (NoopRecorder) IncDownload(string)                                        {}
