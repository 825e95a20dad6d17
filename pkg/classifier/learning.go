package classifier

import (
	"context"
	"time"
)

// Verdicts stored with each learning record.
const (
	VerdictRejected = "rejected"
	VerdictAccepted = "accepted"
)

// LearningRecord is one classification outcome kept for later analysis.
type LearningRecord struct {
	Query      string
	Verdict    string
	Confidence float64
	BestMatch  string
	OccurredAt time.Time
}

// Recorder persists learning records. Implementations must tolerate
// concurrent writers; failures are logged, never surfaced to the turn.
type Recorder interface {
	Record(ctx context.Context, rec LearningRecord)
}

// UpdatePolicy derives threshold adjustments from accumulated records.
type UpdatePolicy interface {
	Adjust(opts Options, records []LearningRecord) Options
}

// StaticPolicy never adjusts anything: records are write-only telemetry
// until a concrete update rule exists.
type StaticPolicy struct{}

func (StaticPolicy) Adjust(opts Options, _ []LearningRecord) Options {
	return opts
}

// NopRecorder discards records. Used in tests and when no store is wired.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, LearningRecord) {}
