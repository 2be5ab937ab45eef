package app

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/cyberacademydev/cyberevents/internal/clock"
	"github.com/cyberacademydev/cyberevents/internal/domain"
)

// RecordSink persists or forwards one audit record.
type RecordSink interface {
	Append(ctx context.Context, rec domain.Record) error
}

// Recorder stamps records with an id and timestamp and fans them out to its
// sinks. Sink failures are logged and swallowed: the in-memory core is the
// source of truth, the audit trail must never fail an operation.
type Recorder struct {
	clock  clock.Clock
	logger *log.Logger
	sinks  []RecordSink
}

func NewRecorder(clk clock.Clock, logger *log.Logger, sinks ...RecordSink) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{clock: clk, logger: logger, sinks: sinks}
}

func (r *Recorder) Record(ctx context.Context, rec domain.Record) {
	rec.ID = uuid.NewString()
	rec.OccurredAt = r.clock.Now()
	for _, sink := range r.sinks {
		if err := sink.Append(ctx, rec); err != nil {
			r.logger.Printf("record %s: %v", rec.Kind, err)
		}
	}
}
