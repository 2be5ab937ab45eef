package domain

import (
	"context"
	"time"
)

// RecordKind names an observable side effect of a ledger or lifecycle
// operation.
type RecordKind string

const (
	RecordMint           RecordKind = "mint"
	RecordTransfer       RecordKind = "transfer"
	RecordApproval       RecordKind = "approval"
	RecordApprovalForAll RecordKind = "approval_for_all"
	RecordTokenFreeze    RecordKind = "token_freeze"
	RecordEventCreated   RecordKind = "event_created"
	RecordEventCanceled  RecordKind = "event_canceled"
	RecordSignUp         RecordKind = "sign_up"
	RecordCheckIn        RecordKind = "check_in"
	RecordRefund         RecordKind = "refund"
	RecordEventClosed    RecordKind = "event_closed"
)

// Record is one entry of the audit trail. The core emits records with the
// relevant ids and identities filled in; the recorder assigns ID and
// OccurredAt before handing the record to its sinks.
type Record struct {
	ID         string     `json:"id"`
	Kind       RecordKind `json:"kind"`
	EventID    uint64     `json:"event_id,omitempty"`
	TicketID   uint64     `json:"ticket_id,omitempty"`
	From       Identity   `json:"from,omitempty"`
	To         Identity   `json:"to,omitempty"`
	Amount     Amount     `json:"amount,omitempty"`
	Approved   bool       `json:"approved,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// Recorder receives records as operations commit. Implementations must not
// fail the emitting operation; persistence problems are theirs to handle.
type Recorder interface {
	Record(ctx context.Context, rec Record)
}

// NopRecorder discards all records.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Record) {}
