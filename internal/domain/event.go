package domain

import "time"

// ContentDescriptor addresses off-ledger event metadata. The triple is stored
// and returned verbatim; the core never interprets it.
type ContentDescriptor struct {
	Hash         string
	HashFunction uint8
	HashSize     uint8
}

// Event is a scheduled, ticketed event with its escrow state. Schedule,
// pricing and the speaker list are immutable after creation; only
// TicketsRemaining, PaidAmount, Participants, Canceled and Closed mutate.
type Event struct {
	ID               uint64
	Organizer        Identity
	StartTime        time.Time
	EndTime          time.Time
	TicketPrice      Amount
	CashbackPercent  uint8
	OwnerPercent     uint8
	SpeakersPercent  uint8
	TicketsRemaining uint64
	PaidAmount       Amount
	Participants     []Identity
	Speakers         []Identity
	Canceled         bool
	Closed           bool
	Metadata         ContentDescriptor
}
