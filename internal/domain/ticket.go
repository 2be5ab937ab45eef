package domain

// Ticket is a non-fungible ownership record tied to a single event. IDs are
// assigned sequentially and never reused.
type Ticket struct {
	ID             uint64
	Owner          Identity
	Approved       Identity
	Frozen         bool
	EventID        uint64
	DataCommitment string
}
