package domain

// Identity is an authenticated account taking part in the ledger: a ticket
// owner, an approved spender, an organizer, a speaker. Identities are opaque
// strings supplied by the caller-authentication layer.
type Identity string

// Nobody is the null identity. It is never a valid recipient, owner or
// spender; clearing a ticket approval sets the approved spender to Nobody.
const Nobody Identity = ""

func (id Identity) IsZero() bool { return id == Nobody }

// Amount is a quantity of escrowed value in the smallest indivisible unit.
type Amount int64
