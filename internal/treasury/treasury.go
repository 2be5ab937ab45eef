// Package treasury models the value-transfer primitive: an escrow pot that
// collects sign-up payments and pays out refunds, cashback and settlement
// shares. Every operation either fully succeeds or leaves balances
// unchanged.
package treasury

import "github.com/cyberacademydev/cyberevents/internal/domain"

// Payment is one outgoing transfer of a settlement batch.
type Payment struct {
	To     domain.Identity
	Amount domain.Amount
}

// Treasury is not safe for concurrent use; the app layer serializes access.
type Treasury struct {
	escrow   domain.Amount
	balances map[domain.Identity]domain.Amount
}

func New() *Treasury {
	return &Treasury{balances: make(map[domain.Identity]domain.Amount)}
}

// Collect receives an incoming payment into the escrow pot.
func (t *Treasury) Collect(amount domain.Amount) {
	t.escrow += amount
}

// Send moves amount out of escrow and credits the recipient. Fails with
// ErrTransferFailed when escrow lacks the funds, ErrInvalidRecipient for
// the null identity; zero-amount sends are no-ops.
func (t *Treasury) Send(to domain.Identity, amount domain.Amount) error {
	if to.IsZero() {
		return domain.ErrInvalidRecipient
	}
	if amount < 0 || amount > t.escrow {
		return domain.ErrTransferFailed
	}
	if amount == 0 {
		return nil
	}
	t.escrow -= amount
	t.balances[to] += amount
	return nil
}

// SendMany applies a batch of payments atomically: the whole batch is
// validated against the escrow balance before any payment is applied.
func (t *Treasury) SendMany(payments []Payment) error {
	var total domain.Amount
	for _, p := range payments {
		if p.To.IsZero() {
			return domain.ErrInvalidRecipient
		}
		if p.Amount < 0 {
			return domain.ErrTransferFailed
		}
		total += p.Amount
	}
	if total > t.escrow {
		return domain.ErrTransferFailed
	}
	for _, p := range payments {
		t.escrow -= p.Amount
		t.balances[p.To] += p.Amount
	}
	return nil
}

// Escrow returns the undistributed pot.
func (t *Treasury) Escrow() domain.Amount { return t.escrow }

// BalanceOf returns what has been paid out to the identity so far.
func (t *Treasury) BalanceOf(id domain.Identity) domain.Amount { return t.balances[id] }
