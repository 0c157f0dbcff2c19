package trade

import (
	"sync"

	"papertrade/ledger"
)

// Pending is a staged large transaction awaiting external approval. No
// account state has been touched; Commit applies the operation after
// re-validating against current state, Cancel discards it with zero side
// effects. Exactly one of the two may run, at most once.
type Pending struct {
	ID      string
	Kind    ledger.Kind
	Preview string

	mu       sync.Mutex
	resolved bool
	commit   func() (ledger.Transaction, error)
}

// Commit applies the staged operation. The original validations are
// re-checked against current account state first; a failure resolves the
// pending confirmation without mutating anything.
func (p *Pending) Commit() (ledger.Transaction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.resolved {
		return ledger.Transaction{}, ErrResolved
	}
	p.resolved = true
	return p.commit()
}

// Cancel discards the staged operation.
func (p *Pending) Cancel() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.resolved {
		return ErrResolved
	}
	p.resolved = true
	p.commit = nil
	return nil
}
