// Package journal records committed ledger transactions and portfolio
// valuation snapshots to durable storage. Two backends are provided: CSV
// for quick inspection and SQLite for querying.
package journal

import (
	"time"

	"papertrade/ledger"
)

// Valuation is a point-in-time snapshot of the account's worth.
type Valuation struct {
	Time           time.Time
	Balance        float64
	PortfolioValue float64
	ProfitLoss     float64
}

type Journal interface {
	RecordTransaction(ledger.Transaction) error
	RecordValuation(Valuation) error
	Close() error
}

// Nop is a Journal that discards everything. Useful when journaling is not
// configured.
type Nop struct{}

func (Nop) RecordTransaction(ledger.Transaction) error { return nil }
func (Nop) RecordValuation(Valuation) error            { return nil }
func (Nop) Close() error                               { return nil }
