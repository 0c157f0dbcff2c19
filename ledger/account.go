// Package ledger implements the portfolio account model: the base-currency
// balance, per-symbol holdings with cost basis, the tracked-symbol list,
// and the append-only transaction log.
//
// The ledger is a state container. All business-rule validation (limits,
// confirmations, sufficiency checks) lives in package trade; nothing here
// rejects an operation beyond basic structural consistency.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"papertrade/market"
)

// ErrDefaultSymbol is returned when an operation would remove the default
// tracked symbol.
var ErrDefaultSymbol = errors.New("default symbol cannot be removed")

// Kind classifies a transaction.
type Kind string

const (
	Deposit  Kind = "DEPOSIT"
	Withdraw Kind = "WITHDRAW"
	Buy      Kind = "BUY"
	Sell     Kind = "SELL"
)

// Transaction records one committed ledger operation. BaseAmount is signed:
// positive when base funds are committed (deposit, buy), negative when they
// flow back to the balance or out of the account (sell, withdraw).
// Transactions are immutable once appended.
type Transaction struct {
	ID         string
	Kind       Kind
	Symbol     market.Symbol // empty for Deposit/Withdraw
	Quantity   float64
	UnitPrice  float64
	BaseAmount float64
	Time       time.Time
}

// Position tracks the held quantity of one symbol and the cumulative base
// currency paid into it, net of proportional reduction on sells.
type Position struct {
	Qty       float64
	CostBasis float64
}

// Account is the per-session portfolio state. Create with NewAccount; the
// zero value is not usable.
type Account struct {
	balance       float64
	positions     map[market.Symbol]*Position
	tracked       []market.Symbol
	transactions  []Transaction
	defaultSymbol market.Symbol
}

// NewAccount creates an empty account tracking the given default symbol.
// The default symbol's position exists from the start and can never be
// removed from tracking.
func NewAccount(defaultSymbol market.Symbol) *Account {
	return &Account{
		positions: map[market.Symbol]*Position{
			defaultSymbol: {},
		},
		tracked:       []market.Symbol{defaultSymbol},
		defaultSymbol: defaultSymbol,
	}
}

// Balance returns the base-currency balance.
func (a *Account) Balance() float64 { return a.balance }

// SetBalance replaces the base-currency balance.
func (a *Account) SetBalance(v float64) { a.balance = v }

// DefaultSymbol returns the symbol the account always tracks.
func (a *Account) DefaultSymbol() market.Symbol { return a.defaultSymbol }

// Holding returns the held quantity for a symbol, 0 if the symbol has no
// position.
func (a *Account) Holding(sym market.Symbol) float64 {
	if p, ok := a.positions[sym]; ok {
		return p.Qty
	}
	return 0
}

// SetHolding sets the held quantity, creating the position if needed.
// Positions are never deleted; a residual zero position persists.
func (a *Account) SetHolding(sym market.Symbol, qty float64) {
	a.position(sym).Qty = qty
}

// CostBasis returns the cost basis for a symbol, 0 if absent.
func (a *Account) CostBasis(sym market.Symbol) float64 {
	if p, ok := a.positions[sym]; ok {
		return p.CostBasis
	}
	return 0
}

// SetCostBasis sets the cost basis, creating the position if needed.
func (a *Account) SetCostBasis(sym market.Symbol, basis float64) {
	a.position(sym).CostBasis = basis
}

func (a *Account) position(sym market.Symbol) *Position {
	p, ok := a.positions[sym]
	if !ok {
		p = &Position{}
		a.positions[sym] = p
	}
	return p
}

// AddTracked appends a symbol to the tracked list. No-op if already
// present; insertion order is preserved for iteration.
func (a *Account) AddTracked(sym market.Symbol) {
	for _, t := range a.tracked {
		if t == sym {
			return
		}
	}
	a.tracked = append(a.tracked, sym)
}

// RemoveTracked removes a symbol from the tracked list. The default symbol
// is rejected with ErrDefaultSymbol. The symbol's position, if any,
// persists.
func (a *Account) RemoveTracked(sym market.Symbol) error {
	if sym == a.defaultSymbol {
		return fmt.Errorf("%w: %s", ErrDefaultSymbol, sym)
	}
	for i, t := range a.tracked {
		if t == sym {
			a.tracked = append(a.tracked[:i], a.tracked[i+1:]...)
			return nil
		}
	}
	return nil
}

// Tracked returns a copy of the tracked symbols in insertion order.
func (a *Account) Tracked() []market.Symbol {
	out := make([]market.Symbol, len(a.tracked))
	copy(out, a.tracked)
	return out
}

// Append adds a transaction to the log. The log is append-only; existing
// entries are never reordered or mutated.
func (a *Account) Append(tx Transaction) {
	a.transactions = append(a.transactions, tx)
}

// Transactions returns a copy of the transaction log in append order.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}
