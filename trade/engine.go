// Package trade implements the trade engine: deposit, withdraw, buy, and
// sell against a ledger.Account, with safety limits and a two-phase
// confirm protocol for large transactions.
//
// Every operation validates and commits inside one critical section, so
// the check (amount within balance) and the act (mutate balance) cannot
// interleave with another caller. An operation either fully commits or
// fully no-ops; there is no partially applied state.
package trade

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"papertrade/config"
	"papertrade/internal/id"
	"papertrade/journal"
	"papertrade/ledger"
	"papertrade/market"
)

// Result is the outcome of a trade operation. When Pending is non-nil the
// operation was staged for confirmation and nothing was mutated; otherwise
// Tx is the committed transaction.
type Result struct {
	Pending *Pending
	Tx      ledger.Transaction
}

// Staged reports whether the operation awaits confirmation.
func (r Result) Staged() bool { return r.Pending != nil }

// Engine validates and executes trading operations against one account.
type Engine struct {
	mu      sync.Mutex
	acct    *ledger.Account
	cfg     config.Trading
	source  CurrencySource
	journal journal.Journal
	log     *slog.Logger
	now     func() time.Time
}

// NewEngine wires a trade engine to an account, policy configuration, and
// the external currency source. A nil journal disables journaling.
func NewEngine(acct *ledger.Account, cfg config.Trading, source CurrencySource, j journal.Journal) *Engine {
	if j == nil {
		j = journal.Nop{}
	}
	return &Engine{
		acct:    acct,
		cfg:     cfg,
		source:  source,
		journal: j,
		log:     slog.Default(),
		now:     time.Now,
	}
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(log *slog.Logger) { e.log = log }

// Account returns the engine's account for read-only valuation queries.
func (e *Engine) Account() *ledger.Account { return e.acct }

// Deposit converts units of external currency into base-currency balance
// at the configured conversion rate. The external deduction happens at
// commit time and must succeed before the deposit is final.
func (e *Engine) Deposit(units float64) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validateDeposit(units); err != nil {
		return Result{}, err
	}
	usd := units * e.cfg.ConversionRate

	if e.needsConfirm(usd) {
		preview := fmt.Sprintf("Large deposit: %.0f units ($%.2f). Continue?", units, usd)
		return e.stage(ledger.Deposit, preview, func() (ledger.Transaction, error) {
			e.mu.Lock()
			defer e.mu.Unlock()
			if err := e.validateDeposit(units); err != nil {
				return ledger.Transaction{}, err
			}
			return e.commitDeposit(units, usd)
		}), nil
	}

	tx, err := e.commitDeposit(units, usd)
	if err != nil {
		return Result{}, err
	}
	return Result{Tx: tx}, nil
}

func (e *Engine) validateDeposit(units float64) error {
	available := e.source.QueryAvailable()
	if units > available {
		return fmt.Errorf("%w: have %.0f, need %.0f", ErrInsufficientExternalFunds, available, units)
	}
	if units < e.cfg.MinimumTradeUnits {
		return fmt.Errorf("%w: minimum %.0f", ErrBelowMinimum, e.cfg.MinimumTradeUnits)
	}
	if units > e.cfg.MaxSingleDeposit {
		return fmt.Errorf("%w: maximum %.0f", ErrAboveMaxDeposit, e.cfg.MaxSingleDeposit)
	}
	return nil
}

func (e *Engine) commitDeposit(units, usd float64) (ledger.Transaction, error) {
	// The external deduction comes first; a refused Consume means no
	// deposit at all.
	if !e.source.Consume(units) {
		return ledger.Transaction{}, ErrExternalConsume
	}

	e.acct.SetBalance(e.acct.Balance() + usd)
	tx := ledger.Transaction{
		ID:         id.New(),
		Kind:       ledger.Deposit,
		Quantity:   units,
		UnitPrice:  e.cfg.ConversionRate,
		BaseAmount: usd,
		Time:       e.now(),
	}
	e.record(tx)
	return tx, nil
}

// Withdraw converts base-currency balance back into external units,
// floored to whole units.
func (e *Engine) Withdraw(usd float64) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validateWithdraw(usd); err != nil {
		return Result{}, err
	}

	if e.needsConfirm(usd) {
		units := math.Floor(usd / e.cfg.ConversionRate)
		preview := fmt.Sprintf("Large withdrawal: $%.2f (%.0f units). Continue?", usd, units)
		return e.stage(ledger.Withdraw, preview, func() (ledger.Transaction, error) {
			e.mu.Lock()
			defer e.mu.Unlock()
			if err := e.validateWithdraw(usd); err != nil {
				return ledger.Transaction{}, err
			}
			return e.commitWithdraw(usd), nil
		}), nil
	}

	return Result{Tx: e.commitWithdraw(usd)}, nil
}

func (e *Engine) validateWithdraw(usd float64) error {
	if usd <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidAmount, usd)
	}
	if usd > e.acct.Balance() {
		return fmt.Errorf("%w: balance %.2f, requested %.2f", ErrInsufficientBalance, e.acct.Balance(), usd)
	}
	return nil
}

func (e *Engine) commitWithdraw(usd float64) ledger.Transaction {
	units := math.Floor(usd / e.cfg.ConversionRate)

	e.acct.SetBalance(e.acct.Balance() - usd)
	e.source.Produce(units)

	tx := ledger.Transaction{
		ID:         id.New(),
		Kind:       ledger.Withdraw,
		Quantity:   units,
		UnitPrice:  e.cfg.ConversionRate,
		BaseAmount: -usd,
		Time:       e.now(),
	}
	e.record(tx)
	return tx
}

// Buy spends usd of balance on the symbol at the given unit price.
func (e *Engine) Buy(symbol string, usd, price float64) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sym, err := market.ParseSymbol(symbol, e.cfg.QuoteSuffix)
	if err != nil {
		return Result{}, err
	}
	if err := e.validateBuy(usd, price); err != nil {
		return Result{}, err
	}

	if e.needsConfirm(usd) {
		qty := usd / price
		preview := fmt.Sprintf("Large purchase: $%.2f of %s (%.8f %s). Continue?",
			usd, sym.Base(e.cfg.QuoteSuffix), qty, sym.Base(e.cfg.QuoteSuffix))
		return e.stage(ledger.Buy, preview, func() (ledger.Transaction, error) {
			e.mu.Lock()
			defer e.mu.Unlock()
			if err := e.validateBuy(usd, price); err != nil {
				return ledger.Transaction{}, err
			}
			return e.commitBuy(sym, usd, price), nil
		}), nil
	}

	return Result{Tx: e.commitBuy(sym, usd, price)}, nil
}

func (e *Engine) validateBuy(usd, price float64) error {
	if usd <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidAmount, usd)
	}
	if price <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidPrice, price)
	}
	if usd > e.acct.Balance() {
		return fmt.Errorf("%w: balance %.2f, requested %.2f", ErrInsufficientBalance, e.acct.Balance(), usd)
	}
	return nil
}

func (e *Engine) commitBuy(sym market.Symbol, usd, price float64) ledger.Transaction {
	qty := usd / price

	e.acct.SetBalance(e.acct.Balance() - usd)
	e.acct.SetHolding(sym, e.acct.Holding(sym)+qty)
	e.acct.SetCostBasis(sym, e.acct.CostBasis(sym)+usd)
	e.acct.AddTracked(sym)

	tx := ledger.Transaction{
		ID:         id.New(),
		Kind:       ledger.Buy,
		Symbol:     sym,
		Quantity:   qty,
		UnitPrice:  price,
		BaseAmount: usd,
		Time:       e.now(),
	}
	e.record(tx)
	return tx
}

// Sell liquidates qty of the symbol's holding at the given unit price.
// Cost basis is reduced proportionally using the pre-sale holding; selling
// out entirely zeroes it.
func (e *Engine) Sell(symbol string, qty, price float64) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sym, err := market.ParseSymbol(symbol, e.cfg.QuoteSuffix)
	if err != nil {
		return Result{}, err
	}
	if err := e.validateSell(sym, qty, price); err != nil {
		return Result{}, err
	}

	proceeds := qty * price
	if e.needsConfirm(proceeds) {
		preview := fmt.Sprintf("Large sale: %.8f %s for $%.2f. Continue?",
			qty, sym.Base(e.cfg.QuoteSuffix), proceeds)
		return e.stage(ledger.Sell, preview, func() (ledger.Transaction, error) {
			e.mu.Lock()
			defer e.mu.Unlock()
			if err := e.validateSell(sym, qty, price); err != nil {
				return ledger.Transaction{}, err
			}
			return e.commitSell(sym, qty, price), nil
		}), nil
	}

	return Result{Tx: e.commitSell(sym, qty, price)}, nil
}

func (e *Engine) validateSell(sym market.Symbol, qty, price float64) error {
	if qty <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidAmount, qty)
	}
	if price <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidPrice, price)
	}
	if holding := e.acct.Holding(sym); qty > holding {
		return fmt.Errorf("%w: holding %.8f, requested %.8f", ErrInsufficientHolding, holding, qty)
	}
	return nil
}

func (e *Engine) commitSell(sym market.Symbol, qty, price float64) ledger.Transaction {
	holding := e.acct.Holding(sym)
	proceeds := qty * price
	remaining := holding - qty

	// Proportional cost-basis reduction with the pre-sale holding as the
	// denominator; a full liquidation zeroes the basis exactly.
	if remaining > 0 {
		e.acct.SetCostBasis(sym, e.acct.CostBasis(sym)*(1-qty/holding))
	} else {
		e.acct.SetCostBasis(sym, 0)
	}

	e.acct.SetHolding(sym, remaining)
	e.acct.SetBalance(e.acct.Balance() + proceeds)

	tx := ledger.Transaction{
		ID:         id.New(),
		Kind:       ledger.Sell,
		Symbol:     sym,
		Quantity:   qty,
		UnitPrice:  price,
		BaseAmount: -proceeds,
		Time:       e.now(),
	}
	e.record(tx)
	return tx
}

// needsConfirm reports whether a USD amount trips the large-transaction
// confirmation policy.
func (e *Engine) needsConfirm(usd float64) bool {
	return e.cfg.ConfirmLargeTransactions && usd >= e.cfg.LargeTransactionThreshold
}

func (e *Engine) stage(kind ledger.Kind, preview string, commit func() (ledger.Transaction, error)) Result {
	p := &Pending{
		ID:      id.New(),
		Kind:    kind,
		Preview: preview,
		commit:  commit,
	}
	e.log.Debug("transaction staged", "pending_id", p.ID, "kind", string(kind))
	return Result{Pending: p}
}

// record appends the transaction to the account log and journals it.
// Journal failures are logged, never surfaced: the trade has already
// committed.
func (e *Engine) record(tx ledger.Transaction) {
	e.acct.Append(tx)
	if err := e.journal.RecordTransaction(tx); err != nil {
		e.log.Warn("journal record failed", "tx_id", tx.ID, "error", err)
	}
	e.log.Info("transaction committed",
		"tx_id", tx.ID,
		"kind", string(tx.Kind),
		"symbol", tx.Symbol.String(),
		"quantity", tx.Quantity,
		"base_amount", tx.BaseAmount,
	)
}
