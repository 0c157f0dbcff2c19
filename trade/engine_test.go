package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papertrade/config"
	"papertrade/journal"
	"papertrade/ledger"
	"papertrade/market"
)

func testConfig() config.Trading {
	return config.Trading{
		DefaultSymbol:             "BTCUSD",
		QuoteSuffix:               "USD",
		ConversionRate:            10,
		MinimumTradeUnits:         10,
		MaxSingleDeposit:          1000,
		ConfirmLargeTransactions:  false,
		LargeTransactionThreshold: 500,
	}
}

func newTestEngine(t *testing.T, cfg config.Trading, available float64) (*Engine, *MemorySource) {
	t.Helper()

	src := NewMemorySource(available)
	acct := ledger.NewAccount("BTCUSD")
	return NewEngine(acct, cfg, src, nil), src
}

func TestDepositBuySellScenario(t *testing.T) {
	t.Parallel()

	e, src := newTestEngine(t, testConfig(), 1000)
	acct := e.Account()

	res, err := e.Deposit(100)
	require.NoError(t, err)
	assert.False(t, res.Staged())
	assert.Equal(t, 1000.0, acct.Balance())
	assert.Equal(t, 900.0, src.Available)

	res, err = e.Buy("ETHUSD", 200, 2)
	require.NoError(t, err)
	assert.Equal(t, 100.0, acct.Holding("ETHUSD"))
	assert.Equal(t, 200.0, acct.CostBasis("ETHUSD"))
	assert.Equal(t, 800.0, acct.Balance())
	assert.Equal(t, 200.0, res.Tx.BaseAmount)
	assert.Contains(t, acct.Tracked(), res.Tx.Symbol)

	res, err = e.Sell("ETHUSD", 50, 4)
	require.NoError(t, err)
	assert.Equal(t, 50.0, acct.Holding("ETHUSD"))
	assert.InDelta(t, 100.0, acct.CostBasis("ETHUSD"), 1e-9)
	assert.Equal(t, 1000.0, acct.Balance())
	assert.Equal(t, -200.0, res.Tx.BaseAmount)

	assert.Len(t, acct.Transactions(), 3)
}

func TestDepositValidation(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, testConfig(), 50)

	_, err := e.Deposit(100)
	assert.ErrorIs(t, err, ErrInsufficientExternalFunds)

	_, err = e.Deposit(5)
	assert.ErrorIs(t, err, ErrBelowMinimum)

	e2, _ := newTestEngine(t, testConfig(), 5000)
	_, err = e2.Deposit(2000)
	assert.ErrorIs(t, err, ErrAboveMaxDeposit)

	// Nothing mutated on any rejection.
	assert.Equal(t, 0.0, e.Account().Balance())
	assert.Empty(t, e.Account().Transactions())
}

func TestDepositConsumeFailureRollsBack(t *testing.T) {
	t.Parallel()

	src := &flakySource{available: 1000}
	acct := ledger.NewAccount("BTCUSD")
	e := NewEngine(acct, testConfig(), src, nil)

	_, err := e.Deposit(100)
	assert.ErrorIs(t, err, ErrExternalConsume)
	assert.Equal(t, 0.0, acct.Balance())
	assert.Empty(t, acct.Transactions())
}

// flakySource reports funds as available but refuses to release them.
type flakySource struct {
	available float64
}

func (s *flakySource) QueryAvailable() float64 { return s.available }
func (s *flakySource) Consume(float64) bool    { return false }
func (s *flakySource) Produce(float64)         {}

func TestWithdrawValidation(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, testConfig(), 1000)

	_, err := e.Withdraw(10)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	t.Parallel()

	e, src := newTestEngine(t, testConfig(), 1000)
	acct := e.Account()

	_, err := e.Deposit(100)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, acct.Balance())

	res, err := e.Withdraw(1000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, acct.Balance())
	assert.Equal(t, -1000.0, res.Tx.BaseAmount)
	// 1000 USD / rate 10 = 100 units, back where we started.
	assert.Equal(t, 1000.0, src.Available)
}

func TestWithdrawFloorsExternalUnits(t *testing.T) {
	t.Parallel()

	e, src := newTestEngine(t, testConfig(), 1000)
	_, err := e.Deposit(100)
	require.NoError(t, err)

	res, err := e.Withdraw(255)
	require.NoError(t, err)
	// 255 / 10 = 25.5, floored to 25 discrete units.
	assert.Equal(t, 25.0, res.Tx.Quantity)
	assert.Equal(t, 925.0, src.Available)
	assert.Equal(t, 745.0, e.Account().Balance())
}

func TestBuyValidation(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, testConfig(), 1000)
	_, err := e.Deposit(50)
	require.NoError(t, err)

	_, err = e.Buy("ETH", 100, 2)
	assert.ErrorIs(t, err, market.ErrInvalidSymbol)

	_, err = e.Buy("ETHUSD", 100, 0)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = e.Buy("ETHUSD", 600, 2)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	assert.Equal(t, 500.0, e.Account().Balance())
	assert.Len(t, e.Account().Transactions(), 1) // just the deposit
}

func TestSellValidation(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, testConfig(), 1000)
	_, err := e.Deposit(100)
	require.NoError(t, err)
	_, err = e.Buy("ETHUSD", 100, 2)
	require.NoError(t, err)

	_, err = e.Sell("ETHUSD", 100, 2)
	assert.ErrorIs(t, err, ErrInsufficientHolding)

	_, err = e.Sell("ETHUSD", 10, -1)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestRejectsNonPositiveAmounts(t *testing.T) {
	t.Parallel()

	e, src := newTestEngine(t, testConfig(), 1000)
	acct := e.Account()

	_, err := e.Deposit(100)
	require.NoError(t, err)
	_, err = e.Buy("ETHUSD", 200, 2)
	require.NoError(t, err)

	tests := []struct {
		name string
		op   func() error
	}{
		{"buy negative", func() error { _, err := e.Buy("ETHUSD", -100, 2); return err }},
		{"buy zero", func() error { _, err := e.Buy("ETHUSD", 0, 2); return err }},
		{"sell negative", func() error { _, err := e.Sell("ETHUSD", -300, 4); return err }},
		{"sell zero", func() error { _, err := e.Sell("ETHUSD", 0, 4); return err }},
		{"withdraw negative", func() error { _, err := e.Withdraw(-50); return err }},
		{"withdraw zero", func() error { _, err := e.Withdraw(0); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.op(), ErrInvalidAmount)

			// A rejected operation mutates nothing: no minted holdings,
			// no minted balance, no drained external supply.
			assert.Equal(t, 100.0, acct.Holding("ETHUSD"))
			assert.Equal(t, 200.0, acct.CostBasis("ETHUSD"))
			assert.Equal(t, 800.0, acct.Balance())
			assert.Equal(t, 900.0, src.Available)
			assert.Len(t, acct.Transactions(), 2)
		})
	}
}

func TestSellAllZeroesCostBasis(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, testConfig(), 1000)
	acct := e.Account()

	_, err := e.Deposit(100)
	require.NoError(t, err)
	_, err = e.Buy("ETHUSD", 300, 3)
	require.NoError(t, err)

	_, err = e.Sell("ETHUSD", 100, 5)
	require.NoError(t, err)

	assert.Equal(t, 0.0, acct.Holding("ETHUSD"))
	assert.Equal(t, 0.0, acct.CostBasis("ETHUSD"))
}

func TestSellReducesCostBasisProportionally(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		holdingUSD float64
		price      float64
		sellQty    float64
	}{
		{"half", 400, 4, 50},
		{"tenth", 400, 4, 10},
		{"most", 400, 4, 99},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, _ := newTestEngine(t, testConfig(), 1000)
			acct := e.Account()

			_, err := e.Deposit(100)
			require.NoError(t, err)
			_, err = e.Buy("ETHUSD", tt.holdingUSD, tt.price)
			require.NoError(t, err)

			holding := acct.Holding("ETHUSD")
			basisBefore := acct.CostBasis("ETHUSD")

			_, err = e.Sell("ETHUSD", tt.sellQty, tt.price)
			require.NoError(t, err)

			want := basisBefore * (1 - tt.sellQty/holding)
			assert.InDelta(t, want, acct.CostBasis("ETHUSD"), 1e-9)
		})
	}
}

func TestInvariantsAcrossSequence(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t, testConfig(), 1000)
	acct := e.Account()

	_, err := e.Deposit(100)
	require.NoError(t, err)

	steps := []func() error{
		func() error { _, err := e.Buy("ETHUSD", 400, 2); return err },
		func() error { _, err := e.Sell("ETHUSD", 100, 3); return err },
		func() error { _, err := e.Buy("ETHUSD", 250, 5); return err },
		func() error { _, err := e.Sell("ETHUSD", 150, 1); return err },
		func() error { _, err := e.Sell("ETHUSD", 500, 1); return err }, // rejected
		func() error { _, err := e.Buy("ETHUSD", 10000, 1); return err }, // rejected
	}

	for i, step := range steps {
		_ = step()
		assert.GreaterOrEqual(t, acct.Holding("ETHUSD"), 0.0, "step %d", i)
		assert.GreaterOrEqual(t, acct.Balance(), 0.0, "step %d", i)
		assert.GreaterOrEqual(t, acct.CostBasis("ETHUSD"), 0.0, "step %d", i)
	}
}

func TestJournalReceivesCommits(t *testing.T) {
	t.Parallel()

	j := &captureJournal{}
	acct := ledger.NewAccount("BTCUSD")
	e := NewEngine(acct, testConfig(), NewMemorySource(1000), j)

	_, err := e.Deposit(100)
	require.NoError(t, err)
	_, err = e.Buy("ETHUSD", 100, 2)
	require.NoError(t, err)

	require.Len(t, j.txs, 2)
	assert.Equal(t, ledger.Deposit, j.txs[0].Kind)
	assert.Equal(t, ledger.Buy, j.txs[1].Kind)
	assert.NotEmpty(t, j.txs[0].ID)
}

type captureJournal struct {
	txs []ledger.Transaction
}

func (j *captureJournal) RecordTransaction(tx ledger.Transaction) error {
	j.txs = append(j.txs, tx)
	return nil
}
func (j *captureJournal) RecordValuation(journal.Valuation) error { return nil }
func (j *captureJournal) Close() error                            { return nil }
