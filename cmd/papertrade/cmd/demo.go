package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"papertrade/config"
	"papertrade/journal"
	"papertrade/ledger"
	"papertrade/market"
	"papertrade/trade"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted paper-trading session",
	Long: `Run a scripted session against an in-memory currency source.

The session deposits funds, buys and sells a symbol at fixed prices, and
walks through a large-transaction confirmation, recording everything to
the CSV journal.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Paper Trading Demo ===")
	fmt.Println()

	cfg := config.Default()

	j, err := journal.NewCSV("./demo-transactions.csv", "./demo-valuations.csv")
	if err != nil {
		return err
	}
	defer j.Close()

	source := trade.NewMemorySource(1000)
	acct := ledger.NewAccount(market.Symbol(cfg.Trading.DefaultSymbol))
	engine := trade.NewEngine(acct, cfg.Trading, source, j)

	fmt.Printf("External funds available: %.0f units (rate %.0f:1)\n\n", source.Available, cfg.Trading.ConversionRate)

	res, err := engine.Deposit(40)
	if err != nil {
		return err
	}
	fmt.Printf("DEPOSIT  40 units -> balance $%.2f\n", acct.Balance())

	price := 50000.0
	res, err = engine.Buy(cfg.Trading.DefaultSymbol, 250, price)
	if err != nil {
		return err
	}
	fmt.Printf("BUY      $250.00 of %s @ $%.0f -> holding %.8f, balance $%.2f\n",
		cfg.Trading.DefaultSymbol, price, acct.Holding(market.Symbol(cfg.Trading.DefaultSymbol)), acct.Balance())

	// A deposit at or over the threshold stages for confirmation instead
	// of committing.
	res, err = engine.Deposit(60)
	if err != nil {
		return err
	}
	if res.Staged() {
		fmt.Printf("\nCONFIRM  %s\n", res.Pending.Preview)
		if _, err := res.Pending.Commit(); err != nil {
			return err
		}
		fmt.Printf("         confirmed -> balance $%.2f\n\n", acct.Balance())
	}

	sym := market.Symbol(cfg.Trading.DefaultSymbol)
	sellPrice := 55000.0
	res, err = engine.Sell(cfg.Trading.DefaultSymbol, acct.Holding(sym), sellPrice)
	if err != nil {
		return err
	}
	if res.Staged() {
		fmt.Printf("CONFIRM  %s\n", res.Pending.Preview)
		if _, err := res.Pending.Commit(); err != nil {
			return err
		}
	}
	deposited := 1000.0
	fmt.Printf("SELL     all %s @ $%.0f -> balance $%.2f, P/L $%.2f\n",
		cfg.Trading.DefaultSymbol, sellPrice, acct.Balance(), acct.Balance()-deposited)

	res, err = engine.Withdraw(250)
	if err != nil {
		return err
	}
	fmt.Printf("WITHDRAW $250.00 -> balance $%.2f, external funds %.0f units\n",
		acct.Balance(), source.Available)

	if err := j.RecordValuation(journal.Valuation{
		Time:           time.Now(),
		Balance:        acct.Balance(),
		PortfolioValue: acct.Balance(),
		ProfitLoss:     acct.Balance() - deposited,
	}); err != nil {
		return err
	}

	fmt.Printf("\nTransactions recorded: %d\n", len(acct.Transactions()))
	fmt.Println("✓ Check demo-transactions.csv and demo-valuations.csv for records.")
	return nil
}
