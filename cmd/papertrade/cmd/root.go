package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "papertrade",
	Short: "A simulated crypto trading ledger with live market data",
	Long: `Papertrade is a paper-trading ledger backed by live Binance market data.

It provides tools for:
  - Depositing and withdrawing simulated funds at a fixed conversion rate
  - Buying and selling crypto against a virtual USD balance
  - Cost-basis and profit/loss tracking per symbol
  - Technical indicators (SMA, EMA, Bollinger, RSI, MACD) over live candles
  - Journaling every transaction to CSV or SQLite`,
}

var verbose bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cobra.OnInitialize(func() {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	})
}
