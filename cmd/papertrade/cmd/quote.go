package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"papertrade/config"
	"papertrade/feed"
	"papertrade/feed/binance"
	"papertrade/indicators"
	"papertrade/market"
)

var quoteCmd = &cobra.Command{
	Use:   "quote [symbol]",
	Short: "Fetch a live quote and indicator summary",
	Long: `Fetch the current price and a technical-indicator summary for a symbol.

The symbol defaults to the configured default symbol. Candles are fetched
at the configured interval and the indicator values are computed from the
most recent window.

Examples:
  papertrade quote
  papertrade quote ETHUSDT`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuote,
}

var quoteConfigPath string

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.Flags().StringVarP(&quoteConfigPath, "config", "c", "", "path to config file")
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := config.Default()
	if quoteConfigPath != "" {
		loaded, err := config.LoadFromFile(quoteConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	raw := cfg.Trading.DefaultSymbol
	if len(args) == 1 {
		raw = args[0]
	}
	sym, err := market.ParseSymbol(raw, cfg.Trading.QuoteSuffix)
	if err != nil {
		return err
	}

	client := binance.NewClient(cfg.Feed.BaseURL, cfg.Feed.Timeout())
	cache := feed.NewPriceCache(cfg.Feed.CacheTTL())
	engine := indicators.NewEngine()
	refresher := feed.NewRefresher(client, cache, engine, cfg.Feed.Interval, cfg.Feed.CandleLimit)

	if err := refresher.RefreshQuotes(ctx, []market.Symbol{sym}); err != nil {
		return fmt.Errorf("fetch quote: %w", err)
	}
	q, _, err := refresher.Quote(sym)
	if err != nil {
		return err
	}

	fmt.Printf("%s  $%.2f  (%+.2f, %+.2f%%)\n", sym, q.Price, q.Change, q.ChangePercent)

	candles, err := refresher.RefreshCandles(ctx, sym)
	if err != nil {
		return fmt.Errorf("fetch candles: %w", err)
	}

	p := cfg.Indicators.Params()
	set := engine.Compute(sym, candles, p)
	if set.SMA == nil {
		fmt.Printf("\nNot enough candles for indicators (%d fetched)\n", len(candles))
		return nil
	}

	last := len(candles) - 1
	fmt.Printf("\nIndicators (%s candles, window %d):\n", cfg.Feed.Interval, len(candles))
	fmt.Printf("  SMA(%d):    %.2f\n", p.MAPeriod, set.SMA[last])
	fmt.Printf("  EMA(%d):    %.2f\n", p.EMAPeriod, set.EMA[last])
	fmt.Printf("  Bollinger:  %.2f / %.2f\n", set.BollingerUpper[last], set.BollingerLower[last])
	fmt.Printf("  RSI(%d):    %.2f\n", p.RSIPeriod, set.RSI[last])
	fmt.Printf("  MACD:       %.4f  signal %.4f  hist %.4f\n",
		set.MACD[last], set.MACDSignal[last], set.MACDHistogram[last])
	return nil
}
