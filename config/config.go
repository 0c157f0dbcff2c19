// Package config holds the externally supplied configuration for the
// trading engine, price feed, indicators, and journal. Files may be YAML
// or JSON; YAML is tried first.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"papertrade/indicators"
)

// Config is the complete application configuration.
type Config struct {
	Trading    Trading    `json:"trading" yaml:"trading"`
	Feed       Feed       `json:"feed" yaml:"feed"`
	Indicators Indicators `json:"indicators" yaml:"indicators"`
	Journal    Journal    `json:"journal" yaml:"journal"`
}

// Trading contains the ledger and trade-engine policy knobs.
type Trading struct {
	DefaultSymbol             string  `json:"default_symbol" yaml:"default_symbol"`
	QuoteSuffix               string  `json:"quote_suffix" yaml:"quote_suffix"`
	ConversionRate            float64 `json:"conversion_rate" yaml:"conversion_rate"`
	MinimumTradeUnits         float64 `json:"minimum_trade_units" yaml:"minimum_trade_units"`
	MaxSingleDeposit          float64 `json:"max_single_deposit" yaml:"max_single_deposit"`
	ConfirmLargeTransactions  bool    `json:"confirm_large_transactions" yaml:"confirm_large_transactions"`
	LargeTransactionThreshold float64 `json:"large_transaction_threshold" yaml:"large_transaction_threshold"`
}

// Feed contains price-feed and cache parameters.
type Feed struct {
	BaseURL         string  `json:"base_url" yaml:"base_url"`
	TimeoutSeconds  float64 `json:"timeout_seconds" yaml:"timeout_seconds"`
	CacheTTLSeconds float64 `json:"cache_ttl_seconds" yaml:"cache_ttl_seconds"`
	Interval        string  `json:"interval" yaml:"interval"`
	CandleLimit     int     `json:"candle_limit" yaml:"candle_limit"`
}

// CacheTTL returns the quote cache TTL as a duration.
func (f Feed) CacheTTL() time.Duration {
	return time.Duration(f.CacheTTLSeconds * float64(time.Second))
}

// Timeout returns the HTTP timeout as a duration.
func (f Feed) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds * float64(time.Second))
}

// Indicators mirrors indicators.Params in config form.
type Indicators struct {
	MAPeriod      int     `json:"ma_period" yaml:"ma_period"`
	EMAPeriod     int     `json:"ema_period" yaml:"ema_period"`
	RSIPeriod     int     `json:"rsi_period" yaml:"rsi_period"`
	MACDFast      int     `json:"macd_fast" yaml:"macd_fast"`
	MACDSlow      int     `json:"macd_slow" yaml:"macd_slow"`
	MACDSignal    int     `json:"macd_signal" yaml:"macd_signal"`
	BollingerMult float64 `json:"bollinger_mult" yaml:"bollinger_mult"`
}

// Params converts to the indicators package's parameter set.
func (i Indicators) Params() indicators.Params {
	return indicators.Params{
		MAPeriod:      i.MAPeriod,
		EMAPeriod:     i.EMAPeriod,
		RSIPeriod:     i.RSIPeriod,
		MACDFast:      i.MACDFast,
		MACDSlow:      i.MACDSlow,
		MACDSignal:    i.MACDSignal,
		BollingerMult: i.BollingerMult,
	}
}

// Journal selects and configures the journal backend.
type Journal struct {
	Type             string `json:"type" yaml:"type"` // "", "csv", or "sqlite"
	TransactionsFile string `json:"transactions_file,omitempty" yaml:"transactions_file,omitempty"`
	ValuationsFile   string `json:"valuations_file,omitempty" yaml:"valuations_file,omitempty"`
	DBPath           string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration to a file; .yaml/.yml extensions get
// YAML, anything else JSON.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration against the recognized option rules.
func (c *Config) Validate() error {
	t := c.Trading
	if t.QuoteSuffix == "" {
		return fmt.Errorf("trading.quote_suffix is required")
	}
	if !strings.HasSuffix(t.DefaultSymbol, t.QuoteSuffix) || len(t.DefaultSymbol) <= len(t.QuoteSuffix) {
		return fmt.Errorf("trading.default_symbol %q must be <base>%s", t.DefaultSymbol, t.QuoteSuffix)
	}
	if t.ConversionRate <= 0 {
		return fmt.Errorf("trading.conversion_rate must be positive")
	}
	if t.MinimumTradeUnits < 0 {
		return fmt.Errorf("trading.minimum_trade_units must not be negative")
	}
	if t.MaxSingleDeposit <= 0 {
		return fmt.Errorf("trading.max_single_deposit must be positive")
	}
	if t.LargeTransactionThreshold < 0 {
		return fmt.Errorf("trading.large_transaction_threshold must not be negative")
	}

	f := c.Feed
	if f.BaseURL == "" {
		return fmt.Errorf("feed.base_url is required")
	}
	if f.TimeoutSeconds <= 0 {
		return fmt.Errorf("feed.timeout_seconds must be positive")
	}
	if f.CacheTTLSeconds < 0 {
		return fmt.Errorf("feed.cache_ttl_seconds must not be negative")
	}
	if f.Interval == "" {
		return fmt.Errorf("feed.interval is required")
	}
	if f.CandleLimit < 1 {
		return fmt.Errorf("feed.candle_limit must be at least 1")
	}

	if err := c.Indicators.Params().Validate(); err != nil {
		return err
	}

	switch c.Journal.Type {
	case "":
		// Journaling disabled.
	case "csv":
		if c.Journal.TransactionsFile == "" || c.Journal.ValuationsFile == "" {
			return fmt.Errorf("journal transactions_file and valuations_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be empty, 'csv' or 'sqlite'")
	}

	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	p := indicators.DefaultParams()
	return &Config{
		Trading: Trading{
			DefaultSymbol:             "BTCUSDT",
			QuoteSuffix:               "USDT",
			ConversionRate:            10,
			MinimumTradeUnits:         10,
			MaxSingleDeposit:          1000,
			ConfirmLargeTransactions:  true,
			LargeTransactionThreshold: 500,
		},
		Feed: Feed{
			BaseURL:         "https://api.binance.com",
			TimeoutSeconds:  10,
			CacheTTLSeconds: 5,
			Interval:        "1m",
			CandleLimit:     100,
		},
		Indicators: Indicators{
			MAPeriod:      p.MAPeriod,
			EMAPeriod:     p.EMAPeriod,
			RSIPeriod:     p.RSIPeriod,
			MACDFast:      p.MACDFast,
			MACDSlow:      p.MACDSlow,
			MACDSignal:    p.MACDSignal,
			BollingerMult: p.BollingerMult,
		},
		Journal: Journal{
			Type:             "csv",
			TransactionsFile: "./transactions.csv",
			ValuationsFile:   "./valuations.csv",
		},
	}
}
