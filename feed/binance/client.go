// Package binance implements the feed.Feed contract against the Binance
// public REST API. No API key is needed; the ticker and klines endpoints
// are unauthenticated.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"papertrade/market"
)

// DefaultBaseURL is the production Binance REST endpoint.
const DefaultBaseURL = "https://api.binance.com"

// Intervals accepted by the klines endpoint.
const (
	Interval1m  = "1m"
	Interval5m  = "5m"
	Interval15m = "15m"
	Interval1h  = "1h"
	Interval4h  = "4h"
	Interval1d  = "1d"
)

// maxCandleLimit is the klines endpoint's per-request cap.
const maxCandleLimit = 1000

// Client talks to the Binance REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Binance client. An empty baseURL selects the
// production endpoint; tests point it at a local server.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// tickerResponse is the 24hr ticker payload. Binance encodes every price
// as a decimal string.
type tickerResponse struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	CloseTime          int64  `json:"closeTime"`
}

// FetchQuote fetches the 24hr ticker snapshot for the symbol.
func (c *Client) FetchQuote(ctx context.Context, sym market.Symbol) (market.Quote, error) {
	params := url.Values{}
	params.Set("symbol", sym.String())

	var ticker tickerResponse
	if err := c.get(ctx, "/api/v3/ticker/24hr", params, &ticker); err != nil {
		return market.Quote{}, err
	}

	price, err := parsePrice(ticker.LastPrice)
	if err != nil {
		return market.Quote{}, fmt.Errorf("parse last price: %w", err)
	}
	change, err := parsePrice(ticker.PriceChange)
	if err != nil {
		return market.Quote{}, fmt.Errorf("parse price change: %w", err)
	}
	pct, err := parsePrice(ticker.PriceChangePercent)
	if err != nil {
		return market.Quote{}, fmt.Errorf("parse change percent: %w", err)
	}

	return market.Quote{
		Symbol:        sym,
		Price:         price,
		Change:        change,
		ChangePercent: pct,
		Timestamp:     time.UnixMilli(ticker.CloseTime),
		FetchedAt:     time.Now(),
	}, nil
}

// FetchCandles fetches up to limit most-recent klines at the given
// interval, oldest first. Each kline arrives as a mixed-type JSON array:
// integer timestamps alongside string-encoded prices. Malformed rows are
// skipped rather than failing the whole window.
func (c *Client) FetchCandles(ctx context.Context, sym market.Symbol, interval string, limit int) ([]market.Candle, error) {
	if limit <= 0 || limit > maxCandleLimit {
		return nil, fmt.Errorf("limit must be in 1..%d, got %d", maxCandleLimit, limit)
	}

	params := url.Values{}
	params.Set("symbol", sym.String())
	params.Set("interval", interval)
	params.Set("limit", fmt.Sprintf("%d", limit))

	var rows [][]json.RawMessage
	if err := c.get(ctx, "/api/v3/klines", params, &rows); err != nil {
		return nil, err
	}

	candles := make([]market.Candle, 0, len(rows))
	for _, row := range rows {
		cd, err := parseKline(row)
		if err != nil {
			continue
		}
		candles = append(candles, cd)
	}
	return candles, nil
}

// Kline array layout: [0] open time ms, [1] open, [2] high, [3] low,
// [4] close, [5] volume, then fields we ignore.
func parseKline(row []json.RawMessage) (market.Candle, error) {
	if len(row) < 6 {
		return market.Candle{}, fmt.Errorf("kline row has %d fields, want at least 6", len(row))
	}

	var openTime int64
	if err := json.Unmarshal(row[0], &openTime); err != nil {
		return market.Candle{}, fmt.Errorf("parse open time: %w", err)
	}

	var c market.Candle
	c.Time = time.UnixMilli(openTime)

	fields := []struct {
		raw json.RawMessage
		dst *float64
	}{
		{row[1], &c.Open},
		{row[2], &c.High},
		{row[3], &c.Low},
		{row[4], &c.Close},
		{row[5], &c.Volume},
	}
	for _, f := range fields {
		var s string
		if err := json.Unmarshal(f.raw, &s); err != nil {
			return market.Candle{}, fmt.Errorf("decode kline field: %w", err)
		}
		v, err := parsePrice(s)
		if err != nil {
			return market.Candle{}, err
		}
		*f.dst = v
	}
	return c, nil
}

// parsePrice converts a Binance decimal string without the intermediate
// binary rounding of strconv.ParseFloat on long fractions.
func parsePrice(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	f, _ := d.Float64()
	return f, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	apiURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("binance API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
