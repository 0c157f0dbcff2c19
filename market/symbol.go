package market

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSymbol is returned when a raw symbol string fails validation.
var ErrInvalidSymbol = errors.New("invalid symbol")

// Symbol identifies a tradable pair like "BTCUSDT". Construct through
// ParseSymbol so invalid symbols are rejected before they reach the ledger.
type Symbol string

// ParseSymbol validates a raw symbol against the configured quote-currency
// suffix. A valid symbol ends with the suffix and has a non-empty base part.
func ParseSymbol(raw, quoteSuffix string) (Symbol, error) {
	if !strings.HasSuffix(raw, quoteSuffix) || len(raw) <= len(quoteSuffix) {
		return "", fmt.Errorf("%w: %q must be <base>%s", ErrInvalidSymbol, raw, quoteSuffix)
	}
	return Symbol(raw), nil
}

// Base returns the base-currency part of the symbol, e.g. "BTC" for
// "BTCUSDT" with suffix "USDT". Used for display only.
func (s Symbol) Base(quoteSuffix string) string {
	return strings.TrimSuffix(string(s), quoteSuffix)
}

func (s Symbol) String() string { return string(s) }
