package ledger

import "papertrade/market"

// CurrentValue returns the market value of the symbol's holding at the
// given price.
func (a *Account) CurrentValue(sym market.Symbol, price float64) float64 {
	return a.Holding(sym) * price
}

// ProfitLoss returns current value minus cost basis for the symbol.
func (a *Account) ProfitLoss(sym market.Symbol, price float64) float64 {
	return a.CurrentValue(sym, price) - a.CostBasis(sym)
}

// ProfitLossPercent returns profit/loss as a percentage of cost basis,
// or 0 when nothing has been invested.
func (a *Account) ProfitLossPercent(sym market.Symbol, price float64) float64 {
	basis := a.CostBasis(sym)
	if basis == 0 {
		return 0
	}
	return a.ProfitLoss(sym, price) / basis * 100
}

// TotalValue sums the current value of every tracked symbol with a known
// price, plus the base-currency balance. Symbols missing from prices are
// skipped.
func (a *Account) TotalValue(prices map[market.Symbol]float64) float64 {
	total := a.balance
	for _, sym := range a.tracked {
		if price, ok := prices[sym]; ok {
			total += a.CurrentValue(sym, price)
		}
	}
	return total
}

// TotalProfitLoss sums per-symbol profit/loss over tracked symbols with a
// known price. Symbols without a quote are skipped, not treated as a total
// loss.
func (a *Account) TotalProfitLoss(prices map[market.Symbol]float64) float64 {
	total := 0.0
	for _, sym := range a.tracked {
		if price, ok := prices[sym]; ok {
			total += a.ProfitLoss(sym, price)
		}
	}
	return total
}
