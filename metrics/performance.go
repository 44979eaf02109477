package metrics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/position"
)

// TradingDays annualizes the Sharpe ratio.
const TradingDays = 252

type Performance struct {
	TotalReturn decimal.Decimal `json:"total_return"`
	MaxDrawdown decimal.Decimal `json:"max_drawdown"`
	SharpeRatio float64         `json:"sharpe_ratio"`
	Trades      int             `json:"trades"`
}

// EquityCurve is starting cash plus the running sum of ledger cash flows,
// one point per entry.
func EquityCurve(ledger []position.Entry, startingCash decimal.Decimal) []decimal.Decimal {
	curve := make([]decimal.Decimal, len(ledger))

	equity := startingCash
	for i, e := range ledger {
		equity = equity.Add(e.CashFlow)
		curve[i] = equity
	}

	return curve
}

// MaxDrawdown is the deepest fall of the curve below its running peak. It
// is zero or negative.
func MaxDrawdown(curve []decimal.Decimal) decimal.Decimal {
	drawdown := decimal.Zero
	if len(curve) == 0 {
		return drawdown
	}

	peak := curve[0]
	for _, equity := range curve {
		peak = decimal.Max(peak, equity)
		drawdown = decimal.Min(drawdown, equity.Sub(peak))
	}

	return drawdown
}

// SharpeRatio annualizes mean over sample deviation of the curve's point to
// point changes, counting a zero change before the first point. Curves too
// short or flat to have a deviation score zero.
func SharpeRatio(curve []decimal.Decimal) float64 {
	if len(curve) < 2 {
		return 0
	}

	returns := make([]float64, len(curve))
	for i := 1; i < len(curve); i++ {
		returns[i] = curve[i].Sub(curve[i-1]).InexactFloat64()
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var ss float64
	for _, r := range returns {
		ss += (r - mean) * (r - mean)
	}
	std := math.Sqrt(ss / float64(len(returns)-1))

	if std == 0 {
		return 0
	}

	return mean / std * math.Sqrt(TradingDays)
}

func Compute(ledger []position.Entry, summary position.PnLSummary, startingCash decimal.Decimal) Performance {
	curve := EquityCurve(ledger, startingCash)

	performance := Performance{
		TotalReturn: decimal.Zero,
		MaxDrawdown: MaxDrawdown(curve),
		SharpeRatio: SharpeRatio(curve),
		Trades:      len(ledger),
	}

	if !startingCash.IsZero() {
		performance.TotalReturn = summary.Total.Div(startingCash)
	}

	return performance
}
