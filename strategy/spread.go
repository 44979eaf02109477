package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PairStrategy turns two aligned close series into one signal per bar.
// Long buys the first leg and sells the second, Short the reverse.
type PairStrategy interface {
	Name() string
	PairSignals(first, second []decimal.Decimal) []Signal
}

// SpreadArbitrage trades the spread first - beta * second, where beta is the
// least squares hedge ratio over the whole history. Crossing above Threshold
// shorts the spread, crossing below -Threshold goes long.
type SpreadArbitrage struct {
	Threshold decimal.Decimal
}

func NewSpreadArbitrage(threshold float64) (*SpreadArbitrage, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("spread threshold must be positive, got %v", threshold)
	}

	return &SpreadArbitrage{Threshold: decimal.NewFromFloat(threshold)}, nil
}

func (s *SpreadArbitrage) Name() string {
	return "spread_arbitrage"
}

// HedgeRatio is the ordinary least squares slope of y on x. It is zero when
// x has no variance.
func HedgeRatio(y, x []decimal.Decimal) decimal.Decimal {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	if n < 2 {
		return decimal.Zero
	}

	var sumX, sumY, sumXY, sumXX decimal.Decimal
	for i := 0; i < n; i++ {
		sumX = sumX.Add(x[i])
		sumY = sumY.Add(y[i])
		sumXY = sumXY.Add(x[i].Mul(y[i]))
		sumXX = sumXX.Add(x[i].Mul(x[i]))
	}

	count := decimal.NewFromInt(int64(n))
	denominator := count.Mul(sumXX).Sub(sumX.Mul(sumX))
	if denominator.IsZero() {
		return decimal.Zero
	}

	return count.Mul(sumXY).Sub(sumX.Mul(sumY)).Div(denominator)
}

// Spread returns first - beta * second over the common length.
func (s *SpreadArbitrage) Spread(first, second []decimal.Decimal) []decimal.Decimal {
	beta := HedgeRatio(first, second)

	n := len(first)
	if len(second) < n {
		n = len(second)
	}

	spread := make([]decimal.Decimal, n)
	for i := 0; i < n; i++ {
		spread[i] = first[i].Sub(beta.Mul(second[i]))
	}

	return spread
}

// PairSignals returns one signal per bar of first. Bars past the end of
// second stay flat.
func (s *SpreadArbitrage) PairSignals(first, second []decimal.Decimal) []Signal {
	spread := s.Spread(first, second)
	lower := s.Threshold.Neg()

	signals := make([]Signal, len(first))
	for i := 1; i < len(spread); i++ {
		prev, curr := spread[i-1], spread[i]

		switch {
		case prev.LessThan(s.Threshold) && curr.GreaterThan(s.Threshold):
			signals[i] = Short
		case prev.GreaterThan(lower) && curr.LessThan(lower):
			signals[i] = Long
		}
	}

	return signals
}
