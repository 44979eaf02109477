package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BandBreakout trades a close leaving the band of mean ± Deviation standard
// deviations: long below the lower band, short above the upper band. A bar
// that also crosses the mean stays flat.
type BandBreakout struct {
	Window    int
	Deviation float64
}

func NewBandBreakout(window int, deviation float64) (*BandBreakout, error) {
	if window < 2 {
		return nil, fmt.Errorf("band window must be at least 2, got %d", window)
	}
	if deviation <= 0 {
		return nil, fmt.Errorf("band deviation must be positive, got %v", deviation)
	}

	return &BandBreakout{Window: window, Deviation: deviation}, nil
}

func (s *BandBreakout) Name() string {
	return "band_breakout"
}

func (s *BandBreakout) Signals(closes []decimal.Decimal) []Signal {
	values := floats(closes)
	mean := rollingMean(values, s.Window)
	std := rollingStd(values, s.Window, mean)

	upper := func(i int) float64 { return mean.value[i] + s.Deviation*std.value[i] }
	lower := func(i int) float64 { return mean.value[i] - s.Deviation*std.value[i] }

	signals := make([]Signal, len(values))
	for i := 1; i < len(values); i++ {
		if !std.valid[i-1] {
			continue
		}

		prev, price := values[i-1], values[i]

		crossedMean := (prev < mean.value[i-1] && price > mean.value[i]) ||
			(prev > mean.value[i-1] && price < mean.value[i])
		if crossedMean {
			continue
		}

		switch {
		case prev > lower(i-1) && price < lower(i):
			signals[i] = Long
		case prev < upper(i-1) && price > upper(i):
			signals[i] = Short
		}
	}

	return signals
}
