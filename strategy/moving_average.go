package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MovingAverageCross goes long when the short moving average crosses above
// the long one and short on the opposite cross.
type MovingAverageCross struct {
	ShortWindow int
	LongWindow  int
}

func NewMovingAverageCross(short, long int) (*MovingAverageCross, error) {
	if short <= 0 || long <= 0 {
		return nil, fmt.Errorf("moving average windows must be positive, got %d and %d", short, long)
	}
	if short >= long {
		return nil, fmt.Errorf("short window %d must be below long window %d", short, long)
	}

	return &MovingAverageCross{ShortWindow: short, LongWindow: long}, nil
}

func (s *MovingAverageCross) Name() string {
	return "ma_cross"
}

func (s *MovingAverageCross) Signals(closes []decimal.Decimal) []Signal {
	values := floats(closes)
	short := rollingMean(values, s.ShortWindow)
	long := rollingMean(values, s.LongWindow)

	signals := make([]Signal, len(values))
	for i := 1; i < len(values); i++ {
		if !long.valid[i-1] {
			continue
		}

		switch {
		case short.value[i-1] < long.value[i-1] && short.value[i] > long.value[i]:
			signals[i] = Long
		case short.value[i-1] > long.value[i-1] && short.value[i] < long.value[i]:
			signals[i] = Short
		}
	}

	return signals
}
