package strategy

import (
	"math"

	"github.com/shopspring/decimal"
)

// rolling holds a windowed statistic per bar; valid is false until the
// window is full.
type rolling struct {
	value []float64
	valid []bool
}

func floats(closes []decimal.Decimal) []float64 {
	result := make([]float64, len(closes))
	for i, c := range closes {
		result[i] = c.InexactFloat64()
	}

	return result
}

func rollingMean(values []float64, window int) rolling {
	r := rolling{value: make([]float64, len(values)), valid: make([]bool, len(values))}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			r.value[i] = sum / float64(window)
			r.valid[i] = true
		}
	}

	return r
}

// rollingStd is the sample standard deviation over window bars.
func rollingStd(values []float64, window int, mean rolling) rolling {
	r := rolling{value: make([]float64, len(values)), valid: make([]bool, len(values))}
	if window < 2 {
		return r
	}

	for i := window - 1; i < len(values); i++ {
		var ss float64
		for _, v := range values[i-window+1 : i+1] {
			ss += (v - mean.value[i]) * (v - mean.value[i])
		}
		r.value[i] = math.Sqrt(ss / float64(window-1))
		r.valid[i] = true
	}

	return r
}
