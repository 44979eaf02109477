package history

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Series is a time-ordered price history of one symbol.
type Series struct {
	Symbol string
	bars   []OHLCV
}

// NewSeries sorts bars by time. Bars sharing a timestamp keep the last one.
func NewSeries(symbol string, bars []OHLCV) *Series {
	sorted := make([]OHLCV, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	result := make([]OHLCV, 0, len(sorted))
	for _, bar := range sorted {
		if n := len(result); n > 0 && result[n-1].Time.Equal(bar.Time) {
			result[n-1] = bar
			continue
		}
		result = append(result, bar)
	}

	return &Series{Symbol: symbol, bars: result}
}

// ReadSeries drains r into a series.
func ReadSeries(symbol string, r Reader) (*Series, error) {
	bars := make([]OHLCV, 0)

	for {
		bar, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		bars = append(bars, bar)
	}

	return NewSeries(symbol, bars), nil
}

func LoadFile(symbol, path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	defer f.Close()

	return ReadSeries(symbol, NewReader(f))
}

func (s *Series) Len() int {
	return len(s.bars)
}

func (s *Series) Bars() []OHLCV {
	bars := make([]OHLCV, len(s.bars))
	copy(bars, s.bars)

	return bars
}

func (s *Series) Closes() []decimal.Decimal {
	closes := make([]decimal.Decimal, len(s.bars))
	for i, bar := range s.bars {
		closes[i] = bar.Close
	}

	return closes
}

// Range returns the bars with from <= time <= to. A zero bound is open.
func (s *Series) Range(from, to time.Time) []OHLCV {
	start := 0
	if !from.IsZero() {
		start = sort.Search(len(s.bars), func(i int) bool {
			return !s.bars[i].Time.Before(from)
		})
	}

	end := len(s.bars)
	if !to.IsZero() {
		end = sort.Search(len(s.bars), func(i int) bool {
			return s.bars[i].Time.After(to)
		})
	}

	if start >= end {
		return []OHLCV{}
	}

	result := make([]OHLCV, end-start)
	copy(result, s.bars[start:end])

	return result
}

// Lookback returns up to n bars ending at the last bar not after at.
func (s *Series) Lookback(at time.Time, n int) []OHLCV {
	end := s.index(at) + 1
	start := end - n
	if start < 0 {
		start = 0
	}

	result := make([]OHLCV, end-start)
	copy(result, s.bars[start:end])

	return result
}

// PriceAt returns the close of the bar at ts, or of the last bar before it.
// It reports false when ts precedes the series.
func (s *Series) PriceAt(ts time.Time) (decimal.Decimal, bool) {
	i := s.index(ts)
	if i < 0 {
		return decimal.Zero, false
	}

	return s.bars[i].Close, true
}

func (s *Series) Last() (OHLCV, bool) {
	if len(s.bars) == 0 {
		return OHLCV{}, false
	}

	return s.bars[len(s.bars)-1], true
}

// Align restricts two series to the timestamps both of them have, so bar i
// of each result describes the same moment.
func Align(first, second *Series) (*Series, *Series) {
	a := make([]OHLCV, 0, len(first.bars))
	b := make([]OHLCV, 0, len(second.bars))

	i, j := 0, 0
	for i < len(first.bars) && j < len(second.bars) {
		x, y := first.bars[i], second.bars[j]

		switch {
		case x.Time.Before(y.Time):
			i++
		case y.Time.Before(x.Time):
			j++
		default:
			a = append(a, x)
			b = append(b, y)
			i++
			j++
		}
	}

	return &Series{Symbol: first.Symbol, bars: a}, &Series{Symbol: second.Symbol, bars: b}
}

// index of the last bar not after ts, -1 when none
func (s *Series) index(ts time.Time) int {
	return sort.Search(len(s.bars), func(i int) bool {
		return s.bars[i].Time.After(ts)
	}) - 1
}
