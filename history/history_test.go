package history

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func bar(d int, close string) OHLCV {
	return OHLCV{Time: day(d), Close: decimal.RequireFromString(close)}
}

func TestLoadFile(t *testing.T) {
	series, err := LoadFile("AAPL", "./fixtures/AAPL.csv")
	require.NoError(t, err)

	assert.Equal(t, 5, series.Len())

	first := series.Bars()[0]
	assert.Equal(t, time.UTC, first.Time.Location())
	assert.Equal(t, int64(1704207600), first.Time.Unix())
	assert.True(t, decimal.RequireFromString("185.64").Equal(first.Close))
	assert.True(t, decimal.NewFromInt(82488700).Equal(first.Volume))

	last, ok := series.Last()
	assert.True(t, ok)
	assert.True(t, decimal.RequireFromString("185.56").Equal(last.Close))
}

func TestReaderCollectsFieldErrors(t *testing.T) {
	r := NewReader(strings.NewReader("1704207600,x,1,1,y,1\n"))

	_, err := r.Read()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
	assert.Contains(t, err.Error(), "2 errors occurred")
}

func TestReaderShortRecord(t *testing.T) {
	r := NewReader(strings.NewReader("1704207600,1,1\n"))

	_, err := ReadSeries("AAPL", r)

	assert.Error(t, err)
}

func TestSeriesQueries(t *testing.T) {
	series := NewSeries("AAPL", []OHLCV{bar(5, "13"), bar(2, "10"), bar(3, "11"), bar(3, "12")})

	assert.Equal(t, 3, series.Len())
	assert.Len(t, series.Closes(), 3)

	r := series.Range(day(3), day(5))
	require.Len(t, r, 2)
	assert.True(t, decimal.NewFromInt(12).Equal(r[0].Close))

	assert.Len(t, series.Range(time.Time{}, day(3)), 2)
	assert.Len(t, series.Range(day(6), time.Time{}), 0)

	lb := series.Lookback(day(4), 5)
	require.Len(t, lb, 2)
	assert.Equal(t, day(3), lb[1].Time)
	assert.Len(t, series.Lookback(day(5), 1), 1)
	assert.Empty(t, series.Lookback(day(1), 3))

	price, ok := series.PriceAt(day(4).Add(12 * time.Hour))
	assert.True(t, ok)
	assert.True(t, decimal.NewFromInt(12).Equal(price))

	price, ok = series.PriceAt(day(5))
	assert.True(t, ok)
	assert.True(t, decimal.NewFromInt(13).Equal(price))

	_, ok = series.PriceAt(day(1))
	assert.False(t, ok)
}

func TestAlign(t *testing.T) {
	first := NewSeries("AAPL", []OHLCV{bar(2, "10"), bar(3, "11"), bar(4, "12"), bar(6, "13")})
	second := NewSeries("MSFT", []OHLCV{bar(1, "20"), bar(3, "21"), bar(4, "22"), bar(5, "23"), bar(6, "24")})

	a, b := Align(first, second)

	require.Equal(t, 3, a.Len())
	require.Equal(t, 3, b.Len())
	assert.Equal(t, "AAPL", a.Symbol)
	assert.Equal(t, "MSFT", b.Symbol)

	for i, x := range a.Bars() {
		assert.Equal(t, x.Time, b.Bars()[i].Time)
	}
	assert.Equal(t, day(3), a.Bars()[0].Time)
	assert.True(t, decimal.NewFromInt(24).Equal(b.Bars()[2].Close))

	empty, other := Align(NewSeries("AAPL", nil), second)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0, other.Len())
}

func TestAlignFixtures(t *testing.T) {
	aapl, err := LoadFile("AAPL", "./fixtures/AAPL.csv")
	require.NoError(t, err)
	msft, err := LoadFile("MSFT", "./fixtures/MSFT.csv")
	require.NoError(t, err)

	a, b := Align(aapl, msft)
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, int64(1704466800), a.Bars()[2].Time.Unix())
}
