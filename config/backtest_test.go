package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BacktestConfigTestSuite struct {
	suite.Suite
}

func (s *BacktestConfigTestSuite) TestDefaults() {
	cfg, err := ParseBacktest([]byte("symbol: AAPL\n"))
	s.Require().NoError(err)

	s.Equal("AAPL", cfg.Symbol)
	s.Equal(int64(50000), cfg.OrderSize)
	s.Equal("market", cfg.OrderType)
	s.True(decimal.NewFromInt(1000000).Equal(cfg.Cash()))
	s.Equal("ma_cross", cfg.Strategy.Name)
	s.Equal(5, cfg.Strategy.ShortWin)
	s.Equal(25, cfg.Strategy.LongWin)
	s.Equal(20, cfg.Strategy.Window)
	s.Equal(2.0, cfg.Strategy.Deviation)
	s.Equal(2.0, cfg.Strategy.Threshold)
	s.False(cfg.IsPair())
}

func (s *BacktestConfigTestSuite) TestExplicitValuesWin() {
	cfg, err := ParseBacktest([]byte(`
symbol: MSFT
starting_cash: 2500.5
order_size: 10
order_type: limit
strategy:
  name: band_breakout
  window: 7
  deviation: 1.5
`))
	s.Require().NoError(err)

	s.True(decimal.RequireFromString("2500.5").Equal(cfg.Cash()))
	s.Equal(int64(10), cfg.OrderSize)
	s.Equal("limit", cfg.OrderType)
	s.Equal(7, cfg.Strategy.Window)
	s.Equal(1.5, cfg.Strategy.Deviation)
}

func (s *BacktestConfigTestSuite) TestSymbolIsRequired() {
	_, err := ParseBacktest([]byte("order_size: 10\n"))
	s.ErrorContains(err, "symbol is required")
}

func (s *BacktestConfigTestSuite) TestMalformedYAML() {
	_, err := ParseBacktest([]byte("symbol: [AAPL\n"))
	s.Error(err)
}

func (s *BacktestConfigTestSuite) TestPairNeedsSecondSymbol() {
	_, err := ParseBacktest([]byte("symbol: AAPL\nstrategy:\n  name: spread_arbitrage\n"))
	s.ErrorContains(err, "pair_symbol is required")

	_, err = ParseBacktest([]byte("symbol: AAPL\npair_symbol: AAPL\nstrategy:\n  name: spread_arbitrage\n"))
	s.ErrorContains(err, "must differ")
}

func (s *BacktestConfigTestSuite) TestLoadExamples() {
	for _, path := range []string{"./backtests/ma_cross.yml", "./backtests/band_breakout.yml", "./backtests/spread.yml"} {
		cfg, err := LoadBacktest(path)
		s.Require().NoError(err, path)
		s.Equal("AAPL", cfg.Symbol, path)
	}

	cfg, err := LoadBacktest("./backtests/spread.yml")
	s.Require().NoError(err)
	s.True(cfg.IsPair())
	s.Equal("MSFT", cfg.PairSymbol)
	s.Equal("history/fixtures/MSFT.csv", cfg.PairHistoryFile)

	_, err = LoadBacktest("./backtests/missing.yml")
	s.ErrorContains(err, "read backtest config")
}

func TestBacktestConfig(t *testing.T) {
	suite.Run(t, new(BacktestConfigTestSuite))
}
