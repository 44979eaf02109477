package config

import (
	"fmt"
	"io/ioutil"

	"github.com/shopspring/decimal"
	yaml "gopkg.in/yaml.v2"
)

// SpreadArbitrage is the strategy name that trades Symbol against PairSymbol.
const SpreadArbitrage = "spread_arbitrage"

// Backtest describes one backtest run loaded from YAML.
type Backtest struct {
	Symbol          string  `yaml:"symbol"`
	HistoryFile     string  `yaml:"history_file"`
	PairSymbol      string  `yaml:"pair_symbol"`
	PairHistoryFile string  `yaml:"pair_history_file"`
	StartingCash    float64 `yaml:"starting_cash"`
	OrderSize       int64   `yaml:"order_size"`
	OrderType       string  `yaml:"order_type"`
	Strategy        struct {
		Name      string  `yaml:"name"`
		ShortWin  int     `yaml:"short_window"`
		LongWin   int     `yaml:"long_window"`
		Window    int     `yaml:"window"`
		Deviation float64 `yaml:"deviation"`
		Threshold float64 `yaml:"threshold"`
	} `yaml:"strategy"`
}

func (b *Backtest) setDefaults() {
	if b.StartingCash == 0 {
		b.StartingCash = 1000000
	}
	if b.OrderSize == 0 {
		b.OrderSize = 50000
	}
	if len(b.OrderType) == 0 {
		b.OrderType = "market"
	}
	if len(b.Strategy.Name) == 0 {
		b.Strategy.Name = "ma_cross"
	}
	if b.Strategy.ShortWin == 0 {
		b.Strategy.ShortWin = 5
	}
	if b.Strategy.LongWin == 0 {
		b.Strategy.LongWin = 25
	}
	if b.Strategy.Window == 0 {
		b.Strategy.Window = 20
	}
	if b.Strategy.Deviation == 0 {
		b.Strategy.Deviation = 2
	}
	if b.Strategy.Threshold == 0 {
		b.Strategy.Threshold = 2
	}
}

// IsPair reports whether the run trades two symbols.
func (b *Backtest) IsPair() bool {
	return b.Strategy.Name == SpreadArbitrage
}

// Cash returns the starting cash as a decimal.
func (b *Backtest) Cash() decimal.Decimal {
	return decimal.NewFromFloat(b.StartingCash)
}

// ParseBacktest decodes a backtest config and fills defaults.
func ParseBacktest(raw []byte) (*Backtest, error) {
	var cfg Backtest
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse backtest config: %w", err)
	}

	if len(cfg.Symbol) == 0 {
		return nil, fmt.Errorf("parse backtest config: symbol is required")
	}

	cfg.setDefaults()

	if cfg.IsPair() {
		if len(cfg.PairSymbol) == 0 {
			return nil, fmt.Errorf("parse backtest config: pair_symbol is required for %s", SpreadArbitrage)
		}
		if cfg.PairSymbol == cfg.Symbol {
			return nil, fmt.Errorf("parse backtest config: pair_symbol must differ from symbol %s", cfg.Symbol)
		}
	}

	return &cfg, nil
}

func LoadBacktest(path string) (*Backtest, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backtest config: %w", err)
	}

	return ParseBacktest(raw)
}
