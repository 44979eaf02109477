package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/types"
)

type Signal int8

const (
	Short Signal = -1
	Flat  Signal = 0
	Long  Signal = 1
)

// Side maps a non-flat signal to the order side that follows it.
func (s Signal) Side() types.OrderSide {
	if s == Long {
		return types.SideBuy
	}

	return types.SideSell
}

func (s Signal) String() string {
	switch s {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return "flat"
	}
}

// Strategy turns a close price series into one signal per bar.
type Strategy interface {
	Name() string
	Signals(closes []decimal.Decimal) []Signal
}

func FromConfig(cfg *config.Backtest) (Strategy, error) {
	switch cfg.Strategy.Name {
	case "ma_cross":
		return NewMovingAverageCross(cfg.Strategy.ShortWin, cfg.Strategy.LongWin)
	case "band_breakout":
		return NewBandBreakout(cfg.Strategy.Window, cfg.Strategy.Deviation)
	case config.SpreadArbitrage:
		return nil, fmt.Errorf("strategy %q trades a pair of symbols", cfg.Strategy.Name)
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy.Name)
	}
}

func PairFromConfig(cfg *config.Backtest) (PairStrategy, error) {
	switch cfg.Strategy.Name {
	case config.SpreadArbitrage:
		return NewSpreadArbitrage(cfg.Strategy.Threshold)
	default:
		return nil, fmt.Errorf("unknown pair strategy %q", cfg.Strategy.Name)
	}
}
