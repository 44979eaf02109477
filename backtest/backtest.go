package backtest

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/history"
	"github.com/wyhar1/execsim/matching"
	"github.com/wyhar1/execsim/metrics"
	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/oms"
	"github.com/wyhar1/execsim/position"
	"github.com/wyhar1/execsim/strategy"
	"github.com/wyhar1/execsim/types"
)

type Options struct {
	Symbol string
	// PairSymbol is the second leg of a pair run.
	PairSymbol   string
	OrderSize    int64
	OrderType    types.OrderType
	StartingCash decimal.Decimal
}

func OptionsFromConfig(cfg *config.Backtest) Options {
	return Options{
		Symbol:       cfg.Symbol,
		PairSymbol:   cfg.PairSymbol,
		OrderSize:    cfg.OrderSize,
		OrderType:    types.OrderType(cfg.OrderType),
		StartingCash: cfg.Cash(),
	}
}

type Result struct {
	Signals     []strategy.Signal   `json:"-"`
	Reports     []models.Report     `json:"reports"`
	Trades      []models.Trade      `json:"trades"`
	Ledger      []position.Entry    `json:"ledger"`
	Summary     position.PnLSummary `json:"summary"`
	Performance metrics.Performance `json:"performance"`
}

// Runner replays a price series bar by bar, turning every non-flat signal
// into one strategy order per leg backed by synthetic liquidity.
type Runner struct {
	series       *history.Series
	pair         *history.Series
	strategy     strategy.Strategy
	pairStrategy strategy.PairStrategy
}

func NewRunner(series *history.Series, strategy strategy.Strategy) *Runner {
	return &Runner{
		series:   series,
		strategy: strategy,
	}
}

// NewPairRunner trades first against second. Bars missing from either
// series are skipped.
func NewPairRunner(first, second *history.Series, strategy strategy.PairStrategy) *Runner {
	first, second = history.Align(first, second)

	return &Runner{
		series:       first,
		pair:         second,
		pairStrategy: strategy,
	}
}

func (runner *Runner) name() string {
	if runner.pairStrategy != nil {
		return runner.pairStrategy.Name()
	}

	return runner.strategy.Name()
}

func (runner *Runner) signals() []strategy.Signal {
	if runner.pairStrategy != nil {
		return runner.pairStrategy.PairSignals(runner.series.Closes(), runner.pair.Closes())
	}

	return runner.strategy.Signals(runner.series.Closes())
}

// legs lists the traded symbols with their bars, first leg first.
func (runner *Runner) legs(opt Options) ([]string, [][]history.OHLCV, error) {
	symbols := []string{opt.Symbol}
	bars := [][]history.OHLCV{runner.series.Bars()}

	if runner.pair != nil {
		if len(opt.PairSymbol) == 0 {
			return nil, nil, fmt.Errorf("backtest %s: pair symbol is required", opt.Symbol)
		}

		symbols = append(symbols, opt.PairSymbol)
		bars = append(bars, runner.pair.Bars())
	}

	return symbols, bars, nil
}

func (runner *Runner) Run(ctx context.Context, opt Options) (result Result, err error) {
	symbols, legBars, err := runner.legs(opt)
	if err != nil {
		return result, err
	}

	bars := legBars[0]
	if len(bars) == 0 {
		return result, fmt.Errorf("backtest %s: empty price history", opt.Symbol)
	}

	result.Signals = runner.signals()
	if len(result.Signals) < len(bars) {
		return result, fmt.Errorf("backtest %s: %d signals for %d bars", opt.Symbol, len(result.Signals), len(bars))
	}

	sim := newSimulation(bars[0].Time, opt)

	config.Logger.Infof("[execsim.backtest] running %s on %v over %d bars", runner.name(), symbols, len(bars))

	prices := make([]decimal.Decimal, len(symbols))
	for i, bar := range bars {
		if err := ctx.Err(); err != nil {
			return sim.result(result, prices, symbols), err
		}

		for leg := range symbols {
			prices[leg] = legBars[leg][i].Close
		}
		sim.mark(bar.Time, symbols, prices)

		signal := result.Signals[i]
		if signal == strategy.Flat {
			continue
		}

		side := signal.Side()
		for leg, symbol := range symbols {
			if err := sim.trade(symbol, side, prices[leg], bar.Time); err != nil {
				return sim.result(result, prices, symbols), fmt.Errorf("%s signal at %s: %w", signal, bar.Time, err)
			}

			side = side.Opposite()
		}
	}

	return sim.result(result, prices, symbols), nil
}

// simulation is one backtest's matching stack: a clock, engines, OMS,
// tracker and liquidity provider.
type simulation struct {
	opt      Options
	clock    *models.SimClock
	engines  *matching.Engines
	system   *oms.OrderManagementSystem
	tracker  *position.Tracker
	provider *LiquidityProvider

	fills   []models.Report
	tracked []models.Report
}

func newSimulation(start time.Time, opt Options) *simulation {
	clock := models.NewSimClock(start)
	store := models.NewOrderStore()
	engines := matching.NewEngines(store, clock)
	system := oms.NewOrderManagementSystem(store, engines, clock)

	sim := &simulation{
		opt:      opt,
		clock:    clock,
		engines:  engines,
		system:   system,
		tracker:  position.NewTracker(opt.StartingCash),
		provider: NewLiquidityProvider(system),
		fills:    make([]models.Report, 0),
		tracked:  make([]models.Report, 0),
	}

	system.Subscribe(func(r models.Report) {
		sim.fills = append(sim.fills, r)
		if sim.tracker.Update(r) {
			sim.tracked = append(sim.tracked, r)
		}
	})

	return sim
}

// mark moves the clock to at and every leg to its bar price. Stops touched
// by the move execute through the OMS.
func (sim *simulation) mark(at time.Time, symbols []string, prices []decimal.Decimal) {
	sim.clock.Set(at)

	for leg, symbol := range symbols {
		for _, r := range sim.engines.SetMarketPrice(symbol, prices[leg]) {
			sim.system.OnReport(r)
		}
	}
}

// trade rests synthetic liquidity at price and sends the strategy order
// against it.
func (sim *simulation) trade(symbol string, side types.OrderSide, price decimal.Decimal, at time.Time) error {
	if _, err := sim.provider.Provide(symbol, side, sim.opt.OrderSize, price, at); err != nil {
		return fmt.Errorf("provide %s liquidity: %w", symbol, err)
	}

	order := models.Order{
		Symbol:    symbol,
		Side:      side,
		Type:      sim.opt.OrderType,
		Quantity:  sim.opt.OrderSize,
		Timestamp: at,
	}
	if sim.opt.OrderType.Priced() {
		order.Price = decimal.NewNullDecimal(price)
	}

	ack, err := sim.system.NewOrder(order)
	if err != nil {
		return fmt.Errorf("submit %s %s order: %w", side, symbol, err)
	}

	config.Logger.Debugf("[execsim.backtest] %s %s at %s, order %s filled in %d reports", side, symbol, at, ack.OrderID, len(ack.Reports))

	return nil
}

// result fills in everything observed so far, marking open positions at the
// last seen prices.
func (sim *simulation) result(result Result, prices []decimal.Decimal, symbols []string) Result {
	marks := make(map[string]decimal.Decimal, len(symbols))
	for leg, symbol := range symbols {
		if prices[leg].IsPositive() {
			marks[symbol] = prices[leg]
		}
	}

	result.Reports = sim.tracked
	result.Trades = models.TradesFromReports(sim.fills)
	result.Ledger = sim.tracker.Ledger()
	result.Summary = sim.tracker.Summary(marks)
	result.Performance = metrics.Compute(result.Ledger, result.Summary, sim.opt.StartingCash)

	return result
}
