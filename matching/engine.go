package matching

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/types"
)

// Engine guards one symbol's book. Every call runs to completion under the
// engine lock.
type Engine struct {
	MatchingMutex sync.RWMutex
	Market        string
	OrderBook     *OrderBook
}

func NewEngine(market string, store *models.OrderStore, clock models.Clock) *Engine {
	return &Engine{
		Market:    market,
		OrderBook: NewOrderBook(market, store, clock),
	}
}

func (e *Engine) Submit(h models.Handle) []models.Report {
	e.MatchingMutex.Lock()
	defer e.MatchingMutex.Unlock()

	o := e.OrderBook.store.MustGet(h)
	ordersSubmitted.WithLabelValues(e.Market, string(o.Type)).Inc()

	return e.OrderBook.Add(h)
}

func (e *Engine) Cancel(h models.Handle) bool {
	e.MatchingMutex.Lock()
	defer e.MatchingMutex.Unlock()

	removed := e.OrderBook.Cancel(h)
	if removed {
		ordersCanceled.WithLabelValues(e.Market).Inc()
	}

	return removed
}

// Amend writes the amendment to the store and re-queues the order in one
// critical section, so depth never shows a half applied amendment.
func (e *Engine) Amend(h models.Handle, quantity null.Int64, price decimal.NullDecimal, at time.Time) ([]models.Report, error) {
	e.MatchingMutex.Lock()
	defer e.MatchingMutex.Unlock()

	if err := e.OrderBook.store.Amend(h, quantity, price, at); err != nil {
		return nil, err
	}

	return e.OrderBook.Amend(h), nil
}

func (e *Engine) SetMarketPrice(price decimal.Decimal) []models.Report {
	e.MatchingMutex.Lock()
	defer e.MatchingMutex.Unlock()

	return e.OrderBook.SetMarketPrice(price)
}

func (e *Engine) MarketPrice() decimal.Decimal {
	e.MatchingMutex.RLock()
	defer e.MatchingMutex.RUnlock()

	return e.OrderBook.MarketPrice
}

func (e *Engine) FetchOrderBook(limit int) types.Depth {
	e.MatchingMutex.RLock()
	defer e.MatchingMutex.RUnlock()

	return e.OrderBook.FetchOrderBook(limit)
}

// Engines routes orders to the engine of their symbol, creating engines on
// first use. It satisfies the venue contract of the OMS.
type Engines struct {
	mutex   sync.RWMutex
	store   *models.OrderStore
	clock   models.Clock
	engines map[string]*Engine
}

func NewEngines(store *models.OrderStore, clock models.Clock) *Engines {
	return &Engines{
		store:   store,
		clock:   clock,
		engines: make(map[string]*Engine),
	}
}

// Engine returns the engine for market, creating it when missing.
func (e *Engines) Engine(market string) *Engine {
	e.mutex.RLock()
	engine, found := e.engines[market]
	e.mutex.RUnlock()

	if found {
		return engine
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	if engine, found = e.engines[market]; !found {
		engine = NewEngine(market, e.store, e.clock)
		e.engines[market] = engine
	}

	return engine
}

func (e *Engines) GetEngineByMarket(market string) (*Engine, bool) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	engine, found := e.engines[market]

	return engine, found
}

func (e *Engines) Markets() []string {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	markets := make([]string, 0, len(e.engines))
	for market := range e.engines {
		markets = append(markets, market)
	}
	sort.Strings(markets)

	return markets
}

func (e *Engines) Submit(h models.Handle) []models.Report {
	return e.Engine(e.store.MustGet(h).Symbol).Submit(h)
}

func (e *Engines) Cancel(h models.Handle) bool {
	return e.Engine(e.store.MustGet(h).Symbol).Cancel(h)
}

func (e *Engines) Amend(h models.Handle, quantity null.Int64, price decimal.NullDecimal, at time.Time) ([]models.Report, error) {
	o, found := e.store.Get(h)
	if !found {
		return nil, models.ErrUnknownHandle
	}

	return e.Engine(o.Symbol).Amend(h, quantity, price, at)
}

func (e *Engines) SetMarketPrice(market string, price decimal.Decimal) []models.Report {
	return e.Engine(market).SetMarketPrice(price)
}
