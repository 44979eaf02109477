package position

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/types"
)

// Entry is one immutable ledger row.
type Entry struct {
	Symbol    string          `json:"symbol"`
	Side      types.OrderSide `json:"side"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CashFlow  decimal.Decimal `json:"cash_flow"`
	Timestamp time.Time       `json:"timestamp"`
	OrderID   string          `json:"order_id"`
}

type PnLSummary struct {
	Realized     decimal.Decimal            `json:"realized"`
	Unrealized   decimal.Decimal            `json:"unrealized"`
	Total        decimal.Decimal            `json:"total"`
	Cash         decimal.Decimal            `json:"cash"`
	Positions    map[string]int64           `json:"positions"`
	AvgFillPrice map[string]decimal.Decimal `json:"avg_fill_price"`
}

type fills struct {
	quantity int64
	notional decimal.Decimal
}

// Tracker accounts positions and cash from execution reports. Each report
// must be applied at most once; a replayed report is counted again.
type Tracker struct {
	mutex        sync.RWMutex
	startingCash decimal.Decimal
	cash         decimal.Decimal
	positions    map[string]int64
	fills        map[string]*fills
	ledger       []Entry
}

func NewTracker(startingCash decimal.Decimal) *Tracker {
	return &Tracker{
		startingCash: startingCash,
		cash:         startingCash,
		positions:    make(map[string]int64),
		fills:        make(map[string]*fills),
		ledger:       make([]Entry, 0),
	}
}

// Update applies report and returns whether it was recorded. Reports of
// synthetic orders are not attributable to the strategy and are skipped.
func (t *Tracker) Update(report models.Report) bool {
	if report.Synthetic {
		config.Logger.Debugf("[execsim.tracker] skip synthetic fill of %s", report.OrderID)
		return false
	}

	delta := report.FilledQuantity
	if report.Side == types.SideSell {
		delta = -delta
	}
	cashFlow := report.Price.Mul(decimal.NewFromInt(-delta))

	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.positions[report.Symbol] += delta
	t.cash = t.cash.Add(cashFlow)

	f, found := t.fills[report.Symbol]
	if !found {
		f = &fills{}
		t.fills[report.Symbol] = f
	}
	f.quantity += report.FilledQuantity
	f.notional = f.notional.Add(report.Total())

	t.ledger = append(t.ledger, Entry{
		Symbol:    report.Symbol,
		Side:      report.Side,
		Quantity:  delta,
		Price:     report.Price,
		CashFlow:  cashFlow,
		Timestamp: report.Timestamp,
		OrderID:   report.OrderID,
	})

	return true
}

// Summary values open positions at prices; symbols without a price count as
// zero. It does not modify the tracker.
func (t *Tracker) Summary(prices map[string]decimal.Decimal) PnLSummary {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	summary := PnLSummary{
		Realized:     decimal.Zero,
		Unrealized:   decimal.Zero,
		Cash:         t.cash,
		Positions:    make(map[string]int64, len(t.positions)),
		AvgFillPrice: make(map[string]decimal.Decimal, len(t.fills)),
	}

	for _, e := range t.ledger {
		summary.Realized = summary.Realized.Add(e.CashFlow)
	}

	for symbol, quantity := range t.positions {
		summary.Positions[symbol] = quantity

		if price, found := prices[symbol]; found {
			summary.Unrealized = summary.Unrealized.Add(price.Mul(decimal.NewFromInt(quantity)))
		}
	}

	for symbol, f := range t.fills {
		if f.quantity > 0 {
			summary.AvgFillPrice[symbol] = f.notional.Div(decimal.NewFromInt(f.quantity))
		}
	}

	summary.Total = summary.Realized.Add(summary.Unrealized)

	return summary
}

// Ledger returns a copy of every recorded entry in application order.
func (t *Tracker) Ledger() []Entry {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	ledger := make([]Entry, len(t.ledger))
	copy(ledger, t.ledger)

	return ledger
}

func (t *Tracker) Cash() decimal.Decimal {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.cash
}

func (t *Tracker) StartingCash() decimal.Decimal {
	return t.startingCash
}

func (t *Tracker) Position(symbol string) int64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.positions[symbol]
}

// Symbols returns every symbol with at least one recorded fill, sorted.
func (t *Tracker) Symbols() []string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	symbols := make([]string, 0, len(t.positions))
	for symbol := range t.positions {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	return symbols
}
