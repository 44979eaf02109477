package matching

import (
	rbt "github.com/emirpasic/gods/trees/redblacktree"
	"github.com/shopspring/decimal"

	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/types"
)

// OrderBook is a single-symbol price-time priority book. It is not safe for
// concurrent use; Engine serializes access.
type OrderBook struct {
	Symbol      string
	MarketPrice decimal.Decimal

	Bids     *rbt.Tree
	Asks     *rbt.Tree
	StopBids *rbt.Tree
	StopAsks *rbt.Tree

	store *models.OrderStore
	clock models.Clock

	activeOrders       map[models.Handle]*OrderKey
	stopOrders         map[models.Handle]*OrderKey
	pendingOrdersQueue *OrderQueue

	lastMatchID uint64
}

const (
	// pendingOrdersCap is the initial buffer size for triggered stop orders.
	pendingOrdersCap int64 = 64
)

// NewOrderBook returns an empty book reading orders from store.
func NewOrderBook(symbol string, store *models.OrderStore, clock models.Clock) *OrderBook {
	if clock == nil {
		clock = models.RealClock{}
	}

	return &OrderBook{
		Symbol:             symbol,
		Bids:               rbt.NewWith(Comparator),
		Asks:               rbt.NewWith(Comparator),
		StopBids:           rbt.NewWith(StopComparator),
		StopAsks:           rbt.NewWith(StopComparator),
		store:              store,
		clock:              clock,
		activeOrders:       make(map[models.Handle]*OrderKey),
		stopOrders:         make(map[models.Handle]*OrderKey),
		pendingOrdersQueue: NewOrderQueue(pendingOrdersCap),
	}
}

// Add matches the order behind h and returns the execution reports, two per
// fill. Market remainders are dropped, limit remainders rest, and stops wait
// until the market price touches their trigger.
func (ob *OrderBook) Add(h models.Handle) []models.Report {
	o := ob.store.MustGet(h)

	config.Logger.Debugf("[execsim.orderbook] insert %s order %s - %s * %d, side %s", o.Type, o.ID, o.Price.Decimal, o.Quantity, o.Side)

	if o.Type == types.TypeStop && !ob.triggered(o) {
		ob.insertStopOrder(h, o)

		return []models.Report{}
	}

	reports := ob.insertOrder(h)

	return append(reports, ob.drainPending()...)
}

func (ob *OrderBook) insertOrder(h models.Handle) []models.Report {
	reports := []models.Report{}
	incoming := ob.store.MustGet(h)

	var takerBooks, makerBooks *rbt.Tree
	switch incoming.Side {
	case types.SideSell:
		takerBooks = ob.Asks
		makerBooks = ob.Bids
	case types.SideBuy:
		takerBooks = ob.Bids
		makerBooks = ob.Asks
	default:
		config.Logger.Errorf("[execsim.orderbook] invalid order side %s", incoming.Side)
		return reports
	}

	for {
		best := makerBooks.Right()
		if best == nil {
			break
		}

		key := best.Key.(*OrderKey)
		maker := ob.store.MustGet(key.Handle)

		if incoming.Type != types.TypeMarket && !incoming.IsCrossed(maker.Price.Decimal) {
			break
		}

		quantity := minQuantity(incoming.Quantity, maker.Quantity)
		price := maker.Price.Decimal
		at := ob.clock.Now()

		ob.lastMatchID++
		reports = append(reports,
			models.NewReport(ob.lastMatchID, incoming, quantity, price, at),
			models.NewReport(ob.lastMatchID, maker, quantity, price, at),
		)
		config.Logger.Debugf("[execsim.orderbook] new fill %s <- %s, %d @ %s", incoming.ID, maker.ID, quantity, price)
		fillsTotal.WithLabelValues(ob.Symbol).Inc()
		filledQuantity.WithLabelValues(ob.Symbol).Add(float64(quantity))

		incoming.Quantity = ob.store.Fill(h, quantity)
		if ob.store.Fill(key.Handle, quantity) == 0 {
			makerBooks.Remove(key)
			delete(ob.activeOrders, key.Handle)
		}

		ob.setMarketPrice(price)

		if incoming.Filled() {
			return reports
		}
	}

	// market remainders never rest
	if incoming.Type == types.TypeMarket {
		config.Logger.Debugf("[execsim.orderbook] market order %s dropped %d unfilled", incoming.ID, incoming.Quantity)
		return reports
	}

	key := newOrderKey(h, incoming)
	takerBooks.Put(key, h)
	ob.activeOrders[h] = key

	return reports
}

func (ob *OrderBook) insertStopOrder(h models.Handle, o models.Order) {
	var stopBooks *rbt.Tree
	switch o.Side {
	case types.SideSell:
		stopBooks = ob.StopAsks
	case types.SideBuy:
		stopBooks = ob.StopBids
	default:
		config.Logger.Errorf("[execsim.orderbook] invalid stop order side %s", o.Side)
		return
	}

	key := newOrderKey(h, o)
	stopBooks.Put(key, h)
	ob.stopOrders[h] = key
}

// triggered reports whether the current market price has touched the stop
// price of o. Without a market price nothing triggers.
func (ob *OrderBook) triggered(o models.Order) bool {
	if !ob.MarketPrice.IsPositive() {
		return false
	}

	if o.IsBid() {
		return ob.MarketPrice.GreaterThanOrEqual(o.Price.Decimal)
	}

	return ob.MarketPrice.LessThanOrEqual(o.Price.Decimal)
}

func (ob *OrderBook) setMarketPrice(newPrice decimal.Decimal) {
	ob.MarketPrice = newPrice

	// price went up to the trigger of stop buys
	for {
		best := ob.StopBids.Right()
		if best == nil {
			break
		}

		key := best.Key.(*OrderKey)
		if key.Price.GreaterThan(newPrice) {
			break
		}

		config.Logger.Debugf("[execsim.orderbook] stop buy %d with stop price %s enqueued", key.Handle, key.Price)

		ob.StopBids.Remove(key)
		delete(ob.stopOrders, key.Handle)
		ob.pendingOrdersQueue.Push(key.Handle)
		stopsTriggered.WithLabelValues(ob.Symbol).Inc()
	}

	// price went down to the trigger of stop sells
	for {
		best := ob.StopAsks.Right()
		if best == nil {
			break
		}

		key := best.Key.(*OrderKey)
		if key.Price.LessThan(newPrice) {
			break
		}

		config.Logger.Debugf("[execsim.orderbook] stop sell %d with stop price %s enqueued", key.Handle, key.Price)

		ob.StopAsks.Remove(key)
		delete(ob.stopOrders, key.Handle)
		ob.pendingOrdersQueue.Push(key.Handle)
		stopsTriggered.WithLabelValues(ob.Symbol).Inc()
	}
}

// drainPending activates triggered stops in trigger order. Fills made by an
// activated stop may trigger further stops, which join the same queue.
func (ob *OrderBook) drainPending() []models.Report {
	reports := []models.Report{}

	for {
		h, ok := ob.pendingOrdersQueue.Pop()
		if !ok {
			break
		}

		reports = append(reports, ob.insertOrder(h)...)
	}

	return reports
}

// SetMarketPrice marks the book to an external price and activates any
// stops it touches.
func (ob *OrderBook) SetMarketPrice(price decimal.Decimal) []models.Report {
	ob.setMarketPrice(price)

	return ob.drainPending()
}

// Cancel removes h from the book. It returns false when h is not resting
// or pending.
func (ob *OrderBook) Cancel(h models.Handle) bool {
	if key, found := ob.activeOrders[h]; found {
		switch key.Side {
		case types.SideSell:
			ob.Asks.Remove(key)
		case types.SideBuy:
			ob.Bids.Remove(key)
		}
		delete(ob.activeOrders, h)

		return true
	}

	if key, found := ob.stopOrders[h]; found {
		switch key.Side {
		case types.SideSell:
			ob.StopAsks.Remove(key)
		case types.SideBuy:
			ob.StopBids.Remove(key)
		}
		delete(ob.stopOrders, h)

		return true
	}

	return false
}

// Amend re-queues h after its quantity or price changed in the store. The
// order loses its time priority and may match at its new price. Orders that
// are not in the book are left alone.
func (ob *OrderBook) Amend(h models.Handle) []models.Report {
	if !ob.Cancel(h) {
		return []models.Report{}
	}

	ob.store.Requeue(h)

	return ob.Add(h)
}

// Resting reports whether h is in the book or waiting for its trigger.
func (ob *OrderBook) Resting(h models.Handle) bool {
	_, active := ob.activeOrders[h]
	_, stop := ob.stopOrders[h]

	return active || stop
}

// BidHandles returns resting bids best first.
func (ob *OrderBook) BidHandles() []models.Handle {
	return handles(ob.Bids)
}

// AskHandles returns resting asks best first.
func (ob *OrderBook) AskHandles() []models.Handle {
	return handles(ob.Asks)
}

func (ob *OrderBook) BestBid() (decimal.Decimal, bool) {
	return bestPrice(ob.Bids)
}

func (ob *OrderBook) BestAsk() (decimal.Decimal, bool) {
	return bestPrice(ob.Asks)
}

func handles(tree *rbt.Tree) []models.Handle {
	result := make([]models.Handle, 0, tree.Size())

	it := tree.Iterator()
	it.End()
	for it.Prev() {
		result = append(result, it.Value().(models.Handle))
	}

	return result
}

func bestPrice(tree *rbt.Tree) (decimal.Decimal, bool) {
	best := tree.Right()
	if best == nil {
		return decimal.Zero, false
	}

	return best.Key.(*OrderKey).Price, true
}

func minQuantity(a, b int64) int64 {
	if a < b {
		return a
	}

	return b
}
