package server

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/matching"
	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/oms"
	"github.com/wyhar1/execsim/position"
	"github.com/wyhar1/execsim/types"
)

// MatchingPayloadMessage is one JSON instruction for Process.
type MatchingPayloadMessage struct {
	Action   types.PayloadAction `json:"action"`
	Order    *models.Order       `json:"order"`
	OrderID  string              `json:"order_id"`
	Quantity null.Int64          `json:"quantity"`
	Price    decimal.NullDecimal `json:"price"`
	Market   string              `json:"market"`
}

// EngineServer owns a complete simulation: the order store, one engine per
// market, the OMS and the position tracker. A single lock serializes every
// call so concurrent API requests see a consistent state.
type EngineServer struct {
	mutex   sync.Mutex
	Engines *matching.Engines
	OMS     *oms.OrderManagementSystem
	Tracker *position.Tracker

	trades *tradeLog
}

func NewEngineServer(startingCash decimal.Decimal, clock models.Clock) *EngineServer {
	store := models.NewOrderStore()
	engines := matching.NewEngines(store, clock)

	s := &EngineServer{
		Engines: engines,
		OMS:     oms.NewOrderManagementSystem(store, engines, clock),
		Tracker: position.NewTracker(startingCash),
		trades:  newTradeLog(),
	}

	s.OMS.Subscribe(func(r models.Report) {
		s.Tracker.Update(r)
		s.trades.record(r)
	})

	return s
}

// Subscribe registers fn for every execution report, after the tracker
// and the trade log.
func (s *EngineServer) Subscribe(fn oms.Listener) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.OMS.Subscribe(fn)
}

func (s *EngineServer) Process(payload []byte) error {
	var matching_payload MatchingPayloadMessage
	if err := json.Unmarshal(payload, &matching_payload); err != nil {
		return err
	}

	switch matching_payload.Action {
	case types.ActionSubmit:
		if matching_payload.Order == nil {
			return oms.NewValidationError("market.order.missing_order")
		}
		_, err := s.SubmitOrder(*matching_payload.Order)
		return err
	case types.ActionCancel:
		_, err := s.CancelOrder(matching_payload.OrderID)
		return err
	case types.ActionAmend:
		_, err := s.AmendOrder(matching_payload.OrderID, matching_payload.Quantity, matching_payload.Price)
		return err
	case types.ActionPrice:
		if !matching_payload.Price.Valid {
			return oms.NewValidationError("market.price.missing_price")
		}
		_, err := s.SetMarketPrice(matching_payload.Market, matching_payload.Price.Decimal)
		return err
	default:
		return fmt.Errorf("unknown action: %s", matching_payload.Action)
	}
}

func (s *EngineServer) SubmitOrder(order models.Order) (oms.Ack, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.OMS.NewOrder(order)
}

func (s *EngineServer) CancelOrder(id string) (oms.Ack, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.OMS.CancelOrder(id)
}

func (s *EngineServer) AmendOrder(id string, quantity null.Int64, price decimal.NullDecimal) (oms.Ack, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.OMS.AmendOrder(id, quantity, price)
}

// SetMarketPrice marks market to price. Stops touched by the move execute
// and their reports go through the OMS like any other fill.
func (s *EngineServer) SetMarketPrice(market string, price decimal.Decimal) ([]models.Report, error) {
	if len(market) == 0 {
		return nil, oms.NewValidationError("market.price.invalid_market")
	}
	if !price.IsPositive() {
		return nil, oms.NewValidationError("market.price.non_positive_price")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	reports := s.Engines.SetMarketPrice(market, price)
	for _, r := range reports {
		s.OMS.OnReport(r)
	}

	config.Logger.Debugf("[execsim.server] %s marked at %s, %d reports", market, price, len(reports))

	return reports, nil
}

// Order returns a copy of the order and its current status.
func (s *EngineServer) Order(id string) (models.Order, types.OrderStatus, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	order, err := s.OMS.Order(id)
	if err != nil {
		return order, "", err
	}

	status, err := s.OMS.Status(id)

	return order, status, err
}

func (s *EngineServer) FetchOrderBook(market string, limit int) (types.Depth, bool) {
	engine, found := s.Engines.GetEngineByMarket(market)
	if !found {
		return types.Depth{}, false
	}

	return engine.FetchOrderBook(limit), true
}

// MarketPrices returns the last price of every market that has one.
func (s *EngineServer) MarketPrices() map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal)

	for _, market := range s.Engines.Markets() {
		engine, _ := s.Engines.GetEngineByMarket(market)
		if price := engine.MarketPrice(); price.IsPositive() {
			prices[market] = price
		}
	}

	return prices
}

// Summary values open positions at the current market prices.
func (s *EngineServer) Summary() position.PnLSummary {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.Tracker.Summary(s.MarketPrices())
}
