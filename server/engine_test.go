package server

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/oms"
	"github.com/wyhar1/execsim/types"
)

type EngineServerTestSuite struct {
	suite.Suite

	server *EngineServer
}

func (s *EngineServerTestSuite) SetupTest() {
	s.server = NewEngineServer(decimal.NewFromInt(10000), nil)
}

func (s *EngineServerTestSuite) process(payload string) {
	s.Require().NoError(s.server.Process([]byte(payload)))
}

func (s *EngineServerTestSuite) TestProcessActions() {
	var seen []models.Report
	s.server.Subscribe(func(r models.Report) { seen = append(seen, r) })

	s.process(`{"action":"submit","order":{"id":"ask","symbol":"AAPL","side":"sell","type":"limit","price":"10.5","quantity":20,"synthetic":true}}`)
	s.process(`{"action":"submit","order":{"id":"bid","symbol":"AAPL","side":"buy","type":"market","quantity":5}}`)

	s.Len(seen, 2)
	s.Equal(int64(5), s.server.Tracker.Position("AAPL"))

	s.process(`{"action":"amend","order_id":"ask","quantity":8,"price":"11"}`)

	order, status, err := s.server.Order("ask")
	s.Require().NoError(err)
	s.Equal(types.StatusAccepted, status)
	s.Equal(int64(8), order.Quantity)

	s.process(`{"action":"price","market":"AAPL","price":"12"}`)
	summary := s.server.Summary()
	s.True(decimal.NewFromInt(60).Equal(summary.Unrealized))

	s.process(`{"action":"cancel","order_id":"ask"}`)

	depth, found := s.server.FetchOrderBook("AAPL", 10)
	s.True(found)
	s.Empty(depth.Asks)

	_, status, _ = s.server.Order("ask")
	s.Equal(types.StatusCanceled, status)
}

func (s *EngineServerTestSuite) TestProcessErrors() {
	s.Error(s.server.Process([]byte(`{"action":"reload"}`)))
	s.Error(s.server.Process([]byte(`not json`)))
	s.True(oms.IsValidation(s.server.Process([]byte(`{"action":"submit"}`))))
	s.True(oms.IsNotFound(s.server.Process([]byte(`{"action":"cancel","order_id":"nope"}`))))
	s.True(oms.IsValidation(s.server.Process([]byte(`{"action":"price","market":"AAPL"}`))))
	s.True(oms.IsValidation(s.server.Process([]byte(`{"action":"price","market":"AAPL","price":"-1"}`))))
}

func (s *EngineServerTestSuite) TestSetMarketPriceTriggersStops() {
	_, err := s.server.SubmitOrder(models.Order{
		ID: "lp", Symbol: "AAPL", Side: types.SideSell, Type: types.TypeLimit,
		Price: decimal.NewNullDecimal(decimal.NewFromInt(10)), Quantity: 10, Synthetic: true,
	})
	s.Require().NoError(err)

	_, err = s.server.SubmitOrder(models.Order{
		ID: "stop", Symbol: "AAPL", Side: types.SideBuy, Type: types.TypeStop,
		Price: decimal.NewNullDecimal(decimal.NewFromInt(11)), Quantity: 10,
	})
	s.Require().NoError(err)

	reports, err := s.server.SetMarketPrice("AAPL", decimal.NewFromInt(11))
	s.Require().NoError(err)
	s.Len(reports, 2)

	_, status, _ := s.server.Order("stop")
	s.Equal(types.StatusFilled, status)

	s.Equal(int64(10), s.server.Tracker.Position("AAPL"))
	s.Len(s.server.Tracker.Ledger(), 1)

	_, found := s.server.FetchOrderBook("MSFT", 10)
	s.False(found)
}

func (s *EngineServerTestSuite) TestTrades() {
	s.process(`{"action":"submit","order":{"id":"a1","symbol":"AAPL","side":"sell","type":"limit","price":"10","quantity":5,"synthetic":true}}`)
	s.process(`{"action":"submit","order":{"id":"a2","symbol":"AAPL","side":"sell","type":"limit","price":"11","quantity":5,"synthetic":true}}`)
	s.process(`{"action":"submit","order":{"id":"b1","symbol":"AAPL","side":"buy","type":"market","quantity":8}}`)
	s.process(`{"action":"submit","order":{"id":"m1","symbol":"MSFT","side":"buy","type":"limit","price":"20","quantity":3}}`)
	s.process(`{"action":"submit","order":{"id":"m2","symbol":"MSFT","side":"sell","type":"limit","price":"19","quantity":3}}`)

	trades := s.server.Trades(TradeFilter{})
	s.Require().Len(trades, 3)
	s.Equal("m2", trades[0].TakerOrderID)
	s.Equal("m1", trades[0].MakerOrderID)
	s.True(decimal.NewFromInt(20).Equal(trades[0].Price))

	aapl := s.server.Trades(TradeFilter{Market: "AAPL", OrderBy: types.OrderByAsc})
	s.Require().Len(aapl, 2)
	s.Equal("a1", aapl[0].MakerOrderID)
	s.Equal(int64(5), aapl[0].Amount)
	s.Equal("a2", aapl[1].MakerOrderID)
	s.Equal(int64(3), aapl[1].Amount)
	s.True(aapl[1].Synthetic)

	s.Len(s.server.Trades(TradeFilter{TakerType: types.SideSell}), 1)

	page := s.server.Trades(TradeFilter{Limit: 2, Page: 2})
	s.Require().Len(page, 1)
	s.Equal(uint64(1), page[0].ID)
	s.Empty(s.server.Trades(TradeFilter{Limit: 2, Page: 3}))
}

func (s *EngineServerTestSuite) TestTradesPageBounds() {
	s.process(`{"action":"submit","order":{"id":"a1","symbol":"AAPL","side":"sell","type":"limit","price":"10","quantity":5,"synthetic":true}}`)
	s.process(`{"action":"submit","order":{"id":"b1","symbol":"AAPL","side":"buy","type":"market","quantity":5}}`)

	s.NotPanics(func() {
		s.Empty(s.server.Trades(TradeFilter{Page: 1 << 62, Limit: 4}))
		s.Empty(s.server.Trades(TradeFilter{Page: 1 << 62, Limit: 1 << 62}))
	})

	s.Len(s.server.Trades(TradeFilter{Page: -3, Limit: -1}), 1)
	s.Len(s.server.Trades(TradeFilter{Limit: 1 << 40}), 1)

	empty := NewEngineServer(decimal.Zero, nil)
	s.NotPanics(func() {
		s.Empty(empty.Trades(TradeFilter{Page: 2}))
	})
}

func TestEngineServer(t *testing.T) {
	suite.Run(t, new(EngineServerTestSuite))
}
