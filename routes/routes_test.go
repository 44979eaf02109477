package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/wyhar1/execsim/controllers/entities"
	"github.com/wyhar1/execsim/controllers/helpers"
	"github.com/wyhar1/execsim/oms"
	"github.com/wyhar1/execsim/server"
	"github.com/wyhar1/execsim/types"
)

type RoutesTestSuite struct {
	suite.Suite

	app *fiber.App
}

func (s *RoutesTestSuite) SetupTest() {
	s.app = SetupRouter(server.NewEngineServer(decimal.NewFromInt(100000), nil))
}

func (s *RoutesTestSuite) request(method, path, body string, out interface{}) int {
	var reader io.Reader
	if len(body) > 0 {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func (s *RoutesTestSuite) createOrder(body string) oms.Ack {
	var ack oms.Ack
	s.Require().Equal(201, s.request(http.MethodPost, "/api/v2/orders", body, &ack))

	return ack
}

func (s *RoutesTestSuite) TestOrderLifecycle() {
	ack := s.createOrder(`{"id":"1","market":"AAPL","side":"buy","ord_type":"limit","price":"10.00","volume":100}`)
	s.Equal("1", ack.OrderID)
	s.Equal(types.StatusAccepted, ack.Status)

	var order entities.OrderEntity
	s.Equal(200, s.request(http.MethodGet, "/api/v2/orders/1", "", &order))
	s.Equal(types.StatusAccepted, order.State)
	s.Equal(int64(100), order.RemainingVolume)
	s.True(decimal.RequireFromString("10").Equal(order.Price.Decimal))

	s.Equal(200, s.request(http.MethodPut, "/api/v2/orders/1", `{"volume":40,"price":"9.5"}`, &ack))
	s.Equal(types.StatusAmended, ack.Status)

	s.Equal(200, s.request(http.MethodGet, "/api/v2/orders/1", "", &order))
	s.Equal(int64(40), order.RemainingVolume)

	s.Equal(200, s.request(http.MethodDelete, "/api/v2/orders/1", "", &ack))
	s.Equal(types.StatusCanceled, ack.Status)

	var errs helpers.Errors
	s.Equal(409, s.request(http.MethodDelete, "/api/v2/orders/1", "", &errs))
	s.Equal([]string{"market.order.invalid_state"}, errs.Errors)

	s.Equal(409, s.request(http.MethodPut, "/api/v2/orders/1", `{"volume":10}`, nil))
}

func (s *RoutesTestSuite) TestCreateOrderValidation() {
	var errs helpers.Errors

	s.Equal(422, s.request(http.MethodPost, "/api/v2/orders", `{"market":"AAPL","side":"hold","ord_type":"market","volume":1}`, &errs))
	s.NotEmpty(errs.Errors)

	errs = helpers.Errors{}
	s.Equal(422, s.request(http.MethodPost, "/api/v2/orders", `{"market":"AAPL","side":"buy","ord_type":"market","volume":-5}`, &errs))
	s.NotEmpty(errs.Errors)

	errs = helpers.Errors{}
	s.Equal(422, s.request(http.MethodPost, "/api/v2/orders", `{"market":"AAPL","side":"buy","ord_type":"limit","volume":5}`, &errs))
	s.Equal([]string{"market.order.missing_price"}, errs.Errors)

	errs = helpers.Errors{}
	s.Equal(422, s.request(http.MethodPost, "/api/v2/orders", `{"market":"AAPL","side":"sell","ord_type":"stop","price":"0","volume":5}`, &errs))
	s.Equal([]string{"market.order.non_positive_price"}, errs.Errors)

	s.createOrder(`{"id":"dup","market":"AAPL","side":"buy","ord_type":"market","volume":1}`)
	errs = helpers.Errors{}
	s.Equal(422, s.request(http.MethodPost, "/api/v2/orders", `{"id":"dup","market":"AAPL","side":"buy","ord_type":"market","volume":1}`, &errs))
	s.Equal([]string{"market.order.duplicate_id"}, errs.Errors)
}

func (s *RoutesTestSuite) TestAmendValidation() {
	s.createOrder(`{"id":"m","market":"AAPL","side":"buy","ord_type":"limit","price":"1","volume":1}`)

	var errs helpers.Errors
	s.Equal(422, s.request(http.MethodPut, "/api/v2/orders/m", `{}`, &errs))
	s.Equal([]string{"market.order.missing_amendment"}, errs.Errors)

	errs = helpers.Errors{}
	s.Equal(422, s.request(http.MethodPut, "/api/v2/orders/m", `{"volume":0}`, &errs))
	s.Equal([]string{"market.order.non_positive_quantity"}, errs.Errors)

	s.Equal(404, s.request(http.MethodPut, "/api/v2/orders/missing", `{"volume":3}`, nil))
	s.Equal(404, s.request(http.MethodGet, "/api/v2/orders/missing", "", nil))
	s.Equal(404, s.request(http.MethodDelete, "/api/v2/orders/missing", "", nil))
}

func (s *RoutesTestSuite) TestDepthAndPnL() {
	s.createOrder(`{"id":"lp","market":"AAPL","side":"sell","ord_type":"limit","price":"10.5","volume":30,"synthetic":true}`)
	s.createOrder(`{"id":"lp2","market":"AAPL","side":"sell","ord_type":"limit","price":"10.5","volume":20,"synthetic":true}`)

	ack := s.createOrder(`{"id":"buy","market":"AAPL","side":"buy","ord_type":"market","volume":40}`)
	s.Len(ack.Reports, 4)

	var depth types.Depth
	s.Equal(200, s.request(http.MethodGet, "/api/v2/markets/AAPL/depth?limit=5", "", &depth))
	s.Require().Len(depth.Asks, 1)
	s.True(decimal.RequireFromString("10.5").Equal(depth.Asks[0][0]))
	s.True(decimal.NewFromInt(10).Equal(depth.Asks[0][1]))
	s.Empty(depth.Bids)

	s.Equal(404, s.request(http.MethodGet, "/api/v2/markets/MSFT/depth", "", nil))
	s.Equal(422, s.request(http.MethodGet, "/api/v2/markets/AAPL/depth?limit=-1", "", nil))

	s.Equal(200, s.request(http.MethodPost, "/api/v2/markets/AAPL/price", `{"price":"12"}`, nil))
	s.Equal(422, s.request(http.MethodPost, "/api/v2/markets/AAPL/price", `{"price":"abc"}`, nil))
	s.Equal(422, s.request(http.MethodPost, "/api/v2/markets/AAPL/price", `{"price":"-3"}`, nil))
	s.Equal(422, s.request(http.MethodPost, "/api/v2/markets/AAPL/price", `{}`, nil))

	var pnl entities.PnLEntity
	s.Equal(200, s.request(http.MethodGet, "/api/v2/pnl", "", &pnl))
	s.Equal(int64(40), pnl.Summary.Positions["AAPL"])
	s.True(decimal.NewFromInt(-420).Equal(pnl.Summary.Realized))
	s.True(decimal.NewFromInt(480).Equal(pnl.Summary.Unrealized))
	s.Equal(2, pnl.Performance.Trades)
}

func (s *RoutesTestSuite) TestTrades() {
	s.createOrder(`{"id":"lp","market":"AAPL","side":"sell","ord_type":"limit","price":"10","volume":10,"synthetic":true}`)
	s.createOrder(`{"id":"lp2","market":"AAPL","side":"sell","ord_type":"limit","price":"11","volume":10,"synthetic":true}`)
	s.createOrder(`{"id":"buy","market":"AAPL","side":"buy","ord_type":"market","volume":15}`)

	var trades []entities.TradeEntity
	s.Equal(200, s.request(http.MethodGet, "/api/v2/trades?market=AAPL&order_by=asc", "", &trades))
	s.Require().Len(trades, 2)
	s.Equal("buy", trades[0].TakerOrderID)
	s.Equal("lp", trades[0].MakerOrderID)
	s.Equal(int64(10), trades[0].Amount)
	s.Equal(types.SideBuy, trades[0].TakerType)
	s.True(decimal.NewFromInt(55).Equal(trades[1].Total))

	s.Equal(200, s.request(http.MethodGet, "/api/v2/trades?type=sell", "", &trades))
	s.Empty(trades)

	s.Equal(422, s.request(http.MethodGet, "/api/v2/trades?type=short", "", nil))
	s.Equal(422, s.request(http.MethodGet, "/api/v2/trades?order_by=up", "", nil))
	s.Equal(422, s.request(http.MethodGet, "/api/v2/trades?limit=5000", "", nil))

	s.Equal(200, s.request(http.MethodGet, "/api/v2/trades?page=4611686018427387904&limit=4", "", &trades))
	s.Empty(trades)
}

func (s *RoutesTestSuite) TestTimestamp() {
	s.Equal(200, s.request(http.MethodGet, "/api/v2/public/timestamp", "", nil))
}

func TestRoutes(t *testing.T) {
	suite.Run(t, new(RoutesTestSuite))
}
