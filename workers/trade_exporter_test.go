package workers

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/types"
)

type influxStub struct {
	mutex  sync.Mutex
	status int
	bodies []string
	dbs    []string
}

func (s *influxStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	body, _ := ioutil.ReadAll(r.Body)
	s.bodies = append(s.bodies, string(body))
	s.dbs = append(s.dbs, r.URL.Query().Get("db"))

	w.WriteHeader(s.status)
}

func fill(matchID uint64, taker, maker string, quantity int64) []models.Report {
	at := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	price := decimal.RequireFromString("9.5")

	return []models.Report{
		models.NewReport(matchID, models.Order{ID: taker, Symbol: "AAPL", Side: types.SideBuy, Quantity: quantity}, quantity, price, at),
		models.NewReport(matchID, models.Order{ID: maker, Symbol: "AAPL", Side: types.SideSell, Quantity: quantity}, quantity, price, at),
	}
}

func TestTradeExporterFlush(t *testing.T) {
	stub := &influxStub{status: http.StatusNoContent}
	ts := httptest.NewServer(stub)
	defer ts.Close()

	influx, err := config.NewInfluxClient(ts.URL, "execsim_test")
	require.NoError(t, err)
	defer influx.Close()

	exporter := NewTradeExporter(influx)

	written, err := exporter.Flush()
	assert.NoError(t, err)
	assert.Zero(t, written)
	assert.Empty(t, stub.bodies)

	for _, r := range append(fill(1, "t1", "m1", 50), fill(2, "t2", "m2", 5)...) {
		exporter.Process(r)
	}
	exporter.Process(fill(3, "t3", "m3", 1)[0])

	assert.Equal(t, 2, exporter.Pending())

	written, err = exporter.Flush()
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.Zero(t, exporter.Pending())

	require.Len(t, stub.bodies, 1)
	assert.Equal(t, "execsim_test", stub.dbs[0])

	lines := strings.Split(strings.TrimSpace(stub.bodies[0]), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "trades,market=AAPL "))
	assert.Contains(t, lines[0], "amount=50i")
	assert.Contains(t, lines[0], `taker_type="buy"`)
	assert.Contains(t, lines[1], "amount=5i")
}

func TestTradeExporterKeepsTradesOnFailure(t *testing.T) {
	stub := &influxStub{status: http.StatusInternalServerError}
	ts := httptest.NewServer(stub)
	defer ts.Close()

	influx, err := config.NewInfluxClient(ts.URL, "execsim_test")
	require.NoError(t, err)

	exporter := NewTradeExporter(influx)
	for _, r := range fill(1, "t", "m", 10) {
		exporter.Process(r)
	}

	_, err = exporter.Flush()
	assert.Error(t, err)
	assert.Equal(t, 1, exporter.Pending())

	stub.mutex.Lock()
	stub.status = http.StatusNoContent
	stub.mutex.Unlock()

	written, err := exporter.Flush()
	assert.NoError(t, err)
	assert.Equal(t, 1, written)
}
