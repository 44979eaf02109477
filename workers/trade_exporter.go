package workers

import (
	"sync"

	client "github.com/influxdata/influxdb1-client/v2"

	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/models"
)

const tradesMeasurement = "trades"

// TradeExporter pairs execution reports into trades and writes them to
// InfluxDB in batches.
type TradeExporter struct {
	mutex   sync.Mutex
	influx  *config.InfluxClient
	open    map[models.MatchKey]models.Report
	pending []models.Trade
}

func NewTradeExporter(influx *config.InfluxClient) *TradeExporter {
	return &TradeExporter{
		influx:  influx,
		open:    make(map[models.MatchKey]models.Report),
		pending: make([]models.Trade, 0),
	}
}

// Process takes one report. The first report of a match waits for its
// counterpart; the taker report always comes first.
func (w *TradeExporter) Process(report models.Report) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	taker, found := w.open[report.MatchKey()]
	if !found {
		w.open[report.MatchKey()] = report
		return
	}

	delete(w.open, report.MatchKey())
	w.pending = append(w.pending, models.NewTrade(taker, report))
}

func (w *TradeExporter) Pending() int {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return len(w.pending)
}

// Flush writes every pending trade in one batch and returns how many were
// written. On failure the trades stay pending for the next flush.
func (w *TradeExporter) Flush() (int, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if len(w.pending) == 0 {
		return 0, nil
	}

	bp, err := w.influx.NewBatchPoints()
	if err != nil {
		return 0, err
	}

	for _, trade := range w.pending {
		point, err := client.NewPoint(tradesMeasurement, trade.InfluxTags(), trade.InfluxFields(), trade.CreatedAt)
		if err != nil {
			return 0, err
		}

		bp.AddPoint(point)
	}

	if err := w.influx.Write(bp); err != nil {
		return 0, err
	}

	written := len(w.pending)
	w.pending = w.pending[:0]

	config.Logger.Debugf("[execsim.exporter] wrote %d trades", written)

	return written, nil
}
