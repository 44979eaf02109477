package server

import (
	"time"

	"github.com/wyhar1/execsim/models"
	"github.com/wyhar1/execsim/types"
)

// TradeFilter selects trades from the log. Zero values match everything.
type TradeFilter struct {
	Market    string
	TakerType types.OrderSide
	TimeFrom  time.Time
	TimeTo    time.Time
	OrderBy   types.OrderBy
	Limit     int
	Page      int
}

// tradeLog pairs the reports seen by the OMS into trades. It is fed from an
// OMS listener and so always runs under the server lock.
type tradeLog struct {
	open   map[models.MatchKey]models.Report
	trades []models.Trade
}

func newTradeLog() *tradeLog {
	return &tradeLog{
		open:   make(map[models.MatchKey]models.Report),
		trades: make([]models.Trade, 0),
	}
}

func (l *tradeLog) record(report models.Report) {
	taker, found := l.open[report.MatchKey()]
	if !found {
		l.open[report.MatchKey()] = report
		return
	}

	delete(l.open, report.MatchKey())
	l.trades = append(l.trades, models.NewTrade(taker, report))
}

func (f TradeFilter) match(t models.Trade) bool {
	if len(f.Market) > 0 && t.Symbol != f.Market {
		return false
	}
	if len(f.TakerType) > 0 && t.TakerType != f.TakerType {
		return false
	}
	if !f.TimeFrom.IsZero() && t.CreatedAt.Before(f.TimeFrom) {
		return false
	}
	if !f.TimeTo.IsZero() && !t.CreatedAt.Before(f.TimeTo) {
		return false
	}

	return true
}

const (
	DefaultTradesLimit = 100
	MaxTradesLimit     = 1000
)

// Trades returns one page of matching trades, newest first unless OrderBy
// is asc. Limit defaults to 100 and is capped at 1000; Page defaults to 1.
func (s *EngineServer) Trades(filter TradeFilter) []models.Trade {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if filter.Limit <= 0 {
		filter.Limit = DefaultTradesLimit
	}
	if filter.Limit > MaxTradesLimit {
		filter.Limit = MaxTradesLimit
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	matched := make([]models.Trade, 0)
	for _, t := range s.trades.trades {
		if filter.match(t) {
			matched = append(matched, t)
		}
	}

	if filter.OrderBy != types.OrderByAsc {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}

	// compare page numbers, the offset of a huge page overflows
	if len(matched) == 0 || filter.Page-1 > (len(matched)-1)/filter.Limit {
		return []models.Trade{}
	}

	offset := (filter.Page - 1) * filter.Limit

	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[offset:end]
}
