package history

import (
	"time"

	"github.com/shopspring/decimal"
)

const recordLen = 6

// OHLCV is one bar of a price series. Time is the bar open in UTC.
type OHLCV struct {
	Time   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

type Reader interface {
	Read() (t OHLCV, err error)
}
