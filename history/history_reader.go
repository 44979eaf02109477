package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
)

// HistoryReader reads bars from csv records of
// time,open,high,low,close,volume with time in unix seconds. A first line
// starting with "time" is skipped as a header.
type HistoryReader struct {
	r     *csv.Reader
	count int
}

func NewReader(r io.Reader) *HistoryReader {
	rcsv := csv.NewReader(r)
	rcsv.Comma = ','
	rcsv.ReuseRecord = true
	rcsv.TrimLeadingSpace = true

	return &HistoryReader{
		r: rcsv,
	}
}

func (hr *HistoryReader) Read() (t OHLCV, err error) {
	const (
		Time   = 0
		Open   = 1
		High   = 2
		Low    = 3
		Close  = 4
		Volume = 5
	)

	hr.count++

	record, err := hr.r.Read()
	if err == io.EOF {
		return t, err
	}
	if err != nil {
		return t, fmt.Errorf("read csv record: %w", err)
	}
	if len(record) < recordLen {
		return t, fmt.Errorf("record on line %d: wrong number of fields %d, expected not less than %d", hr.count, len(record), recordLen)
	}

	if hr.count == 1 && record[Time] == "time" {
		return hr.Read()
	}

	var merr *multierror.Error

	unix, err := strconv.ParseInt(record[Time], 10, 64)
	merr = multierror.Append(merr, err)
	t.Time = time.Unix(unix, 0).UTC()

	t.Open, err = decimal.NewFromString(record[Open])
	merr = multierror.Append(merr, err)

	t.High, err = decimal.NewFromString(record[High])
	merr = multierror.Append(merr, err)

	t.Low, err = decimal.NewFromString(record[Low])
	merr = multierror.Append(merr, err)

	t.Close, err = decimal.NewFromString(record[Close])
	merr = multierror.Append(merr, err)

	t.Volume, err = decimal.NewFromString(record[Volume])
	merr = multierror.Append(merr, err)

	if err := merr.ErrorOrNil(); err != nil {
		return t, fmt.Errorf("record on line %d: %w", hr.count, err)
	}

	return t, nil
}
