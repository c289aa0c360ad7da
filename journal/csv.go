// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal appends trade records to a single CSV file. Reopening an
// existing file keeps its history; the header is written once, when the
// file is first created.
type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)

	if info.Size() == 0 {
		if err := w.Write([]string{"trade_id", "wallet", "token", "token_name", "side", "amount", "price", "ts", "status", "profit", "error_reason"}); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &CSVJournal{w, f}, nil
}

func (j *CSVJournal) RecordTrade(e Entry) error {
	profit := ""
	if e.Profit != nil {
		profit = f(*e.Profit)
	}

	err := j.w.Write([]string{
		e.TradeID,
		e.Wallet,
		e.Token,
		e.TokenName,
		e.Side,
		f(e.Amount),
		f(e.Price),
		e.Timestamp.Format(time.RFC3339),
		e.Status,
		profit,
		e.ErrorReason,
	})
	if err != nil {
		return err
	}

	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
