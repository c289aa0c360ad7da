package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(e Entry) error {
	var profit sql.NullFloat64
	if e.Profit != nil {
		profit = sql.NullFloat64{Float64: *e.Profit, Valid: true}
	}

	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, wallet, token, token_name, side, amount, price, ts, status, profit, error_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.TradeID, e.Wallet, e.Token, e.TokenName, e.Side,
		e.Amount, e.Price, e.Timestamp, e.Status, profit, e.ErrorReason,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
