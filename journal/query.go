package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetTrade returns a single journaled trade by ID.
func (j *SQLite) GetTrade(tradeID string) (Entry, error) {
	row := j.db.QueryRow(`
		SELECT trade_id, wallet, token, token_name, side, amount, price, ts, status, profit, error_reason
		FROM trades
		WHERE trade_id = ?`, tradeID)

	e, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return Entry{}, err
	}
	return e, nil
}

// ListTradesBetween returns journaled trades whose timestamp is within
// [start, end), oldest first.
func (j *SQLite) ListTradesBetween(start, end time.Time) ([]Entry, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, wallet, token, token_name, side, amount, price, ts, status, profit, error_reason
		FROM trades
		WHERE ts >= ? AND ts < ?
		ORDER BY ts ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTradesByWallet returns journaled trades for one source wallet,
// oldest first.
func (j *SQLite) ListTradesByWallet(wallet string) ([]Entry, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, wallet, token, token_name, side, amount, price, ts, status, profit, error_reason
		FROM trades
		WHERE wallet = ?
		ORDER BY ts ASC`, wallet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e      Entry
		profit sql.NullFloat64
	)
	err := s.Scan(
		&e.TradeID,
		&e.Wallet,
		&e.Token,
		&e.TokenName,
		&e.Side,
		&e.Amount,
		&e.Price,
		&e.Timestamp,
		&e.Status,
		&profit,
		&e.ErrorReason,
	)
	if err != nil {
		return Entry{}, err
	}
	if profit.Valid {
		p := profit.Float64
		e.Profit = &p
	}
	return e, nil
}
