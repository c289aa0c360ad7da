// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	wallet TEXT NOT NULL,
	token TEXT NOT NULL,
	token_name TEXT NOT NULL DEFAULT '',
	side TEXT NOT NULL,
	amount REAL NOT NULL,
	price REAL NOT NULL,
	ts DATETIME NOT NULL,
	status TEXT NOT NULL,
	profit REAL,
	error_reason TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_wallet ON trades(wallet);
CREATE INDEX IF NOT EXISTS idx_trades_ts ON trades(ts);
`
