package journal

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	tx_id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	symbol TEXT NOT NULL,
	quantity REAL NOT NULL,
	unit_price REAL NOT NULL,
	base_amount REAL NOT NULL,
	time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_time ON transactions(time);

CREATE TABLE IF NOT EXISTS valuations (
	time DATETIME NOT NULL,
	balance REAL NOT NULL,
	portfolio_value REAL NOT NULL,
	profit_loss REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_valuations_time ON valuations(time);
`
