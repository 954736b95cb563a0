// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	pair TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	stop_loss REAL NOT NULL DEFAULT 0,
	take_profit REAL NOT NULL DEFAULT 0,
	lot_size REAL NOT NULL,
	contract_size INTEGER NOT NULL,
	risk_percent REAL NOT NULL DEFAULT 0,
	risk_reward REAL NOT NULL DEFAULT 0,
	result_usd REAL NOT NULL,
	result_idr REAL NOT NULL,
	result_cent REAL NOT NULL,
	pnl_percent REAL NOT NULL,
	denomination TEXT NOT NULL DEFAULT 'USD',
	created_at DATETIME NOT NULL,
	session TEXT NOT NULL DEFAULT '',
	strategy TEXT NOT NULL DEFAULT '',
	confidence INTEGER NOT NULL DEFAULT 0,
	emotion TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	screenshot TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_created_at ON trades(created_at);

CREATE TABLE IF NOT EXISTS balances (
	denomination TEXT PRIMARY KEY,
	amount REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS balance_changes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	trade_id TEXT NOT NULL,
	denomination TEXT NOT NULL,
	amount REAL NOT NULL,
	previous_amount REAL NOT NULL,
	new_amount REAL NOT NULL,
	changed_at DATETIME NOT NULL
);
`

// postgresMigrations mirror Schema for PostgreSQL.
var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS trades (
		trade_id TEXT PRIMARY KEY,
		pair TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price DOUBLE PRECISION NOT NULL,
		exit_price DOUBLE PRECISION NOT NULL,
		stop_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
		take_profit DOUBLE PRECISION NOT NULL DEFAULT 0,
		lot_size DOUBLE PRECISION NOT NULL,
		contract_size INTEGER NOT NULL,
		risk_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
		risk_reward DOUBLE PRECISION NOT NULL DEFAULT 0,
		result_usd DOUBLE PRECISION NOT NULL,
		result_idr DOUBLE PRECISION NOT NULL,
		result_cent DOUBLE PRECISION NOT NULL,
		pnl_percent DOUBLE PRECISION NOT NULL,
		denomination TEXT NOT NULL DEFAULT 'USD',
		created_at TIMESTAMPTZ NOT NULL,
		session TEXT NOT NULL DEFAULT '',
		strategy TEXT NOT NULL DEFAULT '',
		confidence INTEGER NOT NULL DEFAULT 0,
		emotion TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		screenshot TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trades_created_at ON trades(created_at)`,
	`CREATE TABLE IF NOT EXISTS balances (
		denomination TEXT PRIMARY KEY,
		amount DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS balance_changes (
		id BIGSERIAL PRIMARY KEY,
		trade_id TEXT NOT NULL,
		denomination TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		previous_amount DOUBLE PRECISION NOT NULL,
		new_amount DOUBLE PRECISION NOT NULL,
		changed_at TIMESTAMPTZ NOT NULL
	)`,
}
