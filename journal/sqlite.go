package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"papertrade/ledger"
	"papertrade/market"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTransaction(tx ledger.Transaction) error {
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(tx_id, kind, symbol, quantity, unit_price, base_amount, time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, string(tx.Kind), tx.Symbol.String(),
		tx.Quantity, tx.UnitPrice, tx.BaseAmount, tx.Time,
	)
	return err
}

func (j *SQLite) RecordValuation(v Valuation) error {
	_, err := j.db.Exec(`
		INSERT INTO valuations
		(time, balance, portfolio_value, profit_loss)
		VALUES (?, ?, ?, ?)`,
		v.Time, v.Balance, v.PortfolioValue, v.ProfitLoss,
	)
	return err
}

// GetTransaction returns a single transaction by ID.
func (j *SQLite) GetTransaction(txID string) (ledger.Transaction, error) {
	row := j.db.QueryRow(`
		SELECT tx_id, kind, symbol, quantity, unit_price, base_amount, time
		FROM transactions
		WHERE tx_id = ?`, txID)

	tx, err := scanTransaction(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return ledger.Transaction{}, fmt.Errorf("transaction %q not found", txID)
		}
		return ledger.Transaction{}, err
	}
	return tx, nil
}

// ListTransactionsBetween returns transactions with time in [start, end),
// oldest first.
func (j *SQLite) ListTransactionsBetween(start, end time.Time) ([]ledger.Transaction, error) {
	rows, err := j.db.Query(`
		SELECT tx_id, kind, symbol, quantity, unit_price, base_amount, time
		FROM transactions
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTransaction(scan func(...any) error) (ledger.Transaction, error) {
	var (
		tx     ledger.Transaction
		kind   string
		symbol string
	)
	err := scan(&tx.ID, &kind, &symbol, &tx.Quantity, &tx.UnitPrice, &tx.BaseAmount, &tx.Time)
	if err != nil {
		return ledger.Transaction{}, err
	}
	tx.Kind = ledger.Kind(kind)
	tx.Symbol = market.Symbol(symbol)
	return tx, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
