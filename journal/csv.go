package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"papertrade/ledger"
)

type CSV struct {
	txs        *csv.Writer
	valuations *csv.Writer
	tf, vf     *os.File
}

// NewCSV creates a CSV journal writing transactions and valuations to two
// files. Existing files are truncated.
func NewCSV(txPath, valuationPath string) (*CSV, error) {
	tf, err := os.Create(txPath)
	if err != nil {
		return nil, err
	}
	vf, err := os.Create(valuationPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	vw := csv.NewWriter(vf)

	if err := tw.Write([]string{"tx_id", "kind", "symbol", "quantity", "unit_price", "base_amount", "time"}); err != nil {
		return nil, err
	}
	if err := vw.Write([]string{"time", "balance", "portfolio_value", "profit_loss"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	vw.Flush()
	if err := vw.Error(); err != nil {
		return nil, err
	}

	return &CSV{txs: tw, valuations: vw, tf: tf, vf: vf}, nil
}

func (j *CSV) RecordTransaction(tx ledger.Transaction) error {
	err := j.txs.Write([]string{
		tx.ID,
		string(tx.Kind),
		tx.Symbol.String(),
		f(tx.Quantity),
		f(tx.UnitPrice),
		f(tx.BaseAmount),
		tx.Time.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	j.txs.Flush()
	return j.txs.Error()
}

func (j *CSV) RecordValuation(v Valuation) error {
	err := j.valuations.Write([]string{
		v.Time.Format(time.RFC3339),
		f(v.Balance),
		f(v.PortfolioValue),
		f(v.ProfitLoss),
	})
	if err != nil {
		return err
	}
	j.valuations.Flush()
	return j.valuations.Error()
}

func (j *CSV) Close() error {
	j.txs.Flush()
	if err := j.txs.Error(); err != nil {
		return err
	}
	j.valuations.Flush()
	if err := j.valuations.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.vf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 8, 64)
}
