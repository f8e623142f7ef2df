package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"fraudlens/internal/analysis"
	"fraudlens/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// bankColumns defines the single-record bank statement header row (20 columns).
var bankColumns = []string{
	"Document Type",
	"Timestamp",
	"Bank Name",
	"Account Holder",
	"Account Number",
	"Statement Period",
	"Opening Balance",
	"Ending Balance",
	"Available Balance",
	"Total Transactions",
	"Total Credits",
	"Total Debits",
	"Net Activity",
	"Fraud Risk Score (%)",
	"Risk Level",
	"Model Confidence (%)",
	"AI Recommendation",
	"AI Confidence (%)",
	"Anomaly Count",
	"Top Anomalies",
}

// checkColumns defines the single-record check header row (17 columns).
var checkColumns = []string{
	"Document Type",
	"Timestamp",
	"Bank Name",
	"Check Number",
	"Date Written",
	"Payee Name",
	"Amount (Numeric)",
	"Amount (Words)",
	"Routing Number",
	"MICR Code",
	"Fraud Risk Score (%)",
	"Risk Level",
	"Model Confidence (%)",
	"AI Recommendation",
	"AI Confidence (%)",
	"Anomaly Count",
	"Top Anomalies",
}

// transactionColumns defines the per-row transaction export header.
var transactionColumns = []string{"Date", "Description", "Amount", "Balance"}

// topAnomalyLimit caps the Top Anomalies cell.
const topAnomalyLimit = 3

// noisePhrases are anomaly strings excluded from the Top Anomalies cell:
// they restate the score columns instead of naming an irregularity.
var noisePhrases = []string{
	"ai recommendation",
	"high fraud risk detected",
	"risk score",
}

// Record carries everything the encoders need about one stored analysis.
type Record struct {
	Kind      domain.DocumentKind
	Result    *analysis.Result
	Raw       json.RawMessage
	CreatedAt time.Time
}

// Writer wraps csv.Writer for streaming analysis exports.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteRecord writes the single-record layout for the record's kind: the
// fixed header row followed by exactly one data row.
func (w *Writer) WriteRecord(rec *Record) error {
	switch rec.Kind {
	case domain.KindBankStatement:
		if err := w.csv.Write(bankColumns); err != nil {
			return err
		}
		return w.csv.Write(bankRow(rec))
	case domain.KindCheck:
		if err := w.csv.Write(checkColumns); err != nil {
			return err
		}
		return w.csv.Write(checkRow(rec))
	default:
		return domain.ErrUnsupportedKind
	}
}

// WriteTransactions writes the per-row transaction layout: header plus one
// row per transaction, in source order, with no truncation.
func (w *Writer) WriteTransactions(rec *Record) error {
	if err := w.csv.Write(transactionColumns); err != nil {
		return err
	}
	if rec.Result == nil {
		return nil
	}
	for _, tx := range rec.Result.Transactions {
		row := []string{cell(tx.Date), cell(tx.Description), cell(tx.Amount), cell(tx.Balance)}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// EncodeCSV renders the kind's primary CSV layout into a buffer, BOM
// included. Bank statements and checks get the single-record layout; generic
// statements get the transaction table.
func EncodeCSV(rec *Record) ([]byte, error) {
	if rec.Kind == domain.KindStatement {
		return EncodeTransactionsCSV(rec)
	}
	var buf bytes.Buffer
	buf.Write(BOM)
	w := NewWriter(&buf)
	if err := w.WriteRecord(rec); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTransactionsCSV renders the per-row transaction table into a buffer,
// BOM included.
func EncodeTransactionsCSV(rec *Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(BOM)
	w := NewWriter(&buf)
	if err := w.WriteTransactions(rec); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func bankRow(rec *Record) []string {
	r := rec.Result
	if r == nil {
		r = &analysis.Result{}
	}
	var bal analysis.Balances
	if r.Balances != nil {
		bal = *r.Balances
	}
	var sum analysis.Summary
	if r.Summary != nil {
		sum = *r.Summary
	}
	anomalies := r.AnomalyList()

	row := make([]string, len(bankColumns))
	row[0] = rec.Kind.Display()
	row[1] = rec.CreatedAt.UTC().Format(time.RFC3339)
	row[2] = cell(r.BankName)
	row[3] = cell(r.AccountHolder)
	row[4] = cell(r.AccountNumber)
	row[5] = cell(r.StatementPeriod)
	row[6] = cell(bal.Opening)
	row[7] = cell(bal.Ending)
	row[8] = cell(bal.Available)
	row[9] = cell(sum.TransactionCount)
	row[10] = cell(sum.TotalCredits)
	row[11] = cell(sum.TotalDebits)
	row[12] = cell(sum.NetActivity)
	row[13] = formatPercent(analysis.ToPercent(r.FraudRiskScore()))
	row[14] = cell(r.RiskLevel())
	row[15] = formatPercent(analysis.ToPercent(r.ModelConfidence()))
	row[16] = cell(r.Recommendation())
	row[17] = formatPercent(analysis.ToPercent(r.AIConfidence()))
	row[18] = strconv.Itoa(len(anomalies))
	row[19] = TopAnomalies(anomalies)
	return row
}

func checkRow(rec *Record) []string {
	r := rec.Result
	if r == nil {
		r = &analysis.Result{}
	}
	anomalies := r.AnomalyList()

	row := make([]string, len(checkColumns))
	row[0] = rec.Kind.Display()
	row[1] = rec.CreatedAt.UTC().Format(time.RFC3339)
	row[2] = cell(r.BankName)
	row[3] = cell(r.CheckNumber)
	row[4] = cell(r.DateWritten)
	row[5] = cell(r.PayeeName)
	row[6] = cell(r.AmountNumeric)
	row[7] = cell(r.AmountWords)
	row[8] = cell(r.RoutingNumber)
	row[9] = cell(r.MICRCode)
	row[10] = formatPercent(analysis.ToPercent(r.FraudRiskScore()))
	row[11] = cell(r.RiskLevel())
	row[12] = formatPercent(analysis.ToPercent(r.ModelConfidence()))
	row[13] = cell(r.Recommendation())
	row[14] = formatPercent(analysis.ToPercent(r.AIConfidence()))
	row[15] = strconv.Itoa(len(anomalies))
	row[16] = TopAnomalies(anomalies)
	return row
}

// cell renders a leaf value for a CSV cell. Missing values encode as the
// empty string, not the display layer's "N/A".
func cell(v analysis.Value) string {
	if analysis.IsMissing(v) {
		return ""
	}
	return string(v)
}

// formatPercent renders a normalized percentage to one decimal place.
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// TopAnomalies builds the Top Anomalies cell: the first anomalies that name
// an actual irregularity, joined with " | ".
func TopAnomalies(anomalies []string) string {
	var kept []string
	for _, a := range anomalies {
		if len(kept) == topAnomalyLimit {
			break
		}
		lower := strings.ToLower(a)
		noisy := false
		for _, phrase := range noisePhrases {
			if strings.Contains(lower, phrase) {
				noisy = true
				break
			}
		}
		if !noisy {
			kept = append(kept, a)
		}
	}
	return strings.Join(kept, " | ")
}
