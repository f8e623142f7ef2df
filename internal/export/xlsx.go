package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"fraudlens/internal/analysis"
	"fraudlens/internal/domain"
)

const (
	xlsxSheet            = "Analysis"
	xlsxTransactionSheet = "Transactions"
)

// EncodeXLSX renders the analysis as a workbook: a summary sheet with the
// risk verdict and extracted sections, plus a transaction sheet for bank
// statements. Same data as the CSV layouts, in a reviewer-friendly shape.
func EncodeXLSX(rec *Record, sections domain.Sections) ([]byte, error) {
	r := rec.Result
	if r == nil {
		r = &analysis.Result{}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	_ = f.SetColWidth(xlsxSheet, "A", "A", 26)
	_ = f.SetColWidth(xlsxSheet, "B", "B", 64)

	row := 1
	put := func(label, value string) {
		_ = f.SetCellValue(xlsxSheet, fmt.Sprintf("A%d", row), label)
		_ = f.SetCellValue(xlsxSheet, fmt.Sprintf("B%d", row), value)
		row++
	}
	heading := func(name string) {
		axis := fmt.Sprintf("A%d", row)
		_ = f.SetCellValue(xlsxSheet, axis, name)
		_ = f.SetCellStyle(xlsxSheet, axis, axis, bold)
		row++
	}

	heading("Document")
	put("Document Type", rec.Kind.Display())
	put("Timestamp", rec.CreatedAt.UTC().Format(time.RFC3339))
	row++

	heading("Risk Assessment")
	put("Fraud Risk Score (%)", formatPercent(analysis.ToPercent(r.FraudRiskScore())))
	put("Risk Level", displayCell(r.RiskLevel()))
	put("Model Confidence (%)", formatPercent(analysis.ToPercent(r.ModelConfidence())))
	put("AI Recommendation", displayCell(r.Recommendation()))
	put("AI Confidence (%)", formatPercent(analysis.ToPercent(r.AIConfidence())))
	put("Anomaly Count", strconv.Itoa(len(r.AnomalyList())))
	put("Top Anomalies", TopAnomalies(r.AnomalyList()))
	row++

	for _, section := range sections {
		heading(section.Name)
		for _, field := range section.Fields {
			put(field.Label, field.Value)
		}
		row++
	}

	if rec.Kind == domain.KindBankStatement {
		if err := writeTransactionSheet(f, bold, r); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeTransactionSheet adds the full transaction table, in source order and
// untruncated, as a second sheet.
func writeTransactionSheet(f *excelize.File, bold int, r *analysis.Result) error {
	if _, err := f.NewSheet(xlsxTransactionSheet); err != nil {
		return err
	}
	_ = f.SetColWidth(xlsxTransactionSheet, "A", "A", 14)
	_ = f.SetColWidth(xlsxTransactionSheet, "B", "B", 48)
	_ = f.SetColWidth(xlsxTransactionSheet, "C", "D", 16)

	for i, name := range transactionColumns {
		axis, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		_ = f.SetCellValue(xlsxTransactionSheet, axis, name)
		_ = f.SetCellStyle(xlsxTransactionSheet, axis, axis, bold)
	}

	for i, tx := range r.Transactions {
		cells := []string{cell(tx.Date), cell(tx.Description), cell(tx.Amount), cell(tx.Balance)}
		for j, v := range cells {
			axis, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			_ = f.SetCellValue(xlsxTransactionSheet, axis, v)
		}
	}
	return nil
}

// displayCell renders a leaf value for the workbook, using the display
// layer's missing marker rather than the CSV empty cell.
func displayCell(v analysis.Value) string {
	if analysis.IsMissing(v) {
		return missingWorkbookCell
	}
	return string(v)
}

const missingWorkbookCell = "N/A"
