package domain

// DocumentKind identifies which classifier pipeline produced a raw payload.
type DocumentKind string

const (
	KindBankStatement DocumentKind = "bank_statement"
	KindCheck         DocumentKind = "check"
	KindStatement     DocumentKind = "statement"
)

// KindDisplayNames maps DocumentKind to the name used in export cells.
var KindDisplayNames = map[DocumentKind]string{
	KindBankStatement: "Bank Statement",
	KindCheck:         "Check",
	KindStatement:     "Statement",
}

// Valid reports whether the kind is one of the supported document kinds.
func (k DocumentKind) Valid() bool {
	_, ok := KindDisplayNames[k]
	return ok
}

// Display returns the human-readable name for the kind, falling back to the
// raw value for unknown kinds.
func (k DocumentKind) Display() string {
	if name, ok := KindDisplayNames[k]; ok {
		return name
	}
	return string(k)
}

// AnalysisStatus represents the terminal outcome of an ingest attempt.
type AnalysisStatus string

const (
	AnalysisStatusCompleted AnalysisStatus = "completed"
	AnalysisStatusFailed    AnalysisStatus = "failed"
)

// ExportFormat identifies an export encoding.
type ExportFormat string

const (
	ExportFormatJSON            ExportFormat = "json"
	ExportFormatCSV             ExportFormat = "csv"
	ExportFormatTransactionsCSV ExportFormat = "transactions_csv"
	ExportFormatXLSX            ExportFormat = "xlsx"
)

// ExportContentTypes maps ExportFormat to its MIME content type.
var ExportContentTypes = map[ExportFormat]string{
	ExportFormatJSON:            "application/json",
	ExportFormatCSV:             "text/csv; charset=utf-8",
	ExportFormatTransactionsCSV: "text/csv; charset=utf-8",
	ExportFormatXLSX:            "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ExportExtensions maps ExportFormat to the exported file extension (without dot).
var ExportExtensions = map[ExportFormat]string{
	ExportFormatJSON:            "json",
	ExportFormatCSV:             "csv",
	ExportFormatTransactionsCSV: "csv",
	ExportFormatXLSX:            "xlsx",
}

// Valid reports whether the format is a supported export encoding.
func (f ExportFormat) Valid() bool {
	_, ok := ExportExtensions[f]
	return ok
}

// RiskLevel is the classifier's coarse risk verdict. Upstream emits free text;
// the known values below cover the classifier's documented vocabulary, but
// stored levels may fall outside it and are kept as received (lowercased).
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)
