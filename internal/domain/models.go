package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Analysis is the audit record of one ingest attempt. Exactly one of
// ResultData / FailureMessage is populated, matching the record's status.
type Analysis struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	DocumentKind    DocumentKind    `db:"document_kind" json:"document_kind"`
	Status          AnalysisStatus  `db:"status" json:"status"`
	SourceFile      string          `db:"source_file" json:"source_file,omitempty"`
	EnvelopeShape   string          `db:"envelope_shape" json:"envelope_shape,omitempty"`
	ResultData      json.RawMessage `db:"result_data" json:"result_data,omitempty"`
	FailureMessage  string          `db:"failure_message" json:"failure_message,omitempty"`
	RiskLevel       RiskLevel       `db:"risk_level" json:"risk_level,omitempty"`
	RiskScorePct    float64         `db:"risk_score_pct" json:"risk_score_pct"`
	Recommendation  string          `db:"recommendation" json:"recommendation,omitempty"`
	AnomalyCount    int             `db:"anomaly_count" json:"anomaly_count"`
	CriticalFactors json.RawMessage `db:"critical_factors" json:"critical_factors"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// FactorList decodes the stored critical factors. Malformed or empty stored
// data yields an empty list, never an error.
func (a *Analysis) FactorList() []string {
	if len(a.CriticalFactors) == 0 {
		return []string{}
	}
	var factors []string
	if err := json.Unmarshal(a.CriticalFactors, &factors); err != nil || factors == nil {
		return []string{}
	}
	return factors
}

// AnalysisExport is one staged export: an encoded buffer uploaded to object
// storage and addressed by a time-limited URL. ReleasedAt is set once the
// stored object has been deleted.
type AnalysisExport struct {
	ID         uuid.UUID    `db:"id" json:"id"`
	AnalysisID uuid.UUID    `db:"analysis_id" json:"analysis_id"`
	Format     ExportFormat `db:"format" json:"format"`
	FileName   string       `db:"file_name" json:"file_name"`
	StorageKey string       `db:"storage_key" json:"storage_key"`
	SizeBytes  int64        `db:"size_bytes" json:"size_bytes"`
	ExpiresAt  time.Time    `db:"expires_at" json:"expires_at"`
	ReleasedAt *time.Time   `db:"released_at" json:"released_at,omitempty"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
}

// Field is one label/value pair inside a section.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is a named, ordered group of display fields.
type Section struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Sections is an ordered section list. It marshals as a JSON object keyed by
// section name, in slice order, so embedded exports keep the fixed layout.
type Sections []Section

// MarshalJSON implements ordered-object encoding for Sections.
func (s Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(sec.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		fields := sec.Fields
		if fields == nil {
			fields = []Field{}
		}
		encoded, err := json.Marshal(fields)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AnomalyView pairs an anomaly string with its display emphasis flag.
type AnomalyView struct {
	Text      string `json:"text"`
	Emphasize bool   `json:"emphasize"`
}

// AnalysisView is the normalized view model returned to API consumers.
// Percent fields are normalized to the 0-100 scale.
type AnalysisView struct {
	ID                 uuid.UUID       `json:"id"`
	DocumentKind       DocumentKind    `json:"document_kind"`
	Status             AnalysisStatus  `json:"status"`
	SourceFile         string          `json:"source_file,omitempty"`
	EnvelopeShape      string          `json:"envelope_shape,omitempty"`
	FailureMessage     string          `json:"failure_message,omitempty"`
	RiskLevel          RiskLevel       `json:"risk_level,omitempty"`
	RiskScorePct       float64         `json:"risk_score_pct"`
	ModelConfidencePct float64         `json:"model_confidence_pct"`
	AIConfidencePct    float64         `json:"ai_confidence_pct"`
	Recommendation     string          `json:"recommendation,omitempty"`
	AnomalyCount       int             `json:"anomaly_count"`
	Anomalies          []AnomalyView   `json:"anomalies"`
	CriticalFactors    []string        `json:"critical_factors"`
	Sections           Sections        `json:"extracted_sections"`
	Result             json.RawMessage `json:"result,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// AnalysisFilter narrows analysis listings. Zero values mean "no filter".
type AnalysisFilter struct {
	DocumentKind DocumentKind
	Status       AnalysisStatus
	RiskLevel    RiskLevel
}

// KindCount is one per-kind aggregation row.
type KindCount struct {
	DocumentKind DocumentKind `db:"document_kind" json:"document_kind"`
	Count        int          `db:"count" json:"count"`
}

// RiskLevelCount is one per-risk-level aggregation row.
type RiskLevelCount struct {
	RiskLevel RiskLevel `db:"risk_level" json:"risk_level"`
	Count     int       `db:"count" json:"count"`
}

// AnalysisStats aggregates stored analyses for the stats endpoint.
type AnalysisStats struct {
	TotalAnalyses   int              `db:"total_analyses" json:"total_analyses"`
	Completed       int              `db:"completed" json:"completed"`
	Failed          int              `db:"failed" json:"failed"`
	AvgRiskScorePct float64          `db:"avg_risk_score_pct" json:"avg_risk_score_pct"`
	ByKind          []KindCount      `db:"-" json:"by_kind"`
	ByRiskLevel     []RiskLevelCount `db:"-" json:"by_risk_level"`
	LiveExports     int              `db:"-" json:"live_exports"`
}
