package analysis

import "encoding/json"

// Result is the canonical form of one classifier response, shared by all
// document kinds. Every field is optional by contract: consumers treat absent
// fields as missing rather than failing, so a Result built from any JSON
// object is safe to pass through the derivation functions.
type Result struct {
	BankName        Value `json:"bank_name"`
	AccountHolder   Value `json:"account_holder"`
	AccountNumber   Value `json:"account_number"`
	StatementPeriod Value `json:"statement_period"`

	Balances       *Balances       `json:"balances"`
	Summary        *Summary        `json:"summary"`
	Transactions   []Transaction   `json:"transactions"`
	MLAnalysis     *MLAnalysis     `json:"ml_analysis"`
	AIAnalysis     *AIAnalysis     `json:"ai_analysis"`
	RiskAssessment *RiskAssessment `json:"risk_assessment"`
	Anomalies      StringList      `json:"anomalies"`

	// Check documents.
	PayeeName     Value `json:"payee_name"`
	AmountNumeric Value `json:"amount_numeric"`
	AmountWords   Value `json:"amount_words"`
	CheckNumber   Value `json:"check_number"`
	RoutingNumber Value `json:"routing_number"`
	MICRCode      Value `json:"micr_code"`
	DateWritten   Value `json:"date_written"`
	Memo          Value `json:"memo"`
}

// Balances groups the statement-level balance figures.
type Balances struct {
	Opening   Value `json:"opening"`
	Ending    Value `json:"ending"`
	Available Value `json:"available"`
	Current   Value `json:"current"`
}

// Summary groups the statement-level activity totals.
type Summary struct {
	TransactionCount Value `json:"transaction_count"`
	TotalCredits     Value `json:"total_credits"`
	TotalDebits      Value `json:"total_debits"`
	NetActivity      Value `json:"net_activity"`
}

// Transaction is one statement line. Date, description, amount, and balance
// keep the upstream rendering; AmountValue is the signed numeric form when
// the classifier supplies one.
type Transaction struct {
	Date        Value `json:"date"`
	Description Value `json:"description"`
	Amount      Value `json:"amount"`
	Balance     Value `json:"balance"`
	AmountValue Value `json:"amount_value"`
}

// MLAnalysis carries the statistical model's verdict.
type MLAnalysis struct {
	RiskLevel         Value        `json:"risk_level"`
	FraudRiskScore    Value        `json:"fraud_risk_score"`
	ModelConfidence   Value        `json:"model_confidence"`
	FeatureImportance StringList   `json:"feature_importance"`
	ModelScores       *ModelScores `json:"model_scores"`
}

// ModelScores are the per-model raw scores behind an ensemble verdict.
type ModelScores struct {
	RandomForest Value `json:"random_forest"`
	XGBoost      Value `json:"xgboost"`
	Ensemble     Value `json:"ensemble"`
}

// AIAnalysis carries the reviewing model's narrative assessment.
type AIAnalysis struct {
	Confidence        Value      `json:"confidence"`
	Recommendation    Value      `json:"recommendation"`
	Summary           Value      `json:"summary"`
	Reasoning         Value      `json:"reasoning"`
	KeyIndicators     StringList `json:"key_indicators"`
	VerificationNotes Value      `json:"verification_notes"`
}

// RiskAssessment is the split-envelope risk block. Some document kinds nest
// the model groups inside it, others flatten the headline fields directly;
// both layouts are accepted.
type RiskAssessment struct {
	RiskLevel      Value       `json:"risk_level"`
	FraudRiskScore Value       `json:"fraud_risk_score"`
	Confidence     Value       `json:"confidence"`
	Recommendation Value       `json:"recommendation"`
	MLAnalysis     *MLAnalysis `json:"ml_analysis"`
	AIAnalysis     *AIAnalysis `json:"ai_analysis"`
	Anomalies      StringList  `json:"anomalies"`
}

// DecodeResult builds a Result from a canonical result object. It never
// fails: fields that cannot be decoded are dropped one at a time, and a
// payload that is not an object at all yields an empty Result.
func DecodeResult(raw json.RawMessage) *Result {
	var r Result
	if err := json.Unmarshal(raw, &r); err == nil {
		return &r
	}

	// Some payloads put an off-shape value in one aggregate (an object where
	// an array belongs, or the reverse). Salvage the rest field by field.
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return &Result{}
	}
	r = Result{}
	decodeField(m, "bank_name", &r.BankName)
	decodeField(m, "account_holder", &r.AccountHolder)
	decodeField(m, "account_number", &r.AccountNumber)
	decodeField(m, "statement_period", &r.StatementPeriod)
	decodeField(m, "balances", &r.Balances)
	decodeField(m, "summary", &r.Summary)
	decodeField(m, "transactions", &r.Transactions)
	decodeField(m, "ml_analysis", &r.MLAnalysis)
	decodeField(m, "ai_analysis", &r.AIAnalysis)
	decodeField(m, "risk_assessment", &r.RiskAssessment)
	decodeField(m, "anomalies", &r.Anomalies)
	decodeField(m, "payee_name", &r.PayeeName)
	decodeField(m, "amount_numeric", &r.AmountNumeric)
	decodeField(m, "amount_words", &r.AmountWords)
	decodeField(m, "check_number", &r.CheckNumber)
	decodeField(m, "routing_number", &r.RoutingNumber)
	decodeField(m, "micr_code", &r.MICRCode)
	decodeField(m, "date_written", &r.DateWritten)
	decodeField(m, "memo", &r.Memo)
	return &r
}

func decodeField(m map[string]json.RawMessage, key string, dst any) {
	if raw, ok := m[key]; ok {
		_ = json.Unmarshal(raw, dst)
	}
}

// mlGroup resolves the effective ML block: top level first, then the one
// nested in a split risk assessment.
func (r *Result) mlGroup() *MLAnalysis {
	if r == nil {
		return nil
	}
	if r.MLAnalysis != nil {
		return r.MLAnalysis
	}
	if r.RiskAssessment != nil {
		return r.RiskAssessment.MLAnalysis
	}
	return nil
}

func (r *Result) aiGroup() *AIAnalysis {
	if r == nil {
		return nil
	}
	if r.AIAnalysis != nil {
		return r.AIAnalysis
	}
	if r.RiskAssessment != nil {
		return r.RiskAssessment.AIAnalysis
	}
	return nil
}

// FraudRiskScore returns the raw ML risk score, empty when absent.
func (r *Result) FraudRiskScore() Value {
	if ml := r.mlGroup(); ml != nil && ml.FraudRiskScore != "" {
		return ml.FraudRiskScore
	}
	if r != nil && r.RiskAssessment != nil {
		return r.RiskAssessment.FraudRiskScore
	}
	return ""
}

// ModelConfidence returns the raw ML confidence, empty when absent.
func (r *Result) ModelConfidence() Value {
	if ml := r.mlGroup(); ml != nil {
		return ml.ModelConfidence
	}
	return ""
}

// RiskLevel returns the raw ML risk level, empty when absent.
func (r *Result) RiskLevel() Value {
	if ml := r.mlGroup(); ml != nil && ml.RiskLevel != "" {
		return ml.RiskLevel
	}
	if r != nil && r.RiskAssessment != nil {
		return r.RiskAssessment.RiskLevel
	}
	return ""
}

// AIConfidence returns the raw AI reviewer confidence, empty when absent.
func (r *Result) AIConfidence() Value {
	if ai := r.aiGroup(); ai != nil && ai.Confidence != "" {
		return ai.Confidence
	}
	if r != nil && r.RiskAssessment != nil {
		return r.RiskAssessment.Confidence
	}
	return ""
}

// Recommendation returns the raw AI recommendation, empty when absent.
func (r *Result) Recommendation() Value {
	if ai := r.aiGroup(); ai != nil && ai.Recommendation != "" {
		return ai.Recommendation
	}
	if r != nil && r.RiskAssessment != nil {
		return r.RiskAssessment.Recommendation
	}
	return ""
}

// AnomalyList returns the anomalies in source order, never nil.
func (r *Result) AnomalyList() []string {
	if r == nil {
		return []string{}
	}
	if r.Anomalies != nil {
		return r.Anomalies
	}
	if r.RiskAssessment != nil && r.RiskAssessment.Anomalies != nil {
		return r.RiskAssessment.Anomalies
	}
	return []string{}
}
