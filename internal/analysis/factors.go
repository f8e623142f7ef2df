package analysis

// factorRule is one row of the derivation table: a predicate over the
// canonical result plus the factor text it contributes when it fires.
type factorRule struct {
	key     string
	applies func(*Result, AnomalyTags) bool
	factor  string
}

// factorRules run in fixed order. Structural completeness first, then the
// anomaly-text rules. Dedup is by exact factor string, first rule wins.
var factorRules = []factorRule{
	{
		key:     "identity.bank_name",
		applies: func(r *Result, _ AnomalyTags) bool { return IsMissing(r.BankName) },
		factor:  "Bank name missing — issuing institution cannot be confirmed.",
	},
	{
		key:     "identity.account_holder",
		applies: func(r *Result, _ AnomalyTags) bool { return IsMissing(r.AccountHolder) },
		factor:  "Account holder absent — ownership cannot be proven.",
	},
	{
		key:     "identity.account_number",
		applies: func(r *Result, _ AnomalyTags) bool { return IsMissing(r.AccountNumber) },
		factor:  "Account number unavailable — no way to reference the account.",
	},
	{
		key:     "identity.statement_period",
		applies: func(r *Result, _ AnomalyTags) bool { return IsMissing(r.StatementPeriod) },
		factor:  "Statement period missing — coverage window unclear.",
	},
	{
		key: "balances.captured",
		applies: func(r *Result, _ AnomalyTags) bool {
			return r.Balances == nil || IsMissing(r.Balances.Opening) || IsMissing(r.Balances.Ending)
		},
		factor: "Opening/ending balances not captured — balance movement cannot be reconciled.",
	},
	{
		key:     "activity.transaction_count",
		applies: func(r *Result, _ AnomalyTags) bool { return countTransactions(r) < 3 },
		factor:  "Too few transactions detected — insufficient activity for validation.",
	},
	{
		key: "anomaly.balance_math",
		applies: func(_ *Result, tags AnomalyTags) bool {
			return tags.BalancesInconsistent || tags.AmountMismatch
		},
		factor: "Balance math inconsistent with net activity per ML review.",
	},
	{
		key:     "anomaly.dates",
		applies: func(_ *Result, tags AnomalyTags) bool { return tags.InvalidDate },
		factor:  "Statement or transaction dates flagged as invalid.",
	},
	{
		key:     "anomaly.blank_sections",
		applies: func(_ *Result, tags AnomalyTags) bool { return tags.MissingCritical },
		factor:  "Multiple mandatory sections left blank according to ML model.",
	},
}

// DeriveFactors applies the rule table to a canonical result and its anomaly
// text, returning the matching factors in rule order, deduplicated by exact
// string equality. Pure: safe on nil and partially populated results, and
// repeated calls return identical lists.
func DeriveFactors(r *Result, anomalies []string) []string {
	if r == nil {
		r = &Result{}
	}
	tags := ClassifyAnomalies(anomalies)
	factors := make([]string, 0, len(factorRules))
	seen := make(map[string]struct{}, len(factorRules))
	for _, rule := range factorRules {
		if !rule.applies(r, tags) {
			continue
		}
		if _, dup := seen[rule.factor]; dup {
			continue
		}
		seen[rule.factor] = struct{}{}
		factors = append(factors, rule.factor)
	}
	return factors
}

// countTransactions prefers the transactions array when the payload carries
// one, even an empty one; otherwise it falls back to the summary count.
// Absent and unparseable counts read as zero.
func countTransactions(r *Result) int {
	if r.Transactions != nil {
		return len(r.Transactions)
	}
	if r.Summary != nil {
		if f, ok := r.Summary.TransactionCount.Float(); ok {
			return int(f)
		}
	}
	return 0
}
