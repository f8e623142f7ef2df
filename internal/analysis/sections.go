package analysis

import (
	"fmt"

	"fraudlens/internal/domain"
)

// transactionSampleSize caps the Recent Transactions section.
const transactionSampleSize = 10

// missingDisplay is the display rendering for absent leaf values. CSV exports
// use the empty string instead.
const missingDisplay = "N/A"

// SectionBuilder turns a canonical result into ordered display sections.
type SectionBuilder func(*Result) domain.Sections

// builders is the per-kind section builder registry.
var builders = map[domain.DocumentKind]SectionBuilder{
	domain.KindBankStatement: buildBankSections,
	domain.KindCheck:         buildCheckSections,
	domain.KindStatement:     buildStatementSections,
}

// BuildSections groups a canonical result into named, ordered label/value
// sections for the given document kind. The section and field order is fixed
// per kind. Unknown kinds and nil results yield an empty list.
func BuildSections(kind domain.DocumentKind, r *Result) domain.Sections {
	builder, ok := builders[kind]
	if !ok || r == nil {
		return domain.Sections{}
	}
	return builder(r)
}

// display renders a leaf value, substituting the missing marker.
func display(v Value) string {
	if IsMissing(v) {
		return missingDisplay
	}
	return string(v)
}

func buildBankSections(r *Result) domain.Sections {
	var bal Balances
	if r.Balances != nil {
		bal = *r.Balances
	}
	var sum Summary
	if r.Summary != nil {
		sum = *r.Summary
	}

	sample := domain.Section{Name: "Recent Transactions", Fields: []domain.Field{}}
	for i, tx := range r.Transactions {
		if i == transactionSampleSize {
			break
		}
		sample.Fields = append(sample.Fields, domain.Field{
			Label: display(tx.Date),
			Value: fmt.Sprintf("%s | Amount: %s | Balance: %s",
				display(tx.Description), display(tx.Amount), display(tx.Balance)),
		})
	}

	return domain.Sections{
		{
			Name: "Account Information",
			Fields: []domain.Field{
				{Label: "Bank Name", Value: display(r.BankName)},
				{Label: "Account Holder", Value: display(r.AccountHolder)},
				{Label: "Account Number", Value: display(r.AccountNumber)},
				{Label: "Statement Period", Value: display(r.StatementPeriod)},
			},
		},
		{
			Name: "Balance Summary",
			Fields: []domain.Field{
				{Label: "Opening Balance", Value: display(bal.Opening)},
				{Label: "Ending Balance", Value: display(bal.Ending)},
				{Label: "Available Balance", Value: display(bal.Available)},
				{Label: "Current Balance", Value: display(bal.Current)},
			},
		},
		{
			Name: "Transaction Summary",
			Fields: []domain.Field{
				{Label: "Total Transactions", Value: display(sum.TransactionCount)},
				{Label: "Total Credits", Value: display(sum.TotalCredits)},
				{Label: "Total Debits", Value: display(sum.TotalDebits)},
				{Label: "Net Activity", Value: display(sum.NetActivity)},
			},
		},
		sample,
	}
}

func buildCheckSections(r *Result) domain.Sections {
	return domain.Sections{
		{
			Name: "Check Information",
			Fields: []domain.Field{
				{Label: "Check Number", Value: display(r.CheckNumber)},
				{Label: "Date Written", Value: display(r.DateWritten)},
				{Label: "Payee Name", Value: display(r.PayeeName)},
				{Label: "Memo", Value: display(r.Memo)},
			},
		},
		{
			Name: "Amount",
			Fields: []domain.Field{
				{Label: "Amount (Numeric)", Value: display(r.AmountNumeric)},
				{Label: "Amount (Words)", Value: display(r.AmountWords)},
			},
		},
		{
			Name: "Bank Details",
			Fields: []domain.Field{
				{Label: "Bank Name", Value: display(r.BankName)},
				{Label: "Routing Number", Value: display(r.RoutingNumber)},
				{Label: "Account Number", Value: display(r.AccountNumber)},
				{Label: "MICR Code", Value: display(r.MICRCode)},
			},
		},
	}
}

func buildStatementSections(r *Result) domain.Sections {
	var sum Summary
	if r.Summary != nil {
		sum = *r.Summary
	}
	return domain.Sections{
		{
			Name: "Statement Information",
			Fields: []domain.Field{
				{Label: "Bank Name", Value: display(r.BankName)},
				{Label: "Account Holder", Value: display(r.AccountHolder)},
				{Label: "Account Number", Value: display(r.AccountNumber)},
				{Label: "Statement Period", Value: display(r.StatementPeriod)},
			},
		},
		{
			Name: "Activity",
			Fields: []domain.Field{
				{Label: "Total Transactions", Value: display(sum.TransactionCount)},
				{Label: "Total Credits", Value: display(sum.TotalCredits)},
				{Label: "Total Debits", Value: display(sum.TotalDebits)},
				{Label: "Net Activity", Value: display(sum.NetActivity)},
			},
		},
	}
}
