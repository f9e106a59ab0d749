package entities

import "github.com/shopspring/decimal"

// Tax types offered by the preparation form
const (
	TaxTypeIndividual = "Individual Tax Return"
	TaxTypeBusiness   = "Business Tax Filing"
	TaxTypeVAT        = "VAT Declaration"
)

// IncomeSource is one income line of the preparation form
type IncomeSource struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// Deduction is one deduction line of the preparation form
type Deduction struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// TaxFilingDraft is the in-progress multi-step form state. It is cached
// per user until submission and then cleared.
type TaxFilingDraft struct {
	Step          int            `json:"step"`
	TaxType       string         `json:"taxType"`
	FullName      string         `json:"fullName,omitempty"`
	TIN           string         `json:"tin,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	IncomeSources []IncomeSource `json:"incomeSources,omitempty"`
	Deductions    []Deduction    `json:"deductions,omitempty"`
}

// TaxFilingSummary is the computed estimate shown before submission
type TaxFilingSummary struct {
	TaxType       string          `json:"taxType"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalDeducted decimal.Decimal `json:"totalDeducted"`
	TaxableBase   decimal.Decimal `json:"taxableBase"`
	EstimatedTax  decimal.Decimal `json:"estimatedTax"`
}
