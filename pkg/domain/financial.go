package domain

import "encoding/json"

// DebtType is one of the fixed kinds of debt obligation.
type DebtType string

const (
	DebtBusinessLoan       DebtType = "Business Loan"
	DebtLineOfCredit       DebtType = "Line of Credit"
	DebtEquipmentFinancing DebtType = "Equipment Financing"
	DebtCreditCard         DebtType = "Credit Card"
	DebtMortgage           DebtType = "Mortgage"
	DebtOther              DebtType = "Other"
)

// DebtTypes lists the selectable debt types in display order.
var DebtTypes = []DebtType{ //nolint: gochecknoglobals
	DebtBusinessLoan,
	DebtLineOfCredit,
	DebtEquipmentFinancing,
	DebtCreditCard,
	DebtMortgage,
	DebtOther,
}

// ParseDebtType returns the DebtType named s.
func ParseDebtType(s string) (DebtType, bool) {
	for _, t := range DebtTypes {
		if string(t) == s {
			return t, true
		}
	}

	return "", false
}

// DebtEntry is a single debt obligation. Entries are created whole and are
// never edited afterwards.
type DebtEntry struct {
	Type DebtType `json:"type"`
	// Amount is the outstanding balance.
	Amount Amount `json:"amount"`
	// InterestRate is a percentage in [0, 100].
	InterestRate   Amount `json:"interestRate"`
	MonthlyPayment Amount `json:"monthlyPayment"`
	// RemainingTerm is the remaining term in months.
	RemainingTerm int `json:"remainingTerm"`
}

// Timeline groups financial goals by horizon.
type Timeline string

const (
	ShortTerm  Timeline = "shortTerm"
	MediumTerm Timeline = "mediumTerm"
	LongTerm   Timeline = "longTerm"
)

// Timelines lists the goal timelines in display order.
var Timelines = []Timeline{ShortTerm, MediumTerm, LongTerm} //nolint: gochecknoglobals

// ParseTimeline returns the Timeline named s.
func ParseTimeline(s string) (Timeline, bool) {
	for _, t := range Timelines {
		if string(t) == s {
			return t, true
		}
	}

	return "", false
}

// FinancialGoals holds free-text goals per timeline, in insertion order.
type FinancialGoals struct {
	ShortTerm  []string `json:"shortTerm"`
	MediumTerm []string `json:"mediumTerm"`
	LongTerm   []string `json:"longTerm"`
}

// Get returns the goals recorded for tl.
func (g FinancialGoals) Get(tl Timeline) []string {
	switch tl {
	case ShortTerm:
		return g.ShortTerm
	case MediumTerm:
		return g.MediumTerm
	case LongTerm:
		return g.LongTerm
	}

	return nil
}

// Set replaces the goals recorded for tl.
func (g *FinancialGoals) Set(tl Timeline, goals []string) {
	switch tl {
	case ShortTerm:
		g.ShortTerm = goals
	case MediumTerm:
		g.MediumTerm = goals
	case LongTerm:
		g.LongTerm = goals
	}
}

// Clone returns a deep copy of g.
func (g FinancialGoals) Clone() FinancialGoals {
	return FinancialGoals{
		ShortTerm:  append([]string{}, g.ShortTerm...),
		MediumTerm: append([]string{}, g.MediumTerm...),
		LongTerm:   append([]string{}, g.LongTerm...),
	}
}

// MarshalJSON always encodes the three timelines as arrays.
func (g FinancialGoals) MarshalJSON() ([]byte, error) {
	type plain FinancialGoals

	return json.Marshal(plain(g.Clone())) //nolint: wrapcheck
}

// FinancialProfile is the finalized output of the financial information step.
type FinancialProfile struct {
	CurrentSavings  Amount         `json:"currentSavings"`
	Investments     Amount         `json:"investments"`
	DebtObligations []DebtEntry    `json:"debtObligations"`
	FinancialGoals  FinancialGoals `json:"financialGoals"`
}

// Clone returns a deep copy of p.
func (p FinancialProfile) Clone() FinancialProfile {
	p.DebtObligations = append([]DebtEntry{}, p.DebtObligations...)
	p.FinancialGoals = p.FinancialGoals.Clone()

	return p
}
