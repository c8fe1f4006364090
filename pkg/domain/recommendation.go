package domain

import (
	"encoding/json"
)

// EmergencyFund is the emergency fund plan.
type EmergencyFund struct {
	RecommendedAmount   Amount  `json:"recommendedAmount"`
	CurrentGap          Amount  `json:"currentGap"`
	MonthlyContribution Amount  `json:"monthlyContribution"`
	TimeToGoal          float64 `json:"timeToGoal"`
	MonthlyExpenses     Amount  `json:"monthlyExpenses"`
	Multiplier          float64 `json:"multiplier"`
}

// GrowthFund is the monthly growth investment allocation.
type GrowthFund struct {
	TotalBudget         Amount  `json:"totalBudget"`
	MarketingBudget     Amount  `json:"marketingBudget"`
	HiringBudget        Amount  `json:"hiringBudget"`
	EquipmentUpgrade    Amount  `json:"equipmentUpgrade"`
	ResearchDevelopment Amount  `json:"researchDevelopment"`
	GrowthPercentage    float64 `json:"growthPercentage"`
}

// EmployeeBenefitsFund is the monthly employee benefits budget.
type EmployeeBenefitsFund struct {
	TotalBudget            Amount  `json:"totalBudget"`
	HealthBenefits         Amount  `json:"healthBenefits"`
	RetirementContribution Amount  `json:"retirementContribution"`
	BonusPool              Amount  `json:"bonusPool"`
	BenefitsPercentage     float64 `json:"benefitsPercentage"`
	PerEmployeeMonthly     Amount  `json:"perEmployeeMonthly"`
}

// TaxPlanning holds the annual tax estimate and advice.
type TaxPlanning struct {
	EstimatedTaxLiability Amount   `json:"estimatedTaxLiability"`
	CorporateTax          Amount   `json:"corporateTax"`
	PayrollTax            Amount   `json:"payrollTax"`
	CorporateTaxRate      float64  `json:"corporateTaxRate"`
	RecommendedDeductions []string `json:"recommendedDeductions"`
	TaxSavingStrategies   []string `json:"taxSavingStrategies"`
	AnnualProfit          Amount   `json:"annualProfit"`
}

// ConsolidationOpportunity describes a group of debts worth consolidating.
// Rates are fractions, not percentages.
type ConsolidationOpportunity struct {
	Type             string  `json:"type"`
	TotalAmount      Amount  `json:"totalAmount"`
	CurrentAvgRate   float64 `json:"currentAvgRate"`
	PotentialNewRate float64 `json:"potentialNewRate"`
	MonthlySavings   Amount  `json:"monthlySavings"`
}

// DebtManagement is the debt management plan.
type DebtManagement struct {
	TotalDebt                  Amount                     `json:"totalDebt"`
	MonthlyPayments            Amount                     `json:"monthlyPayments"`
	ConsolidationOpportunities []ConsolidationOpportunity `json:"consolidationOpportunities"`
	PayoffStrategy             string                     `json:"payoffStrategy"`
	PotentialSavings           Amount                     `json:"potentialSavings"`
	DebtToRevenueRatio         float64                    `json:"debtToRevenueRatio"`
}

// RetirementPlanning is the recommended retirement plan.
type RetirementPlanning struct {
	RecommendedPlan         string  `json:"recommendedPlan"`
	MaxContribution         Amount  `json:"maxContribution"`
	RecommendedContribution Amount  `json:"recommendedContribution"`
	TaxBenefits             string  `json:"taxBenefits"`
	EmployeeCount           int     `json:"employeeCount"`
	ContributionPercentage  float64 `json:"contributionPercentage"`
}

// MonthlyForecast is one month of the cash-flow forecast.
type MonthlyForecast struct {
	Month              int     `json:"month"`
	Revenue            Amount  `json:"revenue"`
	Expenses           Amount  `json:"expenses"`
	NetCashFlow        Amount  `json:"netCashFlow"`
	SeasonalMultiplier float64 `json:"seasonalMultiplier"`
}

// AnnualSummary totals the cash-flow forecast.
type AnnualSummary struct {
	TotalRevenue           Amount `json:"totalRevenue"`
	TotalExpenses          Amount `json:"totalExpenses"`
	TotalNetCashFlow       Amount `json:"totalNetCashFlow"`
	AverageMonthlyRevenue  Amount `json:"averageMonthlyRevenue"`
	AverageMonthlyExpenses Amount `json:"averageMonthlyExpenses"`
}

// CashFlowForecast is the 12 month cash-flow forecast.
type CashFlowForecast struct {
	MonthlyForecast   []MonthlyForecast `json:"monthlyForecast"`
	AnnualSummary     *AnnualSummary    `json:"annualSummary,omitempty"`
	SeasonalityFactor float64           `json:"seasonalityFactor"`
}

// RecommendationSet is the result computed by the planning service. Every
// section is optional. The set is read-only once received: the exact bytes
// that were decoded are kept and re-encoded verbatim, so sending it back to
// the service (for report generation) never loses fields this type does not
// model.
type RecommendationSet struct {
	EmergencyFund        *EmergencyFund        `json:"emergencyFund,omitempty"`
	GrowthFund           *GrowthFund           `json:"growthFund,omitempty"`
	EmployeeBenefitsFund *EmployeeBenefitsFund `json:"employeeBenefitsFund,omitempty"`
	TaxPlanning          *TaxPlanning          `json:"taxPlanning,omitempty"`
	DebtManagement       *DebtManagement       `json:"debtManagement,omitempty"`
	RetirementPlanning   *RetirementPlanning   `json:"retirementPlanning,omitempty"`
	CashFlowForecast     *CashFlowForecast     `json:"cashFlowForecast,omitempty"`

	raw json.RawMessage
}

// UnmarshalJSON decodes the set and keeps a copy of b.
func (r *RecommendationSet) UnmarshalJSON(b []byte) error {
	type plain RecommendationSet
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err //nolint: wrapcheck
	}

	*r = RecommendationSet(p)
	r.raw = append(json.RawMessage(nil), b...)

	return nil
}

// MarshalJSON returns the bytes the set was decoded from, if any.
func (r RecommendationSet) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}

	type plain RecommendationSet

	return json.Marshal(plain(r)) //nolint: wrapcheck
}
