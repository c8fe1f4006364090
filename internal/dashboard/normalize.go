// Package dashboard projects a recommendation set into the figures and chart
// series the dashboard displays. Every optional part of the set is defaulted
// here, so consumers never deal with missing values.
package dashboard

import (
	"finplan/pkg/domain"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	// NotAvailable is shown for text figures the service did not provide.
	NotAvailable = "N/A"
	// NoDebtStrategy is shown when the service suggested no payoff strategy.
	NoDebtStrategy = "No debt management needed"
	// DefaultEmergencyMonths is the emergency fund multiplier used when none is given.
	DefaultEmergencyMonths = 4.0
)

// Palette is the fixed chart color sequence.
var Palette = []string{"#8884d8", "#82ca9d", "#ffc658", "#ff7300", "#00ff00", "#ff0000"} //nolint: gochecknoglobals

var expenseNames = map[domain.ExpenseCategory]string{ //nolint: gochecknoglobals
	domain.ExpenseRent:      "Rent",
	domain.ExpenseUtilities: "Utilities",
	domain.ExpenseMaterials: "Materials",
	domain.ExpenseMarketing: "Marketing",
	domain.ExpenseInsurance: "Insurance",
	domain.ExpenseOther:     "Other",
}

// Segment is one slice of a pie chart.
type Segment struct {
	Name  string        `json:"name"`
	Value domain.Amount `json:"value"`
	Color string        `json:"color"`
}

// CashFlowPoint is one month of the cash-flow chart.
type CashFlowPoint struct {
	Label       string        `json:"label"`
	Revenue     domain.Amount `json:"revenue"`
	Expenses    domain.Amount `json:"expenses"`
	NetCashFlow domain.Amount `json:"netCashFlow"`
}

// Summary holds the headline cards.
type Summary struct {
	EmergencyFund          domain.Amount `json:"emergencyFund"`
	EmergencyMonths        float64       `json:"emergencyMonths"`
	GrowthBudget           domain.Amount `json:"growthBudget"`
	TaxLiability           domain.Amount `json:"taxLiability"`
	RetirementContribution domain.Amount `json:"retirementContribution"`
	RetirementPlan         string        `json:"retirementPlan"`
}

// EmergencyFund is the emergency fund tab.
type EmergencyFund struct {
	CurrentSavings      domain.Amount `json:"currentSavings"`
	RecommendedAmount   domain.Amount `json:"recommendedAmount"`
	ProgressPercent     domain.Amount `json:"progressPercent"`
	MonthlyContribution domain.Amount `json:"monthlyContribution"`
	MonthsToGoal        float64       `json:"monthsToGoal"`
	Multiplier          float64       `json:"multiplier"`
	MonthlyExpenses     domain.Amount `json:"monthlyExpenses"`
	IndustryRisk        string        `json:"industryRisk"`
}

// Growth is the growth fund tab.
type Growth struct {
	TotalBudget         domain.Amount `json:"totalBudget"`
	Marketing           domain.Amount `json:"marketing"`
	Hiring              domain.Amount `json:"hiring"`
	Equipment           domain.Amount `json:"equipment"`
	ResearchDevelopment domain.Amount `json:"researchDevelopment"`
	Allocation          []Segment     `json:"allocation"`
}

// Benefits is the employee benefits tab.
type Benefits struct {
	HealthBenefits         domain.Amount `json:"healthBenefits"`
	RetirementContribution domain.Amount `json:"retirementContribution"`
	BonusPool              domain.Amount `json:"bonusPool"`
	PerEmployeeMonthly     domain.Amount `json:"perEmployeeMonthly"`
	TotalBudget            domain.Amount `json:"totalBudget"`
}

// Tax is the tax planning tab.
type Tax struct {
	CorporateTax          domain.Amount `json:"corporateTax"`
	PayrollTax            domain.Amount `json:"payrollTax"`
	AnnualProfit          domain.Amount `json:"annualProfit"`
	EstimatedTaxLiability domain.Amount `json:"estimatedTaxLiability"`
	Deductions            []string      `json:"deductions"`
	Strategies            []string      `json:"strategies"`
}

// Consolidation is one debt consolidation opportunity with rates as percentages.
type Consolidation struct {
	Type               string        `json:"type"`
	TotalAmount        domain.Amount `json:"totalAmount"`
	CurrentRatePercent float64       `json:"currentRatePercent"`
	NewRatePercent     float64       `json:"newRatePercent"`
	MonthlySavings     domain.Amount `json:"monthlySavings"`
}

// Debt is the debt management tab.
type Debt struct {
	TotalDebt        domain.Amount   `json:"totalDebt"`
	MonthlyPayments  domain.Amount   `json:"monthlyPayments"`
	PotentialSavings domain.Amount   `json:"potentialSavings"`
	PayoffStrategy   string          `json:"payoffStrategy"`
	Consolidation    []Consolidation `json:"consolidation"`
}

// Retirement is the retirement planning tab.
type Retirement struct {
	RecommendedPlan         string        `json:"recommendedPlan"`
	MaxContribution         domain.Amount `json:"maxContribution"`
	RecommendedContribution domain.Amount `json:"recommendedContribution"`
	TaxBenefits             string        `json:"taxBenefits"`
	EmployeeCount           int           `json:"employeeCount"`
	ContributionPercent     float64       `json:"contributionPercent"`
}

// CashFlow is the cash-flow tab.
type CashFlow struct {
	Series           []CashFlowPoint `json:"series"`
	TotalRevenue     domain.Amount   `json:"totalRevenue"`
	TotalExpenses    domain.Amount   `json:"totalExpenses"`
	TotalNetCashFlow domain.Amount   `json:"totalNetCashFlow"`
}

// View is everything the dashboard renders.
type View struct {
	Industry         string        `json:"industry"`
	Summary          Summary       `json:"summary"`
	ExpenseBreakdown []Segment     `json:"expenseBreakdown"`
	EmergencyFund    EmergencyFund `json:"emergencyFund"`
	Growth           Growth        `json:"growth"`
	Benefits         Benefits      `json:"benefits"`
	Tax              Tax           `json:"tax"`
	Debt             Debt          `json:"debt"`
	Retirement       Retirement    `json:"retirement"`
	CashFlow         CashFlow      `json:"cashFlow"`
}

// Normalize builds the dashboard view. It does not modify its arguments and
// accepts a nil recommendation set.
func Normalize(rs *domain.RecommendationSet, business domain.BusinessProfile, financial domain.FinancialProfile) View {
	if rs == nil {
		rs = &domain.RecommendationSet{}
	}
	ef := deref(rs.EmergencyFund)
	gf := deref(rs.GrowthFund)
	bf := deref(rs.EmployeeBenefitsFund)
	tp := deref(rs.TaxPlanning)
	dm := deref(rs.DebtManagement)
	rp := deref(rs.RetirementPlanning)
	cf := deref(rs.CashFlowForecast)

	multiplier := ef.Multiplier
	if multiplier == 0 {
		multiplier = DefaultEmergencyMonths
	}

	v := View{
		Industry: titleOrNA(business.Industry),
		Summary: Summary{
			EmergencyFund:          ef.RecommendedAmount,
			EmergencyMonths:        multiplier,
			GrowthBudget:           gf.TotalBudget,
			TaxLiability:           tp.EstimatedTaxLiability,
			RetirementContribution: rp.RecommendedContribution,
			RetirementPlan:         textOrNA(rp.RecommendedPlan),
		},
		ExpenseBreakdown: ExpenseBreakdown(business.OperatingExpenses),
		EmergencyFund: EmergencyFund{
			CurrentSavings:      financial.CurrentSavings,
			RecommendedAmount:   ef.RecommendedAmount,
			ProgressPercent:     Progress(financial.CurrentSavings, ef.RecommendedAmount),
			MonthlyContribution: ef.MonthlyContribution,
			MonthsToGoal:        round(ef.TimeToGoal, 1),
			Multiplier:          multiplier,
			MonthlyExpenses:     ef.MonthlyExpenses,
			IndustryRisk:        textOrNA(business.Industry),
		},
		Growth: Growth{
			TotalBudget:         gf.TotalBudget,
			Marketing:           gf.MarketingBudget,
			Hiring:              gf.HiringBudget,
			Equipment:           gf.EquipmentUpgrade,
			ResearchDevelopment: gf.ResearchDevelopment,
			Allocation:          GrowthAllocation(rs.GrowthFund),
		},
		Benefits: Benefits{
			HealthBenefits:         bf.HealthBenefits,
			RetirementContribution: bf.RetirementContribution,
			BonusPool:              bf.BonusPool,
			PerEmployeeMonthly:     bf.PerEmployeeMonthly,
			TotalBudget:            bf.TotalBudget,
		},
		Tax: Tax{
			CorporateTax:          tp.CorporateTax,
			PayrollTax:            tp.PayrollTax,
			AnnualProfit:          tp.AnnualProfit,
			EstimatedTaxLiability: tp.EstimatedTaxLiability,
			Deductions:            nonNil(tp.RecommendedDeductions),
			Strategies:            nonNil(tp.TaxSavingStrategies),
		},
		Debt: Debt{
			TotalDebt:        dm.TotalDebt,
			MonthlyPayments:  dm.MonthlyPayments,
			PotentialSavings: dm.PotentialSavings,
			PayoffStrategy:   dm.PayoffStrategy,
			Consolidation:    make([]Consolidation, 0, len(dm.ConsolidationOpportunities)),
		},
		Retirement: Retirement{
			RecommendedPlan:         textOrNA(rp.RecommendedPlan),
			MaxContribution:         rp.MaxContribution,
			RecommendedContribution: rp.RecommendedContribution,
			TaxBenefits:             textOrNA(rp.TaxBenefits),
			EmployeeCount:           rp.EmployeeCount,
			ContributionPercent:     round(rp.ContributionPercentage*100, 1),
		},
		CashFlow: CashFlow{
			Series: CashFlowSeries(rs.CashFlowForecast),
		},
	}

	if v.Debt.PayoffStrategy == "" {
		v.Debt.PayoffStrategy = NoDebtStrategy
	}
	for _, o := range dm.ConsolidationOpportunities {
		v.Debt.Consolidation = append(v.Debt.Consolidation, Consolidation{
			Type:               o.Type,
			TotalAmount:        o.TotalAmount,
			CurrentRatePercent: round(o.CurrentAvgRate*100, 2),
			NewRatePercent:     round(o.PotentialNewRate*100, 2),
			MonthlySavings:     o.MonthlySavings,
		})
	}
	if s := cf.AnnualSummary; s != nil {
		v.CashFlow.TotalRevenue = s.TotalRevenue
		v.CashFlow.TotalExpenses = s.TotalExpenses
		v.CashFlow.TotalNetCashFlow = s.TotalNetCashFlow
	}

	return v
}

// ExpenseBreakdown returns one segment per operating expense category with a
// positive value. Colors are assigned per category, not per position.
func ExpenseBreakdown(e domain.OperatingExpenses) []Segment {
	out := []Segment{}
	for i, cat := range domain.ExpenseCategories {
		if v := e.Get(cat); v.IsPositive() {
			out = append(out, Segment{Name: expenseNames[cat], Value: v, Color: Palette[i]})
		}
	}

	return out
}

// GrowthAllocation returns one segment per growth sub-budget with a positive value.
func GrowthAllocation(g *domain.GrowthFund) []Segment {
	out := []Segment{}
	if g == nil {
		return out
	}

	parts := []struct {
		name  string
		value domain.Amount
	}{
		{"Marketing", g.MarketingBudget},
		{"Hiring", g.HiringBudget},
		{"Equipment", g.EquipmentUpgrade},
		{"R&D", g.ResearchDevelopment},
	}
	for i, p := range parts {
		if p.value.IsPositive() {
			out = append(out, Segment{Name: p.name, Value: p.value, Color: Palette[i]})
		}
	}

	return out
}

// CashFlowSeries maps the monthly forecast to chart points in the order given.
func CashFlowSeries(f *domain.CashFlowForecast) []CashFlowPoint {
	if f == nil {
		return []CashFlowPoint{}
	}

	out := make([]CashFlowPoint, 0, len(f.MonthlyForecast))
	for _, m := range f.MonthlyForecast {
		out = append(out, CashFlowPoint{
			Label:       "M" + strconv.Itoa(m.Month),
			Revenue:     m.Revenue,
			Expenses:    m.Expenses,
			NetCashFlow: m.NetCashFlow,
		})
	}

	return out
}

var hundred = decimal.NewFromInt(100) //nolint: gochecknoglobals

// Progress is savings as a percentage of target, capped at 100. A zero target
// counts as 1.
func Progress(savings, target domain.Amount) domain.Amount {
	t := target.Decimal
	if t.IsZero() {
		t = decimal.NewFromInt(1)
	}

	p := savings.Div(t).Mul(hundred)
	if p.GreaterThan(hundred) {
		p = hundred
	}

	return domain.NewAmount(p.Round(2))
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T

		return zero
	}

	return *p
}

func nonNil(s []string) []string {
	return append([]string{}, s...)
}

func textOrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}

	return s
}

func titleOrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	r, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(r)) + s[size:]
}

func round(f float64, places int) float64 {
	p := math.Pow(10, float64(places))

	return math.Round(f*p) / p
}
