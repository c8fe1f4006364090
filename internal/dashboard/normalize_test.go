package dashboard_test

import (
	"encoding/json"
	"finplan/internal/dashboard"
	"finplan/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeSet(t *testing.T, raw string) *domain.RecommendationSet {
	t.Helper()

	var rs domain.RecommendationSet
	require.NoError(t, json.Unmarshal([]byte(raw), &rs))

	return &rs
}

func names(segments []dashboard.Segment) []string {
	out := []string{}
	for _, s := range segments {
		out = append(out, s.Name)
	}

	return out
}

func TestExpenseBreakdown_SkipsZeroCategories(t *testing.T) {
	e := domain.OperatingExpenses{
		Rent:      domain.AmountFromInt(3000),
		Materials: domain.AmountFromFloat(450.5),
		Other:     domain.AmountFromInt(10),
	}

	got := dashboard.ExpenseBreakdown(e)
	require.Equal(t, []string{"Rent", "Materials", "Other"}, names(got))
	for _, s := range got {
		require.True(t, s.Value.IsPositive())
	}

	// colors follow the category, not the position in the filtered list
	require.Equal(t, "#8884d8", got[0].Color)
	require.Equal(t, "#ffc658", got[1].Color)
	require.Equal(t, "#ff0000", got[2].Color)

	require.Empty(t, dashboard.ExpenseBreakdown(domain.OperatingExpenses{}))
}

func TestGrowthAllocation(t *testing.T) {
	require.Empty(t, dashboard.GrowthAllocation(nil))

	got := dashboard.GrowthAllocation(&domain.GrowthFund{
		MarketingBudget:     domain.AmountFromInt(500),
		EquipmentUpgrade:    domain.AmountFromInt(0),
		ResearchDevelopment: domain.AmountFromInt(250),
	})
	require.Equal(t, []string{"Marketing", "R&D"}, names(got))
	require.Equal(t, "#ff7300", got[1].Color)
}

func TestCashFlowSeries_KeepsServerOrder(t *testing.T) {
	rs := decodeSet(t, `{"cashFlowForecast":{"monthlyForecast":[
		{"month":2,"revenue":20,"expenses":5,"netCashFlow":15},
		{"month":1,"revenue":10,"expenses":4,"netCashFlow":6}
	]}}`)

	got := dashboard.CashFlowSeries(rs.CashFlowForecast)
	require.Len(t, got, 2)
	require.Equal(t, "M2", got[0].Label)
	require.Equal(t, "15", got[0].NetCashFlow.String())
	require.Equal(t, "M1", got[1].Label)

	require.Empty(t, dashboard.CashFlowSeries(nil))
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name    string
		savings domain.Amount
		target  domain.Amount
		want    string
	}{
		{name: "half way", savings: domain.AmountFromInt(5000), target: domain.AmountFromInt(10000), want: "50"},
		{name: "capped", savings: domain.AmountFromInt(30000), target: domain.AmountFromInt(10000), want: "100"},
		{name: "zero target counts as one", savings: domain.AmountFromFloat(0.5), target: domain.Amount{}, want: "50"},
		{name: "nothing saved", savings: domain.Amount{}, target: domain.AmountFromInt(100), want: "0"},
		{name: "rounded", savings: domain.AmountFromInt(1), target: domain.AmountFromInt(3), want: "33.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, dashboard.Progress(tt.savings, tt.target).String())
		})
	}
}

func TestNormalize_EmptySetDefaults(t *testing.T) {
	v := dashboard.Normalize(nil, domain.BusinessProfile{}, domain.FinancialProfile{})

	require.Equal(t, dashboard.NotAvailable, v.Industry)
	require.True(t, v.Summary.EmergencyFund.IsZero())
	require.InDelta(t, dashboard.DefaultEmergencyMonths, v.Summary.EmergencyMonths, 0)
	require.Equal(t, dashboard.NotAvailable, v.Summary.RetirementPlan)
	require.Equal(t, dashboard.NotAvailable, v.Retirement.TaxBenefits)
	require.Equal(t, dashboard.NoDebtStrategy, v.Debt.PayoffStrategy)
	require.NotNil(t, v.Debt.Consolidation)
	require.NotNil(t, v.Tax.Deductions)
	require.NotNil(t, v.Tax.Strategies)
	require.NotNil(t, v.Growth.Allocation)
	require.NotNil(t, v.CashFlow.Series)
	require.Equal(t, "0", v.EmergencyFund.ProgressPercent.String())

	// absent figures encode as 0, never as blanks or nulls
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.NotContains(t, string(b), "null")
	require.Contains(t, string(b), `"taxLiability":0`)
}

func TestNormalize_FullSet(t *testing.T) {
	rs := decodeSet(t, `{
		"emergencyFund":{"recommendedAmount":24000,"monthlyContribution":1000,"timeToGoal":11.96,"monthlyExpenses":6000,"multiplier":6},
		"growthFund":{"totalBudget":2500,"marketingBudget":1000,"hiringBudget":1000,"equipmentUpgrade":500,"researchDevelopment":0},
		"employeeBenefitsFund":{"totalBudget":900,"healthBenefits":600,"bonusPool":300},
		"taxPlanning":{"estimatedTaxLiability":42000,"recommendedDeductions":["Home office"],"taxSavingStrategies":["Defer income"]},
		"debtManagement":{"totalDebt":1500,"payoffStrategy":"Avalanche","consolidationOpportunities":[
			{"type":"High Interest Debt","totalAmount":1500,"currentAvgRate":0.2199,"potentialNewRate":0.085,"monthlySavings":17}
		]},
		"retirementPlanning":{"recommendedPlan":"SEP-IRA","recommendedContribution":5000,"employeeCount":25,"contributionPercentage":0.035},
		"cashFlowForecast":{"monthlyForecast":[{"month":1,"revenue":50000,"expenses":30000,"netCashFlow":20000}],
			"annualSummary":{"totalRevenue":600000,"totalExpenses":360000,"totalNetCashFlow":240000}}
	}`)
	business := domain.BusinessProfile{
		Industry:          "technology",
		OperatingExpenses: domain.OperatingExpenses{Rent: domain.AmountFromInt(3000)},
	}
	financial := domain.FinancialProfile{CurrentSavings: domain.AmountFromInt(6000)}

	v := dashboard.Normalize(rs, business, financial)

	require.Equal(t, "Technology", v.Industry)
	require.Equal(t, "24000", v.Summary.EmergencyFund.String())
	require.InDelta(t, 6.0, v.Summary.EmergencyMonths, 0)
	require.Equal(t, "SEP-IRA", v.Summary.RetirementPlan)

	require.Equal(t, "6000", v.EmergencyFund.CurrentSavings.String())
	require.Equal(t, "25", v.EmergencyFund.ProgressPercent.String())
	require.InDelta(t, 12.0, v.EmergencyFund.MonthsToGoal, 0.0001)
	require.Equal(t, "technology", v.EmergencyFund.IndustryRisk)

	require.Equal(t, []string{"Marketing", "Hiring", "Equipment"}, names(v.Growth.Allocation))
	require.Equal(t, []string{"Rent"}, names(v.ExpenseBreakdown))

	require.Equal(t, "Avalanche", v.Debt.PayoffStrategy)
	require.Len(t, v.Debt.Consolidation, 1)
	require.InDelta(t, 21.99, v.Debt.Consolidation[0].CurrentRatePercent, 0.0001)
	require.InDelta(t, 8.5, v.Debt.Consolidation[0].NewRatePercent, 0.0001)

	require.InDelta(t, 3.5, v.Retirement.ContributionPercent, 0.0001)
	require.Equal(t, 25, v.Retirement.EmployeeCount)
	require.Equal(t, dashboard.NotAvailable, v.Retirement.TaxBenefits)

	require.Equal(t, []string{"Home office"}, v.Tax.Deductions)
	require.Len(t, v.CashFlow.Series, 1)
	require.Equal(t, "240000", v.CashFlow.TotalNetCashFlow.String())
}

func TestNormalize_DoesNotModifyInput(t *testing.T) {
	rs := decodeSet(t, `{"taxPlanning":{"recommendedDeductions":["A"]}}`)
	v := dashboard.Normalize(rs, domain.BusinessProfile{}, domain.FinancialProfile{})
	v.Tax.Deductions[0] = "changed"

	require.Equal(t, []string{"A"}, rs.TaxPlanning.RecommendedDeductions)
}
