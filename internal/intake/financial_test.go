package intake_test

import (
	"finplan/internal/intake"
	"finplan/pkg/domain"
	"finplan/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

func addDebt(t *testing.T, c *intake.FinancialCollector, typ, amount string) bool {
	t.Helper()
	require.NoError(t, c.SetDebtField(intake.DebtFieldType, typ))
	require.NoError(t, c.SetDebtField(intake.DebtFieldAmount, amount))

	return c.AddDebt()
}

func debtAmounts(c *intake.FinancialCollector) []string {
	var out []string
	for _, d := range c.Draft().DebtObligations {
		out = append(out, d.Amount.String())
	}

	return out
}

func TestFinancialCollector_AddDebtPrecondition(t *testing.T) {
	c := intake.NewFinancialCollector()

	require.False(t, addDebt(t, c, "", "1500"))
	require.False(t, addDebt(t, c, "Credit Card", ""))
	require.Empty(t, c.Draft().DebtObligations)

	// a rejected add keeps the buffer so the user can complete it
	require.Equal(t, "Credit Card", c.Draft().PendingDebt.Type)
}

func TestFinancialCollector_AddDebtAppendsAndClears(t *testing.T) {
	c := intake.NewFinancialCollector()
	require.NoError(t, c.SetDebtField(intake.DebtFieldType, "Business Loan"))
	require.NoError(t, c.SetDebtField(intake.DebtFieldAmount, "25000"))
	require.NoError(t, c.SetDebtField(intake.DebtFieldInterestRate, "6.5"))
	require.NoError(t, c.SetDebtField(intake.DebtFieldMonthlyPayment, "800"))
	require.NoError(t, c.SetDebtField(intake.DebtFieldRemainingTerm, "36"))
	require.True(t, c.AddDebt())
	require.True(t, addDebt(t, c, "Credit Card", "1500"))

	d := c.Draft()
	require.Equal(t, intake.DebtDraft{}, d.PendingDebt)
	require.Len(t, d.DebtObligations, 2)
	require.Equal(t, domain.DebtBusinessLoan, d.DebtObligations[0].Type)
	require.Equal(t, "6.5", d.DebtObligations[0].InterestRate.String())
	require.Equal(t, "800", d.DebtObligations[0].MonthlyPayment.String())
	require.Equal(t, 36, d.DebtObligations[0].RemainingTerm)
	require.Equal(t, domain.DebtCreditCard, d.DebtObligations[1].Type)
}

func TestFinancialCollector_UnknownDebtType(t *testing.T) {
	c := intake.NewFinancialCollector()
	err := c.SetDebtField(intake.DebtFieldType, "IOU")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
	require.Empty(t, c.Draft().PendingDebt.Type)

	require.NoError(t, c.SetDebtField(intake.DebtFieldType, ""))
}

func TestParseDebtField(t *testing.T) {
	f, err := intake.ParseDebtField("interestRate")
	require.NoError(t, err)
	require.Equal(t, intake.DebtFieldInterestRate, f)
	require.Equal(t, "interestRate", f.String())

	_, err = intake.ParseDebtField("lender")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestFinancialCollector_AddThenRemoveDebt(t *testing.T) {
	c := intake.NewFinancialCollector()
	require.True(t, addDebt(t, c, "Credit Card", "1500"))

	c.RemoveDebt(0)
	require.Empty(t, c.Draft().DebtObligations)
	require.NotNil(t, c.Submit().DebtObligations)
}

func TestFinancialCollector_RemoveDebtKeepsOrder(t *testing.T) {
	c := intake.NewFinancialCollector()
	for _, a := range []string{"1", "2", "3", "4"} {
		require.True(t, addDebt(t, c, "Other", a))
	}

	c.RemoveDebt(1)
	require.Equal(t, []string{"1", "3", "4"}, debtAmounts(c))

	c.RemoveDebt(-1)
	c.RemoveDebt(3)
	require.Equal(t, []string{"1", "3", "4"}, debtAmounts(c))

	c.RemoveDebt(2)
	require.Equal(t, []string{"1", "3"}, debtAmounts(c))
}

func TestFinancialCollector_Goals(t *testing.T) {
	c := intake.NewFinancialCollector()
	require.Equal(t, domain.ShortTerm, c.Draft().PendingGoal.Timeline)

	c.SetGoalText("   ")
	require.False(t, c.AddGoal())
	require.Empty(t, c.Draft().FinancialGoals.ShortTerm)

	c.SetGoalText("  Build a 6 month reserve ")
	require.True(t, c.AddGoal())
	require.Empty(t, c.Draft().PendingGoal.Text)

	require.NoError(t, c.SelectTimeline(domain.LongTerm))
	c.SetGoalText("Open a second location")
	require.True(t, c.AddGoal())
	c.SetGoalText("Retire")
	require.True(t, c.AddGoal())

	g := c.Draft().FinancialGoals
	require.Equal(t, []string{"Build a 6 month reserve"}, g.ShortTerm)
	require.Empty(t, g.MediumTerm)
	require.Equal(t, []string{"Open a second location", "Retire"}, g.LongTerm)

	require.NoError(t, c.RemoveGoal(domain.LongTerm, 0))
	require.NoError(t, c.RemoveGoal(domain.LongTerm, 5))
	require.Equal(t, []string{"Retire"}, c.Draft().FinancialGoals.LongTerm)

	require.ErrorIs(t, c.SelectTimeline("someday"), serrors.ErrBadRequest)
	require.ErrorIs(t, c.RemoveGoal("someday", 0), serrors.ErrBadRequest)
}

func TestFinancialCollector_Submit(t *testing.T) {
	c := intake.NewFinancialCollector()
	c.SetCurrentSavings("12000.25")
	c.SetInvestments("5000")
	require.True(t, addDebt(t, c, "Mortgage", "200000"))

	p := c.Submit()
	require.Equal(t, "12000.25", p.CurrentSavings.String())
	require.Equal(t, "5000", p.Investments.String())
	require.Len(t, p.DebtObligations, 1)

	// the submitted profile does not alias the draft
	c.RemoveDebt(0)
	require.Len(t, p.DebtObligations, 1)
}
