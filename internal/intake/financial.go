package intake

import (
	"finplan/pkg/domain"
	"finplan/pkg/serrors"
	"slices"
	"strings"
)

// DebtField addresses one field of the pending debt entry.
type DebtField uint8

const (
	DebtFieldType DebtField = iota + 1
	DebtFieldAmount
	DebtFieldInterestRate
	DebtFieldMonthlyPayment
	DebtFieldRemainingTerm
)

var debtFieldNames = map[DebtField]string{ //nolint: gochecknoglobals
	DebtFieldType:           "type",
	DebtFieldAmount:         "amount",
	DebtFieldInterestRate:   "interestRate",
	DebtFieldMonthlyPayment: "monthlyPayment",
	DebtFieldRemainingTerm:  "remainingTerm",
}

// String returns the JSON name of the field.
func (f DebtField) String() string {
	if n, ok := debtFieldNames[f]; ok {
		return n
	}

	return "unknown"
}

// ParseDebtField maps a field name such as "interestRate" to its field.
func ParseDebtField(name string) (DebtField, error) {
	for f, n := range debtFieldNames {
		if n == name {
			return f, nil
		}
	}

	return 0, serrors.With(serrors.ErrBadRequest, "unknown debt field %q", name)
}

// DebtDraft is a debt entry being typed in.
type DebtDraft struct {
	Type           string `json:"type"`
	Amount         string `json:"amount"`
	InterestRate   string `json:"interestRate"`
	MonthlyPayment string `json:"monthlyPayment"`
	RemainingTerm  string `json:"remainingTerm"`
}

// GoalDraft is a goal being typed in, with the timeline it will be filed under.
type GoalDraft struct {
	Text     string          `json:"text"`
	Timeline domain.Timeline `json:"timeline"`
}

// FinancialDraft is the raw input of the financial step. Debts and goals are
// already final; savings and investments are coerced on submit.
type FinancialDraft struct {
	CurrentSavings  string                `json:"currentSavings"`
	Investments     string                `json:"investments"`
	DebtObligations []domain.DebtEntry    `json:"debtObligations"`
	FinancialGoals  domain.FinancialGoals `json:"financialGoals"`
	PendingDebt     DebtDraft             `json:"pendingDebt"`
	PendingGoal     GoalDraft             `json:"pendingGoal"`
}

func (d FinancialDraft) clone() FinancialDraft {
	d.DebtObligations = append([]domain.DebtEntry{}, d.DebtObligations...)
	d.FinancialGoals = d.FinancialGoals.Clone()

	return d
}

// FinancialCollector accumulates the financial step's input.
type FinancialCollector struct {
	draft FinancialDraft
}

// NewFinancialCollector returns a collector holding an empty draft, with goals
// filed under the short term timeline.
func NewFinancialCollector() *FinancialCollector {
	return &FinancialCollector{draft: FinancialDraft{
		DebtObligations: []domain.DebtEntry{},
		FinancialGoals:  domain.FinancialGoals{}.Clone(),
		PendingGoal:     GoalDraft{Timeline: domain.ShortTerm},
	}}
}

// SetCurrentSavings stores the savings input as typed.
func (c *FinancialCollector) SetCurrentSavings(v string) { c.draft.CurrentSavings = v }

// SetInvestments stores the investments input as typed.
func (c *FinancialCollector) SetInvestments(v string) { c.draft.Investments = v }

// SetDebtField stores value in the pending debt entry. A non-empty type must
// be one of domain.DebtTypes.
func (c *FinancialCollector) SetDebtField(field DebtField, value string) error {
	switch field {
	case DebtFieldType:
		if value != "" {
			if _, ok := domain.ParseDebtType(value); !ok {
				return serrors.With(serrors.ErrBadRequest, "unknown debt type %q", value)
			}
		}
		c.draft.PendingDebt.Type = value
	case DebtFieldAmount:
		c.draft.PendingDebt.Amount = value
	case DebtFieldInterestRate:
		c.draft.PendingDebt.InterestRate = value
	case DebtFieldMonthlyPayment:
		c.draft.PendingDebt.MonthlyPayment = value
	case DebtFieldRemainingTerm:
		c.draft.PendingDebt.RemainingTerm = value
	default:
		return serrors.With(serrors.ErrBadRequest, "unknown debt field")
	}

	return nil
}

// AddDebt appends the pending debt entry and clears it. It does nothing and
// returns false when the type or amount is empty.
func (c *FinancialCollector) AddDebt() bool {
	p := c.draft.PendingDebt
	if p.Type == "" || p.Amount == "" {
		return false
	}

	c.draft.DebtObligations = append(c.draft.DebtObligations, domain.DebtEntry{
		Type:           domain.DebtType(p.Type),
		Amount:         ParseAmount(p.Amount),
		InterestRate:   ParseRate(p.InterestRate),
		MonthlyPayment: ParseAmount(p.MonthlyPayment),
		RemainingTerm:  ParseCount(p.RemainingTerm),
	})
	c.draft.PendingDebt = DebtDraft{}

	return true
}

// RemoveDebt removes the debt at index i. An index out of range is ignored.
func (c *FinancialCollector) RemoveDebt(i int) {
	c.draft.DebtObligations = removeAt(c.draft.DebtObligations, i)
}

// SetGoalText stores the pending goal text as typed.
func (c *FinancialCollector) SetGoalText(v string) { c.draft.PendingGoal.Text = v }

// SelectTimeline selects the timeline the next goal is filed under.
func (c *FinancialCollector) SelectTimeline(tl domain.Timeline) error {
	if _, ok := domain.ParseTimeline(string(tl)); !ok {
		return serrors.With(serrors.ErrBadRequest, "unknown timeline %q", tl)
	}
	c.draft.PendingGoal.Timeline = tl

	return nil
}

// AddGoal appends the trimmed pending goal text to the selected timeline and
// clears the text. Blank text is ignored and false is returned.
func (c *FinancialCollector) AddGoal() bool {
	text := strings.TrimSpace(c.draft.PendingGoal.Text)
	if text == "" {
		return false
	}

	tl := c.draft.PendingGoal.Timeline
	c.draft.FinancialGoals.Set(tl, append(c.draft.FinancialGoals.Get(tl), text))
	c.draft.PendingGoal.Text = ""

	return true
}

// RemoveGoal removes the goal at index i of timeline tl. An index out of
// range is ignored.
func (c *FinancialCollector) RemoveGoal(tl domain.Timeline, i int) error {
	if _, ok := domain.ParseTimeline(string(tl)); !ok {
		return serrors.With(serrors.ErrBadRequest, "unknown timeline %q", tl)
	}
	c.draft.FinancialGoals.Set(tl, removeAt(c.draft.FinancialGoals.Get(tl), i))

	return nil
}

// Draft returns a copy of the current draft.
func (c *FinancialCollector) Draft() FinancialDraft {
	return c.draft.clone()
}

// Submit coerces the draft into a FinancialProfile.
func (c *FinancialCollector) Submit() domain.FinancialProfile {
	return domain.FinancialProfile{
		CurrentSavings:  ParseAmount(c.draft.CurrentSavings),
		Investments:     ParseAmount(c.draft.Investments),
		DebtObligations: c.draft.DebtObligations,
		FinancialGoals:  c.draft.FinancialGoals,
	}.Clone()
}

// removeAt returns s without the element at i, leaving s itself untouched.
func removeAt[T any](s []T, i int) []T {
	if i < 0 || i >= len(s) {
		return s
	}

	return slices.Delete(slices.Clone(s), i, i+1)
}
