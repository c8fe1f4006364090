package intake

import (
	"finplan/pkg/domain"
	"finplan/pkg/serrors"
	"maps"
	"strings"
)

// BusinessField addresses one editable field of the business step.
type BusinessField uint8

const (
	FieldCountry BusinessField = iota + 1
	FieldRegion
	FieldCity
	FieldIndustry
	FieldEmployeeCount
	FieldMonthlyRevenue
	FieldCurrency
	FieldRent
	FieldUtilities
	FieldMaterials
	FieldMarketing
	FieldInsurance
	FieldOtherExpense
)

var businessFieldPaths = map[BusinessField]string{ //nolint: gochecknoglobals
	FieldCountry:        "location.country",
	FieldRegion:         "location.region",
	FieldCity:           "location.city",
	FieldIndustry:       "industry",
	FieldEmployeeCount:  "employeeCount",
	FieldMonthlyRevenue: "monthlyRevenue",
	FieldCurrency:       "currency",
	FieldRent:           "operatingExpenses.rent",
	FieldUtilities:      "operatingExpenses.utilities",
	FieldMaterials:      "operatingExpenses.materials",
	FieldMarketing:      "operatingExpenses.marketing",
	FieldInsurance:      "operatingExpenses.insurance",
	FieldOtherExpense:   "operatingExpenses.other",
}

var expenseFields = map[BusinessField]domain.ExpenseCategory{ //nolint: gochecknoglobals
	FieldRent:         domain.ExpenseRent,
	FieldUtilities:    domain.ExpenseUtilities,
	FieldMaterials:    domain.ExpenseMaterials,
	FieldMarketing:    domain.ExpenseMarketing,
	FieldInsurance:    domain.ExpenseInsurance,
	FieldOtherExpense: domain.ExpenseOther,
}

// String returns the dotted path of the field.
func (f BusinessField) String() string {
	if p, ok := businessFieldPaths[f]; ok {
		return p
	}

	return "unknown"
}

// ParseBusinessField maps a dotted path such as "location.city" to its field.
// Only a single level of nesting exists.
func ParseBusinessField(path string) (BusinessField, error) {
	if strings.Count(path, ".") > 1 {
		return 0, serrors.With(serrors.ErrBadRequest, "field %q is nested too deeply", path)
	}
	for f, p := range businessFieldPaths {
		if p == path {
			return f, nil
		}
	}

	return 0, serrors.With(serrors.ErrBadRequest, "unknown business field %q", path)
}

// DefaultCurrency is preselected on a new business draft.
const DefaultCurrency = "USD"

// BusinessDraft is the raw, uncoerced input of the business step.
type BusinessDraft struct {
	Location          domain.Location                   `json:"location"`
	Industry          string                            `json:"industry"`
	EmployeeCount     string                            `json:"employeeCount"`
	MonthlyRevenue    string                            `json:"monthlyRevenue"`
	Currency          string                            `json:"currency"`
	OperatingExpenses map[domain.ExpenseCategory]string `json:"operatingExpenses"`
}

func (d BusinessDraft) clone() BusinessDraft {
	d.OperatingExpenses = maps.Clone(d.OperatingExpenses)

	return d
}

// BusinessCollector accumulates the business step's input.
type BusinessCollector struct {
	draft BusinessDraft
}

// NewBusinessCollector returns a collector holding an empty draft.
func NewBusinessCollector() *BusinessCollector {
	expenses := make(map[domain.ExpenseCategory]string, len(domain.ExpenseCategories))
	for _, c := range domain.ExpenseCategories {
		expenses[c] = ""
	}

	return &BusinessCollector{draft: BusinessDraft{
		Currency:          DefaultCurrency,
		OperatingExpenses: expenses,
	}}
}

// Set stores value for field as typed. Coercion happens on Submit.
func (c *BusinessCollector) Set(field BusinessField, value string) {
	switch field {
	case FieldCountry:
		c.draft.Location.Country = value
	case FieldRegion:
		c.draft.Location.Region = value
	case FieldCity:
		c.draft.Location.City = value
	case FieldIndustry:
		c.draft.Industry = value
	case FieldEmployeeCount:
		c.draft.EmployeeCount = value
	case FieldMonthlyRevenue:
		c.draft.MonthlyRevenue = value
	case FieldCurrency:
		c.draft.Currency = value
	default:
		if cat, ok := expenseFields[field]; ok {
			c.draft.OperatingExpenses[cat] = value
		}
	}
}

// Draft returns a copy of the current draft.
func (c *BusinessCollector) Draft() BusinessDraft {
	return c.draft.clone()
}

// Submit coerces the draft into a BusinessProfile. Numbers that do not parse
// become 0.
func (c *BusinessCollector) Submit() domain.BusinessProfile {
	p := domain.BusinessProfile{
		Location:       c.draft.Location,
		Industry:       c.draft.Industry,
		EmployeeCount:  ParseCount(c.draft.EmployeeCount),
		MonthlyRevenue: ParseAmount(c.draft.MonthlyRevenue),
		Currency:       c.draft.Currency,
	}
	for _, cat := range domain.ExpenseCategories {
		p.OperatingExpenses.Set(cat, ParseAmount(c.draft.OperatingExpenses[cat]))
	}

	return p
}
