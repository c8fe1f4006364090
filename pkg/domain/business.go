package domain

// Location is where the business operates.
type Location struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	City    string `json:"city"`
}

// ExpenseCategory names one of the fixed operating expense categories.
type ExpenseCategory string

const (
	ExpenseRent      ExpenseCategory = "rent"
	ExpenseUtilities ExpenseCategory = "utilities"
	ExpenseMaterials ExpenseCategory = "materials"
	ExpenseMarketing ExpenseCategory = "marketing"
	ExpenseInsurance ExpenseCategory = "insurance"
	ExpenseOther     ExpenseCategory = "other"
)

// ExpenseCategories lists the operating expense categories in display order.
var ExpenseCategories = []ExpenseCategory{ //nolint: gochecknoglobals
	ExpenseRent,
	ExpenseUtilities,
	ExpenseMaterials,
	ExpenseMarketing,
	ExpenseInsurance,
	ExpenseOther,
}

// OperatingExpenses holds the monthly operating expenses per fixed category.
type OperatingExpenses struct {
	Rent      Amount `json:"rent"`
	Utilities Amount `json:"utilities"`
	Materials Amount `json:"materials"`
	Marketing Amount `json:"marketing"`
	Insurance Amount `json:"insurance"`
	Other     Amount `json:"other"`
}

// Get returns the expense recorded for category c. Unknown categories are 0.
func (e OperatingExpenses) Get(c ExpenseCategory) Amount {
	switch c {
	case ExpenseRent:
		return e.Rent
	case ExpenseUtilities:
		return e.Utilities
	case ExpenseMaterials:
		return e.Materials
	case ExpenseMarketing:
		return e.Marketing
	case ExpenseInsurance:
		return e.Insurance
	case ExpenseOther:
		return e.Other
	}

	return Amount{}
}

// Set records v for category c. Unknown categories are ignored.
func (e *OperatingExpenses) Set(c ExpenseCategory, v Amount) {
	switch c {
	case ExpenseRent:
		e.Rent = v
	case ExpenseUtilities:
		e.Utilities = v
	case ExpenseMaterials:
		e.Materials = v
	case ExpenseMarketing:
		e.Marketing = v
	case ExpenseInsurance:
		e.Insurance = v
	case ExpenseOther:
		e.Other = v
	}
}

// BusinessProfile is the finalized output of the business information step.
// All numeric fields are non-negative.
type BusinessProfile struct {
	Location          Location          `json:"location"`
	Industry          string            `json:"industry"`
	EmployeeCount     int               `json:"employeeCount"`
	MonthlyRevenue    Amount            `json:"monthlyRevenue"`
	Currency          string            `json:"currency"`
	OperatingExpenses OperatingExpenses `json:"operatingExpenses"`
}
