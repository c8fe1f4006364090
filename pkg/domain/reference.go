package domain

// Country is a selectable country of operation.
type Country struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// Industry is a selectable industry.
type Industry struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	RiskLevel string `json:"riskLevel"`
}

// Currency is a selectable currency.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// ReferenceOptions groups the option lists offered by the intake forms.
// A list the planning service could not provide is empty, never nil.
type ReferenceOptions struct {
	Countries  []Country  `json:"countries"`
	Industries []Industry `json:"industries"`
	Currencies []Currency `json:"currencies"`
}
