package domain

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Submission is the combined payload sent to the planning service. It is
// encoded as a single flat object: a shallow merge of the business profile
// and the financial profile, where financial keys win on collision.
type Submission struct {
	Business  BusinessProfile
	Financial FinancialProfile
}

// MarshalJSON encodes the shallow merge of both profiles.
func (s Submission) MarshalJSON() ([]byte, error) {
	merged := map[string]json.RawMessage{}
	for _, part := range []any{s.Business, s.Financial} {
		b, err := json.Marshal(part)
		if err != nil {
			return nil, fmt.Errorf("could not marshal submission part: %w", err)
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(b, &fields); err != nil {
			return nil, fmt.Errorf("could not split submission part: %w", err)
		}
		maps.Copy(merged, fields)
	}

	return json.Marshal(merged) //nolint: wrapcheck
}
