package trafikverket

import (
	"encoding/json"
	"fmt"
)

// Result is the first element of the provider's RESPONSE.RESULT array. Its
// keys are object type names (or ERROR / INFO) mapped to raw JSON values.
type Result map[string]json.RawMessage

type ProviderError struct {
	Source  string `json:"SOURCE"`
	Message string `json:"MESSAGE"`
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("trafikverket %s error: %s", e.Source, e.Message)
}

func (r Result) Has(objectType string) bool {
	_, ok := r[objectType]
	return ok
}

// Decode unmarshals the value stored under objectType into v. Callers should
// check Has first, a missing key is reported as ErrEnvelopeShape.
func (r Result) Decode(objectType string, v any) error {
	raw, ok := r[objectType]
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrEnvelopeShape, objectType)
	}

	return json.Unmarshal(raw, v)
}

// ProviderError returns the ERROR document the provider embeds in the result
// when it rejects a question, or nil.
func (r Result) ProviderError() *ProviderError {
	raw, ok := r["ERROR"]
	if !ok {
		return nil
	}

	var providerError ProviderError
	if err := json.Unmarshal(raw, &providerError); err != nil {
		return &ProviderError{Source: "Unknown", Message: string(raw)}
	}

	return &providerError
}
