package trafikverket

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey = errors.New("trafikverket API key not found")
	ErrInvalidFilter = errors.New("can only OR two filters")
	ErrEnvelopeShape = errors.New("unexpected response envelope")
)

// TransportError is returned when the request could not be sent or the
// response body was not a JSON document.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("trafikverket transport: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
