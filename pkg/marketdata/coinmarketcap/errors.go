package coinmarketcap

import (
	"fmt"

	"github.com/raykavin/toppairs/pkg/core"
)

// HTTPError is returned when the provider answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	ErrorCode  int64  // ErrorCode from the status block of the body, if any
	Message    string // Message from the status block of the body, if any
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("coinmarketcap: http status %d", e.StatusCode)
	}
	return fmt.Sprintf("coinmarketcap: http status %d: %s (code %d)", e.StatusCode, e.Message, e.ErrorCode)
}

func (e *HTTPError) Unwrap() error { return core.ErrHTTPStatus }

// ParseError reports a coin entry that could not be turned into a CoinRecord.
type ParseError struct {
	Index int    // Index of the entry in the data array
	Field string // Field that is missing or invalid
	Err   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("coinmarketcap: data[%d]", e.Index)
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{core.ErrMalformedResponse}
	}
	return []error{core.ErrMalformedResponse, e.Err}
}
