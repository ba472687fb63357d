package news

import "errors"

// Sentinel errors surfaced by repositories.
var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrNewsletterNotFound = errors.New("newsletter not found")
)

// RequestError is a protocol-visible failure: it carries the HTTP status,
// the basket error code and the description the client sees.
type RequestError struct {
	Status     int
	Code       int
	Desc       string
	Suggestion string
}

func (e *RequestError) Error() string {
	return e.Desc
}

// NewRequestError builds a RequestError for the given status, code and description.
func NewRequestError(status, code int, desc string) *RequestError {
	return &RequestError{Status: status, Code: code, Desc: desc}
}

// EmailValidationError reports an invalid email address, optionally with a
// corrected spelling of the domain.
type EmailValidationError struct {
	Message    string
	Suggestion string
}

func (e *EmailValidationError) Error() string {
	return e.Message
}
