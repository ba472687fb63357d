package news

import (
	"net/mail"
	"strings"
)

// Common mail-provider typos worth offering a correction for. The subscribe
// form sees these constantly; anything not listed is just rejected.
var domainSuggestions = map[string]string{
	"gmail.con":   "gmail.com",
	"gamil.com":   "gmail.com",
	"gmial.com":   "gmail.com",
	"hotmail.con": "hotmail.com",
	"hotnail.com": "hotmail.com",
	"yaho.com":    "yahoo.com",
	"yahooo.com":  "yahoo.com",
}

// ValidateEmail checks an address and returns an EmailValidationError when it
// is not acceptable. When the domain looks like a typo of a well-known
// provider the error carries the corrected address as a suggestion.
// Callers that received the address from a trusted source pass validated=true
// to skip the check entirely.
func ValidateEmail(email string, validated bool) error {
	if validated {
		return nil
	}

	if email == "" {
		return &EmailValidationError{Message: "email is missing"}
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &EmailValidationError{Message: "invalid email address"}
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return &EmailValidationError{Message: "invalid email address"}
	}

	if fixed, found := domainSuggestions[strings.ToLower(domain)]; found {
		return &EmailValidationError{
			Message:    "invalid email address",
			Suggestion: local + "@" + fixed,
		}
	}

	if !strings.Contains(domain, ".") {
		return &EmailValidationError{Message: "invalid email address"}
	}

	return nil
}
