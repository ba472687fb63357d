package news

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Subscriber is a single email address known to basket, together with the
// newsletters it is signed up for. The token is the public identifier used
// in links; the email itself never appears in URLs.
type Subscriber struct {
	ID          string `validate:"required,uuid4"`
	Email       string `validate:"required,email"`
	Token       string `validate:"required,uuid4"`
	Newsletters []string
	Lang        string
	Country     string
	Optin       bool
	Confirmed   bool
	UnsubReason string
	// Fields holds the custom per-program values stored by the
	// custom_update_* endpoints (phonebook, student ambassadors).
	Fields  map[string]string
	Created time.Time
	Updated time.Time
}

// Validate for validating Subscriber struct
func (s *Subscriber) Validate() error {
	validate := validator.New()

	err := validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// Subscribed reports whether the subscriber is signed up for the given slug.
func (s *Subscriber) Subscribed(slug string) bool {
	for _, n := range s.Newsletters {
		if n == slug {
			return true
		}
	}
	return false
}

// AddNewsletters merges slugs into the subscription list without duplicates.
func (s *Subscriber) AddNewsletters(slugs []string) {
	for _, slug := range slugs {
		if !s.Subscribed(slug) {
			s.Newsletters = append(s.Newsletters, slug)
		}
	}
}

// RemoveNewsletters drops slugs from the subscription list.
func (s *Subscriber) RemoveNewsletters(slugs []string) {
	remaining := s.Newsletters[:0]
	for _, n := range s.Newsletters {
		drop := false
		for _, slug := range slugs {
			if n == slug {
				drop = true
				break
			}
		}
		if !drop {
			remaining = append(remaining, n)
		}
	}
	s.Newsletters = remaining
}

// Newsletter is one entry of the newsletter catalog.
type Newsletter struct {
	ID          string `validate:"required,uuid4"`
	Slug        string `validate:"required"`
	Title       string
	Description string
	// Show forces the newsletter to appear in listings even when the
	// requester is not subscribed to it.
	Show    bool
	Active  bool
	Welcome string
	// VendorID is the identifier of this newsletter on the email vendor side.
	VendorID string `validate:"required"`
	// Languages this newsletter is offered in, e.g. ["en-US", "fr"].
	Languages []string
	Order     int
	Created   time.Time
}

// Validate for validating Newsletter struct
func (n *Newsletter) Validate() error {
	validate := validator.New()

	err := validate.Struct(n)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// NormalizeLanguages strips whitespace and empty entries from the language
// list. Editors paste "en-US, fr, de " style values; stored form is clean.
func (n *Newsletter) NormalizeLanguages() {
	cleaned := n.Languages[:0]
	for _, lang := range n.Languages {
		lang = strings.TrimSpace(lang)
		if lang != "" {
			cleaned = append(cleaned, lang)
		}
	}
	n.Languages = cleaned
}

// APIUser is a named API key holder. Keys authorize the sync and optin
// subscribe flags and email-based user lookup.
type APIUser struct {
	ID      string `validate:"required,uuid4"`
	Name    string `validate:"required"`
	APIKey  string `validate:"required,uuid4"`
	Enabled bool
	Created time.Time
}

// Validate for validating APIUser struct
func (u *APIUser) Validate() error {
	validate := validator.New()

	err := validate.Struct(u)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// SubscriptionRequest carries the validated parameters of a subscribe call.
// Sync and Optin are the effective values after the transport-level gating
// (HTTPS + API key) has been applied by the caller.
type SubscriptionRequest struct {
	Email       string
	Newsletters []string
	Lang        string
	Country     string
	// Validated marks the email as already checked upstream.
	Validated bool
	Optin     bool
	Sync      bool
	Fields    map[string]string
}

// UserUpdate carries the fields of a user POST.
type UserUpdate struct {
	Newsletters []string
	Lang        string
	Country     string
	Fields      map[string]string
}

// UserData is the external representation of a subscriber returned by the
// user, lookup-user and debug-user operations.
type UserData struct {
	Email       string   `json:"email"`
	Token       string   `json:"token"`
	Lang        string   `json:"lang,omitempty"`
	Country     string   `json:"country,omitempty"`
	Newsletters []string `json:"newsletters"`
	Confirmed   bool     `json:"confirmed"`
	Optin       bool     `json:"optin"`
}

// UserUpdateTask is the payload of an asynchronous vendor-sync job.
type UserUpdateTask struct {
	Email   string
	Token   string
	Created bool
	Mode    string
	Optin   bool
	Fields  map[string]string
}

// SMSTask is the payload of an SMS subscription job.
type SMSTask struct {
	MobileNumber string
	MessageName  string
	Optin        bool
}
