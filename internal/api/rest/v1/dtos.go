package v1

// Response envelopes. Every endpoint answers with a "status" field;
// errors carry the numeric code and description clients switch on.

// ErrorResponse is the error envelope of the news API.
type ErrorResponse struct {
	Status     string `json:"status"`
	Desc       string `json:"desc"`
	Code       int    `json:"code"`
	Suggestion string `json:"suggestion,omitempty"`
}

// OKResponse is the plain success envelope. Token and Created are only set
// for synchronous subscribes.
type OKResponse struct {
	Status  string `json:"status"`
	Token   string `json:"token,omitempty"`
	Created bool   `json:"created,omitempty"`
}

// UserResponse is the success envelope of the user, lookup-user and
// debug-user endpoints.
type UserResponse struct {
	Status      string   `json:"status"`
	Email       string   `json:"email"`
	Token       string   `json:"token"`
	Lang        string   `json:"lang,omitempty"`
	Country     string   `json:"country,omitempty"`
	Newsletters []string `json:"newsletters"`
	Confirmed   bool     `json:"confirmed"`
	Optin       bool     `json:"optin"`
}

// NewsletterResponse is one catalog entry of the newsletter listings.
type NewsletterResponse struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Show        bool     `json:"show"`
	Active      bool     `json:"active"`
	Welcome     string   `json:"welcome,omitempty"`
	VendorID    string   `json:"vendor_id"`
	Languages   []string `json:"languages"`
	Order       int      `json:"order"`
}

// NewslettersResponse is the full catalog keyed by slug.
type NewslettersResponse struct {
	Status      string                        `json:"status"`
	Newsletters map[string]NewsletterResponse `json:"newsletters"`
}

// ActiveNewslettersResponse is the ordered listing of active newsletters.
type ActiveNewslettersResponse struct {
	Status      string               `json:"status"`
	Newsletters []NewsletterResponse `json:"newsletters"`
}
