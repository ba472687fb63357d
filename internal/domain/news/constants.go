package news

// Error codes returned in the "code" field of error responses. The numbering
// is the one basket clients already rely on, so it must not change.
const (
	CodeNetworkFailure           = 1
	CodeInvalidEmail             = 2
	CodeUnknownEmail             = 3
	CodeUnknownToken             = 4
	CodeUsageError               = 5
	CodeEmailProviderAuthFailure = 6
	CodeAuthError                = 7
	CodeSSLRequired              = 8
	CodeInvalidNewsletter        = 9
	CodeInvalidLanguage          = 10
	CodeEmailNotSent             = 11
	CodeCantUpdatePhone          = 12
	CodeUnknownError             = 99
)

// Update modes carried by dispatched user-update tasks.
const (
	ModeSubscribe   = "SUBSCRIBE"
	ModeUnsubscribe = "UNSUBSCRIBE"
	ModeSet         = "SET"
)
