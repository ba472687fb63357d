package news

import "regexp"

// Language codes are two or three lowercase letters, optionally followed by
// a dash and a two-letter region. Matching is case-insensitive.
var languageCodeRe = regexp.MustCompile(`(?i)^[a-z]{2,3}(-[a-z]{2})?$`)

// LanguageCodeIsValid reports whether code looks like a valid locale code.
// The empty string is accepted: subscribers may omit their language.
func LanguageCodeIsValid(code string) bool {
	if code == "" {
		return true
	}
	return languageCodeRe.MatchString(code)
}
