package v1

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/gin-gonic/gin"
)

// reservedParams are subscribe/user form keys with protocol meaning; anything
// else is forwarded to the vendor as a custom field.
var reservedParams = map[string]bool{
	"email":           true,
	"newsletters":     true,
	"lang":            true,
	"country":         true,
	"optin":           true,
	"sync":            true,
	"validated":       true,
	"api-key":         true,
	"format":          true,
	"mobile_number":   true,
	"msg_name":        true,
	"source_url":      true,
	"trigger_welcome": true,
}

// formValues returns the request's POST parameters. Old FxOS clients send
// urlencoded bodies under a non-form content type, so when regular parsing
// yields nothing the raw body is re-parsed as a query string.
func formValues(ctx *gin.Context) url.Values {
	req := ctx.Request

	if err := req.ParseForm(); err == nil && len(req.PostForm) > 0 {
		return req.PostForm
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err == nil && len(body) > 0 {
			if values, parseErr := url.ParseQuery(string(body)); parseErr == nil {
				return values
			}
		}
	}

	return url.Values{}
}

// isSecure reports whether the request arrived over HTTPS, directly or via a
// TLS-terminating proxy.
func isSecure(req *http.Request) bool {
	if req.TLS != nil {
		return true
	}
	return strings.EqualFold(req.Header.Get("X-Forwarded-Proto"), "https")
}

// apiKeyFrom extracts the caller's API key from the form or the x-api-key
// header.
func apiKeyFrom(ctx *gin.Context, form url.Values) string {
	if key := form.Get("api-key"); key != "" {
		return key
	}
	return ctx.GetHeader("x-api-key")
}

// parseBool interprets the permissive truthy values of the form protocol.
func parseBool(value string) bool {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "Y", "YES", "TRUE", "1":
		return true
	}
	return false
}

// splitList splits a comma- or space-separated parameter into clean entries.
func splitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	})
	return fields
}

// extraFields collects the non-protocol form parameters.
func extraFields(form url.Values) map[string]string {
	var fields map[string]string
	for key := range form {
		if reservedParams[key] {
			continue
		}
		if fields == nil {
			fields = make(map[string]string)
		}
		fields[key] = form.Get(key)
	}
	return fields
}

// writeError renders an error through the news envelope. Failures without a
// protocol mapping become code 99.
func writeError(ctx *gin.Context, err error) {
	var reqErr *news.RequestError
	if errors.As(err, &reqErr) {
		ctx.JSON(reqErr.Status, ErrorResponse{
			Status:     "error",
			Desc:       reqErr.Desc,
			Code:       reqErr.Code,
			Suggestion: reqErr.Suggestion,
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Status: "error",
		Desc:   "unknown error",
		Code:   news.CodeUnknownError,
	})
}

func writeOK(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, OKResponse{Status: "ok"})
}

func userResponse(user *news.UserData) UserResponse {
	return UserResponse{
		Status:      "ok",
		Email:       user.Email,
		Token:       user.Token,
		Lang:        user.Lang,
		Country:     user.Country,
		Newsletters: user.Newsletters,
		Confirmed:   user.Confirmed,
		Optin:       user.Optin,
	}
}
