package v1

import (
	"errors"
	"net/http"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/gin-gonic/gin"
)

// UserHandler defines the interface for handling user record endpoints
type UserHandler interface {
	GetUser(ctx *gin.Context)
	PostUser(ctx *gin.Context)
	DebugUser(ctx *gin.Context)
	LookupUser(ctx *gin.Context)
	Recover(ctx *gin.Context)
	UnsubReason(ctx *gin.Context)
	CustomUpdate(ctx *gin.Context)
}

// userHandler struct holds the services
type userHandler struct {
	subscriptions news.SubscriptionService
	recovery      news.RecoveryService
	apiUsers      news.APIUserRepository
	superToken    string
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	subscriptions news.SubscriptionService,
	recovery news.RecoveryService,
	apiUsers news.APIUserRepository,
	superToken string,
) UserHandler {
	return &userHandler{
		subscriptions: subscriptions,
		recovery:      recovery,
		apiUsers:      apiUsers,
		superToken:    superToken,
	}
}

// GetUser handles the GET request for the user record behind a token.
func (handler *userHandler) GetUser(ctx *gin.Context) {
	user, err := handler.subscriptions.GetUser(ctx, ctx.Param("token"))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

// PostUser handles the POST request that updates the user record behind a
// token. A present newsletters parameter replaces the subscription list.
func (handler *userHandler) PostUser(ctx *gin.Context) {
	form := formValues(ctx)

	update := &news.UserUpdate{
		Lang:    form.Get("lang"),
		Country: form.Get("country"),
		Fields:  extraFields(form),
	}
	if _, present := form["newsletters"]; present {
		update.Newsletters = splitList(form.Get("newsletters"))
	}

	if err := handler.subscriptions.UpdateUser(ctx, ctx.Param("token"), update); err != nil {
		writeError(ctx, err)
		return
	}

	writeOK(ctx)
}

// DebugUser handles the GET request for a user record by email. Only callers
// holding the configured supertoken may use it.
func (handler *userHandler) DebugUser(ctx *gin.Context) {
	if handler.superToken == "" || ctx.Query("supertoken") != handler.superToken {
		writeError(ctx, news.NewRequestError(http.StatusUnauthorized, news.CodeAuthError, "requires a valid supertoken"))
		return
	}

	email := ctx.Query("email")
	if email == "" {
		writeError(ctx, news.NewRequestError(http.StatusBadRequest, news.CodeUsageError, "email is missing"))
		return
	}

	user, err := handler.subscriptions.LookupUserByEmail(ctx, email)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

// LookupUser handles the GET request for a user record by token (public) or
// by email (API key holders only).
func (handler *userHandler) LookupUser(ctx *gin.Context) {
	if token := ctx.Query("token"); token != "" {
		user, err := handler.subscriptions.GetUser(ctx, token)
		if err != nil {
			writeError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, userResponse(user))
		return
	}

	email := ctx.Query("email")
	if email == "" {
		writeError(ctx, news.NewRequestError(http.StatusBadRequest, news.CodeUsageError, "no token or email provided"))
		return
	}

	key := ctx.Query("api-key")
	if key == "" {
		key = ctx.GetHeader("x-api-key")
	}
	valid, err := handler.apiUsers.ValidKey(ctx, key)
	if key == "" || err != nil || !valid {
		writeError(ctx, news.NewRequestError(http.StatusUnauthorized, news.CodeAuthError, "requires a valid api-key"))
		return
	}

	user, err := handler.subscriptions.LookupUserByEmail(ctx, email)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

// Recover handles the POST request to send a recovery message to a known
// email address.
func (handler *userHandler) Recover(ctx *gin.Context) {
	form := formValues(ctx)

	email := form.Get("email")
	if err := news.ValidateEmail(email, false); err != nil {
		var emailErr *news.EmailValidationError
		if errors.As(err, &emailErr) {
			writeError(ctx, &news.RequestError{
				Status:     http.StatusBadRequest,
				Code:       news.CodeInvalidEmail,
				Desc:       emailErr.Message,
				Suggestion: emailErr.Suggestion,
			})
			return
		}
		writeError(ctx, err)
		return
	}

	if err := handler.recovery.SendRecoveryMessage(ctx, email); err != nil {
		writeError(ctx, err)
		return
	}

	writeOK(ctx)
}

// UnsubReason handles the POST request that records the unsubscribe survey
// answer.
func (handler *userHandler) UnsubReason(ctx *gin.Context) {
	form := formValues(ctx)

	token := form.Get("token")
	reason := form.Get("reason")
	if token == "" || reason == "" {
		writeError(ctx, news.NewRequestError(http.StatusBadRequest, news.CodeUsageError, "token and reason are required"))
		return
	}

	if err := handler.subscriptions.SetUnsubReason(ctx, token, reason); err != nil {
		writeError(ctx, err)
		return
	}

	writeOK(ctx)
}

// CustomUpdate handles the POST requests that store per-program form payloads
// on the subscriber behind a token.
func (handler *userHandler) CustomUpdate(ctx *gin.Context) {
	form := formValues(ctx)

	fields := make(map[string]string, len(form))
	for key := range form {
		fields[key] = form.Get(key)
	}
	if len(fields) == 0 {
		writeError(ctx, news.NewRequestError(http.StatusBadRequest, news.CodeUsageError, "no fields provided"))
		return
	}

	if err := handler.subscriptions.SetCustomFields(ctx, ctx.Param("token"), fields); err != nil {
		writeError(ctx, err)
		return
	}

	writeOK(ctx)
}
