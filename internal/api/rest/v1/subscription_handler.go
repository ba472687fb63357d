package v1

import (
	"net/http"
	"net/url"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/gin-gonic/gin"
)

// SubscriptionHandler defines the interface for handling subscription endpoints
type SubscriptionHandler interface {
	Subscribe(ctx *gin.Context)
	SubscribeSMS(ctx *gin.Context)
	Unsubscribe(ctx *gin.Context)
	Confirm(ctx *gin.Context)
}

// subscriptionHandler struct holds the services
type subscriptionHandler struct {
	subscriptions news.SubscriptionService
	apiUsers      news.APIUserRepository
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptions news.SubscriptionService, apiUsers news.APIUserRepository) SubscriptionHandler {
	return &subscriptionHandler{
		subscriptions: subscriptions,
		apiUsers:      apiUsers,
	}
}

// Subscribe handles the POST request to sign an email up for newsletters.
// sync=Y requires HTTPS and a valid API key and makes the response carry the
// subscriber token; optin=Y counts only with the same authorization but is
// silently dropped without it.
func (handler *subscriptionHandler) Subscribe(ctx *gin.Context) {
	form := formValues(ctx)

	sync := parseBool(form.Get("sync"))
	optin := parseBool(form.Get("optin"))

	if sync || optin {
		err := handler.authorize(ctx, form)
		if err != nil && sync {
			writeError(ctx, err)
			return
		}
		if err != nil {
			optin = false
		}
	}

	req := &news.SubscriptionRequest{
		Email:       form.Get("email"),
		Newsletters: splitList(form.Get("newsletters")),
		Lang:        form.Get("lang"),
		Country:     form.Get("country"),
		Validated:   parseBool(form.Get("validated")),
		Optin:       optin,
		Sync:        sync,
		Fields:      extraFields(form),
	}

	subscriber, created, err := handler.subscriptions.Subscribe(ctx, req)
	if err != nil {
		writeError(ctx, err)
		return
	}

	response := OKResponse{Status: "ok"}
	if sync {
		response.Token = subscriber.Token
		response.Created = created
	}
	ctx.JSON(http.StatusOK, response)
}

// SubscribeSMS handles the POST request to sign a mobile number up for an
// SMS message.
func (handler *subscriptionHandler) SubscribeSMS(ctx *gin.Context) {
	form := formValues(ctx)

	mobileNumber := form.Get("mobile_number")
	if mobileNumber == "" {
		writeError(ctx, news.NewRequestError(http.StatusBadRequest, news.CodeUsageError, "mobile_number is missing"))
		return
	}

	err := handler.subscriptions.SubscribeSMS(ctx, mobileNumber, form.Get("msg_name"), parseBool(form.Get("optin")))
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeOK(ctx)
}

// Unsubscribe handles the POST request to remove newsletters from the
// subscriber identified by the token path parameter.
func (handler *subscriptionHandler) Unsubscribe(ctx *gin.Context) {
	form := formValues(ctx)

	err := handler.subscriptions.Unsubscribe(ctx,
		ctx.Param("token"),
		splitList(form.Get("newsletters")),
		parseBool(form.Get("optout")),
		form.Get("reason"),
	)
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeOK(ctx)
}

// Confirm handles the POST request to confirm a pending subscription.
func (handler *subscriptionHandler) Confirm(ctx *gin.Context) {
	if err := handler.subscriptions.Confirm(ctx, ctx.Param("token")); err != nil {
		writeError(ctx, err)
		return
	}

	writeOK(ctx)
}

// authorize checks the transport and API key requirements of the sync and
// optin flags.
func (handler *subscriptionHandler) authorize(ctx *gin.Context, form url.Values) error {
	if !isSecure(ctx.Request) {
		return news.NewRequestError(http.StatusUnauthorized, news.CodeSSLRequired, "SSL required")
	}

	key := apiKeyFrom(ctx, form)
	if key == "" {
		return news.NewRequestError(http.StatusUnauthorized, news.CodeAuthError, "requires a valid api-key")
	}

	valid, err := handler.apiUsers.ValidKey(ctx, key)
	if err != nil || !valid {
		return news.NewRequestError(http.StatusUnauthorized, news.CodeAuthError, "requires a valid api-key")
	}

	return nil
}
