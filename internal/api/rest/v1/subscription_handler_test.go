//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func postContext(t *testing.T, target, contentType, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func postFormContext(t *testing.T, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	return postContext(t, target, "application/x-www-form-urlencoded", body)
}

func testSubscriber() *news.Subscriber {
	return &news.Subscriber{
		ID:          "3f1b8c5e-8f63-4b6e-9a5e-111111111111",
		Email:       "dude@example.com",
		Token:       "3f1b8c5e-8f63-4b6e-9a5e-222222222222",
		Newsletters: []string{"mozilla-and-you"},
	}
}

func TestSubscribeHandler_Success(t *testing.T) {
	mockSubscriptions := new(MockSubscriptionService)
	mockAPIUsers := new(MockAPIUserRepository)
	handler := NewSubscriptionHandler(mockSubscriptions, mockAPIUsers)

	mockSubscriptions.
		On("Subscribe", mock.Anything, mock.Anything).
		Return(testSubscriber(), true, nil)

	c, w := postFormContext(t, "/news/subscribe/", "email=dude@example.com&newsletters=mozilla-and-you")
	handler.Subscribe(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	// the token stays private without sync
	assert.NotContains(t, w.Body.String(), "token")
	mockSubscriptions.AssertExpectations(t)
}

func TestSubscribeHandler_SyncRequiresSSL(t *testing.T) {
	mockSubscriptions := new(MockSubscriptionService)
	mockAPIUsers := new(MockAPIUserRepository)
	handler := NewSubscriptionHandler(mockSubscriptions, mockAPIUsers)

	c, w := postFormContext(t, "/news/subscribe/", "email=dude@example.com&newsletters=mozilla-and-you&sync=Y")
	handler.Subscribe(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":8`)
	mockSubscriptions.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything)
}

func TestSubscribeHandler_SyncRequiresAPIKey(t *testing.T) {
	mockSubscriptions := new(MockSubscriptionService)
	mockAPIUsers := new(MockAPIUserRepository)
	handler := NewSubscriptionHandler(mockSubscriptions, mockAPIUsers)

	c, w := postFormContext(t, "/news/subscribe/", "email=dude@example.com&newsletters=mozilla-and-you&sync=Y")
	c.Request.Header.Set("X-Forwarded-Proto", "https")
	handler.Subscribe(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":7`)
}

func TestSubscribeHandler_SyncReturnsToken(t *testing.T) {
	mockSubscriptions := new(MockSubscriptionService)
	mockAPIUsers := new(MockAPIUserRepository)
	handler := NewSubscriptionHandler(mockSubscriptions, mockAPIUsers)

	subscriber := testSubscriber()
	mockAPIUsers.On("ValidKey", mock.Anything, "good-key").Return(true, nil)
	mockSubscriptions.
		On("Subscribe", mock.Anything, mock.MatchedBy(func(req *news.SubscriptionRequest) bool {
			return req.Sync
		})).
		Return(subscriber, true, nil)

	c, w := postFormContext(t, "/news/subscribe/",
		"email=dude@example.com&newsletters=mozilla-and-you&sync=Y&api-key=good-key")
	c.Request.Header.Set("X-Forwarded-Proto", "https")
	handler.Subscribe(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), subscriber.Token)
	assert.Contains(t, w.Body.String(), `"created":true`)
	mockAPIUsers.AssertExpectations(t)
}

func TestSubscribeHandler_OptinDowngradedWithoutAuth(t *testing.T) {
	mockSubscriptions := new(MockSubscriptionService)
	mockAPIUsers := new(MockAPIUserRepository)
	handler := NewSubscriptionHandler(mockSubscriptions, mockAPIUsers)

	mockSubscriptions.
		On("Subscribe", mock.Anything, mock.MatchedBy(func(req *news.SubscriptionRequest) bool {
			return !req.Optin
		})).
		Return(testSubscriber(), true, nil)

	// optin over plain HTTP is not an error, it just does not count
	c, w := postFormContext(t, "/news/subscribe/", "email=dude@example.com&newsletters=mozilla-and-you&optin=Y")
	handler.Subscribe(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSubscriptions.AssertExpectations(t)
}

func TestSubscribeHandler_ValidatedSkipsCheckWithoutSync(t *testing.T) {
	mockSubscriptions := new(MockSubscriptionService)
	mockAPIUsers := new(MockAPIUserRepository)
	handler := NewSubscriptionHandler(mockSubscriptions, mockAPIUsers)

	// validated=true is not gated on sync authorization
	mockSubscriptions.
		On("Subscribe", mock.Anything, mock.MatchedBy(func(req *news.SubscriptionRequest) bool {
			return req.Validated && !req.Sync
		})).
		Return(testSubscriber(), true, nil)

	c, w := postFormContext(t, "/news/subscribe/",
		"email=dude@example.com&newsletters=mozilla-and-you&validated=true")
	handler.Subscribe(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSubscriptions.AssertExpectations(t)
}

func TestSubscribeHandler_RawBodyFallback(t *testing.T) {
	mockSubscriptions := new(MockSubscriptionService)
	mockAPIUsers := new(MockAPIUserRepository)
	handler := NewSubscriptionHandler(mockSubscriptions, mockAPIUsers)

	mockSubscriptions.
		On("Subscribe", mock.Anything, mock.MatchedBy(func(req *news.SubscriptionRequest) bool {
			return req.Email == "dude@example.com" && len(req.Newsletters) == 1
		})).
		Return(testSubscriber(), true, nil)

	// FxOS posts urlencoded bodies under text/plain
	c, w := postContext(t, "/news/subscribe/", "text/plain",
		"email=dude@example.com&newsletters=mozilla-and-you")
	handler.Subscribe(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSubscriptions.AssertExpectations(t)
}

func TestSubscribeHandler_ServiceError(t *testing.T) {
	mockSubscriptions := new(MockSubscriptionService)
	mockAPIUsers := new(MockAPIUserRepository)
	handler := NewSubscriptionHandler(mockSubscriptions, mockAPIUsers)

	mockSubscriptions.
		On("Subscribe", mock.Anything, mock.Anything).
		Return(nil, false, news.NewRequestError(http.StatusBadRequest, news.CodeInvalidNewsletter, "invalid newsletter"))

	c, w := postFormContext(t, "/news/subscribe/", "email=dude@example.com&newsletters=nope")
	handler.Subscribe(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":9`)
	assert.Contains(t, w.Body.String(), "invalid newsletter")
}

func TestSubscribeSMSHandler_MissingNumber(t *testing.T) {
	mockSubscriptions := new(MockSubscriptionService)
	mockAPIUsers := new(MockAPIUserRepository)
	handler := NewSubscriptionHandler(mockSubscriptions, mockAPIUsers)

	c, w := postFormContext(t, "/news/subscribe_sms/", "msg_name=SMS_Android")
	handler.SubscribeSMS(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "mobile_number is missing")
}

func TestUnsubscribeHandler(t *testing.T) {
	mockSubscriptions := new(MockSubscriptionService)
	mockAPIUsers := new(MockAPIUserRepository)
	handler := NewSubscriptionHandler(mockSubscriptions, mockAPIUsers)

	mockSubscriptions.
		On("Unsubscribe", mock.Anything, "some-token", []string{"mozilla-and-you"}, false, "").
		Return(nil)

	c, w := postFormContext(t, "/news/unsubscribe/some-token/", "newsletters=mozilla-and-you")
	c.Params = gin.Params{gin.Param{Key: "token", Value: "some-token"}}
	handler.Unsubscribe(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSubscriptions.AssertExpectations(t)
}

func TestConfirmHandler_UnknownToken(t *testing.T) {
	mockSubscriptions := new(MockSubscriptionService)
	mockAPIUsers := new(MockAPIUserRepository)
	handler := NewSubscriptionHandler(mockSubscriptions, mockAPIUsers)

	mockSubscriptions.
		On("Confirm", mock.Anything, "missing-token").
		Return(news.NewRequestError(http.StatusNotFound, news.CodeUnknownToken, "unknown token"))

	c, w := postFormContext(t, "/news/confirm/missing-token/", "")
	c.Params = gin.Params{gin.Param{Key: "token", Value: "missing-token"}}
	handler.Confirm(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":4`)
}
