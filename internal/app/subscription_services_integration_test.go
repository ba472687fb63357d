//go:build integration
// +build integration

package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireRequestError(t *testing.T, err error) *news.RequestError {
	t.Helper()
	require.Error(t, err)
	reqErr, ok := err.(*news.RequestError)
	require.True(t, ok, "expected a RequestError, got %T: %v", err, err)
	return reqErr
}

func TestSubscribe_CreatesSubscriber(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU", "en-US", "fr")
	ctx := context.Background()

	subscriber, created, err := services.SubscriptionService.Subscribe(ctx, &news.SubscriptionRequest{
		Email:       "dude@example.com",
		Newsletters: []string{"mozilla-and-you"},
		Lang:        "en-US",
		Country:     "us",
	})
	require.NoError(t, err)

	assert.True(t, created)
	assert.NotEmpty(t, subscriber.Token)
	assert.Equal(t, []string{"mozilla-and-you"}, subscriber.Newsletters)
	assert.False(t, subscriber.Confirmed)

	stored, err := services.DBContext.SubscriberRepo.GetByToken(ctx, subscriber.Token)
	require.NoError(t, err)
	assert.Equal(t, "dude@example.com", stored.Email)
}

func TestSubscribe_ExistingSubscriberMergesNewsletters(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU")
	SeedNewsletter(t, services, "beta", "BETA_NEWS")
	ctx := context.Background()

	first, created, err := services.SubscriptionService.Subscribe(ctx, &news.SubscriptionRequest{
		Email:       "dude@example.com",
		Newsletters: []string{"mozilla-and-you"},
	})
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := services.SubscriptionService.Subscribe(ctx, &news.SubscriptionRequest{
		Email:       "dude@example.com",
		Newsletters: []string{"beta"},
	})
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, first.Token, second.Token)
	assert.ElementsMatch(t, []string{"mozilla-and-you", "beta"}, second.Newsletters)
}

func TestSubscribe_MissingNewsletters(t *testing.T) {
	services := SetupTestServices(t)

	_, _, err := services.SubscriptionService.Subscribe(context.Background(), &news.SubscriptionRequest{
		Email: "dude@example.com",
	})

	reqErr := requireRequestError(t, err)
	assert.Equal(t, http.StatusBadRequest, reqErr.Status)
	assert.Equal(t, news.CodeUsageError, reqErr.Code)
	assert.Equal(t, "newsletters is missing", reqErr.Desc)
}

func TestSubscribe_InvalidNewsletter(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU")

	_, _, err := services.SubscriptionService.Subscribe(context.Background(), &news.SubscriptionRequest{
		Email:       "dude@example.com",
		Newsletters: []string{"mozilla-and-you", "does-not-exist"},
	})

	reqErr := requireRequestError(t, err)
	assert.Equal(t, news.CodeInvalidNewsletter, reqErr.Code)
	assert.Equal(t, "invalid newsletter", reqErr.Desc)
}

func TestSubscribe_InvalidLanguage(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU")

	_, _, err := services.SubscriptionService.Subscribe(context.Background(), &news.SubscriptionRequest{
		Email:       "dude@example.com",
		Newsletters: []string{"mozilla-and-you"},
		Lang:        "55",
	})

	reqErr := requireRequestError(t, err)
	assert.Equal(t, news.CodeInvalidLanguage, reqErr.Code)
	assert.Equal(t, "invalid language", reqErr.Desc)
}

func TestSubscribe_InvalidEmailWithSuggestion(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU")
	ctx := context.Background()

	_, _, err := services.SubscriptionService.Subscribe(ctx, &news.SubscriptionRequest{
		Email:       "dude@gmail.con",
		Newsletters: []string{"mozilla-and-you"},
	})

	reqErr := requireRequestError(t, err)
	assert.Equal(t, news.CodeInvalidEmail, reqErr.Code)
	assert.Equal(t, "dude@gmail.com", reqErr.Suggestion)

	// validation failure must not leave a subscriber row behind
	_, err = services.DBContext.SubscriberRepo.GetByEmail(ctx, "dude@gmail.con")
	assert.ErrorIs(t, err, news.ErrSubscriberNotFound)
}

func TestSubscribe_ValidatedSkipsEmailCheck(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU")

	_, created, err := services.SubscriptionService.Subscribe(context.Background(), &news.SubscriptionRequest{
		Email:       "not really an email",
		Newsletters: []string{"mozilla-and-you"},
		Validated:   true,
	})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestSubscribe_OptinSkipsConfirmation(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU")

	subscriber, _, err := services.SubscriptionService.Subscribe(context.Background(), &news.SubscriptionRequest{
		Email:       "dude@example.com",
		Newsletters: []string{"mozilla-and-you"},
		Optin:       true,
	})
	require.NoError(t, err)
	assert.True(t, subscriber.Confirmed)
}

func TestSubscribeSMS(t *testing.T) {
	services := SetupTestServices(t)
	ctx := context.Background()

	require.NoError(t, services.SubscriptionService.SubscribeSMS(ctx, "(555) 123-4567", "", false))
	require.NoError(t, services.SubscriptionService.SubscribeSMS(ctx, "1-555-123-4567", "SMS_Android", true))

	err := services.SubscriptionService.SubscribeSMS(ctx, "12345", "", false)
	reqErr := requireRequestError(t, err)
	assert.Equal(t, news.CodeUsageError, reqErr.Code)
}

func TestUnsubscribe(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU")
	SeedNewsletter(t, services, "beta", "BETA_NEWS")
	ctx := context.Background()

	subscriber, _, err := services.SubscriptionService.Subscribe(ctx, &news.SubscriptionRequest{
		Email:       "dude@example.com",
		Newsletters: []string{"mozilla-and-you", "beta"},
	})
	require.NoError(t, err)

	err = services.SubscriptionService.Unsubscribe(ctx, subscriber.Token, []string{"beta"}, false, "")
	require.NoError(t, err)

	stored, err := services.DBContext.SubscriberRepo.GetByToken(ctx, subscriber.Token)
	require.NoError(t, err)
	assert.Equal(t, []string{"mozilla-and-you"}, stored.Newsletters)
}

func TestUnsubscribe_OptoutRemovesEverything(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU")
	ctx := context.Background()

	subscriber, _, err := services.SubscriptionService.Subscribe(ctx, &news.SubscriptionRequest{
		Email:       "dude@example.com",
		Newsletters: []string{"mozilla-and-you"},
	})
	require.NoError(t, err)

	err = services.SubscriptionService.Unsubscribe(ctx, subscriber.Token, nil, true, "too much email")
	require.NoError(t, err)

	stored, err := services.DBContext.SubscriberRepo.GetByToken(ctx, subscriber.Token)
	require.NoError(t, err)
	assert.Empty(t, stored.Newsletters)
	assert.Equal(t, "too much email", stored.UnsubReason)
}

func TestUnsubscribe_UnknownToken(t *testing.T) {
	services := SetupTestServices(t)

	err := services.SubscriptionService.Unsubscribe(context.Background(), "c7b59c9d-5b23-4fcb-b6a5-b0f4f26b2b37", []string{"x"}, false, "")

	reqErr := requireRequestError(t, err)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Equal(t, news.CodeUnknownToken, reqErr.Code)
}

func TestConfirm(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU")
	ctx := context.Background()

	subscriber, _, err := services.SubscriptionService.Subscribe(ctx, &news.SubscriptionRequest{
		Email:       "dude@example.com",
		Newsletters: []string{"mozilla-and-you"},
	})
	require.NoError(t, err)
	require.False(t, subscriber.Confirmed)

	require.NoError(t, services.SubscriptionService.Confirm(ctx, subscriber.Token))
	// confirming twice is a no-op
	require.NoError(t, services.SubscriptionService.Confirm(ctx, subscriber.Token))

	user, err := services.SubscriptionService.GetUser(ctx, subscriber.Token)
	require.NoError(t, err)
	assert.True(t, user.Confirmed)
}

func TestGetUser_UnknownToken(t *testing.T) {
	services := SetupTestServices(t)

	_, err := services.SubscriptionService.GetUser(context.Background(), "c7b59c9d-5b23-4fcb-b6a5-b0f4f26b2b37")

	reqErr := requireRequestError(t, err)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Equal(t, news.CodeUnknownToken, reqErr.Code)
}

func TestLookupUserByEmail(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU")
	ctx := context.Background()

	subscriber, _, err := services.SubscriptionService.Subscribe(ctx, &news.SubscriptionRequest{
		Email:       "dude@example.com",
		Newsletters: []string{"mozilla-and-you"},
	})
	require.NoError(t, err)

	user, err := services.SubscriptionService.LookupUserByEmail(ctx, "dude@example.com")
	require.NoError(t, err)
	assert.Equal(t, subscriber.Token, user.Token)

	_, err = services.SubscriptionService.LookupUserByEmail(ctx, "nobody@example.com")
	reqErr := requireRequestError(t, err)
	assert.Equal(t, news.CodeUnknownEmail, reqErr.Code)
}

func TestUpdateUser_ReplacesNewsletters(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU")
	SeedNewsletter(t, services, "beta", "BETA_NEWS")
	ctx := context.Background()

	subscriber, _, err := services.SubscriptionService.Subscribe(ctx, &news.SubscriptionRequest{
		Email:       "dude@example.com",
		Newsletters: []string{"mozilla-and-you"},
	})
	require.NoError(t, err)

	err = services.SubscriptionService.UpdateUser(ctx, subscriber.Token, &news.UserUpdate{
		Newsletters: []string{"beta"},
		Lang:        "fr",
	})
	require.NoError(t, err)

	user, err := services.SubscriptionService.GetUser(ctx, subscriber.Token)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, user.Newsletters)
	assert.Equal(t, "fr", user.Lang)
}

func TestSetCustomFields(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU")
	ctx := context.Background()

	subscriber, _, err := services.SubscriptionService.Subscribe(ctx, &news.SubscriptionRequest{
		Email:       "dude@example.com",
		Newsletters: []string{"mozilla-and-you"},
	})
	require.NoError(t, err)

	err = services.SubscriptionService.SetCustomFields(ctx, subscriber.Token, map[string]string{
		"city": "Mountain View",
	})
	require.NoError(t, err)

	stored, err := services.DBContext.SubscriberRepo.GetByToken(ctx, subscriber.Token)
	require.NoError(t, err)
	assert.Equal(t, "Mountain View", stored.Fields["city"])
}

func TestSendRecoveryMessage(t *testing.T) {
	services := SetupTestServices(t)
	SeedNewsletter(t, services, "mozilla-and-you", "MOZILLA_AND_YOU")
	ctx := context.Background()

	_, _, err := services.SubscriptionService.Subscribe(ctx, &news.SubscriptionRequest{
		Email:       "dude@example.com",
		Newsletters: []string{"mozilla-and-you"},
	})
	require.NoError(t, err)

	require.NoError(t, services.RecoveryService.SendRecoveryMessage(ctx, "dude@example.com"))

	err = services.RecoveryService.SendRecoveryMessage(ctx, "nobody@example.com")
	reqErr := requireRequestError(t, err)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Equal(t, news.CodeUnknownEmail, reqErr.Code)
}
