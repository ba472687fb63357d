package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/bensternthal/basket/internal/pkg/logger"
	"github.com/google/uuid"
)

// defaultSMSMessage is the message sent when a subscribe_sms call names none.
const defaultSMSMessage = "SMS_Android"

var nonDigitRe = regexp.MustCompile(`\D`)

// subscriptionService implements the SubscriptionService interface for the
// subscription lifecycle: sign up, unsubscribe, confirm and user updates.
type subscriptionService struct {
	subscribers news.SubscriberRepository
	newsletters news.NewsletterService
	dispatcher  news.TaskDispatcher
	logger      logger.Logger
}

// NewSubscriptionService creates a new instance of SubscriptionService
func NewSubscriptionService(
	subscribers news.SubscriberRepository,
	newsletters news.NewsletterService,
	dispatcher news.TaskDispatcher,
	logger logger.Logger,
) (news.SubscriptionService, error) {
	return &subscriptionService{
		subscribers: subscribers,
		newsletters: newsletters,
		dispatcher:  dispatcher,
		logger:      logger,
	}, nil
}

// Subscribe signs an email up for newsletters. No subscriber row is written
// until every parameter has validated.
func (s *subscriptionService) Subscribe(ctx context.Context, req *news.SubscriptionRequest) (*news.Subscriber, bool, error) {
	if err := news.ValidateEmail(req.Email, req.Validated); err != nil {
		var emailErr *news.EmailValidationError
		if errors.As(err, &emailErr) {
			return nil, false, &news.RequestError{
				Status:     http.StatusBadRequest,
				Code:       news.CodeInvalidEmail,
				Desc:       emailErr.Message,
				Suggestion: emailErr.Suggestion,
			}
		}
		return nil, false, err
	}

	if len(req.Newsletters) == 0 {
		return nil, false, news.NewRequestError(http.StatusBadRequest, news.CodeUsageError, "newsletters is missing")
	}
	if err := s.checkNewsletters(ctx, req.Newsletters); err != nil {
		return nil, false, err
	}
	if !news.LanguageCodeIsValid(req.Lang) {
		return nil, false, news.NewRequestError(http.StatusBadRequest, news.CodeInvalidLanguage, "invalid language")
	}

	subscriber, err := s.subscribers.GetByEmail(ctx, req.Email)
	created := false
	switch {
	case err == nil:
	case errors.Is(err, news.ErrSubscriberNotFound):
		created = true
		subscriber = &news.Subscriber{
			ID:    uuid.New().String(),
			Email: req.Email,
			Token: uuid.New().String(),
			// Opted-in subscriptions skip the confirmation round trip
			Confirmed: req.Optin,
			Optin:     req.Optin,
			Created:   time.Now(),
		}
	default:
		return nil, false, fmt.Errorf("failed to look up subscriber: %w", err)
	}

	subscriber.AddNewsletters(req.Newsletters)
	if req.Lang != "" {
		subscriber.Lang = req.Lang
	}
	if req.Country != "" {
		subscriber.Country = req.Country
	}
	s.mergeFields(subscriber, req.Fields)
	subscriber.Updated = time.Now()

	if created {
		if err := s.subscribers.Create(ctx, subscriber); err != nil {
			return nil, false, fmt.Errorf("failed to create subscriber: %w", err)
		}
	} else {
		if err := s.subscribers.Update(ctx, subscriber); err != nil {
			return nil, false, fmt.Errorf("failed to update subscriber: %w", err)
		}
	}

	s.dispatchUpdate(ctx, &news.UserUpdateTask{
		Email:   subscriber.Email,
		Token:   subscriber.Token,
		Created: created,
		Mode:    news.ModeSubscribe,
		Optin:   req.Optin,
		Fields:  req.Fields,
	})

	return subscriber, created, nil
}

// SubscribeSMS signs a North American mobile number up for an SMS message.
// The number is normalized to ten digits; a leading country code 1 is dropped.
func (s *subscriptionService) SubscribeSMS(ctx context.Context, mobileNumber, messageName string, optin bool) error {
	number := nonDigitRe.ReplaceAllString(mobileNumber, "")
	if len(number) == 11 && number[0] == '1' {
		number = number[1:]
	}
	if len(number) != 10 {
		return news.NewRequestError(http.StatusBadRequest, news.CodeUsageError, "mobile_number must be a US number")
	}

	if messageName == "" {
		messageName = defaultSMSMessage
	}

	task := &news.SMSTask{MobileNumber: number, MessageName: messageName, Optin: optin}
	if err := s.dispatcher.DispatchSMS(ctx, task); err != nil {
		return fmt.Errorf("failed to dispatch sms task: %w", err)
	}

	return nil
}

// Unsubscribe removes newsletters from the subscriber identified by token.
// With optout set the whole subscription list is dropped.
func (s *subscriptionService) Unsubscribe(ctx context.Context, token string, newsletters []string, optout bool, reason string) error {
	subscriber, err := s.getByToken(ctx, token)
	if err != nil {
		return err
	}

	if optout {
		subscriber.Newsletters = nil
	} else {
		if len(newsletters) == 0 {
			return news.NewRequestError(http.StatusBadRequest, news.CodeUsageError, "newsletters is missing")
		}
		subscriber.RemoveNewsletters(newsletters)
	}
	if reason != "" {
		subscriber.UnsubReason = reason
	}
	subscriber.Updated = time.Now()

	if err := s.subscribers.Update(ctx, subscriber); err != nil {
		return fmt.Errorf("failed to update subscriber: %w", err)
	}

	s.dispatchUpdate(ctx, &news.UserUpdateTask{
		Email: subscriber.Email,
		Token: subscriber.Token,
		Mode:  news.ModeUnsubscribe,
	})

	return nil
}

// Confirm marks a pending subscription as confirmed. Confirming twice is a
// no-op, not an error.
func (s *subscriptionService) Confirm(ctx context.Context, token string) error {
	subscriber, err := s.getByToken(ctx, token)
	if err != nil {
		return err
	}

	if subscriber.Confirmed {
		return nil
	}

	subscriber.Confirmed = true
	subscriber.Updated = time.Now()

	if err := s.subscribers.Update(ctx, subscriber); err != nil {
		return fmt.Errorf("failed to update subscriber: %w", err)
	}

	s.dispatchUpdate(ctx, &news.UserUpdateTask{
		Email: subscriber.Email,
		Token: subscriber.Token,
		Mode:  news.ModeSet,
	})

	return nil
}

// GetUser returns the external representation of the subscriber identified
// by token.
func (s *subscriptionService) GetUser(ctx context.Context, token string) (*news.UserData, error) {
	subscriber, err := s.getByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return userData(subscriber), nil
}

// LookupUserByEmail returns the external representation of the subscriber
// with the given email address.
func (s *subscriptionService) LookupUserByEmail(ctx context.Context, email string) (*news.UserData, error) {
	subscriber, err := s.subscribers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, news.ErrSubscriberNotFound) {
			return nil, news.NewRequestError(http.StatusNotFound, news.CodeUnknownEmail, "email not known")
		}
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	return userData(subscriber), nil
}

// UpdateUser merges the given fields into the subscriber identified by token.
// A non-nil newsletter list replaces the subscription list.
func (s *subscriptionService) UpdateUser(ctx context.Context, token string, update *news.UserUpdate) error {
	subscriber, err := s.getByToken(ctx, token)
	if err != nil {
		return err
	}

	if update.Lang != "" && !news.LanguageCodeIsValid(update.Lang) {
		return news.NewRequestError(http.StatusBadRequest, news.CodeInvalidLanguage, "invalid language")
	}
	if update.Newsletters != nil {
		if err := s.checkNewsletters(ctx, update.Newsletters); err != nil {
			return err
		}
		subscriber.Newsletters = append([]string(nil), update.Newsletters...)
	}
	if update.Lang != "" {
		subscriber.Lang = update.Lang
	}
	if update.Country != "" {
		subscriber.Country = update.Country
	}
	s.mergeFields(subscriber, update.Fields)
	subscriber.Updated = time.Now()

	if err := s.subscribers.Update(ctx, subscriber); err != nil {
		return fmt.Errorf("failed to update subscriber: %w", err)
	}

	s.dispatchUpdate(ctx, &news.UserUpdateTask{
		Email:  subscriber.Email,
		Token:  subscriber.Token,
		Mode:   news.ModeSet,
		Fields: update.Fields,
	})

	return nil
}

// SetUnsubReason records the unsubscribe survey answer for a token.
func (s *subscriptionService) SetUnsubReason(ctx context.Context, token, reason string) error {
	subscriber, err := s.getByToken(ctx, token)
	if err != nil {
		return err
	}

	subscriber.UnsubReason = reason
	subscriber.Updated = time.Now()

	if err := s.subscribers.Update(ctx, subscriber); err != nil {
		return fmt.Errorf("failed to update subscriber: %w", err)
	}

	return nil
}

// SetCustomFields stores per-program values on the subscriber identified by
// token and schedules a vendor sync for them.
func (s *subscriptionService) SetCustomFields(ctx context.Context, token string, fields map[string]string) error {
	subscriber, err := s.getByToken(ctx, token)
	if err != nil {
		return err
	}

	s.mergeFields(subscriber, fields)
	subscriber.Updated = time.Now()

	if err := s.subscribers.Update(ctx, subscriber); err != nil {
		return fmt.Errorf("failed to update subscriber: %w", err)
	}

	s.dispatchUpdate(ctx, &news.UserUpdateTask{
		Email:  subscriber.Email,
		Token:  subscriber.Token,
		Mode:   news.ModeSet,
		Fields: fields,
	})

	return nil
}

// checkNewsletters verifies every slug against the catalog.
func (s *subscriptionService) checkNewsletters(ctx context.Context, slugs []string) error {
	catalog, err := s.newsletters.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load newsletter catalog: %w", err)
	}

	for _, slug := range slugs {
		if _, ok := catalog[slug]; !ok {
			return news.NewRequestError(http.StatusBadRequest, news.CodeInvalidNewsletter, "invalid newsletter")
		}
	}

	return nil
}

func (s *subscriptionService) getByToken(ctx context.Context, token string) (*news.Subscriber, error) {
	subscriber, err := s.subscribers.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, news.ErrSubscriberNotFound) {
			return nil, news.NewRequestError(http.StatusNotFound, news.CodeUnknownToken, "unknown token")
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	return subscriber, nil
}

func (s *subscriptionService) mergeFields(subscriber *news.Subscriber, fields map[string]string) {
	if len(fields) == 0 {
		return
	}
	if subscriber.Fields == nil {
		subscriber.Fields = make(map[string]string, len(fields))
	}
	for key, value := range fields {
		subscriber.Fields[key] = value
	}
}

// dispatchUpdate schedules a vendor sync. A full queue must not fail the
// request that triggered it; the failure is only logged.
func (s *subscriptionService) dispatchUpdate(ctx context.Context, task *news.UserUpdateTask) {
	if err := s.dispatcher.DispatchUserUpdate(ctx, task); err != nil {
		s.logger.Error("Failed to dispatch user update for ", task.Token, ": ", err)
	}
}

func userData(subscriber *news.Subscriber) *news.UserData {
	newsletters := subscriber.Newsletters
	if newsletters == nil {
		newsletters = []string{}
	}
	return &news.UserData{
		Email:       subscriber.Email,
		Token:       subscriber.Token,
		Lang:        subscriber.Lang,
		Country:     subscriber.Country,
		Newsletters: newsletters,
		Confirmed:   subscriber.Confirmed,
		Optin:       subscriber.Optin,
	}
}
