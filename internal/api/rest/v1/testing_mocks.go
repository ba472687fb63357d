//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/stretchr/testify/mock"
)

// MockSubscriptionService is a mock implementation of SubscriptionService
type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) Subscribe(ctx context.Context, req *news.SubscriptionRequest) (*news.Subscriber, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*news.Subscriber), args.Bool(1), args.Error(2)
}

func (m *MockSubscriptionService) SubscribeSMS(ctx context.Context, mobileNumber, messageName string, optin bool) error {
	args := m.Called(ctx, mobileNumber, messageName, optin)
	return args.Error(0)
}

func (m *MockSubscriptionService) Unsubscribe(ctx context.Context, token string, newsletters []string, optout bool, reason string) error {
	args := m.Called(ctx, token, newsletters, optout, reason)
	return args.Error(0)
}

func (m *MockSubscriptionService) Confirm(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSubscriptionService) GetUser(ctx context.Context, token string) (*news.UserData, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*news.UserData), args.Error(1)
}

func (m *MockSubscriptionService) LookupUserByEmail(ctx context.Context, email string) (*news.UserData, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*news.UserData), args.Error(1)
}

func (m *MockSubscriptionService) UpdateUser(ctx context.Context, token string, update *news.UserUpdate) error {
	args := m.Called(ctx, token, update)
	return args.Error(0)
}

func (m *MockSubscriptionService) SetUnsubReason(ctx context.Context, token, reason string) error {
	args := m.Called(ctx, token, reason)
	return args.Error(0)
}

func (m *MockSubscriptionService) SetCustomFields(ctx context.Context, token string, fields map[string]string) error {
	args := m.Called(ctx, token, fields)
	return args.Error(0)
}

// MockNewsletterService is a mock implementation of NewsletterService
type MockNewsletterService struct {
	mock.Mock
}

func (m *MockNewsletterService) Catalog(ctx context.Context) (map[string]*news.Newsletter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*news.Newsletter), args.Error(1)
}

func (m *MockNewsletterService) Slugs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockNewsletterService) Languages(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockNewsletterService) VendorIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockNewsletterService) Create(ctx context.Context, newsletter *news.Newsletter) error {
	args := m.Called(ctx, newsletter)
	return args.Error(0)
}

func (m *MockNewsletterService) Update(ctx context.Context, newsletter *news.Newsletter) error {
	args := m.Called(ctx, newsletter)
	return args.Error(0)
}

func (m *MockNewsletterService) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// MockRecoveryService is a mock implementation of RecoveryService
type MockRecoveryService struct {
	mock.Mock
}

func (m *MockRecoveryService) SendRecoveryMessage(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockAPIUserRepository is a mock implementation of APIUserRepository
type MockAPIUserRepository struct {
	mock.Mock
}

func (m *MockAPIUserRepository) Create(ctx context.Context, user *news.APIUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAPIUserRepository) ValidKey(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockAPIUserRepository) List(ctx context.Context) ([]*news.APIUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*news.APIUser), args.Error(1)
}
