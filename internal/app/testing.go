//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/bensternthal/basket/internal/infrastructure/persistence"
	"github.com/bensternthal/basket/internal/infrastructure/tasks"
	"github.com/bensternthal/basket/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	NewsletterService   news.NewsletterService
	SubscriptionService news.SubscriptionService
	RecoveryService     news.RecoveryService

	Dispatcher *tasks.Dispatcher
	DBContext  *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)

	dbContext := persistence.SetupTestDB(t)

	dispatcher, err := tasks.NewDispatcher(2, 16, &tasks.LoggingExecutor{Logger: logger}, logger)
	require.NoError(t, err, "Failed to create dispatcher")
	t.Cleanup(dispatcher.Stop)

	newsletterService, err := NewNewsletterService(dbContext.NewsletterRepo, logger)
	require.NoError(t, err, "Failed to create NewsletterService")

	subscriptionService, err := NewSubscriptionService(dbContext.SubscriberRepo, newsletterService, dispatcher, logger)
	require.NoError(t, err, "Failed to create SubscriptionService")

	recoveryService, err := NewRecoveryService(dbContext.SubscriberRepo, dispatcher, logger)
	require.NoError(t, err, "Failed to create RecoveryService")

	return &TestServices{
		NewsletterService:   newsletterService,
		SubscriptionService: subscriptionService,
		RecoveryService:     recoveryService,
		Dispatcher:          dispatcher,
		DBContext:           dbContext,
	}
}

// SeedNewsletter persists a newsletter for tests through the service so the
// catalog cache sees it.
func SeedNewsletter(t *testing.T, services *TestServices, slug, vendorID string, languages ...string) *news.Newsletter {
	t.Helper()

	newsletter := &news.Newsletter{
		Slug:      slug,
		Title:     slug,
		Show:      true,
		Active:    true,
		VendorID:  vendorID,
		Languages: languages,
	}
	require.NoError(t, services.NewsletterService.Create(context.Background(), newsletter))
	return newsletter
}
