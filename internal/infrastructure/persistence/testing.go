//go:build integration
// +build integration

package persistence

import (
	"testing"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/bensternthal/basket/internal/domain/pipeline"
	"github.com/bensternthal/basket/internal/infrastructure/persistence/models"
	"github.com/bensternthal/basket/internal/pkg/config"
	"github.com/bensternthal/basket/internal/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds the test database and repositories
type TestContext struct {
	DB             *gorm.DB
	SubscriberRepo news.SubscriberRepository
	NewsletterRepo news.NewsletterRepository
	APIUserRepo    news.APIUserRepository
	BuildRepo      pipeline.BuildRepository
}

// SetupTestDB initializes an in-memory test database with automatic cleanup
func SetupTestDB(t *testing.T) *TestContext {
	t.Helper()

	log := testutil.SetupTestLogger(t)

	db, err := NewDBConnection(config.DatabaseSettings{Type: config.SqliteDbType})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := CloseDB(db); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	err = db.AutoMigrate(
		&models.SubscriberModel{},
		&models.NewsletterModel{},
		&models.APIUserModel{},
		&models.BuildModel{},
	)
	require.NoError(t, err)

	subscriberRepo, err := NewGormSubscriberRepository(db, log)
	require.NoError(t, err)

	newsletterRepo, err := NewGormNewsletterRepository(db, log)
	require.NoError(t, err)

	apiUserRepo, err := NewGormAPIUserRepository(db, log)
	require.NoError(t, err)

	buildRepo, err := NewGormBuildRepository(db, log)
	require.NoError(t, err)

	return &TestContext{
		DB:             db,
		SubscriberRepo: subscriberRepo,
		NewsletterRepo: newsletterRepo,
		APIUserRepo:    apiUserRepo,
		BuildRepo:      buildRepo,
	}
}
