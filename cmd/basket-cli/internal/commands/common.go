package commands

import (
	"fmt"
	"os"

	"github.com/bensternthal/basket/internal/infrastructure/persistence"
	"github.com/bensternthal/basket/internal/infrastructure/persistence/models"
	"github.com/bensternthal/basket/internal/pkg/config"
	"github.com/bensternthal/basket/internal/pkg/logger"

	"gorm.io/gorm"
)

// In commands/common.go
func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// setupDatabase opens the configured database and runs migrations. The
// connection settings come from the same config file the REST API uses.
func setupDatabase() (*gorm.DB, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/rest-app.yaml"
	}

	cfg, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := db.AutoMigrate(
		&models.SubscriberModel{},
		&models.NewsletterModel{},
		&models.APIUserModel{},
		&models.BuildModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
