package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/bensternthal/basket/internal/infrastructure/persistence"
	"github.com/bensternthal/basket/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// APIUserCommandHandler encapsulates logic for managing API users via CLI.
type APIUserCommandHandler struct {
	logger logger.Logger
}

// NewAPIUserCommandHandler initializes and returns an APIUserCommandHandler
// instance with a configured logger.
func NewAPIUserCommandHandler() (*APIUserCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &APIUserCommandHandler{logger: loggerInstance}, nil
}

// CreateAPIUserCmd creates a named API key holder and prints the key
func (commandHandler *APIUserCommandHandler) CreateAPIUserCmd(cmd *cobra.Command, _ []string) {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		commandHandler.logger.Error("invalid name flag ", err)
		return
	}

	db, err := setupDatabase()
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	repo, err := persistence.NewGormAPIUserRepository(db, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	user := &news.APIUser{
		ID:      uuid.New().String(),
		Name:    name,
		APIKey:  uuid.New().String(),
		Enabled: true,
		Created: time.Now(),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	commandHandler.logger.Info("Created API user ", name, " with key ", user.APIKey)
}

// ListAPIUsersCmd prints all API users
func (commandHandler *APIUserCommandHandler) ListAPIUsersCmd(_ *cobra.Command, _ []string) {
	db, err := setupDatabase()
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	repo, err := persistence.NewGormAPIUserRepository(db, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	users, err := repo.List(context.Background())
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	for _, user := range users {
		commandHandler.logger.Info(user.Name, " enabled=", user.Enabled, " created=", user.Created.Format(time.RFC3339))
	}
}

// InitAPIUserCommands registers API user commands
func InitAPIUserCommands(rootCmd *cobra.Command) error {
	handler, err := NewAPIUserCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create API user command handler %w", err)
	}

	var createAPIUserCmd = &cobra.Command{
		Use:   "create-api-user",
		Short: "Create a named API key holder",
		Run:   handler.CreateAPIUserCmd,
	}
	createAPIUserCmd.Flags().StringP("name", "", "", "Name of the API user")
	rootCmd.AddCommand(createAPIUserCmd)

	var listAPIUsersCmd = &cobra.Command{
		Use:   "list-api-users",
		Short: "List API users",
		Run:   handler.ListAPIUsersCmd,
	}
	rootCmd.AddCommand(listAPIUsersCmd)

	return nil
}
