package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bensternthal/basket/internal/app"
	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/bensternthal/basket/internal/infrastructure/persistence"
	"github.com/bensternthal/basket/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// NewsletterCommandHandler encapsulates logic for managing the newsletter
// catalog via CLI.
type NewsletterCommandHandler struct {
	logger logger.Logger
}

// NewNewsletterCommandHandler initializes and returns a
// NewsletterCommandHandler instance with a configured logger.
func NewNewsletterCommandHandler() (*NewsletterCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &NewsletterCommandHandler{logger: loggerInstance}, nil
}

func (commandHandler *NewsletterCommandHandler) newsletterService() (news.NewsletterService, error) {
	db, err := setupDatabase()
	if err != nil {
		return nil, err
	}

	repo, err := persistence.NewGormNewsletterRepository(db, commandHandler.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create newsletter repository: %w", err)
	}

	return app.NewNewsletterService(repo, commandHandler.logger)
}

// CreateNewsletterCmd adds a newsletter to the catalog
func (commandHandler *NewsletterCommandHandler) CreateNewsletterCmd(cmd *cobra.Command, _ []string) {
	slug, err := cmd.Flags().GetString("slug")
	if err != nil {
		commandHandler.logger.Error("invalid slug flag ", err)
		return
	}
	title, err := cmd.Flags().GetString("title")
	if err != nil {
		commandHandler.logger.Error("invalid title flag ", err)
		return
	}
	description, err := cmd.Flags().GetString("description")
	if err != nil {
		commandHandler.logger.Error("invalid description flag ", err)
		return
	}
	vendorID, err := cmd.Flags().GetString("vendor-id")
	if err != nil {
		commandHandler.logger.Error("invalid vendor-id flag ", err)
		return
	}
	languages, err := cmd.Flags().GetString("languages")
	if err != nil {
		commandHandler.logger.Error("invalid languages flag ", err)
		return
	}
	order, err := cmd.Flags().GetInt("order")
	if err != nil {
		commandHandler.logger.Error("invalid order flag ", err)
		return
	}
	active, err := cmd.Flags().GetBool("active")
	if err != nil {
		commandHandler.logger.Error("invalid active flag ", err)
		return
	}
	show, err := cmd.Flags().GetBool("show")
	if err != nil {
		commandHandler.logger.Error("invalid show flag ", err)
		return
	}

	service, err := commandHandler.newsletterService()
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	newsletter := &news.Newsletter{
		Slug:        slug,
		Title:       title,
		Description: description,
		VendorID:    vendorID,
		Languages:   strings.Split(languages, ","),
		Order:       order,
		Active:      active,
		Show:        show,
	}
	if err := service.Create(context.Background(), newsletter); err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	commandHandler.logger.Info("Created newsletter ", slug)
}

// ListNewslettersCmd prints the newsletter catalog
func (commandHandler *NewsletterCommandHandler) ListNewslettersCmd(_ *cobra.Command, _ []string) {
	service, err := commandHandler.newsletterService()
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	catalog, err := service.Catalog(context.Background())
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	slugs, err := service.Slugs(context.Background())
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	for _, slug := range slugs {
		newsletter := catalog[slug]
		commandHandler.logger.Info(slug, " (", newsletter.VendorID, ") active=", newsletter.Active,
			" languages=", strings.Join(newsletter.Languages, ","))
	}
}

// DeleteNewsletterCmd removes a newsletter from the catalog
func (commandHandler *NewsletterCommandHandler) DeleteNewsletterCmd(cmd *cobra.Command, _ []string) {
	slug, err := cmd.Flags().GetString("slug")
	if err != nil {
		commandHandler.logger.Error("invalid slug flag ", err)
		return
	}

	service, err := commandHandler.newsletterService()
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	if err := service.DeleteBySlug(context.Background(), slug); err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	commandHandler.logger.Info("Deleted newsletter ", slug)
}

// InitNewsletterCommands registers newsletter catalog commands
func InitNewsletterCommands(rootCmd *cobra.Command) error {
	handler, err := NewNewsletterCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create newsletter command handler %w", err)
	}

	var createNewsletterCmd = &cobra.Command{
		Use:   "create-newsletter",
		Short: "Add a newsletter to the catalog",
		Run:   handler.CreateNewsletterCmd,
	}
	createNewsletterCmd.Flags().StringP("slug", "", "", "Newsletter slug")
	createNewsletterCmd.Flags().StringP("title", "", "", "Newsletter title")
	createNewsletterCmd.Flags().StringP("description", "", "", "Newsletter description")
	createNewsletterCmd.Flags().StringP("vendor-id", "", "", "Vendor-side field identifier")
	createNewsletterCmd.Flags().StringP("languages", "", "", "Comma-separated language codes")
	createNewsletterCmd.Flags().IntP("order", "", 0, "Listing order")
	createNewsletterCmd.Flags().BoolP("active", "", true, "Whether the newsletter is active")
	createNewsletterCmd.Flags().BoolP("show", "", false, "Always show in listings")
	rootCmd.AddCommand(createNewsletterCmd)

	var listNewslettersCmd = &cobra.Command{
		Use:   "list-newsletters",
		Short: "List the newsletter catalog",
		Run:   handler.ListNewslettersCmd,
	}
	rootCmd.AddCommand(listNewslettersCmd)

	var deleteNewsletterCmd = &cobra.Command{
		Use:   "delete-newsletter",
		Short: "Remove a newsletter from the catalog",
		Run:   handler.DeleteNewsletterCmd,
	}
	deleteNewsletterCmd.Flags().StringP("slug", "", "", "Newsletter slug")
	rootCmd.AddCommand(deleteNewsletterCmd)

	return nil
}
