package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/bensternthal/basket/internal/infrastructure/persistence/models"
	"github.com/bensternthal/basket/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormNewsletterRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormNewsletterRepository creates a new GORM-based NewsletterRepository implementation
func NewGormNewsletterRepository(db *gorm.DB, logger logger.Logger) (news.NewsletterRepository, error) {
	return &gormNewsletterRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormNewsletterRepository) Create(ctx context.Context, newsletter *news.Newsletter) error {
	newsletter.NormalizeLanguages()
	if err := newsletter.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.NewsletterModel{}
	model.FromDomain(newsletter)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create newsletter: %w", err)
	}

	r.logger.Info("Created newsletter ", newsletter.Slug)
	return nil
}

func (r *gormNewsletterRepository) GetBySlug(ctx context.Context, slug string) (*news.Newsletter, error) {
	var model models.NewsletterModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, news.ErrNewsletterNotFound
		}
		return nil, fmt.Errorf("failed to fetch newsletter: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormNewsletterRepository) List(ctx context.Context) ([]*news.Newsletter, error) {
	var modelList []*models.NewsletterModel
	if err := r.db.WithContext(ctx).Order("sort_order asc, slug asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch newsletters: %w", err)
	}

	domainList := make([]*news.Newsletter, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormNewsletterRepository) Update(ctx context.Context, newsletter *news.Newsletter) error {
	newsletter.NormalizeLanguages()
	if err := newsletter.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.NewsletterModel{}
	model.FromDomain(newsletter)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update newsletter: %w", err)
	}

	r.logger.Info("Updated newsletter ", newsletter.Slug)
	return nil
}

func (r *gormNewsletterRepository) DeleteBySlug(ctx context.Context, slug string) error {
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).Delete(&models.NewsletterModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete newsletter: %w", err)
	}

	r.logger.Info("Deleted newsletter ", slug)
	return nil
}
