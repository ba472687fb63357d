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

type gormAPIUserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAPIUserRepository creates a new GORM-based APIUserRepository implementation
func NewGormAPIUserRepository(db *gorm.DB, logger logger.Logger) (news.APIUserRepository, error) {
	return &gormAPIUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAPIUserRepository) Create(ctx context.Context, user *news.APIUser) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.APIUserModel{}
	model.FromDomain(user)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create api user: %w", err)
	}

	r.logger.Info("Created api user ", user.Name)
	return nil
}

func (r *gormAPIUserRepository) ValidKey(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}

	var model models.APIUserModel
	err := r.db.WithContext(ctx).Where("api_key = ? AND enabled = ?", key, true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check api key: %w", err)
	}

	return true, nil
}

func (r *gormAPIUserRepository) List(ctx context.Context) ([]*news.APIUser, error) {
	var modelList []*models.APIUserModel
	if err := r.db.WithContext(ctx).Order("created asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch api users: %w", err)
	}

	domainList := make([]*news.APIUser, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}
