package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/bensternthal/basket/internal/domain/pipeline"
	"github.com/bensternthal/basket/internal/infrastructure/persistence/models"
	"github.com/bensternthal/basket/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormBuildRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormBuildRepository creates a new GORM-based BuildRepository implementation
func NewGormBuildRepository(db *gorm.DB, logger logger.Logger) (pipeline.BuildRepository, error) {
	return &gormBuildRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormBuildRepository) Create(ctx context.Context, build *pipeline.Build) error {
	if err := build.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.BuildModel{}
	model.FromDomain(build)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record build: %w", err)
	}

	r.logger.Info("Recorded build #", build.Number, " (", build.State, ")")
	return nil
}

func (r *gormBuildRepository) Latest(ctx context.Context) (*pipeline.Build, error) {
	var model models.BuildModel
	err := r.db.WithContext(ctx).Order("number desc").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch latest build: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormBuildRepository) List(ctx context.Context, limit int) ([]*pipeline.Build, error) {
	var modelList []*models.BuildModel
	query := r.db.WithContext(ctx).Order("number desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch builds: %w", err)
	}

	domainList := make([]*pipeline.Build, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}
