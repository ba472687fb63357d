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

type gormSubscriberRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSubscriberRepository creates a new GORM-based SubscriberRepository implementation
func NewGormSubscriberRepository(db *gorm.DB, logger logger.Logger) (news.SubscriberRepository, error) {
	return &gormSubscriberRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSubscriberRepository) Create(ctx context.Context, subscriber *news.Subscriber) error {
	if err := subscriber.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SubscriberModel{}
	model.FromDomain(subscriber)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create subscriber: %w", err)
	}

	r.logger.Info("Created subscriber with token ", subscriber.Token)
	return nil
}

func (r *gormSubscriberRepository) GetByEmail(ctx context.Context, email string) (*news.Subscriber, error) {
	var model models.SubscriberModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, news.ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("failed to fetch subscriber: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSubscriberRepository) GetByToken(ctx context.Context, token string) (*news.Subscriber, error) {
	var model models.SubscriberModel
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, news.ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("failed to fetch subscriber: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormSubscriberRepository) Update(ctx context.Context, subscriber *news.Subscriber) error {
	if err := subscriber.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.SubscriberModel{}
	model.FromDomain(subscriber)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update subscriber: %w", err)
	}

	r.logger.Info("Updated subscriber with token ", subscriber.Token)
	return nil
}
