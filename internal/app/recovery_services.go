package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bensternthal/basket/internal/domain/news"
	"github.com/bensternthal/basket/internal/pkg/logger"
)

// recoveryService implements the RecoveryService interface for "find my
// subscriptions" messages.
type recoveryService struct {
	subscribers news.SubscriberRepository
	dispatcher  news.TaskDispatcher
	logger      logger.Logger
}

// NewRecoveryService creates a new instance of RecoveryService
func NewRecoveryService(
	subscribers news.SubscriberRepository,
	dispatcher news.TaskDispatcher,
	logger logger.Logger,
) (news.RecoveryService, error) {
	return &recoveryService{
		subscribers: subscribers,
		dispatcher:  dispatcher,
		logger:      logger,
	}, nil
}

// SendRecoveryMessage schedules a recovery email for a known address.
func (s *recoveryService) SendRecoveryMessage(ctx context.Context, email string) error {
	if _, err := s.subscribers.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, news.ErrSubscriberNotFound) {
			return news.NewRequestError(http.StatusNotFound, news.CodeUnknownEmail, "email not known")
		}
		return fmt.Errorf("failed to look up email: %w", err)
	}

	if err := s.dispatcher.DispatchRecoveryMessage(ctx, email); err != nil {
		return fmt.Errorf("failed to dispatch recovery message: %w", err)
	}

	s.logger.Info("Recovery message scheduled")
	return nil
}
