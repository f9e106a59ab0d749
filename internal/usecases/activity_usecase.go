package usecases

import (
	"context"

	"github.com/google/uuid"
	"tax-portal.backend/internal/domain/entities"
	"tax-portal.backend/internal/domain/repositories"
)

// ActivityUsecase serves the dashboard activity feed
type ActivityUsecase struct {
	activityRepo repositories.ActivityRepository
}

// NewActivityUsecase creates a new activity usecase
func NewActivityUsecase(activityRepo repositories.ActivityRepository) *ActivityUsecase {
	return &ActivityUsecase{activityRepo: activityRepo}
}

// ListForUser returns a user's latest feed rows, newest first
func (u *ActivityUsecase) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.UserActivity, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return u.activityRepo.ListByUser(ctx, userID, limit)
}
