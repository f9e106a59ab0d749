package repositories

import (
	"context"

	"github.com/google/uuid"
	"tax-portal.backend/internal/domain/entities"
)

// ActivityRepository defines activity feed operations
type ActivityRepository interface {
	Create(ctx context.Context, activity *entities.UserActivity) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.UserActivity, error)
	ListRecent(ctx context.Context, limit int) ([]*entities.UserActivity, error)
}
