package repositories

import (
	"context"

	"github.com/google/uuid"
	"tax-portal.backend/internal/domain/entities"
)

// ProfileRepository defines profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entities.Profile, error)
	Update(ctx context.Context, profile *entities.Profile) error
	List(ctx context.Context, search string) ([]*entities.Profile, error)
	CountByRole(ctx context.Context, role entities.ProfileRole) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
