package repositories

import (
	"context"

	"github.com/google/uuid"
	"tax-portal.backend/internal/domain/entities"
)

// DocumentRepository defines document metadata operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.RequestDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.RequestDocument, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.RequestDocument, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
