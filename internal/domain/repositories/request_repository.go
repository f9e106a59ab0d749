package repositories

import (
	"context"

	"github.com/google/uuid"
	"tax-portal.backend/internal/domain/entities"
)

// ServiceRequestRepository defines service request data operations
type ServiceRequestRepository interface {
	Create(ctx context.Context, request *entities.ServiceRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ServiceRequest, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.ServiceRequest, error)
	List(ctx context.Context, status entities.RequestStatus) ([]*entities.ServiceRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.RequestStatus, reason string) error
	CountByStatus(ctx context.Context) (map[entities.RequestStatus]int64, error)
}
