package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"tax-portal.backend/internal/domain/entities"
	"tax-portal.backend/pkg/utils"
)

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.Payment, error)
	List(ctx context.Context, filter entities.PaymentFilter) ([]*entities.Payment, error)
	ListPaged(ctx context.Context, filter entities.PaymentFilter, page utils.PaginationParams) ([]*entities.Payment, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, reason string) error
	CountByStatus(ctx context.Context, status entities.PaymentStatus) (int64, error)
	SumVerified(ctx context.Context) (decimal.Decimal, error)
}
