package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/infrastructure/models"
	"tax-portal.backend/pkg/utils"
)

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = utils.NewID()
	}
	if payment.Status == "" {
		payment.Status = entities.PaymentStatusProcessing
	}
	m := &models.Payment{
		ID:              payment.ID,
		ClientID:        payment.ClientID,
		RequestID:       payment.RequestID,
		Amount:          payment.Amount,
		Method:          string(payment.Method),
		TransactionRef:  payment.TransactionRef,
		ReceiptPath:     payment.ReceiptPath,
		Status:          string(payment.Status),
		RejectionReason: payment.RejectionReason.String,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByClient lists a client's payments, newest first
func (r *PaymentRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.Payment, error) {
	var paymentModels []models.Payment
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&paymentModels).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(paymentModels), nil
}

// List lists payments matching the filter, newest first. Search matches
// the transaction reference.
func (r *PaymentRepository) List(ctx context.Context, filter entities.PaymentFilter) ([]*entities.Payment, error) {
	var paymentModels []models.Payment
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("transaction_ref LIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return r.toEntities(paymentModels), nil
}

// ListPaged lists one page of payments matching the filter along with
// the total match count.
func (r *PaymentRepository) ListPaged(ctx context.Context, filter entities.PaymentFilter, page utils.PaginationParams) ([]*entities.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("transaction_ref LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if page.Limit > 0 {
		query = query.Offset(page.Offset()).Limit(page.Limit)
	}

	var paymentModels []models.Payment
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(paymentModels), total, nil
}

// UpdateStatus updates a payment's status and rejection reason. Passing
// "" clears the reason (the verify path).
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus, reason string) error {
	updates := map[string]interface{}{
		"status":           status,
		"rejection_reason": reason,
		"updated_at":       time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountByStatus counts payments in a given status
func (r *PaymentRepository) CountByStatus(ctx context.Context, status entities.PaymentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// SumVerified sums the amounts of verified payments
func (r *PaymentRepository) SumVerified(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("sum(amount)").
		Where("status = ?", entities.PaymentStatusVerified).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *PaymentRepository) toEntities(paymentModels []models.Payment) []*entities.Payment {
	payments := make([]*entities.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, r.toEntity(&paymentModels[i]))
	}
	return payments
}

func (r *PaymentRepository) toEntity(m *models.Payment) *entities.Payment {
	return &entities.Payment{
		ID:              m.ID,
		ClientID:        m.ClientID,
		RequestID:       m.RequestID,
		Amount:          m.Amount,
		Method:          entities.PaymentMethod(m.Method),
		TransactionRef:  m.TransactionRef,
		ReceiptPath:     m.ReceiptPath,
		Status:          entities.PaymentStatus(m.Status),
		RejectionReason: nullStringFrom(m.RejectionReason),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
