package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/infrastructure/models"
	"tax-portal.backend/pkg/utils"
)

// ServiceRequestRepository implements service request data operations
type ServiceRequestRepository struct {
	db *gorm.DB
}

// NewServiceRequestRepository creates a new service request repository
func NewServiceRequestRepository(db *gorm.DB) *ServiceRequestRepository {
	return &ServiceRequestRepository{db: db}
}

// Create creates a new service request
func (r *ServiceRequestRepository) Create(ctx context.Context, request *entities.ServiceRequest) error {
	if request.ID == uuid.Nil {
		request.ID = utils.NewID()
	}
	if request.Status == "" {
		request.Status = entities.RequestStatusPending
	}
	m := &models.ServiceRequest{
		ID:              request.ID,
		ClientID:        request.ClientID,
		ServiceType:     request.ServiceType,
		Status:          string(request.Status),
		Amount:          request.Amount,
		RejectionReason: request.RejectionReason.String,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	request.CreatedAt = m.CreatedAt
	request.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a service request by ID
func (r *ServiceRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ServiceRequest, error) {
	var m models.ServiceRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByClient lists a client's requests, newest first
func (r *ServiceRequestRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.ServiceRequest, error) {
	var requestModels []models.ServiceRequest
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&requestModels).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(requestModels), nil
}

// List lists all requests, optionally filtered by status, newest first
func (r *ServiceRequestRepository) List(ctx context.Context, status entities.RequestStatus) ([]*entities.ServiceRequest, error) {
	var requestModels []models.ServiceRequest
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return r.toEntities(requestModels), nil
}

// UpdateStatus updates a request's status. A non-empty reason replaces the
// stored rejection reason; passing "" clears it.
func (r *ServiceRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.RequestStatus, reason string) error {
	updates := map[string]interface{}{
		"status":           status,
		"rejection_reason": reason,
		"updated_at":       time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.ServiceRequest{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountByStatus returns request counts grouped by status
func (r *ServiceRequestRepository) CountByStatus(ctx context.Context) (map[entities.RequestStatus]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entities.RequestStatus]int64, len(rows))
	for _, row := range rows {
		counts[entities.RequestStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *ServiceRequestRepository) toEntities(requestModels []models.ServiceRequest) []*entities.ServiceRequest {
	requests := make([]*entities.ServiceRequest, 0, len(requestModels))
	for i := range requestModels {
		requests = append(requests, r.toEntity(&requestModels[i]))
	}
	return requests
}

func (r *ServiceRequestRepository) toEntity(m *models.ServiceRequest) *entities.ServiceRequest {
	return &entities.ServiceRequest{
		ID:              m.ID,
		ClientID:        m.ClientID,
		ServiceType:     m.ServiceType,
		Status:          entities.RequestStatus(m.Status),
		Amount:          m.Amount,
		RejectionReason: nullStringFrom(m.RejectionReason),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
