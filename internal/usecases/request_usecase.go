package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/domain/repositories"
	"tax-portal.backend/pkg/logger"
)

// RequestUsecase handles service request business logic
type RequestUsecase struct {
	requestRepo  repositories.ServiceRequestRepository
	activityRepo repositories.ActivityRepository
	publisher    Publisher
}

// NewRequestUsecase creates a new service request usecase
func NewRequestUsecase(
	requestRepo repositories.ServiceRequestRepository,
	activityRepo repositories.ActivityRepository,
	publisher Publisher,
) *RequestUsecase {
	return &RequestUsecase{
		requestRepo:  requestRepo,
		activityRepo: activityRepo,
		publisher:    publisher,
	}
}

// CreateRequest submits a new service request for a client
func (u *RequestUsecase) CreateRequest(ctx context.Context, clientID uuid.UUID, input *entities.CreateRequestInput) (*entities.ServiceRequest, error) {
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return nil, domainerrors.BadRequest("amount must be a decimal number")
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, domainerrors.BadRequest("amount must be positive")
	}

	request := &entities.ServiceRequest{
		ClientID:    clientID,
		ServiceType: input.ServiceType,
		Status:      entities.RequestStatusPending,
		Amount:      amount,
	}
	if err := u.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	u.recordActivity(ctx, clientID, entities.ActivityServiceRequest,
		fmt.Sprintf("Submitted %s request", request.ServiceType))
	u.publisher.Publish("service_requests", "insert", request.ID.String())

	return request, nil
}

// ListByClient lists a client's own requests
func (u *RequestUsecase) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.ServiceRequest, error) {
	return u.requestRepo.ListByClient(ctx, clientID)
}

// GetForClient gets a request, enforcing ownership
func (u *RequestUsecase) GetForClient(ctx context.Context, clientID, requestID uuid.UUID) (*entities.ServiceRequest, error) {
	request, err := u.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ClientID != clientID {
		return nil, domainerrors.ErrForbidden
	}
	return request, nil
}

// ListAll lists requests for the admin console, optionally by status
func (u *RequestUsecase) ListAll(ctx context.Context, status entities.RequestStatus) ([]*entities.ServiceRequest, error) {
	if status != "" && !entities.ValidRequestStatus(status) {
		return nil, domainerrors.BadRequest("unknown request status")
	}
	return u.requestRepo.List(ctx, status)
}

// OverrideStatus applies a direct admin status change
func (u *RequestUsecase) OverrideStatus(ctx context.Context, requestID uuid.UUID, input *entities.UpdateRequestStatusInput) error {
	if !entities.ValidRequestStatus(input.Status) {
		return domainerrors.BadRequest("unknown request status")
	}

	request, err := u.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if err := u.requestRepo.UpdateStatus(ctx, requestID, input.Status, input.Reason); err != nil {
		return err
	}

	u.recordActivity(ctx, request.ClientID, entities.ActivityStatusUpdated,
		fmt.Sprintf("%s request moved to %s", request.ServiceType, input.Status))
	u.publisher.Publish("service_requests", "update", requestID.String())

	return nil
}

// recordActivity writes a feed row; feed failures never fail the caller
func (u *RequestUsecase) recordActivity(ctx context.Context, userID uuid.UUID, activityType entities.ActivityType, description string) {
	activity := &entities.UserActivity{
		UserID:      userID,
		Type:        activityType,
		Description: description,
	}
	if err := u.activityRepo.Create(ctx, activity); err != nil {
		logger.Warn(ctx, "failed to record activity", zap.Error(err))
	}
}
