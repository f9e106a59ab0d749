package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/domain/repositories"
	"tax-portal.backend/pkg/logger"
	"tax-portal.backend/pkg/redis"
)

// Flat estimation rates per tax type. These feed the pre-submission
// estimate only; the final liability is worked out by the preparer.
var estimationRates = map[string]decimal.Decimal{
	entities.TaxTypeIndividual: decimal.NewFromFloat(0.10),
	entities.TaxTypeBusiness:   decimal.NewFromFloat(0.15),
	entities.TaxTypeVAT:        decimal.NewFromFloat(0.1925),
}

// TaxFilingUsecase drives the multi-step tax preparation form: draft
// caching between steps, estimate computation, and conversion of a
// finished draft into a service request.
type TaxFilingUsecase struct {
	draftStore   *redis.DraftStore
	requestRepo  repositories.ServiceRequestRepository
	activityRepo repositories.ActivityRepository
	publisher    Publisher
}

// NewTaxFilingUsecase creates a new tax filing usecase
func NewTaxFilingUsecase(
	draftStore *redis.DraftStore,
	requestRepo repositories.ServiceRequestRepository,
	activityRepo repositories.ActivityRepository,
	publisher Publisher,
) *TaxFilingUsecase {
	return &TaxFilingUsecase{
		draftStore:   draftStore,
		requestRepo:  requestRepo,
		activityRepo: activityRepo,
		publisher:    publisher,
	}
}

// SaveDraft caches the current form state so the user can resume later
func (u *TaxFilingUsecase) SaveDraft(ctx context.Context, userID uuid.UUID, draft *entities.TaxFilingDraft) error {
	if draft.TaxType != "" {
		if _, ok := estimationRates[draft.TaxType]; !ok {
			return domainerrors.BadRequest("unknown tax type")
		}
	}
	return u.draftStore.SaveDraft(ctx, userID.String(), draft)
}

// GetDraft loads the cached form state for a user
func (u *TaxFilingUsecase) GetDraft(ctx context.Context, userID uuid.UUID) (*entities.TaxFilingDraft, error) {
	var draft entities.TaxFilingDraft
	if err := u.draftStore.GetDraft(ctx, userID.String(), &draft); err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &draft, nil
}

// ClearDraft discards the cached form state
func (u *TaxFilingUsecase) ClearDraft(ctx context.Context, userID uuid.UUID) error {
	return u.draftStore.ClearDraft(ctx, userID.String())
}

// Estimate computes the summary shown on the review step
func (u *TaxFilingUsecase) Estimate(draft *entities.TaxFilingDraft) (*entities.TaxFilingSummary, error) {
	rate, ok := estimationRates[draft.TaxType]
	if !ok {
		return nil, domainerrors.BadRequest("unknown tax type")
	}

	totalIncome, err := sumLines(draft.IncomeSources, func(s entities.IncomeSource) string { return s.Amount })
	if err != nil {
		return nil, domainerrors.BadRequest("income amounts must be decimal numbers")
	}
	totalDeducted, err := sumLines(draft.Deductions, func(d entities.Deduction) string { return d.Amount })
	if err != nil {
		return nil, domainerrors.BadRequest("deduction amounts must be decimal numbers")
	}

	taxableBase := totalIncome.Sub(totalDeducted)
	if taxableBase.IsNegative() {
		taxableBase = decimal.Zero
	}

	return &entities.TaxFilingSummary{
		TaxType:       draft.TaxType,
		TotalIncome:   totalIncome,
		TotalDeducted: totalDeducted,
		TaxableBase:   taxableBase,
		EstimatedTax:  taxableBase.Mul(rate).Round(2),
	}, nil
}

// Submit turns the cached draft into a pending service request and
// clears the draft.
func (u *TaxFilingUsecase) Submit(ctx context.Context, userID uuid.UUID) (*entities.ServiceRequest, *entities.TaxFilingSummary, error) {
	draft, err := u.GetDraft(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.BadRequest("no draft to submit")
		}
		return nil, nil, err
	}

	summary, err := u.Estimate(draft)
	if err != nil {
		return nil, nil, err
	}

	request := &entities.ServiceRequest{
		ClientID:    userID,
		ServiceType: draft.TaxType,
		Status:      entities.RequestStatusPending,
		Amount:      summary.EstimatedTax,
	}
	if err := u.requestRepo.Create(ctx, request); err != nil {
		return nil, nil, err
	}

	if err := u.draftStore.ClearDraft(ctx, userID.String()); err != nil {
		logger.Warn(ctx, "filing submitted but draft not cleared",
			zap.String("user_id", userID.String()), zap.Error(err))
	}

	u.recordActivity(ctx, userID, entities.ActivityServiceRequest,
		fmt.Sprintf("Submitted %s filing", draft.TaxType))
	u.publisher.Publish("service_requests", "insert", request.ID.String())

	return request, summary, nil
}

func (u *TaxFilingUsecase) recordActivity(ctx context.Context, userID uuid.UUID, activityType entities.ActivityType, description string) {
	activity := &entities.UserActivity{
		UserID:      userID,
		Type:        activityType,
		Description: description,
	}
	if err := u.activityRepo.Create(ctx, activity); err != nil {
		logger.Warn(ctx, "failed to record activity", zap.Error(err))
	}
}

func sumLines[T any](lines []T, amount func(T) string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range lines {
		v, err := decimal.NewFromString(amount(line))
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(v)
	}
	return total, nil
}
