package usecases

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"tax-portal.backend/internal/domain/entities"
	"tax-portal.backend/internal/domain/repositories"
)

// DashboardStats is the admin console's overview payload
type DashboardStats struct {
	TotalClients       int64                            `json:"totalClients"`
	RequestsByStatus   map[entities.RequestStatus]int64 `json:"requestsByStatus"`
	ProcessingPayments int64                            `json:"processingPayments"`
	VerifiedRevenue    decimal.Decimal                  `json:"verifiedRevenue"`
}

// AdminUsecase backs the admin console: stats, client management and
// transaction exports.
type AdminUsecase struct {
	profileRepo  repositories.ProfileRepository
	requestRepo  repositories.ServiceRequestRepository
	paymentRepo  repositories.PaymentRepository
	activityRepo repositories.ActivityRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	profileRepo repositories.ProfileRepository,
	requestRepo repositories.ServiceRequestRepository,
	paymentRepo repositories.PaymentRepository,
	activityRepo repositories.ActivityRepository,
) *AdminUsecase {
	return &AdminUsecase{
		profileRepo:  profileRepo,
		requestRepo:  requestRepo,
		paymentRepo:  paymentRepo,
		activityRepo: activityRepo,
	}
}

// Stats aggregates the overview numbers shown on the admin dashboard
func (u *AdminUsecase) Stats(ctx context.Context) (*DashboardStats, error) {
	totalClients, err := u.profileRepo.CountByRole(ctx, entities.ProfileRoleClient)
	if err != nil {
		return nil, err
	}

	requestsByStatus, err := u.requestRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	processing, err := u.paymentRepo.CountByStatus(ctx, entities.PaymentStatusProcessing)
	if err != nil {
		return nil, err
	}

	revenue, err := u.paymentRepo.SumVerified(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalClients:       totalClients,
		RequestsByStatus:   requestsByStatus,
		ProcessingPayments: processing,
		VerifiedRevenue:    revenue,
	}, nil
}

// ListClients lists client profiles with optional name/email search
func (u *AdminUsecase) ListClients(ctx context.Context, search string) ([]*entities.Profile, error) {
	return u.profileRepo.List(ctx, search)
}

// GetClient returns one client profile
func (u *AdminUsecase) GetClient(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	return u.profileRepo.GetByID(ctx, id)
}

// SetVerificationStatus updates a client's verification badge
func (u *AdminUsecase) SetVerificationStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus) (*entities.Profile, error) {
	profile, err := u.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile.VerificationStatus = status
	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RecentActivity returns the latest feed rows across all users
func (u *AdminUsecase) RecentActivity(ctx context.Context, limit int) ([]*entities.UserActivity, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return u.activityRepo.ListRecent(ctx, limit)
}

// ExportTransactionsCSV streams the filtered payment list as CSV in the
// repository's listing order.
func (u *AdminUsecase) ExportTransactionsCSV(ctx context.Context, w io.Writer, filter entities.PaymentFilter) error {
	payments, err := u.paymentRepo.List(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "client_id", "request_id", "amount", "method", "transaction_ref", "status", "rejection_reason", "created_at"}); err != nil {
		return err
	}
	for _, p := range payments {
		record := []string{
			p.ID.String(),
			p.ClientID.String(),
			p.RequestID.String(),
			p.Amount.StringFixed(2),
			string(p.Method),
			p.TransactionRef,
			string(p.Status),
			p.RejectionReason.String,
			p.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
