package usecases

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"tax-portal.backend/internal/domain/entities"
)

func newAdminFixture() (*AdminUsecase, *profileRepoStub, *requestRepoStub, *paymentRepoStub, *activityRepoStub) {
	profileRepo := newProfileRepoStub()
	requestRepo := newRequestRepoStub()
	paymentRepo := newPaymentRepoStub()
	activityRepo := &activityRepoStub{}
	uc := NewAdminUsecase(profileRepo, requestRepo, paymentRepo, activityRepo)
	return uc, profileRepo, requestRepo, paymentRepo, activityRepo
}

func TestAdminUsecase_Stats(t *testing.T) {
	uc, profileRepo, requestRepo, paymentRepo, _ := newAdminFixture()
	ctx := context.Background()

	require.NoError(t, profileRepo.Create(ctx, &entities.Profile{Email: "a@x.cm", Role: entities.ProfileRoleClient}))
	require.NoError(t, profileRepo.Create(ctx, &entities.Profile{Email: "b@x.cm", Role: entities.ProfileRoleClient}))
	require.NoError(t, profileRepo.Create(ctx, &entities.Profile{Email: "ops@x.cm", Role: entities.ProfileRoleAdmin}))

	require.NoError(t, requestRepo.Create(ctx, &entities.ServiceRequest{ClientID: uuid.New(), Status: entities.RequestStatusPending}))
	require.NoError(t, requestRepo.Create(ctx, &entities.ServiceRequest{ClientID: uuid.New(), Status: entities.RequestStatusPending}))
	require.NoError(t, requestRepo.Create(ctx, &entities.ServiceRequest{ClientID: uuid.New(), Status: entities.RequestStatusCompleted}))

	require.NoError(t, paymentRepo.Create(ctx, &entities.Payment{ClientID: uuid.New(), RequestID: uuid.New(), Amount: decimal.NewFromInt(40000), Status: entities.PaymentStatusVerified}))
	require.NoError(t, paymentRepo.Create(ctx, &entities.Payment{ClientID: uuid.New(), RequestID: uuid.New(), Amount: decimal.NewFromInt(15000), Status: entities.PaymentStatusProcessing}))

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.TotalClients, "admins are not counted")
	require.EqualValues(t, 2, stats.RequestsByStatus[entities.RequestStatusPending])
	require.EqualValues(t, 1, stats.RequestsByStatus[entities.RequestStatusCompleted])
	require.EqualValues(t, 1, stats.ProcessingPayments)
	require.True(t, stats.VerifiedRevenue.Equal(decimal.NewFromInt(40000)))
}

func TestAdminUsecase_SetVerificationStatus(t *testing.T) {
	uc, profileRepo, _, _, _ := newAdminFixture()
	ctx := context.Background()

	profile := &entities.Profile{Email: "c@x.cm", Role: entities.ProfileRoleClient, VerificationStatus: entities.VerificationPending}
	require.NoError(t, profileRepo.Create(ctx, profile))

	updated, err := uc.SetVerificationStatus(ctx, profile.ID, entities.VerificationVerified)
	require.NoError(t, err)
	require.Equal(t, entities.VerificationVerified, updated.VerificationStatus)
	require.Equal(t, entities.VerificationVerified, profileRepo.byID[profile.ID].VerificationStatus)
}

func TestAdminUsecase_RecentActivityClampsLimit(t *testing.T) {
	uc, _, _, _, activityRepo := newAdminFixture()
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		require.NoError(t, activityRepo.Create(ctx, &entities.UserActivity{UserID: uuid.New(), Type: entities.ActivityServiceRequest}))
	}

	feed, err := uc.RecentActivity(ctx, 0)
	require.NoError(t, err)
	require.Len(t, feed, 20, "out-of-range limits fall back to the default")

	feed, err = uc.RecentActivity(ctx, 5)
	require.NoError(t, err)
	require.Len(t, feed, 5)

	feed, err = uc.RecentActivity(ctx, 500)
	require.NoError(t, err)
	require.Len(t, feed, 20)
}

func TestAdminUsecase_ExportTransactionsCSV(t *testing.T) {
	uc, _, _, paymentRepo, _ := newAdminFixture()
	ctx := context.Background()

	p := &entities.Payment{
		ClientID:       uuid.New(),
		RequestID:      uuid.New(),
		Amount:         decimal.RequireFromString("25000.5"),
		Method:         entities.PaymentMethodOrangeMoney,
		TransactionRef: "OM12345678",
		Status:         entities.PaymentStatusRejected,
	}
	p.RejectionReason.SetValid("Amount does not match")
	require.NoError(t, paymentRepo.Create(ctx, p))

	var buf bytes.Buffer
	require.NoError(t, uc.ExportTransactionsCSV(ctx, &buf, entities.PaymentFilter{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, []string{"id", "client_id", "request_id", "amount", "method", "transaction_ref", "status", "rejection_reason", "created_at"}, records[0])

	row := records[1]
	require.Equal(t, p.ID.String(), row[0])
	require.Equal(t, "25000.50", row[3], "amounts are exported with two decimals")
	require.Equal(t, "orange_money", row[4])
	require.Equal(t, "OM12345678", row[5])
	require.Equal(t, "rejected", row[6])
	require.Equal(t, "Amount does not match", row[7])
	require.NotEmpty(t, row[8])
}

func TestAdminUsecase_ExportTransactionsCSVEmpty(t *testing.T) {
	uc, _, _, _, _ := newAdminFixture()

	var buf bytes.Buffer
	require.NoError(t, uc.ExportTransactionsCSV(context.Background(), &buf, entities.PaymentFilter{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}
