package usecases

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"tax-portal.backend/internal/config"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/domain/repositories"
	"tax-portal.backend/internal/infrastructure/storage"
	"tax-portal.backend/pkg/imaging"
	"tax-portal.backend/pkg/logger"
	"tax-portal.backend/pkg/utils"
)

// ReceiptUpload carries the receipt image attached to a payment report
type ReceiptUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// PaymentUsecase handles the payment confirmation and verification cycle
type PaymentUsecase struct {
	paymentRepo   repositories.PaymentRepository
	requestRepo   repositories.ServiceRequestRepository
	activityRepo  repositories.ActivityRepository
	blobStore     storage.BlobStore
	publisher     Publisher
	paymentCfg    config.PaymentConfig
	sizeThreshold int64
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	requestRepo repositories.ServiceRequestRepository,
	activityRepo repositories.ActivityRepository,
	blobStore storage.BlobStore,
	publisher Publisher,
	paymentCfg config.PaymentConfig,
	sizeThreshold int64,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo:   paymentRepo,
		requestRepo:   requestRepo,
		activityRepo:  activityRepo,
		blobStore:     blobStore,
		publisher:     publisher,
		paymentCfg:    paymentCfg,
		sizeThreshold: sizeThreshold,
	}
}

// Methods returns the providers and receiving accounts shown by the
// wizard's method and instructions steps.
func (u *PaymentUsecase) Methods() []entities.PaymentMethodInfo {
	return []entities.PaymentMethodInfo{
		{
			ID:            entities.PaymentMethodOrangeMoney,
			Name:          "Orange Money",
			AccountNumber: u.paymentCfg.OrangeMoney.AccountNumber,
			AccountName:   u.paymentCfg.OrangeMoney.AccountName,
		},
		{
			ID:            entities.PaymentMethodMTNMomo,
			Name:          "MTN Mobile Money",
			AccountNumber: u.paymentCfg.MTNMomo.AccountNumber,
			AccountName:   u.paymentCfg.MTNMomo.AccountName,
		},
		{
			ID:            entities.PaymentMethodExpressUnion,
			Name:          "Express Union",
			AccountNumber: u.paymentCfg.ExpressUnion.AccountNumber,
			AccountName:   u.paymentCfg.ExpressUnion.AccountName,
		},
	}
}

// SubmitPayment is the wizard's receipt-upload step: it stores the
// receipt blob, inserts a processing Payment row, and flips the linked
// request to review. The transaction reference is a trust-based
// self-report; only its shape is validated.
func (u *PaymentUsecase) SubmitPayment(ctx context.Context, clientID uuid.UUID, input *entities.SubmitPaymentInput, receipt *ReceiptUpload) (*entities.Payment, error) {
	method := entities.PaymentMethod(input.Method)
	if !entities.ValidPaymentMethod(method) {
		return nil, domainerrors.BadRequest("unknown payment method")
	}

	transactionRef := strings.TrimSpace(input.TransactionRef)
	if len(transactionRef) < entities.MinTransactionRefLen {
		return nil, domainerrors.BadRequest(
			fmt.Sprintf("transaction reference must be at least %d characters", entities.MinTransactionRefLen))
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || amount.IsNegative() || amount.IsZero() {
		return nil, domainerrors.BadRequest("amount must be a positive decimal number")
	}

	requestID, err := uuid.Parse(input.RequestID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid request id")
	}

	request, err := u.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ClientID != clientID {
		return nil, domainerrors.ErrForbidden
	}

	if receipt == nil || len(receipt.Data) == 0 {
		return nil, domainerrors.BadRequest("receipt image is required")
	}

	receiptPath, err := u.storeReceipt(ctx, clientID, receipt)
	if err != nil {
		return nil, err
	}

	payment := &entities.Payment{
		ClientID:       clientID,
		RequestID:      requestID,
		Amount:         amount,
		Method:         method,
		TransactionRef: transactionRef,
		ReceiptPath:    receiptPath,
		Status:         entities.PaymentStatusProcessing,
	}
	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	// Independent follow-up write, not a transaction with the insert.
	if err := u.requestRepo.UpdateStatus(ctx, requestID, entities.RequestStatusReview, ""); err != nil {
		logger.Warn(ctx, "payment recorded but request status update failed",
			zap.String("payment_id", payment.ID.String()), zap.Error(err))
	}

	u.recordActivity(ctx, clientID, entities.ActivityPaymentSubmitted,
		fmt.Sprintf("Reported %s transfer %s", method, transactionRef))
	u.publisher.Publish("payments", "insert", payment.ID.String())
	u.publisher.Publish("service_requests", "update", requestID.String())

	return payment, nil
}

// storeReceipt opportunistically compresses oversized receipt images and
// writes the blob under the owner's prefix.
func (u *PaymentUsecase) storeReceipt(ctx context.Context, clientID uuid.UUID, receipt *ReceiptUpload) (string, error) {
	data := receipt.Data
	fileName := sanitizeFileName(receipt.FileName)

	compressed, newType, err := imaging.CompressReceipt(data, u.sizeThreshold)
	if err != nil {
		return "", domainerrors.BadRequest("receipt must be a valid image")
	}
	if newType != "" {
		data = compressed
		fileName = strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ".jpg"
	}

	key := fmt.Sprintf("receipts/%s/%d_%s", clientID, time.Now().UnixNano(), fileName)
	if _, err := u.blobStore.Save(ctx, key, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to store receipt: %w", err)
	}
	return key, nil
}

// ListByClient lists a client's payments, newest first
func (u *PaymentUsecase) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entities.Payment, error) {
	return u.paymentRepo.ListByClient(ctx, clientID)
}

// List lists one page of payments for the admin console
func (u *PaymentUsecase) List(ctx context.Context, filter entities.PaymentFilter, page utils.PaginationParams) ([]*entities.Payment, utils.PaginationMeta, error) {
	payments, total, err := u.paymentRepo.ListPaged(ctx, filter, page)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return payments, utils.CalculateMeta(total, page), nil
}

// Verify marks a payment verified and cascades the linked request to
// in-progress. The two updates are independent calls; last write wins.
func (u *PaymentUsecase) Verify(ctx context.Context, paymentID uuid.UUID) error {
	payment, err := u.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}

	if err := u.paymentRepo.UpdateStatus(ctx, paymentID, entities.PaymentStatusVerified, ""); err != nil {
		return err
	}
	if err := u.requestRepo.UpdateStatus(ctx, payment.RequestID, entities.RequestStatusInProgress, ""); err != nil {
		logger.Warn(ctx, "payment verified but request cascade failed",
			zap.String("payment_id", paymentID.String()), zap.Error(err))
	}

	u.recordActivity(ctx, payment.ClientID, entities.ActivityPaymentVerified,
		fmt.Sprintf("Payment %s verified", payment.TransactionRef))
	u.publisher.Publish("payments", "update", paymentID.String())
	u.publisher.Publish("service_requests", "update", payment.RequestID.String())

	return nil
}

// Reject marks a payment rejected with a reason and cascades the linked
// request to requires-action, surfacing the reason to the client.
func (u *PaymentUsecase) Reject(ctx context.Context, paymentID uuid.UUID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domainerrors.BadRequest("rejection reason is required")
	}

	payment, err := u.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}

	if err := u.paymentRepo.UpdateStatus(ctx, paymentID, entities.PaymentStatusRejected, reason); err != nil {
		return err
	}
	if err := u.requestRepo.UpdateStatus(ctx, payment.RequestID, entities.RequestStatusRequiresAction, reason); err != nil {
		logger.Warn(ctx, "payment rejected but request cascade failed",
			zap.String("payment_id", paymentID.String()), zap.Error(err))
	}

	u.recordActivity(ctx, payment.ClientID, entities.ActivityPaymentRejected,
		fmt.Sprintf("Payment %s rejected: %s", payment.TransactionRef, reason))
	u.publisher.Publish("payments", "update", paymentID.String())
	u.publisher.Publish("service_requests", "update", payment.RequestID.String())

	return nil
}

// OpenReceipt opens a payment's receipt blob for the owner or an admin
func (u *PaymentUsecase) OpenReceipt(ctx context.Context, requesterID uuid.UUID, isAdmin bool, paymentID uuid.UUID) (*entities.Payment, []byte, error) {
	payment, err := u.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	if !isAdmin && payment.ClientID != requesterID {
		return nil, nil, domainerrors.ErrForbidden
	}
	if payment.ReceiptPath == "" {
		return nil, nil, domainerrors.ErrNotFound
	}

	rc, err := u.blobStore.Open(ctx, payment.ReceiptPath)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, nil, err
	}
	return payment, buf.Bytes(), nil
}

func (u *PaymentUsecase) recordActivity(ctx context.Context, userID uuid.UUID, activityType entities.ActivityType, description string) {
	activity := &entities.UserActivity{
		UserID:      userID,
		Type:        activityType,
		Description: description,
	}
	if err := u.activityRepo.Create(ctx, activity); err != nil {
		logger.Warn(ctx, "failed to record activity", zap.Error(err))
	}
}

// sanitizeFileName strips path separators and defaults empty names
func sanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return "upload"
	}
	return name
}
