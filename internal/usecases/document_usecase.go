package usecases

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/domain/repositories"
	"tax-portal.backend/internal/infrastructure/storage"
	"tax-portal.backend/pkg/logger"
)

// DocumentUpload carries an uploaded file and its metadata
type DocumentUpload struct {
	FileName    string
	ContentType string
	Data        []byte
	RequestID   *uuid.UUID
}

// DocumentUsecase handles document upload, listing and retrieval
type DocumentUsecase struct {
	documentRepo  repositories.DocumentRepository
	activityRepo  repositories.ActivityRepository
	blobStore     storage.BlobStore
	publisher     Publisher
	maxUploadSize int64
}

// NewDocumentUsecase creates a new document usecase
func NewDocumentUsecase(
	documentRepo repositories.DocumentRepository,
	activityRepo repositories.ActivityRepository,
	blobStore storage.BlobStore,
	publisher Publisher,
	maxUploadSize int64,
) *DocumentUsecase {
	return &DocumentUsecase{
		documentRepo:  documentRepo,
		activityRepo:  activityRepo,
		blobStore:     blobStore,
		publisher:     publisher,
		maxUploadSize: maxUploadSize,
	}
}

// Upload stores the blob under the owner's prefix and records the
// metadata row. The blob write happens first so a metadata row never
// points at a missing file.
func (u *DocumentUsecase) Upload(ctx context.Context, ownerID uuid.UUID, upload *DocumentUpload) (*entities.RequestDocument, error) {
	if len(upload.Data) == 0 {
		return nil, domainerrors.BadRequest("file is empty")
	}
	if int64(len(upload.Data)) > u.maxUploadSize {
		return nil, domainerrors.BadRequest("file exceeds the maximum upload size")
	}

	fileName := sanitizeFileName(upload.FileName)
	key := fmt.Sprintf("%s/%d_%s", ownerID, time.Now().UnixNano(), fileName)

	size, err := u.blobStore.Save(ctx, key, bytes.NewReader(upload.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	doc := &entities.RequestDocument{
		OwnerID:     ownerID,
		RequestID:   upload.RequestID,
		FilePath:    key,
		FileName:    fileName,
		FileSize:    size,
		ContentType: upload.ContentType,
	}
	if err := u.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	u.recordActivity(ctx, ownerID, entities.ActivityDocumentUploaded,
		fmt.Sprintf("Uploaded %s", fileName))
	u.publisher.Publish("request_documents", "insert", doc.ID.String())

	return doc, nil
}

// ListByOwner lists a user's documents, newest first
func (u *DocumentUsecase) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.RequestDocument, error) {
	return u.documentRepo.ListByOwner(ctx, ownerID)
}

// Download returns a document's metadata and content for its owner or
// an admin.
func (u *DocumentUsecase) Download(ctx context.Context, requesterID uuid.UUID, isAdmin bool, docID uuid.UUID) (*entities.RequestDocument, []byte, error) {
	doc, err := u.documentRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, nil, err
	}
	if !isAdmin && doc.OwnerID != requesterID {
		return nil, nil, domainerrors.ErrForbidden
	}

	rc, err := u.blobStore.Open(ctx, doc.FilePath)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, nil, err
	}
	return doc, buf.Bytes(), nil
}

// Delete removes a document. The metadata row is removed even when the
// blob delete fails, so listings never show a file that cannot be
// fetched; the orphaned blob is only logged.
func (u *DocumentUsecase) Delete(ctx context.Context, requesterID uuid.UUID, isAdmin bool, docID uuid.UUID) error {
	doc, err := u.documentRepo.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if !isAdmin && doc.OwnerID != requesterID {
		return domainerrors.ErrForbidden
	}

	if err := u.blobStore.Delete(ctx, doc.FilePath); err != nil {
		logger.Warn(ctx, "blob delete failed, removing metadata anyway",
			zap.String("document_id", docID.String()), zap.Error(err))
	}
	if err := u.documentRepo.Delete(ctx, docID); err != nil {
		return err
	}

	u.publisher.Publish("request_documents", "delete", docID.String())
	return nil
}

func (u *DocumentUsecase) recordActivity(ctx context.Context, userID uuid.UUID, activityType entities.ActivityType, description string) {
	activity := &entities.UserActivity{
		UserID:      userID,
		Type:        activityType,
		Description: description,
	}
	if err := u.activityRepo.Create(ctx, activity); err != nil {
		logger.Warn(ctx, "failed to record activity", zap.Error(err))
	}
}
