package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	domainerrors "tax-portal.backend/internal/domain/errors"
)

func newDocumentFixture() (*DocumentUsecase, *documentRepoStub, *memBlobStore, *recordingPublisher) {
	documentRepo := newDocumentRepoStub()
	blobStore := newMemBlobStore()
	pub := &recordingPublisher{}
	uc := NewDocumentUsecase(documentRepo, &activityRepoStub{}, blobStore, pub, 1<<20)
	return uc, documentRepo, blobStore, pub
}

func TestDocumentUsecase_Upload(t *testing.T) {
	uc, documentRepo, blobStore, pub := newDocumentFixture()
	ctx := context.Background()
	ownerID := uuid.New()
	requestID := uuid.New()

	doc, err := uc.Upload(ctx, ownerID, &DocumentUpload{
		FileName:    "statement.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 fake"),
		RequestID:   &requestID,
	})
	require.NoError(t, err)
	require.Equal(t, "statement.pdf", doc.FileName)
	require.EqualValues(t, 13, doc.FileSize)
	require.NotNil(t, doc.RequestID)
	require.True(t, strings.HasPrefix(doc.FilePath, ownerID.String()+"/"))

	exists, _, err := blobStore.Exists(ctx, doc.FilePath)
	require.NoError(t, err)
	require.True(t, exists)
	_, ok := documentRepo.byID[doc.ID]
	require.True(t, ok)
	require.True(t, pub.has("request_documents/insert"))
}

func TestDocumentUsecase_UploadValidation(t *testing.T) {
	uc, _, _, _ := newDocumentFixture()
	ctx := context.Background()
	ownerID := uuid.New()

	_, err := uc.Upload(ctx, ownerID, &DocumentUpload{FileName: "empty.txt"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = uc.Upload(ctx, ownerID, &DocumentUpload{FileName: "big.bin", Data: make([]byte, 1<<20+1)})
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	// Path components in the client-supplied name are stripped
	doc, err := uc.Upload(ctx, ownerID, &DocumentUpload{FileName: "../../etc/passwd", Data: []byte("x")})
	require.NoError(t, err)
	require.Equal(t, "passwd", doc.FileName)
}

func TestDocumentUsecase_DownloadOwnership(t *testing.T) {
	uc, _, _, _ := newDocumentFixture()
	ctx := context.Background()
	ownerID := uuid.New()

	doc, err := uc.Upload(ctx, ownerID, &DocumentUpload{FileName: "id.png", Data: []byte("png-bytes")})
	require.NoError(t, err)

	got, data, err := uc.Download(ctx, ownerID, false, doc.ID)
	require.NoError(t, err)
	require.Equal(t, doc.ID, got.ID)
	require.Equal(t, []byte("png-bytes"), data)

	_, _, err = uc.Download(ctx, uuid.New(), true, doc.ID)
	require.NoError(t, err)

	_, _, err = uc.Download(ctx, uuid.New(), false, doc.ID)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, _, err = uc.Download(ctx, ownerID, false, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDocumentUsecase_Delete(t *testing.T) {
	uc, documentRepo, blobStore, pub := newDocumentFixture()
	ctx := context.Background()
	ownerID := uuid.New()

	doc, err := uc.Upload(ctx, ownerID, &DocumentUpload{FileName: "old.pdf", Data: []byte("stale")})
	require.NoError(t, err)

	require.ErrorIs(t, uc.Delete(ctx, uuid.New(), false, doc.ID), domainerrors.ErrForbidden)

	require.NoError(t, uc.Delete(ctx, ownerID, false, doc.ID))
	_, ok := documentRepo.byID[doc.ID]
	require.False(t, ok)
	exists, _, err := blobStore.Exists(ctx, doc.FilePath)
	require.NoError(t, err)
	require.False(t, exists)
	require.True(t, pub.has("request_documents/delete"))
}

func TestDocumentUsecase_DeleteRemovesMetadataWhenBlobDeleteFails(t *testing.T) {
	uc, documentRepo, blobStore, _ := newDocumentFixture()
	ctx := context.Background()
	ownerID := uuid.New()

	doc, err := uc.Upload(ctx, ownerID, &DocumentUpload{FileName: "orphan.pdf", Data: []byte("bytes")})
	require.NoError(t, err)

	blobStore.deleteErr = errors.New("disk unplugged")

	// Listings must not keep showing a file the user asked to remove
	require.NoError(t, uc.Delete(ctx, ownerID, false, doc.ID))
	_, ok := documentRepo.byID[doc.ID]
	require.False(t, ok)
}

func TestDocumentUsecase_ListByOwner(t *testing.T) {
	uc, _, _, _ := newDocumentFixture()
	ctx := context.Background()
	ownerID := uuid.New()

	for _, name := range []string{"a.pdf", "b.pdf"} {
		_, err := uc.Upload(ctx, ownerID, &DocumentUpload{FileName: name, Data: []byte("x")})
		require.NoError(t, err)
	}
	_, err := uc.Upload(ctx, uuid.New(), &DocumentUpload{FileName: "c.pdf", Data: []byte("x")})
	require.NoError(t, err)

	docs, err := uc.ListByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
}
