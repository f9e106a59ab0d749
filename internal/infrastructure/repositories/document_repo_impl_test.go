package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
)

func TestDocumentRepository_CreateGetListDelete(t *testing.T) {
	db := newTestDB(t)
	createDocumentTable(t, db)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	requestID := uuid.New()
	doc := &entities.RequestDocument{
		OwnerID:     ownerID,
		RequestID:   &requestID,
		FilePath:    ownerID.String() + "/1_statement.pdf",
		FileName:    "statement.pdf",
		FileSize:    2048,
		ContentType: "application/pdf",
	}

	require.NoError(t, repo.Create(ctx, doc))
	require.NotEqual(t, uuid.Nil, doc.ID)

	got, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, "statement.pdf", got.FileName)
	require.NotNil(t, got.RequestID)
	require.Equal(t, requestID, *got.RequestID)

	// Standalone upload with no linked request
	require.NoError(t, repo.Create(ctx, &entities.RequestDocument{
		OwnerID:  ownerID,
		FilePath: ownerID.String() + "/2_id-card.png",
		FileName: "id-card.png",
		FileSize: 512,
	}))

	docs, err := repo.ListByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	other, err := repo.ListByOwner(ctx, uuid.New())
	require.NoError(t, err)
	require.Empty(t, other)

	require.NoError(t, repo.Delete(ctx, doc.ID))
	_, err = repo.GetByID(ctx, doc.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDocumentRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createDocumentTable(t, db)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Delete(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
