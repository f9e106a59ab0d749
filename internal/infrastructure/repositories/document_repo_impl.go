package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/infrastructure/models"
	"tax-portal.backend/pkg/utils"
)

// DocumentRepository implements document metadata operations
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document metadata row
func (r *DocumentRepository) Create(ctx context.Context, doc *entities.RequestDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = utils.NewID()
	}
	m := &models.RequestDocument{
		ID:          doc.ID,
		OwnerID:     doc.OwnerID,
		RequestID:   doc.RequestID,
		FilePath:    doc.FilePath,
		FileName:    doc.FileName,
		FileSize:    doc.FileSize,
		ContentType: doc.ContentType,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	doc.CreatedAt = m.CreatedAt
	return nil
}

// GetByID gets document metadata by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.RequestDocument, error) {
	var m models.RequestDocument
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByOwner lists a user's documents, newest first
func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.RequestDocument, error) {
	var docModels []models.RequestDocument
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&docModels).Error
	if err != nil {
		return nil, err
	}

	docs := make([]*entities.RequestDocument, 0, len(docModels))
	for i := range docModels {
		docs = append(docs, r.toEntity(&docModels[i]))
	}
	return docs, nil
}

// Delete removes a document metadata row
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RequestDocument{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository) toEntity(m *models.RequestDocument) *entities.RequestDocument {
	return &entities.RequestDocument{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		RequestID:   m.RequestID,
		FilePath:    m.FilePath,
		FileName:    m.FileName,
		FileSize:    m.FileSize,
		ContentType: m.ContentType,
		CreatedAt:   m.CreatedAt,
	}
}
