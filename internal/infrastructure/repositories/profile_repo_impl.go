package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"tax-portal.backend/internal/domain/entities"
	domainerrors "tax-portal.backend/internal/domain/errors"
	"tax-portal.backend/internal/infrastructure/models"
	"tax-portal.backend/pkg/utils"
)

// ProfileRepository implements profile data operations
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = utils.NewID()
	}
	m := r.toModel(profile)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	profile.CreatedAt = m.CreatedAt
	profile.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	var m models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a profile by email
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	var m models.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update updates the mutable profile fields
func (r *ProfileRepository) Update(ctx context.Context, profile *entities.Profile) error {
	updates := map[string]interface{}{
		"full_name":           profile.FullName,
		"phone":               profile.Phone.String,
		"business_name":       profile.BusinessName.String,
		"tin":                 profile.TIN.String,
		"account_type":        profile.AccountType.String,
		"avatar_path":         profile.AvatarPath.String,
		"verification_status": profile.VerificationStatus,
		"role":                profile.Role,
		"updated_at":          time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", profile.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists profiles with optional search on name or email
func (r *ProfileRepository) List(ctx context.Context, search string) ([]*entities.Profile, error) {
	var profileModels []models.Profile
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ?", searchTerm, searchTerm)
	}

	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]*entities.Profile, 0, len(profileModels))
	for i := range profileModels {
		profiles = append(profiles, r.toEntity(&profileModels[i]))
	}
	return profiles, nil
}

// CountByRole counts profiles holding a role
func (r *ProfileRepository) CountByRole(ctx context.Context, role entities.ProfileRole) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

// SoftDelete soft deletes a profile
func (r *ProfileRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Profile{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) toModel(p *entities.Profile) *models.Profile {
	return &models.Profile{
		ID:                 p.ID,
		Email:              p.Email,
		FullName:           p.FullName,
		Phone:              p.Phone.String,
		BusinessName:       p.BusinessName.String,
		TIN:                p.TIN.String,
		AccountType:        p.AccountType.String,
		AvatarPath:         p.AvatarPath.String,
		VerificationStatus: string(p.VerificationStatus),
		Role:               string(p.Role),
		PasswordHash:       p.PasswordHash,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (r *ProfileRepository) toEntity(m *models.Profile) *entities.Profile {
	return &entities.Profile{
		ID:                 m.ID,
		Email:              m.Email,
		FullName:           m.FullName,
		Phone:              nullStringFrom(m.Phone),
		BusinessName:       nullStringFrom(m.BusinessName),
		TIN:                nullStringFrom(m.TIN),
		AccountType:        nullStringFrom(m.AccountType),
		AvatarPath:         nullStringFrom(m.AvatarPath),
		VerificationStatus: entities.VerificationStatus(m.VerificationStatus),
		Role:               entities.ProfileRole(m.Role),
		PasswordHash:       m.PasswordHash,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// nullStringFrom maps an empty column to an invalid null.String
func nullStringFrom(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
