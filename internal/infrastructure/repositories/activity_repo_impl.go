package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tax-portal.backend/internal/domain/entities"
	"tax-portal.backend/internal/infrastructure/models"
	"tax-portal.backend/pkg/utils"
)

// ActivityRepository implements activity feed operations
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create creates an activity row
func (r *ActivityRepository) Create(ctx context.Context, activity *entities.UserActivity) error {
	if activity.ID == uuid.Nil {
		activity.ID = utils.NewID()
	}
	m := &models.UserActivity{
		ID:          activity.ID,
		UserID:      activity.UserID,
		Type:        string(activity.Type),
		Description: activity.Description,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	activity.CreatedAt = m.CreatedAt
	return nil
}

// ListByUser lists a user's recent activity, newest first
func (r *ActivityRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.UserActivity, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var activityModels []models.UserActivity
	if err := query.Find(&activityModels).Error; err != nil {
		return nil, err
	}
	return r.toEntities(activityModels), nil
}

// ListRecent lists recent activity across all users, newest first
func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]*entities.UserActivity, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var activityModels []models.UserActivity
	if err := query.Find(&activityModels).Error; err != nil {
		return nil, err
	}
	return r.toEntities(activityModels), nil
}

func (r *ActivityRepository) toEntities(activityModels []models.UserActivity) []*entities.UserActivity {
	activities := make([]*entities.UserActivity, 0, len(activityModels))
	for _, m := range activityModels {
		activities = append(activities, &entities.UserActivity{
			ID:          m.ID,
			UserID:      m.UserID,
			Type:        entities.ActivityType(m.Type),
			Description: m.Description,
			CreatedAt:   m.CreatedAt,
		})
	}
	return activities
}
