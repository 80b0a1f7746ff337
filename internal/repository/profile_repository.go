package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/model"
)

// ProfileRepository defines role profile persistence operations.
type ProfileRepository interface {
	// GetOrCreate returns the profile for an identity, creating it with the
	// default role if it does not exist yet. Safe under concurrent first
	// access from multiple process instances.
	GetOrCreate(ctx context.Context, authUserID uuid.UUID) (*model.UserProfile, error)
	FindByAuthUserID(ctx context.Context, authUserID uuid.UUID) (*model.UserProfile, error)
	SetRole(ctx context.Context, authUserID uuid.UUID, role model.Role) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// GetOrCreate upserts against the unique index on auth_user_id and re-reads.
// The conflict clause makes the insert a no-op when the row already exists,
// so two racing first requests for the same identity end up with one record.
func (r *profileRepository) GetOrCreate(ctx context.Context, authUserID uuid.UUID) (*model.UserProfile, error) {
	profile := model.UserProfile{
		AuthUserID: authUserID,
		Role:       model.RoleUser,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "auth_user_id"}},
			DoNothing: true,
		}).
		Create(&profile).Error
	if err != nil {
		return nil, err
	}

	// Re-read: on conflict the insert returns no row, and the stored role
	// may differ from the default.
	var out model.UserProfile
	if err := r.db.WithContext(ctx).Where("auth_user_id = ?", authUserID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *profileRepository) FindByAuthUserID(ctx context.Context, authUserID uuid.UUID) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := r.db.WithContext(ctx).Where("auth_user_id = ?", authUserID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) SetRole(ctx context.Context, authUserID uuid.UUID, role model.Role) error {
	return r.db.WithContext(ctx).Model(&model.UserProfile{}).
		Where("auth_user_id = ?", authUserID).
		Update("role", role).Error
}
