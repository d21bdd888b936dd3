package repository

import (
	"context"
	"time"

	"havenagent/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type ProfileModel struct {
	UserID    int64     `gorm:"column:user_id;primaryKey"`
	FullName  string    `gorm:"column:full_name"`
	Phone     *string   `gorm:"column:phone"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ProfileModel) TableName() string { return "profiles" }

func toDomainProfile(m ProfileModel) *domain.Profile {
	var phone string
	if m.Phone != nil {
		phone = *m.Phone
	}
	return &domain.Profile{
		UserID:    m.UserID,
		FullName:  m.FullName,
		Phone:     phone,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var m ProfileModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProfile(m), nil
}

// UpsertFields writes only the supplied columns, creating the row when
// missing. Column set is built by the caller from the request, so an
// absent field never clobbers a stored value.
func (r *ProfileRepository) UpsertFields(ctx context.Context, userID int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	now := time.Now()
	m := ProfileModel{UserID: userID, UpdatedAt: now}
	if v, ok := fields["full_name"]; ok {
		m.FullName = v.(string)
	}
	if v, ok := fields["phone"]; ok {
		phone := v.(string)
		m.Phone = &phone
	}

	assignments := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		assignments[k] = v
	}
	assignments["updated_at"] = now

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(&m).Error
}
