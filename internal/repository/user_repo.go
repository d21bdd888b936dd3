package repository

import (
	"context"
	"strings"
	"time"

	"havenagent/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type UserModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PendingEmail *string   `gorm:"column:pending_email"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (UserModel) TableName() string { return "users" }

func toDomainUser(m UserModel) *domain.User {
	var pending string
	if m.PendingEmail != nil {
		pending = *m.PendingEmail
	}

	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PendingEmail: pending,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) UserModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var pending *string
	if u.PendingEmail != "" {
		v := u.PendingEmail
		pending = &v
	}

	return UserModel{
		ID:           u.ID,
		Email:        email,
		PendingEmail: pending,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m UserModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m UserModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&UserModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	return r.db.WithContext(ctx).Save(&m).Error
}

// SetPendingEmail records an unconfirmed address change. The
// authoritative email column is untouched until ApplyPendingEmail.
func (r *UserRepository) SetPendingEmail(ctx context.Context, userID int64, newEmail string) error {
	return r.db.WithContext(ctx).Model(&UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{"pending_email": strings.ToLower(strings.TrimSpace(newEmail))}).Error
}

// ApplyPendingEmail promotes pending_email to email and clears it.
func (r *UserRepository) ApplyPendingEmail(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&UserModel{}).
		Where("id = ? AND pending_email IS NOT NULL", userID).
		Updates(map[string]any{
			"email":         gorm.Expr("pending_email"),
			"pending_email": nil,
		}).Error
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	return r.db.WithContext(ctx).Model(&UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{"password_hash": hash}).Error
}

func (r *UserRepository) DB() *gorm.DB { return r.db }
