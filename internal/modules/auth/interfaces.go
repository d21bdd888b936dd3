package auth

import (
	"context"

	"havenagent/internal/domain"

	"gorm.io/gorm"
)

// UserRepositoryInterface covers only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SetPendingEmail(ctx context.Context, userID int64, newEmail string) error
	ApplyPendingEmail(ctx context.Context, userID int64) error
	UpdatePasswordHash(ctx context.Context, userID int64, hash string) error
	DB() *gorm.DB
}

type ProfileRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	UpsertFields(ctx context.Context, userID int64, fields map[string]any) error
}

// OnboardingCreator ensures the onboarding row exists at registration,
// matching the lazy-creation contract from the engine's side.
type OnboardingCreator interface {
	EnsureExists(ctx context.Context, userID int64) error
}
