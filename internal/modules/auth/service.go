package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"havenagent/internal/domain"
	"havenagent/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, email, role string) (string, error)
}

// Service contains the authentication and identity logic. It also
// plays the identity-provider role for the onboarding engine: the
// engine asks it for the authoritative email and routes email changes
// through it.
type Service struct {
	users          UserRepositoryInterface
	profiles       ProfileRepositoryInterface
	onboarding     OnboardingCreator
	jwt            jwtService
	mailer         Mailer
	confirmPepper  string
	confirmCodeTTL time.Duration
}

func NewService(
	users UserRepositoryInterface,
	profiles ProfileRepositoryInterface,
	onboarding OnboardingCreator,
	jwt jwtService,
	mailer Mailer,
	confirmPepper string,
	confirmCodeTTL time.Duration,
) *Service {
	return &Service{
		users:          users,
		profiles:       profiles,
		onboarding:     onboarding,
		jwt:            jwt,
		mailer:         mailer,
		confirmPepper:  confirmPepper,
		confirmCodeTTL: confirmCodeTTL,
	}
}

// Register creates the user, the profile row, and the onboarding row
// in one go, then issues a token.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*CurrentUser, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAgent,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, "", ErrEmailAlreadyExists
		}
		return nil, "", err
	}

	if err := s.profiles.UpsertFields(ctx, user.ID, map[string]any{
		"full_name": strings.TrimSpace(req.FullName),
		"phone":     strings.TrimSpace(req.Phone),
	}); err != nil {
		return nil, "", err
	}

	if err := s.onboarding.EnsureExists(ctx, user.ID); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", err
	}

	return &CurrentUser{
		ID:       user.ID,
		Email:    user.Email,
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     string(user.Role),
	}, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*CurrentUser, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", err
	}

	return s.currentUser(ctx, user), token, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*CurrentUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.currentUser(ctx, user), nil
}

// GetByID exposes the identity to the onboarding engine.
func (s *Service) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdatePassword(ctx context.Context, userID int64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, userID, string(hash))
}

// profile lookup is enrichment only; a missing row degrades to empty
// strings instead of failing the call.
func (s *Service) currentUser(ctx context.Context, user *domain.User) *CurrentUser {
	cu := &CurrentUser{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	}
	if profile, err := s.profiles.GetByUserID(ctx, user.ID); err == nil {
		cu.FullName = profile.FullName
		cu.Phone = profile.Phone
	}
	return cu
}
