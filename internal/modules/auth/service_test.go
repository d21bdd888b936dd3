package auth

import (
	"context"
	"testing"
	"time"

	"havenagent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

/* ==================== MOCKS ==================== */

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 42
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) SetPendingEmail(ctx context.Context, userID int64, newEmail string) error {
	args := m.Called(ctx, userID, newEmail)
	return args.Error(0)
}

func (m *MockUserRepository) ApplyPendingEmail(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	args := m.Called(ctx, userID, hash)
	return args.Error(0)
}

func (m *MockUserRepository) DB() *gorm.DB {
	return nil
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) UpsertFields(ctx context.Context, userID int64, fields map[string]any) error {
	args := m.Called(ctx, userID, fields)
	return args.Error(0)
}

type MockOnboardingCreator struct {
	mock.Mock
}

func (m *MockOnboardingCreator) EnsureExists(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendEmailChangeCode(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

type stubJWT struct{}

func (stubJWT) GenerateToken(userID int64, email, role string) (string, error) {
	return "test-token", nil
}

func newService(users *MockUserRepository, profiles *MockProfileRepository, onboarding *MockOnboardingCreator, mailer *MockMailer) *Service {
	return NewService(users, profiles, onboarding, stubJWT{}, mailer, "pepper", 15*time.Minute)
}

/* ==================== REGISTER ==================== */

func TestRegister_Success(t *testing.T) {
	users := new(MockUserRepository)
	profiles := new(MockProfileRepository)
	onboarding := new(MockOnboardingCreator)

	users.On("ExistsByEmail", mock.Anything, "jane@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	profiles.On("UpsertFields", mock.Anything, int64(42), map[string]any{
		"full_name": "Jane Agent",
		"phone":     "+971501234567",
	}).Return(nil)
	onboarding.On("EnsureExists", mock.Anything, int64(42)).Return(nil)

	svc := newService(users, profiles, onboarding, new(MockMailer))
	cu, token, err := svc.Register(context.Background(), RegisterRequest{
		FullName: " Jane Agent ",
		Email:    " Jane@Example.com ",
		Phone:    " +971501234567 ",
		Password: "secret-pass",
	})

	assert.NoError(t, err)
	assert.Equal(t, "test-token", token)
	assert.Equal(t, int64(42), cu.ID)
	assert.Equal(t, "jane@example.com", cu.Email)
	assert.Equal(t, "Jane Agent", cu.FullName)
	assert.Equal(t, string(domain.RoleAgent), cu.Role)
	users.AssertExpectations(t)
	profiles.AssertExpectations(t)
	onboarding.AssertExpectations(t)
}

func TestRegister_EmailAlreadyExists(t *testing.T) {
	users := new(MockUserRepository)

	users.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	svc := newService(users, new(MockProfileRepository), new(MockOnboardingCreator), new(MockMailer))
	_, _, err := svc.Register(context.Background(), RegisterRequest{
		FullName: "Jane Agent",
		Email:    "taken@example.com",
		Phone:    "+971501234567",
		Password: "secret-pass",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

/* ==================== LOGIN ==================== */

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	assert.NoError(t, err)

	users := new(MockUserRepository)
	profiles := new(MockProfileRepository)

	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{
		ID:           42,
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAgent,
	}, nil)
	profiles.On("GetByUserID", mock.Anything, int64(42)).Return(&domain.Profile{
		UserID:   42,
		FullName: "Jane Agent",
		Phone:    "+971501234567",
	}, nil)

	svc := newService(users, profiles, new(MockOnboardingCreator), new(MockMailer))
	cu, token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "JANE@example.com",
		Password: "secret-pass",
	})

	assert.NoError(t, err)
	assert.Equal(t, "test-token", token)
	assert.Equal(t, "Jane Agent", cu.FullName)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	assert.NoError(t, err)

	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{
		ID:           42,
		Email:        "jane@example.com",
		PasswordHash: string(hash),
	}, nil)

	svc := newService(users, new(MockProfileRepository), new(MockOnboardingCreator), new(MockMailer))
	_, _, err = svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-pass",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	svc := newService(users, new(MockProfileRepository), new(MockOnboardingCreator), new(MockMailer))
	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MissingProfileDegradesToEmpty(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	assert.NoError(t, err)

	users := new(MockUserRepository)
	profiles := new(MockProfileRepository)
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{
		ID:           42,
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAgent,
	}, nil)
	profiles.On("GetByUserID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := newService(users, profiles, new(MockOnboardingCreator), new(MockMailer))
	cu, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "secret-pass",
	})

	assert.NoError(t, err)
	assert.Equal(t, "", cu.FullName)
	assert.Equal(t, "", cu.Phone)
}

/* ==================== IDENTITY ==================== */

func TestGetByID_StripsPasswordHash(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{
		ID:           42,
		Email:        "jane@example.com",
		PasswordHash: "bcrypt-hash",
		Role:         domain.RoleAgent,
	}, nil)

	svc := newService(users, new(MockProfileRepository), new(MockOnboardingCreator), new(MockMailer))
	user, err := svc.GetByID(context.Background(), 42)

	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
}

func TestChangeEmail_RejectsTakenAddress(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	svc := newService(users, new(MockProfileRepository), new(MockOnboardingCreator), new(MockMailer))
	err := svc.ChangeEmail(context.Background(), 42, " Taken@Example.com ")

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "SetPendingEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePassword_StoresNewHash(t *testing.T) {
	users := new(MockUserRepository)
	users.On("UpdatePasswordHash", mock.Anything, int64(42), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			hash := args.String(2)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-secret")))
		}).
		Return(nil)

	svc := newService(users, new(MockProfileRepository), new(MockOnboardingCreator), new(MockMailer))
	err := svc.UpdatePassword(context.Background(), 42, "new-secret")

	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestHashConfirmCode_PepperChangesDigest(t *testing.T) {
	a := hashConfirmCode("123456", "pepper-a")
	b := hashConfirmCode("123456", "pepper-b")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, hashConfirmCode("123456", "pepper-a"))
}

func TestGenerateConfirmCode_SixDigits(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := generateConfirmCode()
		assert.NoError(t, err)
		assert.Len(t, code, 6)
	}
}
