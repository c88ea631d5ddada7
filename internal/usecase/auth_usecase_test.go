package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *AuthUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type stubIssuer struct{}

func (s *stubIssuer) Issue(userID string, now time.Time) (string, time.Time, error) {
	return "token-" + userID, now.Add(15 * time.Minute), nil
}

// テストはbcryptの最小コストで回す
func newAuthUsecase(userRepo *AuthUserRepoMock) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(userRepo, &stubIssuer{}, bcrypt.MinCost)
}

func TestAuthUsecase_Register_InvalidEmail(t *testing.T) {
	uc := newAuthUsecase(new(AuthUserRepoMock))

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "not-an-email",
		Password: "long-enough-password",
	})
	assertHTTPStatus(t, err, 400)
}

func TestAuthUsecase_Register_PasswordTooShort(t *testing.T) {
	uc := newAuthUsecase(new(AuthUserRepoMock))

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "a@example.com",
		Password: "short",
	})
	assertHTTPStatus(t, err, 400)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo)

	userRepo.On("FindByEmail", mock.Anything, "a@example.com").
		Return(&model.User{ID: "u1", Email: "a@example.com"}, nil)

	_, err := uc.Register(ctx, usecase.RegisterInput{
		Email:    "a@example.com",
		Password: "long-enough-password",
	})
	assertHTTPStatus(t, err, 409)

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo)

	userRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(nil, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := uc.Register(ctx, usecase.RegisterInput{
		Email:    "a@example.com",
		Password: "long-enough-password",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "a@example.com", user.Email)

	// 平文は保存しない
	assert.NotEqual(t, "long-enough-password", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("long-enough-password")))

	userRepo.AssertExpectations(t)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo)

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	_, err := uc.Login(ctx, usecase.LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assertHTTPStatus(t, err, 401)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	assert.NoError(t, err)

	userRepo.On("FindByEmail", mock.Anything, "a@example.com").
		Return(&model.User{ID: "u1", Email: "a@example.com", PasswordHash: string(hash)}, nil)

	_, err = uc.Login(ctx, usecase.LoginInput{Email: "a@example.com", Password: "wrong-password"})
	assertHTTPStatus(t, err, 401)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(AuthUserRepoMock)
	uc := newAuthUsecase(userRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	assert.NoError(t, err)

	userRepo.On("FindByEmail", mock.Anything, "a@example.com").
		Return(&model.User{ID: "u1", Email: "a@example.com", PasswordHash: string(hash)}, nil)

	out, err := uc.Login(ctx, usecase.LoginInput{Email: "a@example.com", Password: "correct-password"})
	assert.NoError(t, err)
	assert.Equal(t, "u1", out.UserID)
	assert.Equal(t, "token-u1", out.AccessToken)
	assert.True(t, out.ExpiresAt.After(time.Now()))
}
