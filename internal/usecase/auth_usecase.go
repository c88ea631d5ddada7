package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// JWTを発行する約束。実装はcmd側。
type AccessTokenIssuer interface {
	Issue(userID string, now time.Time) (token string, expiresAt time.Time, err error)
}

// AuthUsecase は会員登録とログイン。
// ログイン成功後のカートマージはhandler側でCartUsecaseを呼ぶ。
type AuthUsecase struct {
	userRepo   repo.UserRepository
	issuer     AccessTokenIssuer
	bcryptCost int
}

// DI
func NewAuthUsecase(userRepo repo.UserRepository, issuer AccessTokenIssuer, bcryptCost int) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	UserID      string    `json:"user_id"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// 会員登録
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid email format")
	}
	if len(in.Password) < 12 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	existing, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return model.User{}, err
	}
	if existing != nil {
		return model.User{}, NewHTTPError(http.StatusConflict, "email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return model.User{}, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return model.User{}, err
	}

	return *user, nil
}

// ログイン。emailとパスワードのどちらが違っても同じメッセージを返す。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return LoginOutput{}, err
	}
	if user == nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, time.Now())
	if err != nil {
		return LoginOutput{}, err
	}

	return LoginOutput{
		UserID:      user.ID,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
