package usecase

import (
	"context"
	"errors"
	"interview-experience-backend/internal/domain"
	"interview-experience-backend/pkg/apperror"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// PasswordHasher is satisfied by *auth.PasswordHasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) (bool, error)
}

// TokenIssuer is satisfied by *auth.TokenManager.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type authUsecase struct {
	userRepo domain.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

func NewAuthUsecase(userRepo domain.UserRepository, hasher PasswordHasher, tokens TokenIssuer) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register stores a new user. The uniqueness check happens inside the store's
// insert, so two concurrent registrations of one email cannot both succeed.
func (u *authUsecase) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	hash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "Error registering user", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return nil, apperror.New(http.StatusBadRequest, "Error registering user: email already registered", err)
		}
		return nil, apperror.New(http.StatusBadRequest, "Error registering user", err)
	}
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, req *domain.LoginRequest) (string, error) {
	user, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", apperror.NotFound("User not found")
		}
		return "", apperror.Internal("Login failed", err)
	}

	ok, err := u.hasher.Verify(user.PasswordHash, req.Password)
	if err != nil {
		return "", apperror.Internal("Login failed", err)
	}
	if !ok {
		return "", apperror.Unauthorized("Invalid credentials")
	}

	token, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", apperror.Internal("Login failed", err)
	}
	return token, nil
}
