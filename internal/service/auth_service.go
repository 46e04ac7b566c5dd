package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskmanager/internal/domain"
	"taskmanager/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgNoToken            = "Not authorized, no token"
	msgTokenFailed        = "Not authorized, token failed"
	msgUserGone           = "Not authorized, user not found"

	// maxPasswordBytes is the most bcrypt will hash.
	maxPasswordBytes = 72
)

// UserStore is the credential store used by AuthService.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=30,nonul"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Token    string    `json:"token"`
}

type AuthService struct {
	users  UserStore
	tokens *TokenService
	cost   int

	// dummyHash is compared against when the email is unknown so that both
	// login failure paths do the same bcrypt work.
	dummyHash []byte
}

func NewAuthService(users UserStore, tokens *TokenService, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	return &AuthService{users: users, tokens: tokens, cost: bcryptCost, dummyHash: dummy}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with a hashed password and issues a token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, domain.Conflict(msgUserExists)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.WrapError(domain.CodeConflict, msgUserExists, err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.result(u)
}

// Login checks the credentials. Unknown email and wrong password fail with
// the same message.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	// Register never stores a longer password, and bcrypt would only compare
	// its first maxPasswordBytes.
	if len(in.Password) > maxPasswordBytes {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password[:maxPasswordBytes]))
		return nil, domain.Unauthenticated(msgInvalidCredentials)
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
			return nil, domain.Unauthenticated(msgInvalidCredentials)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.Unauthenticated(msgInvalidCredentials)
	}

	return s.result(u)
}

// Authenticate resolves a bearer token to a live user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.Unauthenticated(msgNoToken)
	}
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, domain.WrapError(domain.CodeUnauthenticated, msgTokenFailed, err)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.WrapError(domain.CodeUnauthenticated, msgUserGone, err)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

func (s *AuthService) result(u *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Token:    token,
	}, nil
}
