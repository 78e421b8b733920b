package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/auth"
	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuthServiceProvider defines the interface for registration and login.
type AuthServiceProvider interface {
	Register(ctx context.Context, name, email, password string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Me(ctx context.Context, userID string) (models.PublicUser, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer issues bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	now    func() time.Time

	dummyMu   sync.Mutex
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register creates a user and returns a token bound to it.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	switch {
	case name == "":
		return AuthResult{}, fmt.Errorf("%w: name is required", ErrValidation)
	case email == "":
		return AuthResult{}, fmt.Errorf("%w: email is required", ErrValidation)
	case password == "":
		return AuthResult{}, fmt.Errorf("%w: password is required", ErrValidation)
	case len(password) > auth.MaxPasswordBytes:
		return AuthResult{}, fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, auth.MaxPasswordBytes)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, err
	}

	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		CreatedAt:    s.now().UTC(),
	}
	// A concurrent registration for the same email surfaces here as
	// ErrDuplicateEmail from the store's unique constraint.
	if err := s.users.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}

	return s.issue(user)
}

// Login checks email and password and returns a fresh token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Spend the same bcrypt work as a real check.
			s.hasher.Verify(password, s.dummy())
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me returns the public view of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (models.PublicUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *AuthService) issue(user models.User) (AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}
	return AuthResult{Token: token, User: user.Public()}, nil
}

// dummy returns a hash to compare against when the email is unknown. A failed
// hash is logged and retried on the next call rather than cached.
func (s *AuthService) dummy() string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyHash == "" {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			log.Error().Err(err).Msg("Failed to build login timing hash")
			return ""
		}
		s.dummyHash = hash
	}
	return s.dummyHash
}
