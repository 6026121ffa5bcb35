package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// ErrInvalidCredentials is returned for any failed login attempt. Unknown
// email and wrong password are indistinguishable to the caller so accounts
// cannot be enumerated.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrWeakPassword is returned when the password is below the minimum length.
var ErrWeakPassword = errors.New("password must be at least 6 characters")

// ErrEmailRequired is returned when registration omits the email.
var ErrEmailRequired = errors.New("email is required")

// Service manages identity registration and verification.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new user with a bcrypt-hashed password. The plaintext
// password is never stored or logged. Returns ErrEmailTaken when the email
// is already registered.
func (s *Service) Register(ctx context.Context, creds Credentials) (User, error) {
	if creds.Email == "" {
		return User{}, ErrEmailRequired
	}
	if len(creds.Password) < minPasswordLength {
		return User{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Email:        creds.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies a login attempt. Every failure path collapses to
// ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.repo.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
