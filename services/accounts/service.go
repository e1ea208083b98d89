package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-password/password"
	"golang.org/x/crypto/bcrypt"

	"cineview/internal/database"
	"cineview/models"
)

var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const adminUsername = "admin"

// Store is the persistence layer for accounts.
type Store interface {
	Insert(ctx context.Context, acct models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	Count(ctx context.Context) (int, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Register(ctx context.Context, username, plaintext string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(plaintext) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	acct := models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Insert(ctx, acct); err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("save account: %w", err)
	}
	return &acct, nil
}

func (s *Service) Authenticate(ctx context.Context, username, plaintext string) (*models.Account, error) {
	acct, err := s.store.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if acct == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(plaintext)) != nil {
		return nil, ErrInvalidCredentials
	}
	return acct, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return s.store.GetByID(ctx, id)
}

// EnsureAdmin creates the initial admin account with a generated password
// when the store is empty. The plaintext password is returned exactly once
// so the caller can log it, it is never stored.
func (s *Service) EnsureAdmin(ctx context.Context) (string, bool, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return "", false, fmt.Errorf("count accounts: %w", err)
	}
	if count > 0 {
		return "", false, nil
	}

	generated, err := password.Generate(20, 5, 0, false, false)
	if err != nil {
		return "", false, fmt.Errorf("generate admin password: %w", err)
	}
	if _, err := s.Register(ctx, adminUsername, generated); err != nil {
		return "", false, err
	}
	return generated, true, nil
}
