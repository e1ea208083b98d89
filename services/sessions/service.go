package sessions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"cineview/models"
)

var ErrInvalidSession = errors.New("invalid or expired session")

const DefaultTTL = 30 * 24 * time.Hour

// Store is the persistence layer for sessions.
type Store interface {
	Insert(ctx context.Context, sess models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Service struct {
	store Store
	ttl   time.Duration
}

func NewService(store Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{store: store, ttl: ttl}
}

func (s *Service) Create(ctx context.Context, accountID string) (*models.Session, error) {
	now := time.Now().UTC()
	sess := models.Session{
		Token:     uuid.NewString(),
		AccountID: accountID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.store.Insert(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &sess, nil
}

// Validate resolves a bearer token to an account id.
func (s *Service) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return "", ErrInvalidSession
	}
	if time.Now().After(sess.ExpiresAt) {
		if err := s.store.Delete(ctx, token); err != nil {
			log.Printf("[sessions] failed to delete expired session: %v", err)
		}
		return "", ErrInvalidSession
	}
	return sess.AccountID, nil
}

func (s *Service) Destroy(ctx context.Context, token string) error {
	if err := s.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes expired sessions, meant to run periodically.
func (s *Service) PurgeExpired(ctx context.Context) {
	n, err := s.store.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("[sessions] purge failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[sessions] purged %d expired sessions", n)
	}
}
