package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"cineview/models"
)

// ErrUsernameTaken is returned when inserting an account whose username is
// already registered.
var ErrUsernameTaken = errors.New("username already taken")

// AccountRepository persists registered accounts.
type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Insert stores a new account. Returns ErrUsernameTaken on a username
// uniqueness violation.
func (r *AccountRepository) Insert(ctx context.Context, a models.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Username, a.PasswordHash, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

// GetByID returns the account with the given id, or nil when absent.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var a models.Account
	err := r.db.GetContext(ctx, &a, `SELECT * FROM accounts WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &a, nil
}

// GetByUsername returns the account registered under username, or nil.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var a models.Account
	err := r.db.GetContext(ctx, &a, `SELECT * FROM accounts WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &a, nil
}

// Count returns the number of registered accounts.
func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM accounts`); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}

	return n, nil
}
