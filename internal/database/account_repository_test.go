package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cineview/models"
)

func account(id, username string) models.Account {
	now := time.Now().UTC().Truncate(time.Second)
	return models.Account{
		ID:           id,
		Username:     username,
		PasswordHash: "$2a$10$fakehash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestAccountInsertAndLookup(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, account("a1", "alice")))

	byID, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	require.Equal(t, "alice", byID.Username)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	require.Equal(t, "a1", byName.ID)

	missing, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestAccountUsernameUnique(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, account("a1", "alice")))
	err := repo.Insert(ctx, account("a2", "alice"))
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAccountCount(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	require.NoError(t, repo.Insert(ctx, account("a1", "alice")))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	accountsRepo := NewAccountRepository(db)
	repo := NewSessionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, accountsRepo.Insert(ctx, account("a1", "alice")))
	require.NoError(t, repo.Insert(ctx, models.Session{Token: "tok", AccountID: "a1", ExpiresAt: now.Add(time.Hour), CreatedAt: now}))

	sess, err := repo.Get(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "a1", sess.AccountID)

	require.NoError(t, repo.Delete(ctx, "tok"))
	sess, err = repo.Get(ctx, "tok")
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestSessionDeleteExpired(t *testing.T) {
	db := newTestDB(t)
	accountsRepo := NewAccountRepository(db)
	repo := NewSessionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, accountsRepo.Insert(ctx, account("a1", "alice")))
	require.NoError(t, repo.Insert(ctx, models.Session{Token: "old", AccountID: "a1", ExpiresAt: now.Add(-time.Hour), CreatedAt: now}))
	require.NoError(t, repo.Insert(ctx, models.Session{Token: "live", AccountID: "a1", ExpiresAt: now.Add(time.Hour), CreatedAt: now}))

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	sess, err := repo.Get(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, sess)
}
