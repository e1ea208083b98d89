package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cineview/models"
)

func TestCommentsJoinAuthorAndOrder(t *testing.T) {
	db := newTestDB(t)
	accountsRepo := NewAccountRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, accountsRepo.Insert(ctx, account("a1", "alice")))
	require.NoError(t, accountsRepo.Insert(ctx, account("a2", "bob")))

	require.NoError(t, repo.Insert(ctx, models.Comment{ID: "c1", MediaID: 603, AuthorID: "a1", Content: "first", CreatedAt: base.Add(-2 * time.Minute)}))
	require.NoError(t, repo.Insert(ctx, models.Comment{ID: "c2", MediaID: 603, AuthorID: "a2", Content: "second", CreatedAt: base.Add(-time.Minute)}))
	require.NoError(t, repo.Insert(ctx, models.Comment{ID: "c3", MediaID: 603, AuthorID: "a1", Content: "sticky", Pinned: true, CreatedAt: base.Add(-3 * time.Minute)}))

	items, total, err := repo.ListByMedia(ctx, 603, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, items, 3)

	// Pinned first, then newest first.
	require.Equal(t, "c3", items[0].ID)
	require.Equal(t, "c2", items[1].ID)
	require.Equal(t, "c1", items[2].ID)

	require.Equal(t, "alice", items[0].AuthorName)
	require.Equal(t, "bob", items[1].AuthorName)
}

func TestCommentsScopedToMedia(t *testing.T) {
	db := newTestDB(t)
	accountsRepo := NewAccountRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, accountsRepo.Insert(ctx, account("a1", "alice")))
	require.NoError(t, repo.Insert(ctx, models.Comment{ID: "c1", MediaID: 603, AuthorID: "a1", Content: "here", CreatedAt: now}))

	items, total, err := repo.ListByMedia(ctx, 999, 10, 0)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, items)
}

func TestCommentsPagination(t *testing.T) {
	db := newTestDB(t)
	accountsRepo := NewAccountRepository(db)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, accountsRepo.Insert(ctx, account("a1", "alice")))
	for i := 0; i < 5; i++ {
		c := models.Comment{
			ID:        string(rune('a' + i)),
			MediaID:   603,
			AuthorID:  "a1",
			Content:   "comment",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Insert(ctx, c))
	}

	items, total, err := repo.ListByMedia(ctx, 603, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, items, 2)
}
