package models

import "time"

// Comment is one user comment on a title.
type Comment struct {
	ID         string    `db:"id" json:"id"`
	MediaID    int64     `db:"media_id" json:"mediaId"`
	AuthorID   string    `db:"author_id" json:"authorId"`
	AuthorName string    `db:"author_name" json:"authorName"`
	Content    string    `db:"content" json:"content"`
	Pinned     bool      `db:"pinned" json:"pinned"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// CommentPage is a single page of comments with paging metadata.
type CommentPage struct {
	Items       []Comment `json:"items"`
	TotalCount  int       `json:"totalCount"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	HasNextPage bool      `json:"hasNextPage"`
}
