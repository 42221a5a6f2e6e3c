package domain

import (
	"strings"
	"time"
)

// BlogPost is an article persisted in the hosted Postgres database.
type BlogPost struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BlogPostUpdate carries the optional fields of a partial update.
// Nil fields are left untouched.
type BlogPostUpdate struct {
	Title         *string
	Content       *string
	PublishedDate *time.Time
}

// NewBlogPost creates a validated BlogPost that has not been stored yet.
func NewBlogPost(title, content string, publishedDate *time.Time) (*BlogPost, error) {
	now := time.Now().UTC()
	post := &BlogPost{
		Title:         title,
		Content:       content,
		PublishedDate: publishedDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}
	return post, nil
}

// Validate checks the fields required on every stored post.
func (p *BlogPost) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if strings.TrimSpace(p.Content) == "" {
		return NewValidationError("content", "cannot be empty", ErrEmptyContent)
	}
	return nil
}

// IsEmpty reports whether the update changes nothing.
func (u BlogPostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.PublishedDate == nil
}

// Validate rejects updates that would blank a required field.
func (u BlogPostUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if u.Content != nil && strings.TrimSpace(*u.Content) == "" {
		return NewValidationError("content", "cannot be empty", ErrEmptyContent)
	}
	return nil
}
