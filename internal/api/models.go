package api

import (
	"time"

	"github.com/taskhub/taskhub-api/internal/domain"
)

// Common request/response structures

// CreateTaskRequest defines the payload for POST /tasks.
type CreateTaskRequest struct {
	Title string `json:"title" validate:"required"`
}

// TaskResponse is the JSON representation of a task.
type TaskResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

func taskToResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
	}
}

func tasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}

// CreateBlogPostRequest defines the payload for POST /blog/post.
type CreateBlogPostRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`

	// PublishingDate is an optional calendar day in YYYY-MM-DD form
	PublishingDate string `json:"publishingDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateBlogPostRequest defines the payload for PUT /blog/post/{id}.
// Omitted fields are left unchanged.
type UpdateBlogPostRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`

	// PublishedDate is an RFC 3339 timestamp
	PublishedDate *time.Time `json:"publishedDate,omitempty"`
}

func (r UpdateBlogPostRequest) toDomain() domain.BlogPostUpdate {
	return domain.BlogPostUpdate{
		Title:         r.Title,
		Content:       r.Content,
		PublishedDate: r.PublishedDate,
	}
}

// BlogPostResponse is the JSON representation of a blog post.
type BlogPostResponse struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func blogPostsToResponse(posts []*domain.BlogPost) []BlogPostResponse {
	out := make([]BlogPostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, BlogPostResponse{
			ID:            p.ID,
			Title:         p.Title,
			Content:       p.Content,
			PublishedDate: p.PublishedDate,
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
		})
	}
	return out
}

// RegisterRequest defines the payload for the user registration endpoint.
// Password policy is enforced by the identity provider.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// RegisterResponse defines the successful response for registration.
type RegisterResponse struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse defines the successful response for login.
type LoginResponse struct {
	// AccessToken is the provider-issued JWT used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is used with the provider to obtain new access tokens
	RefreshToken string `json:"refresh_token"`

	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// UserProfileResponse describes the authenticated caller.
type UserProfileResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// DashboardResponse is returned by GET /api/user/dashboard.
type DashboardResponse struct {
	Message   string    `json:"message"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// UserSettings are the caller's preferences.
type UserSettings struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

// SettingsResponse is returned by GET /api/user/settings.
type SettingsResponse struct {
	UserID   string       `json:"userId"`
	Settings UserSettings `json:"settings"`
}

// AgentQueryRequest is the JSON form of POST /ai/query.
type AgentQueryRequest struct {
	Prompt string `json:"prompt"`
}
