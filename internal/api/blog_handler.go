package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taskhub/taskhub-api/internal/api/shared"
	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/platform/logger"
	"github.com/taskhub/taskhub-api/internal/service"
	"github.com/taskhub/taskhub-api/internal/store"
)

// dateLayout is the calendar-day format accepted in blog queries and payloads.
const dateLayout = "2006-01-02"

// BlogHandler handles the /blog endpoints
type BlogHandler struct {
	blogService service.BlogService
	logger      *slog.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogService service.BlogService, logger *slog.Logger) *BlogHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BlogHandler")
	}

	return &BlogHandler{
		blogService: blogService,
		logger:      logger.With(slog.String("component", "blog_handler")),
	}
}

// ListPosts handles GET /blog/list requests.
// The optional publishedDate query parameter restricts results to one UTC day.
func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	var filter store.BlogPostFilter

	if raw := strings.TrimSpace(r.URL.Query().Get("publishedDate")); raw != "" {
		day, err := time.Parse(dateLayout, raw)
		if err != nil {
			err = domain.NewValidationError("publishedDate", "must be a date in YYYY-MM-DD format", domain.ErrInvalidInput)
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err.Error(), err)
			return
		}
		filter.PublishedOn = &day
	}

	h.list(w, r, filter)
}

// ListPostByID handles GET /blog/list/{id} requests.
// It responds with an array that is empty when no post matches.
func (h *BlogHandler) ListPostByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathInt64(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	h.list(w, r, store.BlogPostFilter{ID: &id})
}

func (h *BlogHandler) list(w http.ResponseWriter, r *http.Request, filter store.BlogPostFilter) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	posts, err := h.blogService.ListPosts(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to list blog posts")
		return
	}

	log.Debug("listed blog posts", slog.Int("count", len(posts)))
	shared.RespondWithJSON(w, r, http.StatusOK, blogPostsToResponse(posts))
}

// CreatePost handles POST /blog/post requests
func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateBlogPostRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	var published *time.Time
	if req.PublishingDate != "" {
		day, err := time.Parse(dateLayout, req.PublishingDate)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid publishingDate: invalid date", err)
			return
		}
		published = &day
	}

	post, err := h.blogService.CreatePost(r.Context(), req.Title, req.Content, published)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to create blog post")
		return
	}

	log.Info("blog post created", slog.Int64("post_id", post.ID))
	shared.RespondWithMessage(w, r, http.StatusCreated, "Blog post created successfully")
}

// UpdatePost handles PUT /blog/post/{id} requests
func (h *BlogHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathInt64(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	var req UpdateBlogPostRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	if _, err := h.blogService.UpdatePost(r.Context(), id, req.toDomain()); err != nil {
		respondWithServiceError(w, r, err, "Failed to update blog post")
		return
	}

	log.Info("blog post updated", slog.Int64("post_id", id))
	shared.RespondWithMessage(w, r, http.StatusOK, "Blog post updated successfully")
}

// DeletePost handles DELETE /blog/post/{id} requests
func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := getPathInt64(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	if err := h.blogService.DeletePost(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err, "Failed to delete blog post")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
