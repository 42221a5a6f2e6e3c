package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/platform/logger"
	"github.com/taskhub/taskhub-api/internal/store"
)

const blogColumns = "id, title, content, published_date, created_at, updated_at"

// PostgresBlogStore implements store.BlogStore on the blog table.
type PostgresBlogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresBlogStore implements store.BlogStore interface
var _ store.BlogStore = (*PostgresBlogStore)(nil)

// NewPostgresBlogStore creates a blog store over db, which may be a pool or
// a transaction. If logger is nil, a default logger will be used.
func NewPostgresBlogStore(db store.DBTX, logger *slog.Logger) *PostgresBlogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresBlogStore{
		db:     db,
		logger: logger.With(slog.String("component", "blog_store")),
	}
}

// List implements store.BlogStore.List.
func (s *PostgresBlogStore) List(ctx context.Context, filter store.BlogPostFilter) ([]*domain.BlogPost, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildListQuery(filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query blog posts", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	posts := make([]*domain.BlogPost, 0)
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			log.Error("failed to scan blog post", slog.String("error", err.Error()))
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating blog posts", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("blog posts listed", slog.Int("count", len(posts)))
	return posts, nil
}

func buildListQuery(filter store.BlogPostFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.ID != nil {
		args = append(args, *filter.ID)
		where = append(where, fmt.Sprintf("id = $%d", len(args)))
	}
	if filter.PublishedOn != nil {
		day := filter.PublishedOn.UTC().Truncate(24 * time.Hour)
		args = append(args, day, day.Add(24*time.Hour))
		where = append(where, fmt.Sprintf("published_date >= $%d AND published_date < $%d", len(args)-1, len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT " + blogColumns + " FROM blog")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")
	return b.String(), args
}

// Create implements store.BlogStore.Create. It sets post.ID and the
// database-assigned timestamps.
func (s *PostgresBlogStore) Create(ctx context.Context, post *domain.BlogPost) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("blog post validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO blog (title, content, published_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		post.Title,
		post.Content,
		nullTime(post.PublishedDate),
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		log.Error("failed to insert blog post", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Debug("blog post inserted", slog.Int64("post_id", post.ID))
	return nil
}

// Update implements store.BlogStore.Update. Nil fields keep their stored value.
func (s *PostgresBlogStore) Update(
	ctx context.Context,
	id int64,
	update domain.BlogPostUpdate,
) (*domain.BlogPost, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE blog SET
			title          = COALESCE($2, title),
			content        = COALESCE($3, content),
			published_date = COALESCE($4, published_date),
			updated_at     = $5
		WHERE id = $1
		RETURNING ` + blogColumns

	row := s.db.QueryRowContext(ctx, query,
		id,
		nullString(update.Title),
		nullString(update.Content),
		nullTime(update.PublishedDate),
		time.Now().UTC(),
	)
	post, err := scanBlogPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("blog post not found for update", slog.Int64("post_id", id))
			return nil, store.ErrBlogPostNotFound
		}
		log.Error("failed to update blog post",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return post, nil
}

// Delete implements store.BlogStore.Delete.
func (s *PostgresBlogStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM blog WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete blog post",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrBlogPostNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlogPost(row rowScanner) (*domain.BlogPost, error) {
	var (
		post      domain.BlogPost
		published sql.NullTime
	)
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&published,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if published.Valid {
		t := published.Time.UTC()
		post.PublishedDate = &t
	}
	post.CreatedAt = post.CreatedAt.UTC()
	post.UpdatedAt = post.UpdatedAt.UTC()
	return &post, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
