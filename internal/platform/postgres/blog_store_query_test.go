package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/taskhub/taskhub-api/internal/store"
)

func TestBuildListQuery(t *testing.T) {
	t.Parallel()

	id := int64(42)
	day := time.Date(2024, 5, 17, 13, 45, 0, 0, time.UTC)
	midnight := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    store.BlogPostFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "by id",
			filter:    store.BlogPostFilter{ID: &id},
			wantWhere: " WHERE id = $1",
			wantArgs:  []any{id},
		},
		{
			name:      "by day",
			filter:    store.BlogPostFilter{PublishedOn: &day},
			wantWhere: " WHERE published_date >= $1 AND published_date < $2",
			wantArgs:  []any{midnight, midnight.Add(24 * time.Hour)},
		},
		{
			name:      "by id and day",
			filter:    store.BlogPostFilter{ID: &id, PublishedOn: &day},
			wantWhere: " WHERE id = $1 AND published_date >= $2 AND published_date < $3",
			wantArgs:  []any{id, midnight, midnight.Add(24 * time.Hour)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			query, args := buildListQuery(tc.filter)

			want := "SELECT " + blogColumns + " FROM blog" + tc.wantWhere + " ORDER BY created_at DESC, id DESC"
			assert.Equal(t, want, query)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}
