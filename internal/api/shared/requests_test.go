package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type titleRequest struct {
	Title string `json:"title" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantErr     bool
		errContains string
		wantTitle   string
	}{
		{name: "valid json", body: `{"title":"buy milk"}`, wantTitle: "buy milk"},
		{name: "trailing comma", body: `{"title":"x",}`, wantErr: true, errContains: "invalid character"},
		{name: "empty body", body: "", wantErr: true, errContains: ErrEmptyBody.Error()},
		{name: "unknown field", body: `{"title":"x","done":true}`, wantErr: true, errContains: "unknown field"},
		{name: "two objects", body: `{"title":"a"}{"title":"b"}`, wantErr: true, errContains: "single JSON object"},
		{name: "wrong type", body: `{"title":42}`, wantErr: true, errContains: "cannot unmarshal"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			var got titleRequest
			err := DecodeJSON(w, req, &got)

			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTitle, got.Title)
		})
	}
}

func TestDecodeJSONNilBody(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodPost, "/tasks", nil)

	var got titleRequest
	err := DecodeJSON(httptest.NewRecorder(), req, &got)
	assert.ErrorIs(t, err, ErrEmptyBody)
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return assert.AnError
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(&titleRequest{Title: "x"}))
	assert.Error(t, ValidateRequest(&titleRequest{}))

	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.ErrorIs(t, ValidateRequest(selfValidating{}), assert.AnError)
}

func TestValidateRequestUsesJSONNames(t *testing.T) {
	t.Parallel()

	err := ValidateRequest(&titleRequest{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "title", verrs[0].Field())
}
