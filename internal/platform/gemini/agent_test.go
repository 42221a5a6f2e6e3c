package gemini

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/taskhub/taskhub-api/internal/config"
	"github.com/taskhub/taskhub-api/internal/generation"
	"github.com/taskhub/taskhub-api/internal/platform/logger"
	"github.com/taskhub/taskhub-api/internal/platform/pokeapi"
)

// fakeModels replays canned responses and records each request.
type fakeModels struct {
	mu        sync.Mutex
	responses []*genai.GenerateContentResponse
	err       error
	requests  [][]*genai.Content
	configs   []*genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	_ string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot := make([]*genai.Content, len(contents))
	copy(snapshot, contents)
	f.requests = append(f.requests, snapshot)
	f.configs = append(f.configs, cfg)

	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, errors.New("no more canned responses")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromText(text, genai.RoleModel),
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func callResponse(calls ...*genai.FunctionCall) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(calls))
	for _, c := range calls {
		parts = append(parts, &genai.Part{FunctionCall: c})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      genai.NewContentFromParts(parts, genai.RoleModel),
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func pokemonCall(initial string) *genai.FunctionCall {
	return &genai.FunctionCall{
		Name: PokemonInfoToolName,
		Args: map[string]any{initCharacterArg: initial},
	}
}

type fakeFinder struct {
	entries []pokeapi.Entry
	err     error
	calls   []string
}

func (f *fakeFinder) NamesStartingWith(_ context.Context, initial string) ([]pokeapi.Entry, error) {
	f.calls = append(f.calls, initial)
	return f.entries, f.err
}

func newTestAgent(t *testing.T, models contentGenerator, maxToolCalls int, tools ...Tool) *Agent {
	t.Helper()
	log, _ := logger.NewTestLogger()
	a, err := newAgent(log, models, "gemini-test", maxToolCalls, tools...)
	require.NoError(t, err)
	return a
}

func TestQueryPlainAnswer(t *testing.T) {
	t.Parallel()

	models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse(`{"answer":42}`)}}
	a := newTestAgent(t, models, 3)

	got, err := a.Query(context.Background(), "  what is the answer?  ")
	require.NoError(t, err)
	assert.Equal(t, `{"answer":42}`, got)

	require.Len(t, models.requests, 1)
	require.Len(t, models.requests[0], 1)
	assert.Equal(t, "what is the answer?", models.requests[0][0].Parts[0].Text)

	cfg := models.configs[0]
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, SystemPrompt, cfg.SystemInstruction.Parts[0].Text)
	assert.Empty(t, cfg.Tools)
}

func TestQueryStripsCodeFence(t *testing.T) {
	t.Parallel()

	models := &fakeModels{responses: []*genai.GenerateContentResponse{
		textResponse("```json\n{\"ok\":true}\n```"),
	}}
	a := newTestAgent(t, models, 3)

	got, err := a.Query(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, got)
}

func TestQueryRunsToolThenAnswers(t *testing.T) {
	t.Parallel()

	finder := &fakeFinder{entries: []pokeapi.Entry{{Name: "pikachu"}, {Name: "pidgey"}}}
	models := &fakeModels{responses: []*genai.GenerateContentResponse{
		callResponse(pokemonCall("pz")),
		textResponse(`{"pokemon":["pikachu","pidgey"]}`),
	}}
	a := newTestAgent(t, models, 3, NewPokemonInfoTool(finder))

	got, err := a.Query(context.Background(), "list pokemon starting with p")
	require.NoError(t, err)
	assert.Equal(t, `{"pokemon":["pikachu","pidgey"]}`, got)
	assert.Equal(t, []string{"p"}, finder.calls)

	require.Len(t, models.requests, 2)
	second := models.requests[1]
	require.Len(t, second, 3, "prompt, model call, function response")
	assert.Equal(t, string(genai.RoleModel), second[1].Role)
	assert.Equal(t, string(genai.RoleUser), second[2].Role)

	fr := second[2].Parts[0].FunctionResponse
	require.NotNil(t, fr)
	assert.Equal(t, PokemonInfoToolName, fr.Name)
	assert.Equal(t, []string{"pikachu", "pidgey"}, fr.Response["names"])

	require.Len(t, models.configs[0].Tools, 1)
	assert.Equal(t, PokemonInfoToolName, models.configs[0].Tools[0].FunctionDeclarations[0].Name)
}

func TestQueryReportsToolFailureToModel(t *testing.T) {
	t.Parallel()

	finder := &fakeFinder{err: pokeapi.ErrUpstream}
	models := &fakeModels{responses: []*genai.GenerateContentResponse{
		callResponse(pokemonCall("a"), &genai.FunctionCall{Name: "weather"}),
		textResponse(`{"error":"lookup unavailable"}`),
	}}
	a := newTestAgent(t, models, 5, NewPokemonInfoTool(finder))

	got, err := a.Query(context.Background(), "anything with a")
	require.NoError(t, err)
	assert.Equal(t, `{"error":"lookup unavailable"}`, got)

	responses := models.requests[1][2].Parts
	require.Len(t, responses, 2)
	assert.Contains(t, responses[0].FunctionResponse.Response["error"], "creature API request failed")
	assert.Equal(t, `unknown tool "weather"`, responses[1].FunctionResponse.Response["error"])
}

func TestQueryToolLimit(t *testing.T) {
	t.Parallel()

	finder := &fakeFinder{}
	models := &fakeModels{responses: []*genai.GenerateContentResponse{
		callResponse(pokemonCall("a")),
		callResponse(pokemonCall("b")),
		callResponse(pokemonCall("c")),
	}}
	a := newTestAgent(t, models, 2, NewPokemonInfoTool(finder))

	_, err := a.Query(context.Background(), "loop forever")
	assert.ErrorIs(t, err, generation.ErrToolLimitExceeded)
	assert.Equal(t, []string{"a", "b"}, finder.calls)
}

func TestQueryFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		models *fakeModels
		prompt string
		want   error
	}{
		{
			name:   "blank prompt",
			models: &fakeModels{},
			prompt: "   ",
			want:   generation.ErrEmptyPrompt,
		},
		{
			name:   "api error",
			models: &fakeModels{err: errors.New("503 overloaded")},
			prompt: "hi",
			want:   generation.ErrTransientFailure,
		},
		{
			name: "safety finish",
			models: &fakeModels{responses: []*genai.GenerateContentResponse{{
				Candidates: []*genai.Candidate{{
					Content:      genai.NewContentFromText("", genai.RoleModel),
					FinishReason: genai.FinishReasonSafety,
				}},
			}}},
			prompt: "hi",
			want:   generation.ErrContentBlocked,
		},
		{
			name: "prompt blocked",
			models: &fakeModels{responses: []*genai.GenerateContentResponse{{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
					BlockReason: genai.BlockedReasonSafety,
				},
			}}},
			prompt: "hi",
			want:   generation.ErrContentBlocked,
		},
		{
			name:   "no candidates",
			models: &fakeModels{responses: []*genai.GenerateContentResponse{{}}},
			prompt: "hi",
			want:   generation.ErrInvalidResponse,
		},
		{
			name:   "empty text",
			models: &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("   ")}},
			prompt: "hi",
			want:   generation.ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := newTestAgent(t, tt.models, 3)
			_, err := a.Query(context.Background(), tt.prompt)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestQueryCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newTestAgent(t, &fakeModels{err: errors.New("request aborted")}, 3)
	_, err := a.Query(ctx, "hi")
	assert.ErrorIs(t, err, generation.ErrTransientFailure)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewAgentValidation(t *testing.T) {
	t.Parallel()
	log, _ := logger.NewTestLogger()

	_, err := newAgent(nil, &fakeModels{}, "m", 1)
	assert.Error(t, err)

	_, err = newAgent(log, nil, "m", 1)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = newAgent(log, &fakeModels{}, "", 1)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = newAgent(log, &fakeModels{}, "m", 0)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	tool := NewPokemonInfoTool(&fakeFinder{})
	_, err = newAgent(log, &fakeModels{}, "m", 1, tool, tool)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewAgent(context.Background(), log, config.LLMConfig{ModelName: "m", MaxToolCalls: 1})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		`{"a":1}`:                 `{"a":1}`,
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		"```json {\"a\":1}```":    `{"a":1}`,
		"  \n{\"a\":1}\n  ":       `{"a":1}`,
	}
	for in, want := range tests {
		assert.Equal(t, want, stripCodeFence(in), "input %q", in)
	}
}
