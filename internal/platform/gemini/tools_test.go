package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/taskhub/taskhub-api/internal/platform/pokeapi"
)

func TestPokemonInfoToolDeclaration(t *testing.T) {
	t.Parallel()

	decl := NewPokemonInfoTool(&fakeFinder{}).Declaration()
	assert.Equal(t, "pokemon_info", decl.Name)
	require.NotNil(t, decl.Parameters)
	assert.Equal(t, genai.TypeObject, decl.Parameters.Type)
	assert.Equal(t, []string{"initCharacter"}, decl.Parameters.Required)
	assert.Equal(t, genai.TypeString, decl.Parameters.Properties["initCharacter"].Type)
}

func TestPokemonInfoToolCall(t *testing.T) {
	t.Parallel()

	t.Run("matches", func(t *testing.T) {
		t.Parallel()
		finder := &fakeFinder{entries: []pokeapi.Entry{{Name: "bulbasaur"}, {Name: "butterfree"}}}
		out, err := NewPokemonInfoTool(finder).Call(context.Background(), map[string]any{"initCharacter": "B"})
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, finder.calls)
		assert.Equal(t, "Pokemon starting with 'B':\nbulbasaur\nbutterfree", out["result"])
		assert.Equal(t, []string{"bulbasaur", "butterfree"}, out["names"])
	})

	t.Run("no matches", func(t *testing.T) {
		t.Parallel()
		out, err := NewPokemonInfoTool(&fakeFinder{}).Call(context.Background(), map[string]any{"initCharacter": "x"})
		require.NoError(t, err)
		assert.Equal(t, "No Pokemon found starting with 'x'", out["result"])
		assert.Equal(t, []string{}, out["names"])
	})

	t.Run("missing argument", func(t *testing.T) {
		t.Parallel()
		_, err := NewPokemonInfoTool(&fakeFinder{}).Call(context.Background(), map[string]any{})
		assert.Error(t, err)
	})

	t.Run("finder error", func(t *testing.T) {
		t.Parallel()
		_, err := NewPokemonInfoTool(&fakeFinder{err: pokeapi.ErrUpstream}).
			Call(context.Background(), map[string]any{"initCharacter": "a"})
		assert.ErrorIs(t, err, pokeapi.ErrUpstream)
	})
}
