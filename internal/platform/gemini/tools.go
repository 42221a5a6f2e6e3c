package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/taskhub/taskhub-api/internal/platform/pokeapi"
)

// PokemonInfoToolName is the function name the model uses to call the
// creature lookup.
const PokemonInfoToolName = "pokemon_info"

const initCharacterArg = "initCharacter"

// CreatureFinder is the part of the PokeAPI client the tools need.
type CreatureFinder interface {
	NamesStartingWith(ctx context.Context, initial string) ([]pokeapi.Entry, error)
}

// Tool is a local function the model may call.
type Tool interface {
	// Declaration describes the function to the model.
	Declaration() *genai.FunctionDeclaration

	// Call runs the function with the model-supplied arguments and returns
	// the payload sent back as the function response.
	Call(ctx context.Context, args map[string]any) (map[string]any, error)
}

// PokemonInfoTool lists creatures whose name starts with a character.
type PokemonInfoTool struct {
	finder CreatureFinder
}

// NewPokemonInfoTool creates the pokemon_info tool over finder.
func NewPokemonInfoTool(finder CreatureFinder) *PokemonInfoTool {
	return &PokemonInfoTool{finder: finder}
}

// Declaration implements Tool.
func (t *PokemonInfoTool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        PokemonInfoToolName,
		Description: "get every pokemon related information, return in JSON format",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				initCharacterArg: {
					Type:        genai.TypeString,
					Description: "The initial character to filter Pokemon names",
				},
			},
			Required: []string{initCharacterArg},
		},
	}
}

// Call implements Tool.
func (t *PokemonInfoTool) Call(ctx context.Context, args map[string]any) (map[string]any, error) {
	raw, _ := args[initCharacterArg].(string)
	initial := strings.TrimSpace(raw)
	if initial == "" {
		return nil, fmt.Errorf("missing %s argument", initCharacterArg)
	}
	initial = string([]rune(initial)[:1])

	entries, err := t.finder.NamesStartingWith(ctx, initial)
	if err != nil {
		return nil, fmt.Errorf("look up creatures: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	if len(names) == 0 {
		return map[string]any{
			"result": fmt.Sprintf("No Pokemon found starting with '%s'", initial),
			"names":  names,
		}, nil
	}
	return map[string]any{
		"result": fmt.Sprintf("Pokemon starting with '%s':\n%s", initial, strings.Join(names, "\n")),
		"names":  names,
	}, nil
}
