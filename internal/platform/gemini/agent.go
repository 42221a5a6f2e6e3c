package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/taskhub/taskhub-api/internal/config"
	"github.com/taskhub/taskhub-api/internal/generation"
)

// SystemPrompt instructs the model to answer with bare JSON.
const SystemPrompt = `You are a helpful assistant.
Your response MUST be a single valid JSON object, and nothing else.
Do NOT use Markdown formatting (no triple backticks, no ` + "```json" + `, etc).
Do NOT include any explanations, comments, or text outside the JSON.
If you need to use tools, use the tool registry as needed.
Return ONLY the JSON object, with no extra formatting or text.`

// contentGenerator is the subset of genai.Models used by the agent.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Agent implements generation.Agent on top of Gemini function calling.
type Agent struct {
	// logger is used for structured logging
	logger *slog.Logger

	// models performs the actual API calls
	models contentGenerator

	// model is the name of the Gemini model to use
	model string

	// maxToolCalls bounds how many tool invocations one query may trigger
	maxToolCalls int

	// tools are indexed by function name
	tools map[string]Tool

	// genConfig is shared by every request
	genConfig *genai.GenerateContentConfig
}

var _ generation.Agent = (*Agent)(nil)

// NewAgent creates a Gemini-backed Agent.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name and tool bound
//   - tools: Local functions the model may call
//
// Returns:
//   - A ready Agent, or an error wrapping generation.ErrInvalidConfig
func NewAgent(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig, tools ...Tool) (*Agent, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newAgent(logger, client.Models, cfg.ModelName, cfg.MaxToolCalls, tools...)
}

func newAgent(
	logger *slog.Logger,
	models contentGenerator,
	model string,
	maxToolCalls int,
	tools ...Tool,
) (*Agent, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if models == nil {
		return nil, fmt.Errorf("%w: model client cannot be nil", generation.ErrInvalidConfig)
	}
	if model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if maxToolCalls <= 0 {
		return nil, fmt.Errorf("%w: max tool calls must be positive", generation.ErrInvalidConfig)
	}

	byName := make(map[string]Tool, len(tools))
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		decl := tool.Declaration()
		if _, dup := byName[decl.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate tool %q", generation.ErrInvalidConfig, decl.Name)
		}
		byName[decl.Name] = tool
		decls = append(decls, decl)
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
	}
	if len(decls) > 0 {
		genConfig.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	return &Agent{
		logger:       logger.With(slog.String("component", "gemini_agent")),
		models:       models,
		model:        model,
		maxToolCalls: maxToolCalls,
		tools:        byName,
		genConfig:    genConfig,
	}, nil
}

// Query sends prompt to the model and runs the function-calling loop until
// the model produces a text answer.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - prompt: The user's free-text question
//
// Returns:
//   - The model's final answer with any Markdown code fence removed
//   - An error from the generation package describing the failure
func (a *Agent) Query(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", generation.ErrEmptyPrompt
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	toolCalls := 0

	for round := 1; ; round++ {
		a.logger.DebugContext(ctx, "calling Gemini",
			slog.Int("round", round),
			slog.Int("tool_calls", toolCalls))

		resp, err := a.models.GenerateContent(ctx, a.model, contents, a.genConfig)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", fmt.Errorf("%w: %w", generation.ErrTransientFailure, ctxErr)
			}
			a.logger.ErrorContext(ctx, "Gemini API call failed",
				slog.Int("round", round),
				slog.String("error", err.Error()))
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}

		candidate, err := firstCandidate(resp)
		if err != nil {
			a.logger.WarnContext(ctx, "unusable Gemini response",
				slog.Int("round", round),
				slog.String("error", err.Error()))
			return "", err
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			answer := stripCodeFence(resp.Text())
			if answer == "" {
				return "", fmt.Errorf("%w: empty answer", generation.ErrInvalidResponse)
			}
			a.logger.InfoContext(ctx, "Gemini answered",
				slog.Int("rounds", round),
				slog.Int("tool_calls", toolCalls),
				slog.Int("answer_length", len(answer)))
			return answer, nil
		}

		toolCalls += len(calls)
		if toolCalls > a.maxToolCalls {
			a.logger.WarnContext(ctx, "tool call limit exceeded",
				slog.Int("limit", a.maxToolCalls),
				slog.Int("requested", toolCalls))
			return "", fmt.Errorf("%w: %d > %d", generation.ErrToolLimitExceeded, toolCalls, a.maxToolCalls)
		}

		contents = append(contents, candidate.Content)
		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, a.runTool(ctx, call)))
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
	}
}

// runTool executes one function call. Failures are reported back to the
// model as an error payload so it can recover or explain.
func (a *Agent) runTool(ctx context.Context, call *genai.FunctionCall) map[string]any {
	tool, ok := a.tools[call.Name]
	if !ok {
		a.logger.WarnContext(ctx, "model requested unknown tool", slog.String("tool", call.Name))
		return map[string]any{"error": fmt.Sprintf("unknown tool %q", call.Name)}
	}

	out, err := tool.Call(ctx, call.Args)
	if err != nil {
		a.logger.WarnContext(ctx, "tool call failed",
			slog.String("tool", call.Name),
			slog.String("error", err.Error()))
		return map[string]any{"error": err.Error()}
	}

	a.logger.DebugContext(ctx, "tool call succeeded", slog.String("tool", call.Name))
	return out
}

func firstCandidate(resp *genai.GenerateContentResponse) (*genai.Candidate, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", generation.ErrInvalidResponse)
	}

	c := resp.Candidates[0]
	if c.FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, c.FinishReason)
	}
	if c.Content == nil {
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}
	return c, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
