package api

import (
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/taskhub/taskhub-api/internal/api/shared"
	"github.com/taskhub/taskhub-api/internal/generation"
	"github.com/taskhub/taskhub-api/internal/platform/logger"
)

// promptField is the form and JSON field carrying the user's prompt.
const promptField = "prompt"

// AgentHandler forwards free-text prompts to the language model agent
type AgentHandler struct {
	agent  generation.Agent
	logger *slog.Logger
}

// NewAgentHandler creates a new AgentHandler
func NewAgentHandler(agent generation.Agent, logger *slog.Logger) *AgentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AgentHandler")
	}

	return &AgentHandler{
		agent:  agent,
		logger: logger.With(slog.String("component", "agent_handler")),
	}
}

// Query handles POST /ai/query requests.
// The prompt is read from a JSON body or from form data.
// The model's JSON answer is written verbatim.
func (h *AgentHandler) Query(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	prompt, ok := h.readPrompt(w, r)
	if !ok {
		return
	}

	answer, err := h.agent.Query(r.Context(), prompt)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to process prompt")
		return
	}

	log.Debug("agent answered", slog.Int("prompt_length", len(prompt)), slog.Int("answer_length", len(answer)))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(answer)); err != nil {
		log.Error("failed to write agent response", slog.String("error", err.Error()))
	}
}

func (h *AgentHandler) readPrompt(w http.ResponseWriter, r *http.Request) (string, bool) {
	var prompt string

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req AgentQueryRequest
		if err := shared.DecodeJSON(w, r, &req); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
			return "", false
		}
		prompt = req.Prompt
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, shared.MaxRequestBodyBytes)
		if err := r.ParseForm(); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
			return "", false
		}
		prompt = r.PostFormValue(promptField)
	}

	if strings.TrimSpace(prompt) == "" {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			GetSafeErrorMessage(generation.ErrEmptyPrompt), generation.ErrEmptyPrompt)
		return "", false
	}
	return prompt, true
}
