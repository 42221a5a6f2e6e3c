package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskhub/taskhub-api/internal/api/shared"
	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/platform/logger"
	"github.com/taskhub/taskhub-api/internal/platform/pokeapi"
)

// defaultPokemonPageSize is used when GET /pokemon has no limit parameter.
const defaultPokemonPageSize = 20

// CreatureClient is the read-only creature data source behind /pokemon.
type CreatureClient interface {
	List(ctx context.Context, limit, offset int) (*pokeapi.ListResponse, error)
	Details(ctx context.Context, idOrName string) (*pokeapi.Details, error)
	NamesStartingWith(ctx context.Context, initial string) ([]pokeapi.Entry, error)
}

// PokemonHandler proxies the PokeAPI
type PokemonHandler struct {
	client CreatureClient
	logger *slog.Logger
}

// NewPokemonHandler creates a new PokemonHandler
func NewPokemonHandler(client CreatureClient, logger *slog.Logger) *PokemonHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PokemonHandler")
	}

	return &PokemonHandler{
		client: client,
		logger: logger.With(slog.String("component", "pokemon_handler")),
	}
}

// List handles GET /pokemon?limit=&offset= requests
func (h *PokemonHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultPokemonPageSize)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	page, err := h.client.List(r.Context(), limit, offset)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to list Pokemon")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// Details handles GET /pokemon/{idOrName} requests
func (h *PokemonHandler) Details(w http.ResponseWriter, r *http.Request) {
	key, err := getPathParam(r, "idOrName")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	details, err := h.client.Details(r.Context(), key)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to fetch Pokemon")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, details)
}

// Search handles GET /pokemon/search?initial=x requests
func (h *PokemonHandler) Search(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	initial := strings.TrimSpace(r.URL.Query().Get("initial"))
	if initial == "" {
		err := domain.NewValidationError("initial", "is required", domain.ErrInvalidInput)
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	entries, err := h.client.NamesStartingWith(r.Context(), initial)
	if err != nil {
		respondWithServiceError(w, r, err, "Failed to search Pokemon")
		return
	}

	log.Debug("pokemon search", slog.String("initial", initial), slog.Int("matches", len(entries)))
	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}
