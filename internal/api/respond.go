package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/repos/cards"
	"github.com/Patrick0307/404-ZOO/internal/repos/decks"
	"github.com/Patrick0307/404-ZOO/internal/repos/gameconfig"
	"github.com/Patrick0307/404-ZOO/internal/repos/listings"
	"github.com/Patrick0307/404-ZOO/internal/repos/players"
	"github.com/Patrick0307/404-ZOO/internal/repos/templates"
)

// CallerHeader carries the pre-verified 32-byte caller identity in hex.
// Verification happens at the edge; the core only compares identities.
const CallerHeader = "X-Caller-Key"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain and repo errors onto HTTP statuses:
// validation 400, authorization 403, state/arithmetic 409, missing
// records 404, anything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var de *game.Error
	if errors.As(err, &de) {
		status := http.StatusConflict

		switch de.Kind {
		case game.KindValidation:
			status = http.StatusBadRequest
		case game.KindAuthorization:
			status = http.StatusForbidden
		}

		writeJSON(w, status, map[string]string{"error": de.Msg, "code": de.Code})

		return
	}

	switch {
	case errors.Is(err, players.ErrPlayerNotFound),
		errors.Is(err, cards.ErrCardNotFound),
		errors.Is(err, templates.ErrTemplateNotFound),
		errors.Is(err, decks.ErrDeckNotFound),
		errors.Is(err, listings.ErrListingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gameconfig.ErrNotInitialized):
		writeError(w, http.StatusConflict, gameconfig.ErrNotInitialized.Error())
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func callerFromRequest(r *http.Request) (game.Identity, error) {
	raw := r.Header.Get(CallerHeader)
	if raw == "" {
		return game.Identity{}, fmt.Errorf("missing %s header", CallerHeader)
	}

	return game.ParseIdentity(raw)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
