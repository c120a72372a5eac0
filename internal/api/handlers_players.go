package api

import (
	"net/http"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/go-chi/chi/v5"
)

func ownerFromPath(r *http.Request) (game.Identity, error) {
	return game.ParseIdentity(chi.URLParam(r, "owner"))
}

type registerRequest struct {
	Username string `json:"username"`
}

// RegisterHandler handles POST /players
func (h *HandlerProvider) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req registerRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.Economy.Register(r.Context(), caller, req.Username)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// GetProfileHandler handles GET /players/{owner}
func (h *HandlerProvider) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid owner in path")
		return
	}

	p, err := h.svc.Economy.GetProfile(r.Context(), owner)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileJSON(p))
}

// ClaimStarterHandler handles POST /players/starter-tickets
func (h *HandlerProvider) ClaimStarterHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.Economy.ClaimStarterTickets(r.Context(), caller)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tickets": game.FreeStarterTickets})
}

type buyCurrencyRequest struct {
	Amount int64 `json:"amount"`
}

// BuyCurrencyHandler handles POST /players/currency
func (h *HandlerProvider) BuyCurrencyHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req buyCurrencyRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	credited, err := h.svc.Economy.BuyCurrency(r.Context(), caller, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"credited": credited})
}

type buyTicketsRequest struct {
	Count int64 `json:"count"`
}

// BuyTicketsHandler handles POST /players/tickets
func (h *HandlerProvider) BuyTicketsHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req buyTicketsRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.Economy.BuyTickets(r.Context(), caller, req.Count)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListCardsHandler handles GET /players/{owner}/cards
func (h *HandlerProvider) ListCardsHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid owner in path")
		return
	}

	cards, err := h.svc.Gacha.ListCards(r.Context(), owner)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cards": cardsJSON(cards)})
}
