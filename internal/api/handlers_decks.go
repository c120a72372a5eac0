package api

import (
	"net/http"
	"strconv"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/go-chi/chi/v5"
)

func slotFromPath(r *http.Request) (uint8, error) {
	slot, err := strconv.ParseUint(chi.URLParam(r, "slot"), 10, 8)
	if err != nil {
		return 0, err
	}

	return uint8(slot), nil
}

type saveDeckRequest struct {
	Name  string   `json:"name"`
	Cards []string `json:"cards"`
}

// SaveDeckHandler handles PUT /decks/{slot}
func (h *HandlerProvider) SaveDeckHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slot, err := slotFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slot in path")
		return
	}

	var req saveDeckRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	refs := make([]game.CardRef, 0, len(req.Cards))
	for _, raw := range req.Cards {
		ref, err := game.ParseCardRef(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid card ref")
			return
		}

		refs = append(refs, ref)
	}

	err = h.svc.Decks.Save(r.Context(), caller, slot, req.Name, refs)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteDeckHandler handles DELETE /decks/{slot}
func (h *HandlerProvider) DeleteDeckHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slot, err := slotFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slot in path")
		return
	}

	err = h.svc.Decks.Delete(r.Context(), caller, slot)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetDeckHandler handles GET /players/{owner}/decks/{slot}
func (h *HandlerProvider) GetDeckHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid owner in path")
		return
	}

	slot, err := slotFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slot in path")
		return
	}

	deck, err := h.svc.Decks.Get(r.Context(), owner, slot)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deckJSON(deck))
}
