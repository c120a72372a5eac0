package api

import (
	"net/http"
)

// RollHandler handles GET /gacha/roll
func (h *HandlerProvider) RollHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Gacha.Roll(r.Context(), caller)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"rarity":     res.Rarity.String(),
		"cardTypeId": res.CardTypeID,
	})
}

type drawRequest struct {
	CardTypeID uint32 `json:"cardTypeId"`
}

// DrawHandler handles POST /gacha/draw
func (h *HandlerProvider) DrawHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req drawRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := h.svc.Gacha.Draw(r.Context(), caller, req.CardTypeID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, cardJSON(card))
}

// PurchasePackHandler handles POST /gacha/packs
func (h *HandlerProvider) PurchasePackHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cards, err := h.svc.Gacha.PurchasePack(r.Context(), caller)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"cards": cardsJSON(cards)})
}
