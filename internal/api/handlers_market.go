package api

import (
	"net/http"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/go-chi/chi/v5"
)

func cardRefFromPath(r *http.Request) (game.CardRef, error) {
	return game.ParseCardRef(chi.URLParam(r, "card"))
}

type listCardRequest struct {
	Card  string `json:"card"`
	Price int64  `json:"price"`
}

// ListCardHandler handles POST /market/listings
func (h *HandlerProvider) ListCardHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req listCardRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := game.ParseCardRef(req.Card)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card ref")
		return
	}

	listing, err := h.svc.Market.List(r.Context(), caller, card, req.Price)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, listingJSON(listing))
}

// CancelListingHandler handles DELETE /market/listings/{card}
func (h *HandlerProvider) CancelListingHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := cardRefFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card ref in path")
		return
	}

	err = h.svc.Market.Cancel(r.Context(), caller, card)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// BuyCardHandler handles POST /market/listings/{card}/buy
func (h *HandlerProvider) BuyCardHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := cardRefFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid card ref in path")
		return
	}

	err = h.svc.Market.Buy(r.Context(), caller, card)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListingsHandler handles GET /market/listings
func (h *HandlerProvider) ListingsHandler(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.Market.Listings(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(listings))
	for _, l := range listings {
		out = append(out, listingJSON(l))
	}

	writeJSON(w, http.StatusOK, map[string]any{"listings": out})
}
