package api

import (
	"net/http"
	"strconv"

	"github.com/Patrick0307/404-ZOO/internal/draw"
	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/services/admin"
	"github.com/go-chi/chi/v5"
)

type initializeRequest struct {
	PackPrice     int64  `json:"packPrice"`
	PackCardCount int    `json:"packCardCount"`
	ExchangeRate  int64  `json:"exchangeRate"`
	TicketPrice   int64  `json:"ticketPrice"`
	CommonPct     *uint8 `json:"commonPct"`
	RarePct       *uint8 `json:"rarePct"`
	LegendaryPct  *uint8 `json:"legendaryPct"`
}

// InitializeHandler handles POST /admin/initialize
func (h *HandlerProvider) InitializeHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req initializeRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bands := draw.DefaultBands
	if req.CommonPct != nil || req.RarePct != nil || req.LegendaryPct != nil {
		if req.CommonPct == nil || req.RarePct == nil || req.LegendaryPct == nil {
			writeError(w, http.StatusBadRequest, "rarity bands must be set together")
			return
		}

		bands = draw.Bands{
			CommonPct:    *req.CommonPct,
			RarePct:      *req.RarePct,
			LegendaryPct: *req.LegendaryPct,
		}
	}

	err = h.svc.Admin.Initialize(r.Context(), caller, admin.InitParams{
		PackPrice:     req.PackPrice,
		PackCardCount: req.PackCardCount,
		ExchangeRate:  req.ExchangeRate,
		TicketPrice:   req.TicketPrice,
		Bands:         bands,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

type addCreatorRequest struct {
	Creator string `json:"creator"`
}

// AddCreatorHandler handles POST /admin/creators
func (h *HandlerProvider) AddCreatorHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req addCreatorRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	creator, err := game.ParseIdentity(req.Creator)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid creator key")
		return
	}

	err = h.svc.Admin.AddCardCreator(r.Context(), caller, creator)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createTemplateRequest struct {
	CardTypeID  uint32 `json:"cardTypeId"`
	Name        string `json:"name"`
	Trait       uint8  `json:"trait"`
	Rarity      uint8  `json:"rarity"`
	MinAttack   uint16 `json:"minAttack"`
	MaxAttack   uint16 `json:"maxAttack"`
	MinHealth   uint16 `json:"minHealth"`
	MaxHealth   uint16 `json:"maxHealth"`
	Description string `json:"description"`
	ImageURI    string `json:"imageUri"`
}

// CreateTemplateHandler handles POST /admin/templates
func (h *HandlerProvider) CreateTemplateHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createTemplateRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trait, err := game.ParseTrait(req.Trait)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	rarity, err := game.ParseRarity(req.Rarity)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	t := game.Template{
		CardTypeID:  req.CardTypeID,
		Name:        req.Name,
		Trait:       trait,
		Rarity:      rarity,
		MinAttack:   req.MinAttack,
		MaxAttack:   req.MaxAttack,
		MinHealth:   req.MinHealth,
		MaxHealth:   req.MaxHealth,
		Description: req.Description,
		ImageURI:    req.ImageURI,
	}

	err = h.svc.Admin.CreateTemplate(r.Context(), caller, t)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"cardTypeId": req.CardTypeID})
}

type updatePoolRequest struct {
	CardTypeIDs []uint32 `json:"cardTypeIds"`
}

// UpdatePoolHandler handles POST /admin/pools/{rarity}
func (h *HandlerProvider) UpdatePoolHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rarityDisc, err := strconv.ParseUint(chi.URLParam(r, "rarity"), 10, 8)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rarity in path")
		return
	}

	var req updatePoolRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.Admin.UpdateRarityPool(r.Context(), caller, uint8(rarityDisc), req.CardTypeIDs)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type addTicketsRequest struct {
	Player string `json:"player"`
	Amount int64  `json:"amount"`
}

// AddTicketsHandler handles POST /admin/tickets
func (h *HandlerProvider) AddTicketsHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req addTicketsRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	player, err := game.ParseIdentity(req.Player)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player key")
		return
	}

	err = h.svc.Admin.AddTickets(r.Context(), caller, player, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type recordMatchRequest struct {
	Winner string `json:"winner"`
	Loser  string `json:"loser"`
}

// RecordMatchHandler handles POST /admin/matches
func (h *HandlerProvider) RecordMatchHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req recordMatchRequest
	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	winner, err := game.ParseIdentity(req.Winner)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid winner key")
		return
	}

	loser, err := game.ParseIdentity(req.Loser)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid loser key")
		return
	}

	res, err := h.svc.Match.RecordMatch(r.Context(), caller, winner, loser)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"trophyGain":     res.TrophyGain,
		"winnerTrophies": res.WinnerTrophies,
		"winnerStreak":   res.WinnerStreak,
		"loserTrophies":  res.LoserTrophies,
	})
}
