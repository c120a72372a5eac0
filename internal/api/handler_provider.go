package api

import (
	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/services/admin"
	"github.com/Patrick0307/404-ZOO/internal/services/decks"
	"github.com/Patrick0307/404-ZOO/internal/services/economy"
	"github.com/Patrick0307/404-ZOO/internal/services/gacha"
	"github.com/Patrick0307/404-ZOO/internal/services/market"
	"github.com/Patrick0307/404-ZOO/internal/services/match"
)

// Services bundles everything the HTTP layer dispatches to.
type Services struct {
	Admin   *admin.Service
	Economy *economy.Service
	Gacha   *gacha.Service
	Market  *market.Service
	Match   *match.Service
	Decks   *decks.Service
}

// HandlerProvider wraps the game services and exposes HTTP handlers.
type HandlerProvider struct {
	svc Services
}

// NewHandler returns a new Handler provider.
func NewHandler(svc Services) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Response shapes ---

func profileJSON(p game.Profile) map[string]any {
	return map[string]any{
		"owner":          p.Owner.String(),
		"username":       p.Username,
		"starterClaimed": p.StarterClaimed,
		"tickets":        p.Tickets,
		"currency":       p.Currency,
		"trophies":       p.Trophies,
		"totalWins":      p.TotalWins,
		"totalLosses":    p.TotalLosses,
		"winStreak":      p.WinStreak,
	}
}

func cardJSON(c game.Card) map[string]any {
	return map[string]any{
		"ref":        c.Ref.String(),
		"cardTypeId": c.CardTypeID,
		"attack":     c.Attack,
		"health":     c.Health,
		"owner":      c.Owner.String(),
		"custody":    c.Custody.String(),
	}
}

func cardsJSON(cards []game.Card) []map[string]any {
	out := make([]map[string]any, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardJSON(c))
	}

	return out
}

func listingJSON(l game.Listing) map[string]any {
	return map[string]any{
		"seller":    l.Seller.String(),
		"card":      l.Card.String(),
		"price":     l.Price,
		"createdAt": l.CreatedAt,
	}
}

func deckJSON(d game.Deck) map[string]any {
	refs := make([]string, 0, len(d.Cards))
	for _, ref := range d.Cards {
		refs = append(refs, ref.String())
	}

	return map[string]any{
		"owner": d.Owner.String(),
		"slot":  d.Slot,
		"name":  d.Name,
		"cards": refs,
	}
}
