package api

import (
	"net/http"

	"github.com/Patrick0307/404-ZOO/internal/feed"
	"github.com/go-chi/chi/v5"
)

// NewRouter constructs a chi router with all API endpoints registered.
// The feed hub may be nil; the /ws route is only mounted when one is given.
func NewRouter(svc Services, hub *feed.Hub) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if hub != nil {
		r.Get("/ws", hub.ServeHTTP)
	}

	r.Route("/admin", func(r chi.Router) {
		r.Post("/initialize", h.InitializeHandler)
		r.Post("/creators", h.AddCreatorHandler)
		r.Post("/templates", h.CreateTemplateHandler)
		r.Post("/pools/{rarity}", h.UpdatePoolHandler)
		r.Post("/tickets", h.AddTicketsHandler)
		r.Post("/matches", h.RecordMatchHandler)
	})

	r.Route("/players", func(r chi.Router) {
		r.Post("/", h.RegisterHandler)
		r.Post("/starter-tickets", h.ClaimStarterHandler)
		r.Post("/currency", h.BuyCurrencyHandler)
		r.Post("/tickets", h.BuyTicketsHandler)
		r.Get("/{owner}", h.GetProfileHandler)
		r.Get("/{owner}/cards", h.ListCardsHandler)
		r.Get("/{owner}/decks/{slot}", h.GetDeckHandler)
	})

	r.Route("/gacha", func(r chi.Router) {
		r.Get("/roll", h.RollHandler)
		r.Post("/draw", h.DrawHandler)
		r.Post("/packs", h.PurchasePackHandler)
	})

	r.Route("/decks", func(r chi.Router) {
		r.Put("/{slot}", h.SaveDeckHandler)
		r.Delete("/{slot}", h.DeleteDeckHandler)
	})

	r.Route("/market", func(r chi.Router) {
		r.Get("/listings", h.ListingsHandler)
		r.Post("/listings", h.ListCardHandler)
		r.Post("/listings/{card}/buy", h.BuyCardHandler)
		r.Delete("/listings/{card}", h.CancelListingHandler)
	})

	return r
}
