package economy

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/infra/pgtestutil"
)

func ident(b byte) game.Identity {
	var id game.Identity
	id[0] = b

	return id
}

type transferCall struct {
	from, to game.Identity
	amount   int64
}

// fakeToken records transfers and can be told to fail.
type fakeToken struct {
	calls []transferCall
	err   error
}

func (f *fakeToken) Transfer(_ context.Context, from, to game.Identity, amount int64) error {
	if f.err != nil {
		return f.err
	}

	f.calls = append(f.calls, transferCall{from: from, to: to, amount: amount})

	return nil
}

func seedConfig(t *testing.T, db *sql.DB, exchangeRate, ticketPrice int64) {
	t.Helper()

	auth := ident(0xaa)

	_, err := db.Exec(`
		INSERT INTO game_config
			(id, authority, pack_price, pack_card_count, exchange_rate,
			 ticket_price, common_pct, rare_pct, legendary_pct)
		VALUES (1, $1, 500, 5, $2, $3, 70, 27, 3)
	`, auth[:], exchangeRate, ticketPrice)
	if err != nil {
		t.Fatalf("seed config: %v", err)
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	svc := New(db, &fakeToken{}, ident(0xcc))
	alice := ident(1)

	if err := svc.Register(t.Context(), alice, "alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	p, err := svc.GetProfile(t.Context(), alice)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.Username != "alice" || p.Tickets != 0 || p.Currency != 0 || p.StarterClaimed {
		t.Fatalf("fresh profile not zeroed: %+v", p)
	}

	if err := svc.Register(t.Context(), alice, "alice-again"); !errors.Is(err, game.ErrPlayerExists) {
		t.Fatalf("duplicate register: want ErrPlayerExists, got %v", err)
	}

	if err := svc.Register(t.Context(), ident(2), "  "); !errors.Is(err, game.ErrEmptyString) {
		t.Fatalf("blank username: want ErrEmptyString, got %v", err)
	}
}

func TestClaimStarterTickets(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	svc := New(db, &fakeToken{}, ident(0xcc))
	alice := ident(1)

	if err := svc.Register(t.Context(), alice, "alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ClaimStarterTickets(t.Context(), alice); err != nil {
		t.Fatalf("claim: %v", err)
	}

	p, err := svc.GetProfile(t.Context(), alice)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.Tickets != game.FreeStarterTickets || !p.StarterClaimed {
		t.Fatalf("after claim: %+v", p)
	}

	// one-shot: the second claim fails and grants nothing
	if err := svc.ClaimStarterTickets(t.Context(), alice); !errors.Is(err, game.ErrStarterClaimed) {
		t.Fatalf("second claim: want ErrStarterClaimed, got %v", err)
	}

	p, err = svc.GetProfile(t.Context(), alice)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.Tickets != game.FreeStarterTickets {
		t.Fatalf("tickets changed on failed claim: %d", p.Tickets)
	}
}

func TestBuyCurrency(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	token := &fakeToken{}
	treasury := ident(0xcc)
	svc := New(db, token, treasury)
	alice := ident(1)

	// rate 2x: every external base unit credits two currency
	seedConfig(t, db, 2*game.ExchangeScale, 100)

	if err := svc.Register(t.Context(), alice, "alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	credited, err := svc.BuyCurrency(t.Context(), alice, 100)
	if err != nil {
		t.Fatalf("buy currency: %v", err)
	}
	if credited != 200 {
		t.Fatalf("want 200 credited, got %d", credited)
	}

	p, err := svc.GetProfile(t.Context(), alice)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.Currency != 200 {
		t.Fatalf("want currency 200, got %d", p.Currency)
	}

	if len(token.calls) != 1 {
		t.Fatalf("want 1 transfer, got %d", len(token.calls))
	}
	call := token.calls[0]
	if call.from != alice || call.to != treasury || call.amount != 100 {
		t.Fatalf("transfer leg mismatch: %+v", call)
	}

	if _, err := svc.BuyCurrency(t.Context(), alice, 0); !errors.Is(err, game.ErrInvalidAmount) {
		t.Fatalf("zero amount: want ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.BuyCurrency(t.Context(), alice, -5); !errors.Is(err, game.ErrInvalidAmount) {
		t.Fatalf("negative amount: want ErrInvalidAmount, got %v", err)
	}
}

func TestBuyCurrency_TransferFailureRollsBack(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	token := &fakeToken{err: errors.New("rpc down")}
	svc := New(db, token, ident(0xcc))
	alice := ident(1)

	seedConfig(t, db, game.ExchangeScale, 100)

	if err := svc.Register(t.Context(), alice, "alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.BuyCurrency(t.Context(), alice, 100); err == nil {
		t.Fatal("want error when transfer leg fails")
	}

	p, err := svc.GetProfile(t.Context(), alice)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.Currency != 0 {
		t.Fatalf("credit must roll back with the transfer, got %d", p.Currency)
	}
}

func TestBuyTickets(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	token := &fakeToken{}
	svc := New(db, token, ident(0xcc))
	alice := ident(1)

	seedConfig(t, db, game.ExchangeScale, 100)

	if err := svc.Register(t.Context(), alice, "alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// broke player cannot buy
	if err := svc.BuyTickets(t.Context(), alice, 1); !errors.Is(err, game.ErrInsufficientBalance) {
		t.Fatalf("want ErrInsufficientBalance, got %v", err)
	}

	if _, err := svc.BuyCurrency(t.Context(), alice, 1000); err != nil {
		t.Fatalf("fund player: %v", err)
	}

	if err := svc.BuyTickets(t.Context(), alice, 3); err != nil {
		t.Fatalf("buy tickets: %v", err)
	}

	p, err := svc.GetProfile(t.Context(), alice)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.Tickets != 3 || p.Currency != 700 {
		t.Fatalf("after purchase: tickets %d currency %d", p.Tickets, p.Currency)
	}

	if err := svc.BuyTickets(t.Context(), alice, 0); !errors.Is(err, game.ErrInvalidAmount) {
		t.Fatalf("zero count: want ErrInvalidAmount, got %v", err)
	}
}
