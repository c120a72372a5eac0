package gameconfig

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/infra/pgtestutil"
	"github.com/Patrick0307/404-ZOO/internal/repos/gameconfig"
)

func ident(b byte) game.Identity {
	var id game.Identity
	id[0] = b

	return id
}

func withTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	fn(tx)

	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestConfigs_CreateOnce(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	if _, err := repo.Get(t.Context()); !errors.Is(err, gameconfig.ErrNotInitialized) {
		t.Fatalf("want ErrNotInitialized before create, got %v", err)
	}

	cfg := game.Config{
		Authority:     ident(1),
		PackPrice:     500,
		PackCardCount: 5,
		ExchangeRate:  1_000_000_000,
		TicketPrice:   100,
		CommonPct:     70,
		RarePct:       27,
		LegendaryPct:  3,
	}

	withTx(t, db, func(tx *sql.Tx) {
		if err := repo.Create(tx, cfg); err != nil {
			t.Fatalf("create: %v", err)
		}
	})

	got, err := repo.Get(t.Context())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Authority != cfg.Authority || got.PackPrice != 500 ||
		got.PackCardCount != 5 || got.TicketPrice != 100 ||
		got.CommonPct != 70 || got.RarePct != 27 || got.LegendaryPct != 3 {
		t.Fatalf("config mismatch: %+v", got)
	}

	// singleton: a second create is rejected structurally
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := repo.Create(tx, cfg); !errors.Is(err, gameconfig.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
}

func TestConfigs_LockAndGetTx(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	withTx(t, db, func(tx *sql.Tx) {
		if _, err := repo.LockAndGetTx(tx); !errors.Is(err, gameconfig.ErrNotInitialized) {
			t.Fatalf("want ErrNotInitialized before create, got %v", err)
		}
	})

	cfg := game.Config{
		Authority:     ident(1),
		PackPrice:     500,
		PackCardCount: 5,
		ExchangeRate:  1_000_000_000,
		TicketPrice:   100,
		CommonPct:     70,
		RarePct:       27,
		LegendaryPct:  3,
	}

	withTx(t, db, func(tx *sql.Tx) {
		if err := repo.Create(tx, cfg); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := repo.AddCreator(tx, ident(2), 0); err != nil {
			t.Fatalf("add creator: %v", err)
		}
	})

	withTx(t, db, func(tx *sql.Tx) {
		got, err := repo.LockAndGetTx(tx)
		if err != nil {
			t.Fatalf("lock and get: %v", err)
		}
		if got.Authority != cfg.Authority || got.PackPrice != 500 ||
			len(got.CardCreators) != 1 || got.CardCreators[0] != ident(2) {
			t.Fatalf("config mismatch: %+v", got)
		}
	})
}

func TestConfigs_Creators(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	withTx(t, db, func(tx *sql.Tx) {
		if err := repo.Create(tx, game.Config{Authority: ident(1), PackCardCount: 5}); err != nil {
			t.Fatalf("create: %v", err)
		}
	})

	withTx(t, db, func(tx *sql.Tx) {
		if err := repo.AddCreator(tx, ident(2), 0); err != nil {
			t.Fatalf("add creator: %v", err)
		}
		if err := repo.AddCreator(tx, ident(3), 1); err != nil {
			t.Fatalf("add creator: %v", err)
		}
	})

	got, err := repo.Get(t.Context())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.CardCreators) != 2 || got.CardCreators[0] != ident(2) || got.CardCreators[1] != ident(3) {
		t.Fatalf("creators mismatch: %+v", got.CardCreators)
	}

	if !got.IsAuthorizedCreator(ident(1)) {
		t.Fatal("authority must be an authorized creator")
	}
	if !got.IsAuthorizedCreator(ident(2)) {
		t.Fatal("registered creator must be authorized")
	}
	if got.IsAuthorizedCreator(ident(9)) {
		t.Fatal("stranger must not be authorized")
	}

	// same key twice is rejected
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := repo.AddCreator(tx, ident(2), 2); !errors.Is(err, gameconfig.ErrCreatorExists) {
		t.Fatalf("want ErrCreatorExists, got %v", err)
	}
}
