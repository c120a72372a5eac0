package decks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/infra/pgtestutil"
	"github.com/Patrick0307/404-ZOO/internal/repos/decks"
)

func ident(b byte) game.Identity {
	var id game.Identity
	id[0] = b

	return id
}

func ref(b byte) game.CardRef {
	var r game.CardRef
	r[0] = b

	return r
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

func TestDecks_UpsertRoundTrip(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	owner := ident(1)

	deck := game.Deck{
		Owner:  owner,
		Slot:   2,
		Name:   "aggro",
		Cards:  []game.CardRef{ref(1), ref(2), ref(3)},
		Active: true,
	}

	withTx(t, db, func(tx *sql.Tx) {
		if err := repo.Upsert(tx, deck); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	})

	got, err := repo.Get(t.Context(), owner, 2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "aggro" || !got.Active || len(got.Cards) != 3 {
		t.Fatalf("deck mismatch: %+v", got)
	}
	for i, want := range deck.Cards {
		if got.Cards[i] != want {
			t.Fatalf("card order lost at %d: %+v", i, got.Cards)
		}
	}
}

func TestDecks_UpsertReplaces(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	owner := ident(1)

	withTx(t, db, func(tx *sql.Tx) {
		err := repo.Upsert(tx, game.Deck{
			Owner: owner, Slot: 0, Name: "old", Cards: []game.CardRef{ref(1)}, Active: true,
		})
		if err != nil {
			t.Fatalf("first upsert: %v", err)
		}
	})

	withTx(t, db, func(tx *sql.Tx) {
		err := repo.Upsert(tx, game.Deck{
			Owner: owner, Slot: 0, Name: "new", Cards: []game.CardRef{ref(2), ref(3)}, Active: true,
		})
		if err != nil {
			t.Fatalf("second upsert: %v", err)
		}
	})

	got, err := repo.Get(t.Context(), owner, 0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "new" || len(got.Cards) != 2 || got.Cards[0] != ref(2) {
		t.Fatalf("deck not replaced: %+v", got)
	}
}

func TestDecks_ClearKeepsSlot(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	owner := ident(1)

	withTx(t, db, func(tx *sql.Tx) {
		err := repo.Upsert(tx, game.Deck{
			Owner: owner, Slot: 4, Name: "control", Cards: []game.CardRef{ref(1)}, Active: true,
		})
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
	})

	withTx(t, db, func(tx *sql.Tx) {
		if err := repo.Clear(tx, owner, 4); err != nil {
			t.Fatalf("clear: %v", err)
		}
	})

	got, err := repo.Get(t.Context(), owner, 4)
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if got.Active || got.Name != "" || len(got.Cards) != 0 {
		t.Fatalf("deck not cleared: %+v", got)
	}

	// the slot stays reusable
	withTx(t, db, func(tx *sql.Tx) {
		err := repo.Upsert(tx, game.Deck{
			Owner: owner, Slot: 4, Name: "reborn", Cards: nil, Active: true,
		})
		if err != nil {
			t.Fatalf("reuse slot: %v", err)
		}
	})
}

func TestDecks_Missing(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	if _, err := repo.Get(t.Context(), ident(9), 0); !errors.Is(err, decks.ErrDeckNotFound) {
		t.Fatalf("want ErrDeckNotFound, got %v", err)
	}

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := repo.Clear(tx, ident(9), 0); !errors.Is(err, decks.ErrDeckNotFound) {
		t.Fatalf("want ErrDeckNotFound on clear, got %v", err)
	}
}
