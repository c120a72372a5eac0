package cards

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/infra/pgtestutil"
	"github.com/Patrick0307/404-ZOO/internal/repos/cards"
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

func seedTemplate(t *testing.T, db *sql.DB, id uint32) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO card_templates
			(card_type_id, name, trait, rarity, min_attack, max_attack,
			 min_health, max_health, description, image_uri)
		VALUES ($1, 'seed', 0, 0, 1, 100, 1, 100, 'seed', '')
	`, int64(id))
	if err != nil {
		t.Fatalf("seed template %d: %v", id, err)
	}
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

func TestCards_InsertAndGet(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	seedTemplate(t, db, 7)

	want := game.Card{
		Ref:        ref(1),
		CardTypeID: 7,
		Attack:     15,
		Health:     35,
		Owner:      ident(1),
		Custody:    game.CustodyOwner,
	}

	withTx(t, db, func(tx *sql.Tx) {
		if err := repo.Insert(tx, want); err != nil {
			t.Fatalf("insert: %v", err)
		}
	})

	got, err := repo.Get(t.Context(), want.Ref)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != want {
		t.Fatalf("card mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestCards_GetMissing(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	_, err := repo.Get(t.Context(), ref(99))
	if !errors.Is(err, cards.ErrCardNotFound) {
		t.Fatalf("want ErrCardNotFound, got %v", err)
	}
}

func TestCards_OwnerAndCustodyTransitions(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	seedTemplate(t, db, 7)

	seller := ident(1)
	buyer := ident(2)
	cardRef := ref(3)

	withTx(t, db, func(tx *sql.Tx) {
		err := repo.Insert(tx, game.Card{
			Ref: cardRef, CardTypeID: 7, Attack: 1, Health: 1,
			Owner: seller, Custody: game.CustodyOwner,
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	})

	// list: card moves to escrow, owner unchanged
	withTx(t, db, func(tx *sql.Tx) {
		if err := repo.SetCustody(tx, cardRef, game.CustodyEscrow); err != nil {
			t.Fatalf("set custody: %v", err)
		}
	})

	got, err := repo.Get(t.Context(), cardRef)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Custody != game.CustodyEscrow || got.Owner != seller {
		t.Fatalf("after escrow: %+v", got)
	}

	// sale: owner and custody resolve together
	withTx(t, db, func(tx *sql.Tx) {
		if err := repo.SetOwner(tx, cardRef, buyer); err != nil {
			t.Fatalf("set owner: %v", err)
		}
		if err := repo.SetCustody(tx, cardRef, game.CustodyOwner); err != nil {
			t.Fatalf("set custody: %v", err)
		}
	})

	got, err = repo.Get(t.Context(), cardRef)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Owner != buyer || got.Custody != game.CustodyOwner {
		t.Fatalf("after sale: %+v", got)
	}
}

func TestCards_ListByOwner(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	seedTemplate(t, db, 7)

	alice := ident(1)
	bob := ident(2)

	withTx(t, db, func(tx *sql.Tx) {
		for i, owner := range []game.Identity{alice, alice, bob} {
			err := repo.Insert(tx, game.Card{
				Ref: ref(byte(10 + i)), CardTypeID: 7, Attack: 1, Health: 1,
				Owner: owner, Custody: game.CustodyOwner,
			})
			if err != nil {
				t.Fatalf("insert %d: %v", i, err)
			}
		}
	})

	mine, err := repo.ListByOwner(t.Context(), alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("want 2 cards for alice, got %d", len(mine))
	}
	for _, c := range mine {
		if c.Owner != alice {
			t.Fatalf("foreign card in listing: %+v", c)
		}
	}

	none, err := repo.ListByOwner(t.Context(), ident(9))
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("want no cards, got %d", len(none))
	}
}
