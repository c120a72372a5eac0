package pools

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/infra/pgtestutil"
)

func seedTemplates(t *testing.T, db *sql.DB, ids ...uint32) {
	t.Helper()

	for _, id := range ids {
		_, err := db.Exec(`
			INSERT INTO card_templates
				(card_type_id, name, trait, rarity, min_attack, max_attack,
				 min_health, max_health, description, image_uri)
			VALUES ($1, 'seed', 0, 0, 1, 2, 3, 4, 'seed', '')
		`, int64(id))
		if err != nil {
			t.Fatalf("seed template %d: %v", id, err)
		}
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

func TestPools_AppendKeepsOrder(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	seedTemplates(t, db, 10, 20, 30)

	withTx(t, db, func(tx *sql.Tx) {
		added, err := repo.Append(tx, game.RarityCommon, []uint32{20, 10})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if added != 2 {
			t.Fatalf("want 2 added, got %d", added)
		}
	})

	withTx(t, db, func(tx *sql.Tx) {
		added, err := repo.Append(tx, game.RarityCommon, []uint32{30})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if added != 1 {
			t.Fatalf("want 1 added, got %d", added)
		}
	})

	members, err := repo.Members(t.Context(), game.RarityCommon)
	if err != nil {
		t.Fatalf("members: %v", err)
	}

	want := []uint32{20, 10, 30}
	if len(members) != len(want) {
		t.Fatalf("want %v, got %v", want, members)
	}
	for i := range want {
		if members[i] != want[i] {
			t.Fatalf("insertion order lost: want %v, got %v", want, members)
		}
	}
}

func TestPools_AppendDeduplicates(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	seedTemplates(t, db, 10, 20)

	withTx(t, db, func(tx *sql.Tx) {
		added, err := repo.Append(tx, game.RarityRare, []uint32{10, 20})
		if err != nil {
			t.Fatalf("first append: %v", err)
		}
		if added != 2 {
			t.Fatalf("want 2 added, got %d", added)
		}
	})

	withTx(t, db, func(tx *sql.Tx) {
		added, err := repo.Append(tx, game.RarityRare, []uint32{10, 20})
		if err != nil {
			t.Fatalf("re-append: %v", err)
		}
		if added != 0 {
			t.Fatalf("re-append must add nothing, got %d", added)
		}
	})

	members, err := repo.Members(t.Context(), game.RarityRare)
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("want 2 members, got %v", members)
	}
}

func TestPools_RaritiesAreDisjoint(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)
	seedTemplates(t, db, 10, 20)

	withTx(t, db, func(tx *sql.Tx) {
		if _, err := repo.Append(tx, game.RarityCommon, []uint32{10}); err != nil {
			t.Fatalf("append common: %v", err)
		}
		if _, err := repo.Append(tx, game.RarityLegendary, []uint32{20}); err != nil {
			t.Fatalf("append legendary: %v", err)
		}
	})

	common, err := repo.Members(t.Context(), game.RarityCommon)
	if err != nil {
		t.Fatalf("members common: %v", err)
	}
	legendary, err := repo.Members(t.Context(), game.RarityLegendary)
	if err != nil {
		t.Fatalf("members legendary: %v", err)
	}

	if len(common) != 1 || common[0] != 10 {
		t.Fatalf("common pool: %v", common)
	}
	if len(legendary) != 1 || legendary[0] != 20 {
		t.Fatalf("legendary pool: %v", legendary)
	}

	empty, err := repo.Members(t.Context(), game.RarityRare)
	if err != nil {
		t.Fatalf("members rare: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("rare pool must be empty, got %v", empty)
	}
}
