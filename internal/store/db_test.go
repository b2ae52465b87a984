package store

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() {
		if cErr := db.Close(); cErr != nil {
			t.Logf("db.Close error: %v", cErr)
		}
	})
	return db
}

func TestCollectionRepo_GetSet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCollectionRepo(db)

	// Unwritten collection reads as empty
	value, err := repo.Get("videos", "guest")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "" {
		t.Errorf("expected empty value, got %q", value)
	}

	if err := repo.Set("videos", "guest", `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err = repo.Get("videos", "guest")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != `[{"id":"a"}]` {
		t.Errorf("Get = %q, want stored document", value)
	}

	// Set is an upsert, not an append
	if err := repo.Set("videos", "guest", `[]`); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}
	value, _ = repo.Get("videos", "guest")
	if value != `[]` {
		t.Errorf("Get after upsert = %q, want []", value)
	}
}

func TestCollectionRepo_ScopeIsolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCollectionRepo(db)

	if err := repo.Set("favorites", "alice", `["v1"]`); err != nil {
		t.Fatalf("Set alice: %v", err)
	}
	if err := repo.Set("favorites", "bob", `["v2"]`); err != nil {
		t.Fatalf("Set bob: %v", err)
	}

	got, _ := repo.Get("favorites", "alice")
	if got != `["v1"]` {
		t.Errorf("alice favorites = %q, want [\"v1\"]", got)
	}
	got, _ = repo.Get("favorites", "bob")
	if got != `["v2"]` {
		t.Errorf("bob favorites = %q, want [\"v2\"]", got)
	}
}

func TestCollectionRepo_DeleteScope(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCollectionRepo(db)

	collections := []string{"videos", "favorites", "notes"}
	for _, c := range collections {
		if err := repo.Set(c, "alice", "[]"); err != nil {
			t.Fatalf("Set %s: %v", c, err)
		}
	}
	if err := repo.Set("videos", "bob", `["keep"]`); err != nil {
		t.Fatalf("Set bob: %v", err)
	}

	if err := repo.DeleteScope("alice"); err != nil {
		t.Fatalf("DeleteScope: %v", err)
	}

	for _, c := range collections {
		if got, _ := repo.Get(c, "alice"); got != "" {
			t.Errorf("alice %s survived scope delete: %q", c, got)
		}
	}
	if got, _ := repo.Get("videos", "bob"); got != `["keep"]` {
		t.Errorf("bob videos affected by alice scope delete: %q", got)
	}
}
