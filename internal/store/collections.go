package store

import (
	"database/sql"
	"fmt"
	"time"
)

// CollectionRepo persists whole library collections as JSON documents,
// one row per collection per user scope.
type CollectionRepo struct {
	db *DB
}

func NewCollectionRepo(db *DB) *CollectionRepo {
	return &CollectionRepo{db: db}
}

func scopeKey(collection, userID string) string {
	return fmt.Sprintf("%s_%s", collection, userID)
}

// Get returns the serialized collection, or "" when it has never been written.
func (r *CollectionRepo) Get(collection, userID string) (string, error) {
	var value string
	err := r.db.Get(&value, "SELECT value FROM collections WHERE scope_key = ?", scopeKey(collection, userID))
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// Set upserts the serialized collection for the given user scope.
func (r *CollectionRepo) Set(collection, userID, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO collections (scope_key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(scope_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, scopeKey(collection, userID), value, time.Now())
	return err
}

// Delete removes a single collection for the given user scope.
func (r *CollectionRepo) Delete(collection, userID string) error {
	_, err := r.db.Exec("DELETE FROM collections WHERE scope_key = ?", scopeKey(collection, userID))
	return err
}

// DeleteScope removes every collection belonging to userID. Suffix matching
// avoids LIKE wildcard surprises from underscores in the separator or id.
func (r *CollectionRepo) DeleteScope(userID string) error {
	suffix := "_" + userID
	_, err := r.db.Exec("DELETE FROM collections WHERE substr(scope_key, -?) = ?", len(suffix), suffix)
	return err
}
