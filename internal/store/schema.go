package store

const Schema = `
CREATE TABLE IF NOT EXISTS collections (
	scope_key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- scope_key is "{collection}_{userID}"; the prefix index serves
-- per-user wipes on logout
CREATE INDEX IF NOT EXISTS idx_collections_scope ON collections(scope_key);

CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	description TEXT NOT NULL,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
