package database

type migration struct {
	id   int
	name string
	sql  string
}

var migrations = []migration{
	{
		id:   1,
		name: "initial_schema",
		sql: `
			-- Saves table: one row per named save slot, with the full
			-- session snapshot stored as JSON
			CREATE TABLE saves (
				id TEXT PRIMARY KEY,
				name TEXT UNIQUE NOT NULL,
				turn INTEGER NOT NULL DEFAULT 1,
				snapshot_json TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX idx_saves_name ON saves(name);
			CREATE INDEX idx_saves_updated ON saves(updated_at);
		`,
	},
}
