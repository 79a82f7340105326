package state

import "database/sql"

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS player_state (
			player_id TEXT PRIMARY KEY,
			volume REAL NOT NULL DEFAULT 1.0,
			current_index INTEGER NOT NULL DEFAULT -1,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS playlist_items (
			player_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			uri TEXT NOT NULL,
			PRIMARY KEY (player_id, position)
		);
	`)
	return err
}
