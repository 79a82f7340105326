// Package state persists shell state (volume, last playlist) per
// player across runs, in a SQLite database under the XDG data dir.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "tide"
	dbFileName = "tide.db"
)

// Manager owns the state database.
type Manager struct {
	db *sql.DB
}

// Open opens the default state database, creating it on first use.
func Open() (*Manager, error) {
	path, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("resolve state db path: %w", err)
	}
	return OpenPath(path)
}

// OpenPath opens a state database at an explicit path.
func OpenPath(path string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

// Close closes the database.
func (m *Manager) Close() error {
	return m.db.Close()
}

// SaveVolume upserts the volume for a player.
func (m *Manager) SaveVolume(playerID string, volume float64) error {
	_, err := m.db.Exec(`
		INSERT INTO player_state (player_id, volume, current_index, updated_at)
		VALUES (?, ?, -1, strftime('%s','now'))
		ON CONFLICT(player_id) DO UPDATE SET
			volume = excluded.volume,
			updated_at = excluded.updated_at
	`, playerID, volume)
	return err
}

// Volume returns the saved volume for a player; ok is false when none
// was ever saved.
func (m *Manager) Volume(playerID string) (volume float64, ok bool, err error) {
	row := m.db.QueryRow(`SELECT volume FROM player_state WHERE player_id = ?`, playerID)
	switch err := row.Scan(&volume); err {
	case nil:
		return volume, true, nil
	case sql.ErrNoRows:
		return 0, false, nil
	default:
		return 0, false, err
	}
}

// SavePlaylist replaces the saved playlist and cursor for a player.
func (m *Manager) SavePlaylist(playerID string, items []string, index int) error {
	return withTx(m.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO player_state (player_id, volume, current_index, updated_at)
			VALUES (?, 1.0, ?, strftime('%s','now'))
			ON CONFLICT(player_id) DO UPDATE SET
				current_index = excluded.current_index,
				updated_at = excluded.updated_at
		`, playerID, index)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM playlist_items WHERE player_id = ?`, playerID); err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO playlist_items (player_id, position, uri)
			VALUES (?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, uri := range items {
			if _, err := stmt.Exec(playerID, i, uri); err != nil {
				return err
			}
		}
		return nil
	})
}

// Playlist returns the saved playlist and cursor for a player. An empty
// playlist with index -1 means nothing was saved.
func (m *Manager) Playlist(playerID string) (items []string, index int, err error) {
	index = -1
	row := m.db.QueryRow(`SELECT current_index FROM player_state WHERE player_id = ?`, playerID)
	if err := row.Scan(&index); err != nil && err != sql.ErrNoRows {
		return nil, -1, err
	}

	rows, err := m.db.Query(`
		SELECT uri FROM playlist_items
		WHERE player_id = ?
		ORDER BY position ASC
	`, playerID)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	for rows.Next() {
		var uri string
		if err := rows.Scan(&uri); err != nil {
			return nil, -1, err
		}
		items = append(items, uri)
	}
	return items, index, rows.Err()
}

// withTx executes fn within a transaction, rolling back on error.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback on error is intentional

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
