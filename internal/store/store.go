// Package store persists the reader's local state: favorited posts and
// the dark-mode preference. Backed by SQLite so favorites survive app
// restarts without any server-side account.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ribaund/reader/internal/wp"
)

const darkModeKey = "dark_mode"

// Store handles all local database operations.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and applies the
// schema. First run defaults the theme preference to dark.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	_, set, err := s.DarkMode()
	if err != nil {
		db.Close()
		return nil, err
	}
	if !set {
		if err := s.SetDarkMode(true); err != nil {
			db.Close()
			return nil, err
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS favorites (
		post_id INTEGER PRIMARY KEY,
		data TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// IsFavorite reports whether a post has been favorited.
func (s *Store) IsFavorite(postID int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM favorites WHERE post_id = ?)`, postID).Scan(&exists)
	return exists, err
}

// ToggleFavorite adds the post to favorites, or removes it if already
// present. The whole post is stored as JSON so the favorites screen can
// render without refetching. Returns whether the post is now a favorite.
func (s *Store) ToggleFavorite(p wp.Post) (bool, error) {
	fav, err := s.IsFavorite(p.ID)
	if err != nil {
		return false, err
	}

	if fav {
		_, err := s.db.Exec(`DELETE FROM favorites WHERE post_id = ?`, p.ID)
		return false, err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return false, fmt.Errorf("encoding favorite: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO favorites (post_id, data) VALUES (?, ?)`, p.ID, string(data))
	return true, err
}

// Favorites returns all favorited posts in the order they were added.
func (s *Store) Favorites() ([]wp.Post, error) {
	rows, err := s.db.Query(`SELECT data FROM favorites ORDER BY created_at, post_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []wp.Post
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var p wp.Post
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("decoding favorite: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// DarkMode returns the stored theme preference. set is false when the
// user has never chosen (tri-state: unset, dark, light).
func (s *Store) DarkMode() (enabled, set bool, err error) {
	var value string
	err = s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, darkModeKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return value == "true", true, nil
}

// SetDarkMode stores the theme preference.
func (s *Store) SetDarkMode(enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, darkModeKey, value)
	return err
}
