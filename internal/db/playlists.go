package db

import (
	"context"
	"fmt"
)

// CreatePlaylist inserts a new playlist row for the given user and returns
// its row id. videos is the serialized video list; rows are never updated in
// place, a re-save creates a new row.
func (db *DB) CreatePlaylist(ctx context.Context, userID int64, name, videos string) (int64, error) {
	query := `INSERT INTO playlists (user_id, name, videos) VALUES (?, ?, ?)`

	result, err := db.ExecContext(ctx, query, userID, name, videos)
	if err != nil {
		return 0, fmt.Errorf("failed to create playlist: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get playlist id: %w", err)
	}

	return id, nil
}

// ListPlaylists retrieves all playlists owned by the given user.
func (db *DB) ListPlaylists(ctx context.Context, userID int64) ([]*Playlist, error) {
	query := `
		SELECT id, user_id, name, videos, created_at
		FROM playlists
		WHERE user_id = ?
		ORDER BY id
	`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*Playlist
	for rows.Next() {
		p := &Playlist{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Videos, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// DeletePlaylist deletes a playlist by id scoped to its owner, so a user
// cannot delete another user's playlist. Deleting a playlist that does not
// exist (or is owned by someone else) is not an error.
func (db *DB) DeletePlaylist(ctx context.Context, playlistID, userID int64) error {
	query := `DELETE FROM playlists WHERE id = ? AND user_id = ?`

	if _, err := db.ExecContext(ctx, query, playlistID, userID); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	return nil
}
