package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"emberhold/internal/game"
)

// ErrSaveNotFound is returned when a save is not found.
var ErrSaveNotFound = errors.New("save not found")

// SaveInfo contains basic save information for listings.
type SaveInfo struct {
	ID        string
	Name      string
	Turn      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Save contains a stored session snapshot.
type Save struct {
	SaveInfo
	Snapshot *game.Snapshot
}

// PutSave writes a snapshot under a save name, creating the slot or
// overwriting an existing one.
func (db *DB) PutSave(name string, snap *game.Snapshot) (*Save, error) {
	snapshotJSON, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var info SaveInfo
	err = db.conn.QueryRow("SELECT id, created_at FROM saves WHERE name = ?", name).
		Scan(&info.ID, &info.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		info.ID = uuid.New().String()
		info.CreatedAt = now
		_, err = db.conn.Exec(`
			INSERT INTO saves (id, name, turn, snapshot_json, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, info.ID, name, snap.Turn.Turn, string(snapshotJSON), now, now)
	case err == nil:
		_, err = db.conn.Exec(`
			UPDATE saves SET turn = ?, snapshot_json = ?, updated_at = ? WHERE id = ?
		`, snap.Turn.Turn, string(snapshotJSON), now, info.ID)
	}
	if err != nil {
		return nil, err
	}

	info.Name = name
	info.Turn = snap.Turn.Turn
	info.UpdatedAt = now
	return &Save{SaveInfo: info, Snapshot: snap}, nil
}

// GetSave retrieves a save by ID.
func (db *DB) GetSave(id string) (*Save, error) {
	return db.getSave("SELECT id, name, turn, snapshot_json, created_at, updated_at FROM saves WHERE id = ?", id)
}

// GetSaveByName retrieves a save by its slot name.
func (db *DB) GetSaveByName(name string) (*Save, error) {
	return db.getSave("SELECT id, name, turn, snapshot_json, created_at, updated_at FROM saves WHERE name = ?", name)
}

func (db *DB) getSave(query string, arg any) (*Save, error) {
	var s Save
	var snapshotJSON string
	err := db.conn.QueryRow(query, arg).
		Scan(&s.ID, &s.Name, &s.Turn, &snapshotJSON, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaveNotFound
	}
	if err != nil {
		return nil, err
	}

	var snap game.Snapshot
	if err := json.Unmarshal([]byte(snapshotJSON), &snap); err != nil {
		return nil, err
	}
	s.Snapshot = &snap
	return &s, nil
}

// ListSaves returns all saves, most recently updated first.
func (db *DB) ListSaves() ([]SaveInfo, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, turn, created_at, updated_at
		FROM saves ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []SaveInfo
	for rows.Next() {
		var info SaveInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Turn, &info.CreatedAt, &info.UpdatedAt); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteSave removes a save by ID.
func (db *DB) DeleteSave(id string) error {
	res, err := db.conn.Exec("DELETE FROM saves WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSaveNotFound
	}
	return nil
}
