/* Copyright 2026 NoteBoi Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"encoding/json"

	"github.com/noteboi/noteboi/pkg/cli/note"
	"github.com/pkg/errors"
)

// NotesBackend persists the note collection in the notes table. It implements
// note.Backend.
type NotesBackend struct {
	db *DB
}

// NewNotesBackend returns a NotesBackend over the given database
func NewNotesBackend(db *DB) *NotesBackend {
	return &NotesBackend{db: db}
}

// NewNote inserts the given note
func (b *NotesBackend) NewNote(n note.Note) error {
	_, err := b.db.Exec("INSERT OR REPLACE INTO notes (uuid, timestamp, title, body, delta) VALUES (?, ?, ?, ?, ?)",
		n.UUID, n.Timestamp, n.Content.Title, n.Content.Body, string(n.Content.Delta))
	if err != nil {
		return errors.Wrapf(err, "inserting note with uuid %s", n.UUID)
	}

	return nil
}

// EditNote updates the stored note with the given data
func (b *NotesBackend) EditNote(n note.Note) error {
	_, err := b.db.Exec("UPDATE notes SET timestamp = ?, title = ?, body = ?, delta = ? WHERE uuid = ?",
		n.Timestamp, n.Content.Title, n.Content.Body, string(n.Content.Delta), n.UUID)
	if err != nil {
		return errors.Wrapf(err, "updating note with uuid %s", n.UUID)
	}

	return nil
}

// DeleteNote removes the note with the given uuid
func (b *NotesBackend) DeleteNote(uuid string) error {
	_, err := b.db.Exec("DELETE FROM notes WHERE uuid = ?", uuid)
	if err != nil {
		return errors.Wrapf(err, "deleting note with uuid %s", uuid)
	}

	return nil
}

// SyncLocalNotes replaces the stored collection with the given notes
// atomically
func (b *NotesBackend) SyncLocalNotes(notes []note.Note) error {
	tx, err := b.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning a transaction")
	}

	if _, err := tx.Exec("DELETE FROM notes"); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "clearing notes")
	}

	for _, n := range notes {
		_, err := tx.Exec("INSERT INTO notes (uuid, timestamp, title, body, delta) VALUES (?, ?, ?, ?, ?)",
			n.UUID, n.Timestamp, n.Content.Title, n.Content.Body, string(n.Content.Delta))
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "inserting note with uuid %s", n.UUID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	return nil
}

// GetAllNotes reads the full stored collection
func (b *NotesBackend) GetAllNotes() ([]note.Note, error) {
	rows, err := b.db.Query("SELECT uuid, timestamp, title, body, delta FROM notes ORDER BY timestamp DESC, uuid ASC")
	if err != nil {
		return nil, errors.Wrap(err, "querying notes")
	}
	defer rows.Close()

	var ret []note.Note
	for rows.Next() {
		var n note.Note
		var delta string

		if err := rows.Scan(&n.UUID, &n.Timestamp, &n.Content.Title, &n.Content.Body, &delta); err != nil {
			return nil, errors.Wrap(err, "scanning a note row")
		}
		if delta != "" {
			n.Content.Delta = json.RawMessage(delta)
		}

		ret = append(ret, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating note rows")
	}

	return ret, nil
}
