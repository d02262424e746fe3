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
	"testing"

	"github.com/noteboi/noteboi/pkg/assert"
	"github.com/noteboi/noteboi/pkg/cli/note"
)

func TestNotesBackendRoundTrip(t *testing.T) {
	db := InitTestMemoryDB(t)
	backend := NewNotesBackend(db)

	n := note.Note{
		UUID:      "a",
		Timestamp: 100,
		Content: note.Content{
			Title: "title",
			Body:  "body",
			Delta: json.RawMessage(`{"ops":[]}`),
		},
	}

	err := backend.NewNote(n)
	assert.NoError(t, err, "inserting note")

	notes, err := backend.GetAllNotes()
	assert.NoError(t, err, "getting notes")
	assert.DeepEqual(t, notes, []note.Note{n}, "round trip mismatch")
}

func TestNotesBackendEmptyDelta(t *testing.T) {
	db := InitTestMemoryDB(t)
	backend := NewNotesBackend(db)

	n := note.Note{UUID: "a", Timestamp: 1, Content: note.Content{Title: "t"}}

	err := backend.NewNote(n)
	assert.NoError(t, err, "inserting note")

	notes, err := backend.GetAllNotes()
	assert.NoError(t, err, "getting notes")
	assert.True(t, notes[0].Content.Delta == nil, "absent delta should read back as nil")
}

func TestNotesBackendEdit(t *testing.T) {
	db := InitTestMemoryDB(t)
	backend := NewNotesBackend(db)

	err := backend.NewNote(note.Note{UUID: "a", Timestamp: 1, Content: note.Content{Title: "old"}})
	assert.NoError(t, err, "inserting note")

	err = backend.EditNote(note.Note{UUID: "a", Timestamp: 2, Content: note.Content{Title: "new"}})
	assert.NoError(t, err, "editing note")

	notes, err := backend.GetAllNotes()
	assert.NoError(t, err, "getting notes")
	assert.Equal(t, len(notes), 1, "length mismatch")
	assert.Equal(t, notes[0].Content.Title, "new", "title mismatch")
	assert.Equal(t, notes[0].Timestamp, int64(2), "timestamp mismatch")
}

func TestNotesBackendDelete(t *testing.T) {
	db := InitTestMemoryDB(t)
	backend := NewNotesBackend(db)

	err := backend.NewNote(note.Note{UUID: "a", Timestamp: 1})
	assert.NoError(t, err, "inserting note")

	err = backend.DeleteNote("a")
	assert.NoError(t, err, "deleting note")

	notes, err := backend.GetAllNotes()
	assert.NoError(t, err, "getting notes")
	assert.Equal(t, len(notes), 0, "note should be gone")
}

func TestNotesBackendSyncLocalNotes(t *testing.T) {
	db := InitTestMemoryDB(t)
	backend := NewNotesBackend(db)

	err := backend.NewNote(note.Note{UUID: "old", Timestamp: 1, Content: note.Content{Title: "stale"}})
	assert.NoError(t, err, "inserting note")

	replacement := []note.Note{
		{UUID: "b", Timestamp: 9, Content: note.Content{Title: "nine"}},
		{UUID: "a", Timestamp: 3, Content: note.Content{Title: "three"}},
	}

	err = backend.SyncLocalNotes(replacement)
	assert.NoError(t, err, "replacing notes")

	notes, err := backend.GetAllNotes()
	assert.NoError(t, err, "getting notes")
	assert.DeepEqual(t, notes, replacement, "replacement mismatch")
}

func TestNotesBackendOrder(t *testing.T) {
	db := InitTestMemoryDB(t)
	backend := NewNotesBackend(db)

	for _, n := range []note.Note{
		{UUID: "b", Timestamp: 5},
		{UUID: "a", Timestamp: 5},
		{UUID: "c", Timestamp: 9},
	} {
		err := backend.NewNote(n)
		assert.NoError(t, err, "inserting note")
	}

	notes, err := backend.GetAllNotes()
	assert.NoError(t, err, "getting notes")

	assert.Equal(t, notes[0].UUID, "c", "first mismatch")
	assert.Equal(t, notes[1].UUID, "a", "tie should break by uuid")
	assert.Equal(t, notes[2].UUID, "b", "last mismatch")
}
