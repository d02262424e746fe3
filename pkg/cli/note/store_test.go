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

package note

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/noteboi/noteboi/pkg/assert"
	"github.com/noteboi/noteboi/pkg/cli/consts"
	"github.com/noteboi/noteboi/pkg/cli/event"
	"github.com/noteboi/noteboi/pkg/cli/ledger"
	"github.com/noteboi/noteboi/pkg/clock"
)

// memBackend is an in-memory Backend for store tests
type memBackend struct {
	notes map[string]Note
}

func newMemBackend() *memBackend {
	return &memBackend{notes: map[string]Note{}}
}

func (b *memBackend) NewNote(n Note) error {
	b.notes[n.UUID] = n
	return nil
}

func (b *memBackend) EditNote(n Note) error {
	b.notes[n.UUID] = n
	return nil
}

func (b *memBackend) DeleteNote(uuid string) error {
	delete(b.notes, uuid)
	return nil
}

func (b *memBackend) SyncLocalNotes(notes []Note) error {
	b.notes = map[string]Note{}
	for _, n := range notes {
		b.notes[n.UUID] = n
	}
	return nil
}

func (b *memBackend) GetAllNotes() ([]Note, error) {
	var ret []Note
	for _, n := range b.notes {
		ret = append(ret, n)
	}
	SortDesc(ret)
	return ret, nil
}

// memStorage is an in-memory ledger.Storage for store tests
type memStorage struct {
	data map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string][]byte{}}
}

func (s *memStorage) GetJSON(key string, dest interface{}) (bool, error) {
	b, ok := s.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (s *memStorage) SetJSON(key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.data[key] = b
	return nil
}

func (s *memStorage) Remove(key string) error {
	delete(s.data, key)
	return nil
}

func newTestStore(t *testing.T) (*Store, *memBackend, *ledger.Ledger, *clock.Mock) {
	t.Helper()

	backend := newMemBackend()

	led, err := ledger.Load(newMemStorage(), consts.SystemUnsynced)
	assert.NoError(t, err, "loading ledger")

	c := clock.NewMock()
	c.SetNow(time.UnixMilli(1000))

	store := NewStore(backend, led, event.NewBus(), c)

	return store, backend, led, c
}

func TestLoadAllSynthesizesEmptyNote(t *testing.T) {
	store, backend, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	notes := store.Notes()
	assert.Equal(t, len(notes), 1, "store should never be empty")
	assert.True(t, notes[0].IsEmpty(), "synthesized note should be empty")
	assert.Equal(t, store.Selected().UUID, notes[0].UUID, "synthesized note should be selected")
	assert.Equal(t, len(backend.notes), 1, "synthesized note should persist")
}

func TestNewReusesEmptyNote(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	first, err := store.New(true)
	assert.NoError(t, err, "creating first")

	second, err := store.New(true)
	assert.NoError(t, err, "creating second")

	assert.Equal(t, second.UUID, first.UUID, "empty note should be reused")
	assert.Equal(t, len(store.Notes()), 1, "blanks should not pile up")
}

func TestNewRefreshesReusedTimestamp(t *testing.T) {
	store, backend, _, c := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	c.SetNow(time.UnixMilli(4000))
	n, err := store.New(false)
	assert.NoError(t, err, "reusing empty note")

	assert.Equal(t, n.Timestamp, int64(4000), "reused note should get a fresh timestamp")
	assert.Equal(t, backend.notes[n.UUID].Timestamp, int64(4000), "refresh should persist")
}

func TestNewRecordsLedger(t *testing.T) {
	store, _, led, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	// fill the placeholder so New creates a fresh note
	err = store.Edit(Content{Title: "filled"})
	assert.NoError(t, err, "filling placeholder")

	n, err := store.New(true)
	assert.NoError(t, err, "creating note")

	assert.Equal(t, led.New(), n.UUID, "new note should be in the ledger")
}

func TestEditUpdatesTimestampAndLedger(t *testing.T) {
	store, backend, led, c := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	target := store.Selected()

	c.SetNow(time.UnixMilli(5000))
	err = store.Edit(Content{Title: "hello", Body: "world"})
	assert.NoError(t, err, "editing")

	edited, ok := store.Find(target.UUID)
	assert.True(t, ok, "note should exist")
	assert.Equal(t, edited.Timestamp, int64(5000), "timestamp should update")
	assert.Equal(t, edited.Content.Title, "hello", "title should update")
	assert.True(t, led.IsEdited(target.UUID), "edit should be in the ledger")
	assert.Equal(t, backend.notes[target.UUID].Content.Title, "hello", "edit should persist")
}

func TestEditIdenticalContentIsNoop(t *testing.T) {
	store, _, led, c := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Edit(Content{Title: "same"})
	assert.NoError(t, err, "first edit")

	before := store.Selected().Timestamp

	c.SetNow(time.UnixMilli(9000))
	err = store.Edit(Content{Title: "same"})
	assert.NoError(t, err, "identical edit")

	assert.Equal(t, store.Selected().Timestamp, before, "identical content should not bump the timestamp")
	assert.True(t, led.IsEdited(store.Selected().UUID), "earlier edit should remain")
}

func TestEditNewNoteStaysNew(t *testing.T) {
	store, _, led, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Edit(Content{Title: "filled"})
	assert.NoError(t, err, "filling placeholder")

	n, err := store.New(true)
	assert.NoError(t, err, "creating note")

	err = store.Edit(Content{Title: "typed"})
	assert.NoError(t, err, "editing new note")

	assert.Equal(t, led.New(), n.UUID, "note should stay new")
	assert.False(t, led.IsEdited(n.UUID), "new note should not gain an edit record")
}

func TestDeleteRecordsTombstone(t *testing.T) {
	store, _, led, c := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Edit(Content{Title: "synced once"})
	assert.NoError(t, err, "editing")

	target := store.Selected()

	// pretend a sync confirmed the edit
	err = led.Clear(true)
	assert.NoError(t, err, "clearing ledger")

	c.SetNow(time.UnixMilli(7000))
	err = store.Delete(target.UUID)
	assert.NoError(t, err, "deleting")

	assert.True(t, led.IsDeleted(target.UUID), "deletion should be recorded")
	snap := led.Take()
	assert.Equal(t, snap.Deleted[0].DeletedAt, int64(7000), "deletion time mismatch")
}

func TestDeleteNewNoteLeavesNoTombstone(t *testing.T) {
	store, _, led, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Edit(Content{Title: "filled"})
	assert.NoError(t, err, "filling placeholder")

	n, err := store.New(true)
	assert.NoError(t, err, "creating note")

	err = store.Delete(n.UUID)
	assert.NoError(t, err, "deleting new note")

	assert.Equal(t, led.New(), "", "new record should clear")
	assert.False(t, led.IsDeleted(n.UUID), "unsynced note needs no tombstone")
}

func TestDeleteLastNoteSynthesizesEmpty(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Edit(Content{Title: "only note"})
	assert.NoError(t, err, "editing")

	target := store.Selected()

	err = store.Delete(target.UUID)
	assert.NoError(t, err, "deleting")

	notes := store.Notes()
	assert.Equal(t, len(notes), 1, "store should never be empty")
	assert.True(t, notes[0].IsEmpty(), "replacement should be empty")
	assert.NotEqual(t, notes[0].UUID, target.UUID, "replacement should be a fresh note")
	assert.Equal(t, store.Selected().UUID, notes[0].UUID, "replacement should be selected")
}

func TestSelectClearsAbandonedEmptyNote(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Edit(Content{Title: "real note"})
	assert.NoError(t, err, "editing")

	real := store.Selected()

	blank, err := store.New(true)
	assert.NoError(t, err, "creating blank")

	ok, err := store.Select(real.UUID)
	assert.NoError(t, err, "selecting")
	assert.True(t, ok, "note should be found")

	_, found := store.Find(blank.UUID)
	assert.False(t, found, "abandoned blank should be cleaned up")
	assert.Equal(t, store.Selected().UUID, real.UUID, "selection mismatch")
}

func TestSelectAlreadySelected(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	ok, err := store.Select(store.Selected().UUID)
	assert.NoError(t, err, "selecting")
	assert.False(t, ok, "re-selecting the selected note should be a no-op")
}

func TestLoadAllResetsLoneEmptyNote(t *testing.T) {
	store, backend, _, c := newTestStore(t)

	// a lone note with whitespace-only content would defeat empty checks
	backend.notes["w1"] = Note{
		UUID:      "w1",
		Timestamp: 50,
		Content:   Content{Title: "  ", Body: "\n"},
	}

	c.SetNow(time.UnixMilli(6000))
	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	got, ok := store.Find("w1")
	assert.True(t, ok, "note should survive the load")
	assert.Equal(t, got.Timestamp, int64(6000), "timestamp should refresh")
	assert.Equal(t, got.Content.Title, "", "whitespace title should clear")
	assert.Equal(t, got.Content.Body, "", "whitespace body should clear")
}

func TestExtraSelectAndBulkDelete(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Replace([]Note{
		{UUID: "a", Timestamp: 300, Content: Content{Title: "a"}},
		{UUID: "b", Timestamp: 200, Content: Content{Title: "b"}},
		{UUID: "c", Timestamp: 100, Content: Content{Title: "c"}},
	})
	assert.NoError(t, err, "replacing")

	_, err = store.Select("a")
	assert.NoError(t, err, "selecting")

	assert.True(t, store.ExtraSelect("b"), "existing note should extra-select")
	assert.False(t, store.ExtraSelect("a"), "selected note should not extra-select")
	assert.False(t, store.ExtraSelect("b"), "extra-selecting twice should be a no-op")
	assert.False(t, store.ExtraSelect("nope"), "unknown uuid should not extra-select")

	assert.True(t, store.IsSelected("a"), "selected note should report selected")
	assert.True(t, store.IsSelected("b"), "extra-selected note should report selected")
	assert.False(t, store.IsSelected("c"), "unselected note should not report selected")

	err = store.DeleteSelected()
	assert.NoError(t, err, "bulk deleting")

	notes := store.Notes()
	assert.Equal(t, len(notes), 1, "only the unselected note should remain")
	assert.Equal(t, notes[0].UUID, "c", "wrong survivor")
	assert.Equal(t, len(store.ExtraSelected()), 0, "multi-select list should clear")
}

func TestSelectUnknownUUID(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	before := store.Selected()

	ok, err := store.Select("no-such-note")
	assert.NoError(t, err, "selecting")
	assert.False(t, ok, "unknown uuid should not select")
	assert.Equal(t, store.Selected().UUID, before.UUID, "selection should not change")
}

func TestSelectedIsDetached(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Edit(Content{Title: "original", Delta: json.RawMessage(`{"ops":[1]}`)})
	assert.NoError(t, err, "editing")

	sel := store.Selected()
	sel.Content.Delta[8] = '2'

	stored, _ := store.Find(sel.UUID)
	assert.Equal(t, string(stored.Content.Delta), `{"ops":[1]}`, "mutating the selected copy must not touch the store")
}

func TestAddNotesIncomingWins(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Edit(Content{Title: "existing"})
	assert.NoError(t, err, "editing")

	existing := store.Selected()

	incoming := []Note{
		{UUID: existing.UUID, Timestamp: 99, Content: Content{Title: "imported copy"}},
		{UUID: "fresh", Timestamp: 50, Content: Content{Title: "fresh import"}},
	}

	err = store.AddNotes(incoming, false)
	assert.NoError(t, err, "adding notes")

	got, _ := store.Find(existing.UUID)
	assert.Equal(t, got.Content.Title, "imported copy", "incoming copy should win")
	assert.Equal(t, len(store.Notes()), 2, "length mismatch")
}

func TestAddNotesSelectLatest(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Edit(Content{Title: "existing"})
	assert.NoError(t, err, "editing")

	incoming := []Note{
		{UUID: "newest", Timestamp: 9000, Content: Content{Title: "imported"}},
	}

	err = store.AddNotes(incoming, true)
	assert.NoError(t, err, "adding notes")

	assert.Equal(t, store.Selected().UUID, "newest", "newest note should be selected")
}

func TestReplaceKeepsSelection(t *testing.T) {
	store, backend, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Edit(Content{Title: "mine"})
	assert.NoError(t, err, "editing")

	selected := store.Selected()

	replacement := []Note{
		{UUID: selected.UUID, Timestamp: 500, Content: Content{Title: "merged mine"}},
		{UUID: "server", Timestamp: 900, Content: Content{Title: "from server"}},
	}

	err = store.Replace(replacement)
	assert.NoError(t, err, "replacing")

	assert.Equal(t, store.Selected().UUID, selected.UUID, "selection should survive")
	assert.Equal(t, store.Selected().Content.Title, "merged mine", "selection should pick up merged content")
	assert.Equal(t, len(backend.notes), 2, "backend should hold the replacement")
}

func TestReplaceReselectsWhenSelectionGone(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Edit(Content{Title: "mine"})
	assert.NoError(t, err, "editing")

	replacement := []Note{
		{UUID: "x", Timestamp: 100, Content: Content{Title: "older"}},
		{UUID: "y", Timestamp: 900, Content: Content{Title: "newest"}},
	}

	err = store.Replace(replacement)
	assert.NoError(t, err, "replacing")

	assert.Equal(t, store.Selected().UUID, "y", "newest note should be selected")
}

func TestReplaceEmptySynthesizes(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Replace(nil)
	assert.NoError(t, err, "replacing with empty set")

	notes := store.Notes()
	assert.Equal(t, len(notes), 1, "store should never be empty")
	assert.True(t, notes[0].IsEmpty(), "replacement should be empty")
}

func TestResolvePrefix(t *testing.T) {
	store, _, _, _ := newTestStore(t)

	err := store.LoadAll()
	assert.NoError(t, err, "loading")

	err = store.Replace([]Note{
		{UUID: "abc-1", Timestamp: 1, Content: Content{Title: "one"}},
		{UUID: "abd-2", Timestamp: 2, Content: Content{Title: "two"}},
	})
	assert.NoError(t, err, "replacing")

	n, ok := store.Resolve("abc")
	assert.True(t, ok, "unique prefix should resolve")
	assert.Equal(t, n.UUID, "abc-1", "resolved note mismatch")

	_, ok = store.Resolve("ab")
	assert.False(t, ok, "ambiguous prefix should not resolve")

	n, ok = store.Resolve("abd-2")
	assert.True(t, ok, "exact uuid should resolve")
	assert.Equal(t, n.UUID, "abd-2", "resolved note mismatch")
}
