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
	"strings"
	"sync"

	"github.com/noteboi/noteboi/pkg/cli/consts"
	"github.com/noteboi/noteboi/pkg/cli/event"
	"github.com/noteboi/noteboi/pkg/cli/ledger"
	"github.com/noteboi/noteboi/pkg/cli/utils"
	"github.com/noteboi/noteboi/pkg/clock"
	"github.com/pkg/errors"
)

// Backend persists notes. It is implemented by the database package.
type Backend interface {
	NewNote(n Note) error
	EditNote(n Note) error
	DeleteNote(uuid string) error
	SyncLocalNotes(notes []Note) error
	GetAllNotes() ([]Note, error)
}

// Store is the in-memory working set of notes. It is the single source of
// truth for what the user sees; every mutation writes through to the backend
// and records pending changes in the ledger. The store is never empty: when
// the last note goes away, a fresh empty note takes its place.
type Store struct {
	mu      sync.Mutex
	backend Backend
	ledger  *ledger.Ledger
	bus     *event.Bus
	clock   clock.Clock

	notes    []Note
	selected Note
	extra    []string
}

// NewStore returns a store backed by the given backend and ledger
func NewStore(backend Backend, l *ledger.Ledger, bus *event.Bus, c clock.Clock) *Store {
	return &Store{
		backend: backend,
		ledger:  l,
		bus:     bus,
		clock:   c,
	}
}

func (s *Store) now() int64 {
	return s.clock.Now().UnixMilli()
}

func (s *Store) newEmptyNote() (Note, error) {
	uuid, err := utils.GenerateUUID()
	if err != nil {
		return Note{}, errors.Wrap(err, "generating uuid")
	}

	return Note{UUID: uuid, Timestamp: s.now()}, nil
}

// LoadAll reads every note from the backend into memory. If the backend holds
// no notes, a fresh empty note is synthesized so the store is never empty.
// The newest note becomes selected.
func (s *Store) LoadAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.backend.GetAllNotes()
	if err != nil {
		return errors.Wrap(err, "loading notes")
	}

	if len(notes) == 0 {
		n, err := s.newEmptyNote()
		if err != nil {
			return err
		}
		if err := s.backend.NewNote(n); err != nil {
			return errors.Wrap(err, "persisting empty note")
		}

		notes = []Note{n}
	} else if len(notes) == 1 && notes[0].IsEmpty() {
		// whitespace-only leftovers would defeat later empty-note checks
		notes[0].Timestamp = s.now()
		notes[0].Content = Content{}
		if err := s.backend.EditNote(notes[0]); err != nil {
			return errors.Wrap(err, "resetting empty note")
		}
	}

	SortDesc(notes)
	s.notes = notes
	s.selected = notes[0].Clone()

	return nil
}

// Notes returns a copy of the notes, newest first
func (s *Store) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	ret := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		ret = append(ret, n.Clone())
	}

	return ret
}

// Selected returns a detached copy of the selected note
func (s *Store) Selected() Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selected.Clone()
}

// Find returns a copy of the note with the given uuid
func (s *Store) Find(uuid string) (Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notes {
		if n.UUID == uuid {
			return n.Clone(), true
		}
	}

	return Note{}, false
}

// Resolve returns the note whose uuid matches the given prefix, if exactly
// one does
func (s *Store) Resolve(prefix string) (Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var match Note
	var count int

	for _, n := range s.notes {
		if n.UUID == prefix {
			return n.Clone(), true
		}
		if strings.HasPrefix(n.UUID, prefix) {
			match = n
			count++
		}
	}

	if count != 1 {
		return Note{}, false
	}

	return match.Clone(), true
}

func (s *Store) indexOf(uuid string) int {
	for i, n := range s.notes {
		if n.UUID == uuid {
			return i
		}
	}

	return -1
}

// New creates a fresh empty note and selects it. While the selected note is
// still empty it is reused with a refreshed timestamp instead of piling up
// blanks. When record is set, a created note is tracked in the ledger as the
// pending new note.
func (s *Store) New(record bool) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(s.selected.UUID); idx >= 0 && s.notes[idx].IsEmpty() {
		reused := s.notes[idx]
		reused.Timestamp = s.now()

		if err := s.backend.EditNote(reused); err != nil {
			return Note{}, errors.Wrap(err, "refreshing empty note")
		}

		s.notes[idx] = reused
		SortDesc(s.notes)
		s.selected = reused.Clone()
		s.bus.Emit(consts.EventNoteSelect, reused.UUID)

		return reused.Clone(), nil
	}

	n, err := s.newEmptyNote()
	if err != nil {
		return Note{}, err
	}

	if err := s.backend.NewNote(n); err != nil {
		return Note{}, errors.Wrap(err, "persisting note")
	}

	s.notes = append([]Note{n}, s.notes...)
	s.selected = n.Clone()

	if record {
		uuid := n.UUID
		if err := s.ledger.Set(ledger.Partial{New: &uuid}); err != nil {
			return Note{}, errors.Wrap(err, "recording new note")
		}
	}

	s.bus.Emit(consts.EventNoteNew, n.UUID)
	s.bus.Emit(consts.EventNoteSelect, n.UUID)

	return n.Clone(), nil
}

// Edit replaces the content of the selected note and stamps it with the
// current time. Identical content is a no-op. The edit is recorded in the
// ledger unless the note is still the pending new note.
func (s *Store) Edit(content Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(s.selected.UUID)
	if idx < 0 {
		return errors.Errorf("selected note %s not found", s.selected.UUID)
	}

	existing := s.notes[idx]
	if existing.Content.Title == content.Title &&
		existing.Content.Body == content.Body &&
		string(existing.Content.Delta) == string(content.Delta) {
		return nil
	}

	updated := existing
	updated.Content = content
	updated.Timestamp = s.now()

	if err := s.backend.EditNote(updated); err != nil {
		return errors.Wrap(err, "persisting edit")
	}

	s.notes[idx] = updated
	s.selected = updated.Clone()

	if s.ledger.New() != updated.UUID {
		if err := s.ledger.Set(ledger.Partial{Edited: []string{updated.UUID}}); err != nil {
			return errors.Wrap(err, "recording edit")
		}

		s.bus.Emit(consts.EventNoteUnsynced, event.UnsyncedPayload{NoteUUID: updated.UUID, Kind: "edited"})
	}

	s.bus.Emit(consts.EventNoteChange, updated.UUID)

	return nil
}

// Delete removes the note with the given uuid. A note that was never synced
// simply drops out of the ledger; any other note leaves a deletion record
// behind so the removal propagates on the next sync. Deleting the last note
// synthesizes a fresh empty one.
func (s *Store) Delete(uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(uuid)
	if idx < 0 {
		return errors.Errorf("note %s not found", uuid)
	}

	if err := s.backend.DeleteNote(uuid); err != nil {
		return errors.Wrap(err, "deleting note")
	}

	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)

	for i, id := range s.extra {
		if id == uuid {
			s.extra = append(s.extra[:i], s.extra[i+1:]...)
			break
		}
	}

	if s.ledger.New() == uuid {
		empty := ""
		if err := s.ledger.Set(ledger.Partial{New: &empty}); err != nil {
			return errors.Wrap(err, "clearing new note record")
		}
	} else {
		dn := ledger.DeletedNote{UUID: uuid, DeletedAt: s.now()}
		if err := s.ledger.Set(ledger.Partial{Deleted: []ledger.DeletedNote{dn}}); err != nil {
			return errors.Wrap(err, "recording deletion")
		}

		s.bus.Emit(consts.EventNoteUnsynced, event.UnsyncedPayload{NoteUUID: uuid, Kind: "deleted"})
	}

	if len(s.notes) == 0 {
		n, err := s.newEmptyNote()
		if err != nil {
			return err
		}
		if err := s.backend.NewNote(n); err != nil {
			return errors.Wrap(err, "persisting empty note")
		}

		s.notes = []Note{n}
	}

	if s.selected.UUID == uuid {
		s.selected = s.notes[0].Clone()
		s.bus.Emit(consts.EventNoteSelect, s.selected.UUID)
	}

	return nil
}

// DeleteSelected removes the selected note and every note in the
// multi-select list, then empties the list
func (s *Store) DeleteSelected() error {
	s.mu.Lock()
	uuids := append([]string{s.selected.UUID}, s.extra...)
	s.extra = nil
	s.mu.Unlock()

	for _, uuid := range uuids {
		if err := s.Delete(uuid); err != nil {
			return err
		}
	}

	return nil
}

// ExtraSelect adds the note with the given uuid to the multi-select list for
// bulk operations. The selected note itself never joins the list. It returns
// false if the note does not exist or is already selected.
func (s *Store) ExtraSelect(uuid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(uuid) < 0 || uuid == s.selected.UUID {
		return false
	}
	for _, id := range s.extra {
		if id == uuid {
			return false
		}
	}

	s.extra = append(s.extra, uuid)

	return true
}

// ExtraSelected returns the uuids in the multi-select list
func (s *Store) ExtraSelected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.extra...)
}

// ClearExtraSelected empties the multi-select list
func (s *Store) ClearExtraSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.extra = nil
}

// IsSelected reports whether the note is the selected note or part of the
// multi-select list
func (s *Store) IsSelected(uuid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if uuid == s.selected.UUID {
		return true
	}
	for _, id := range s.extra {
		if id == uuid {
			return true
		}
	}

	return false
}

// Select makes the note with the given uuid the selected note. An abandoned
// empty note left behind by the previous selection is cleaned up first. It
// returns true iff the selection changed: selecting the already-selected
// note or an unknown uuid is a no-op.
func (s *Store) Select(uuid string) (bool, error) {
	s.mu.Lock()
	if s.selected.UUID == uuid {
		s.mu.Unlock()
		return false, nil
	}
	s.mu.Unlock()

	if err := s.clearEmptyNote(uuid); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(uuid)
	if idx < 0 {
		return false, nil
	}

	s.selected = s.notes[idx].Clone()
	s.bus.Emit(consts.EventNoteSelect, uuid)

	return true, nil
}

// clearEmptyNote drops the selected note if it is empty and not the note
// about to be selected. Blanks left behind by an abandoned new-note flow
// would otherwise accumulate.
func (s *Store) clearEmptyNote(nextUUID string) error {
	s.mu.Lock()

	cur := s.selected
	if cur.UUID == nextUUID || !cur.IsEmpty() {
		s.mu.Unlock()
		return nil
	}
	if s.indexOf(cur.UUID) < 0 || len(s.notes) == 1 {
		s.mu.Unlock()
		return nil
	}

	s.mu.Unlock()

	return s.Delete(cur.UUID)
}

// AddNotes merges the given notes into the store, incoming copies winning
// over existing ones with the same uuid. When selectLatest is set, the
// newest note becomes selected, cleaning up any abandoned empty draft. Used
// by import.
func (s *Store) AddNotes(incoming []Note, selectLatest bool) error {
	s.mu.Lock()

	for _, n := range incoming {
		if err := s.backend.NewNote(n); err != nil {
			s.mu.Unlock()
			return errors.Wrap(err, "persisting note")
		}

		idx := s.indexOf(n.UUID)
		if idx >= 0 {
			s.notes[idx] = n
		} else {
			s.notes = append(s.notes, n)
		}
	}

	SortDesc(s.notes)

	head := s.notes[0].UUID

	if idx := s.indexOf(s.selected.UUID); idx >= 0 {
		s.selected = s.notes[idx].Clone()
	} else {
		s.selected = s.notes[0].Clone()
	}

	s.mu.Unlock()

	if selectLatest {
		if _, err := s.Select(head); err != nil {
			return err
		}
	}

	return nil
}

// Replace swaps the entire working set for the given notes, as after a merge
// with the server. The previous selection survives if its uuid is still
// present; otherwise the newest note becomes selected. The backend state is
// replaced wholesale.
func (s *Store) Replace(notes []Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replacement := make([]Note, 0, len(notes))
	for _, n := range notes {
		replacement = append(replacement, n.Clone())
	}

	if len(replacement) == 0 {
		n, err := s.newEmptyNote()
		if err != nil {
			return err
		}

		replacement = []Note{n}
	}

	SortDesc(replacement)

	if err := s.backend.SyncLocalNotes(replacement); err != nil {
		return errors.Wrap(err, "replacing local notes")
	}

	s.notes = replacement

	if idx := s.indexOf(s.selected.UUID); idx >= 0 {
		s.selected = s.notes[idx].Clone()
	} else {
		s.selected = s.notes[0].Clone()
		s.bus.Emit(consts.EventNoteSelect, s.selected.UUID)
	}

	s.bus.Emit(consts.EventNoteChange, "")

	return nil
}
