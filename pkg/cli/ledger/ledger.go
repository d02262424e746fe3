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

// Package ledger implements the durable record of local note changes that
// have not yet been confirmed by the remote store. Every mutation writes
// through to durable storage; an empty ledger removes the persisted record
// entirely rather than storing an empty one.
package ledger

import (
	"sort"

	"github.com/pkg/errors"
)

// Storage is the durable key-value backend the ledger persists into
type Storage interface {
	// GetJSON reads the JSON value stored under key into dest. It returns
	// false if no record exists.
	GetJSON(key string, dest interface{}) (bool, error)
	// SetJSON stores the given value under key as JSON
	SetJSON(key string, v interface{}) error
	// Remove deletes the record under key. Removing an absent record is not
	// an error.
	Remove(key string) error
}

// DeletedNote records a pending deletion and the time it happened
type DeletedNote struct {
	UUID      string `json:"id"`
	DeletedAt int64  `json:"deletedAt"`
}

// record is the persisted form of the ledger
type record struct {
	New     string        `json:"new,omitempty"`
	Edited  []string      `json:"edited"`
	Deleted []DeletedNote `json:"deleted"`
}

// Partial is a set of fields to merge into the ledger. New replaces the
// current new-note id; Edited and Deleted add to their sets.
type Partial struct {
	New     *string
	Edited  []string
	Deleted []DeletedNote
}

// Snapshot is a point-in-time copy of the ledger contents
type Snapshot struct {
	New     string
	Edited  []string
	Deleted []DeletedNote
}

// IDs returns every note id present in the snapshot
func (s Snapshot) IDs() []string {
	var ret []string

	if s.New != "" {
		ret = append(ret, s.New)
	}
	ret = append(ret, s.Edited...)
	for _, dn := range s.Deleted {
		ret = append(ret, dn.UUID)
	}

	return ret
}

// Ledger tracks pending local changes: at most one new note id, a set of
// edited note ids and a set of deleted note records
type Ledger struct {
	storage Storage
	key     string

	newID   string
	edited  map[string]bool
	deleted map[string]int64
}

// Load reads the persisted ledger record, if any, and reconstructs the
// in-memory ledger from it
func Load(storage Storage, key string) (*Ledger, error) {
	l := &Ledger{
		storage: storage,
		key:     key,
		edited:  map[string]bool{},
		deleted: map[string]int64{},
	}

	var rec record
	ok, err := storage.GetJSON(key, &rec)
	if err != nil {
		return nil, errors.Wrap(err, "reading the persisted ledger")
	}
	if !ok {
		return l, nil
	}

	l.newID = rec.New
	for _, id := range rec.Edited {
		l.edited[id] = true
	}
	for _, dn := range rec.Deleted {
		l.deleted[dn.UUID] = dn.DeletedAt
	}

	return l, nil
}

// Size returns the number of pending changes
func (l *Ledger) Size() int {
	ret := len(l.edited) + len(l.deleted)
	if l.newID != "" {
		ret++
	}

	return ret
}

// New returns the id of the pending new note, or an empty string
func (l *Ledger) New() string {
	return l.newID
}

// IsEdited returns true if the given id has a pending edit
func (l *Ledger) IsEdited(uuid string) bool {
	return l.edited[uuid]
}

// IsDeleted returns true if the given id has a pending deletion
func (l *Ledger) IsDeleted(uuid string) bool {
	_, ok := l.deleted[uuid]
	return ok
}

// Set merges the given fields into the ledger and persists it. A deletion
// supersedes a pending edit for the same id, and the new-note id resets if
// it shows up in either the edited or the deleted set.
func (l *Ledger) Set(p Partial) error {
	if p.New != nil {
		l.newID = *p.New
	}

	for _, id := range p.Edited {
		l.edited[id] = true
	}

	for _, dn := range p.Deleted {
		l.deleted[dn.UUID] = dn.DeletedAt
		delete(l.edited, dn.UUID)
	}

	if l.edited[l.newID] || l.IsDeleted(l.newID) {
		l.newID = ""
	}

	return l.store()
}

// Clear empties the edited and deleted sets, and the new-note id if clearNew
// is set, then persists the result
func (l *Ledger) Clear(clearNew bool) error {
	if clearNew {
		l.newID = ""
	}

	l.edited = map[string]bool{}
	l.deleted = map[string]int64{}

	return l.store()
}

// ClearIDs removes the given ids from the edited and deleted sets, clearing
// the new-note id if it is among them. It is used to shrink the ledger to
// exactly what a completed sync confirmed.
func (l *Ledger) ClearIDs(ids []string) error {
	for _, id := range ids {
		delete(l.edited, id)
		delete(l.deleted, id)

		if l.newID == id {
			l.newID = ""
		}
	}

	return l.store()
}

// Take returns a point-in-time copy of the ledger contents
func (l *Ledger) Take() Snapshot {
	snap := Snapshot{New: l.newID}

	for id := range l.edited {
		snap.Edited = append(snap.Edited, id)
	}
	sort.Strings(snap.Edited)

	for id, at := range l.deleted {
		snap.Deleted = append(snap.Deleted, DeletedNote{UUID: id, DeletedAt: at})
	}
	sort.Slice(snap.Deleted, func(i, j int) bool {
		return snap.Deleted[i].UUID < snap.Deleted[j].UUID
	})

	return snap
}

// store writes the ledger through to durable storage. An all-empty ledger
// removes the persisted record rather than writing an empty one.
func (l *Ledger) store() error {
	if l.Size() == 0 {
		if err := l.storage.Remove(l.key); err != nil {
			return errors.Wrap(err, "removing the persisted ledger")
		}

		return nil
	}

	snap := l.Take()
	rec := record{
		New:     snap.New,
		Edited:  snap.Edited,
		Deleted: snap.Deleted,
	}
	if rec.Edited == nil {
		rec.Edited = []string{}
	}
	if rec.Deleted == nil {
		rec.Deleted = []DeletedNote{}
	}

	if err := l.storage.SetJSON(l.key, rec); err != nil {
		return errors.Wrap(err, "persisting the ledger")
	}

	return nil
}
