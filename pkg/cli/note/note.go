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

// Package note defines the note model and the in-memory note store
package note

import (
	"encoding/json"
	"sort"
	"strings"
)

// Content is the content of a note. Delta is the rich-text payload owned by
// the external editor. The sync engine carries it verbatim and never inspects
// it for merge decisions.
type Content struct {
	Title string          `json:"title"`
	Body  string          `json:"body"`
	Delta json.RawMessage `json:"delta,omitempty"`
}

// Note is a single user document. Timestamp is the last-modified time in
// milliseconds since epoch and is the sole conflict tiebreaker during merge.
type Note struct {
	UUID      string  `json:"uuid"`
	Timestamp int64   `json:"timestamp"`
	Content   Content `json:"content"`
}

// IsEmpty returns true if both the title and the body are absent or
// whitespace-only
func (n Note) IsEmpty() bool {
	return strings.TrimSpace(n.Content.Title) == "" && strings.TrimSpace(n.Content.Body) == ""
}

// Clone returns a value copy of the note that shares no memory with the
// original. The selected note is always a clone so that editing it cannot
// alias the authoritative entry in the store.
func (n Note) Clone() Note {
	ret := n

	if n.Content.Delta != nil {
		delta := make(json.RawMessage, len(n.Content.Delta))
		copy(delta, n.Content.Delta)
		ret.Content.Delta = delta
	}

	return ret
}

// ParseContent splits raw text into a content value. The first line becomes
// the title and the rest, the body.
func ParseContent(raw string) Content {
	raw = strings.TrimRight(raw, "\n")

	idx := strings.Index(raw, "\n")
	if idx < 0 {
		return Content{Title: raw}
	}

	return Content{
		Title: raw[:idx],
		Body:  strings.TrimLeft(raw[idx+1:], "\n"),
	}
}

// SortDesc sorts the given notes in place in descending order by timestamp.
// Ties are broken by uuid so that the order is deterministic.
func SortDesc(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Timestamp != notes[j].Timestamp {
			return notes[i].Timestamp > notes[j].Timestamp
		}

		return notes[i].UUID < notes[j].UUID
	})
}
