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

// Package merge reconciles a local and a remote set of notes. Resolution is
// last writer wins keyed on the per-note millisecond timestamp; the local
// copy wins a tie.
package merge

import (
	"github.com/noteboi/noteboi/pkg/cli/note"
)

// Merge combines local and remote notes into a single set. A note present on
// both sides resolves to whichever copy has the strictly greater timestamp,
// local winning ties. Notes whose uuid appears in remotelyDeleted are
// excluded from both sides. The result is sorted newest first.
func Merge(local, remote []note.Note, remotelyDeleted map[string]bool) []note.Note {
	merged := make(map[string]note.Note)

	for _, n := range local {
		if remotelyDeleted[n.UUID] {
			continue
		}

		merged[n.UUID] = n
	}

	for _, n := range remote {
		if remotelyDeleted[n.UUID] {
			continue
		}

		existing, ok := merged[n.UUID]
		if !ok {
			merged[n.UUID] = n
			continue
		}

		if n.Timestamp > existing.Timestamp {
			reportConflict(existing, n)
			merged[n.UUID] = n
		}
	}

	ret := make([]note.Note, 0, len(merged))
	for _, n := range merged {
		ret = append(ret, n)
	}

	note.SortDesc(ret)

	return ret
}
