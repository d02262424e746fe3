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

// Package output formats notes for the terminal
package output

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/noteboi/noteboi/pkg/cli/note"
)

// formatTS renders a millisecond timestamp in the local time zone
func formatTS(ts int64) string {
	return time.UnixMilli(ts).Local().Format("Jan 2, 2006 3:04pm")
}

func title(n note.Note) string {
	if n.IsEmpty() {
		return "(empty)"
	}
	if n.Content.Title == "" {
		return "(untitled)"
	}

	return n.Content.Title
}

// NoteLine prints a single-line summary of the note. The selected note is
// marked and notes with pending changes carry an asterisk.
func NoteLine(n note.Note, selected, unsynced bool) {
	marker := " "
	if selected {
		marker = color.BlueString(">")
	}

	pending := " "
	if unsynced {
		pending = color.YellowString("*")
	}

	log.Plainf("%s%s %s  %s  %s\n", marker, pending, color.YellowString(n.UUID[:8]), title(n), color.HiBlackString(formatTS(n.Timestamp)))
}

// NoteContent prints the full content of the note
func NoteContent(n note.Note) {
	log.Plainf("%s\n", color.CyanString(title(n)))
	log.Plainf("%s\n\n", color.HiBlackString("%s  %s", n.UUID, formatTS(n.Timestamp)))

	if n.Content.Body != "" {
		fmt.Println(n.Content.Body)
	}
}
