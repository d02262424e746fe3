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

package merge

import (
	"strings"
	"time"

	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/noteboi/noteboi/pkg/cli/note"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	localMark  = "<<<<<<< Local"
	sepMark    = "======="
	serverMark = ">>>>>>> Server"
)

// lineDiff computes a line-by-line diff of the two bodies. The bodies are
// mapped to one rune per line first so the diff never splits inside a line.
func lineDiff(local, server string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = time.Hour

	localRunes, serverRunes, lines := dmp.DiffLinesToRunes(local, server)
	diffs := dmp.DiffMainRunes(localRunes, serverRunes, false)

	return dmp.DiffCharsToLines(diffs, lines)
}

// reportBodyConflict renders a line-by-line report of how the two bodies
// differ, using conflict markers. If the bodies are equal, it returns the
// body unchanged.
func reportBodyConflict(local, server string) string {
	if local == server {
		return local
	}

	if !strings.HasSuffix(local, "\n") {
		local = local + "\n"
	}
	if !strings.HasSuffix(server, "\n") {
		server = server + "\n"
	}

	var ret strings.Builder
	var pendingLocal, pendingServer string

	flush := func() {
		if pendingLocal == "" && pendingServer == "" {
			return
		}

		writeConflictBlocks(&ret, pendingLocal, pendingServer)

		pendingLocal = ""
		pendingServer = ""
	}

	for _, d := range lineDiff(local, server) {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			// a delete after an insert begins a new conflict region
			if pendingServer != "" {
				flush()
			}
			pendingLocal += d.Text
		case diffmatchpatch.DiffInsert:
			pendingServer += d.Text
		case diffmatchpatch.DiffEqual:
			flush()
			ret.WriteString(d.Text)
		}
	}

	flush()

	return ret.String()
}

// splitLines splits text into lines, each retaining its trailing newline
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	var ret []string
	for {
		idx := strings.Index(text, "\n")
		if idx < 0 {
			ret = append(ret, text)
			break
		}

		ret = append(ret, text[:idx+1])
		text = text[idx+1:]
		if text == "" {
			break
		}
	}

	return ret
}

// writeConflictBlocks renders differing regions as conflict-marked blocks.
// Lines pair up one to one across the two sides; once a side runs out, the
// remainder of the other side goes into a single closing block.
func writeConflictBlocks(ret *strings.Builder, local, server string) {
	localLines := splitLines(local)
	serverLines := splitLines(server)

	writeBlock := func(localPart, serverPart string) {
		ret.WriteString(localMark)
		ret.WriteString("\n")
		ret.WriteString(localPart)
		ret.WriteString(sepMark)
		ret.WriteString("\n")
		ret.WriteString(serverPart)
		ret.WriteString(serverMark)
		ret.WriteString("\n")
	}

	i := 0
	for ; i < len(localLines) && i < len(serverLines); i++ {
		localPart := localLines[i]
		serverPart := serverLines[i]

		// the remainder of the longer side joins the last paired block
		if i == len(localLines)-1 && i < len(serverLines)-1 {
			serverPart = strings.Join(serverLines[i:], "")
			writeBlock(localPart, serverPart)
			return
		}
		if i == len(serverLines)-1 && i < len(localLines)-1 {
			localPart = strings.Join(localLines[i:], "")
			writeBlock(localPart, serverPart)
			return
		}

		writeBlock(localPart, serverPart)
	}

	if i < len(localLines) {
		writeBlock(strings.Join(localLines[i:], ""), "")
	} else if i < len(serverLines) {
		writeBlock("", strings.Join(serverLines[i:], ""))
	}
}

// reportConflict logs the copy that lost a merge resolution alongside a
// conflict-marked report of how its body differed from the winner.
func reportConflict(loser, winner note.Note) {
	log.Debug("discarding older copy of note %s (timestamp %d < %d)\n", loser.UUID, loser.Timestamp, winner.Timestamp)
	log.Debug("body conflict:\n%s", reportBodyConflict(loser.Content.Body, winner.Content.Body))
}
