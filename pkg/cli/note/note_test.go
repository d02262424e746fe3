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
	"fmt"
	"testing"

	"github.com/noteboi/noteboi/pkg/assert"
)

func TestIsEmpty(t *testing.T) {
	testCases := []struct {
		note     Note
		expected bool
	}{
		{Note{}, true},
		{Note{Content: Content{Title: "  ", Body: "\n\t"}}, true},
		{Note{Content: Content{Title: "x"}}, false},
		{Note{Content: Content{Body: "x"}}, false},
		{Note{Content: Content{Delta: json.RawMessage(`{"ops":[]}`)}}, true},
	}

	for idx, tc := range testCases {
		assert.Equal(t, tc.note.IsEmpty(), tc.expected, fmt.Sprintf("test case %d", idx))
	}
}

func TestCloneDetachesDelta(t *testing.T) {
	n := Note{
		UUID:    "a",
		Content: Content{Title: "t", Delta: json.RawMessage(`{"ops":[1]}`)},
	}

	c := n.Clone()
	c.Content.Delta[8] = '2'

	assert.Equal(t, string(n.Content.Delta), `{"ops":[1]}`, "clone should not alias the original delta")
}

func TestSortDesc(t *testing.T) {
	notes := []Note{
		{UUID: "b", Timestamp: 5},
		{UUID: "a", Timestamp: 9},
		{UUID: "d", Timestamp: 5},
		{UUID: "c", Timestamp: 1},
	}

	SortDesc(notes)

	assert.Equal(t, notes[0].UUID, "a", "first mismatch")
	assert.Equal(t, notes[1].UUID, "b", "second mismatch")
	assert.Equal(t, notes[2].UUID, "d", "tie should break by uuid")
	assert.Equal(t, notes[3].UUID, "c", "last mismatch")
}

func TestParseContent(t *testing.T) {
	testCases := []struct {
		raw      string
		expected Content
	}{
		{"", Content{}},
		{"title only", Content{Title: "title only"}},
		{"title\nbody", Content{Title: "title", Body: "body"}},
		{"title\n\nbody line 1\nbody line 2\n", Content{Title: "title", Body: "body line 1\nbody line 2"}},
	}

	for _, tc := range testCases {
		assert.DeepEqual(t, ParseContent(tc.raw), tc.expected, "parsed content mismatch")
	}
}
