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

package crypt

import (
	"encoding/json"
	"testing"

	"github.com/noteboi/noteboi/pkg/assert"
	"github.com/noteboi/noteboi/pkg/cli/note"
)

func TestNewKeyEmptyPassword(t *testing.T) {
	_, err := NewKey("")
	assert.Error(t, err, "empty password should fail")
}

func TestKeyFromBytesRoundTrip(t *testing.T) {
	key, err := NewKey("sesame")
	assert.NoError(t, err, "deriving key")

	restored, err := KeyFromBytes(key.Bytes())
	assert.NoError(t, err, "restoring key")

	notes := []note.Note{
		{UUID: "a", Timestamp: 1, Content: note.Content{Title: "t", Body: "b"}},
	}

	encrypted, err := EncryptNotes(notes, key)
	assert.NoError(t, err, "encrypting")

	decrypted, err := DecryptNotes(encrypted, restored)
	assert.NoError(t, err, "decrypting with restored key")
	assert.DeepEqual(t, decrypted, notes, "round trip mismatch")
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := NewKey("hunter2")
	assert.NoError(t, err, "deriving key")

	notes := []note.Note{
		{UUID: "a", Timestamp: 100, Content: note.Content{Title: "first", Body: "body one"}},
		{UUID: "b", Timestamp: 200, Content: note.Content{Title: "second", Body: "body two", Delta: json.RawMessage(`{"ops":[]}`)}},
	}

	encrypted, err := EncryptNotes(notes, key)
	assert.NoError(t, err, "encrypting")

	assert.Equal(t, len(encrypted), 2, "length mismatch")
	assert.Equal(t, encrypted[0].UUID, "a", "uuid mismatch")
	assert.Equal(t, encrypted[0].Timestamp, int64(100), "timestamp mismatch")
	assert.NotEqual(t, encrypted[0].Content, "body one", "content should be sealed")

	decrypted, err := DecryptNotes(encrypted, key)
	assert.NoError(t, err, "decrypting")
	assert.DeepEqual(t, decrypted, notes, "round trip mismatch")
}

func TestFreshSaltPerNote(t *testing.T) {
	key, err := NewKey("hunter2")
	assert.NoError(t, err, "deriving key")

	n := note.Note{UUID: "a", Timestamp: 1, Content: note.Content{Title: "t"}}

	first, err := EncryptNotes([]note.Note{n}, key)
	assert.NoError(t, err, "encrypting first")

	second, err := EncryptNotes([]note.Note{n}, key)
	assert.NoError(t, err, "encrypting second")

	assert.NotEqual(t, first[0].Content, second[0].Content, "ciphertexts should differ")
}

func TestDecryptWrongKey(t *testing.T) {
	key, err := NewKey("hunter2")
	assert.NoError(t, err, "deriving key")

	wrong, err := NewKey("*******")
	assert.NoError(t, err, "deriving wrong key")

	notes := []note.Note{
		{UUID: "a", Timestamp: 1, Content: note.Content{Title: "t", Body: "b"}},
	}

	encrypted, err := EncryptNotes(notes, key)
	assert.NoError(t, err, "encrypting")

	_, err = DecryptNotes(encrypted, wrong)
	assert.Error(t, err, "wrong key should fail")
}

func TestDecryptMalformedPayload(t *testing.T) {
	key, err := NewKey("hunter2")
	assert.NoError(t, err, "deriving key")

	testCases := []string{
		"not base64 !!!",
		"aGVsbG8=",
		"",
	}

	for _, content := range testCases {
		_, err := DecryptNotes([]EncryptedNote{{UUID: "a", Content: content}}, key)
		assert.Error(t, err, "malformed payload should fail")
	}
}

func TestSingleFailureFailsBatch(t *testing.T) {
	key, err := NewKey("hunter2")
	assert.NoError(t, err, "deriving key")

	encrypted, err := EncryptNotes([]note.Note{
		{UUID: "a", Timestamp: 1, Content: note.Content{Title: "good"}},
	}, key)
	assert.NoError(t, err, "encrypting")

	encrypted = append(encrypted, EncryptedNote{UUID: "b", Content: "garbage"})

	_, err = DecryptNotes(encrypted, key)
	assert.Error(t, err, "one bad note should fail the whole batch")
}

func TestEncryptNilKey(t *testing.T) {
	notes := []note.Note{
		{UUID: "a", Timestamp: 1, Content: note.Content{Title: "t"}},
	}

	_, err := EncryptNotes(notes, nil)
	assert.Error(t, err, "nil key should fail")
}
