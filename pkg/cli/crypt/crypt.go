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

// Package crypt encrypts and decrypts note payloads. Note content is
// serialized to JSON and sealed with AES-256-GCM under a key derived from
// the user's password with PBKDF2. The wire format of a sealed payload is
// base64(salt || iv || ciphertext) with a fresh salt and iv per note.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/noteboi/noteboi/pkg/cli/note"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength = 16
	ivLength   = 12
	iterations = 100000
	keyLength  = 32
)

// Error is an encryption or decryption failure. A single failing note fails
// the whole batch; callers must not partially apply the result.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// EncryptedNote is the wire and storage representation of a note. Content is
// the sealed JSON serialization of the note content.
type EncryptedNote struct {
	UUID      string `json:"uuid"`
	Timestamp int64  `json:"timestamp"`
	Content   string `json:"content"`
}

// Key holds the password material that per-note encryption keys are derived
// from. The zero value is invalid; construct with NewKey.
type Key struct {
	password []byte
}

// NewKey returns a key derived from the given password
func NewKey(password string) (*Key, error) {
	if password == "" {
		return nil, &Error{Op: "deriving key", Err: fmt.Errorf("password cannot be empty")}
	}

	return &Key{password: []byte(password)}, nil
}

// KeyFromBytes reconstructs a key from material previously returned by Bytes
func KeyFromBytes(b []byte) (*Key, error) {
	if len(b) == 0 {
		return nil, &Error{Op: "deriving key", Err: fmt.Errorf("key material cannot be empty")}
	}

	password := make([]byte, len(b))
	copy(password, b)

	return &Key{password: password}, nil
}

// Bytes returns the key material for persistence in the keyring
func (k *Key) Bytes() []byte {
	ret := make([]byte, len(k.password))
	copy(ret, k.password)

	return ret
}

func (k *Key) derive(salt []byte) ([]byte, error) {
	if k == nil || len(k.password) == 0 {
		return nil, fmt.Errorf("no key material")
	}

	return pbkdf2.Key(k.password, salt, iterations, keyLength, sha256.New), nil
}

func encryptData(plaintext []byte, key *Key) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	derived, err := key.derive(salt)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(derived)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, iv, plaintext, nil)

	buf := make([]byte, 0, saltLength+ivLength+len(sealed))
	buf = append(buf, salt...)
	buf = append(buf, iv...)
	buf = append(buf, sealed...)

	return base64.StdEncoding.EncodeToString(buf), nil
}

func decryptData(encoded string, key *Key) ([]byte, error) {
	buf, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(buf) < saltLength+ivLength {
		return nil, fmt.Errorf("ciphertext too short")
	}

	salt := buf[:saltLength]
	iv := buf[saltLength : saltLength+ivLength]
	data := buf[saltLength+ivLength:]

	derived, err := key.derive(salt)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return gcm.Open(nil, iv, data, nil)
}

// EncryptNotes seals the content of every given note. It fails as a whole if
// any single note cannot be sealed.
func EncryptNotes(notes []note.Note, key *Key) ([]EncryptedNote, error) {
	ret := make([]EncryptedNote, 0, len(notes))

	for _, n := range notes {
		plaintext, err := json.Marshal(n.Content)
		if err != nil {
			return nil, &Error{Op: fmt.Sprintf("serializing note %s", n.UUID), Err: err}
		}

		sealed, err := encryptData(plaintext, key)
		if err != nil {
			return nil, &Error{Op: fmt.Sprintf("encrypting note %s", n.UUID), Err: err}
		}

		ret = append(ret, EncryptedNote{
			UUID:      n.UUID,
			Timestamp: n.Timestamp,
			Content:   sealed,
		})
	}

	return ret, nil
}

// DecryptNotes opens the content of every given encrypted note. It fails as
// a whole if any single note cannot be opened or deserialized; the caller
// must treat the whole batch as untrusted in that case.
func DecryptNotes(notes []EncryptedNote, key *Key) ([]note.Note, error) {
	ret := make([]note.Note, 0, len(notes))

	for _, en := range notes {
		plaintext, err := decryptData(en.Content, key)
		if err != nil {
			return nil, &Error{Op: fmt.Sprintf("decrypting note %s", en.UUID), Err: err}
		}

		var content note.Content
		if err := json.Unmarshal(plaintext, &content); err != nil {
			return nil, &Error{Op: fmt.Sprintf("deserializing note %s", en.UUID), Err: err}
		}

		ret = append(ret, note.Note{
			UUID:      en.UUID,
			Timestamp: en.Timestamp,
			Content:   content,
		})
	}

	return ret, nil
}
