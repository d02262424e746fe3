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

// Package keyring stores per-user credentials. Tokens and key material are
// namespaced by username so that switching accounts does not clobber them.
package keyring

import (
	"encoding/base64"
	"fmt"

	"github.com/noteboi/noteboi/pkg/cli/consts"
	"github.com/noteboi/noteboi/pkg/cli/database"
	"github.com/pkg/errors"
)

// ErrNotFound is an error for a missing credential
var ErrNotFound = errors.New("credential not found")

// Keyring provides access to stored credentials
type Keyring interface {
	GetAccessToken(username string) (string, error)
	SetAccessToken(username, token string) error
	DeleteAccessToken(username string) error

	GetPasswordKey(username string) ([]byte, error)
	SetPasswordKey(username string, material []byte) error
	DeletePasswordKey(username string) error
}

// DBKeyring is a keyring backed by the system table of the local database
type DBKeyring struct {
	store *database.SystemStore
}

// NewDBKeyring creates a keyring backed by the given database
func NewDBKeyring(db *database.DB) *DBKeyring {
	return &DBKeyring{store: database.NewSystemStore(db)}
}

func accessTokenKey(username string) string {
	return fmt.Sprintf("%s:%s", consts.SystemAccessTokenPrefix, username)
}

func passwordKeyKey(username string) string {
	return fmt.Sprintf("%s:%s", consts.SystemPasswordKeyPrefix, username)
}

// GetAccessToken returns the stored access token for the user
func (k *DBKeyring) GetAccessToken(username string) (string, error) {
	token, ok, err := k.store.Get(accessTokenKey(username))
	if err != nil {
		return "", errors.Wrap(err, "getting access token")
	}
	if !ok {
		return "", ErrNotFound
	}

	return token, nil
}

// SetAccessToken stores the access token for the user
func (k *DBKeyring) SetAccessToken(username, token string) error {
	if err := k.store.Set(accessTokenKey(username), token); err != nil {
		return errors.Wrap(err, "setting access token")
	}

	return nil
}

// DeleteAccessToken removes the stored access token for the user
func (k *DBKeyring) DeleteAccessToken(username string) error {
	if err := k.store.Remove(accessTokenKey(username)); err != nil {
		return errors.Wrap(err, "deleting access token")
	}

	return nil
}

// GetPasswordKey returns the stored key material for the user
func (k *DBKeyring) GetPasswordKey(username string) ([]byte, error) {
	encoded, ok, err := k.store.Get(passwordKeyKey(username))
	if err != nil {
		return nil, errors.Wrap(err, "getting password key")
	}
	if !ok {
		return nil, ErrNotFound
	}

	material, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "decoding password key")
	}

	return material, nil
}

// SetPasswordKey stores the key material for the user
func (k *DBKeyring) SetPasswordKey(username string, material []byte) error {
	encoded := base64.StdEncoding.EncodeToString(material)
	if err := k.store.Set(passwordKeyKey(username), encoded); err != nil {
		return errors.Wrap(err, "setting password key")
	}

	return nil
}

// DeletePasswordKey removes the stored key material for the user
func (k *DBKeyring) DeletePasswordKey(username string) error {
	if err := k.store.Remove(passwordKeyKey(username)); err != nil {
		return errors.Wrap(err, "deleting password key")
	}

	return nil
}
