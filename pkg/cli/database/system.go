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

package database

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"
)

// GetSystem scans the value under the given key into dest. It returns
// sql.ErrNoRows as the cause if no record exists.
func GetSystem(db *DB, key string, dest interface{}) error {
	err := db.QueryRow("SELECT value FROM system WHERE key = ?", key).Scan(dest)
	if err != nil {
		return errors.Wrapf(err, "querying system key %s", key)
	}

	return nil
}

// UpsertSystem inserts or replaces the value under the given key
func UpsertSystem(db *DB, key, val string) error {
	_, err := db.Exec("INSERT OR REPLACE INTO system (key, value) VALUES (?, ?)", key, val)
	if err != nil {
		return errors.Wrapf(err, "upserting system key %s", key)
	}

	return nil
}

// DeleteSystem removes the record under the given key. Removing an absent
// record is not an error.
func DeleteSystem(db *DB, key string) error {
	_, err := db.Exec("DELETE FROM system WHERE key = ?", key)
	if err != nil {
		return errors.Wrapf(err, "deleting system key %s", key)
	}

	return nil
}

// SystemStore exposes the system table as a durable key-value store. It is
// the write-through backend for the unsynced ledger and session fields.
type SystemStore struct {
	db *DB
}

// NewSystemStore returns a SystemStore over the given database
func NewSystemStore(db *DB) *SystemStore {
	return &SystemStore{db: db}
}

// Get reads the string value under key. It returns false if no record exists.
func (s *SystemStore) Get(key string) (string, bool, error) {
	var val string

	err := GetSystem(s.db, key, &val)
	if errors.Cause(err) == sql.ErrNoRows {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}

	return val, true, nil
}

// Set stores the string value under key
func (s *SystemStore) Set(key, val string) error {
	return UpsertSystem(s.db, key, val)
}

// GetJSON reads the JSON value under key into dest. It returns false if no
// record exists.
func (s *SystemStore) GetJSON(key string, dest interface{}) (bool, error) {
	val, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, errors.Wrapf(err, "unmarshalling system key %s", key)
	}

	return true, nil
}

// SetJSON stores the given value under key as JSON
func (s *SystemStore) SetJSON(key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "marshalling system key %s", key)
	}

	return s.Set(key, string(b))
}

// Remove deletes the record under key
func (s *SystemStore) Remove(key string) error {
	return DeleteSystem(s.db, key)
}
