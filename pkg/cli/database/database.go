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

// Package database provides the local persistence backend for NoteBoi:
// a SQLite database holding the note collection and a system key-value
// table for session fields and the unsynced ledger.
package database

import (
	"database/sql"

	"github.com/pkg/errors"
)

// DB is a database connection
type DB struct {
	*sql.DB
}

// Open opens the connection with the database
func Open(dbPath string) (*DB, error) {
	d, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening the database")
	}

	return &DB{d}, nil
}

// InitSchema creates the tables if they do not exist
func InitSchema(db *DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS notes
		(
			uuid text PRIMARY KEY,
			timestamp integer NOT NULL,
			title text NOT NULL DEFAULT '',
			body text NOT NULL DEFAULT '',
			delta text NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return errors.Wrap(err, "creating notes table")
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS system
		(
			key text PRIMARY KEY,
			value text NOT NULL
		)`)
	if err != nil {
		return errors.Wrap(err, "creating system table")
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_notes_timestamp ON notes(timestamp)`)
	if err != nil {
		return errors.Wrap(err, "creating notes timestamp index")
	}

	return nil
}
