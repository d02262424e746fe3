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

// Package consts provides definitions of constants
package consts

var (
	// NoteBoiDirName is the name of the directory containing noteboi files
	NoteBoiDirName = "noteboi"
	// NoteBoiDBFileName is a filename for the NoteBoi SQLite database
	NoteBoiDBFileName = "noteboi.db"
	// ConfigFilename is the name of the config file
	ConfigFilename = "noteboirc"
	// ExportFileExt is the file extension used for exported notes
	ExportFileExt = "json"
	// TmpContentFileBase is the base name of the temporary content file
	TmpContentFileBase = "NOTEBOI_TMPCONTENT"
	// TmpContentFileExt is the file extension of the temporary content file
	TmpContentFileExt = "md"

	// SystemUnsynced is the key for the persisted unsynced ledger in the system table
	SystemUnsynced = "unsynced"
	// SystemUsername is the key for the logged-in username in the system table
	SystemUsername = "username"
	// SystemLoggedIn is the key for the login state in the system table
	SystemLoggedIn = "logged_in"
	// SystemAccessTokenPrefix prefixes per-user access token keys in the system table
	SystemAccessTokenPrefix = "access_token"
	// SystemPasswordKeyPrefix prefixes per-user password key material in the system table
	SystemPasswordKeyPrefix = "password_key"
)

// Event channels used for cross-component notification
var (
	// EventAuth is emitted when the login state changes
	EventAuth = "auth"
	// EventNoteNew is emitted when a note is created
	EventNoteNew = "note-new"
	// EventNoteSelect is emitted when the selection changes
	EventNoteSelect = "note-select"
	// EventNoteChange is emitted when the note collection changes
	EventNoteChange = "note-change"
	// EventNoteUnsynced is emitted when a note gains a pending local change
	EventNoteUnsynced = "note-unsynced"
)
