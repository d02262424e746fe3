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

// Package syncer orchestrates synchronization between the local note store
// and the server. At most one sync runs at a time; a request that arrives
// while one is in flight queues a single follow-up run.
package syncer

import (
	"sync"

	"github.com/noteboi/noteboi/pkg/cli/apperr"
	"github.com/noteboi/noteboi/pkg/cli/client"
	"github.com/noteboi/noteboi/pkg/cli/consts"
	"github.com/noteboi/noteboi/pkg/cli/context"
	"github.com/noteboi/noteboi/pkg/cli/crypt"
	"github.com/noteboi/noteboi/pkg/cli/database"
	"github.com/noteboi/noteboi/pkg/cli/event"
	"github.com/noteboi/noteboi/pkg/cli/keyring"
	"github.com/noteboi/noteboi/pkg/cli/ledger"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/noteboi/noteboi/pkg/cli/merge"
	"github.com/noteboi/noteboi/pkg/cli/note"
	"github.com/pkg/errors"
)

// Syncer owns the session and drives every server interaction. It composes
// the note store, the change ledger, the keyring and the API client.
type Syncer struct {
	ctx     context.NoteCtx
	store   *note.Store
	ledger  *ledger.Ledger
	keyring keyring.Keyring
	system  *database.SystemStore
	bus     *event.Bus

	mu       sync.Mutex
	session  *client.Session
	key      *crypt.Key
	loading  int
	lastErr  *apperr.Error
	inFlight bool
	queued   bool

	debounce *DebounceQueue
}

// New returns a syncer, restoring any persisted session from the keyring
func New(ctx context.NoteCtx, store *note.Store, l *ledger.Ledger, kr keyring.Keyring, bus *event.Bus) (*Syncer, error) {
	s := &Syncer{
		ctx:      ctx,
		store:    store,
		ledger:   l,
		keyring:  kr,
		system:   database.NewSystemStore(ctx.DB),
		bus:      bus,
		debounce: NewDebounceQueue(ctx.DebounceInterval),
	}

	if err := s.restoreSession(); err != nil {
		return nil, errors.Wrap(err, "restoring session")
	}

	return s, nil
}

func (s *Syncer) restoreSession() error {
	loggedIn, ok, err := s.system.Get(consts.SystemLoggedIn)
	if err != nil {
		return errors.Wrap(err, "reading login state")
	}
	if !ok || loggedIn != "true" {
		return nil
	}

	username, ok, err := s.system.Get(consts.SystemUsername)
	if err != nil {
		return errors.Wrap(err, "reading username")
	}
	if !ok {
		return nil
	}

	token, err := s.keyring.GetAccessToken(username)
	if err == keyring.ErrNotFound {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading access token")
	}

	material, err := s.keyring.GetPasswordKey(username)
	if err == keyring.ErrNotFound {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading password key")
	}

	key, err := crypt.KeyFromBytes(material)
	if err != nil {
		return errors.Wrap(err, "reconstructing key")
	}

	s.session = &client.Session{Username: username, AccessToken: token}
	s.key = key

	return nil
}

// LoggedIn returns true if a session is active
func (s *Syncer) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session != nil
}

// Username returns the username of the active session, or an empty string
func (s *Syncer) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ""
	}

	return s.session.Username
}

// Loading returns true if any engine operation is in progress
func (s *Syncer) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading > 0
}

// LastError returns the most recent sync failure, or nil
func (s *Syncer) LastError() *apperr.Error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

func (s *Syncer) beginLoading() {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()
}

func (s *Syncer) endLoading() {
	s.mu.Lock()
	s.loading--
	s.mu.Unlock()
}

func (s *Syncer) setLastErr(e *apperr.Error) {
	s.mu.Lock()
	s.lastErr = e
	s.mu.Unlock()
}

// payloadNotes returns the local notes eligible for the wire. Empty notes
// stay local; they are placeholders, not user data.
func (s *Syncer) payloadNotes() []note.Note {
	var ret []note.Note
	for _, n := range s.store.Notes() {
		if !n.IsEmpty() {
			ret = append(ret, n)
		}
	}

	return ret
}

// mergeableLocalNotes returns the local notes that participate in a merge
// with server state. Placeholder blanks drop out, except a blank the user
// explicitly created, which is still theirs to keep.
func (s *Syncer) mergeableLocalNotes() []note.Note {
	newID := s.ledger.New()

	var ret []note.Note
	for _, n := range s.store.Notes() {
		if !n.IsEmpty() || n.UUID == newID {
			ret = append(ret, n)
		}
	}

	return ret
}

func deletedMap(deleted []client.DeletedNote) map[string]bool {
	ret := map[string]bool{}
	for _, dn := range deleted {
		ret[dn.UUID] = true
	}

	return ret
}

func (s *Syncer) persistSession(username, token string, key *crypt.Key) error {
	if err := s.keyring.SetAccessToken(username, token); err != nil {
		return err
	}
	if err := s.keyring.SetPasswordKey(username, key.Bytes()); err != nil {
		return err
	}
	if err := s.system.Set(consts.SystemUsername, username); err != nil {
		return err
	}
	if err := s.system.Set(consts.SystemLoggedIn, "true"); err != nil {
		return err
	}

	s.mu.Lock()
	s.session = &client.Session{Username: username, AccessToken: token}
	s.key = key
	s.mu.Unlock()

	return nil
}

func (s *Syncer) dropSession() error {
	s.mu.Lock()
	session := s.session
	s.session = nil
	s.key = nil
	s.mu.Unlock()

	if session != nil {
		if err := s.keyring.DeleteAccessToken(session.Username); err != nil {
			return err
		}
		if err := s.keyring.DeletePasswordKey(session.Username); err != nil {
			return err
		}
	}

	return s.system.Set(consts.SystemLoggedIn, "false")
}

// Login authenticates against the server, merges the server's notes into the
// local set and establishes a session. The pending new-note record survives;
// other ledger entries are discarded in favor of the server state. If the
// ledger still holds changes after login, a sync follows immediately.
func (s *Syncer) Login(username, password string) *apperr.Error {
	if username == "" || password == "" {
		e := apperr.New(apperr.CodeFormValidation, "username and password are required")
		e.Display.Form = true
		return e
	}

	s.beginLoading()
	defer s.endLoading()

	key, err := crypt.NewKey(password)
	if err != nil {
		e := apperr.New(apperr.CodeEncryption, "deriving encryption key")
		e.Err = err
		e.Display.Form = true
		return e
	}

	resp, err := client.Login(s.ctx, username, password)
	if err != nil {
		e := loginError(err)
		e.Retry = &apperr.Retry{Label: "Try again", Fn: func() error {
			if e := s.Login(username, password); e != nil {
				return e
			}
			return nil
		}}
		return e
	}

	remote, err := crypt.DecryptNotes(resp.Notes, key)
	if err != nil {
		e := apperr.New(apperr.CodeEncryption, "decrypting server notes")
		e.Err = err
		e.Display.Form = true
		return e
	}

	merged := merge.Merge(s.mergeableLocalNotes(), remote, deletedMap(resp.DeletedNotes))
	if err := s.store.Replace(merged); err != nil {
		e := apperr.New(apperr.CodeLogin, "applying merged notes")
		e.Err = err
		return e
	}

	if err := s.persistSession(username, resp.AccessToken, key); err != nil {
		e := apperr.New(apperr.CodeLogin, "persisting session")
		e.Err = err
		return e
	}

	if err := s.ledger.Clear(false); err != nil {
		e := apperr.New(apperr.CodeLogin, "clearing ledger")
		e.Err = err
		return e
	}

	s.bus.Emit(consts.EventAuth, event.AuthPayload{IsLoggedIn: true})

	if s.ledger.Size() > 0 {
		if e := s.Sync(true); e != nil {
			return e
		}
	}

	return nil
}

func loginError(err error) *apperr.Error {
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) && (httpErr.IsUnauthorized() || httpErr.IsNotFound()) {
		e := apperr.New(apperr.CodeLogin, "wrong credentials")
		e.Err = err
		e.Display.Form = true
		return e
	}

	e := apperr.New(apperr.CodeLogin, "reaching the server")
	e.Err = err
	e.Display.Form = true
	return e
}

// Signup registers a new account and establishes a session. Every pending
// ledger entry is discarded, then an immediate sync uploads the local notes
// as the account's initial state.
func (s *Syncer) Signup(username, password string) *apperr.Error {
	if username == "" || password == "" {
		e := apperr.New(apperr.CodeFormValidation, "username and password are required")
		e.Display.Form = true
		return e
	}

	s.beginLoading()
	defer s.endLoading()

	key, err := crypt.NewKey(password)
	if err != nil {
		e := apperr.New(apperr.CodeEncryption, "deriving encryption key")
		e.Err = err
		e.Display.Form = true
		return e
	}

	resp, err := client.Signup(s.ctx, username, password)
	if err != nil {
		e := apperr.New(apperr.CodeSignup, "reaching the server")
		e.Err = err
		e.Display.Form = true
		e.Retry = &apperr.Retry{Label: "Try again", Fn: func() error {
			if e := s.Signup(username, password); e != nil {
				return e
			}
			return nil
		}}
		return e
	}

	if err := s.persistSession(username, resp.AccessToken, key); err != nil {
		e := apperr.New(apperr.CodeSignup, "persisting session")
		e.Err = err
		return e
	}

	if err := s.ledger.Clear(true); err != nil {
		e := apperr.New(apperr.CodeSignup, "clearing ledger")
		e.Err = err
		return e
	}

	s.bus.Emit(consts.EventAuth, event.AuthPayload{IsLoggedIn: true})

	return s.Sync(true)
}

// Logout tears down the session. The server call is best effort; local state
// is authoritative and the session is dropped regardless. The ledger
// survives so pending changes sync after the next login.
func (s *Syncer) Logout() *apperr.Error {
	s.beginLoading()
	defer s.endLoading()

	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	if session != nil {
		if err := client.Logout(s.ctx, session); err != nil {
			log.Debug("server logout failed: %v\n", err)
		}
	}

	if err := s.dropSession(); err != nil {
		e := apperr.New(apperr.CodeLogout, "dropping session")
		e.Err = err
		return e
	}

	s.debounce.Cancel()
	s.setLastErr(nil)
	s.bus.Emit(consts.EventAuth, event.AuthPayload{IsLoggedIn: false})

	return nil
}

// Sync pushes local state to the server and applies the merged result. If a
// sync is already in flight, a single follow-up run is queued instead of
// starting a second one. When silently is set, progress is logged at debug
// level only.
func (s *Syncer) Sync(silently bool) *apperr.Error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		e := apperr.New(apperr.CodeSync, "not logged in")
		e.Display.Sync = true
		return e
	}
	if s.inFlight {
		s.queued = true
		s.mu.Unlock()
		return nil
	}
	s.inFlight = true
	s.mu.Unlock()

	for {
		e := s.syncOnce(silently)

		s.mu.Lock()
		rerun := s.queued && e == nil && s.ledger.Size() > 0
		s.queued = false
		if !rerun {
			s.inFlight = false
			s.mu.Unlock()
			return e
		}
		s.mu.Unlock()
	}
}

func (s *Syncer) syncOnce(silently bool) *apperr.Error {
	s.beginLoading()
	defer s.endLoading()

	s.mu.Lock()
	session := s.session
	key := s.key
	s.mu.Unlock()

	if !silently {
		log.Info("syncing...\n")
	} else {
		log.Debug("syncing\n")
	}

	snapshot := s.ledger.Take()

	encrypted, err := crypt.EncryptNotes(s.payloadNotes(), key)
	if err != nil {
		e := apperr.New(apperr.CodeEncryption, "encrypting notes")
		e.Err = err
		e.Display.Sync = true
		s.setLastErr(e)
		return e
	}

	deleted := make([]client.DeletedNote, 0, len(snapshot.Deleted))
	for _, dn := range snapshot.Deleted {
		deleted = append(deleted, client.DeletedNote{UUID: dn.UUID, DeletedAt: dn.DeletedAt})
	}

	resp, err := client.SyncNotes(s.ctx, session, client.SyncPayload{
		Notes:        encrypted,
		DeletedNotes: deleted,
	})
	if err != nil {
		e := syncError(err)
		e.Retry = &apperr.Retry{Label: "Retry sync", Fn: func() error {
			if e := s.Sync(silently); e != nil {
				return e
			}
			return nil
		}}
		s.setLastErr(e)
		return e
	}

	remote, err := crypt.DecryptNotes(resp.Notes, key)
	if err != nil {
		e := apperr.New(apperr.CodeEncryption, "decrypting server notes")
		e.Err = err
		e.Display.Sync = true
		s.setLastErr(e)
		return e
	}

	merged := merge.Merge(s.mergeableLocalNotes(), remote, deletedMap(resp.DeletedNotes))
	if err := s.store.Replace(merged); err != nil {
		e := apperr.New(apperr.CodeSync, "applying merged notes")
		e.Err = err
		e.Display.Sync = true
		s.setLastErr(e)
		return e
	}

	if err := s.ledger.ClearIDs(snapshot.IDs()); err != nil {
		e := apperr.New(apperr.CodeSync, "clearing synced ledger entries")
		e.Err = err
		e.Display.Sync = true
		s.setLastErr(e)
		return e
	}

	s.setLastErr(nil)

	if !silently {
		log.Success("synced\n")
	}

	return nil
}

func syncError(err error) *apperr.Error {
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) && httpErr.IsUnauthorized() {
		e := apperr.New(apperr.CodeSync, "session expired")
		e.Err = err
		e.Display.Sync = true
		return e
	}

	e := apperr.New(apperr.CodeSync, "reaching the server")
	e.Err = err
	e.Display.Sync = true
	return e
}

// DebounceSync schedules a silent sync after a quiet interval, replacing any
// previously scheduled one. A scheduled run that gets superseded after its
// timer fires observes the cancellation and does not sync.
func (s *Syncer) DebounceSync() {
	if !s.LoggedIn() {
		return
	}

	s.debounce.Enqueue(func(cancelled func() bool) {
		if cancelled() {
			return
		}

		if e := s.Sync(true); e != nil {
			log.Debug("debounced sync failed: %v\n", e)
		}
	})
}

// FlushSync runs any debounced sync immediately
func (s *Syncer) FlushSync() {
	s.debounce.Flush()
}

// ChangePassword re-encrypts every note under the new password and updates
// the account. The local key material rolls over only after the server
// accepts the change.
func (s *Syncer) ChangePassword(currentPassword, newPassword string) *apperr.Error {
	if currentPassword == "" || newPassword == "" {
		e := apperr.New(apperr.CodeFormValidation, "current and new passwords are required")
		e.Display.Form = true
		return e
	}

	s.mu.Lock()
	session := s.session
	s.mu.Unlock()
	if session == nil {
		return apperr.New(apperr.CodeChangePassword, "not logged in")
	}

	s.beginLoading()
	defer s.endLoading()

	newKey, err := crypt.NewKey(newPassword)
	if err != nil {
		e := apperr.New(apperr.CodeEncryption, "deriving encryption key")
		e.Err = err
		e.Display.Form = true
		return e
	}

	encrypted, err := crypt.EncryptNotes(s.payloadNotes(), newKey)
	if err != nil {
		e := apperr.New(apperr.CodeEncryption, "re-encrypting notes")
		e.Err = err
		e.Display.Form = true
		return e
	}

	if err := client.ChangePassword(s.ctx, session, currentPassword, newPassword, encrypted); err != nil {
		e := apperr.New(apperr.CodeChangePassword, "updating password")
		e.Err = err
		e.Display.Form = true
		return e
	}

	if err := s.keyring.SetPasswordKey(session.Username, newKey.Bytes()); err != nil {
		e := apperr.New(apperr.CodeChangePassword, "storing new key")
		e.Err = err
		return e
	}

	s.mu.Lock()
	s.key = newKey
	s.mu.Unlock()

	return nil
}

// DeleteAccount removes the account from the server and drops the local
// session. Local notes stay on disk.
func (s *Syncer) DeleteAccount(password string) *apperr.Error {
	if password == "" {
		e := apperr.New(apperr.CodeFormValidation, "password is required")
		e.Display.Form = true
		return e
	}

	s.mu.Lock()
	session := s.session
	s.mu.Unlock()
	if session == nil {
		return apperr.New(apperr.CodeDeleteAccount, "not logged in")
	}

	s.beginLoading()
	defer s.endLoading()

	if err := client.DeleteAccount(s.ctx, session, password); err != nil {
		e := apperr.New(apperr.CodeDeleteAccount, "deleting account")
		e.Err = err
		e.Display.Form = true
		return e
	}

	if err := s.dropSession(); err != nil {
		e := apperr.New(apperr.CodeDeleteAccount, "dropping session")
		e.Err = err
		return e
	}

	s.debounce.Cancel()
	s.setLastErr(nil)
	s.bus.Emit(consts.EventAuth, event.AuthPayload{IsLoggedIn: false})

	return nil
}
