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

// Package app wires the engine components together
package app

import (
	"github.com/noteboi/noteboi/pkg/cli/consts"
	"github.com/noteboi/noteboi/pkg/cli/context"
	"github.com/noteboi/noteboi/pkg/cli/database"
	"github.com/noteboi/noteboi/pkg/cli/event"
	"github.com/noteboi/noteboi/pkg/cli/keyring"
	"github.com/noteboi/noteboi/pkg/cli/ledger"
	"github.com/noteboi/noteboi/pkg/cli/note"
	"github.com/noteboi/noteboi/pkg/cli/syncer"
	"github.com/pkg/errors"
)

// App is the assembled engine: the note store, the change ledger, the
// keyring and the syncer, sharing one database and one event bus.
type App struct {
	Ctx     context.NoteCtx
	Bus     *event.Bus
	Ledger  *ledger.Ledger
	Store   *note.Store
	Keyring keyring.Keyring
	Syncer  *syncer.Syncer
}

// New assembles the engine on top of the given context
func New(ctx context.NoteCtx) (*App, error) {
	bus := event.NewBus()

	system := database.NewSystemStore(ctx.DB)
	led, err := ledger.Load(system, consts.SystemUnsynced)
	if err != nil {
		return nil, errors.Wrap(err, "loading the ledger")
	}

	store := note.NewStore(database.NewNotesBackend(ctx.DB), led, bus, ctx.Clock)
	if err := store.LoadAll(); err != nil {
		return nil, errors.Wrap(err, "loading notes")
	}

	kr := keyring.NewDBKeyring(ctx.DB)

	s, err := syncer.New(ctx, store, led, kr, bus)
	if err != nil {
		return nil, errors.Wrap(err, "initializing the syncer")
	}

	return &App{
		Ctx:     ctx,
		Bus:     bus,
		Ledger:  led,
		Store:   store,
		Keyring: kr,
		Syncer:  s,
	}, nil
}

// AutoSync schedules a debounced sync if the user is logged in and auto
// sync is enabled
func (a *App) AutoSync() {
	if !a.Ctx.AutoSync {
		return
	}

	a.Syncer.DebounceSync()
}

// Flush runs any pending debounced sync before the process exits
func (a *App) Flush() {
	a.Syncer.FlushSync()
}
