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

// Package event provides an in-process publish/subscribe channel for
// cross-component notification. Emitters fire only after the triggering
// in-memory mutation has committed.
package event

import "sync"

// AuthPayload is the payload of the auth state change event
type AuthPayload struct {
	IsLoggedIn bool `json:"is_logged_in"`
}

// UnsyncedPayload is the payload of the note-unsynced event
type UnsyncedPayload struct {
	NoteUUID string `json:"note_uuid"`
	// Kind is either "edited" or "deleted"
	Kind string `json:"kind"`
}

// Handler handles an emitted event
type Handler func(payload interface{})

// Bus is an in-process event bus. Handlers are invoked synchronously in
// registration order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus returns a new event bus
func NewBus() *Bus {
	return &Bus{handlers: map[string][]Handler{}}
}

// Listen registers a handler for the given channel
func (b *Bus) Listen(channel string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[channel] = append(b.handlers[channel], h)
}

// Emit fires the handlers registered for the given channel
func (b *Bus) Emit(channel string, payload interface{}) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[channel]))
	copy(handlers, b.handlers[channel])
	b.mu.RUnlock()

	for _, h := range handlers {
		h(payload)
	}
}
