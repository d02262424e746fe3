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

package syncer

import (
	"sync"
	"time"
)

// DebounceQueue holds a single pending function and runs it after a quiet
// interval. Enqueueing while a run is pending replaces it and restarts the
// interval. A run that was superseded after its timer already fired observes
// cancellation through the closure it receives and must not commit.
type DebounceQueue struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	pending  func(cancelled func() bool)
	gen      uint64
}

// NewDebounceQueue returns a queue with the given quiet interval
func NewDebounceQueue(interval time.Duration) *DebounceQueue {
	return &DebounceQueue{interval: interval}
}

func (q *DebounceQueue) cancelledFn(gen uint64) func() bool {
	return func() bool {
		q.mu.Lock()
		defer q.mu.Unlock()

		return q.gen != gen
	}
}

// Enqueue schedules fn to run after the quiet interval, replacing any pending
// run. fn receives a cancelled func that reports whether a later Enqueue or
// Cancel superseded this run.
func (q *DebounceQueue) Enqueue(fn func(cancelled func() bool)) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.gen++
	gen := q.gen

	if q.timer != nil {
		q.timer.Stop()
	}

	q.pending = fn
	q.timer = time.AfterFunc(q.interval, func() {
		fn(q.cancelledFn(gen))
	})
}

// Cancel discards any pending run. A run whose timer already fired observes
// the cancellation through its cancelled closure.
func (q *DebounceQueue) Cancel() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.gen++

	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	q.pending = nil
}

// Flush runs any pending function synchronously instead of waiting out the
// interval. A pending run whose timer already fired is left to its timer.
func (q *DebounceQueue) Flush() {
	q.mu.Lock()

	if q.timer == nil || !q.timer.Stop() {
		q.mu.Unlock()
		return
	}

	fn := q.pending
	gen := q.gen
	q.timer = nil
	q.pending = nil
	q.mu.Unlock()

	fn(q.cancelledFn(gen))
}
