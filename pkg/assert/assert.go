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

// Package assert provides assertion helpers for tests
package assert

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Equal fails a test if the actual and the expected values are not equal
func Equal(t *testing.T, a interface{}, b interface{}, message string) {
	t.Helper()

	if a != b {
		t.Errorf("%s. Actual: %+v. Expected: %+v.", message, a, b)
	}
}

// NotEqual fails a test if the actual and the expected values are equal
func NotEqual(t *testing.T, a interface{}, b interface{}, message string) {
	t.Helper()

	if a == b {
		t.Errorf("%s. Both were: %+v.", message, a)
	}
}

// DeepEqual fails a test if the actual and the expected values are not
// deeply equal, and prints a diff of the two
func DeepEqual(t *testing.T, a interface{}, b interface{}, message string) {
	t.Helper()

	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("%s. Diff (-expected +actual):\n%s", message, diff)
	}
}

// True fails a test if the given value is not true
func True(t *testing.T, a bool, message string) {
	t.Helper()

	if !a {
		t.Errorf("%s. Expected true but got false.", message)
	}
}

// False fails a test if the given value is not false
func False(t *testing.T, a bool, message string) {
	t.Helper()

	if a {
		t.Errorf("%s. Expected false but got true.", message)
	}
}

// NoError fails a test if the given error is not nil
func NoError(t *testing.T, err error, message string) {
	t.Helper()

	if err != nil {
		t.Fatalf("%s. Unexpected error: %v.", message, err)
	}
}

// Error fails a test if the given error is nil
func Error(t *testing.T, err error, message string) {
	t.Helper()

	if err == nil {
		t.Fatalf("%s. Expected an error but got nil.", message)
	}
}

// ErrorContains fails a test if the given error is nil or its message
// does not contain the given fragment
func ErrorContains(t *testing.T, err error, fragment, message string) {
	t.Helper()

	if err == nil {
		t.Fatalf("%s. Expected an error but got nil.", message)
	}
	if !strings.Contains(err.Error(), fragment) {
		t.Errorf("%s. Error %q does not contain %q.", message, err.Error(), fragment)
	}
}
