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

// Package apperr defines the structured error value reported by the sync engine.
// Every failing engine operation surfaces exactly one *Error carrying a code,
// an optional message, an optional retry closure and display routing flags.
package apperr

import "fmt"

// Code identifies the category of a failure
type Code int

// Error codes. CodeNone is the canonical "no error" sentinel.
const (
	CodeNone Code = iota
	CodeUnknown
	CodeLogin
	CodeSignup
	CodeLogout
	CodeDeleteAccount
	CodeChangePassword
	CodeEncryption
	CodeFormValidation
	CodeSync
)

var codeNames = map[Code]string{
	CodeNone:           "none",
	CodeUnknown:        "unknown",
	CodeLogin:          "login",
	CodeSignup:         "signup",
	CodeLogout:         "logout",
	CodeDeleteAccount:  "delete-account",
	CodeChangePassword: "change-password",
	CodeEncryption:     "encryption",
	CodeFormValidation: "form-validation",
	CodeSync:           "sync",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return fmt.Sprintf("code(%d)", int(c))
}

// Retry carries a function to re-invoke the failed operation with its original
// arguments, so the caller can offer a "Try again" action without reconstructing
// context.
type Retry struct {
	Fn    func() error
	Label string
}

// Display routes an error to the surfaces that should show it
type Display struct {
	// Form indicates the error should surface inline near the triggering form
	Form bool
	// Sync indicates the error should surface in the persistent sync-status indicator
	Sync bool
}

// Error is the single structured error value used by the sync engine
type Error struct {
	Code    Code
	Message string
	Retry   *Retry
	Display Display
	// Err is the original underlying error, kept for diagnostics
	Err error
}

// New constructs an Error with the given code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// IsNone returns true if the error carries the no-error sentinel code
func (e *Error) IsNone() bool {
	return e == nil || e.Code == CodeNone
}

// TryAgain re-invokes the failed operation if a retry was attached
func (e *Error) TryAgain() error {
	if e.Retry == nil || e.Retry.Fn == nil {
		return nil
	}

	return e.Retry.Fn()
}
