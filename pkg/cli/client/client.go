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

// Package client provides interfaces for interacting with the NoteBoi server
// and the data structures for responses
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/noteboi/noteboi/pkg/cli/context"
	"github.com/noteboi/noteboi/pkg/cli/crypt"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// ErrInvalidLogin is an error for invalid credentials for login
var ErrInvalidLogin = errors.New("wrong credentials")

// HTTPError represents an HTTP error response from the server
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf(`response %d "%s"`, e.StatusCode, e.Message)
}

// IsUnauthorized returns true if the error is a 401 Unauthorized error
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsNotFound returns true if the error is a 404 Not Found error
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

const (
	// clientRateLimitPerSecond is the max requests per second the client will make
	clientRateLimitPerSecond = 50
	// clientRateLimitBurst is the burst capacity for rate limiting
	clientRateLimitBurst = 100
)

// rateLimitedTransport wraps an http.RoundTripper with rate limiting
type rateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.transport.RoundTrip(req)
}

// NewRateLimitedHTTPClient creates an HTTP client with rate limiting
func NewRateLimitedHTTPClient() *http.Client {
	interval := time.Second / time.Duration(clientRateLimitPerSecond)

	transport := &rateLimitedTransport{
		transport: http.DefaultTransport,
		limiter:   rate.NewLimiter(rate.Every(interval), clientRateLimitBurst),
	}
	return &http.Client{
		Transport: transport,
	}
}

// Session identifies the user on authorized requests
type Session struct {
	Username    string
	AccessToken string
}

func getHTTPClient(ctx context.NoteCtx) *http.Client {
	if ctx.HTTPClient != nil {
		return ctx.HTTPClient
	}

	return &http.Client{}
}

func getReq(ctx context.NoteCtx, method, path, body string, session *Session) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s%s", ctx.APIEndpoint, path)
	req, err := http.NewRequest(method, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "constructing http request")
	}

	req.Header.Set("CLI-Version", ctx.Version)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if session != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", session.AccessToken))
		req.Header.Set("X-Username", session.Username)
	}

	return req, nil
}

// checkRespErr checks if the given http response indicates an error. It
// returns a decoded error message if so.
func checkRespErr(res *http.Response) error {
	if res.StatusCode < 400 {
		return nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "server responded with %d but client could not read the response body", res.StatusCode)
	}

	return &HTTPError{
		StatusCode: res.StatusCode,
		Message:    strings.TrimRight(string(body), "\n"),
	}
}

// doReq does a http request to the given path in the api endpoint
func doReq(ctx context.NoteCtx, method, path, body string, session *Session) (*http.Response, error) {
	req, err := getReq(ctx, method, path, body, session)
	if err != nil {
		return nil, errors.Wrap(err, "getting request")
	}

	log.Debug("HTTP %s %s\n", method, path)

	hc := getHTTPClient(ctx)
	res, err := hc.Do(req)
	if err != nil {
		return res, errors.Wrap(err, "making http request")
	}

	log.Debug("HTTP %d %s\n", res.StatusCode, res.Status)

	if err = checkRespErr(res); err != nil {
		return res, errors.Wrap(err, "server responded with an error")
	}

	return res, nil
}

// doAuthorizedReq does a http request to the given path in the api endpoint
// as a user, with the appropriate headers. The given path should include the
// preceding slash.
func doAuthorizedReq(ctx context.NoteCtx, method, path, body string, session *Session) (*http.Response, error) {
	if session == nil || session.AccessToken == "" {
		return nil, errors.New("no access token found")
	}

	return doReq(ctx, method, path, body, session)
}

func readJSON(res *http.Response, dest interface{}) error {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "reading the response body")
	}

	if err = json.Unmarshal(body, dest); err != nil {
		return errors.Wrap(err, "unmarshalling the payload")
	}

	return nil
}

// DeletedNote is a tombstone for a note removed while offline
type DeletedNote struct {
	UUID      string `json:"uuid"`
	DeletedAt int64  `json:"deleted_at"`
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResp is the response from the login endpoint. It carries the full
// server state so a fresh device can bootstrap in a single round trip.
type LoginResp struct {
	AccessToken  string                `json:"access_token"`
	Notes        []crypt.EncryptedNote `json:"notes"`
	DeletedNotes []DeletedNote         `json:"deleted_notes"`
}

// Login authenticates with the server and returns an access token along
// with the server's note state
func Login(ctx context.NoteCtx, username, password string) (LoginResp, error) {
	var ret LoginResp

	b, err := json.Marshal(credentialsPayload{Username: username, Password: password})
	if err != nil {
		return ret, errors.Wrap(err, "marshaling payload")
	}

	res, err := doReq(ctx, "POST", "/auth/login", string(b), nil)
	if err != nil {
		return ret, errors.Wrap(err, "making the request")
	}

	if err := readJSON(res, &ret); err != nil {
		return ret, err
	}

	return ret, nil
}

// SignupResp is the response from the signup endpoint
type SignupResp struct {
	AccessToken string `json:"access_token"`
}

// Signup registers a new account with the server
func Signup(ctx context.NoteCtx, username, password string) (SignupResp, error) {
	var ret SignupResp

	b, err := json.Marshal(credentialsPayload{Username: username, Password: password})
	if err != nil {
		return ret, errors.Wrap(err, "marshaling payload")
	}

	res, err := doReq(ctx, "POST", "/auth/signup", string(b), nil)
	if err != nil {
		return ret, errors.Wrap(err, "making the request")
	}

	if err := readJSON(res, &ret); err != nil {
		return ret, err
	}

	return ret, nil
}

// Logout invalidates the access token on the server
func Logout(ctx context.NoteCtx, session *Session) error {
	_, err := doAuthorizedReq(ctx, "POST", "/auth/logout", "", session)
	if err != nil {
		return errors.Wrap(err, "making the request")
	}

	return nil
}

// SyncPayload is the payload for the note sync endpoint. It carries every
// local change accumulated since the last successful sync.
type SyncPayload struct {
	Notes        []crypt.EncryptedNote `json:"notes"`
	DeletedNotes []DeletedNote         `json:"deleted_notes"`
}

// SyncResp is the response from the note sync endpoint. It carries the
// server's resulting note state after applying the payload.
type SyncResp struct {
	Notes        []crypt.EncryptedNote `json:"notes"`
	DeletedNotes []DeletedNote         `json:"deleted_notes"`
}

// SyncNotes uploads local changes and returns the server's resulting state
func SyncNotes(ctx context.NoteCtx, session *Session, payload SyncPayload) (SyncResp, error) {
	var ret SyncResp

	b, err := json.Marshal(payload)
	if err != nil {
		return ret, errors.Wrap(err, "marshaling payload")
	}

	res, err := doAuthorizedReq(ctx, "POST", "/notes/sync", string(b), session)
	if err != nil {
		return ret, errors.Wrap(err, "making the request")
	}

	if err := readJSON(res, &ret); err != nil {
		return ret, err
	}

	return ret, nil
}

type changePasswordPayload struct {
	CurrentPassword string                `json:"current_password"`
	NewPassword     string                `json:"new_password"`
	Notes           []crypt.EncryptedNote `json:"notes"`
}

// ChangePassword updates the account password and replaces the server notes
// with copies re-encrypted under the new password
func ChangePassword(ctx context.NoteCtx, session *Session, currentPassword, newPassword string, notes []crypt.EncryptedNote) error {
	b, err := json.Marshal(changePasswordPayload{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
		Notes:           notes,
	})
	if err != nil {
		return errors.Wrap(err, "marshaling payload")
	}

	_, err = doAuthorizedReq(ctx, "POST", "/auth/change-password", string(b), session)
	if err != nil {
		return errors.Wrap(err, "making the request")
	}

	return nil
}

// DeleteAccount removes the account and all server-side notes
func DeleteAccount(ctx context.NoteCtx, session *Session, password string) error {
	b, err := json.Marshal(struct {
		Password string `json:"password"`
	}{Password: password})
	if err != nil {
		return errors.Wrap(err, "marshaling payload")
	}

	_, err = doAuthorizedReq(ctx, "POST", "/auth/delete-account", string(b), session)
	if err != nil {
		return errors.Wrap(err, "making the request")
	}

	return nil
}
