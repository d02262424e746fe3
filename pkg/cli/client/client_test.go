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

package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/noteboi/noteboi/pkg/assert"
	"github.com/noteboi/noteboi/pkg/cli/context"
	"github.com/noteboi/noteboi/pkg/cli/crypt"
	"github.com/pkg/errors"
)

func newTestCtx(server *httptest.Server) context.NoteCtx {
	return context.NoteCtx{
		APIEndpoint: server.URL,
		Version:     "test",
		HTTPClient:  server.Client(),
	}
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, "POST", "method mismatch")
		assert.Equal(t, r.URL.Path, "/auth/login", "path mismatch")
		assert.Equal(t, r.Header.Get("Content-Type"), "application/json", "content type mismatch")
		assert.Equal(t, r.Header.Get("CLI-Version"), "test", "cli version mismatch")

		var payload map[string]string
		err := json.NewDecoder(r.Body).Decode(&payload)
		assert.NoError(t, err, "decoding payload")
		assert.Equal(t, payload["username"], "alice", "username mismatch")
		assert.Equal(t, payload["password"], "hunter2", "password mismatch")

		resp := LoginResp{
			AccessToken:  "token-1",
			Notes:        []crypt.EncryptedNote{{UUID: "a", Timestamp: 10, Content: "sealed"}},
			DeletedNotes: []DeletedNote{{UUID: "gone", DeletedAt: 5}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	resp, err := Login(newTestCtx(server), "alice", "hunter2")
	assert.NoError(t, err, "logging in")

	assert.Equal(t, resp.AccessToken, "token-1", "token mismatch")
	assert.Equal(t, len(resp.Notes), 1, "notes length mismatch")
	assert.Equal(t, resp.Notes[0].UUID, "a", "note uuid mismatch")
	assert.DeepEqual(t, resp.DeletedNotes, []DeletedNote{{UUID: "gone", DeletedAt: 5}}, "deleted notes mismatch")
}

func TestLoginWrongCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "wrong credentials", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := Login(newTestCtx(server), "alice", "wrong")
	assert.Error(t, err, "login should fail")

	var httpErr *HTTPError
	assert.True(t, errors.As(err, &httpErr), "error should be an HTTPError")
	assert.True(t, httpErr.IsUnauthorized(), "error should be unauthorized")
	assert.Equal(t, httpErr.Message, "wrong credentials", "message mismatch")
}

func TestSyncNotesHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Path, "/notes/sync", "path mismatch")
		assert.Equal(t, r.Header.Get("Authorization"), "Bearer token-1", "authorization mismatch")
		assert.Equal(t, r.Header.Get("X-Username"), "alice", "username header mismatch")

		var payload SyncPayload
		err := json.NewDecoder(r.Body).Decode(&payload)
		assert.NoError(t, err, "decoding payload")
		assert.Equal(t, len(payload.Notes), 1, "payload notes mismatch")
		assert.Equal(t, len(payload.DeletedNotes), 1, "payload deleted mismatch")

		json.NewEncoder(w).Encode(SyncResp{Notes: payload.Notes})
	}))
	defer server.Close()

	session := &Session{Username: "alice", AccessToken: "token-1"}
	resp, err := SyncNotes(newTestCtx(server), session, SyncPayload{
		Notes:        []crypt.EncryptedNote{{UUID: "a", Timestamp: 10, Content: "sealed"}},
		DeletedNotes: []DeletedNote{{UUID: "gone", DeletedAt: 5}},
	})
	assert.NoError(t, err, "syncing")
	assert.Equal(t, len(resp.Notes), 1, "response notes mismatch")
}

func TestSyncNotesRequiresSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))
	defer server.Close()

	_, err := SyncNotes(newTestCtx(server), nil, SyncPayload{})
	assert.Error(t, err, "sync without a session should fail")

	_, err = SyncNotes(newTestCtx(server), &Session{Username: "alice"}, SyncPayload{})
	assert.Error(t, err, "sync without a token should fail")
}

func TestLogout(t *testing.T) {
	var called bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, r.URL.Path, "/auth/logout", "path mismatch")
		assert.Equal(t, r.Header.Get("Authorization"), "Bearer token-1", "authorization mismatch")
		fmt.Fprint(w, "{}")
	}))
	defer server.Close()

	err := Logout(newTestCtx(server), &Session{Username: "alice", AccessToken: "token-1"})
	assert.NoError(t, err, "logging out")
	assert.True(t, called, "server should be called")
}

func TestServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := Signup(newTestCtx(server), "alice", "hunter2")
	assert.Error(t, err, "signup should fail")

	var httpErr *HTTPError
	assert.True(t, errors.As(err, &httpErr), "error should be an HTTPError")
	assert.Equal(t, httpErr.StatusCode, http.StatusInternalServerError, "status mismatch")
	assert.False(t, httpErr.IsUnauthorized(), "500 is not unauthorized")
}
