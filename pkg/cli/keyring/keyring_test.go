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

package keyring

import (
	"testing"

	"github.com/noteboi/noteboi/pkg/assert"
	"github.com/noteboi/noteboi/pkg/cli/database"
)

func TestAccessToken(t *testing.T) {
	db := database.InitTestMemoryDB(t)
	kr := NewDBKeyring(db)

	_, err := kr.GetAccessToken("alice")
	assert.Equal(t, err, ErrNotFound, "missing token should report not found")

	err = kr.SetAccessToken("alice", "token-1")
	assert.NoError(t, err, "setting token")

	token, err := kr.GetAccessToken("alice")
	assert.NoError(t, err, "getting token")
	assert.Equal(t, token, "token-1", "token mismatch")

	// tokens are per user
	_, err = kr.GetAccessToken("bob")
	assert.Equal(t, err, ErrNotFound, "other user should have no token")

	err = kr.DeleteAccessToken("alice")
	assert.NoError(t, err, "deleting token")

	_, err = kr.GetAccessToken("alice")
	assert.Equal(t, err, ErrNotFound, "deleted token should report not found")
}

func TestPasswordKey(t *testing.T) {
	db := database.InitTestMemoryDB(t)
	kr := NewDBKeyring(db)

	_, err := kr.GetPasswordKey("alice")
	assert.Equal(t, err, ErrNotFound, "missing key should report not found")

	material := []byte{0x01, 0x02, 0xff}
	err = kr.SetPasswordKey("alice", material)
	assert.NoError(t, err, "setting key")

	got, err := kr.GetPasswordKey("alice")
	assert.NoError(t, err, "getting key")
	assert.DeepEqual(t, got, material, "key material mismatch")

	err = kr.DeletePasswordKey("alice")
	assert.NoError(t, err, "deleting key")

	_, err = kr.GetPasswordKey("alice")
	assert.Equal(t, err, ErrNotFound, "deleted key should report not found")
}
