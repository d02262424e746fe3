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

package imprt

import (
	"encoding/json"
	"os"

	"github.com/noteboi/noteboi/pkg/cli/app"
	"github.com/noteboi/noteboi/pkg/cli/infra"
	"github.com/noteboi/noteboi/pkg/cli/ledger"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/noteboi/noteboi/pkg/cli/note"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 noteboi import backup.json`

// NewCmd returns a new import command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import <path>",
		Short:   "Import notes from a JSON file",
		Example: example,
		Args:    cobra.ExactArgs(1),
		RunE:    newRun(a),
	}

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "reading import file")
		}

		var notes []note.Note
		if err := json.Unmarshal(b, &notes); err != nil {
			return errors.Wrap(err, "unmarshalling notes")
		}

		// mark imported notes as pending so they reach the server
		ids := make([]string, 0, len(notes))
		for _, n := range notes {
			ids = append(ids, n.UUID)
		}
		if err := a.Ledger.Set(ledger.Partial{Edited: ids}); err != nil {
			return errors.Wrap(err, "recording imported notes")
		}

		if err := a.Store.AddNotes(notes, true); err != nil {
			return errors.Wrap(err, "adding notes")
		}

		log.Successf("imported %d notes\n", len(notes))

		a.AutoSync()

		return nil
	}
}
