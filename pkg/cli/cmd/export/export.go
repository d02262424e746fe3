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

package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/noteboi/noteboi/pkg/cli/app"
	"github.com/noteboi/noteboi/pkg/cli/consts"
	"github.com/noteboi/noteboi/pkg/cli/infra"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/noteboi/noteboi/pkg/cli/note"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 * Export all notes to noteboi_export.json
 noteboi export

 * Export to a specific file
 noteboi export backup.json`

// NewCmd returns a new export command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export [path]",
		Short:   "Export notes to a JSON file",
		Example: example,
		RunE:    newRun(a),
	}

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		path := fmt.Sprintf("noteboi_export.%s", consts.ExportFileExt)
		if len(args) > 0 {
			path = args[0]
		}

		var notes []note.Note
		for _, n := range a.Store.Notes() {
			if !n.IsEmpty() {
				notes = append(notes, n)
			}
		}

		b, err := json.MarshalIndent(notes, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshalling notes")
		}

		if err := os.WriteFile(path, b, 0644); err != nil {
			return errors.Wrap(err, "writing export file")
		}

		log.Successf("exported %d notes to %s\n", len(notes), path)

		return nil
	}
}
