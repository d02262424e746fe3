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

package add

import (
	"github.com/noteboi/noteboi/pkg/cli/app"
	"github.com/noteboi/noteboi/pkg/cli/infra"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/noteboi/noteboi/pkg/cli/note"
	"github.com/noteboi/noteboi/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 * Open an editor to write content
 noteboi add

 * Write content directly from the command line
 noteboi add "time is a flat circle"`

// NewCmd returns a new add command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add [content]",
		Short:   "Add a new note",
		Example: example,
		RunE:    newRun(a),
	}

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		var raw string

		if len(args) > 0 {
			raw = args[0]
		} else {
			fpath, err := ui.GetTmpContentPath(a.Ctx)
			if err != nil {
				return errors.Wrap(err, "getting temporary content path")
			}

			raw, err = ui.GetEditorInput(a.Ctx, fpath)
			if err != nil {
				return errors.Wrap(err, "getting editor input")
			}
		}

		n, err := a.Store.New(true)
		if err != nil {
			return errors.Wrap(err, "creating note")
		}

		if err := a.Store.Edit(note.ParseContent(raw)); err != nil {
			return errors.Wrap(err, "writing content")
		}

		log.Successf("added note %s\n", n.UUID[:8])

		a.AutoSync()

		return nil
	}
}
