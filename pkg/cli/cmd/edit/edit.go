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

package edit

import (
	"fmt"
	"os"

	"github.com/noteboi/noteboi/pkg/cli/app"
	"github.com/noteboi/noteboi/pkg/cli/infra"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/noteboi/noteboi/pkg/cli/note"
	"github.com/noteboi/noteboi/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var contentFlag string

var example = `
 * Edit the selected note in an editor
 noteboi edit

 * Edit a note by id prefix
 noteboi edit 3c0d1a9

 * Replace content from the command line
 noteboi edit 3c0d1a9 -c "updated content"`

// NewCmd returns a new edit command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit [note id]",
		Short:   "Edit a note",
		Example: example,
		RunE:    newRun(a),
	}

	f := cmd.Flags()
	f.StringVarP(&contentFlag, "content", "c", "", "new content for the note")

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		target := a.Store.Selected()

		if len(args) > 0 {
			n, ok := a.Store.Resolve(args[0])
			if !ok {
				log.Errorf("note %s not found\n", args[0])
				return nil
			}
			target = n
		}

		if _, err := a.Store.Select(target.UUID); err != nil {
			return errors.Wrap(err, "selecting note")
		}

		raw := contentFlag
		if raw == "" {
			fpath, err := ui.GetTmpContentPath(a.Ctx)
			if err != nil {
				return errors.Wrap(err, "getting temporary content path")
			}

			existing := fmt.Sprintf("%s\n%s", target.Content.Title, target.Content.Body)
			if err := os.WriteFile(fpath, []byte(existing), 0644); err != nil {
				return errors.Wrap(err, "writing current content")
			}

			raw, err = ui.GetEditorInput(a.Ctx, fpath)
			if err != nil {
				return errors.Wrap(err, "getting editor input")
			}
		}

		if err := a.Store.Edit(note.ParseContent(raw)); err != nil {
			return errors.Wrap(err, "writing content")
		}

		log.Successf("edited note %s\n", target.UUID[:8])

		a.AutoSync()

		return nil
	}
}
