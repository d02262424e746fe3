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

package remove

import (
	"fmt"

	"github.com/noteboi/noteboi/pkg/cli/app"
	"github.com/noteboi/noteboi/pkg/cli/infra"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/noteboi/noteboi/pkg/cli/note"
	"github.com/noteboi/noteboi/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var yesFlag bool

var example = `
 * Remove a single note
 noteboi remove 3c0d1a9

 * Remove several notes at once
 noteboi remove 3c0d1a9 9f2e11b`

// NewCmd returns a new remove command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <note id>...",
		Short:   "Remove one or more notes",
		Example: example,
		Args:    cobra.MinimumNArgs(1),
		RunE:    newRun(a),
	}

	f := cmd.Flags()
	f.BoolVarP(&yesFlag, "yes", "y", false, "remove without confirmation")

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		notes := make([]note.Note, 0, len(args))
		for _, arg := range args {
			n, ok := a.Store.Resolve(arg)
			if !ok {
				log.Errorf("note %s not found\n", arg)
				return nil
			}
			notes = append(notes, n)
		}

		if !yesFlag {
			question := fmt.Sprintf("remove note %s?", notes[0].UUID[:8])
			if len(notes) > 1 {
				question = fmt.Sprintf("remove %d notes?", len(notes))
			}

			confirmed, err := ui.Confirm(question, false)
			if err != nil {
				return errors.Wrap(err, "getting confirmation")
			}
			if !confirmed {
				log.Warnf("aborted\n")
				return nil
			}
		}

		if _, err := a.Store.Select(notes[0].UUID); err != nil {
			return errors.Wrap(err, "selecting note")
		}
		for _, n := range notes[1:] {
			a.Store.ExtraSelect(n.UUID)
		}

		if err := a.Store.DeleteSelected(); err != nil {
			return errors.Wrap(err, "removing notes")
		}

		if len(notes) == 1 {
			log.Successf("removed note %s\n", notes[0].UUID[:8])
		} else {
			log.Successf("removed %d notes\n", len(notes))
		}

		a.AutoSync()

		return nil
	}
}
