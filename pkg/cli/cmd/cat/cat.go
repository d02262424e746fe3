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

package cat

import (
	"github.com/noteboi/noteboi/pkg/cli/app"
	"github.com/noteboi/noteboi/pkg/cli/infra"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/noteboi/noteboi/pkg/cli/output"
	"github.com/spf13/cobra"
)

var example = `
 * Print the selected note
 noteboi cat

 * Print a note by id prefix
 noteboi cat 3c0d1a9`

// NewCmd returns a new cat command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cat [note id]",
		Short:   "Print the content of a note",
		Aliases: []string{"view"},
		Example: example,
		RunE:    newRun(a),
	}

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		n := a.Store.Selected()

		if len(args) > 0 {
			resolved, ok := a.Store.Resolve(args[0])
			if !ok {
				log.Errorf("note %s not found\n", args[0])
				return nil
			}
			n = resolved
		}

		output.NoteContent(n)

		return nil
	}
}
