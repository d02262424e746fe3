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

package sel

import (
	"github.com/noteboi/noteboi/pkg/cli/app"
	"github.com/noteboi/noteboi/pkg/cli/infra"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 noteboi select 3c0d1a9`

// NewCmd returns a new select command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "select <note id>",
		Short:   "Select a note",
		Example: example,
		Args:    cobra.ExactArgs(1),
		RunE:    newRun(a),
	}

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		n, ok := a.Store.Resolve(args[0])
		if !ok {
			log.Errorf("note %s not found\n", args[0])
			return nil
		}

		changed, err := a.Store.Select(n.UUID)
		if err != nil {
			return errors.Wrap(err, "selecting note")
		}
		if !changed {
			log.Plainf("note %s is already selected\n", n.UUID[:8])
			return nil
		}

		log.Successf("selected note %s\n", n.UUID[:8])

		return nil
	}
}
