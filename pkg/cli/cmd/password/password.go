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

package password

import (
	"github.com/noteboi/noteboi/pkg/cli/app"
	"github.com/noteboi/noteboi/pkg/cli/infra"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/noteboi/noteboi/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 noteboi password`

// NewCmd returns a new password command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "password",
		Short:   "Change the account password",
		Example: example,
		RunE:    newRun(a),
	}

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if !a.Syncer.LoggedIn() {
			log.Error("not logged in\n")
			return nil
		}

		var current, updated, confirm string

		if err := ui.PromptPassword("current password:", &current); err != nil {
			return errors.Wrap(err, "getting current password")
		}
		if err := ui.PromptPassword("new password:", &updated); err != nil {
			return errors.Wrap(err, "getting new password")
		}
		if err := ui.PromptPassword("confirm new password:", &confirm); err != nil {
			return errors.Wrap(err, "getting confirmation")
		}

		if updated != confirm {
			log.Error("passwords do not match\n")
			return nil
		}

		if e := a.Syncer.ChangePassword(current, updated); e != nil {
			log.Errorf("%s\n", e.Error())
			return nil
		}

		log.Success("password changed\n")

		return nil
	}
}
