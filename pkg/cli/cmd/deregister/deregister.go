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

package deregister

import (
	"github.com/noteboi/noteboi/pkg/cli/app"
	"github.com/noteboi/noteboi/pkg/cli/infra"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/noteboi/noteboi/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var example = `
 noteboi deregister`

// NewCmd returns a new deregister command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deregister",
		Short:   "Delete the account from the server",
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

		confirmed, err := ui.Confirm("delete the account and all server-side notes?", false)
		if err != nil {
			return errors.Wrap(err, "getting confirmation")
		}
		if !confirmed {
			log.Warnf("aborted\n")
			return nil
		}

		var password string
		if err := ui.PromptPassword("password:", &password); err != nil {
			return errors.Wrap(err, "getting password")
		}

		if e := a.Syncer.DeleteAccount(password); e != nil {
			log.Errorf("%s\n", e.Error())
			return nil
		}

		log.Success("account deleted. local notes are kept\n")

		return nil
	}
}
