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

package login

import (
	"github.com/noteboi/noteboi/pkg/cli/app"
	"github.com/noteboi/noteboi/pkg/cli/infra"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/noteboi/noteboi/pkg/cli/ui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var signupFlag bool

var example = `
 * Log in to the server
 noteboi login

 * Register a new account
 noteboi login --signup`

// NewCmd returns a new login command
func NewCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Login to the server",
		Example: example,
		RunE:    newRun(a),
	}

	f := cmd.Flags()
	f.BoolVar(&signupFlag, "signup", false, "register a new account instead of logging in")

	return cmd
}

func newRun(a *app.App) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		var username, password string

		if err := ui.PromptInput("username:", &username); err != nil {
			return errors.Wrap(err, "getting username")
		}
		if err := ui.PromptPassword("password:", &password); err != nil {
			return errors.Wrap(err, "getting password")
		}

		var e error
		if signupFlag {
			if appErr := a.Syncer.Signup(username, password); appErr != nil {
				e = appErr
			}
		} else {
			if appErr := a.Syncer.Login(username, password); appErr != nil {
				e = appErr
			}
		}
		if e != nil {
			log.Errorf("%s\n", e.Error())
			return nil
		}

		log.Successf("logged in as %s\n", username)

		return nil
	}
}
