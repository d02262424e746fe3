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

// Package root holds the top-level noteboi command that all subcommands
// attach to.
package root

import (
	"github.com/spf13/cobra"
)

var root = &cobra.Command{
	Use:   "noteboi",
	Short: "NoteBoi - a simple synchronized notebook",
	Long: `NoteBoi keeps plain-text notes on your machine and, once you log in,
keeps them in sync with the server across devices.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	// The flag value is read by main before cobra parses anything, because
	// the database must be open before commands are constructed. It is
	// declared here so help output and flag validation know about it.
	root.PersistentFlags().String("dbPath", "", "the path to the database file (defaults to standard location)")
}

// Register adds a new command
func Register(cmd *cobra.Command) {
	root.AddCommand(cmd)
}

// Execute runs the main command
func Execute() error {
	return root.Execute()
}
