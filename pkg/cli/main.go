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

package main

import (
	"os"
	"strings"

	"github.com/noteboi/noteboi/pkg/cli/app"
	"github.com/noteboi/noteboi/pkg/cli/infra"
	"github.com/noteboi/noteboi/pkg/cli/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	// commands
	"github.com/noteboi/noteboi/pkg/cli/cmd/add"
	"github.com/noteboi/noteboi/pkg/cli/cmd/cat"
	"github.com/noteboi/noteboi/pkg/cli/cmd/deregister"
	"github.com/noteboi/noteboi/pkg/cli/cmd/edit"
	"github.com/noteboi/noteboi/pkg/cli/cmd/export"
	"github.com/noteboi/noteboi/pkg/cli/cmd/imprt"
	"github.com/noteboi/noteboi/pkg/cli/cmd/login"
	"github.com/noteboi/noteboi/pkg/cli/cmd/logout"
	"github.com/noteboi/noteboi/pkg/cli/cmd/ls"
	"github.com/noteboi/noteboi/pkg/cli/cmd/password"
	"github.com/noteboi/noteboi/pkg/cli/cmd/remove"
	"github.com/noteboi/noteboi/pkg/cli/cmd/root"
	"github.com/noteboi/noteboi/pkg/cli/cmd/sel"
	"github.com/noteboi/noteboi/pkg/cli/cmd/sync"
	"github.com/noteboi/noteboi/pkg/cli/cmd/version"
)

// apiEndpoint and versionTag are populated during link time
var apiEndpoint string
var versionTag = "master"

// parseDBPath extracts the --dbPath flag value from command line arguments
// regardless of where it appears, since it can follow the subcommand and
// cobra only parses root flags that precede it.
func parseDBPath(args []string) string {
	for i, arg := range args {
		if strings.HasPrefix(arg, "--dbPath=") {
			return strings.TrimPrefix(arg, "--dbPath=")
		}
		if arg == "--dbPath" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func main() {
	dbPath := parseDBPath(os.Args[1:])

	ctx, err := infra.Init(versionTag, apiEndpoint, dbPath)
	if err != nil {
		panic(errors.Wrap(err, "initializing context"))
	}
	defer ctx.DB.Close()

	a, err := app.New(*ctx)
	if err != nil {
		panic(errors.Wrap(err, "initializing app"))
	}

	root.Register(add.NewCmd(a))
	root.Register(edit.NewCmd(a))
	root.Register(remove.NewCmd(a))
	root.Register(ls.NewCmd(a))
	root.Register(cat.NewCmd(a))
	root.Register(sel.NewCmd(a))
	root.Register(login.NewCmd(a))
	root.Register(logout.NewCmd(a))
	root.Register(sync.NewCmd(a))
	root.Register(export.NewCmd(a))
	root.Register(imprt.NewCmd(a))
	root.Register(password.NewCmd(a))
	root.Register(deregister.NewCmd(a))
	root.Register(version.NewCmd(a))

	if err := root.Execute(); err != nil {
		log.Errorf("%s\n", err.Error())
		os.Exit(1)
	}

	// run any debounced sync before the process exits
	a.Flush()
}
