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

// Package infra provides operations and definitions for the
// local infrastructure for NoteBoi
package infra

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/noteboi/noteboi/pkg/cli/client"
	"github.com/noteboi/noteboi/pkg/cli/config"
	"github.com/noteboi/noteboi/pkg/cli/consts"
	"github.com/noteboi/noteboi/pkg/cli/context"
	"github.com/noteboi/noteboi/pkg/cli/database"
	"github.com/noteboi/noteboi/pkg/cli/log"
	"github.com/noteboi/noteboi/pkg/cli/utils"
	"github.com/noteboi/noteboi/pkg/clock"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	// DefaultAPIEndpoint is the default API endpoint used when none is configured
	DefaultAPIEndpoint = "http://localhost:3001/api"
	// DefaultDebounceIntervalMs is the default quiet interval before a
	// debounced sync runs
	DefaultDebounceIntervalMs = 500
)

// RunEFunc is a function type of noteboi commands
type RunEFunc func(*cobra.Command, []string) error

func getPaths() (context.Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return context.Paths{}, errors.Wrap(err, "finding home directory")
	}

	configHome, err := os.UserConfigDir()
	if err != nil {
		return context.Paths{}, errors.Wrap(err, "finding config directory")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = fmt.Sprintf("%s/.local/share", home)
	}

	return context.Paths{
		Home:   home,
		Config: configHome,
		Data:   dataHome,
	}, nil
}

func getDBPath(paths context.Paths, customPath string) string {
	if customPath != "" {
		return customPath
	}

	return fmt.Sprintf("%s/%s/%s", paths.Data, consts.NoteBoiDirName, consts.NoteBoiDBFileName)
}

// initFiles creates the noteboi directories and seeds the config file on
// first run
func initFiles(ctx context.NoteCtx, apiEndpoint string) error {
	configDir := fmt.Sprintf("%s/%s", ctx.Paths.Config, consts.NoteBoiDirName)
	if err := utils.EnsureDir(configDir); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	dataDir := fmt.Sprintf("%s/%s", ctx.Paths.Data, consts.NoteBoiDirName)
	if err := utils.EnsureDir(dataDir); err != nil {
		return errors.Wrap(err, "creating data directory")
	}

	configPath := config.GetPath(ctx)
	ok, err := utils.FileExists(configPath)
	if err != nil {
		return errors.Wrap(err, "checking config file")
	}
	if ok {
		return nil
	}

	if apiEndpoint == "" {
		apiEndpoint = DefaultAPIEndpoint
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cf := config.Config{
		Editor:             editor,
		APIEndpoint:        apiEndpoint,
		AutoSync:           true,
		DebounceIntervalMs: DefaultDebounceIntervalMs,
	}

	if err := config.Write(ctx, cf); err != nil {
		return errors.Wrap(err, "seeding config file")
	}

	return nil
}

// Init initializes the NoteBoi environment and returns a new context.
// apiEndpoint overrides the seeded config value on first run.
func Init(versionTag, apiEndpoint, dbPath string) (*context.NoteCtx, error) {
	// optional; used to override endpoint and debug flags in development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Debug("loading .env: %v\n", err)
	}

	paths, err := getPaths()
	if err != nil {
		return nil, errors.Wrap(err, "resolving paths")
	}

	ctx := context.NoteCtx{
		Paths:   paths,
		Version: versionTag,
	}

	if err := initFiles(ctx, apiEndpoint); err != nil {
		return nil, errors.Wrap(err, "initializing files")
	}

	db, err := database.Open(getDBPath(paths, dbPath))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to db")
	}
	if err := database.InitSchema(db); err != nil {
		return nil, errors.Wrap(err, "initializing database")
	}
	ctx.DB = db

	ret, err := setupCtx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "setting up the context")
	}

	return &ret, nil
}

// setupCtx enriches the base context with values from the config file
func setupCtx(ctx context.NoteCtx) (context.NoteCtx, error) {
	cf, err := config.Read(ctx)
	if err != nil {
		return ctx, errors.Wrap(err, "reading config")
	}

	apiEndpoint := cf.APIEndpoint
	if env := os.Getenv("NOTEBOI_API_ENDPOINT"); env != "" {
		apiEndpoint = env
	}

	debounceMs := cf.DebounceIntervalMs
	if debounceMs <= 0 {
		debounceMs = DefaultDebounceIntervalMs
	}

	ret := context.NoteCtx{
		Paths:            ctx.Paths,
		Version:          ctx.Version,
		DB:               ctx.DB,
		APIEndpoint:      apiEndpoint,
		Editor:           cf.Editor,
		AutoSync:         cf.AutoSync,
		DebounceInterval: time.Duration(debounceMs) * time.Millisecond,
		Clock:            clock.New(),
		HTTPClient:       client.NewRateLimitedHTTPClient(),
	}

	return ret, nil
}
