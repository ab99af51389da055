/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cli implements the rtti command: inspect, export and validate the
// type universe registered in the binary.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/builtin"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/internal/ctxlog"
	"dirpx.dev/rtti/internal/logging"
	"dirpx.dev/rtti/plugin"
	"dirpx.dev/rtti/registry"
)

// EnvPrefix prefixes every environment variable the command reads.
const EnvPrefix = "RTTI"

// app carries the state shared by subcommands.
type app struct {
	fs      afero.Fs
	v       *viper.Viper
	plugins []plugin.Plugin
	version string

	reg *registry.Registry
}

// Execute runs the rtti command with os.Args.
func Execute(version string) error {
	a := &app{
		fs:      afero.NewOsFs(),
		v:       viper.New(),
		plugins: []plugin.Plugin{builtin.Plugin(), Plugin()},
		version: version,
	}
	return newRootCmd(a).Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "rtti",
		Short:         "Inspect the runtime type registry",
		Long:          "rtti lists, exports and validates the type universe registered in this binary.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "TOML configuration file")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (text, json)")
	pf.Bool("detect-collisions", false, "log identity collisions during registration")

	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindPFlags(pf)

	root.AddCommand(
		newTypesCmd(a),
		newExportCmd(a),
		newValidateCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup resolves the configuration, installs the logger and loads the
// plugins into a fresh registry that is then closed for registration.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxlog.WithLogger(ctx, log)
	cmd.SetContext(ctx)

	a.reg = registry.New(cfg, log)
	if err := plugin.Load(ctx, a.reg, a.plugins...); err != nil {
		return fmt.Errorf("load plugins: %w", err)
	}
	a.reg.SetReadOnly(true)
	log.Debug("rtti: registry ready", "types", a.reg.Len())
	return nil
}

func (a *app) config() (apis.Config, error) {
	opts := []config.Option{
		config.WithLogging(a.v.GetString("log-level"), a.v.GetString("log-format")),
	}
	if a.v.IsSet("detect-collisions") {
		opts = append(opts, config.WithDetectCollisions(a.v.GetBool("detect-collisions")))
	}
	path := a.v.GetString("config")
	if path == "" {
		return config.NewConfig(opts...), nil
	}
	return config.Load(path, opts...)
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.version)
		},
	}
}
