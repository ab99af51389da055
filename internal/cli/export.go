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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dirpx.dev/rtti/export"
	"dirpx.dev/rtti/internal/ctxlog"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write the type universe to a file",
		Long: `Write the type universe to a JSON, YAML or HCL document. The format follows
the file extension unless --format is given; a .zst suffix compresses the
document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []export.Option
			if s := a.v.GetString("export.format"); s != "" {
				f, err := export.ParseFormat(s)
				if err != nil {
					return err
				}
				opts = append(opts, export.WithFormat(f))
			}
			if a.v.IsSet("export.fields") {
				opts = append(opts, export.WithFields(a.v.GetBool("export.fields")))
			}
			if a.v.IsSet("export.functions") {
				opts = append(opts, export.WithFunctions(a.v.GetBool("export.functions")))
			}

			if err := export.Export(a.fs, args[0], a.reg, opts...); err != nil {
				return err
			}
			ctxlog.FromContext(cmd.Context()).Info("rtti: export written", "path", args[0], "types", a.reg.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d types to %s\n", a.reg.Len(), args[0])
			return nil
		},
	}
	f := cmd.Flags()
	f.String("format", "", "document format (json, yaml, hcl)")
	f.Bool("fields", true, "include fields")
	f.Bool("functions", false, "include functions")
	_ = a.v.BindPFlag("export.format", f.Lookup("format"))
	_ = a.v.BindPFlag("export.fields", f.Lookup("fields"))
	_ = a.v.BindPFlag("export.functions", f.Lookup("functions"))
	return cmd
}
