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
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTypesCmd(a *app) *cobra.Command {
	var scope string
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the registered types",
		Long:  "List the active version of every registered type in registration order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID\tVERSION\tSCOPE\tFIELDS\tVALUES")
			for _, t := range a.reg.Types() {
				if scope != "" && t.Scope != scope && !strings.HasPrefix(t.Scope, scope+".") {
					continue
				}
				fmt.Fprintf(w, "%s\t%016x\t%d\t%s\t%d\t%d\n",
					t.Name, t.ID(), t.Version, t.Scope, len(t.Fields), len(t.Values))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "", "only list types registered under this scope")
	return cmd
}
