// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package options implements the options command, which lists the
// name/value pairs a workflow editor offers for ID parameters.
package options

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tombee/zoho-expense/internal/commands/shared"
	"github.com/tombee/zoho-expense/internal/integration/zohoexpense"
)

// NewCommand creates the options command
func NewCommand() *cobra.Command {
	var organizationID string

	cmd := &cobra.Command{
		Use:   "options <loader>",
		Short: "List selectable values for a parameter",
		Long: `Fetch the name/value pairs used to populate a parameter, for example
the categories an expense can be filed under.

Loaders: ` + strings.Join(zohoexpense.OptionLoaders(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: zohoexpense.OptionLoaders(),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, ctx, err := shared.NewSession(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer session.Close(ctx)

			zoho, err := session.ZohoExpense()
			if err != nil {
				return shared.NewExecutionError("connector unavailable", err)
			}

			values, err := zoho.LoadOptions(ctx, args[0], organizationID)
			if err != nil {
				return shared.ClassifyError(fmt.Sprintf("failed to load %s", args[0]), err)
			}

			out := cmd.OutOrStdout()
			if shared.GetJSON() {
				return shared.EmitJSON(out, values)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVALUE")
			for _, v := range values {
				fmt.Fprintf(w, "%s\t%s\n", v.Name, v.Value)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&organizationID, "organization-id", "", "Organization to query instead of the configured default")

	return cmd
}
