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

// Package operations implements the operations command.
package operations

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tombee/zoho-expense/internal/commands/shared"
	"github.com/tombee/zoho-expense/internal/integration/zohoexpense"
)

// NewCommand creates the operations command. It needs no credentials.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operations [resource.operation]",
		Short: "List available operations",
		Long: `List every resource/operation pair, or show the parameters of one.

  zoho-expense operations
  zoho-expense operations expenseReport.approve`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showOperation(cmd, args[0])
			}
			return listOperations(cmd)
		},
	}

	return cmd
}

func listOperations(cmd *cobra.Command) error {
	ops := zohoexpense.ListOperations()
	out := cmd.OutOrStdout()

	if shared.GetJSON() {
		return shared.EmitJSON(out, ops)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATION\tCATEGORY\tDESCRIPTION")
	for _, op := range ops {
		fmt.Fprintf(w, "%s\t%s\t%s\n", op.Name, op.Category, op.Description)
	}
	return w.Flush()
}

func showOperation(cmd *cobra.Command, name string) error {
	schema := zohoexpense.DescribeOperation(name)
	if schema == nil {
		return shared.NewInvalidInputError(fmt.Sprintf("unknown operation %q", name), nil)
	}

	out := cmd.OutOrStdout()
	if shared.GetJSON() {
		return shared.EmitJSON(out, schema)
	}

	fmt.Fprintf(out, "%s\n  %s\n\nParameters:\n", name, schema.Description)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, p := range schema.Parameters {
		req := "optional"
		if p.Required {
			req = "required"
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", p.Name, p.Type, req, strings.TrimSpace(p.Description))
	}
	return w.Flush()
}
