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

package run

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tombee/zoho-expense/internal/commands/shared"
	"github.com/tombee/zoho-expense/internal/jq"
	"github.com/tombee/zoho-expense/internal/log"
	"github.com/tombee/zoho-expense/internal/operation"
)

// NewCommand creates the run command
func NewCommand() *cobra.Command {
	var (
		paramsFile     string
		params         []string
		continueOnFail bool
		fields         []string
		query          string
	)

	cmd := &cobra.Command{
		Use:   "run <resource> <operation>",
		Short: "Run an operation against Zoho Expense",
		Long: `Run one operation for every input item and print the output records
as JSON.

Input items come from --params, a JSON or YAML file holding one object
(one item) or a list of objects (many items); use "-" for stdin. Values
given with --param are applied to every item. Nested parameters can be
written with dots, e.g. --param lineItems.lineItemValues=[...].

Resources: expense, expenseReport, trip, user, category.
Run 'zoho-expense operations' for the full list.`,
		Example: `  # Fetch one expense
  zoho-expense run expense get --param expenseId=460000000012345

  # Page through every approved report
  zoho-expense run expenseReport getAll --param returnAll=true \
    --param 'filters={status: approved}' --fields report_id,report_name

  # Submit several reports, continuing past failures
  zoho-expense run expenseReport submit --params reports.yaml --continue-on-fail`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opName := args[0] + "." + args[1]

			if query != "" {
				if err := jq.NewExecutor(0, 0).Validate(query); err != nil {
					return shared.NewInvalidInputError("invalid --query", err)
				}
			}

			items, err := loadItems(paramsFile, cmd.InOrStdin())
			if err != nil {
				return shared.NewInvalidInputError("failed to load params", err)
			}
			if err := applyParams(items, params); err != nil {
				return shared.NewInvalidInputError("failed to parse --param", err)
			}

			session, ctx, err := shared.NewSession(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer session.Close(ctx)

			conn, err := session.Connector()
			if err != nil {
				return shared.NewExecutionError("connector unavailable", err)
			}

			logger := log.WithOperation(session.Logger, args[0], args[1])
			logger.Info("running operation", "items", len(items), "continue_on_fail", continueOnFail)

			results, err := operation.RunItems(ctx, conn, opName, items, operation.RunOptions{
				ContinueOnFail: continueOnFail,
				Logger:         logger,
			})
			if err != nil {
				return shared.ClassifyError(fmt.Sprintf("%s failed", opName), err)
			}

			return writeRecords(ctx, cmd.OutOrStdout(), operation.FlattenRecords(results), fields, query)
		},
	}

	cmd.Flags().StringVarP(&paramsFile, "params", "p", "", "JSON or YAML file with input items (- for stdin)")
	cmd.Flags().StringArrayVar(&params, "param", nil, "Parameter in key=value format, applied to every item (repeatable)")
	cmd.Flags().BoolVar(&continueOnFail, "continue-on-fail", false, "Emit an error record for a failed item and keep going")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "Only keep these top-level fields in each record")
	cmd.Flags().StringVarP(&query, "query", "q", "", "jq expression applied to the array of output records")

	return cmd
}
