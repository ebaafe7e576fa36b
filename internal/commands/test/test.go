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

// Package test implements the test command, which checks the configured
// credential against the Zoho Expense API.
package test

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tombee/zoho-expense/internal/commands/shared"
	"github.com/tombee/zoho-expense/internal/log"
)

// Result is the JSON output of the test command.
type Result struct {
	Success    bool   `json:"success"`
	DataCenter string `json:"data_center"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// NewCommand creates the test command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the configured credential",
		Long:  `Verify the credential by listing the organizations it can access.`,
		Args:  cobra.NoArgs,
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

			start := time.Now()
			testErr := zoho.TestConnection(ctx)
			result := Result{
				Success:    testErr == nil,
				DataCenter: zoho.DataCenter(),
				DurationMS: time.Since(start).Milliseconds(),
			}
			if testErr != nil {
				result.Error = testErr.Error()
				session.Logger.Error("connection test failed", log.Error(testErr))
			}

			out := cmd.OutOrStdout()
			if shared.GetJSON() {
				if err := shared.EmitJSON(out, result); err != nil {
					return err
				}
			} else if result.Success {
				fmt.Fprintf(out, "Connection OK (data center %s, %dms)\n", result.DataCenter, result.DurationMS)
			}

			if testErr != nil {
				return shared.ClassifyError("connection test failed", testErr)
			}
			return nil
		},
	}

	return cmd
}
