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

package cli

import (
	"github.com/spf13/cobra"

	"github.com/tombee/zoho-expense/internal/commands/shared"
)

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	shared.SetVersion(v, c, b)
}

// NewRootCommand creates the root Cobra command for zoho-expense
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zoho-expense",
		Short: "zoho-expense - run Zoho Expense operations",
		Long: `zoho-expense runs Zoho Expense API operations (expenses, expense reports,
trips, users and categories) from the command line or a workflow step.

Run 'zoho-expense auth url' to authorize an account.
Run 'zoho-expense operations' to see what can be run.`,
		SilenceUsage:  true, // Don't show usage on errors
		SilenceErrors: true, // We handle errors ourselves for proper exit codes
	}

	// Get flag pointers from shared package
	flags := shared.RegisterFlagPointers()

	// Add global flags
	cmd.PersistentFlags().BoolVarP(flags.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(flags.JSON, "json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolVar(flags.Trace, "trace", false, "Print OpenTelemetry spans to stderr")
	cmd.PersistentFlags().StringVar(flags.Config, "config", "", "Path to config file (default: ~/.config/zoho-expense/config.yaml)")
	cmd.PersistentFlags().StringVar(flags.LogFormat, "log-format", "", "Log format: json or text (default from config)")
	cmd.PersistentFlags().DurationVar(flags.Timeout, "timeout", 0, "HTTP request timeout (default from config)")

	return cmd
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return shared.GetVersion()
}

// HandleExitError handles exit errors with proper exit codes
func HandleExitError(err error) {
	shared.HandleExitError(err)
}
