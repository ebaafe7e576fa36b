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

/*
Package cli provides the root command for the zoho-expense CLI.

This package creates the main Cobra command and handles global concerns like
version information, persistent flags, and error handling. Individual commands
are implemented in the internal/commands subpackages.

# Command Tree

	zoho-expense
	├── run           Run an operation for each input item
	├── operations    List operations and their parameters
	├── options       List selectable values (categories, currencies, ...)
	├── auth          OAuth2 authorization code flow (url, exchange)
	├── test          Test the configured credential
	└── version       Show version

# Usage

From main.go:

	cli.SetVersion(version, commit, date)
	rootCmd := cli.NewRootCommand()
	// ... add commands ...
	if err := rootCmd.Execute(); err != nil {
	    cli.HandleExitError(err)
	}

# Global Flags

	--verbose, -v    Enable debug logging
	--json           Output in JSON format
	--trace          Print OpenTelemetry spans to stderr
	--config         Path to config file
	--log-format     json or text
	--timeout        HTTP request timeout

# Exit Codes

  - 0: Success
  - 1: General error
  - 2: Invalid input (arguments, parameters, unknown loader)
  - 3: Configuration or credential error
  - 4: Zoho Expense API error
*/
package cli
