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

// Package auth implements the OAuth2 authorization code flow that obtains
// the refresh token the other commands use.
package auth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/term"

	"github.com/tombee/zoho-expense/internal/commands/shared"
	"github.com/tombee/zoho-expense/internal/config"
	"github.com/tombee/zoho-expense/internal/integration/zohoexpense"
	"github.com/tombee/zoho-expense/internal/log"
	"github.com/tombee/zoho-expense/internal/secrets"
	"github.com/tombee/zoho-expense/pkg/httpclient"
)

// DefaultKeychainKey is the keychain entry the refresh token is stored under.
const DefaultKeychainKey = "refresh_token"

// newOAuthConfig builds the client configuration for the configured data center.
var newOAuthConfig = func(cfg *config.Config) *oauth2.Config {
	return cfg.Credential().TransportConfig(nil).OAuth2Config(cfg.Zoho.RedirectURL)
}

// newKeychain returns the store the refresh token is written to.
var newKeychain = func() *secrets.KeychainProvider {
	return secrets.NewKeychainProvider(secrets.KeychainService)
}

// NewCommand creates the auth command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize zoho-expense with a Zoho account",
		Long: `Obtain a refresh token through the OAuth2 authorization code flow.

  1. Register a server-based client in the Zoho API console with the
     configured redirect URL (default ` + config.DefaultRedirectURL + `).
  2. Run 'zoho-expense auth url' and open the printed link.
  3. Copy the code parameter from the redirect and run
     'zoho-expense auth exchange --code <code>'.`,
	}

	cmd.AddCommand(newURLCommand())
	cmd.AddCommand(newExchangeCommand())

	return cmd
}

func newURLCommand() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the consent URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadClientConfig(cmd.Context())
			if err != nil {
				return err
			}
			if cfg.Zoho.ClientID == "" {
				return shared.NewConfigError("zoho.client_id is required", nil)
			}

			if state == "" {
				state = uuid.NewString()
			}
			fmt.Fprintln(cmd.OutOrStdout(), zohoexpense.AuthorizationURL(newOAuthConfig(cfg), state))
			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "State value echoed back on the redirect (default: random)")

	return cmd
}

func newExchangeCommand() *cobra.Command {
	var (
		code      string
		key       string
		printOnly bool
	)

	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Exchange an authorization code for a refresh token",
		Long: `Exchange the code from the consent redirect for a refresh token.

The token is stored in the system keychain and the config file is updated
to reference it as keychain:<key>. With --print the token is written to
stdout instead and nothing is stored.

If no client secret is configured it is read from stdin, without echo on
a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if code == "" {
				return shared.NewInvalidInputError("--code is required", nil)
			}

			cfg, err := loadClientConfig(ctx)
			if err != nil {
				return err
			}
			if cfg.Zoho.ClientID == "" {
				return shared.NewConfigError("zoho.client_id is required", nil)
			}
			if cfg.Zoho.ClientSecret == "" {
				cfg.Zoho.ClientSecret, err = readSecret(cmd)
				if err != nil {
					return shared.NewInvalidInputError("failed to read client secret", err)
				}
				if cfg.Zoho.ClientSecret == "" {
					return shared.NewConfigError("zoho.client_secret is required", nil)
				}
			}

			logger := log.New(cfg.LoggerConfig())
			httpCfg := httpclient.DefaultConfig()
			httpCfg.Timeout = cfg.HTTP.Timeout
			httpCfg.Logger = logger
			client, err := httpclient.New(httpCfg)
			if err != nil {
				return shared.NewConfigError("failed to create HTTP client", err)
			}

			token, err := zohoexpense.ExchangeCode(ctx, newOAuthConfig(cfg), client, code)
			if err != nil {
				return shared.NewAPIError("authorization failed", err)
			}

			if printOnly {
				fmt.Fprintln(cmd.OutOrStdout(), token.RefreshToken)
				return nil
			}

			if err := newKeychain().Store(ctx, key, token.RefreshToken); err != nil {
				return shared.NewExecutionError("failed to store refresh token", err)
			}

			fileCfg, path, err := config.LoadFile(shared.GetConfigPath())
			if err != nil {
				return shared.NewConfigError("failed to load configuration", err)
			}
			fileCfg.Zoho.RefreshToken = "keychain:" + key
			if fileCfg.Zoho.ClientID == "" {
				fileCfg.Zoho.ClientID = cfg.Zoho.ClientID
			}
			if err := fileCfg.Save(path); err != nil {
				return shared.NewConfigError("failed to save configuration", err)
			}

			logger.Info("refresh token stored",
				"keychain_key", key,
				"token", log.SanitizeSecret(token.RefreshToken),
				"config", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Refresh token stored in keychain as %q; %s updated.\n", key, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Authorization code from the redirect (required)")
	cmd.Flags().StringVar(&key, "key", DefaultKeychainKey, "Keychain entry to store the refresh token under")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the refresh token instead of storing it")

	return cmd
}

// loadClientConfig loads configuration and resolves the client identity.
// Token fields are cleared: the flow does not need them and a
// keychain reference may not exist yet.
func loadClientConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := shared.LoadConfig()
	if err != nil {
		return nil, shared.NewConfigError("failed to load configuration", err)
	}
	cfg.Zoho.RefreshToken = ""
	cfg.Zoho.AccessToken = ""

	if err := cfg.ResolveSecrets(ctx, secrets.NewDefaultRegistry()); err != nil {
		return nil, shared.NewConfigError("failed to resolve client credentials", err)
	}
	return cfg, nil
}

// readSecret prompts for the client secret on a terminal, or reads the
// first line of piped input.
func readSecret(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Client secret (hidden): ")
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
