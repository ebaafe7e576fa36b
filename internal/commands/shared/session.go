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

package shared

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tombee/zoho-expense/internal/config"
	"github.com/tombee/zoho-expense/internal/integration"
	"github.com/tombee/zoho-expense/internal/integration/zohoexpense"
	"github.com/tombee/zoho-expense/internal/log"
	"github.com/tombee/zoho-expense/internal/operation"
	"github.com/tombee/zoho-expense/internal/operation/api"
	"github.com/tombee/zoho-expense/internal/operation/transport"
	"github.com/tombee/zoho-expense/internal/secrets"
	"github.com/tombee/zoho-expense/internal/tracing"
	"github.com/tombee/zoho-expense/pkg/httpclient"
)

// Session is everything one command invocation needs to call Zoho Expense.
type Session struct {
	Config   *config.Config
	Logger   *slog.Logger
	RunID    string
	Registry *operation.Registry

	tracer *tracing.Provider
}

// LoadConfig loads the configuration named by --config and applies the
// global flag overrides.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigPath())
	if err != nil {
		return nil, err
	}
	if verboseFlag {
		cfg.Log.Level = "debug"
	}
	if logFormatFlag != "" {
		cfg.Log.Format = logFormatFlag
	}
	if timeoutFlag > 0 {
		cfg.HTTP.Timeout = timeoutFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewSession loads configuration, resolves credential secrets and builds the
// connector registry. Logs go to stderr. The returned context carries the
// run's correlation ID, which is sent on every request.
func NewSession(ctx context.Context, stderr io.Writer) (*Session, context.Context, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, ctx, NewConfigError("failed to load configuration", err)
	}

	runID := uuid.NewString()
	logCfg := cfg.LoggerConfig()
	logCfg.Output = stderr
	logger := log.WithRunContext(log.New(logCfg), runID)

	// Connectors pick up the default logger when constructed
	slog.SetDefault(logger)

	ctx = tracing.ToContext(ctx, tracing.CorrelationID(runID))

	s := &Session{Config: cfg, Logger: logger, RunID: runID}

	if traceFlag {
		s.tracer, err = tracing.NewConsoleProvider("zoho-expense", version, stderr)
		if err != nil {
			return nil, ctx, NewExecutionError("failed to start tracing", err)
		}
	}

	if err := cfg.ResolveSecrets(ctx, secrets.NewDefaultRegistry()); err != nil {
		return nil, ctx, NewConfigError("failed to resolve credentials", err)
	}
	if err := cfg.ValidateCredential(); err != nil {
		return nil, ctx, NewConfigError("invalid credentials", err)
	}

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.HTTP.Timeout
	httpCfg.UserAgent = "zoho-expense/" + version
	httpCfg.Logger = logger
	client, err := httpclient.New(httpCfg)
	if err != nil {
		return nil, ctx, NewConfigError("failed to create HTTP client", err)
	}

	oauth, err := transport.NewOAuth2Transport(cfg.Credential().TransportConfig(client))
	if err != nil {
		return nil, ctx, NewConfigError("failed to create transport", err)
	}
	oauth.SetRateLimiter(transport.NewRateLimiter(cfg.HTTP.RateLimit))

	s.Registry, err = integration.NewRegistry(map[string]*api.ProviderConfig{
		zohoexpense.Name: {
			Transport: oauth,
			BaseURL:   cfg.Zoho.APIBaseURL,
			AdditionalAuth: map[string]string{
				"data_center":     cfg.Zoho.DataCenter,
				"organization_id": cfg.Zoho.OrganizationID,
			},
		},
	})
	if err != nil {
		return nil, ctx, NewConfigError("failed to create connector", err)
	}

	logger.Debug("session ready",
		slog.String("data_center", cfg.Zoho.DataCenter),
		slog.Float64("rate_limit", cfg.HTTP.RateLimit),
		slog.Bool("trace", traceFlag))

	return s, ctx, nil
}

// Connector returns the Zoho Expense connector.
func (s *Session) Connector() (operation.Connector, error) {
	return s.Registry.Get(zohoexpense.Name)
}

// ZohoExpense returns the concrete Zoho Expense integration, for the
// commands that need more than Execute.
func (s *Session) ZohoExpense() (*zohoexpense.ZohoExpenseIntegration, error) {
	conn, err := s.Connector()
	if err != nil {
		return nil, err
	}
	zoho, ok := conn.(*zohoexpense.ZohoExpenseIntegration)
	if !ok {
		return nil, fmt.Errorf("connector %s has unexpected type %T", zohoexpense.Name, conn)
	}
	return zoho, nil
}

// Close flushes pending spans.
func (s *Session) Close(ctx context.Context) {
	if s.tracer == nil {
		return
	}
	if err := s.tracer.Shutdown(ctx); err != nil {
		s.Logger.Warn("failed to flush traces", log.Error(err))
	}
}
