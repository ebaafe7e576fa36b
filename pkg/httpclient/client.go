// Package httpclient builds the *http.Client every Zoho Expense call goes
// through: the token endpoint exchange, the OAuth2-wrapped API transport and
// the connection test.
//
// The client composes:
//   - Request logging with sanitized URLs (OAuth codes and tokens redacted)
//   - User-Agent header injection
//   - Correlation ID propagation
//   - TLS 1.2+ with secure defaults
//   - Connection pooling
//
// Requests are never retried; a failed call surfaces to the caller as-is.
//
// Example usage:
//
//	cfg := httpclient.DefaultConfig()
//	cfg.Timeout = 60 * time.Second
//	client, err := httpclient.New(cfg)
//	if err != nil {
//	    return err
//	}
package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// New creates a new HTTP client with the given configuration.
//
// Returns an error if the configuration is invalid.
func New(cfg Config) (*http.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseTransport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		// TLS configuration: 1.2 minimum, 1.3 preferred
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS13,
		},

		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Transport: newLoggingTransport(baseTransport, cfg),
		Timeout:   cfg.Timeout,
	}, nil
}
