package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// OAuth2TransportConfig configures the OAuth2 transport.
type OAuth2TransportConfig struct {
	// BaseURL is prepended to request URLs that are not absolute (optional)
	BaseURL string

	// ClientID is the OAuth2 client ID
	ClientID string

	// ClientSecret is the OAuth2 client secret
	ClientSecret string

	// AuthURL is the OAuth2 authorization endpoint
	AuthURL string

	// TokenURL is the OAuth2 token endpoint
	TokenURL string

	// Scopes are the OAuth2 scopes (optional)
	Scopes []string

	// RefreshToken drives the authorization_code refresh flow
	RefreshToken string

	// AccessToken is used as-is when no refresh token is configured, or as
	// the initial token before the first refresh
	AccessToken string

	// HTTPClient performs both API and token requests (default: 30s timeout client)
	HTTPClient *http.Client

	// TokenSource overrides token acquisition entirely (optional)
	TokenSource oauth2.TokenSource
}

// TransportType returns the transport type identifier.
func (c *OAuth2TransportConfig) TransportType() string {
	return "oauth2"
}

// Validate checks the configuration is valid.
func (c *OAuth2TransportConfig) Validate() error {
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "https://") && !strings.HasPrefix(c.BaseURL, "http://") {
		return fmt.Errorf("base_url must start with http:// or https://")
	}
	if c.TokenSource != nil {
		return nil
	}
	if c.RefreshToken == "" {
		if c.AccessToken == "" {
			return fmt.Errorf("either access_token or refresh_token is required for oauth2 transport")
		}
		return nil
	}
	if c.ClientID == "" {
		return fmt.Errorf("client_id is required for oauth2 transport")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("client_secret is required for oauth2 transport")
	}
	if c.TokenURL == "" {
		return fmt.Errorf("token_url is required for oauth2 transport")
	}
	return nil
}

// OAuth2Config returns the x/oauth2 configuration for the authorization code
// flow. Client credentials travel in the request body.
func (c *OAuth2TransportConfig) OAuth2Config(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.AuthURL,
			TokenURL:  c.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RedirectURL: redirectURL,
		Scopes:      c.Scopes,
	}
}

// OAuth2Transport implements Transport for OAuth2-protected APIs.
type OAuth2Transport struct {
	config      *OAuth2TransportConfig
	client      *http.Client
	tokenSource oauth2.TokenSource
	rateLimiter RateLimiter
}

// NewOAuth2Transport creates a new OAuth2 transport. No token is fetched
// until the first request.
func NewOAuth2Transport(cfg *OAuth2TransportConfig) (*OAuth2Transport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	transport := &OAuth2Transport{
		config: cfg,
		client: client,
	}

	switch {
	case cfg.TokenSource != nil:
		transport.tokenSource = oauth2.ReuseTokenSource(nil, cfg.TokenSource)

	case cfg.RefreshToken != "":
		// Token refresh goes through the same client so it is logged and
		// carries the same timeouts as API calls. A configured access token
		// has no known expiry, so it is not seeded and the first request
		// refreshes.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
		token := &oauth2.Token{RefreshToken: cfg.RefreshToken}
		transport.tokenSource = cfg.OAuth2Config("").TokenSource(ctx, token)

	default:
		transport.tokenSource = oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.AccessToken,
			TokenType:   "Bearer",
		})
	}

	return transport, nil
}

// Execute sends a request with OAuth2 authentication.
func (t *OAuth2Transport) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := t.validateRequest(req); err != nil {
		return nil, &TransportError{
			Type:    ErrorTypeInvalidReq,
			Message: fmt.Sprintf("invalid request: %s", err.Error()),
			Cause:   err,
		}
	}

	if t.rateLimiter != nil {
		if err := t.rateLimiter.Wait(ctx); err != nil {
			return nil, &TransportError{
				Type:    ErrorTypeCancelled,
				Message: "rate limiter cancelled",
				Cause:   err,
			}
		}
	}

	// x/oauth2 token sources are safe for concurrent use and refresh on expiry
	token, err := t.tokenSource.Token()
	if err != nil {
		return nil, tokenError(err)
	}

	return t.executeOnce(ctx, req, token)
}

// validateRequest checks if the request is valid.
func (t *OAuth2Transport) validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("request is nil")
	}
	if req.Method == "" {
		return fmt.Errorf("method is required")
	}

	validMethods := map[string]bool{
		"GET": true, "POST": true, "PUT": true, "DELETE": true, "PATCH": true,
	}
	if !validMethods[req.Method] {
		return fmt.Errorf("invalid HTTP method: %q", req.Method)
	}

	if req.URL == "" {
		return fmt.Errorf("URL is required")
	}

	return nil
}

// executeOnce performs a single request execution with OAuth2 authentication.
func (t *OAuth2Transport) executeOnce(ctx context.Context, req *Request, token *oauth2.Token) (*Response, error) {
	// Build URL
	requestURL := req.URL
	if !strings.HasPrefix(requestURL, "http://") && !strings.HasPrefix(requestURL, "https://") {
		requestURL = t.config.BaseURL + requestURL
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, requestURL, body)
	if err != nil {
		return nil, &TransportError{
			Type:    ErrorTypeInvalidReq,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Cause:   err,
		}
	}

	// Apply headers
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	token.SetAuthHeader(httpReq)

	// Execute request
	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, classifyHTTPError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{
			Type:      ErrorTypeConnection,
			Message:   fmt.Sprintf("failed to read response body: %v", err),
			Retryable: true,
			Cause:     err,
		}
	}

	requestID := resp.Header.Get("X-Request-ID")

	if resp.StatusCode >= 400 {
		return nil, parseErrorResponse(resp.StatusCode, respBody, requestID)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
		Metadata: map[string]interface{}{
			MetadataRequestID: requestID,
		},
	}, nil
}

// Name returns the transport identifier.
func (t *OAuth2Transport) Name() string {
	return "oauth2"
}

// SetRateLimiter configures rate limiting for this transport.
func (t *OAuth2Transport) SetRateLimiter(limiter RateLimiter) {
	t.rateLimiter = limiter
}

// tokenError converts a token acquisition failure into an auth TransportError.
func tokenError(err error) *TransportError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		message := "failed to acquire OAuth2 token"
		if retrieveErr.ErrorCode != "" {
			message = fmt.Sprintf("%s: %s", message, retrieveErr.ErrorCode)
		}
		if retrieveErr.ErrorDescription != "" {
			message = fmt.Sprintf("%s: %s", message, retrieveErr.ErrorDescription)
		}
		statusCode := 0
		if retrieveErr.Response != nil {
			statusCode = retrieveErr.Response.StatusCode
		}
		return &TransportError{
			Type:       ErrorTypeAuth,
			StatusCode: statusCode,
			Message:    message,
			Cause:      err,
		}
	}

	return &TransportError{
		Type:    ErrorTypeAuth,
		Message: fmt.Sprintf("failed to acquire OAuth2 token: %v", err),
		Cause:   err,
	}
}

// parseErrorResponse parses non-2xx responses. Zoho APIs answer with a
// {code, message} body; the token endpoint uses the OAuth2 {error} form.
func parseErrorResponse(statusCode int, body []byte, requestID string) error {
	var errBody struct {
		Error            string      `json:"error"`
		ErrorDescription string      `json:"error_description"`
		Code             json.Number `json:"code"`
		Message          string      `json:"message"`
	}
	decoded := json.Unmarshal(body, &errBody) == nil

	if decoded && errBody.Error != "" {
		return classifyOAuth2Error(statusCode, errBody.Error, errBody.ErrorDescription, requestID)
	}

	errorType, retryable := classifyStatus(statusCode)

	message := fmt.Sprintf("request failed with status %d", statusCode)
	metadata := map[string]interface{}{
		MetadataResponseBody: string(body),
	}
	if decoded && errBody.Message != "" {
		message = errBody.Message
		if errBody.Code != "" {
			metadata["zoho_code"] = errBody.Code.String()
		}
	}

	return &TransportError{
		Type:       errorType,
		StatusCode: statusCode,
		Message:    message,
		RequestID:  requestID,
		Retryable:  retryable,
		Metadata:   metadata,
	}
}

// classifyStatus maps an HTTP status code onto an ErrorType.
func classifyStatus(statusCode int) (ErrorType, bool) {
	switch {
	case statusCode >= 500:
		return ErrorTypeServer, true
	case statusCode == http.StatusTooManyRequests:
		return ErrorTypeRateLimit, true
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return ErrorTypeAuth, false
	default:
		return ErrorTypeClient, false
	}
}

// classifyOAuth2Error categorizes OAuth2 errors by error code.
func classifyOAuth2Error(statusCode int, errorCode, description, requestID string) error {
	var errorType ErrorType
	var retryable bool

	switch errorCode {
	case "invalid_grant", "invalid_client", "unauthorized_client", "access_denied", "invalid_token":
		errorType = ErrorTypeAuth
	case "temporarily_unavailable", "server_error":
		errorType = ErrorTypeServer
		retryable = true
	default:
		errorType, retryable = classifyStatus(statusCode)
	}

	message := fmt.Sprintf("OAuth2 error %s", errorCode)
	if description != "" {
		message = fmt.Sprintf("%s: %s", message, description)
	}

	return &TransportError{
		Type:       errorType,
		StatusCode: statusCode,
		Message:    message,
		RequestID:  requestID,
		Retryable:  retryable,
		Metadata: map[string]interface{}{
			"oauth2_error": errorCode,
		},
	}
}
