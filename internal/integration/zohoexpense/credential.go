package zohoexpense

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/tombee/zoho-expense/internal/operation/transport"
)

// Credential is the OAuth2 material and tenant default for one Zoho account.
type Credential struct {
	// DataCenter selects the regional API and accounts hosts
	DataCenter string

	// OrganizationID is the default tenant; a per-call organizationId wins over it
	OrganizationID string

	ClientID     string
	ClientSecret string
	RefreshToken string

	// AccessToken is used directly when no refresh token is available
	AccessToken string
}

// Validate checks that the credential can authenticate requests.
func (c Credential) Validate() error {
	if _, err := validateDataCenter(c.DataCenter); err != nil {
		return err
	}
	if c.AccessToken != "" {
		return nil
	}
	if c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "" {
		return fmt.Errorf("credential requires either an access token or client id, client secret and refresh token")
	}
	return nil
}

// TransportConfig returns the OAuth2 transport configuration for this
// credential. httpClient is used for both token refresh and API calls.
func (c Credential) TransportConfig(httpClient *http.Client) *transport.OAuth2TransportConfig {
	dc, err := validateDataCenter(c.DataCenter)
	if err != nil {
		dc = c.DataCenter
	}
	return &transport.OAuth2TransportConfig{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		AuthURL:      AuthURL(dc),
		TokenURL:     TokenURL(dc),
		Scopes:       []string{Scope},
		RefreshToken: c.RefreshToken,
		AccessToken:  c.AccessToken,
		HTTPClient:   httpClient,
	}
}

// AuthorizationURL returns the consent URL a user opens to grant access.
// Offline access with forced consent makes Zoho issue a refresh token.
func AuthorizationURL(cfg *oauth2.Config, state string) string {
	return cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// ExchangeCode trades an authorization code for a token. Zoho returns the
// refresh token only on this first exchange.
func ExchangeCode(ctx context.Context, cfg *oauth2.Config, httpClient *http.Client, code string) (*oauth2.Token, error) {
	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	if token.RefreshToken == "" {
		return nil, fmt.Errorf("token response did not include a refresh token; revoke the existing grant and authorize again")
	}
	return token, nil
}
