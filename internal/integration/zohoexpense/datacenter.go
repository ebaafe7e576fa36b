package zohoexpense

import (
	"fmt"
	"strings"
)

// Scope is the OAuth2 scope requested for every Zoho Expense credential.
const Scope = "ZohoExpense.fullaccess.all"

// APIPrefix is the path prefix of every Zoho Expense REST endpoint.
const APIPrefix = "/expense/v1"

// DefaultDataCenter is used when no data center is configured.
const DefaultDataCenter = "com"

// DataCenters lists the Zoho data-center codes a credential may use.
var DataCenters = []string{"com", "eu", "in", "com.au", "jp", "com.cn", "ca"}

// IsSupportedDataCenter reports whether dc is one of DataCenters.
func IsSupportedDataCenter(dc string) bool {
	for _, d := range DataCenters {
		if d == dc {
			return true
		}
	}
	return false
}

// BaseURL returns the API host for a data center. Canada is served from
// its own top-level domain; every other code is appended to zohoapis.
func BaseURL(dc string) string {
	if dc == "ca" {
		return "https://www.zohoapis.ca"
	}
	return "https://www.zohoapis." + dc
}

// AuthURL returns the OAuth2 authorization endpoint for a data center.
func AuthURL(dc string) string {
	return accountsURL(dc) + "/oauth/v2/auth"
}

// TokenURL returns the OAuth2 token endpoint for a data center.
func TokenURL(dc string) string {
	return accountsURL(dc) + "/oauth/v2/token"
}

func accountsURL(dc string) string {
	if dc == "ca" {
		return "https://accounts.zohocloud.ca"
	}
	return "https://accounts.zoho." + dc
}

// validateDataCenter normalizes and checks a data-center code.
func validateDataCenter(dc string) (string, error) {
	dc = strings.ToLower(strings.TrimSpace(dc))
	if dc == "" {
		return DefaultDataCenter, nil
	}
	if !IsSupportedDataCenter(dc) {
		return "", fmt.Errorf("unsupported data center %q (supported: %s)", dc, strings.Join(DataCenters, ", "))
	}
	return dc, nil
}
