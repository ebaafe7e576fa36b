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

package secrets

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	// legacyEnvVarRegex matches ${VAR_NAME} syntax
	legacyEnvVarRegex = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

	// schemeRegex matches scheme:reference format
	schemeRegex = regexp.MustCompile(`^([a-z][a-z0-9]*):(.+)$`)
)

// Registry routes secret references to providers by scheme.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a new, empty registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// NewDefaultRegistry returns a registry with the env and keychain providers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(NewEnvProvider())
	_ = r.Register(NewKeychainProvider(KeychainService))
	return r
}

// Register adds a provider to the registry.
// Returns an error if a provider with the same scheme already exists.
func (r *Registry) Register(provider Provider) error {
	scheme := provider.Scheme()
	if _, exists := r.providers[scheme]; exists {
		return fmt.Errorf("provider for scheme %q already registered", scheme)
	}
	r.providers[scheme] = provider
	return nil
}

// IsReference reports whether value is a reference this registry resolves.
// Values with an unregistered scheme prefix are treated as plain values.
func (r *Registry) IsReference(value string) bool {
	scheme, _, ok := r.parseReference(value)
	if !ok {
		return false
	}
	_, exists := r.providers[scheme]
	return exists
}

// Resolve returns the secret for a reference, or value itself when it is
// not a reference.
func (r *Registry) Resolve(ctx context.Context, value string) (string, error) {
	scheme, key, ok := r.parseReference(value)
	if !ok {
		return value, nil
	}

	provider, exists := r.providers[scheme]
	if !exists {
		return value, nil
	}

	if strings.TrimSpace(key) == "" {
		return "", &ResolutionError{Reference: value, Scheme: scheme, Reason: "empty key"}
	}

	secret, err := provider.Resolve(ctx, key)
	if err != nil {
		return "", &ResolutionError{
			Reference: value,
			Scheme:    scheme,
			Reason:    "secret resolution failed",
			Cause:     err,
		}
	}
	return secret, nil
}

// parseReference extracts the scheme and key from a secret reference.
//
// Supported formats:
//   - "env:VAR_NAME" -> ("env", "VAR_NAME")
//   - "keychain:refresh-token" -> ("keychain", "refresh-token")
//   - "${VAR_NAME}" -> ("env", "VAR_NAME")
func (r *Registry) parseReference(reference string) (scheme, key string, ok bool) {
	if matches := legacyEnvVarRegex.FindStringSubmatch(reference); matches != nil {
		return "env", matches[1], true
	}
	if matches := schemeRegex.FindStringSubmatch(reference); matches != nil {
		return matches[1], matches[2], true
	}
	return "", "", false
}
