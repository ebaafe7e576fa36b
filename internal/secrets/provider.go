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
	"errors"
	"fmt"
)

var (
	// ErrSecretNotFound is returned when a referenced secret does not exist.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrBackendUnavailable is returned when a provider cannot be used in
	// the current environment (e.g., a locked keychain).
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Provider resolves secrets for one reference scheme.
type Provider interface {
	// Scheme returns the reference prefix handled by this provider (e.g., "env").
	Scheme() string

	// Resolve returns the secret for a key. Returns ErrSecretNotFound if absent.
	Resolve(ctx context.Context, key string) (string, error)
}

// ResolutionError reports a reference that could not be resolved. It names
// the reference but never the secret value.
type ResolutionError struct {
	Reference string
	Scheme    string
	Reason    string
	Cause     error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("resolve %q: %s", e.Reference, e.Reason)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}
