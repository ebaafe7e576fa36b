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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tombee/zoho-expense/internal/integration/zohoexpense"
	"github.com/tombee/zoho-expense/internal/operation"
	pkgerrors "github.com/tombee/zoho-expense/pkg/errors"
)

// Exit codes for zoho-expense commands
const (
	ExitSuccess         = 0
	ExitExecutionFailed = 1
	ExitInvalidInput    = 2
	ExitConfigError     = 3
	ExitAPIError        = 4
)

// ExitError is an error that carries an exit code
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewExecutionError creates an error for failures that fit no other category
func NewExecutionError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitExecutionFailed,
		Message: msg,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an error for bad arguments or parameter files
func NewInvalidInputError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitInvalidInput,
		Message: msg,
		Cause:   cause,
	}
}

// NewConfigError creates an error for configuration and credential problems
func NewConfigError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitConfigError,
		Message: msg,
		Cause:   cause,
	}
}

// NewAPIError creates an error for failures reported by Zoho Expense
func NewAPIError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitAPIError,
		Message: msg,
		Cause:   cause,
	}
}

// ClassifyError wraps err in an ExitError whose code reflects where the
// failure came from.
func ClassifyError(msg string, err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var validationErr *pkgerrors.ValidationError
	var notFoundErr *pkgerrors.NotFoundError
	var configErr *pkgerrors.ConfigError
	var apiErr *zohoexpense.APIError
	var opErr *operation.Error

	switch {
	case errors.As(err, &validationErr), errors.As(err, &notFoundErr):
		return NewInvalidInputError(msg, err)
	case errors.As(err, &configErr):
		return NewConfigError(msg, err)
	case errors.As(err, &apiErr), errors.As(err, &opErr):
		return NewAPIError(msg, err)
	default:
		return NewExecutionError(msg, err)
	}
}

// HandleExitError checks if an error is an ExitError and exits with the appropriate code
func HandleExitError(err error) {
	if err == nil {
		return
	}
	os.Exit(PrintError(os.Stderr, err))
}

// PrintError writes err and any user-facing suggestion to w and returns
// the exit code for it.
func PrintError(w io.Writer, err error) int {
	code := ExitExecutionFailed
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	}

	fmt.Fprintln(w, "Error:", err.Error())

	if uv, ok := pkgerrors.AsUserVisible(err); ok {
		if suggestion := uv.Suggestion(); suggestion != "" {
			fmt.Fprintf(w, "\nSuggestion: %s\n", suggestion)
		}
	}

	return code
}
