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
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tombee/zoho-expense/internal/integration/zohoexpense"
	"github.com/tombee/zoho-expense/internal/operation"
	pkgerrors "github.com/tombee/zoho-expense/pkg/errors"
)

func TestExitError(t *testing.T) {
	cause := errors.New("boom")
	err := NewExecutionError("run failed", cause)

	if err.Error() != "run failed: boom" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be unwrapped")
	}

	if NewInvalidInputError("bad", nil).Error() != "bad" {
		t.Error("expected message without cause")
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", pkgerrors.NewMissingParameterError("expenseId"), ExitInvalidInput},
		{"not found", &pkgerrors.NotFoundError{Resource: "option loader", ID: "x"}, ExitInvalidInput},
		{"config", &pkgerrors.ConfigError{Key: "zoho", Reason: "missing"}, ExitConfigError},
		{"application", &zohoexpense.APIError{Kind: zohoexpense.KindApplication, Message: "Invalid"}, ExitAPIError},
		{"operation", operation.NewUnknownOperationError("zoho_expense", "nope"), ExitAPIError},
		{"wrapped", &operation.ItemError{Index: 2, Err: pkgerrors.NewMissingParameterError("reportId")}, ExitInvalidInput},
		{"plain", errors.New("boom"), ExitExecutionFailed},
		{"existing exit error", NewConfigError("x", nil), ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError("failed", tt.err)
			if got.Code != tt.want {
				t.Errorf("expected code %d, got %d", tt.want, got.Code)
			}
		})
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	err := NewInvalidInputError("expense.get failed",
		fmt.Errorf("item 0: %w", pkgerrors.NewMissingParameterError("expenseId")))

	code := PrintError(&buf, err)
	if code != ExitInvalidInput {
		t.Errorf("expected exit code %d, got %d", ExitInvalidInput, code)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Error: expense.get failed") {
		t.Errorf("unexpected output: %s", out)
	}
	if !strings.Contains(out, "Suggestion:") {
		t.Errorf("expected suggestion in output: %s", out)
	}
}

func TestPrintError_Plain(t *testing.T) {
	var buf bytes.Buffer
	code := PrintError(&buf, errors.New("boom"))

	if code != ExitExecutionFailed {
		t.Errorf("expected exit code %d, got %d", ExitExecutionFailed, code)
	}
	if strings.Contains(buf.String(), "Suggestion:") {
		t.Errorf("unexpected suggestion: %s", buf.String())
	}
}
