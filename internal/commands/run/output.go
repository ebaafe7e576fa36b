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

package run

import (
	"context"
	"io"

	"github.com/tombee/zoho-expense/internal/commands/shared"
	"github.com/tombee/zoho-expense/internal/integration/zohoexpense"
	"github.com/tombee/zoho-expense/internal/jq"
)

// writeRecords prints records as a JSON array, after the optional field
// projection and jq query.
func writeRecords(ctx context.Context, w io.Writer, records []interface{}, fields []string, query string) error {
	if len(fields) > 0 {
		records = zohoexpense.Simplify(records, fields)
	}

	if query == "" {
		return shared.EmitJSON(w, records)
	}

	results, err := jq.NewExecutor(0, 0).Execute(ctx, query, records)
	if err != nil {
		return shared.NewInvalidInputError("query failed", err)
	}

	for _, v := range results {
		if err := shared.EmitJSON(w, v); err != nil {
			return err
		}
	}
	return nil
}
