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
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadItems reads the input items from a JSON or YAML file, or stdin when
// path is "-". A top-level object is one item; a list holds many.
// With no path a single empty item is returned.
func loadItems(path string, stdin io.Reader) ([]map[string]interface{}, error) {
	if path == "" {
		return []map[string]interface{}{{}}, nil
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read params file: %w", err)
		}
	}

	// YAML is a superset of JSON, so one decoder covers both
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse params: %w", err)
	}

	switch v := doc.(type) {
	case nil:
		return []map[string]interface{}{{}}, nil
	case map[string]interface{}:
		return []map[string]interface{}{v}, nil
	case []interface{}:
		items := make([]map[string]interface{}, 0, len(v))
		for i, elem := range v {
			item, ok := elem.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("item %d: expected an object, got %T", i, elem)
			}
			items = append(items, item)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("params must be an object or a list of objects, got %T", doc)
	}
}

// applyParams sets key=value overrides on every item. Values are parsed as
// YAML scalars or flow collections, so "returnAll=true" yields a bool and
// "filters={status: approved}" a map.
func applyParams(items []map[string]interface{}, args []string) error {
	overrides := make(map[string]interface{}, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return fmt.Errorf("invalid param format %q (expected key=value)", arg)
		}
		overrides[parts[0]] = parseValue(parts[1])
	}

	for _, item := range items {
		for k, v := range overrides {
			item[k] = v
		}
	}
	return nil
}

// parseValue decodes a YAML value, falling back to the raw string.
// Identifiers stay strings even when they look numeric, since Zoho IDs
// exceed float64 precision.
func parseValue(raw string) interface{} {
	var v interface{}
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	switch v.(type) {
	case bool, map[string]interface{}, []interface{}:
		return v
	default:
		return raw
	}
}
