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

// Package secrets resolves secret references found in configuration.
//
// Reference formats:
//   - env:VAR_NAME reads an environment variable
//   - keychain:NAME reads an entry from the system keychain
//   - ${VAR_NAME} is shorthand for env:VAR_NAME
//
// Values that are not references are returned unchanged.
package secrets
