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

package errors

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ctx"))

	err := Wrap(io.EOF, "reading page")
	assert.EqualError(t, err, "reading page: EOF")
	assert.True(t, Is(err, io.EOF))
}

func TestAs(t *testing.T) {
	err := Wrap(&ConfigError{Key: "zoho.client_id", Reason: "missing"}, "load")

	var cfgErr *ConfigError
	assert.True(t, As(err, &cfgErr))
	assert.Equal(t, "zoho.client_id", cfgErr.Key)
}
