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

// Package zohotest provides a fake Zoho Expense API for command tests.
package zohotest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// AccessToken is the bearer token Env configures.
const AccessToken = "test-access-token"

// Request is one request received by the fake server.
type Request struct {
	Method string
	// Path excludes the /expense/v1 prefix
	Path   string
	Query  url.Values
	Header http.Header
	Body   map[string]interface{}
}

type route struct {
	status int
	body   interface{}
}

// Server is a fake Zoho Expense API that records every request and
// replies with canned JSON per method and path.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []Request
	routes   map[string]route
}

// NewServer starts a fake API. It is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{routes: make(map[string]route)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle registers the reply for method and path, e.g. ("GET", "/expenses/1").
func (s *Server) Handle(method, path string, status int, body interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = route{status: status, body: body}
}

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the most recent request, failing the test if there is none.
func (s *Server) Last(t testing.TB) Request {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("no requests received")
	}
	return reqs[len(reqs)-1]
}

// Env points the CLI configuration at this server through environment
// variables, using an access token and the given default organization.
func (s *Server) Env(t testing.TB, organizationID string) {
	t.Helper()
	for _, name := range []string{
		"ZOHO_EXPENSE_CLIENT_ID", "ZOHO_EXPENSE_CLIENT_SECRET",
		"ZOHO_EXPENSE_REFRESH_TOKEN", "ZOHO_EXPENSE_DATA_CENTER",
		"ZOHO_EXPENSE_TIMEOUT", "ZOHO_EXPENSE_RATE_LIMIT",
		"ZOHO_EXPENSE_DEBUG", "ZOHO_EXPENSE_LOG_LEVEL", "LOG_LEVEL",
		"LOG_FORMAT", "LOG_SOURCE",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ZOHO_EXPENSE_ACCESS_TOKEN", AccessToken)
	t.Setenv("ZOHO_EXPENSE_API_BASE_URL", s.URL)
	t.Setenv("ZOHO_EXPENSE_ORGANIZATION_ID", organizationID)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/expense/v1")

	rec := Request{
		Method: r.Method,
		Path:   path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
	}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &rec.Body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	rt, ok := s.routes[r.Method+" "+path]
	s.mu.Unlock()

	if !ok {
		rt = route{
			status: http.StatusNotFound,
			body:   map[string]interface{}{"code": 5, "message": "Invalid URL Passed"},
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rt.status)
	_ = json.NewEncoder(w).Encode(rt.body)
}
