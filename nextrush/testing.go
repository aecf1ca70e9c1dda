// Copyright 2025 The Rivaas Authors
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

package nextrush

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"
)

// TestOption configures Test's execution.
type TestOption func(*testConfig)

type testConfig struct {
	timeout time.Duration
	ctx     context.Context
}

// WithTestTimeout bounds how long Test waits for the handler chain to
// finish. Pass a negative duration to disable the timeout.
func WithTestTimeout(d time.Duration) TestOption {
	return func(cfg *testConfig) { cfg.timeout = d }
}

// WithTestContext supplies the base context for the test request, useful
// for asserting on context propagation or cancellation.
func WithTestContext(ctx context.Context) TestOption {
	return func(cfg *testConfig) { cfg.ctx = ctx }
}

// Test drives req through the app's ServeHTTP without binding a real
// listener, for unit-testing routes and middleware in isolation. If the
// handler chain doesn't finish before the timeout, Test returns an error;
// the handler goroutine itself may keep running, since router.ServeHTTP
// can't be interrupted mid-flight.
//
// Example:
//
//	req := httptest.NewRequest(http.MethodGet, "/users/123", nil)
//	resp, err := app.Test(req)
func (a *App) Test(req *http.Request, opts ...TestOption) (*http.Response, error) {
	cfg := &testConfig{timeout: time.Second, ctx: context.Background()}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx := cfg.ctx
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.ServeHTTP(rec, req)
	}()

	select {
	case <-done:
		return rec.Result(), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("nextrush: test request timed out: %w", ctx.Err())
	}
}

// TestJSON encodes body as JSON, sets Content-Type, and calls Test.
//
// Example:
//
//	resp, err := app.TestJSON(http.MethodPost, "/users", map[string]string{"name": "Ada"})
func (a *App) TestJSON(method, path string, body any, opts ...TestOption) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("nextrush: encode JSON body: %w", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return a.Test(req, opts...)
}

// testingT is the minimal subset of *testing.T that ExpectJSON needs.
type testingT interface {
	Errorf(format string, args ...any)
}

// ExpectJSON asserts resp has statusCode and a JSON content type, then
// decodes its body into out.
func ExpectJSON(t testingT, resp *http.Response, statusCode int, out any) {
	if resp.StatusCode != statusCode {
		t.Errorf("expected status %d, got %d", statusCode, resp.StatusCode)
		return
	}
	ct := resp.Header.Get("Content-Type")
	mediaType := strings.TrimSpace(strings.SplitN(ct, ";", 2)[0])
	if mediaType != "application/json" && !strings.HasSuffix(mediaType, "+json") {
		t.Errorf("expected a JSON Content-Type, got %q", ct)
		return
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Errorf("failed to read response body: %v", err)
		return
	}
	if err := json.Unmarshal(body, out); err != nil {
		t.Errorf("failed to decode JSON: %v\nbody: %s", err, body)
	}
}
