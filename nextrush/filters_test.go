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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/0xTanzim/nextRush-sub009/router"
)

func TestGlobalExceptionFilterFormatsTaggedError(t *testing.T) {
	nowFunc = func() time.Time { return time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	a := New()
	a.GET("/widgets/:id", func(c *router.Context) {
		Throw(TagNotFound, "widget not found")
	})

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/widgets/9", nil))
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}

	var body map[string]any
	ExpectJSON(t, resp, http.StatusNotFound, &body)
	if body["error"] != "widget not found" {
		t.Fatalf("error = %v", body["error"])
	}
	if body["statusCode"] != float64(http.StatusNotFound) {
		t.Fatalf("statusCode = %v", body["statusCode"])
	}
	if body["timestamp"] != "2026-07-31T00:00:00Z" {
		t.Fatalf("timestamp = %v", body["timestamp"])
	}
	if _, ok := body["details"]; ok {
		t.Fatal("details key should be omitted when Data is nil")
	}
	if _, ok := body["code"]; ok {
		t.Fatal("code key must never appear in the taxonomy response shape")
	}
	if body["tag"] != "NotFound" {
		t.Fatalf("tag = %v, want NotFound", body["tag"])
	}
}

func TestGlobalExceptionFilterNegotiatesProblemDetails(t *testing.T) {
	a := New()
	a.GET("/widgets/:id", func(c *router.Context) {
		Throw(TagNotFound, "widget not found")
	})

	req := httptest.NewRequest(http.MethodGet, "/widgets/9", nil)
	req.Header.Set("Accept", "application/problem+json")
	resp, err := a.Test(req)
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json; charset=utf-8" {
		t.Fatalf("Content-Type = %q", ct)
	}

	var body map[string]any
	ExpectJSON(t, resp, http.StatusNotFound, &body)
	if body["detail"] != "widget not found" {
		t.Fatalf("detail = %v", body["detail"])
	}
	if body["tag"] != "NotFound" {
		t.Fatalf("tag = %v, want NotFound", body["tag"])
	}
	if body["type"] != "https://nextrush.dev/problems/notfound" {
		t.Fatalf("type = %v, want tag-derived problem URI", body["type"])
	}
	if _, ok := body["error_id"]; !ok {
		t.Fatal("error_id should be present for tracing correlation")
	}
}

func TestGlobalExceptionFilterNegotiatesJSONAPI(t *testing.T) {
	a := New()
	a.POST("/users", func(c *router.Context) {
		panic(Validation("invalid payload", map[string]string{"email": "required"}))
	})

	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	req.Header.Set("Accept", "application/vnd.api+json")
	resp, err := a.Test(req)
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/vnd.api+json; charset=utf-8" {
		t.Fatalf("Content-Type = %q", ct)
	}

	var body struct {
		Errors []map[string]any `json:"errors"`
	}
	ExpectJSON(t, resp, http.StatusUnprocessableEntity, &body)
	if len(body.Errors) == 0 {
		t.Fatal("expected at least one JSON:API error object")
	}
	meta, ok := body.Errors[0]["meta"].(map[string]any)
	if !ok {
		t.Fatalf("meta = %#v, want a map carrying the tag", body.Errors[0]["meta"])
	}
	if meta["tag"] != "Validation" {
		t.Fatalf("meta[tag] = %v, want Validation", meta["tag"])
	}
}

func TestValidationErrorIncludesDetails(t *testing.T) {
	a := New()
	a.POST("/users", func(c *router.Context) {
		panic(Validation("invalid payload", map[string]string{"email": "required"}))
	})

	resp, err := a.Test(httptest.NewRequest(http.MethodPost, "/users", nil))
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}

	var body map[string]any
	ExpectJSON(t, resp, http.StatusUnprocessableEntity, &body)
	details, ok := body["details"].(map[string]any)
	if !ok {
		t.Fatalf("details = %#v, want a map", body["details"])
	}
	if details["email"] != "required" {
		t.Fatalf("details[email] = %v, want %q", details["email"], "required")
	}
}

func TestUntaggedPanicDefaultsToInternal(t *testing.T) {
	a := New()
	a.GET("/boom", func(c *router.Context) {
		panic("something broke")
	})

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}

	var body map[string]any
	ExpectJSON(t, resp, http.StatusInternalServerError, &body)
	if body["error"] != "something broke" {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestCustomFilterTakesPrecedenceOverGlobal(t *testing.T) {
	called := false
	f := exceptionFilterFunc{
		tags: []Tag{TagConflict},
		handle: func(c *router.Context, err error) bool {
			called = true
			_ = c.JSON(http.StatusConflict, map[string]string{"custom": "handled"})
			return true
		},
	}

	a := New(WithExceptionFilter(f))
	a.POST("/widgets", func(c *router.Context) {
		Throw(TagConflict, "already exists")
	})

	resp, err := a.Test(httptest.NewRequest(http.MethodPost, "/widgets", nil))
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if !called {
		t.Fatal("custom filter was not invoked")
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}

	var body map[string]string
	ExpectJSON(t, resp, http.StatusConflict, &body)
	if body["custom"] != "handled" {
		t.Fatalf("custom = %v, want handled", body["custom"])
	}
}

// exceptionFilterFunc adapts two closures to the ExceptionFilter interface
// for tests that only need a single filter behavior.
type exceptionFilterFunc struct {
	tags   []Tag
	handle func(c *router.Context, err error) bool
}

func (f exceptionFilterFunc) Tags() []Tag { return f.tags }
func (f exceptionFilterFunc) Handle(c *router.Context, err error) bool {
	return f.handle(c, err)
}
