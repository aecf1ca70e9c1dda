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
	"reflect"
	"testing"

	"github.com/0xTanzim/nextRush-sub009/router"
)

func TestUseOnionOrder(t *testing.T) {
	a := New()
	var order []string

	mw := func(name string) MiddlewareFunc {
		return func(c *router.Context, next Next) {
			order = append(order, name+":before")
			next()
			order = append(order, name+":after")
		}
	}
	a.Use(mw("outer"), mw("inner"))
	a.GET("/ping", func(c *router.Context) {
		order = append(order, "handler")
		_ = c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	want := []string{"outer:before", "inner:before", "handler", "inner:after", "outer:after"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestNextCalledTwicePanicsToExceptionFilter(t *testing.T) {
	a := New()
	a.Use(func(c *router.Context, next Next) {
		next()
		next() // second call must be reported as an error, not silently ignored
	})
	// The handler writes nothing, so the response has not started when the
	// second next() panics and the global filter can still write the 500.
	a.GET("/ping", func(c *router.Context) {})

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}

	var body map[string]any
	ExpectJSON(t, resp, http.StatusInternalServerError, &body)
	if body["error"] != "next() called multiple times" {
		t.Fatalf("error = %v", body["error"])
	}
	if body["statusCode"] != float64(http.StatusInternalServerError) {
		t.Fatalf("statusCode = %v", body["statusCode"])
	}
}

func TestRequestIDEchoesIncomingHeader(t *testing.T) {
	a := New()
	a.Use(RequestID())
	a.GET("/id", func(c *router.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"id": RequestIDFromContext(c.Request.Context())})
	})

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	resp, err := a.Test(req)
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if got := resp.Header.Get("X-Request-Id"); got != "fixed-id" {
		t.Fatalf("X-Request-Id = %q, want %q", got, "fixed-id")
	}
}

func TestRequestIDGeneratesWhenAbsent(t *testing.T) {
	a := New()
	a.Use(RequestID())
	a.GET("/id", func(c *router.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"id": RequestIDFromContext(c.Request.Context())})
	})

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/id", nil))
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatal("expected a generated X-Request-Id")
	}
}

func TestAbortShortCircuitsRemainingMiddleware(t *testing.T) {
	a := New()
	var ran []string
	a.Use(func(c *router.Context, next Next) {
		ran = append(ran, "auth")
		_ = c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		c.Abort()
		next()
	})
	a.Use(func(c *router.Context, next Next) {
		ran = append(ran, "should-not-run")
		next()
	})
	a.GET("/secure", func(c *router.Context) {
		ran = append(ran, "handler-should-not-run")
	})

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/secure", nil))
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	if !reflect.DeepEqual(ran, []string{"auth"}) {
		t.Fatalf("ran = %v, want [auth]", ran)
	}
}
