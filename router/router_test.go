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

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStaticRouteBeatsParamRoute(t *testing.T) {
	r := MustNew()
	var matched string
	r.GET("/users/:id", func(c *Context) { matched = "param" })
	r.GET("/users/me", func(c *Context) { matched = "static" })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/me", nil))

	if matched != "static" {
		t.Fatalf("matched = %q, want static route to take priority over a param route", matched)
	}
}

func TestParamRouteExtractsValue(t *testing.T) {
	r := MustNew()
	var id string
	r.GET("/users/:id", func(c *Context) { id = c.Param("id") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))

	if id != "42" {
		t.Fatalf("id = %q, want 42", id)
	}
}

func TestWildcardCapturesRemainder(t *testing.T) {
	r := MustNew()
	var rest string
	r.GET("/files/*path", func(c *Context) { rest = c.Param("path") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/a/b/c.txt", nil))

	if rest != "a/b/c.txt" {
		t.Fatalf("path = %q, want a/b/c.txt", rest)
	}
}

func TestUnmatchedRouteReturns404(t *testing.T) {
	r := MustNew()
	r.GET("/users", func(c *Context) {})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestConcurrentParamRequestsDoNotLeakBetweenGoroutines(t *testing.T) {
	r := MustNew()
	r.GET("/items/:id", func(c *Context) {
		id := c.Param("id")
		// A request-local view must never see another in-flight request's
		// own parameter value, even with the Context pool recycling structs
		// across goroutines.
		if got := c.Param("id"); got != id {
			t.Errorf("param mutated mid-handler: got %q after reading %q", got, id)
		}
		c.Response.Write([]byte(id))
	})

	const n = 50
	done := make(chan string, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			w := httptest.NewRecorder()
			path := "/items/" + itoa(i)
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			done <- w.Body.String()
		}(i)
	}

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		body := <-done
		if seen[body] {
			t.Fatalf("duplicate body %q observed, suggests cross-goroutine param leakage", body)
		}
		seen[body] = true
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
