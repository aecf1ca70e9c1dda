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
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParamIntParsesAndRejects(t *testing.T) {
	r := MustNew()
	var got int
	var gotErr error
	r.GET("/users/:id", func(c *Context) { got, gotErr = c.ParamInt("id") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/42", nil))
	if gotErr != nil || got != 42 {
		t.Fatalf("ParamInt = %d, %v; want 42, nil", got, gotErr)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/not-a-number", nil))
	if !errors.Is(gotErr, ErrParamInvalid) {
		t.Fatalf("ParamInt err = %v, want ErrParamInvalid", gotErr)
	}
}

func TestParamUUIDRoundTrips(t *testing.T) {
	r := MustNew()
	var got [16]byte
	var gotErr error
	r.GET("/orders/:id", func(c *Context) { got, gotErr = c.ParamUUID("id") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/550e8400-e29b-41d4-a716-446655440000", nil))
	if gotErr != nil {
		t.Fatalf("ParamUUID error = %v", gotErr)
	}
	want := [16]byte{0x55, 0x0e, 0x84, 0x00, 0xe2, 0x9b, 0x41, 0xd4, 0xa7, 0x16, 0x44, 0x66, 0x55, 0x44, 0x00, 0x00}
	if got != want {
		t.Fatalf("ParamUUID = %x, want %x", got, want)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/not-a-uuid", nil))
	if !errors.Is(gotErr, ErrParamInvalid) {
		t.Fatalf("ParamUUID err = %v, want ErrParamInvalid", gotErr)
	}
}

func TestParamEnumRejectsUnlistedValue(t *testing.T) {
	r := MustNew()
	var got string
	var gotErr error
	r.GET("/posts/:status", func(c *Context) {
		got, gotErr = c.ParamEnum("status", "draft", "published", "archived")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/published", nil))
	if gotErr != nil || got != "published" {
		t.Fatalf("ParamEnum = %q, %v; want published, nil", got, gotErr)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/deleted", nil))
	if !errors.Is(gotErr, ErrParamInvalid) {
		t.Fatalf("ParamEnum err = %v, want ErrParamInvalid", gotErr)
	}
}

func TestParamIntRangeEnforcesBounds(t *testing.T) {
	r := MustNew()
	var gotErr error
	r.GET("/pages/:n", func(c *Context) { _, gotErr = c.ParamIntRange("n", 1, 100) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pages/500", nil))
	if !errors.Is(gotErr, ErrParamInvalid) {
		t.Fatalf("ParamIntRange err = %v, want ErrParamInvalid", gotErr)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pages/50", nil))
	if gotErr != nil {
		t.Fatalf("ParamIntRange err = %v, want nil", gotErr)
	}
}

func TestQueryIntDefaultsWhenAbsentOrInvalid(t *testing.T) {
	r := MustNew()
	var page, limit int
	r.GET("/search", func(c *Context) {
		page = c.QueryInt("page", 1)
		limit = c.QueryInt("limit", 10)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search?limit=oops", nil))
	if page != 1 || limit != 10 {
		t.Fatalf("page, limit = %d, %d; want 1, 10 (defaults)", page, limit)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search?page=3&limit=25", nil))
	if page != 3 || limit != 25 {
		t.Fatalf("page, limit = %d, %d; want 3, 25", page, limit)
	}
}

func TestQueryBoolParsesCommonTruthyValues(t *testing.T) {
	r := MustNew()
	var active bool
	r.GET("/widgets", func(c *Context) { active = c.QueryBool("active", false) })

	for _, val := range []string{"true", "1", "yes", "on", "TRUE"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets?active="+val, nil))
		if !active {
			t.Fatalf("QueryBool(%q) = false, want true", val)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets?active=false", nil))
	if active {
		t.Fatal("QueryBool(\"false\") = true, want false")
	}
}

func TestQueryDurationParsesGoDurationFormat(t *testing.T) {
	r := MustNew()
	var got time.Duration
	r.GET("/jobs", func(c *Context) { got = c.QueryDuration("timeout", 30*time.Second) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs?timeout=5m", nil))
	if got != 5*time.Minute {
		t.Fatalf("QueryDuration = %v, want 5m", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs?timeout=garbage", nil))
	if got != 30*time.Second {
		t.Fatalf("QueryDuration = %v, want fallback 30s", got)
	}
}

func TestQueryStringsAndQueryInts(t *testing.T) {
	r := MustNew()
	var tags []string
	var ids []int
	var idsErr error
	r.GET("/items", func(c *Context) {
		tags = c.QueryStrings("tags")
		ids, idsErr = c.QueryInts("ids")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items?tags=go,%20rust%20,python&ids=1,2,3", nil))
	if idsErr != nil {
		t.Fatalf("QueryInts error = %v", idsErr)
	}
	if len(tags) != 3 || tags[0] != "go" || tags[1] != "rust" || tags[2] != "python" {
		t.Fatalf("QueryStrings = %v, want [go rust python]", tags)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("QueryInts = %v, want [1 2 3]", ids)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items?ids=1,oops,3", nil))
	if !errors.Is(idsErr, ErrQueryInvalidInteger) {
		t.Fatalf("QueryInts err = %v, want ErrQueryInvalidInteger", idsErr)
	}
}
