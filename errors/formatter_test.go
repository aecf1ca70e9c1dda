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

package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// taggedError is a minimal ErrorTagger implementation used to exercise the
// tag propagation added to each formatter, independent of any caller's own
// error taxonomy.
type taggedError struct {
	msg string
	tag string
}

func (e *taggedError) Error() string    { return e.msg }
func (e *taggedError) ErrorTag() string { return e.tag }

func TestSimpleFormatIncludesTag(t *testing.T) {
	formatter := &Simple{}
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	resp := formatter.Format(req, &taggedError{msg: "not found", tag: "NotFound"})

	body, ok := resp.Body.(map[string]any)
	if !ok {
		t.Fatalf("Body = %#v, want map[string]any", resp.Body)
	}
	if body["tag"] != "NotFound" {
		t.Fatalf("tag = %v, want NotFound", body["tag"])
	}
}

func TestSimpleFormatOmitsTagWhenUntagged(t *testing.T) {
	formatter := &Simple{}
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	resp := formatter.Format(req, &testError{message: "plain"})

	body := resp.Body.(map[string]any)
	if _, ok := body["tag"]; ok {
		t.Fatal("tag key should be absent for an error not implementing ErrorTagger")
	}
}

func TestRFC9457FormatIncludesTagExtension(t *testing.T) {
	formatter := &RFC9457{DisableErrorID: true}
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	resp := formatter.Format(req, &taggedError{msg: "conflict", tag: "Conflict"})

	p, ok := resp.Body.(ProblemDetail)
	if !ok {
		t.Fatalf("Body = %#v, want ProblemDetail", resp.Body)
	}
	if p.Extensions["tag"] != "Conflict" {
		t.Fatalf("Extensions[tag] = %v, want Conflict", p.Extensions["tag"])
	}
}

func TestRFC9457TypeResolverTakesPrecedenceOverTag(t *testing.T) {
	formatter := &RFC9457{
		DisableErrorID: true,
		TypeResolver:   func(err error) string { return "https://example.com/custom" },
	}
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	resp := formatter.Format(req, &taggedError{msg: "conflict", tag: "Conflict"})

	p := resp.Body.(ProblemDetail)
	if p.Type != "https://example.com/custom" {
		t.Fatalf("Type = %q, want custom resolver's URI", p.Type)
	}
}

func TestJSONAPIFormatIncludesTagInMeta(t *testing.T) {
	formatter := &JSONAPI{}
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	resp := formatter.Format(req, &taggedError{msg: "bad input", tag: "Validation"})

	body, ok := resp.Body.(jsonAPIErrorResponse)
	if !ok {
		t.Fatalf("Body = %#v, want jsonAPIErrorResponse", resp.Body)
	}
	if len(body.Errors) != 1 {
		t.Fatalf("Errors = %d entries, want 1", len(body.Errors))
	}
	if body.Errors[0].Meta["tag"] != "Validation" {
		t.Fatalf("Meta[tag] = %v, want Validation", body.Errors[0].Meta["tag"])
	}
}

// testError is a bare error with no marker interfaces, used across this
// package's tests as the "nothing special" baseline.
type testError struct {
	message string
}

func (e *testError) Error() string { return e.message }
