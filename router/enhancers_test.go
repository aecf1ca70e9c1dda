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
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSignCookieValueRoundTrips(t *testing.T) {
	secret := []byte("test-secret")
	signed := SignCookieValue("user-42", secret)
	if !strings.Contains(signed, ".") {
		t.Fatalf("signed value %q has no signature separator", signed)
	}

	got, err := UnsignCookieValue(signed, secret)
	if err != nil || got != "user-42" {
		t.Fatalf("UnsignCookieValue = %q, %v; want user-42, nil", got, err)
	}
}

func TestUnsignCookieValueDetectsTamperingAndWrongSecret(t *testing.T) {
	secret := []byte("test-secret")
	signed := SignCookieValue("user-42", secret)

	if _, err := UnsignCookieValue(signed, []byte("wrong-secret")); !errors.Is(err, ErrCookieTampered) {
		t.Fatalf("wrong secret err = %v, want ErrCookieTampered", err)
	}
	if _, err := UnsignCookieValue("user-99"+signed[len("user-42"):], secret); !errors.Is(err, ErrCookieTampered) {
		t.Fatalf("tampered value err = %v, want ErrCookieTampered", err)
	}
	if _, err := UnsignCookieValue("no-signature-here", secret); !errors.Is(err, ErrCookieNotSigned) {
		t.Fatalf("unsigned value err = %v, want ErrCookieNotSigned", err)
	}
}

func TestSetSignedCookieAndGetSignedCookie(t *testing.T) {
	secret := []byte("cookie-secret")
	r := MustNew()
	var got string
	var getErr error
	r.GET("/login", func(c *Context) { c.SetSignedCookie("session", "user-7", secret, 3600, "/", "", false, true) })
	r.GET("/me", func(c *Context) { got, getErr = c.GetSignedCookie("session", secret) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	resp := w.Result()
	cookies := resp.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookies[0])
	r.ServeHTTP(httptest.NewRecorder(), req)

	if getErr != nil || got != "user-7" {
		t.Fatalf("GetSignedCookie = %q, %v; want user-7, nil", got, getErr)
	}

	// Tamper with the cookie value in transit.
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	tampered := *cookies[0]
	tampered.Value = tampered.Value + "x"
	req.AddCookie(&tampered)
	r.ServeHTTP(httptest.NewRecorder(), req)
	if !errors.Is(getErr, ErrCookieTampered) && !errors.Is(getErr, ErrCookieNotSigned) {
		t.Fatalf("tampered cookie err = %v, want a signature error", getErr)
	}
}

func TestClearCookieExpiresImmediately(t *testing.T) {
	r := MustNew()
	r.GET("/logout", func(c *Context) { c.ClearCookie("session", "/", "") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("ClearCookie cookies = %+v, want one cookie with MaxAge=-1", cookies)
	}
}

func TestRedirectPermanentAndTemporary(t *testing.T) {
	r := MustNew()
	r.GET("/old", func(c *Context) { c.RedirectPermanent("/new") })
	r.GET("/maint", func(c *Context) { c.RedirectTemporary("/status") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/old", nil))
	if w.Code != http.StatusMovedPermanently || w.Header().Get("Location") != "/new" {
		t.Fatalf("RedirectPermanent status=%d location=%q", w.Code, w.Header().Get("Location"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/maint", nil))
	if w.Code != http.StatusTemporaryRedirect || w.Header().Get("Location") != "/status" {
		t.Fatalf("RedirectTemporary status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestValidateAppliesRulesAndReportsErrors(t *testing.T) {
	rules := map[string]FieldRule{
		"email": {Required: true, Type: FieldTypeEmail},
		"bio":   {MaxLength: 5},
		"name":  {Required: true, MinLength: 2},
	}
	values := map[string]string{
		"email": "not-an-email",
		"bio":   "way too long",
		"name":  "a",
	}

	result := Validate(values, rules)
	if result.IsValid {
		t.Fatal("expected validation to fail")
	}
	if _, ok := result.Errors["email"]; !ok {
		t.Error("expected an email error")
	}
	if _, ok := result.Errors["bio"]; !ok {
		t.Error("expected a bio max-length error")
	}
	if _, ok := result.Errors["name"]; !ok {
		t.Error("expected a name min-length error")
	}
}

func TestValidateSanitizesPassingFields(t *testing.T) {
	rules := map[string]FieldRule{
		"bio": {Sanitize: true},
	}
	values := map[string]string{"bio": "  <b>hi</b>  "}

	result := Validate(values, rules)
	if !result.IsValid {
		t.Fatalf("expected validation to pass, errors = %v", result.Errors)
	}
	if result.Sanitized["bio"] != "hi" {
		t.Errorf("Sanitized[bio] = %q, want %q", result.Sanitized["bio"], "hi")
	}
}

func TestValidatePassesValidInput(t *testing.T) {
	rules := map[string]FieldRule{
		"email": {Required: true, Type: FieldTypeEmail},
		"url":   {Type: FieldTypeURL},
		"age":   {Type: FieldTypeNumber},
	}
	values := map[string]string{
		"email": "user@example.com",
		"url":   "https://example.com",
		"age":   "30",
	}

	result := Validate(values, rules)
	if !result.IsValid {
		t.Fatalf("expected validation to pass, errors = %v", result.Errors)
	}
}

func TestSanitizeStripsTagsAndNormalizes(t *testing.T) {
	got := Sanitize("  <script>HELLO</script>  ", SanitizeOptions{TrimSpace: true, StripHTML: true, ToLower: true})
	if got != "hello" {
		t.Fatalf("Sanitize = %q, want %q", got, "hello")
	}
}

func TestContextCSVWritesAttachment(t *testing.T) {
	r := MustNew()
	r.GET("/export", func(c *Context) {
		_ = c.CSV([][]string{{"id", "name"}, {"1", "alice"}}, "users.csv")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export", nil))
	if !strings.Contains(w.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "users.csv") {
		t.Fatalf("Content-Disposition = %q", w.Header().Get("Content-Disposition"))
	}
	if !strings.Contains(w.Body.String(), "alice") {
		t.Fatalf("body = %q, want it to contain alice", w.Body.String())
	}
}

func TestContextSuccessAndErrorJSONEnvelopes(t *testing.T) {
	r := MustNew()
	r.GET("/ok", func(c *Context) { _ = c.Success(http.StatusOK, map[string]int{"id": 1}, "done") })
	r.GET("/bad", func(c *Context) {
		_ = c.ErrorJSON(http.StatusBadRequest, "invalid input", "BAD_INPUT", map[string]string{"field": "email"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	var ok map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &ok); err != nil {
		t.Fatal(err)
	}
	if ok["success"] != true || ok["message"] != "done" {
		t.Fatalf("success envelope = %v", ok)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))
	var bad map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &bad); err != nil {
		t.Fatal(err)
	}
	if bad["success"] != false || bad["code"] != "BAD_INPUT" || bad["error"] != "invalid input" {
		t.Fatalf("error envelope = %v", bad)
	}
}

func TestContextPaginateComputesTotalPages(t *testing.T) {
	r := MustNew()
	r.GET("/items", func(c *Context) {
		_ = c.Paginate(http.StatusOK, []int{1, 2, 3}, 2, 10, 25)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items", nil))
	var body struct {
		Pagination struct {
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Pagination.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3 (ceil(25/10))", body.Pagination.TotalPages)
	}
}

func TestContextRenderSubstitutesNestedKeys(t *testing.T) {
	r := MustNew()
	var out string
	r.GET("/greet", func(c *Context) {
		out = c.Render("Hello {{user.name}}, you have {{count}} messages", map[string]any{
			"user":  map[string]any{"name": "Ada"},
			"count": 3,
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/greet", nil))
	want := "Hello Ada, you have 3 messages"
	if out != want {
		t.Fatalf("Render = %q, want %q", out, want)
	}
}

func TestContextCacheNoCacheCORSSecurityHeaders(t *testing.T) {
	r := MustNew()
	r.GET("/cached", func(c *Context) { c.Cache(60 * time.Second) })
	r.GET("/nostore", func(c *Context) { c.NoCache() })
	r.GET("/cors", func(c *Context) { c.CORS("") })
	r.GET("/secure", func(c *Context) { c.SecurityHeaders() })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cached", nil))
	cc := w.Header().Get("Cache-Control")
	if !strings.Contains(cc, "public") || !strings.Contains(cc, "max-age=60") {
		t.Fatalf("Cache-Control = %q, want public and max-age=60", cc)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nostore", nil))
	if !strings.Contains(w.Header().Get("Cache-Control"), "no-store") {
		t.Fatalf("Cache-Control = %q", w.Header().Get("Cache-Control"))
	}

	req := httptest.NewRequest(http.MethodGet, "/cors", nil)
	req.Header.Set("Origin", "https://example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "https://example.com" {
		t.Fatalf("Access-Control-Allow-Origin = %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatalf("X-Frame-Options = %q, want DENY", w.Header().Get("X-Frame-Options"))
	}
}

func TestContextUserAgentAndFingerprint(t *testing.T) {
	r := MustNew()
	var ua, fp1, fp2 string
	r.GET("/id", func(c *Context) {
		ua = c.UserAgent()
		fp1 = c.Fingerprint()
	})

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set("User-Agent", "test-agent/1.0")
	r.ServeHTTP(httptest.NewRecorder(), req)
	if ua != "test-agent/1.0" {
		t.Fatalf("UserAgent = %q", ua)
	}
	if fp1 == "" {
		t.Fatal("Fingerprint returned empty string")
	}

	r2 := MustNew()
	r2.GET("/id", func(c *Context) { fp2 = c.Fingerprint() })
	req2 := httptest.NewRequest(http.MethodGet, "/id", nil)
	req2.Header.Set("User-Agent", "test-agent/1.0")
	r2.ServeHTTP(httptest.NewRecorder(), req2)

	if fp1 != fp2 {
		t.Fatalf("Fingerprint not stable across identical requests: %q != %q", fp1, fp2)
	}
}

func TestUploadedFileSanitizesFilename(t *testing.T) {
	r := MustNew()
	var name string
	var ferr error
	r.POST("/upload", func(c *Context) {
		f, err := c.UploadedFile("file")
		ferr = err
		if f != nil {
			name = f.Name
		}
	})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "../../etc/passwd")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("hello"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if ferr != nil {
		t.Fatalf("UploadedFile error = %v", ferr)
	}
	if strings.ContainsAny(name, "/\\") {
		t.Fatalf("Name = %q, want path separators stripped", name)
	}
}
