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
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// cookieEpoch is a fixed point in the past used by ClearCookie to force
// immediate expiry regardless of client clock skew.
var cookieEpoch = time.Unix(0, 0)

// ErrCookieNotSigned is returned by UnsignCookieValue when a cookie value has
// no signature separator, so it was never signed by SignCookieValue in the
// first place.
var ErrCookieNotSigned = errors.New("router: cookie value is not signed")

// ErrCookieTampered is returned by UnsignCookieValue when the signature does not
// match the value, meaning either the secret differs or the cookie content
// was modified in transit.
var ErrCookieTampered = errors.New("router: cookie signature mismatch")

const cookieSigSep = '.'

// SignCookieValue produces "value.signature" where signature is the base64url
// (no padding) HMAC-SHA256 of value keyed by secret. Use it with SetCookie,
// or call SetSignedCookie to do both steps at once.
func SignCookieValue(value string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(value))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return value + string(cookieSigSep) + sig
}

// UnsignCookieValue splits a "value.signature" string produced by
// SignCookieValue and verifies the signature in constant time. It returns
// ErrCookieNotSigned if signed is missing the separator, and ErrCookieTampered
// if the signature does not match.
func UnsignCookieValue(signed string, secret []byte) (string, error) {
	sep := -1
	for i := len(signed) - 1; i >= 0; i-- {
		if signed[i] == cookieSigSep {
			sep = i
			break
		}
	}
	if sep < 0 {
		return "", ErrCookieNotSigned
	}

	value, gotSig := signed[:sep], signed[sep+1:]

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(value))
	wantSig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(gotSig), []byte(wantSig)) != 1 {
		return "", ErrCookieTampered
	}
	return value, nil
}

// SetSignedCookie sets a cookie whose value is HMAC-signed with secret, so a
// later GetSignedCookie call (with the same secret) can detect tampering.
// The signature is appended to, not a replacement for, normal cookie
// attributes: combine with Secure/HttpOnly as SetCookie already does.
//
// Example:
//
//	c.SetSignedCookie("session", userID, secretKey, 3600, "/", "", true, true)
func (c *Context) SetSignedCookie(name, value string, secret []byte, maxAge int, path, domain string, secure, httpOnly bool) {
	signed := SignCookieValue(value, secret)
	c.SetCookie(name, signed, maxAge, path, domain, secure, httpOnly)
}

// GetSignedCookie reads and verifies a cookie set by SetSignedCookie. It
// returns ErrCookieNotSigned / ErrCookieTampered if verification fails, never
// the unverified raw value.
func (c *Context) GetSignedCookie(name string, secret []byte) (string, error) {
	raw, err := c.Request.Cookie(name)
	if err != nil {
		return "", err
	}
	signed, err := url.QueryUnescape(raw.Value)
	if err != nil {
		return "", err
	}
	return UnsignCookieValue(signed, secret)
}

// ClearCookie instructs the client to delete the named cookie by sending an
// empty value with MaxAge=-1 (immediate expiry) on the same path/domain it
// was set with.
//
// Example:
//
//	c.ClearCookie("session", "/", "")
func (c *Context) ClearCookie(name, path, domain string) {
	http.SetCookie(c.Response, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		Domain:   domain,
		MaxAge:   -1,
		Expires:  cookieEpoch,
		HttpOnly: true,
	})
}

// RedirectPermanent sends a 301 Moved Permanently redirect. Browsers and
// caches may persist this redirect indefinitely, so only use it for URLs
// that will never point anywhere else.
//
// Example:
//
//	c.RedirectPermanent("/new-path")
func (c *Context) RedirectPermanent(location string) {
	c.Redirect(http.StatusMovedPermanently, location)
}

// RedirectTemporary sends a 307 Temporary Redirect, preserving the original
// request method and body on the client's follow-up request (unlike 302).
//
// Example:
//
//	c.RedirectTemporary("/maintenance")
func (c *Context) RedirectTemporary(location string) {
	c.Redirect(http.StatusTemporaryRedirect, location)
}
