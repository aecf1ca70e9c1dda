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
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/0xTanzim/nextRush-sub009/router"
)

// Next is handed to a MiddlewareFunc so it can resume the chain. Calling it
// a second time from the same invocation panics with a *NextRushError
// tagged Internal ("next() called multiple times") — the onion model
// requires each layer to call next at most once.
type Next func()

// MiddlewareFunc is app-level middleware composed in strict onion order:
// pre-next code runs in registration order, post-next code runs in
// reverse registration order. Unlike router.HandlerFunc (which uses the
// Context's own index-advancing Next()/Abort()), MiddlewareFunc owns an
// explicit continuation so double-invocation can be detected.
type MiddlewareFunc func(c *router.Context, next Next)

// Use appends app-level middleware. Middleware registered here wraps every
// route registered through App's GET/POST/... methods, running before that
// route's own handlers; requests that match no such route do not pass
// through it. The middleware list is read on each request, unlike
// router.Router.Use, which bakes middleware into each route's own handler
// chain.
//
// Example:
//
//	app.Use(nextrush.RequestID())
//	app.Use(func(c *router.Context, next nextrush.Next) {
//	    start := time.Now()
//	    next()
//	    c.Logger().Info("request", "took", time.Since(start))
//	})
func (a *App) Use(mw ...MiddlewareFunc) {
	a.middlewareMu.Lock()
	a.middleware = append(a.middleware, mw...)
	a.middlewareMu.Unlock()
}

func (a *App) snapshotMiddleware() []MiddlewareFunc {
	a.middlewareMu.RLock()
	defer a.middlewareMu.RUnlock()
	mws := make([]MiddlewareFunc, len(a.middleware))
	copy(mws, a.middleware)
	return mws
}

// appEntry is prepended to every route registered through App.GET/POST/...
// It composes the app-level middleware into a single onion dispatch, then
// falls through to the route's own handlers via the Context's normal
// router.Context.Next(). A deferred recover at the top turns any panic —
// from middleware, from "next called twice", or from the route handler
// itself — into a run through the exception filter chain.
// statusCoder is satisfied by router's internal responseWriter wrapper, the
// same unexported type writtenChecker (filters.go) reaches into.
type statusCoder interface {
	StatusCode() int
}

func (a *App) appEntry(c *router.Context) {
	defer a.recoverAndFilter(c)

	start := time.Now()
	a.events.emit(EventRequest, c.Request)

	mws := a.snapshotMiddleware()

	var dispatch func(i int)
	dispatch = func(i int) {
		if i >= len(mws) {
			c.Next()
			return
		}

		called := false
		mws[i](c, func() {
			if called {
				Throw(TagInternal, "next() called multiple times")
			}
			called = true
			if !c.IsAborted() {
				dispatch(i + 1)
			}
		})
	}
	dispatch(0)

	// Handlers that record errors via c.Error() instead of panicking still
	// go through the same filter chain, as long as nothing has been
	// written to the response yet.
	if c.HasErrors() && !headersSent(c) {
		errs := c.Errors()
		a.runExceptionFilters(c, errs[len(errs)-1])
	}

	if a.logConfig != nil {
		status := 0
		if sc, ok := c.Response.(statusCoder); ok {
			status = sc.StatusCode()
		}
		a.logConfig.LogRequest(c.Request, "status", status, "duration_ms", time.Since(start).Milliseconds())
	}
}

func (a *App) recoverAndFilter(c *router.Context) {
	r := recover()
	if r == nil {
		return
	}
	a.runExceptionFilters(c, normalizeRecovered(r))
}

// RequestID returns middleware that assigns a request ID (from the
// X-Request-Id header if present, otherwise a fresh UUIDv4), echoes it on
// the response, and attaches it to the request-scoped logger.
//
// Example:
//
//	app.Use(nextrush.RequestID())
func RequestID() MiddlewareFunc {
	return func(c *router.Context, next Next) {
		id := c.Request.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-Id", id)
		c.SetLogger(c.Logger().With("request_id", id))

		ctx := context.WithValue(c.Request.Context(), requestIDKey{}, id)
		c.Request = c.Request.WithContext(ctx)

		next()
	}
}

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stashed by RequestID
// middleware, or "" if that middleware was not installed.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Timer returns middleware that attaches request duration to the
// request-scoped logger on the way out (the onion's post-next phase).
//
// Example:
//
//	app.Use(nextrush.Timer())
func Timer() MiddlewareFunc {
	return func(c *router.Context, next Next) {
		start := time.Now()
		next()
		c.Logger().Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.RoutePattern(),
			"duration", time.Since(start),
		)
	}
}
