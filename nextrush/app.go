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
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/0xTanzim/nextRush-sub009/logging"
	"github.com/0xTanzim/nextRush-sub009/router"
)

// noopLogger discards everything; used until WithLogger is supplied.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// App is the pipeline orchestrator (C4) and, via Listen/Close, the server
// manager (C5). It owns app-level middleware composition, the exception
// filter chain, the lifecycle event bus, and the HTTP server built on top
// of the embedded *router.Router.
type App struct {
	router *router.Router

	middleware   []MiddlewareFunc
	middlewareMu sync.RWMutex

	filters []ExceptionFilter
	global  *globalExceptionFilter

	events *eventBus
	hooks  *hooks

	logger *slog.Logger

	// logConfig is non-nil when WithLogConfig supplied a structured
	// *logging.Config; when set, appEntry and the global exception filter
	// log through it (sampling, redaction, request-id correlation) instead
	// of the bare logger.
	logConfig *logging.Config

	config appConfig
	server *serverManager
}

// appConfig holds construction-time settings threaded through by Option.
type appConfig struct {
	serviceName    string
	serviceVersion string
	environment    string

	keepAliveTimeout time.Duration
	requestTimeout   time.Duration
	headersTimeout   time.Duration
	shutdownTimeout  time.Duration
	enableH2C        bool
}

// Option configures an App at construction time.
type Option func(*App)

// New builds an App. Routes can be registered immediately; the underlying
// router defers installation until Warmup/Freeze/first request, same as
// package router.
func New(opts ...Option) *App {
	a := &App{
		events: newEventBus(),
		hooks:  newHooks(),
		logger: noopLogger,
		config: appConfig{
			serviceName:      "nextrush-app",
			serviceVersion:   "0.0.0",
			environment:      "development",
			keepAliveTimeout: 65 * time.Second,
			requestTimeout:   60 * time.Second,
			headersTimeout:   66 * time.Second,
			shutdownTimeout:  15 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(a)
	}

	a.router = router.MustNew(router.WithLogger(a.logger))
	a.global = newGlobalExceptionFilter(a.logger)

	return a
}

// Router returns the underlying router, for callers that need router-level
// primitives (Mount, Freeze, URLFor, introspection via Routes()).
func (a *App) Router() *router.Router { return a.router }

// BaseLogger returns the app's configured logger (never nil).
func (a *App) BaseLogger() *slog.Logger { return a.logger }

func (a *App) addRoute(method, path string, handlers []router.HandlerFunc) *router.Route {
	if a.router.Frozen() {
		panic("cannot register routes after app is frozen")
	}
	all := make([]router.HandlerFunc, 0, len(handlers)+1)
	all = append(all, a.appEntry)
	all = append(all, handlers...)

	var route *router.Route
	switch method {
	case http.MethodGet:
		route = a.router.GET(path, all...)
	case http.MethodPost:
		route = a.router.POST(path, all...)
	case http.MethodPut:
		route = a.router.PUT(path, all...)
	case http.MethodDelete:
		route = a.router.DELETE(path, all...)
	case http.MethodPatch:
		route = a.router.PATCH(path, all...)
	case http.MethodOptions:
		route = a.router.OPTIONS(path, all...)
	case http.MethodHead:
		route = a.router.HEAD(path, all...)
	default:
		panic("unsupported method: " + method)
	}

	a.hooks.fireRoute(route)
	return route
}

// GET registers a route that matches GET requests.
func (a *App) GET(path string, handlers ...router.HandlerFunc) *router.Route {
	return a.addRoute(http.MethodGet, path, handlers)
}

// POST registers a route that matches POST requests.
func (a *App) POST(path string, handlers ...router.HandlerFunc) *router.Route {
	return a.addRoute(http.MethodPost, path, handlers)
}

// PUT registers a route that matches PUT requests.
func (a *App) PUT(path string, handlers ...router.HandlerFunc) *router.Route {
	return a.addRoute(http.MethodPut, path, handlers)
}

// DELETE registers a route that matches DELETE requests.
func (a *App) DELETE(path string, handlers ...router.HandlerFunc) *router.Route {
	return a.addRoute(http.MethodDelete, path, handlers)
}

// PATCH registers a route that matches PATCH requests.
func (a *App) PATCH(path string, handlers ...router.HandlerFunc) *router.Route {
	return a.addRoute(http.MethodPatch, path, handlers)
}

// OPTIONS registers a route that matches OPTIONS requests.
func (a *App) OPTIONS(path string, handlers ...router.HandlerFunc) *router.Route {
	return a.addRoute(http.MethodOptions, path, handlers)
}

// HEAD registers a route that matches HEAD requests.
func (a *App) HEAD(path string, handlers ...router.HandlerFunc) *router.Route {
	return a.addRoute(http.MethodHead, path, handlers)
}

// Mount mounts a sub-router under prefix, inheriting this app's underlying
// router middleware but not its app-level (onion) middleware, which only
// wraps routes registered directly via App's own HTTP-method methods.
// Apps that need app-level middleware on mounted routes should register
// those routes on the App itself, or build the sub-router with its own
// App and mount that App's Router().
func (a *App) Mount(prefix string, sub *router.Router, opts ...router.MountOption) {
	a.router.Mount(prefix, sub, opts...)
}

// Group returns a router.Group scoped under prefix. Routes added through
// the returned group do not automatically get App's onion middleware
// prepended (Group.GET etc. call the underlying router directly); use
// App.Use for cross-cutting concerns instead.
func (a *App) Group(prefix string, middleware ...router.HandlerFunc) *router.Group {
	return a.router.Group(prefix, middleware...)
}

// ServeHTTP implements http.Handler by delegating to the underlying
// router, which already carries app-level middleware baked into every
// route registered through App's own GET/POST/... methods.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}
