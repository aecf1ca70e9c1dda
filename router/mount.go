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
	"strings"
)

// mountCfg holds configuration for a mounted subrouter.
type mountCfg struct {
	inheritMiddleware bool
	extraMiddleware   []HandlerFunc
	namePrefix        string
	notFoundHandler   HandlerFunc
}

// MountOption configures how a subrouter is mounted.
type MountOption func(*mountCfg)

// InheritMiddleware makes the subrouter inherit parent router's global middleware.
// Parent middleware runs before subrouter middleware.
func InheritMiddleware() MountOption {
	return func(cfg *mountCfg) {
		cfg.inheritMiddleware = true
	}
}

// WithMiddleware adds additional middleware to the subrouter.
// These middleware run after inherited middleware but before route handlers.
func WithMiddleware(m ...HandlerFunc) MountOption {
	return func(cfg *mountCfg) {
		cfg.extraMiddleware = append(cfg.extraMiddleware, m...)
	}
}

// NamePrefix adds a prefix to all route names in the subrouter.
// Useful for metrics and logging scoping.
//
// Example:
//
//	r.Mount("/admin", sub, router.NamePrefix("admin."))
//	// Route named "users" becomes "admin.users"
func NamePrefix(prefix string) MountOption {
	return func(cfg *mountCfg) {
		cfg.namePrefix = prefix
	}
}

// WithNotFound sets a custom 404 handler for the subrouter.
// This handler is only used when no route matches within the subrouter's prefix.
func WithNotFound(h HandlerFunc) MountOption {
	return func(cfg *mountCfg) {
		cfg.notFoundHandler = h
	}
}

// Mount merges a subrouter's routes into the parent router under prefix.
//
// Mount only works before the subrouter has been warmed up or frozen: it
// reads sub's pendingRoutes directly, so routes already installed into
// sub's own tree (via an earlier Warmup/Freeze/request) are not visible
// here. Build and mount subrouters before serving any traffic on them.
//
// Middleware execution order: parent global (if InheritMiddleware) → subrouter middleware → extra → handlers.
//
// Example:
//
//	admin := router.MustNew()
//	admin.GET("/users/:id", getUser)
//
//	r.Mount("/admin", admin,
//	    router.InheritMiddleware(),
//	    router.WithMiddleware(adminLog),
//	    router.NamePrefix("admin."),
//	)
//	// Results in route: GET /admin/users/:id
func (r *Router) Mount(prefix string, sub *Router, opts ...MountOption) {
	if sub == nil {
		return
	}

	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" || prefix[0] != '/' {
		prefix = "/" + prefix
	}

	cfg := &mountCfg{}
	for _, opt := range opts {
		opt(cfg)
	}

	var middlewareChain []HandlerFunc
	if cfg.inheritMiddleware {
		r.middlewareMu.RLock()
		middlewareChain = make([]HandlerFunc, len(r.middleware))
		copy(middlewareChain, r.middleware)
		r.middlewareMu.RUnlock()
	}
	sub.middlewareMu.RLock()
	middlewareChain = append(middlewareChain, sub.middleware...)
	sub.middlewareMu.RUnlock()
	middlewareChain = append(middlewareChain, cfg.extraMiddleware...)

	sub.pendingRoutesMu.Lock()
	pendingRoutes := make([]*Route, len(sub.pendingRoutes))
	copy(pendingRoutes, sub.pendingRoutes)
	sub.pendingRoutesMu.Unlock()

	for _, route := range pendingRoutes {
		r.mountRoute(prefix, route, middlewareChain, cfg.namePrefix)
	}

	if cfg.notFoundHandler != nil {
		originalNoRoute := r.noRouteHandler
		r.NoRoute(func(c *Context) {
			path := c.Request.URL.Path
			switch {
			case strings.HasPrefix(path, prefix):
				cfg.notFoundHandler(c)
			case originalNoRoute != nil:
				originalNoRoute(c)
			default:
				c.Status(http.StatusNotFound)
			}
		})
	}
}

// mountRoute registers a single route from the subrouter under the mount prefix.
func (r *Router) mountRoute(prefix string, route *Route, middlewareChain []HandlerFunc, namePrefix string) {
	var fullPath string
	if route.path == "/" {
		fullPath = prefix
	} else {
		fullPath = prefix + route.path
	}

	allHandlers := make([]HandlerFunc, 0, len(middlewareChain)+len(route.handlers))
	allHandlers = append(allHandlers, middlewareChain...)
	allHandlers = append(allHandlers, route.handlers...)

	newRoute := r.addRoute(route.method, fullPath, allHandlers)

	if route.name != "" {
		newRoute.SetName(namePrefix + route.name)
	}
	if route.description != "" {
		newRoute.SetDescription(route.description)
	}
	if len(route.tags) > 0 {
		newRoute.SetTags(route.tags...)
	}
}
