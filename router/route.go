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
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Route represents a registered route.
//
// Routes use deferred registration: GET/POST/... collect a *Route into
// Router.pendingRoutes, and the route is installed into the radix tree
// either by an explicit Warmup() call or lazily on the first request.
type Route struct {
	router   *Router
	method   string
	path     string
	handlers []HandlerFunc

	name        string // reverse-routing name, set via SetName
	description string
	tags        []string
	template    *routeTemplate
	group       *Group
}

// RouteInfo is a read-only snapshot of a registered route for introspection
// (startup banners, debugging, documentation tooling).
type RouteInfo struct {
	Method     string
	Path       string
	Middleware int // number of handlers preceding the terminal one
	IsStatic   bool
	ParamCount int
}

// GET registers a route that matches GET requests.
func (r *Router) GET(path string, handlers ...HandlerFunc) *Route {
	return r.addRoute(http.MethodGet, path, handlers)
}

// POST registers a route that matches POST requests.
func (r *Router) POST(path string, handlers ...HandlerFunc) *Route {
	return r.addRoute(http.MethodPost, path, handlers)
}

// PUT registers a route that matches PUT requests.
func (r *Router) PUT(path string, handlers ...HandlerFunc) *Route {
	return r.addRoute(http.MethodPut, path, handlers)
}

// DELETE registers a route that matches DELETE requests.
func (r *Router) DELETE(path string, handlers ...HandlerFunc) *Route {
	return r.addRoute(http.MethodDelete, path, handlers)
}

// PATCH registers a route that matches PATCH requests.
func (r *Router) PATCH(path string, handlers ...HandlerFunc) *Route {
	return r.addRoute(http.MethodPatch, path, handlers)
}

// OPTIONS registers a route that matches OPTIONS requests.
func (r *Router) OPTIONS(path string, handlers ...HandlerFunc) *Route {
	return r.addRoute(http.MethodOptions, path, handlers)
}

// HEAD registers a route that matches HEAD requests.
func (r *Router) HEAD(path string, handlers ...HandlerFunc) *Route {
	return r.addRoute(http.MethodHead, path, handlers)
}

// addRoute records route metadata and either installs it immediately (if
// the router has already been warmed up) or defers installation to Warmup().
func (r *Router) addRoute(method, path string, handlers []HandlerFunc) *Route {
	if r.frozen.Load() {
		panic("cannot register routes after router is frozen")
	}

	isStatic := !strings.Contains(path, ":") && !strings.Contains(path, "*")
	paramCount := strings.Count(path, ":") + strings.Count(path, "*")

	r.routesMu.Lock()
	r.routes = append(r.routes, RouteInfo{
		Method:     method,
		Path:       path,
		Middleware: max(0, len(handlers)-1),
		IsStatic:   isStatic,
		ParamCount: paramCount,
	})
	r.routesMu.Unlock()

	route := &Route{router: r, method: method, path: path, handlers: handlers}

	r.pendingRoutesMu.Lock()
	if r.warmedUp {
		r.pendingRoutesMu.Unlock()
		route.install()
	} else {
		r.pendingRoutes = append(r.pendingRoutes, route)
		r.pendingRoutesMu.Unlock()
	}

	return route
}

// install merges global middleware with the route's own handlers and adds
// the combined chain to the radix tree for its method.
func (route *Route) install() {
	r := route.router

	r.middlewareMu.RLock()
	allHandlers := make([]HandlerFunc, 0, len(r.middleware)+len(route.handlers))
	allHandlers = append(allHandlers, r.middleware...)
	r.middlewareMu.RUnlock()
	allHandlers = append(allHandlers, route.handlers...)

	r.addRouteToTree(route.method, route.path, allHandlers)
}

// Routes returns a snapshot of all registered routes, sorted by method then path.
func (r *Router) Routes() []RouteInfo {
	r.routesMu.RLock()
	routes := make([]RouteInfo, len(r.routes))
	copy(routes, r.routes)
	r.routesMu.RUnlock()

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Method == routes[j].Method {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	return routes
}

// SetName assigns a human-readable name used for reverse routing
// (Router.URLFor). Names must be unique; panics on a duplicate or if the
// router is already frozen.
func (route *Route) SetName(name string) *Route {
	if route.router.frozen.Load() {
		panic("cannot name routes after router is frozen")
	}

	if route.group != nil && route.group.namePrefix != "" {
		name = route.group.namePrefix + name
	}

	route.router.routesMu.Lock()
	defer route.router.routesMu.Unlock()

	if existing, ok := route.router.namedRoutes[name]; ok {
		panic(fmt.Sprintf("duplicate route name: %s (existing: %s %s, new: %s %s)",
			name, existing.method, existing.path, route.method, route.path))
	}
	route.name = name
	route.router.namedRoutes[name] = route

	return route
}

// SetDescription attaches an optional human-readable description.
func (route *Route) SetDescription(desc string) *Route {
	route.description = desc
	return route
}

// SetTags attaches categorization tags.
func (route *Route) SetTags(tags ...string) *Route {
	route.tags = append(route.tags, tags...)
	return route
}

// Method returns the HTTP method for this route.
func (route *Route) Method() string { return route.method }

// Path returns the route path pattern.
func (route *Route) Path() string { return route.path }

// Name returns the route name, or "" if unnamed.
func (route *Route) Name() string { return route.name }

// Description returns the route description, or "" if unset.
func (route *Route) Description() string { return route.description }

// Tags returns the route's tags.
func (route *Route) Tags() []string { return route.tags }

// routeTemplate is a parsed route pattern used for reverse-routing URL
// construction, avoiding repeated string splitting in URLFor.
type routeTemplate struct {
	segments []routeSegment
}

type routeSegment struct {
	static bool
	value  string
}

func parseRouteTemplate(path string) *routeTemplate {
	var segments []routeSegment
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if part == "" {
			continue
		}
		switch {
		case strings.HasPrefix(part, ":"):
			segments = append(segments, routeSegment{static: false, value: part[1:]})
		case strings.HasPrefix(part, "*"):
			segments = append(segments, routeSegment{static: false, value: part[1:]})
		default:
			segments = append(segments, routeSegment{static: true, value: part})
		}
	}

	return &routeTemplate{segments: segments}
}

// Frozen returns true once the router has been frozen.
func (r *Router) Frozen() bool {
	return r.frozen.Load()
}

// Freeze makes all routes immutable: no further route registration or
// naming is permitted. Freezing also runs Warmup() if it has not already
// run, so lookups after Freeze never pay the deferred-registration cost.
func (r *Router) Freeze() {
	if !r.frozen.CompareAndSwap(false, true) {
		return
	}

	r.Warmup()

	r.routesMu.Lock()
	for _, route := range r.namedRoutes {
		if route.template == nil {
			route.template = parseRouteTemplate(route.path)
		}
	}
	r.routesMu.Unlock()
}

// GetRoute retrieves a named route. Panics if the router is not yet frozen.
func (r *Router) GetRoute(name string) (*Route, bool) {
	if !r.frozen.Load() {
		panic("routes not frozen yet; call Freeze() before accessing named routes")
	}

	r.routesMu.RLock()
	defer r.routesMu.RUnlock()

	route, ok := r.namedRoutes[name]
	return route, ok
}

// URLFor builds a URL from a named route's template and parameters.
func (r *Router) URLFor(routeName string, params map[string]string, query url.Values) (string, error) {
	if !r.frozen.Load() {
		return "", ErrRoutesNotFrozen
	}

	r.routesMu.RLock()
	route, ok := r.namedRoutes[routeName]
	r.routesMu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, routeName)
	}

	if route.template == nil {
		route.template = parseRouteTemplate(route.path)
	}

	var buf strings.Builder
	buf.WriteByte('/')
	for i, seg := range route.template.segments {
		if i > 0 {
			buf.WriteByte('/')
		}
		if seg.static {
			buf.WriteString(seg.value)
			continue
		}
		val, ok := params[seg.value]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingRouteParameter, seg.value)
		}
		buf.WriteString(url.PathEscape(val))
	}

	if len(query) > 0 {
		buf.WriteByte('?')
		buf.WriteString(query.Encode())
	}

	return buf.String(), nil
}

// MustURLFor is URLFor but panics on error.
func (r *Router) MustURLFor(routeName string, params map[string]string, query url.Values) string {
	u, err := r.URLFor(routeName, params, query)
	if err != nil {
		panic(fmt.Sprintf("MustURLFor failed: %v", err))
	}
	return u
}
