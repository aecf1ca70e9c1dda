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

// Package router provides the radix-tree HTTP matcher and pooled request
// context at the core of the NextRush application framework.
//
// # Key Features
//
//   - Static, parameterized (":name") and wildcard ("*name") path matching
//   - Bounded result cache for static-route matches
//   - sync.Pool-backed Context allocation, tiered by parameter count
//   - Route grouping and subrouter mounting
//   - Reverse routing via named routes (Freeze + URLFor)
//   - Content negotiation (Accept, Accept-Language, Accept-Encoding)
//   - Conditional GET / ETag helpers and Cache-Control header construction
//   - Trusted-proxy-aware client IP resolution
//
// The higher-level middleware pipeline, exception filters, and server
// lifecycle (graceful shutdown, H2C) are built on top of Router in
// the nextrush package, not here.
//
// # Constructor Pattern
//
//   - New()/MustNew() return *Router; construction allocates memory and
//     applies options but performs no I/O, so MustNew never panics today.
//     It is kept error-returning-free for symmetry with the rest of the
//     options-pattern API and to leave room for future validated options.
//   - All configuration options use the "With"/"Without" prefix
//     convention (e.g. WithCancellationCheck, WithoutCancellationCheck).
//
// # Quick Start
//
//	package main
//
//	import (
//	    "net/http"
//	    "github.com/0xTanzim/nextRush-sub009/router"
//	)
//
//	func main() {
//	    r := router.MustNew()
//
//	    r.GET("/", func(c *router.Context) {
//	        c.JSON(http.StatusOK, map[string]string{"message": "Hello World"})
//	    })
//
//	    r.GET("/users/:id", func(c *router.Context) {
//	        c.JSON(http.StatusOK, map[string]string{"user_id": c.Param("id")})
//	    })
//
//	    http.ListenAndServe(":8080", r)
//	}
//
// # Middleware
//
// Middleware can be applied globally, to route groups, or per-route:
//
//	r.Use(loggingMiddleware)
//
//	api := r.Group("/api")
//	api.Use(authMiddleware)
//	api.GET("/users", handler)
//
// # Content Negotiation
//
// The router implements RFC 7231-compliant content negotiation:
//
//	r.GET("/users/:id", func(c *router.Context) {
//	    switch c.Accepts("json", "html") {
//	    case "json":
//	        c.JSON(200, user)
//	    case "html":
//	        c.HTML(200, renderUser(user))
//	    default:
//	        c.Status(http.StatusNotAcceptable)
//	    }
//	})
package router
