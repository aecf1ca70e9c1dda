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

// Package nextrush is the pipeline orchestrator and server manager built on
// top of package router. It owns:
//
//   - App-level middleware composed in strict onion order, with explicit
//     next() semantics (calling next twice aborts the request).
//   - A taxonomy-tagged exception filter chain, terminated by
//     GlobalExceptionFilter.
//   - A lifecycle event bus (listening, request, close, shutdown,
//     shutdownComplete, shutdownError, error).
//   - The HTTP server itself: listen/close state machine, signal-driven
//     graceful shutdown, and connection timeout knobs.
//
// Package router remains usable standalone (it implements http.Handler on
// its own); App wraps a *router.Router to add these application-level
// concerns without touching the matcher or the pooled Context.
package nextrush
