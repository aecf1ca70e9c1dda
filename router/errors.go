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

import "errors"

// Static errors for better error handling and testing.
// These errors should be wrapped with fmt.Errorf and %w when context is needed.
var (
	// Context errors
	ErrContextResponseNil    = errors.New("context response is nil")
	ErrContentTypeNotAllowed = errors.New("content type not allowed")

	// Request errors
	ErrFileNotFound = errors.New("file not found")
	ErrNoFilesFound = errors.New("no files found for key")

	// Router errors
	ErrResponseWriterNotHijacker = errors.New("responseWriter does not implement http.Hijacker")

	// Registration-time routing errors (spec §4.1)
	ErrConflictingParameterName = errors.New("conflicting parameter name at this path position")
	ErrWildcardNotTerminal      = errors.New("wildcard segment must be the last segment of the path")

	// Route errors
	ErrRoutesNotFrozen       = errors.New("routes not frozen yet")
	ErrRouteNotFound         = errors.New("route not found")
	ErrMissingRouteParameter = errors.New("missing required parameter")

	// JSON parsing errors
	ErrMultipleJSONValues = errors.New("request body must contain a single JSON value")
	ErrExpectedJSONArray  = errors.New("expected a JSON array")
	ErrArrayExceedsMax    = errors.New("array exceeds maximum items")

	// Typed parameter/query accessor errors
	ErrQueryInvalidInteger = errors.New("query: invalid integer")
)
