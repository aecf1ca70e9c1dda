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

import "strings"

// node is one segment of the radix tree. Each node holds static children
// keyed by their first byte (falling back to a full-segment bucket only
// when two static segments collide on that byte), at most one parameter
// child, and at most one wildcard child — registering two different
// parameter names (or two wildcards) at the same tree position is a
// registration error, not a runtime ambiguity.
type node struct {
	segment string         // segment this node was created for (":name"/"*name" for param/wildcard nodes, "" for bucket nodes)
	static  map[byte]*node // static children keyed by first byte
	bucket  map[string]*node // populated only when >1 static segment shares a first byte

	param    *node  // single parameter child, if any
	paramKey string // parameter name for the param child ("" if none)
	wildcard *node  // single wildcard child, if any
	wildKey  string // wildcard parameter name

	handlers []HandlerFunc // non-nil when this node terminates a registered route
	pattern  string        // original registered route pattern, for introspection
}

func newNode(segment string) *node {
	return &node{segment: segment}
}

// splitPath breaks a route path into its '/'-delimited segments, ignoring
// leading/trailing slashes.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// insert registers handlers for path starting at the receiver (the tree
// root for a given HTTP method). It panics with ErrConflictingParameterName
// if a parameter segment collides with a different parameter name already
// registered at the same position, and with ErrWildcardNotTerminal if a
// wildcard segment is not the final segment of path.
func (n *node) insert(path string, handlers []HandlerFunc) {
	cur := n
	segments := splitPath(path)

	for i, seg := range segments {
		switch {
		case strings.HasPrefix(seg, "*"):
			if i != len(segments)-1 {
				panic(ErrWildcardNotTerminal)
			}
			key := seg[1:]
			if cur.wildcard == nil {
				cur.wildcard = newNode(seg)
				cur.wildKey = key
			} else if cur.wildKey != key {
				panic(ErrConflictingParameterName)
			}
			cur = cur.wildcard

		case strings.HasPrefix(seg, ":"):
			key := seg[1:]
			if cur.param == nil {
				cur.param = newNode(seg)
				cur.paramKey = key
			} else if cur.paramKey != key {
				panic(ErrConflictingParameterName)
			}
			cur = cur.param

		default:
			cur = cur.insertStatic(seg)
		}
	}

	cur.handlers = handlers
	cur.pattern = path
}

// insertStatic finds or creates the child for a static segment, degrading
// the first-byte map entry into a bucket if a second, different segment
// collides on the same first byte.
func (n *node) insertStatic(seg string) *node {
	if n.static == nil {
		n.static = make(map[byte]*node, 4)
	}

	existing, ok := n.static[seg[0]]
	if !ok {
		child := newNode(seg)
		n.static[seg[0]] = child
		return child
	}

	if existing.bucket != nil {
		if child, found := existing.bucket[seg]; found {
			return child
		}
		child := newNode(seg)
		existing.bucket[seg] = child
		return child
	}

	if existing.segment == seg {
		return existing
	}

	// Collision on first byte between two distinct segments: convert to a bucket.
	bucket := newNode("")
	bucket.bucket = map[string]*node{existing.segment: existing, seg: newNode(seg)}
	n.static[seg[0]] = bucket
	return bucket.bucket[seg]
}

func (n *node) matchStatic(seg string) *node {
	if n.static == nil || len(seg) == 0 {
		return nil
	}
	child, ok := n.static[seg[0]]
	if !ok {
		return nil
	}
	if child.bucket != nil {
		return child.bucket[seg]
	}
	if child.segment == seg {
		return child
	}
	return nil
}

// find walks the tree matching path segment by segment, writing matched
// parameters directly into ctx's parameter storage (no intermediate map on
// the hot path) and returns the terminal node's handlers plus its
// registered pattern string, or nil if no route matches.
func (n *node) find(path string, ctx *Context) (handlers []HandlerFunc, pattern string) {
	segments := splitPath(path)
	cur := n

	for i, seg := range segments {
		if next := cur.matchStatic(seg); next != nil {
			cur = next
			continue
		}

		if cur.param != nil {
			ctx.setParam(cur.paramKey, seg)
			cur = cur.param
			continue
		}

		if cur.wildcard != nil {
			rest := strings.Join(segments[i:], "/")
			ctx.setParam(cur.wildKey, rest)
			cur = cur.wildcard

			return cur.handlers, cur.pattern
		}

		return nil, ""
	}

	return cur.handlers, cur.pattern
}
