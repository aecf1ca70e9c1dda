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
	"reflect"
	"testing"

	"github.com/0xTanzim/nextRush-sub009/router"
)

func TestOnStartStopsOnFirstError(t *testing.T) {
	h := newHooks()
	var ran []string
	h.onStart = append(h.onStart,
		func(context.Context) error { ran = append(ran, "first"); return nil },
		func(context.Context) error { ran = append(ran, "second"); return assertErr },
		func(context.Context) error { ran = append(ran, "third"); return nil },
	)

	err := h.runStart(context.Background())
	if err != assertErr {
		t.Fatalf("err = %v, want %v", err, assertErr)
	}
	if !reflect.DeepEqual(ran, []string{"first", "second"}) {
		t.Fatalf("ran = %v, want [first second]", ran)
	}
}

func TestOnShutdownRunsLIFO(t *testing.T) {
	h := newHooks()
	var order []string
	h.onShutdown = append(h.onShutdown,
		func(context.Context) { order = append(order, "first") },
		func(context.Context) { order = append(order, "second") },
		func(context.Context) { order = append(order, "third") },
	)

	h.runShutdown(context.Background())
	if !reflect.DeepEqual(order, []string{"third", "second", "first"}) {
		t.Fatalf("order = %v, want [third second first]", order)
	}
}

func TestOnRouteFiresForEveryRegisteredRoute(t *testing.T) {
	a := New()
	var seen []string
	a.OnRoute(func(route *router.Route) {
		seen = append(seen, route.Path())
	})
	a.GET("/widgets", func(c *router.Context) {})
	a.POST("/widgets", func(c *router.Context) {})

	if !reflect.DeepEqual(seen, []string{"/widgets", "/widgets"}) {
		t.Fatalf("seen = %v, want two /widgets entries", seen)
	}
}

func TestOnStopPanicIsRecovered(t *testing.T) {
	h := newHooks()
	ranAfterPanic := false
	h.onStop = append(h.onStop,
		func() { panic("boom") },
		func() { ranAfterPanic = true },
	)

	h.runStop(noopLogger)
	if !ranAfterPanic {
		t.Fatal("hook after the panicking one did not run")
	}
}

var assertErr = errTest("boom")

type errTest string

func (e errTest) Error() string { return string(e) }
