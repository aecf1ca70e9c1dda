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
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/0xTanzim/nextRush-sub009/router"
)

func TestListenEmitsListeningAndCloseDrains(t *testing.T) {
	a := New(WithShutdownTimeout(2 * time.Second))
	a.GET("/", func(c *router.Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	listening := make(chan any, 1)
	a.On(EventListening, func(payload any) { listening <- payload })

	listenErr := make(chan error, 1)
	go func() { listenErr <- a.Listen(":0") }()

	select {
	case <-listening:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for listening event")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := a.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case err := <-listenErr:
		if err != nil {
			t.Fatalf("Listen: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Listen did not return after Close")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	a := New()
	listening := make(chan any, 1)
	a.On(EventListening, func(payload any) { listening <- payload })

	listenErr := make(chan error, 1)
	go func() { listenErr <- a.Listen(":0") }()

	select {
	case <-listening:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for listening event")
	}

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = a.Close(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Close[%d]: %v", i, err)
		}
	}
	<-listenErr
}

func TestCloseBeforeListenIsNoop(t *testing.T) {
	a := New()
	if err := a.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
