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
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// serverState is the C5 state machine: idle -> listening -> closing ->
// closed. idle is the zero value; closed is terminal.
type serverState int

const (
	stateIdle serverState = iota
	stateListening
	stateClosing
	stateClosed
)

// serverManager wraps an *http.Server with the state machine and idempotent
// close semantics the server manager component requires: exactly one
// listening -> closing -> closed transition regardless of how many callers
// invoke Close concurrently.
type serverManager struct {
	mu    sync.Mutex
	state serverState
	http  *http.Server
	// closeOnce guards the actual Shutdown call; every Close after the
	// first waits on closeDone instead of calling Shutdown again.
	closeOnce sync.Once
	closeDone chan struct{}
	closeErr  error
}

// Listen binds addr, freezes the route table, and serves until Close is
// called or the listener errors. It transitions idle -> listening and
// blocks until the server stops; callers that want a signal-driven process
// should use Run instead, which calls Listen in a goroutine.
func (a *App) Listen(addr string) error {
	if a.server == nil {
		a.server = &serverManager{closeDone: make(chan struct{})}
	}

	a.server.mu.Lock()
	if a.server.state != stateIdle {
		a.server.mu.Unlock()
		return fmt.Errorf("nextrush: server already %v", a.server.state)
	}
	a.server.state = stateListening
	a.server.mu.Unlock()

	a.router.Freeze()

	var handler http.Handler = a.router
	if a.config.enableH2C {
		handler = h2c.NewHandler(a.router, &http2.Server{})
	}

	a.server.http = &http.Server{
		Addr:              addr,
		Handler:           handler,
		IdleTimeout:       a.config.keepAliveTimeout,
		WriteTimeout:      a.config.requestTimeout,
		ReadHeaderTimeout: a.config.headersTimeout,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		a.server.mu.Lock()
		a.server.state = stateClosed
		a.server.mu.Unlock()
		return fmt.Errorf("nextrush: listen on %s: %w", addr, err)
	}

	a.hooks.runReady(a.logger)
	a.events.emit(EventListening, ln.Addr().String())

	err = a.server.http.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		// Expected outcome of a Close-driven shutdown; the state machine
		// already transitioned in Close, so this isn't an error to the
		// caller of Listen.
		return nil
	}
	return err
}

// Close transitions listening -> closing -> closed, draining in-flight
// requests within ctx's deadline before forcing connections shut. It is
// idempotent: concurrent or repeated calls observe the same result as the
// first caller, and a Close before Listen is a no-op.
func (a *App) Close(ctx context.Context) error {
	if a.server == nil {
		return nil
	}

	a.server.mu.Lock()
	if a.server.state == stateIdle {
		a.server.mu.Unlock()
		return nil
	}
	if a.server.state == stateClosed {
		a.server.mu.Unlock()
		return a.server.closeErr
	}
	a.server.state = stateClosing
	a.server.mu.Unlock()

	a.server.closeOnce.Do(func() {
		defer close(a.server.closeDone)

		a.events.emit(EventClose, nil)
		a.server.closeErr = a.server.http.Shutdown(ctx)

		a.server.mu.Lock()
		a.server.state = stateClosed
		a.server.mu.Unlock()
	})

	<-a.server.closeDone
	return a.server.closeErr
}
