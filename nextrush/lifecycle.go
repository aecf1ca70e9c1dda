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
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/0xTanzim/nextRush-sub009/router"
)

// hooks stores application lifecycle callbacks, mirroring the ordering
// guarantees documented on each registration method below.
type hooks struct {
	onStart    []func(context.Context) error // sequential, stops on first error
	onReady    []func()                      // fire-and-forget, panic-safe
	onShutdown []func(context.Context)       // LIFO
	onStop     []func()                      // best-effort
	onRoute    []func(*router.Route)         // fired at registration time
	mu         sync.Mutex
}

func newHooks() *hooks { return &hooks{} }

// OnStart registers a hook that runs before the server starts listening.
// Hooks run sequentially; the first error aborts Listen.
func (a *App) OnStart(fn func(context.Context) error) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onStart = append(a.hooks.onStart, fn)
}

// OnReady registers a hook that runs once the listener is bound. Hooks run
// concurrently and recover their own panics; errors don't block startup.
func (a *App) OnReady(fn func()) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onReady = append(a.hooks.onReady, fn)
}

// OnShutdown registers a hook that runs during graceful shutdown, before
// in-flight requests are guaranteed to have drained. Hooks run in reverse
// registration order (LIFO) and receive a context bound by the shutdown
// timeout.
func (a *App) OnShutdown(fn func(context.Context)) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onShutdown = append(a.hooks.onShutdown, fn)
}

// OnStop registers a best-effort hook that runs after the listener has
// fully closed. Panics are recovered and logged.
func (a *App) OnStop(fn func()) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onStop = append(a.hooks.onStop, fn)
}

// OnRoute registers a hook that fires whenever App registers a route.
func (a *App) OnRoute(fn func(*router.Route)) {
	a.hooks.mu.Lock()
	defer a.hooks.mu.Unlock()
	a.hooks.onRoute = append(a.hooks.onRoute, fn)
}

func (h *hooks) fireRoute(route *router.Route) {
	h.mu.Lock()
	fns := make([]func(*router.Route), len(h.onRoute))
	copy(fns, h.onRoute)
	h.mu.Unlock()
	for _, fn := range fns {
		fn(route)
	}
}

func (h *hooks) runStart(ctx context.Context) error {
	h.mu.Lock()
	fns := make([]func(context.Context) error, len(h.onStart))
	copy(fns, h.onStart)
	h.mu.Unlock()
	for _, fn := range fns {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (h *hooks) runReady(logger *slog.Logger) {
	h.mu.Lock()
	fns := make([]func(), len(h.onReady))
	copy(fns, h.onReady)
	h.mu.Unlock()
	for _, fn := range fns {
		go func(fn func()) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("OnReady hook panic", "error", r)
				}
			}()
			fn()
		}(fn)
	}
}

func (h *hooks) runShutdown(ctx context.Context) {
	h.mu.Lock()
	fns := make([]func(context.Context), len(h.onShutdown))
	copy(fns, h.onShutdown)
	h.mu.Unlock()
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i](ctx)
	}
}

func (h *hooks) runStop(logger *slog.Logger) {
	h.mu.Lock()
	fns := make([]func(), len(h.onStop))
	copy(fns, h.onStop)
	h.mu.Unlock()
	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Warn("OnStop hook panic", "error", r)
				}
			}()
			fn()
		}()
	}
}

// Run starts the server on addr, blocks until SIGINT/SIGTERM or a listener
// error, runs graceful shutdown, and returns a process exit code: 0 on a
// clean signal-driven shutdown, 1 if Listen, an OnStart hook, or Close
// failed. Exactly one signal triggers shutdown; a second SIGINT/SIGTERM
// received while shutting down is ignored by the OS-level notify context,
// not re-delivered to this handler.
//
// Example:
//
//	os.Exit(app.Run(":8080"))
func (a *App) Run(addr string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.hooks.runStart(ctx); err != nil {
		a.logger.Error("startup hook failed", "err", err)
		return 1
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Listen(addr)
	}()

	var sig os.Signal
	select {
	case err := <-errCh:
		if err != nil {
			a.logger.Error("listen failed", "err", err)
			return 1
		}
		return 0
	case sig = <-sigCh:
	}

	a.events.emit(EventShutdown, sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.shutdownTimeout)
	defer cancel()

	a.hooks.runShutdown(shutdownCtx)

	if err := a.Close(shutdownCtx); err != nil {
		a.events.emit(EventShutdownError, err)
		a.logger.Error("shutdown failed", "err", err)
		return 1
	}

	a.hooks.runStop(a.logger)
	a.events.emit(EventShutdownComplete, nil)

	return 0
}
