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
	"log/slog"
	"time"

	"github.com/0xTanzim/nextRush-sub009/logging"
)

// WithServiceName sets the service name shown in the startup banner.
func WithServiceName(name string) Option {
	return func(a *App) { a.config.serviceName = name }
}

// WithServiceVersion sets the service version shown in the startup banner.
func WithServiceVersion(version string) Option {
	return func(a *App) { a.config.serviceVersion = version }
}

// WithEnvironment sets the deployment environment ("development" or
// "production"); it controls banner colorization and route-table display.
func WithEnvironment(env string) Option {
	return func(a *App) { a.config.environment = env }
}

// WithLogger sets the base logger. Request-scoped loggers (with a
// request_id field attached) are derived from it by the RequestID
// middleware; without that middleware installed, handlers see
// this same logger via Context.Logger().
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLogConfig wires a *logging.Config into the app: its derived *slog.Logger
// becomes the app's base logger, and every request and filtered error is
// additionally routed through the config's sampling, redaction and
// shutdown-aware LogRequest/LogError helpers.
//
// Example:
//
//	cfg := logging.MustNew(logging.WithServiceName("checkout"))
//	nextrush.New(nextrush.WithLogConfig(cfg))
func WithLogConfig(cfg *logging.Config) Option {
	return func(a *App) {
		if cfg == nil {
			return
		}
		a.logConfig = cfg
		a.logger = cfg.Logger()
	}
}

// WithKeepAliveTimeout sets how long an idle keep-alive connection is held
// open. Forwarded to http.Server.IdleTimeout.
func WithKeepAliveTimeout(d time.Duration) Option {
	return func(a *App) { a.config.keepAliveTimeout = d }
}

// WithRequestTimeout bounds how long a single request may take to write
// its response. Forwarded to http.Server.WriteTimeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(a *App) { a.config.requestTimeout = d }
}

// WithHeadersTimeout bounds how long reading request headers may take.
// Forwarded to http.Server.ReadHeaderTimeout.
func WithHeadersTimeout(d time.Duration) Option {
	return func(a *App) { a.config.headersTimeout = d }
}

// WithShutdownTimeout bounds how long Run's graceful shutdown (shutdown
// hooks and Close) waits for in-flight requests. A direct call to Close is
// bounded by its own ctx instead.
func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) { a.config.shutdownTimeout = d }
}

// WithH2C enables cleartext HTTP/2 (h2c) on Listen, useful for gRPC-style
// or trusted-proxy-terminated deployments that never see TLS at this hop.
func WithH2C() Option {
	return func(a *App) { a.config.enableH2C = true }
}
