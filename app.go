// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackle

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

// shutdownGrace is how long Run waits for in-flight HTTP requests during
// graceful shutdown.
const shutdownGrace = 10 * time.Second

// App is a slackle application: an HTTP service that receives Slack webhook
// payloads and dispatches them to registered handlers.
type App struct {
	config    Config
	router    *gin.Engine
	slack     *Client
	callbacks *CallbackRegistry
	hooks     *HookDispatcher
	plugins   []Plugin
	log       *slog.Logger

	extMu      sync.RWMutex
	extensions map[string]any

	wg        sync.WaitGroup
	booted    atomic.Bool
	setupMode atomic.Bool
}

// Option customizes an App at construction time.
type Option func(*App)

// WithLogger replaces the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) { a.log = log }
}

// WithSlackOptions passes options through to the slack-go client, e.g.
// slack.OptionAPIURL to target a fake server in tests.
func WithSlackOptions(opts ...slack.Option) Option {
	return func(a *App) { a.slack = NewClient(a.config.BotToken, opts...) }
}

// New constructs an App from a Config. The Slack webhook routes are mounted
// under /slack: POST /slack/events, /slack/command, /slack/interactivity.
func New(cfg Config, opts ...Option) *App {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	a := &App{
		config:     cfg,
		router:     gin.New(),
		callbacks:  NewCallbackRegistry(),
		hooks:      NewHookDispatcher(),
		extensions: make(map[string]any),
		log:        slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.slack == nil {
		a.slack = NewClient(cfg.BotToken)
	}
	a.slack.withLogger(a.log)

	a.router.Use(gin.Recovery())
	a.mountSlackRoutes()

	return a
}

// Config returns the app's configuration.
func (a *App) Config() Config { return a.config }

// Slack returns the Slack Web API client.
func (a *App) Slack() *Client { return a.slack }

// Callbacks returns the callback registry. Most callers use the OnEvent,
// OnCommand and OnAction shorthands instead.
func (a *App) Callbacks() *CallbackRegistry { return a.callbacks }

// Hooks returns the lifecycle hook dispatcher.
func (a *App) Hooks() *HookDispatcher { return a.hooks }

// Router returns the underlying gin engine so callers can add their own
// routes and middleware next to the Slack endpoints.
func (a *App) Router() *gin.Engine { return a.router }

// Logger returns the app's logger.
func (a *App) Logger() *slog.Logger { return a.log }

// OnEvent registers a handler for a Slack event type, e.g. "app_mention".
func (a *App) OnEvent(eventType string, h Handler) {
	a.callbacks.Event(eventType, h)
}

// OnCommand registers a handler for a slash command, e.g. "/hello".
func (a *App) OnCommand(name string, h Handler) {
	a.callbacks.Command(name, h)
}

// OnAction registers a handler for an interactive component action ID.
func (a *App) OnAction(actionID string, h Handler) {
	a.callbacks.Action(actionID, h)
}

// OnHook registers a lifecycle hook at the app level.
func (a *App) OnHook(name string, fn HookFunc) {
	a.hooks.On(name, fn)
}

// Handler returns the app as an http.Handler, for mounting into an existing
// server or driving from httptest.
func (a *App) Handler() http.Handler { return a.router }

// Wait blocks until all in-flight background dispatches have finished.
func (a *App) Wait() { a.wg.Wait() }

// Run serves the app on addr until ctx is cancelled, then shuts the server
// down gracefully, drains background dispatches, and emits the shutdown
// hook. The startup hook is emitted before the listener opens; a startup
// hook error aborts the run.
func (a *App) Run(ctx context.Context, addr string) error {
	if err := a.config.validate(); err != nil {
		return err
	}

	if err := a.hooks.Emit(ctx, a, HookStartup, HookArgs{}); err != nil {
		return err
	}
	a.booted.Store(true)

	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	a.log.Info("slackle app started", "addr", addr)

	var serveErr error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			serveErr = errors.Wrap(err, "server shutdown failed")
		}
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = errors.Wrap(err, "server failed")
		}
	}

	a.Wait()
	a.booted.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := a.hooks.Emit(shutdownCtx, a, HookShutdown, HookArgs{}); err != nil {
		a.log.Error("shutdown hook failed", "err", err)
	}

	return serveErr
}
