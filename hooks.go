// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackle

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Lifecycle hook names emitted by the framework itself. Plugins and apps may
// also emit and listen on their own names.
const (
	HookStartup    = "startup"
	HookShutdown   = "shutdown"
	HookPreHandle  = "slack.pre_handle"
	HookPostHandle = "slack.post_handle"
	HookError      = "slack.error"
	HookUnhandled  = "slack.unhandled"
)

// HookArgs carries the dispatch state into hook functions. Invocation is nil
// for startup and shutdown; Err is set only for the slack.error hook.
type HookArgs struct {
	Invocation *Invocation
	Err        error
}

// HookFunc is a lifecycle hook. An error returned from a hook stops the
// remaining hooks for that emission.
type HookFunc func(ctx context.Context, app *App, args HookArgs) error

// HookDispatcher fans lifecycle events out to registered hook functions in
// registration order.
type HookDispatcher struct {
	mu    sync.RWMutex
	hooks map[string][]HookFunc
}

// NewHookDispatcher returns an empty dispatcher.
func NewHookDispatcher() *HookDispatcher {
	return &HookDispatcher{hooks: make(map[string][]HookFunc)}
}

// On registers fn for the named hook.
func (d *HookDispatcher) On(name string, fn HookFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.hooks[name] = append(d.hooks[name], fn)
}

// Emit runs the hooks registered for name, in order. The first error stops
// the run and is returned, wrapped with the hook name.
func (d *HookDispatcher) Emit(ctx context.Context, app *App, name string, args HookArgs) error {
	d.mu.RLock()
	fns := d.hooks[name]
	d.mu.RUnlock()

	for _, fn := range fns {
		if err := fn(ctx, app, args); err != nil {
			return errors.Wrapf(err, "hook %q failed", name)
		}
	}

	return nil
}

// Count returns the number of functions registered for name.
func (d *HookDispatcher) Count(name string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.hooks[name])
}
