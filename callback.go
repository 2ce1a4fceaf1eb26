// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackle

import (
	"context"
	"sort"
	"sync"
)

// Handler is a callback for an incoming Slack payload. The Invocation
// carries everything known about the payload; returning an error fires the
// slack.error hook.
type Handler func(ctx context.Context, inv *Invocation) error

// Callback kinds. They double as the key namespace in the registry, so a
// command and an event with the same name never collide.
const (
	KindEvent   = "events"
	KindCommand = "command"
	KindAction  = "interactivity"
)

// CallbackRegistry stores the handlers for Slack events, slash commands and
// interactive actions. It is safe for concurrent use, although registration
// normally happens before the app starts serving.
type CallbackRegistry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	events   map[string]Handler
	commands map[string]Handler
	actions  map[string]Handler
}

// NewCallbackRegistry returns an empty registry.
func NewCallbackRegistry() *CallbackRegistry {
	return &CallbackRegistry{
		handlers: make(map[string]Handler),
		events:   make(map[string]Handler),
		commands: make(map[string]Handler),
		actions:  make(map[string]Handler),
	}
}

// Event registers a handler for a Slack event type, e.g. "app_mention".
func (r *CallbackRegistry) Event(eventType string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[KindEvent+":"+eventType] = h
	r.events[eventType] = h
}

// Command registers a handler for a slash command, e.g. "/hello".
func (r *CallbackRegistry) Command(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[KindCommand+":"+name] = h
	r.commands[name] = h
}

// Action registers a handler for an interactive component action ID.
func (r *CallbackRegistry) Action(actionID string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[KindAction+":"+actionID] = h
	r.actions[actionID] = h
}

// Get returns the handler registered under kind and name.
func (r *CallbackRegistry) Get(kind, name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[kind+":"+name]
	return h, ok
}

// Has reports whether a handler is registered under kind and name.
func (r *CallbackRegistry) Has(kind, name string) bool {
	_, ok := r.Get(kind, name)
	return ok
}

// Len returns the number of registered handlers.
func (r *CallbackRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.handlers)
}

// Names returns the qualified names (kind:name) of all registered handlers,
// sorted.
func (r *CallbackRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// UpdateFrom copies every handler from other into r, overwriting handlers
// that share a name.
func (r *CallbackRegistry) UpdateFrom(other *CallbackRegistry) {
	if other == nil {
		return
	}

	other.mu.RLock()
	defer other.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range other.handlers {
		r.handlers[k] = v
	}
	for k, v := range other.events {
		r.events[k] = v
	}
	for k, v := range other.commands {
		r.commands[k] = v
	}
	for k, v := range other.actions {
		r.actions[k] = v
	}
}

// Merge combines any number of registries into a new one. Later registries
// win on name collisions. Useful when composing callbacks from multiple
// modules or plugins.
func Merge(registries ...*CallbackRegistry) *CallbackRegistry {
	merged := NewCallbackRegistry()
	for _, r := range registries {
		merged.UpdateFrom(r)
	}

	return merged
}
