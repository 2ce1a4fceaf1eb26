// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

// Package command provides a slash command registry with descriptions,
// groups, and a generated /help command, installed into a slackle app as a
// plugin.
//
// Where slackle's OnCommand registers a bare handler, this package attaches
// metadata to each command so the bot can describe itself:
//
//	p := command.NewPlugin()
//	p.Register(command.Meta{
//		Command:     "/deploy",
//		Description: "Deploy a service to an environment",
//		Group:       "operations",
//		Visible:     true,
//		Handler: command.HandlerFunc(func(ctx context.Context, text, userID string) (slackle.Message, error) {
//			return slackle.Text("deploying " + text), nil
//		}),
//	})
//	app.AddPlugin(p)
package command

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/hlee-ai/slackle"
)

// Handler executes a slash command. The returned message, when not nil, is
// posted to the channel the command was invoked in.
type Handler interface {
	Handle(ctx context.Context, text, userID string) (slackle.Message, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, text, userID string) (slackle.Message, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, text, userID string) (slackle.Message, error) {
	return f(ctx, text, userID)
}

// Meta describes a registered slash command.
type Meta struct {
	// Command is the slash command name, including the leading slash.
	Command string

	// Description is shown in the generated help output.
	Description string

	// Group clusters related commands in the help output.
	Group string

	// Visible controls whether the command appears in the help output.
	Visible bool

	Handler Handler
}

// NotFoundError is returned when a command is not in the registry.
type NotFoundError struct {
	Command string
}

func (e NotFoundError) Error() string {
	return "command: no command registered for " + strconv.Quote(e.Command)
}

// Registry stores command metadata in registration order.
type Registry struct {
	mu    sync.RWMutex
	metas map[string]Meta
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{metas: make(map[string]Meta)}
}

// Register adds a command. The name must start with a slash, the handler
// must be set, and the name must not already be registered.
func (r *Registry) Register(meta Meta) error {
	if !strings.HasPrefix(meta.Command, "/") {
		return errors.Errorf("command: %q must start with a slash", meta.Command)
	}

	if meta.Handler == nil {
		return errors.Errorf("command: %q has no handler", meta.Command)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.metas[meta.Command]; exists {
		return errors.Errorf("command: %q is already registered", meta.Command)
	}

	r.metas[meta.Command] = meta
	r.order = append(r.order, meta.Command)
	return nil
}

// Get returns the metadata for a command name.
func (r *Registry) Get(name string) (Meta, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.metas[name]
	if !ok {
		return Meta{}, NotFoundError{Command: name}
	}

	return meta, nil
}

// List returns all registered commands in registration order.
func (r *Registry) List() []Meta {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Meta, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.metas[name])
	}

	return out
}

// Visible returns the visible commands in registration order.
func (r *Registry) Visible() []Meta {
	all := r.List()

	out := make([]Meta, 0, len(all))
	for _, meta := range all {
		if meta.Visible {
			out = append(out, meta)
		}
	}

	return out
}
