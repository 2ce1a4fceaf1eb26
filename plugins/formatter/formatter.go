// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

// Package formatter provides a registry that maps Go data types to Slack
// message formatters, installed into a slackle app as a plugin.
//
// A formatter turns one kind of value into Slack output. Handlers look the
// registry up from the app, build a formatter for the value at hand, and
// send the result:
//
//	reg, _ := formatter.FromApp(inv.App)
//	f, _ := reg.New(report, nil)
//	inv.Slack.SendMessage(ctx, channelID, f.SlackMarkdown())
package formatter

import (
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/slack-go/slack"

	"github.com/hlee-ai/slackle"
)

// Formatter renders one value for Slack.
type Formatter interface {
	// SlackMarkdown returns the value rendered as Slack mrkdwn.
	SlackMarkdown() slackle.Markdown

	// PlainText returns the value rendered without markup.
	PlainText() string
}

// Factory builds a Formatter for a value. params is formatter-specific and
// may be nil, in which case the factory applies its defaults.
type Factory func(data any, params any) (Formatter, error)

// NotFoundError is returned when no formatter is registered for a value's
// type.
type NotFoundError struct {
	Type reflect.Type
}

func (e NotFoundError) Error() string {
	return "formatter: no formatter registered for " + e.Type.String()
}

// Registry maps data types to formatter factories. It is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[reflect.Type]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[reflect.Type]Factory)}
}

// Register binds a factory to the type of sample. Registering the same type
// twice is an error.
func (r *Registry) Register(sample any, f Factory) error {
	if f == nil {
		return errors.New("formatter: factory must not be nil")
	}

	t := reflect.TypeOf(sample)
	if t == nil {
		return errors.New("formatter: sample must not be an untyped nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[t]; exists {
		return errors.Errorf("formatter: %s is already registered", t)
	}

	r.factories[t] = f
	return nil
}

// Lookup returns the factory registered for a type.
func (r *Registry) Lookup(t reflect.Type) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[t]
	return f, ok
}

// New builds a formatter for data using the factory registered for its
// type. A NotFoundError is returned when the type is unknown.
func (r *Registry) New(data any, params any) (Formatter, error) {
	t := reflect.TypeOf(data)

	f, ok := r.Lookup(t)
	if !ok {
		return nil, NotFoundError{Type: t}
	}

	return f(data, params)
}

// Types returns the registered types, sorted by name.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]reflect.Type, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })
	return types
}

// Block renders a formatter's markdown as a Block Kit section block.
func Block(f Formatter) slack.Block {
	return slackle.SectionBlock(string(f.SlackMarkdown()))
}
