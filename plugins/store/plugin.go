// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/hlee-ai/slackle"
)

// ExtensionName is the app extension the plugin registers its Store under.
const ExtensionName = "store"

// Plugin opens a Store during setup, registers it as an app extension, and
// closes it on the shutdown hook.
type Plugin struct {
	path  string
	store *Store
}

// NewPlugin returns a plugin that will open the database at path.
func NewPlugin(path string) *Plugin {
	return &Plugin{path: path}
}

// Name implements slackle.Plugin.
func (p *Plugin) Name() string { return "store" }

// Setup implements slackle.Plugin.
func (p *Plugin) Setup(app *slackle.App) error {
	s, err := Open(p.path)
	if err != nil {
		return err
	}
	p.store = s

	app.OnHook(slackle.HookShutdown, func(context.Context, *slackle.App, slackle.HookArgs) error {
		return s.Close()
	})

	return app.RegisterExtension(ExtensionName, s, false)
}

// Store returns the opened store. It is nil before Setup runs.
func (p *Plugin) Store() *Store { return p.store }

// FromApp returns the Store the plugin registered on app.
func FromApp(app *slackle.App) (*Store, error) {
	v, ok := app.Extension(ExtensionName)
	if !ok {
		return nil, errors.New("store: plugin is not installed")
	}

	s, ok := v.(*Store)
	if !ok {
		return nil, errors.Errorf("store: extension %q holds a %T, not a *Store", ExtensionName, v)
	}

	return s, nil
}
