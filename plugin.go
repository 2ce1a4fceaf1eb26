// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackle

import "github.com/pkg/errors"

// Plugin extends an App. Setup runs when the plugin is added, before the app
// starts serving; it is the only place extensions may be registered.
//
// Plugins that need lifecycle hooks register them during Setup:
//
//	func (p *myPlugin) Setup(app *slackle.App) error {
//		app.OnHook(slackle.HookStartup, p.start)
//		return app.RegisterExtension("mine", p, false)
//	}
type Plugin interface {
	Name() string
	Setup(app *App) error
}

// AddPlugin registers and sets up a plugin. It must be called before Run;
// adding a plugin with the name of an already registered one is an error.
func (a *App) AddPlugin(p Plugin) error {
	if p == nil {
		return errors.New("slackle: plugin must not be nil")
	}

	if a.booted.Load() {
		return ErrAppBooted
	}

	for _, existing := range a.plugins {
		if existing.Name() == p.Name() {
			return DuplicatePluginError{Name: p.Name()}
		}
	}

	a.setupMode.Store(true)
	defer a.setupMode.Store(false)

	if err := p.Setup(a); err != nil {
		return errors.Wrapf(err, "plugin %q setup failed", p.Name())
	}

	a.plugins = append(a.plugins, p)
	return nil
}

// Plugins returns the names of the registered plugins, in registration
// order.
func (a *App) Plugins() []string {
	names := make([]string, 0, len(a.plugins))
	for _, p := range a.plugins {
		names = append(names, p.Name())
	}

	return names
}

// RegisterExtension attaches a named value to the app for handlers and other
// plugins to look up. It may only be called during plugin setup and before
// the app starts; registering over an existing name requires override.
func (a *App) RegisterExtension(name string, value any, override bool) error {
	if a.booted.Load() {
		return ErrAppBooted
	}

	if !a.setupMode.Load() {
		return ErrNotInSetup
	}

	a.extMu.Lock()
	defer a.extMu.Unlock()

	if _, exists := a.extensions[name]; exists && !override {
		return DuplicateExtensionError{Name: name}
	}

	a.extensions[name] = value
	return nil
}

// Extension returns the value registered under name.
func (a *App) Extension(name string) (any, bool) {
	a.extMu.RLock()
	defer a.extMu.RUnlock()

	v, ok := a.extensions[name]
	return v, ok
}
