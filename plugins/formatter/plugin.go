// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package formatter

import (
	"github.com/pkg/errors"

	"github.com/hlee-ai/slackle"
)

// ExtensionName is the app extension the plugin registers its Registry
// under.
const ExtensionName = "formatter"

// Plugin installs a formatter Registry into a slackle app.
type Plugin struct {
	registry *Registry
}

// NewPlugin returns a plugin wrapping a fresh Registry. Formatters may be
// registered before or after the plugin is added to the app.
func NewPlugin() *Plugin {
	return &Plugin{registry: NewRegistry()}
}

// Registry returns the plugin's registry, for registering formatters.
func (p *Plugin) Registry() *Registry { return p.registry }

// Name implements slackle.Plugin.
func (p *Plugin) Name() string { return "formatter" }

// Setup implements slackle.Plugin.
func (p *Plugin) Setup(app *slackle.App) error {
	return app.RegisterExtension(ExtensionName, p.registry, false)
}

// FromApp returns the Registry the plugin registered on app.
func FromApp(app *slackle.App) (*Registry, error) {
	v, ok := app.Extension(ExtensionName)
	if !ok {
		return nil, errors.New("formatter: plugin is not installed")
	}

	reg, ok := v.(*Registry)
	if !ok {
		return nil, errors.Errorf("formatter: extension %q holds a %T, not a *Registry", ExtensionName, v)
	}

	return reg, nil
}
