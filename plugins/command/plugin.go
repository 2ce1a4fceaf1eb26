// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package command

import (
	"context"

	"github.com/pkg/errors"

	"github.com/hlee-ai/slackle"
)

// ExtensionName is the app extension the plugin registers its Registry
// under.
const ExtensionName = "commands"

// HelpCommand is the name of the generated help command.
const HelpCommand = "/help"

// Plugin wires a command Registry into a slackle app. Every registered
// command becomes an app callback that runs the command handler and posts
// its reply to the invoking channel.
type Plugin struct {
	registry *Registry

	// DisableHelp turns off the generated /help command.
	DisableHelp bool
}

// NewPlugin returns a plugin wrapping a fresh Registry.
func NewPlugin() *Plugin {
	return &Plugin{registry: NewRegistry()}
}

// Registry returns the plugin's registry.
func (p *Plugin) Registry() *Registry { return p.registry }

// Register adds a command to the plugin's registry. Commands must be
// registered before the plugin is added to the app.
func (p *Plugin) Register(meta Meta) error {
	return p.registry.Register(meta)
}

// Name implements slackle.Plugin.
func (p *Plugin) Name() string { return "command" }

// Setup implements slackle.Plugin.
func (p *Plugin) Setup(app *slackle.App) error {
	if !p.DisableHelp {
		if _, err := p.registry.Get(HelpCommand); err != nil {
			meta := Meta{
				Command:     HelpCommand,
				Description: "List the available commands",
				Group:       "general",
				Visible:     true,
				Handler: HandlerFunc(func(context.Context, string, string) (slackle.Message, error) {
					return renderHelp(p.registry), nil
				}),
			}

			if err := p.registry.Register(meta); err != nil {
				return err
			}
		}
	}

	for _, meta := range p.registry.List() {
		app.OnCommand(meta.Command, dispatchFor(meta))
	}

	return app.RegisterExtension(ExtensionName, p.registry, false)
}

// dispatchFor adapts a command Handler to a slackle.Handler. The command's
// reply, when present, goes back to the channel the command came from.
func dispatchFor(meta Meta) slackle.Handler {
	return func(ctx context.Context, inv *slackle.Invocation) error {
		msg, err := meta.Handler.Handle(ctx, inv.Command.Text, inv.Command.UserID)
		if err != nil {
			return err
		}

		if msg == nil {
			return nil
		}

		_, err = inv.Slack.SendMessage(ctx, inv.Command.ChannelID, msg)
		return err
	}
}

// FromApp returns the Registry the plugin registered on app.
func FromApp(app *slackle.App) (*Registry, error) {
	v, ok := app.Extension(ExtensionName)
	if !ok {
		return nil, errors.New("command: plugin is not installed")
	}

	reg, ok := v.(*Registry)
	if !ok {
		return nil, errors.Errorf("command: extension %q holds a %T, not a *Registry", ExtensionName, v)
	}

	return reg, nil
}
