// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

// Package slackle is a framework for building Slack bots in Go. It receives
// the webhook payloads Slack delivers over HTTP (Events API, slash commands,
// and interactive components), routes each payload to a registered handler,
// and wraps the Slack Web API client for replying.
//
// An App is constructed from a Config, handlers are registered against event
// types, command names, or action IDs, and the app is served over HTTP:
//
//	app := slackle.New(cfg)
//
//	app.OnCommand("/say", func(ctx context.Context, inv *slackle.Invocation) error {
//		name, _ := inv.Slack.UserName(ctx, inv.Command.UserID)
//		_, err := inv.Slack.SendMessage(ctx, inv.Command.ChannelID,
//			slackle.Text(name+" said: "+inv.Command.Text))
//		return err
//	})
//
//	app.Run(ctx, ":3000")
//
// Incoming payloads are acknowledged immediately and handlers run in the
// background, as Slack's three second acknowledgement deadline requires.
//
// Behavior can be extended with plugins (see the Plugin interface and the
// subpackages under plugins/), and lifecycle hooks fire around startup,
// shutdown, and every dispatch.
package slackle
