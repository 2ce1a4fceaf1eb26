// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackle

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
)

// Event is the inner event of an Events API delivery. Only the fields shared
// across event types are decoded; Text carries whatever message text the
// event had, when it had any.
type Event struct {
	Type    string `json:"type"`
	EventTS string `json:"event_ts"`
	User    string `json:"user,omitempty"`
	Channel string `json:"channel,omitempty"`
	Team    string `json:"team,omitempty"`
	TS      string `json:"ts,omitempty"`
	BotID   string `json:"bot_id,omitempty"`
	AppID   string `json:"app_id,omitempty"`
	Text    string `json:"text,omitempty"`
}

// EventPayload is the Events API envelope around an Event.
type EventPayload struct {
	Token     string `json:"token"`
	TeamID    string `json:"team_id,omitempty"`
	APIAppID  string `json:"api_app_id,omitempty"`
	Type      string `json:"type"`
	EventID   string `json:"event_id,omitempty"`
	EventTime int64  `json:"event_time,omitempty"`
	Challenge string `json:"challenge,omitempty"`
	Event     *Event `json:"event,omitempty"`
}

// Invocation is passed to every Handler. Which fields are populated depends
// on the payload kind: Payload and Event for events, Command for slash
// commands, Interaction and Action for interactive components. App, Slack,
// Context, Header and ID are always set.
type Invocation struct {
	// ID uniquely identifies this dispatch, for log correlation.
	ID string

	// Kind is one of KindEvent, KindCommand, KindAction.
	Kind string

	// Name is the event type, command name, or action ID the handler was
	// matched on.
	Name string

	App   *App
	Slack *Client

	// Header holds the HTTP headers of the originating request.
	Header http.Header

	// Payload and Event are set for Events API deliveries.
	Payload *EventPayload
	Event   *Event

	// Command is set for slash command deliveries.
	Command *slack.SlashCommand

	// Interaction is set for interactive component deliveries; Action is
	// the first block action within it.
	Interaction *slack.InteractionCallback
	Action      *slack.BlockAction

	// Context carries skip state and handler-scoped values across the
	// pre-handle, handle, and post-handle phases.
	Context *InvocationContext
}

func newInvocation(app *App, kind, name string) *Invocation {
	return &Invocation{
		ID:      uuid.NewString(),
		Kind:    kind,
		Name:    name,
		App:     app,
		Slack:   app.Slack(),
		Context: newInvocationContext(),
	}
}

// InvocationContext is shared by the hooks and the handler of a single
// dispatch. Marking it skipped before the handler runs suppresses the
// handler; marking it skipped inside the handler suppresses the post-handle
// hook.
type InvocationContext struct {
	mu      sync.Mutex
	skipped bool
	reason  string
	values  map[string]any
}

func newInvocationContext() *InvocationContext {
	return &InvocationContext{values: make(map[string]any)}
}

// Skip marks the invocation as skipped. The reason is informational and
// shows up in debug logs.
func (c *InvocationContext) Skip(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.skipped = true
	c.reason = reason
}

// Skipped reports whether the invocation was marked skipped.
func (c *InvocationContext) Skipped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.skipped
}

// SkipReason returns the reason passed to Skip, if any.
func (c *InvocationContext) SkipReason() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.reason
}

// Set stores a handler-scoped value, visible to later hooks.
func (c *InvocationContext) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = value
}

// Value returns a value stored with Set.
func (c *InvocationContext) Value(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.values[key]
	return v, ok
}
