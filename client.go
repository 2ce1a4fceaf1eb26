// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackle

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

// Client wraps the slack-go Web API client with the helpers handlers
// typically need. The underlying *slack.Client is embedded, so anything not
// covered here can be called directly.
type Client struct {
	*slack.Client

	log *slog.Logger
}

// NewClient returns a Client for the given bot token. Options are passed
// through to the slack-go constructor, which is how tests point the client
// at a fake API server.
func NewClient(token string, opts ...slack.Option) *Client {
	return &Client{
		Client: slack.New(token, opts...),
		log:    slog.Default(),
	}
}

func (c *Client) withLogger(log *slog.Logger) *Client {
	c.log = log
	return c
}

// UserInfo retrieves the full user record for a user ID.
func (c *Client) UserInfo(ctx context.Context, userID string) (*slack.User, error) {
	user, err := c.GetUserInfoContext(ctx, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up user %q", userID)
	}

	return user, nil
}

// UserName retrieves a user's display name, falling back to the real name
// when no display name is set.
func (c *Client) UserName(ctx context.Context, userID string) (string, error) {
	user, err := c.UserInfo(ctx, userID)
	if err != nil {
		return "", err
	}

	if len(user.Profile.DisplayName) > 0 {
		return user.Profile.DisplayName, nil
	}

	return user.RealName, nil
}

// ChannelInfo retrieves the conversation record for a channel ID.
func (c *Client) ChannelInfo(ctx context.Context, channelID string) (*slack.Channel, error) {
	ch, err := c.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
		ChannelID: channelID,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up channel %q", channelID)
	}

	return ch, nil
}

// ChannelName retrieves a channel's name.
func (c *Client) ChannelName(ctx context.Context, channelID string) (string, error) {
	ch, err := c.ChannelInfo(ctx, channelID)
	if err != nil {
		return "", err
	}

	return ch.Name, nil
}

// SendMessage posts a message to a channel and returns the message
// timestamp. The message may be a Text, Markdown, Blocks, or *Response; see
// normalizeMessage for the rules applied before posting.
func (c *Client) SendMessage(ctx context.Context, channel string, msg Message) (string, error) {
	resp, err := normalizeMessage(msg, channel)
	if err != nil {
		return "", err
	}

	_, ts, err := c.PostMessageContext(ctx, resp.Channel, msgOptions(resp)...)
	if err != nil {
		return "", errors.Wrapf(err, "failed to post message to %q", resp.Channel)
	}

	c.log.Debug("message sent", "channel", resp.Channel, "ts", ts)

	return ts, nil
}

// SendEphemeral posts a message visible only to one user in a channel and
// returns the message timestamp.
func (c *Client) SendEphemeral(ctx context.Context, channel, user string, msg Message) (string, error) {
	resp, err := normalizeMessage(msg, channel)
	if err != nil {
		return "", err
	}

	ts, err := c.PostEphemeralContext(ctx, resp.Channel, user, msgOptions(resp)...)
	if err != nil {
		return "", errors.Wrapf(err, "failed to post ephemeral message to %q", resp.Channel)
	}

	return ts, nil
}

// UpdateMessage replaces the content of an existing message, identified by
// its channel and timestamp, and returns the new timestamp.
func (c *Client) UpdateMessage(ctx context.Context, channel, ts string, msg Message) (string, error) {
	resp, err := normalizeMessage(msg, channel)
	if err != nil {
		return "", err
	}

	_, newTS, _, err := c.UpdateMessageContext(ctx, resp.Channel, ts, msgOptions(resp)...)
	if err != nil {
		return "", errors.Wrapf(err, "failed to update message %s in %q", ts, resp.Channel)
	}

	return newTS, nil
}

// DeleteMessage removes a message identified by its channel and timestamp.
func (c *Client) DeleteMessage(ctx context.Context, channel, ts string) error {
	if _, _, err := c.DeleteMessageContext(ctx, channel, ts); err != nil {
		return errors.Wrapf(err, "failed to delete message %s in %q", ts, channel)
	}

	return nil
}

// OpenModal opens a modal view in response to an interaction, using the
// trigger ID Slack attached to the interaction payload.
func (c *Client) OpenModal(ctx context.Context, triggerID string, view slack.ModalViewRequest) (*slack.ViewResponse, error) {
	resp, err := c.OpenViewContext(ctx, triggerID, view)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open modal view")
	}

	return resp, nil
}
