// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackle

import (
	"strings"

	"github.com/slack-go/slack"
)

// Message is anything the framework can send to Slack. The concrete kinds
// are Text, Markdown, Blocks, and *Response; everything is normalized to a
// *Response before posting.
type Message interface {
	asResponse() *Response
}

// Text is a plain text message.
type Text string

func (t Text) asResponse() *Response {
	return &Response{Text: string(t)}
}

// Markdown is a message body rendered with Slack's mrkdwn formatting.
type Markdown string

func (m Markdown) asResponse() *Response {
	return &Response{Text: string(m), Mrkdwn: true}
}

// Blocks is a message composed of Block Kit blocks.
type Blocks []slack.Block

func (b Blocks) asResponse() *Response {
	return &Response{Blocks: b, Mrkdwn: true}
}

// Response is a fully specified outgoing message. Any field left zero falls
// back to the chat.postMessage default.
type Response struct {
	Channel        string
	Text           string
	Blocks         []slack.Block
	ThreadTS       string
	ReplyBroadcast bool
	IconEmoji      string
	IconURL        string
	Username       string
	UnfurlLinks    bool
	UnfurlMedia    bool
	LinkNames      bool
	Mrkdwn         bool
	Parse          string
}

func (r *Response) asResponse() *Response {
	out := *r
	return &out
}

// normalizeMessage converts any Message kind to a *Response targeted at
// channel. The channel on the Response itself wins when both are set. It is
// an error to have no channel, or to have neither text nor blocks. A message
// with blocks but no text gets a plain text fallback rendered from the
// blocks, which Slack uses for notifications.
func normalizeMessage(msg Message, channel string) (*Response, error) {
	if msg == nil {
		return nil, ErrEmptyMessage
	}

	resp := msg.asResponse()

	if len(resp.Channel) == 0 {
		resp.Channel = channel
	}

	if len(resp.Channel) == 0 {
		return nil, ErrNoChannel
	}

	if len(resp.Text) == 0 && len(resp.Blocks) == 0 {
		return nil, ErrEmptyMessage
	}

	if len(resp.Text) == 0 {
		resp.Text = blockFallbackText(resp.Blocks)
	}

	return resp, nil
}

// blockFallbackText extracts the text content of section and header blocks
// to use as the notification fallback for a blocks-only message.
func blockFallbackText(blocks []slack.Block) string {
	var parts []string

	for _, b := range blocks {
		switch blk := b.(type) {
		case *slack.SectionBlock:
			if blk.Text != nil && len(blk.Text.Text) > 0 {
				parts = append(parts, blk.Text.Text)
			}
		case *slack.HeaderBlock:
			if blk.Text != nil && len(blk.Text.Text) > 0 {
				parts = append(parts, blk.Text.Text)
			}
		}
	}

	if len(parts) == 0 {
		return "This message can't be shown in this client."
	}

	return strings.Join(parts, "\n")
}

// msgOptions translates a normalized Response to the chat.postMessage
// options understood by the slack-go client.
func msgOptions(resp *Response) []slack.MsgOption {
	opts := make([]slack.MsgOption, 0, 3)

	if len(resp.Text) > 0 {
		opts = append(opts, slack.MsgOptionText(resp.Text, false))
	}

	if len(resp.Blocks) > 0 {
		opts = append(opts, slack.MsgOptionBlocks(resp.Blocks...))
	}

	params := slack.PostMessageParameters{
		ThreadTimestamp: resp.ThreadTS,
		ReplyBroadcast:  resp.ReplyBroadcast,
		IconEmoji:       resp.IconEmoji,
		IconURL:         resp.IconURL,
		Username:        resp.Username,
		UnfurlLinks:     resp.UnfurlLinks,
		UnfurlMedia:     resp.UnfurlMedia,
		Markdown:        resp.Mrkdwn,
		Parse:           resp.Parse,
	}

	if resp.LinkNames {
		params.LinkNames = 1
	}

	return append(opts, slack.MsgOptionPostMessageParameters(params))
}

// SectionBlock is a convenience constructor for the most common Block Kit
// shape: a section with mrkdwn text.
func SectionBlock(markdown string) slack.Block {
	return slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, markdown, false, false),
		nil, nil,
	)
}
