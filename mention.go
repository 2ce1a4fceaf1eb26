// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackle

import "strings"

// UserMention renders a user ID as a Slack mention, e.g. "<@U12345>".
func UserMention(userID string) string {
	return "<@" + userID + ">"
}

// ChannelMention renders a channel ID as a Slack channel link, e.g.
// "<#C12345>".
func ChannelMention(channelID string) string {
	return "<#" + channelID + ">"
}

// escaper handles the three characters Slack requires to be escaped in
// message text. See https://api.slack.com/reference/surfaces/formatting.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeText escapes &, < and > for inclusion in Slack message text.
func EscapeText(s string) string {
	return escaper.Replace(s)
}
