// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package command

import (
	"sort"
	"strings"

	"github.com/hlee-ai/slackle"
)

// renderHelp builds the /help reply: visible commands grouped by Group, one
// line per command.
func renderHelp(r *Registry) slackle.Markdown {
	visible := r.Visible()
	if len(visible) == 0 {
		return slackle.Markdown("No commands are registered.")
	}

	groups := make(map[string][]Meta)
	for _, meta := range visible {
		group := meta.Group
		if len(group) == 0 {
			group = "general"
		}
		groups[group] = append(groups[group], meta)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("*Available commands*\n")

	for _, name := range names {
		b.WriteString("\n*")
		b.WriteString(name)
		b.WriteString("*\n")

		for _, meta := range groups[name] {
			b.WriteString("`")
			b.WriteString(meta.Command)
			b.WriteString("`")

			if len(meta.Description) > 0 {
				b.WriteString(": ")
				b.WriteString(meta.Description)
			}

			b.WriteString("\n")
		}
	}

	return slackle.Markdown(strings.TrimRight(b.String(), "\n"))
}
