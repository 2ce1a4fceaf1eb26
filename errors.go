// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackle

import (
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrNoChannel is returned when a message is sent without a target
	// channel, either on the message itself or as an argument.
	ErrNoChannel = errors.New("slackle: channel is required")

	// ErrEmptyMessage is returned when a message carries neither text nor
	// blocks.
	ErrEmptyMessage = errors.New("slackle: either text or blocks must be provided")

	// ErrAppBooted is returned when a mutation that must happen before
	// startup (plugin registration, extension registration) is attempted on
	// a running app.
	ErrAppBooted = errors.New("slackle: app has already started")

	// ErrNotInSetup is returned when an extension is registered outside of
	// plugin setup.
	ErrNotInSetup = errors.New("slackle: extensions can only be registered during plugin setup")
)

// DuplicateExtensionError is returned by App.RegisterExtension when the name
// is already taken and override was not requested.
type DuplicateExtensionError struct {
	Name string
}

func (e DuplicateExtensionError) Error() string {
	return "slackle: extension " + strconv.Quote(e.Name) + " already exists"
}

// DuplicatePluginError is returned by App.AddPlugin when a plugin with the
// same name is already registered.
type DuplicatePluginError struct {
	Name string
}

func (e DuplicatePluginError) Error() string {
	return "slackle: plugin " + strconv.Quote(e.Name) + " is already registered"
}
