// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackle

import (
	"io"
	"log/slog"
	"testing"

	"github.com/pkg/errors"
)

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()

	return New(cfg, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

type testPlugin struct {
	name    string
	setup   func(app *App) error
	setupOK bool
}

func (p *testPlugin) Name() string { return p.name }

func (p *testPlugin) Setup(app *App) error {
	p.setupOK = true
	if p.setup != nil {
		return p.setup(app)
	}
	return nil
}

func TestApp_AddPlugin(t *testing.T) {
	app := newTestApp(t, Config{BotToken: "xoxb-test"})

	p := &testPlugin{name: "demo"}
	if err := app.AddPlugin(p); err != nil {
		t.Fatalf("AddPlugin() unexpected error: %s", err)
	}

	if !p.setupOK {
		t.Fatal("AddPlugin() did not run Setup")
	}

	want := []string{"demo"}
	if got := app.Plugins(); len(got) != 1 || got[0] != want[0] {
		t.Fatalf("Plugins() = %v, want %v", got, want)
	}
}

func TestApp_AddPlugin_duplicate(t *testing.T) {
	app := newTestApp(t, Config{BotToken: "xoxb-test"})

	if err := app.AddPlugin(&testPlugin{name: "demo"}); err != nil {
		t.Fatalf("AddPlugin() unexpected error: %s", err)
	}

	err := app.AddPlugin(&testPlugin{name: "demo"})
	if err == nil {
		t.Fatal("AddPlugin() accepted a duplicate plugin name")
	}

	var dup DuplicatePluginError
	if !errors.As(err, &dup) || dup.Name != "demo" {
		t.Fatalf("AddPlugin() error = %v, want DuplicatePluginError for %q", err, "demo")
	}
}

func TestApp_AddPlugin_nil(t *testing.T) {
	app := newTestApp(t, Config{BotToken: "xoxb-test"})

	if err := app.AddPlugin(nil); err == nil {
		t.Fatal("AddPlugin(nil) returned no error")
	}
}

func TestApp_AddPlugin_afterBoot(t *testing.T) {
	app := newTestApp(t, Config{BotToken: "xoxb-test"})
	app.booted.Store(true)

	if err := app.AddPlugin(&testPlugin{name: "late"}); !errors.Is(err, ErrAppBooted) {
		t.Fatalf("AddPlugin() error = %v, want ErrAppBooted", err)
	}
}

func TestApp_AddPlugin_setupFailure(t *testing.T) {
	app := newTestApp(t, Config{BotToken: "xoxb-test"})

	boom := errors.New("boom")
	err := app.AddPlugin(&testPlugin{
		name:  "broken",
		setup: func(*App) error { return boom },
	})

	if !errors.Is(err, boom) {
		t.Fatalf("AddPlugin() error = %v, want it to wrap %v", err, boom)
	}

	// a failed plugin must not be listed
	if got := app.Plugins(); len(got) != 0 {
		t.Fatalf("Plugins() = %v, want none", got)
	}
}

func TestApp_RegisterExtension(t *testing.T) {
	app := newTestApp(t, Config{BotToken: "xoxb-test"})

	err := app.AddPlugin(&testPlugin{
		name: "ext",
		setup: func(a *App) error {
			return a.RegisterExtension("answer", 42, false)
		},
	})
	if err != nil {
		t.Fatalf("AddPlugin() unexpected error: %s", err)
	}

	v, ok := app.Extension("answer")
	if !ok {
		t.Fatal("Extension() did not find the registered value")
	}

	if v.(int) != 42 {
		t.Fatalf("Extension() = %v, want 42", v)
	}
}

func TestApp_RegisterExtension_guards(t *testing.T) {
	t.Run("outside_setup", func(t *testing.T) {
		app := newTestApp(t, Config{BotToken: "xoxb-test"})

		if err := app.RegisterExtension("x", 1, false); !errors.Is(err, ErrNotInSetup) {
			t.Fatalf("RegisterExtension() error = %v, want ErrNotInSetup", err)
		}
	})

	t.Run("after_boot", func(t *testing.T) {
		app := newTestApp(t, Config{BotToken: "xoxb-test"})
		app.booted.Store(true)

		if err := app.RegisterExtension("x", 1, false); !errors.Is(err, ErrAppBooted) {
			t.Fatalf("RegisterExtension() error = %v, want ErrAppBooted", err)
		}
	})

	t.Run("duplicate_without_override", func(t *testing.T) {
		app := newTestApp(t, Config{BotToken: "xoxb-test"})

		err := app.AddPlugin(&testPlugin{
			name: "ext",
			setup: func(a *App) error {
				if err := a.RegisterExtension("x", 1, false); err != nil {
					return err
				}
				return a.RegisterExtension("x", 2, false)
			},
		})

		var dup DuplicateExtensionError
		if !errors.As(err, &dup) || dup.Name != "x" {
			t.Fatalf("AddPlugin() error = %v, want DuplicateExtensionError for %q", err, "x")
		}
	})

	t.Run("duplicate_with_override", func(t *testing.T) {
		app := newTestApp(t, Config{BotToken: "xoxb-test"})

		err := app.AddPlugin(&testPlugin{
			name: "ext",
			setup: func(a *App) error {
				if err := a.RegisterExtension("x", 1, false); err != nil {
					return err
				}
				return a.RegisterExtension("x", 2, true)
			},
		})
		if err != nil {
			t.Fatalf("AddPlugin() unexpected error: %s", err)
		}

		v, _ := app.Extension("x")
		if v.(int) != 2 {
			t.Fatalf("Extension() = %v, want the overridden value 2", v)
		}
	})
}
