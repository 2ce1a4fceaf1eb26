// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package command

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlee-ai/slackle"
)

func echoHandler(ctx context.Context, text, userID string) (slackle.Message, error) {
	return slackle.Text(text), nil
}

func meta(name, group string, visible bool) Meta {
	return Meta{
		Command:     name,
		Description: "does " + strings.TrimPrefix(name, "/"),
		Group:       group,
		Visible:     visible,
		Handler:     HandlerFunc(echoHandler),
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(meta("/say", "fun", true)))

	t.Run("no_leading_slash", func(t *testing.T) {
		assert.Error(t, r.Register(meta("say", "fun", true)))
	})

	t.Run("nil_handler", func(t *testing.T) {
		m := meta("/broken", "fun", true)
		m.Handler = nil
		assert.Error(t, r.Register(m))
	})

	t.Run("duplicate", func(t *testing.T) {
		assert.Error(t, r.Register(meta("/say", "fun", true)))
	})
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(meta("/say", "fun", true)))

	m, err := r.Get("/say")
	require.NoError(t, err)
	assert.Equal(t, "/say", m.Command)

	_, err = r.Get("/missing")
	require.Error(t, err)

	var nf NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "/missing", nf.Command)
}

func TestRegistry_ListAndVisible(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(meta("/say", "fun", true)))
	require.NoError(t, r.Register(meta("/secret", "admin", false)))
	require.NoError(t, r.Register(meta("/deploy", "ops", true)))

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, "/say", list[0].Command)
	assert.Equal(t, "/secret", list[1].Command)
	assert.Equal(t, "/deploy", list[2].Command)

	visible := r.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "/say", visible[0].Command)
	assert.Equal(t, "/deploy", visible[1].Command)
}

func Test_renderHelp(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(meta("/say", "fun", true)))
	require.NoError(t, r.Register(meta("/secret", "admin", false)))
	require.NoError(t, r.Register(meta("/deploy", "", true)))

	out := string(renderHelp(r))

	assert.Contains(t, out, "*Available commands*")
	assert.Contains(t, out, "*fun*")
	assert.Contains(t, out, "`/say`: does say")
	assert.NotContains(t, out, "/secret")

	// an empty group falls into "general"
	assert.Contains(t, out, "*general*")
	assert.Contains(t, out, "`/deploy`: does deploy")
}

func Test_renderHelp_empty(t *testing.T) {
	out := string(renderHelp(NewRegistry()))
	assert.Equal(t, "No commands are registered.", out)
}

// fakeChat answers chat.postMessage and records the posted text.
type fakeChat struct {
	srv  *httptest.Server
	text chan string
}

func newFakeChat(t *testing.T) *fakeChat {
	t.Helper()

	f := &fakeChat{text: make(chan string, 1)}

	mux := http.NewServeMux()
	mux.HandleFunc("/chat.postMessage", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		f.text <- r.FormValue("text")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C1","ts":"1.2"}`))
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)

	return f
}

func newTestApp(t *testing.T, f *fakeChat) *slackle.App {
	t.Helper()

	return slackle.New(slackle.Config{BotToken: "xoxb-test"},
		slackle.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		slackle.WithSlackOptions(slack.OptionAPIURL(f.srv.URL+"/")),
	)
}

func postCommand(t *testing.T, app *slackle.App, name, text string) {
	t.Helper()

	form := url.Values{
		"command":    {name},
		"text":       {text},
		"user_id":    {"U1"},
		"channel_id": {"C1"},
	}

	req := httptest.NewRequest(http.MethodPost, "/slack/command", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	app.Wait()
}

func TestPlugin_dispatch(t *testing.T) {
	f := newFakeChat(t)
	app := newTestApp(t, f)

	p := NewPlugin()
	require.NoError(t, p.Register(meta("/say", "fun", true)))
	require.NoError(t, app.AddPlugin(p))

	postCommand(t, app, "/say", "hello world")

	select {
	case text := <-f.text:
		assert.Equal(t, "hello world", text)
	default:
		t.Fatal("no message was posted")
	}
}

func TestPlugin_helpCommand(t *testing.T) {
	f := newFakeChat(t)
	app := newTestApp(t, f)

	p := NewPlugin()
	require.NoError(t, p.Register(meta("/say", "fun", true)))
	require.NoError(t, app.AddPlugin(p))

	postCommand(t, app, "/help", "")

	select {
	case text := <-f.text:
		assert.Contains(t, text, "`/say`: does say")
		assert.Contains(t, text, "`/help`: List the available commands")
	default:
		t.Fatal("no help message was posted")
	}
}

func TestPlugin_disableHelp(t *testing.T) {
	f := newFakeChat(t)
	app := newTestApp(t, f)

	p := NewPlugin()
	p.DisableHelp = true
	require.NoError(t, p.Register(meta("/say", "fun", true)))
	require.NoError(t, app.AddPlugin(p))

	assert.False(t, app.Callbacks().Has(slackle.KindCommand, HelpCommand))
}

func TestPlugin_extension(t *testing.T) {
	f := newFakeChat(t)
	app := newTestApp(t, f)

	p := NewPlugin()
	require.NoError(t, app.AddPlugin(p))

	reg, err := FromApp(app)
	require.NoError(t, err)
	assert.Same(t, p.Registry(), reg)
}
