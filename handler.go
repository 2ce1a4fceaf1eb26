// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackle

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// retryHeader is set by Slack when it redelivers a payload it believes was
// not acknowledged in time.
const retryHeader = "X-Slack-Retry-Num"

func (a *App) mountSlackRoutes() {
	g := a.router.Group("/slack")
	g.POST("/events", a.handleEvents)
	g.POST("/command", a.handleCommand)
	g.POST("/interactivity", a.handleInteractivity)
}

func ack(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": false, "error": msg})
}

// verifyRequest reads the request body and, when a signing secret is
// configured, checks the request signature against it. The body is restored
// on the request so form parsing downstream still works.
func (a *App) verifyRequest(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abort(c, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	if len(a.config.SigningSecret) == 0 {
		return body, true
	}

	sv, err := slack.NewSecretsVerifier(c.Request.Header, a.config.SigningSecret)
	if err != nil {
		abort(c, http.StatusUnauthorized, "missing or stale signature headers")
		return nil, false
	}

	if _, err := sv.Write(body); err != nil {
		abort(c, http.StatusInternalServerError, "failed to verify request")
		return nil, false
	}

	if err := sv.Ensure(); err != nil {
		abort(c, http.StatusUnauthorized, "invalid request signature")
		return nil, false
	}

	return body, true
}

// tokenOK checks the deprecated verification token when that is the
// configured verification mode. With a signing secret configured the
// signature check already happened, and the token is ignored.
func (a *App) tokenOK(token string) bool {
	if len(a.config.SigningSecret) > 0 || len(a.config.VerificationToken) == 0 {
		return true
	}

	return subtle.ConstantTimeCompare([]byte(token), []byte(a.config.VerificationToken)) == 1
}

func (a *App) handleEvents(c *gin.Context) {
	body, ok := a.verifyRequest(c)
	if !ok {
		return
	}

	outer, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		abort(c, http.StatusBadRequest, "malformed event payload")
		return
	}

	switch outer.Type {
	case slackevents.URLVerification:
		var cr slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &cr); err != nil {
			abort(c, http.StatusBadRequest, "malformed challenge payload")
			return
		}

		c.JSON(http.StatusOK, gin.H{"challenge": cr.Challenge})

	case slackevents.CallbackEvent:
		var payload EventPayload
		if err := json.Unmarshal(body, &payload); err != nil || payload.Event == nil {
			abort(c, http.StatusBadRequest, "malformed event payload")
			return
		}

		if !a.tokenOK(payload.Token) {
			abort(c, http.StatusUnauthorized, "invalid verification token")
			return
		}

		inv := newInvocation(a, KindEvent, payload.Event.Type)
		inv.Header = c.Request.Header.Clone()
		inv.Payload = &payload
		inv.Event = payload.Event

		a.dispatchAsync(inv)
		ack(c)

	default:
		// app_rate_limited and anything Slack adds later: acknowledge and
		// move on.
		ack(c)
	}
}

func (a *App) handleCommand(c *gin.Context) {
	if _, ok := a.verifyRequest(c); !ok {
		return
	}

	cmd, err := slack.SlashCommandParse(c.Request)
	if err != nil {
		abort(c, http.StatusBadRequest, "malformed slash command payload")
		return
	}

	if len(cmd.Command) == 0 {
		abort(c, http.StatusBadRequest, "missing command")
		return
	}

	if !a.tokenOK(cmd.Token) {
		abort(c, http.StatusUnauthorized, "invalid verification token")
		return
	}

	inv := newInvocation(a, KindCommand, cmd.Command)
	inv.Header = c.Request.Header.Clone()
	inv.Command = &cmd

	a.dispatchAsync(inv)
	ack(c)
}

func (a *App) handleInteractivity(c *gin.Context) {
	if _, ok := a.verifyRequest(c); !ok {
		return
	}

	raw := c.PostForm("payload")
	if len(raw) == 0 {
		abort(c, http.StatusBadRequest, "missing interaction payload")
		return
	}

	var cb slack.InteractionCallback
	if err := json.Unmarshal([]byte(raw), &cb); err != nil {
		abort(c, http.StatusBadRequest, "malformed interaction payload")
		return
	}

	if !a.tokenOK(cb.Token) {
		abort(c, http.StatusUnauthorized, "invalid verification token")
		return
	}

	name := cb.CallbackID
	var action *slack.BlockAction
	if len(cb.ActionCallback.BlockActions) > 0 {
		action = cb.ActionCallback.BlockActions[0]
		name = action.ActionID
	}

	if len(name) == 0 {
		abort(c, http.StatusBadRequest, "interaction payload has no action id")
		return
	}

	inv := newInvocation(a, KindAction, name)
	inv.Header = c.Request.Header.Clone()
	inv.Interaction = &cb
	inv.Action = action

	a.dispatchAsync(inv)
	ack(c)
}

// dispatchAsync runs the handler in the background, after the HTTP
// acknowledgement is already on the wire. Dispatches are bounded by the
// configured handler timeout and tracked so Run and Wait can drain in-flight
// work.
func (a *App) dispatchAsync(inv *Invocation) {
	a.wg.Add(1)

	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), a.config.handlerTimeout())
		defer cancel()

		a.dispatch(ctx, inv)
	}()
}

func (a *App) dispatch(ctx context.Context, inv *Invocation) {
	log := a.log.With("invocation", inv.ID, "kind", inv.Kind, "name", inv.Name)

	handler, ok := a.callbacks.Get(inv.Kind, inv.Name)
	if !ok {
		log.Debug("no handler registered")

		if err := a.hooks.Emit(ctx, a, HookUnhandled, HookArgs{Invocation: inv}); err != nil {
			log.Error("unhandled hook failed", "err", err)
		}
		return
	}

	a.preHandle(inv)

	if err := a.hooks.Emit(ctx, a, HookPreHandle, HookArgs{Invocation: inv}); err != nil {
		log.Error("pre-handle hook failed", "err", err)
		return
	}

	if inv.Context.Skipped() {
		log.Debug("invocation skipped", "reason", inv.Context.SkipReason())
		return
	}

	if err := handler(ctx, inv); err != nil {
		log.Error("handler failed", "err", err)

		if herr := a.hooks.Emit(ctx, a, HookError, HookArgs{Invocation: inv, Err: err}); herr != nil {
			log.Error("error hook failed", "err", herr)
		}
		return
	}

	if inv.Context.Skipped() {
		log.Debug("post-handle suppressed", "reason", inv.Context.SkipReason())
		return
	}

	if err := a.hooks.Emit(ctx, a, HookPostHandle, HookArgs{Invocation: inv}); err != nil {
		log.Error("post-handle hook failed", "err", err)
	}
}

// preHandle applies the built-in skip rules before any handler code runs.
func (a *App) preHandle(inv *Invocation) {
	if inv.Header.Get(retryHeader) != "" && a.config.IgnoreRetryEvents {
		inv.Context.Skip("ignoring retry delivery")
		return
	}

	if inv.Event == nil {
		return
	}

	if len(inv.Event.BotID) > 0 && a.config.IgnoreBotEvents {
		inv.Context.Skip("ignoring bot event")
		return
	}

	if len(a.config.AppUserID) > 0 && inv.Event.User == a.config.AppUserID {
		inv.Context.Skip("ignoring event from the app user")
	}
}
