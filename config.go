// Copyright (c) 2026 the slackle authors
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package slackle

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// DefaultHandlerTimeout bounds how long a background dispatch may run when
// Config.HandlerTimeout is left zero.
const DefaultHandlerTimeout = 30 * time.Second

// Config holds the settings for a slackle App.
type Config struct {
	// BotToken is the Slack Web API token (xoxb-...) used by the client.
	BotToken string

	// SigningSecret, when set, enables request signature verification on
	// every incoming payload. This is the verification mode Slack
	// recommends.
	SigningSecret string

	// VerificationToken, when set and SigningSecret is empty, is compared
	// against the token field of incoming payloads. Slack has deprecated
	// this mechanism but still sends the field.
	VerificationToken string

	// AppUserID is the bot's own user ID. Events triggered by this user are
	// skipped so the bot does not react to itself.
	AppUserID string

	// IgnoreBotEvents skips events that carry a bot_id.
	IgnoreBotEvents bool

	// IgnoreRetryEvents skips deliveries that carry an X-Slack-Retry-Num
	// header.
	IgnoreRetryEvents bool

	// Debug enables verbose request logging.
	Debug bool

	// HandlerTimeout bounds each background dispatch. Zero means
	// DefaultHandlerTimeout.
	HandlerTimeout time.Duration
}

// DefaultConfig returns a Config with the skip rules enabled, matching the
// behavior Slack bots almost always want.
func DefaultConfig() Config {
	return Config{
		IgnoreBotEvents:   true,
		IgnoreRetryEvents: true,
		HandlerTimeout:    DefaultHandlerTimeout,
	}
}

// ConfigFromEnv builds a Config from the environment. Settings are read from
// SLACKLE_* variables, with fallbacks to the conventional Slack names:
//
//	SLACKLE_BOT_TOKEN           (or SLACK_BOT_TOKEN)
//	SLACKLE_SIGNING_SECRET      (or SLACK_SIGNING_SECRET)
//	SLACKLE_VERIFICATION_TOKEN  (or SLACK_VERIFICATION_TOKEN)
//	SLACKLE_APP_USER_ID
//	SLACKLE_IGNORE_BOT_EVENTS   (default true)
//	SLACKLE_IGNORE_RETRY_EVENTS (default true)
//	SLACKLE_DEBUG
//	SLACKLE_HANDLER_TIMEOUT     (a duration, e.g. "45s")
func ConfigFromEnv() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	bind := func(key string, envs ...string) {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			panic(err) // only fails with zero arguments
		}
	}

	bind("bot_token", "SLACKLE_BOT_TOKEN", "SLACK_BOT_TOKEN")
	bind("signing_secret", "SLACKLE_SIGNING_SECRET", "SLACK_SIGNING_SECRET")
	bind("verification_token", "SLACKLE_VERIFICATION_TOKEN", "SLACK_VERIFICATION_TOKEN")
	bind("app_user_id", "SLACKLE_APP_USER_ID")
	bind("ignore_bot_events", "SLACKLE_IGNORE_BOT_EVENTS")
	bind("ignore_retry_events", "SLACKLE_IGNORE_RETRY_EVENTS")
	bind("debug", "SLACKLE_DEBUG")
	bind("handler_timeout", "SLACKLE_HANDLER_TIMEOUT")

	v.SetDefault("ignore_bot_events", true)
	v.SetDefault("ignore_retry_events", true)
	v.SetDefault("handler_timeout", DefaultHandlerTimeout)

	cfg := Config{
		BotToken:          v.GetString("bot_token"),
		SigningSecret:     v.GetString("signing_secret"),
		VerificationToken: v.GetString("verification_token"),
		AppUserID:         v.GetString("app_user_id"),
		IgnoreBotEvents:   v.GetBool("ignore_bot_events"),
		IgnoreRetryEvents: v.GetBool("ignore_retry_events"),
		Debug:             v.GetBool("debug"),
		HandlerTimeout:    v.GetDuration("handler_timeout"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if len(c.BotToken) == 0 {
		return errors.New("slackle: a bot token must be provided")
	}

	return nil
}

func (c Config) handlerTimeout() time.Duration {
	if c.HandlerTimeout <= 0 {
		return DefaultHandlerTimeout
	}

	return c.HandlerTimeout
}
