package config

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidly-dev/vidly/pkg/domain/types"
)

const sentryFlushTimeout = 2 * time.Second

// Sentry holds CLI flags for error reporting
type Sentry struct {
	dsn string
}

// Flags returns CLI flags for Sentry configuration
func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Category:    "Error reporting",
			Usage:       "Sentry DSN; unexpected errors are reported when set",
			Sources:     cli.EnvVars("VIDLY_SENTRY_DSN", "SENTRY_DSN"),
			Destination: &x.dsn,
		},
	}
}

// IsConfigured returns true if a DSN is set
func (x *Sentry) IsConfigured() bool {
	return x.dsn != ""
}

// Configure creates a hub, or nil when no DSN is set. The returned function
// flushes pending events.
func (x *Sentry) Configure(env types.Env, release string) (*sentry.Hub, func(), error) {
	if !x.IsConfigured() {
		return nil, func() {}, nil
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: env.String(),
		Release:     release,
	})
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create sentry client")
	}

	hub := sentry.NewHub(client, sentry.NewScope())
	return hub, func() { client.Flush(sentryFlushTimeout) }, nil
}
