package config_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"
	"github.com/vidly-dev/vidly/pkg/cli/config"
	"github.com/vidly-dev/vidly/pkg/domain/types"
	"github.com/vidly-dev/vidly/pkg/repository/memory"
)

// parse runs a command with flags so that flag defaults and values land in
// the config structs.
func parse(t *testing.T, flags []cli.Flag, args ...string) {
	t.Helper()
	cmd := &cli.Command{
		Name:   "test",
		Flags:  flags,
		Action: func(context.Context, *cli.Command) error { return nil },
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...))).Required()
}

func TestServer(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg config.Server
		parse(t, cfg.Flags())

		gt.String(t, cfg.Addr()).Equal("127.0.0.1:3000")
		env, err := cfg.Env()
		gt.NoError(t, err)
		gt.Value(t, env).Equal(types.EnvDevelopment)

		page, err := cfg.Pagination()
		gt.NoError(t, err)
		gt.Value(t, page.DefaultLimit).Equal(20)
		gt.Value(t, page.MaxLimit).Equal(100)
	})

	t.Run("invalid env", func(t *testing.T) {
		var cfg config.Server
		parse(t, cfg.Flags(), "--env", "staging")
		_, err := cfg.Env()
		gt.Bool(t, errors.Is(err, types.ErrInvalidEnv)).True()
	})

	t.Run("default above max", func(t *testing.T) {
		var cfg config.Server
		parse(t, cfg.Flags(), "--page-default-limit", "50", "--page-max-limit", "10")
		_, err := cfg.Pagination()
		gt.Bool(t, errors.Is(err, config.ErrInvalidPageLimits)).True()
	})
}

func TestRateLimit(t *testing.T) {
	var cfg config.RateLimit
	parse(t, cfg.Flags(), "--rate-limit-max", "7", "--rate-limit-window", "2")

	got := cfg.Config()
	gt.Bool(t, got.Enabled).True()
	gt.Value(t, got.Max).Equal(7)
	gt.Value(t, got.Window).Equal(2 * time.Minute)
}

func TestRepository(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		var cfg config.Repository
		parse(t, cfg.Flags())

		repo, err := cfg.Configure(context.Background())
		gt.NoError(t, err).Required()
		gt.String(t, repo.Backend()).Equal("memory")
		gt.NoError(t, repo.Close())
	})

	t.Run("unknown backend", func(t *testing.T) {
		var cfg config.Repository
		parse(t, cfg.Flags(), "--repository-backend", "sqlite")
		_, err := cfg.Configure(context.Background())
		gt.Bool(t, errors.Is(err, config.ErrInvalidBackend)).True()
	})

	t.Run("firestore requires project", func(t *testing.T) {
		var cfg config.Repository
		parse(t, cfg.Flags(), "--repository-backend", "firestore")
		gt.Bool(t, errors.Is(cfg.Validate(), config.ErrMissingOption)).True()
	})

	t.Run("mongo requires uri", func(t *testing.T) {
		var cfg config.Repository
		parse(t, cfg.Flags(), "--repository-backend", "mongo")
		gt.Bool(t, errors.Is(cfg.Validate(), config.ErrMissingOption)).True()
	})
}

func TestAuth(t *testing.T) {
	t.Run("key required", func(t *testing.T) {
		var cfg config.Auth
		parse(t, cfg.Flags())
		_, err := cfg.Configure(memory.New())
		gt.Bool(t, errors.Is(err, config.ErrMissingOption)).True()
	})

	t.Run("short key", func(t *testing.T) {
		var cfg config.Auth
		parse(t, cfg.Flags(), "--jwt-private-key", "short")
		_, err := cfg.Configure(memory.New())
		gt.Error(t, err)
	})

	t.Run("configured", func(t *testing.T) {
		var cfg config.Auth
		parse(t, cfg.Flags(), "--jwt-private-key", strings.Repeat("k", 32), "--jwt-expires-in", "1h")
		auth, err := cfg.Configure(memory.New())
		gt.NoError(t, err)
		gt.Value(t, auth == nil).Equal(false)
	})
}

func TestSentry(t *testing.T) {
	var cfg config.Sentry
	parse(t, cfg.Flags())
	gt.Bool(t, cfg.IsConfigured()).False()

	hub, flush, err := cfg.Configure(types.EnvTest, "test")
	gt.NoError(t, err)
	gt.Value(t, hub).Nil()
	flush()
}

func TestLogger(t *testing.T) {
	t.Run("json redacts secrets", func(t *testing.T) {
		var cfg config.Logger
		parse(t, cfg.Flags(), "--log-format", "json")

		var buf bytes.Buffer
		logger, err := cfg.NewLogger(&buf)
		gt.NoError(t, err).Required()

		logger.Info("login", "email", "fan@example.com", "password", "hunter22")
		gt.String(t, buf.String()).Contains("fan@example.com")
		gt.String(t, buf.String()).NotContains("hunter22")
	})

	t.Run("invalid level", func(t *testing.T) {
		var cfg config.Logger
		parse(t, cfg.Flags(), "--log-level", "verbose")
		_, err := cfg.NewLogger(&bytes.Buffer{})
		gt.Bool(t, errors.Is(err, config.ErrInvalidLogLevel)).True()
	})

	t.Run("invalid format", func(t *testing.T) {
		var cfg config.Logger
		parse(t, cfg.Flags(), "--log-format", "xml")
		_, err := cfg.NewLogger(&bytes.Buffer{})
		gt.Bool(t, errors.Is(err, config.ErrInvalidLogFormat)).True()
	})
}

const validFixtures = `
[[genres]]
name = "Action"

[[genres]]
name = "Comedy"

[[movies]]
title = "Die Hard"
genre = "Action"
numberInStock = 3
dailyRentalRate = 2.5

[[customers]]
name = "Jane Doe"
phone = "555-1234"
isGold = true

[[users]]
name = "Site Admin"
email = "admin@example.com"
password = "changeme"
isAdmin = true
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixtures.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadFixtures(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		fixtures, err := config.LoadFixtures(writeFile(t, validFixtures))
		gt.NoError(t, err).Required()
		gt.Value(t, len(fixtures.Genres)).Equal(2)
		gt.Value(t, fixtures.Movies[0].Genre).Equal("Action")
		gt.Bool(t, fixtures.Customers[0].IsGold).True()
		gt.Bool(t, fixtures.Users[0].IsAdmin).True()
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadFixtures(filepath.Join(t.TempDir(), "none.toml"))
		gt.Bool(t, errors.Is(err, config.ErrFixturesNotFound)).True()
	})

	t.Run("unknown genre", func(t *testing.T) {
		_, err := config.LoadFixtures(writeFile(t, `
[[movies]]
title = "Die Hard"
genre = "Horror"
numberInStock = 3
dailyRentalRate = 2.5
`))
		gt.Bool(t, errors.Is(err, config.ErrInvalidFixtures)).True()
		gt.String(t, err.Error()).Contains(`unknown genre "Horror"`)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := config.LoadFixtures(writeFile(t, `
[[genres]]
name = "Action"
color = "red"
`))
		gt.Bool(t, errors.Is(err, config.ErrInvalidFixtures)).True()
	})
}
