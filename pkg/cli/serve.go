package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidly-dev/vidly/pkg/cli/config"
	httpctrl "github.com/vidly-dev/vidly/pkg/controller/http"
	"github.com/vidly-dev/vidly/pkg/usecase"
	"github.com/vidly-dev/vidly/pkg/utils/logging"
	"github.com/vidly-dev/vidly/pkg/utils/safe"
)

const shutdownTimeout = 10 * time.Second

func cmdServe(version string) *cli.Command {
	var serverCfg config.Server
	var repoCfg config.Repository
	var authCfg config.Auth
	var rateCfg config.RateLimit
	var sentryCfg config.Sentry

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, rateCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			env, err := serverCfg.Env()
			if err != nil {
				return err
			}
			page, err := serverCfg.Pagination()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			authUC, err := authCfg.Configure(repo)
			if err != nil {
				return err
			}

			hub, flush, err := sentryCfg.Configure(env, version)
			if err != nil {
				return err
			}
			defer flush()

			uc, err := usecase.New(repo,
				usecase.WithAuth(authUC),
				usecase.WithLogger(logger),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}

			handler, err := httpctrl.New(uc,
				httpctrl.WithLogger(logger),
				httpctrl.WithEnv(env),
				httpctrl.WithPagination(page),
				httpctrl.WithRateLimit(rateCfg.Config()),
				httpctrl.WithSentry(hub),
				httpctrl.WithVersion(version),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}

			server := &http.Server{
				Addr:              serverCfg.Addr(),
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server",
					"addr", serverCfg.Addr(),
					"env", env,
					"repository", repoCfg,
					"auth", authCfg,
					"sentry", sentryCfg.IsConfigured(),
				)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logger.Info("Server shutdown completed")
				return nil
			}
		},
	}
}
