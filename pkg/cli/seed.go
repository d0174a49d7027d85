package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidly-dev/vidly/pkg/cli/config"
	"github.com/vidly-dev/vidly/pkg/usecase"
	"github.com/vidly-dev/vidly/pkg/utils/logging"
	"github.com/vidly-dev/vidly/pkg/utils/safe"
)

func cmdSeed() *cli.Command {
	var fixturesCfg config.Fixtures
	var repoCfg config.Repository

	var flags []cli.Flag
	flags = append(flags, fixturesCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load genres, movies, customers and users from a fixtures file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			fixtures, err := fixturesCfg.Load()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc, err := usecase.New(repo, usecase.WithLogger(logging.Default()))
			if err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}

			result, err := uc.Seed(ctx, fixtures)
			if err != nil {
				return goerr.Wrap(err, "failed to seed repository", goerr.V(config.PathKey, fixturesCfg.Path()))
			}

			logging.Default().Info("Seed completed",
				"backend", repo.Backend(),
				"genres", result.Genres,
				"movies", result.Movies,
				"customers", result.Customers,
				"users", result.Users,
			)
			return nil
		},
	}
}
