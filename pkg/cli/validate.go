package cli

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/vidly-dev/vidly/pkg/cli/config"
	"github.com/vidly-dev/vidly/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var fixturesCfg config.Fixtures

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a fixtures file without touching any repository",
		Flags:   fixturesCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			fixtures, err := fixturesCfg.Load()
			if err != nil {
				return err
			}

			logging.Default().Info("Fixtures validation passed",
				"path", fixturesCfg.Path(),
				"genres", len(fixtures.Genres),
				"movies", len(fixtures.Movies),
				"customers", len(fixtures.Customers),
				"users", len(fixtures.Users),
			)
			return nil
		},
	}
}
