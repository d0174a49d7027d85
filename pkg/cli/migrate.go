package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidly-dev/vidly/pkg/cli/config"
	"github.com/vidly-dev/vidly/pkg/repository/firestore"
	"github.com/vidly-dev/vidly/pkg/repository/mongo"
	"github.com/vidly-dev/vidly/pkg/utils/logging"
	"github.com/vidly-dev/vidly/pkg/utils/safe"
)

func cmdMigrate() *cli.Command {
	var repoCfg config.Repository
	var dryRun bool

	flags := append(repoCfg.Flags(), &cli.BoolFlag{
		Name:        "dry-run",
		Usage:       "Preview changes without applying",
		Destination: &dryRun,
	})

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Create the indexes the repository backend needs",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := repoCfg.Validate(); err != nil {
				return err
			}

			logging.Default().Info("Migrate configuration",
				"repository", repoCfg,
				"dryRun", dryRun)

			switch repoCfg.Backend() {
			case config.BackendFirestore:
				return migrateFirestore(ctx, &repoCfg, dryRun)
			case config.BackendMongo:
				return migrateMongo(ctx, &repoCfg, dryRun)
			default:
				logging.Default().Info("Nothing to migrate for backend", "backend", repoCfg.Backend())
				return nil
			}
		},
	}
}

func migrateFirestore(ctx context.Context, repoCfg *config.Repository, dryRun bool) error {
	logger := logging.Default()
	indexConfig := getIndexConfig(repoCfg.CollectionPrefix())

	client, err := fireconf.NewClient(ctx, repoCfg.ProjectID(), repoCfg.DatabaseID())
	if err != nil {
		return goerr.Wrap(err, "failed to create fireconf client")
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close fireconf client", "error", err.Error())
		}
	}()

	if dryRun {
		logger.Info("Dry run mode - previewing changes")
		plan, err := client.GetMigrationPlan(ctx, indexConfig)
		if err != nil {
			return goerr.Wrap(err, "failed to create migration plan")
		}

		if len(plan.Steps) == 0 {
			logger.Info("No changes required")
			return nil
		}

		for _, step := range plan.Steps {
			logger.Info("Migration step",
				"collection", step.Collection,
				"operation", step.Operation,
				"description", step.Description,
				"destructive", step.Destructive)
		}
		return nil
	}

	logger.Info("Applying migrations")
	if err := client.Migrate(ctx, indexConfig); err != nil {
		return goerr.Wrap(err, "failed to apply migrations")
	}
	logger.Info("Migrations applied successfully")
	return nil
}

func migrateMongo(ctx context.Context, repoCfg *config.Repository, dryRun bool) error {
	logger := logging.Default()

	if dryRun {
		for _, name := range mongo.PlannedIndexes() {
			logger.Info("Index to ensure", "index", name)
		}
		return nil
	}

	repo, err := repoCfg.ConfigureMongo(ctx)
	if err != nil {
		return err
	}
	defer safe.Close(ctx, repo)

	created, err := repo.EnsureIndexes(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to ensure indexes")
	}
	logger.Info("Indexes ensured", "indexes", created)
	return nil
}

// getIndexConfig returns the composite indexes of the Firestore backend.
// Single field orderings are indexed by Firestore automatically.
func getIndexConfig(prefix string) *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: firestore.PrefixedName(prefix, firestore.CollectionRentals),
				Indexes: []fireconf.Index{
					// Lookup: customer.id ASC, movie.id ASC, date_out DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "customer.id", Order: fireconf.OrderAscending},
							{Path: "movie.id", Order: fireconf.OrderAscending},
							{Path: "date_out", Order: fireconf.OrderDescending},
						},
					},
				},
			},
		},
	}
}
