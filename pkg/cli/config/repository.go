package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/repository/firestore"
	"github.com/vidly-dev/vidly/pkg/repository/memory"
	"github.com/vidly-dev/vidly/pkg/repository/mongo"
	"github.com/vidly-dev/vidly/pkg/utils/logging"
)

// Repository backends
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend          string
	projectID        string
	databaseID       string
	mongoURI         string
	mongoDatabase    string
	collectionPrefix string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Category:    "Repository",
			Usage:       "Repository backend type (memory, firestore or mongo)",
			Value:       BackendMemory,
			Sources:     cli.EnvVars("VIDLY_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Category:    "Repository",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars("VIDLY_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Category:    "Repository",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("VIDLY_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "mongo-uri",
			Category:    "Repository",
			Usage:       "MongoDB connection URI (required when using mongo backend)",
			Sources:     cli.EnvVars("VIDLY_MONGO_URI", "DB"),
			Destination: &r.mongoURI,
		},
		&cli.StringFlag{
			Name:        "mongo-database",
			Category:    "Repository",
			Usage:       "MongoDB database name",
			Value:       "vidly",
			Sources:     cli.EnvVars("VIDLY_MONGO_DATABASE"),
			Destination: &r.mongoDatabase,
		},
		&cli.StringFlag{
			Name:        "collection-prefix",
			Category:    "Repository",
			Usage:       "Prefix for collection names, to share one database between deployments",
			Sources:     cli.EnvVars("VIDLY_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
	}
}

func (r Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.String("firestore_project_id", r.projectID),
		slog.String("firestore_database_id", r.databaseID),
		slog.Bool("mongo_uri_set", r.mongoURI != ""),
		slog.String("mongo_database", r.mongoDatabase),
		slog.String("collection_prefix", r.collectionPrefix),
	)
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// ProjectID returns the Firestore project ID
func (r *Repository) ProjectID() string {
	return r.projectID
}

// DatabaseID returns the Firestore database ID
func (r *Repository) DatabaseID() string {
	return r.databaseID
}

// Validate checks that the options required by the backend are present
func (r *Repository) Validate() error {
	switch r.backend {
	case BackendMemory:
		return nil
	case BackendFirestore:
		if r.projectID == "" {
			return goerr.Wrap(ErrMissingOption, "firestore-project-id is required when using firestore backend",
				goerr.V(OptionKey, "firestore-project-id"))
		}
		return nil
	case BackendMongo:
		if r.mongoURI == "" {
			return goerr.Wrap(ErrMissingOption, "mongo-uri is required when using mongo backend",
				goerr.V(OptionKey, "mongo-uri"))
		}
		return nil
	default:
		return goerr.Wrap(ErrInvalidBackend, "unknown repository backend", goerr.V(BackendKey, r.backend))
	}
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	switch r.backend {
	case BackendFirestore:
		repo, err := firestore.New(ctx, r.projectID, r.databaseID, firestore.WithCollectionPrefix(r.collectionPrefix))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case BackendMongo:
		repo, err := r.ConfigureMongo(ctx)
		if err != nil {
			return nil, err
		}
		logging.Default().Info("Using MongoDB repository", "database", r.mongoDatabase)
		return repo, nil

	default:
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil
	}
}

// ConfigureMongo connects to MongoDB directly, for commands that need the
// concrete backend such as index migration.
func (r *Repository) ConfigureMongo(ctx context.Context) (*mongo.Mongo, error) {
	if r.mongoURI == "" {
		return nil, goerr.Wrap(ErrMissingOption, "mongo-uri is required", goerr.V(OptionKey, "mongo-uri"))
	}
	repo, err := mongo.New(ctx, r.mongoURI, r.mongoDatabase, mongo.WithCollectionPrefix(r.collectionPrefix))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize mongo repository")
	}
	return repo, nil
}

// CollectionPrefix returns the collection name prefix
func (r *Repository) CollectionPrefix() string {
	return r.collectionPrefix
}
