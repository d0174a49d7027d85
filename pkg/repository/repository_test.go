package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/vidly-dev/vidly/pkg/domain/interfaces"
	"github.com/vidly-dev/vidly/pkg/repository/firestore"
	"github.com/vidly-dev/vidly/pkg/repository/memory"
	"github.com/vidly-dev/vidly/pkg/repository/mongo"
)

func newMemoryRepository(t *testing.T) interfaces.Repository {
	t.Helper()
	return memory.New()
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func newMongoRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	database := os.Getenv("TEST_MONGO_DATABASE")
	if database == "" {
		database = "vidly_test"
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := mongo.New(ctx, uri, database, mongo.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create mongo repository: %v", err)
	}
	if _, err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Drop(context.Background()); err != nil {
			t.Errorf("failed to drop collections: %v", err)
		}
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close mongo repository: %v", err)
		}
	})
	return repo
}

// runAllBackends runs suite against every repository implementation.
// External backends are skipped unless configured.
func runAllBackends(t *testing.T, suite func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository)) {
	t.Run("Memory", func(t *testing.T) { suite(t, newMemoryRepository) })
	t.Run("Firestore", func(t *testing.T) { suite(t, newFirestoreRepository) })
	t.Run("Mongo", func(t *testing.T) { suite(t, newMongoRepository) })
}

func TestPing(t *testing.T) {
	runAllBackends(t, func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
		repo := newRepo(t)
		if err := repo.Ping(context.Background()); err != nil {
			t.Fatalf("ping failed: %v", err)
		}
		if repo.Backend() == "" {
			t.Error("expected backend name")
		}
	})
}
