package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"learntrack_backend/internal/model"
	"learntrack_backend/internal/repository"
	"learntrack_backend/pkg/database"
)

// testEnv wires the catalog, ledger and aggregator against a fresh
// in-memory database per test.
type testEnv struct {
	db         *gorm.DB
	catalog    *CatalogService
	progress   *ProgressService
	aggregator *AggregatorService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A second pool connection would see its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	topicRepo := repository.NewTopicRepository(db)
	contentRepo := repository.NewContentRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	return &testEnv{
		db:         db,
		catalog:    NewCatalogService(topicRepo, contentRepo),
		progress:   NewProgressService(progressRepo, contentRepo),
		aggregator: NewAggregatorService(topicRepo, contentRepo, progressRepo),
	}
}

func (e *testEnv) mustTopic(t *testing.T, title string, parentID *uint) *model.Topic {
	t.Helper()
	topic, err := e.catalog.CreateTopic(title, "", 0, parentID)
	require.NoError(t, err)
	return topic
}

func (e *testEnv) mustContent(t *testing.T, topicID uint, title string) *model.Content {
	t.Helper()
	content, err := e.catalog.CreateContent(topicID, title, model.Video, "https://example.com/"+title, "", 0)
	require.NoError(t, err)
	return content
}
