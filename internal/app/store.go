package app

import (
	"context"
	"fmt"

	"github.com/yukikurage/team-insights-api/internal/config"
	"github.com/yukikurage/team-insights-api/internal/database"
	"github.com/yukikurage/team-insights-api/internal/mongostore"
	"github.com/yukikurage/team-insights-api/internal/repository"
	"go.uber.org/zap"
)

// DriverMongo selects the MongoDB Entity Store; every other DB_DRIVER value
// goes through gorm.
const DriverMongo = "mongodb"

// OpenStore connects the configured backend and prepares its schema or
// indexes. The returned func releases the connection.
func OpenStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Store, func(), error) {
	if cfg.DBDriver == DriverMongo {
		return openMongoStore(ctx, cfg, log)
	}
	return openGormStore(cfg, log)
}

func openMongoStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Store, func(), error) {
	client, err := mongostore.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return repository.Store{}, nil, err
	}

	db := client.Database(cfg.MongoDatabase)
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return repository.Store{}, nil, err
	}

	log.Info("mongodb connection established", zap.String("database", cfg.MongoDatabase))
	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn("failed to disconnect from mongodb", zap.Error(err))
		}
	}
	return mongostore.NewStore(db), closeFn, nil
}

func openGormStore(cfg *config.Config, log *zap.Logger) (repository.Store, func(), error) {
	if err := database.Connect(cfg, log); err != nil {
		return repository.Store{}, nil, err
	}

	db := database.GetDB()
	sqlDB, err := db.DB()
	if err != nil {
		return repository.Store{}, nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	if err := database.Migrate(db, log); err != nil {
		sqlDB.Close()
		return repository.Store{}, nil, err
	}

	closeFn := func() {
		if err := sqlDB.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}
	return repository.NewGormStore(db), closeFn, nil
}
