package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"comicvault/internal/config"
	"comicvault/internal/microservices/http-api/models"
	"comicvault/internal/microservices/http-api/repository"
)

const connectTimeout = 10 * time.Second

// ConnectMongo opens a client, verifies it with a ping and makes sure the
// comic indexes exist.
func ConnectMongo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mongo.Client, *mongo.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open mongo client: %w", err)
	}

	// Verify the connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// disconnect so the pool does not leak when ping fails
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
	if err := ensureMongoIndexes(ctx, coll); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Info("Connected to mongo successfully",
		"database", cfg.MongoDatabase,
		"collection", cfg.MongoCollection,
	)
	return client, coll, nil
}

func ensureMongoIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "volume", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}

// ConnectPostgres opens the gorm handle and migrates the comics table.
func ConnectPostgres(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	if cfg.IsDevelopment() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(&models.Comic{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to postgres successfully")
	return db, nil
}

// OpenStore connects the backend selected by cfg.StoreDriver. The returned
// func releases the connection.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.ComicRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := ConnectPostgres(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return repository.NewPostgresComicRepo(db), closeFn, nil
	default:
		client, coll, err := ConnectMongo(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			_ = client.Disconnect(context.Background())
		}
		return repository.NewMongoComicRepo(coll), closeFn, nil
	}
}
