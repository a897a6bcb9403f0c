package database

import (
	"context"
	"fmt"
	"time"

	"produce-kart/internal/config"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names in the document store.
const (
	CollectionProducts      = "products"
	CollectionOffers        = "offers"
	CollectionOfferSettings = "offerSettings"
)

// NewMongo connects to MongoDB and returns the configured database handle.
func NewMongo(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*mongo.Client, *mongo.Database, error) {
	logger.Info().
		Str("database", cfg.MongoDatabase).
		Msg("connecting to document store")

	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(uint64(cfg.MaxConnections)).
		SetConnectTimeout(10 * time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info().Msg("document store connection established")

	return client, client.Database(cfg.MongoDatabase), nil
}

// EnsureIndexes creates the secondary indexes used by catalogue queries.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	products := db.Collection(CollectionProducts)
	_, err := products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	offers := db.Collection(CollectionOffers)
	_, err = offers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create offer indexes: %w", err)
	}
	return nil
}
