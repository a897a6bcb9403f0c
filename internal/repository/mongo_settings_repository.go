package repository

import (
	"context"
	"errors"
	"fmt"

	"produce-kart/internal/database"
	"produce-kart/internal/model"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// settingsDocument is the single document in the offerSettings collection.
type settingsDocument struct {
	ID                  string `bson:"_id"`
	model.OfferSettings `bson:",inline"`
}

type mongoSettingsRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewMongoSettingsRepository creates a MongoDB-backed settings repository.
func NewMongoSettingsRepository(db *mongo.Database, logger zerolog.Logger) SettingsRepository {
	return &mongoSettingsRepository{
		coll:   db.Collection(database.CollectionOfferSettings),
		logger: logger.With().Str("repository", "settings").Str("store", "mongo").Logger(),
	}
}

func (r *mongoSettingsRepository) Get(ctx context.Context) (*model.OfferSettings, error) {
	var doc settingsDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: model.SettingsID}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Msg("offer settings not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query offer settings")
		return nil, fmt.Errorf("failed to query offer settings: %w", err)
	}

	settings := doc.OfferSettings
	if settings.Merits == nil {
		settings.Merits = []model.Merit{}
	}
	return &settings, nil
}

func (r *mongoSettingsRepository) Save(ctx context.Context, settings *model.OfferSettings) error {
	doc := settingsDocument{ID: model.SettingsID, OfferSettings: *settings}
	if doc.Merits == nil {
		doc.Merits = []model.Merit{}
	}

	_, err := r.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: model.SettingsID}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to save offer settings")
		return fmt.Errorf("failed to save offer settings: %w", err)
	}
	return nil
}

func (r *mongoSettingsRepository) SetOfferWeek(ctx context.Context, enabled bool) error {
	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "isOfferWeek", Value: enabled}}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "merits", Value: bson.A{}}}},
	}

	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: model.SettingsID}},
		update,
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		r.logger.Error().Err(err).Bool("is_offer_week", enabled).Msg("failed to update offer week")
		return fmt.Errorf("failed to update offer week: %w", err)
	}
	return nil
}
