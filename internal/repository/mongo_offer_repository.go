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

// mongoOfferRepository implements OfferRepository on a MongoDB collection.
// Listing order is createdAt then _id, the same as the PostgreSQL store.
type mongoOfferRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewMongoOfferRepository creates a MongoDB-backed offer repository.
func NewMongoOfferRepository(db *mongo.Database, logger zerolog.Logger) OfferRepository {
	return &mongoOfferRepository{
		coll:   db.Collection(database.CollectionOffers),
		logger: logger.With().Str("repository", "offer").Str("store", "mongo").Logger(),
	}
}

func (r *mongoOfferRepository) List(ctx context.Context, limit int) ([]model.Offer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query offers")
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}

	offers := []model.Offer{}
	if err := cur.All(ctx, &offers); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode offers")
		return nil, fmt.Errorf("failed to decode offers: %w", err)
	}

	return offers, nil
}

func (r *mongoOfferRepository) GetByID(ctx context.Context, id string) (*model.Offer, error) {
	var o model.Offer
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("offer_id", id).Msg("offer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("offer_id", id).Msg("failed to query offer")
		return nil, fmt.Errorf("failed to query offer: %w", err)
	}
	o.EndDate = o.EndDate.UTC()
	o.CreatedAt = o.CreatedAt.UTC()

	return &o, nil
}

func (r *mongoOfferRepository) Create(ctx context.Context, o *model.Offer) error {
	stampCreated(o)
	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		r.logger.Error().Err(err).Str("offer_id", o.ID).Msg("failed to insert offer")
		return fmt.Errorf("failed to insert offer: %w", err)
	}
	return nil
}

func (r *mongoOfferRepository) Update(ctx context.Context, o *model.Offer) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "productId", Value: o.ProductID},
		{Key: "title", Value: o.Title},
		{Key: "discount", Value: o.Discount},
		{Key: "price", Value: o.Price},
		{Key: "endDate", Value: o.EndDate},
		{Key: "imageUrl", Value: o.ImageURL},
	}}}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: o.ID}}, update)
	if err != nil {
		r.logger.Error().Err(err).Str("offer_id", o.ID).Msg("failed to update offer")
		return fmt.Errorf("failed to update offer: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrOfferNotFound
	}
	return nil
}

func (r *mongoOfferRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		r.logger.Error().Err(err).Str("offer_id", id).Msg("failed to delete offer")
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrOfferNotFound
	}
	return nil
}
