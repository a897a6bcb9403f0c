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

// mongoProductRepository implements ProductRepository on a MongoDB collection.
type mongoProductRepository struct {
	coll   *mongo.Collection
	logger zerolog.Logger
}

// NewMongoProductRepository creates a MongoDB-backed product repository.
func NewMongoProductRepository(db *mongo.Database, logger zerolog.Logger) ProductRepository {
	return &mongoProductRepository{
		coll:   db.Collection(database.CollectionProducts),
		logger: logger.With().Str("repository", "product").Str("store", "mongo").Logger(),
	}
}

func (r *mongoProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	query := bson.D{}
	if filter.Category != "" {
		query = bson.D{{Key: "category", Value: filter.Category}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error().Err(err).Str("category", string(filter.Category)).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products := []model.Product{}
	if err := cur.All(ctx, &products); err != nil {
		r.logger.Error().Err(err).Msg("failed to decode products")
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	for i := range products {
		if products[i].BoxSizes == nil {
			products[i].BoxSizes = []model.BoxSize{}
		}
	}

	return products, nil
}

func (r *mongoProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	if p.BoxSizes == nil {
		p.BoxSizes = []model.BoxSize{}
	}

	return &p, nil
}

func (r *mongoProductRepository) Create(ctx context.Context, p *model.Product) error {
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// Update replaces the stored document, keeping its original createdAt.
func (r *mongoProductRepository) Update(ctx context.Context, p *model.Product) error {
	existing, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return model.ErrProductNotFound
	}

	doc := *p
	doc.CreatedAt = existing.CreatedAt

	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: p.ID}}, doc)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

func (r *mongoProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrProductNotFound
	}
	return nil
}
