package repository

import (
	"context"
	"errors"
	"fmt"

	"produce-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const offerColumns = `id, product_id, title, discount, price, end_date, image_url, created_at`

// offerRepository implements the OfferRepository interface using PostgreSQL.
type offerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOfferRepository creates a new PostgreSQL-backed offer repository.
func NewOfferRepository(pool *pgxpool.Pool, logger zerolog.Logger) OfferRepository {
	return &offerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "offer").Logger(),
	}
}

func (r *offerRepository) List(ctx context.Context, limit int) ([]model.Offer, error) {
	query := `SELECT ` + offerColumns + `
		FROM offers
		ORDER BY created_at, id
		LIMIT $1`

	var lim any
	if limit > 0 {
		lim = limit
	}

	rows, err := r.pool.Query(ctx, query, lim)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query offers")
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	offers := []model.Offer{}
	for rows.Next() {
		var o model.Offer
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Title, &o.Discount, &o.Price, &o.EndDate, &o.ImageURL, &o.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan offer row")
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating offer rows")
		return nil, fmt.Errorf("error iterating offers: %w", err)
	}

	return offers, nil
}

func (r *offerRepository) GetByID(ctx context.Context, id string) (*model.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id = $1`

	var o model.Offer
	err := r.pool.QueryRow(ctx, query, id).Scan(&o.ID, &o.ProductID, &o.Title, &o.Discount, &o.Price, &o.EndDate, &o.ImageURL, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("offer_id", id).Msg("offer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("offer_id", id).Msg("failed to query offer")
		return nil, fmt.Errorf("failed to query offer: %w", err)
	}

	return &o, nil
}

func (r *offerRepository) Create(ctx context.Context, o *model.Offer) error {
	query := `INSERT INTO offers (` + offerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	stampCreated(o)
	_, err := r.pool.Exec(ctx, query, o.ID, o.ProductID, o.Title, o.Discount, o.Price, o.EndDate, o.ImageURL, o.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("offer_id", o.ID).Msg("failed to insert offer")
		return fmt.Errorf("failed to insert offer: %w", err)
	}

	return nil
}

func (r *offerRepository) Update(ctx context.Context, o *model.Offer) error {
	query := `UPDATE offers
		SET product_id = $2, title = $3, discount = $4, price = $5, end_date = $6, image_url = $7
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, o.ID, o.ProductID, o.Title, o.Discount, o.Price, o.EndDate, o.ImageURL)
	if err != nil {
		r.logger.Error().Err(err).Str("offer_id", o.ID).Msg("failed to update offer")
		return fmt.Errorf("failed to update offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOfferNotFound
	}

	return nil
}

func (r *offerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("offer_id", id).Msg("failed to delete offer")
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOfferNotFound
	}

	return nil
}
