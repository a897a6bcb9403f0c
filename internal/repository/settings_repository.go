package repository

import (
	"context"
	"errors"
	"fmt"

	"produce-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// settingsRepository stores offer settings in offer_settings with the merit
// list in its own table, ordered by position.
type settingsRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSettingsRepository creates a new PostgreSQL-backed settings repository.
func NewSettingsRepository(pool *pgxpool.Pool, logger zerolog.Logger) SettingsRepository {
	return &settingsRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "settings").Logger(),
	}
}

func (r *settingsRepository) Get(ctx context.Context) (*model.OfferSettings, error) {
	settings := &model.OfferSettings{Merits: []model.Merit{}}

	err := r.pool.QueryRow(ctx,
		`SELECT is_offer_week FROM offer_settings WHERE id = $1`, model.SettingsID,
	).Scan(&settings.IsOfferWeek)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Msg("offer settings not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query offer settings")
		return nil, fmt.Errorf("failed to query offer settings: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, image_url
		FROM merits
		WHERE settings_id = $1
		ORDER BY position`, model.SettingsID)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query merits")
		return nil, fmt.Errorf("failed to query merits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m model.Merit
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.ImageURL); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan merit row")
			return nil, fmt.Errorf("failed to scan merit: %w", err)
		}
		settings.Merits = append(settings.Merits, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating merit rows")
		return nil, fmt.Errorf("error iterating merits: %w", err)
	}

	return settings, nil
}

// Save upserts the flag and rewrites the merit list in a single transaction.
func (r *settingsRepository) Save(ctx context.Context, settings *model.OfferSettings) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := upsertOfferWeek(ctx, tx, settings.IsOfferWeek); err != nil {
		r.logger.Error().Err(err).Msg("failed to upsert offer settings")
		return fmt.Errorf("failed to upsert offer settings: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM merits WHERE settings_id = $1`, model.SettingsID); err != nil {
		r.logger.Error().Err(err).Msg("failed to clear merits")
		return fmt.Errorf("failed to clear merits: %w", err)
	}

	if err := r.insertMerits(ctx, tx, settings.Merits); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Debug().
		Bool("is_offer_week", settings.IsOfferWeek).
		Int("merits", len(settings.Merits)).
		Msg("offer settings saved")

	return nil
}

func (r *settingsRepository) SetOfferWeek(ctx context.Context, enabled bool) error {
	if err := upsertOfferWeek(ctx, r.pool, enabled); err != nil {
		r.logger.Error().Err(err).Bool("is_offer_week", enabled).Msg("failed to update offer week")
		return fmt.Errorf("failed to update offer week: %w", err)
	}
	return nil
}

func (r *settingsRepository) insertMerits(ctx context.Context, tx pgx.Tx, merits []model.Merit) error {
	if len(merits) == 0 {
		return nil
	}

	query := `
		INSERT INTO merits (id, settings_id, position, title, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for i, m := range merits {
		batch.Queue(query, m.ID, model.SettingsID, i, m.Title, m.Description, m.ImageURL)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(merits); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("merit_id", merits[i].ID).
				Msg("failed to insert merit")
			return fmt.Errorf("failed to insert merit: %w", err)
		}
	}

	return nil
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func upsertOfferWeek(ctx context.Context, db execer, enabled bool) error {
	_, err := db.Exec(ctx, `
		INSERT INTO offer_settings (id, is_offer_week)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET is_offer_week = EXCLUDED.is_offer_week`,
		model.SettingsID, enabled)
	return err
}
