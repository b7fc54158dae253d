package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/seatforge/seatmap-service/internal/domain"
)

// PostgresManifestRepository implements ManifestRepository using
// PostgreSQL. Each manifest is one row; the place collection is a JSONB
// document column, which keeps the repository contract a document-store
// interface. Per-place edits lock the row, rewrite the document, and
// leave the version untouched.
type PostgresManifestRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresManifestRepository creates a new PostgresManifestRepository
func NewPostgresManifestRepository(pool *pgxpool.Pool) *PostgresManifestRepository {
	return &PostgresManifestRepository{pool: pool}
}

// Create persists a freshly generated manifest
func (r *PostgresManifestRepository) Create(ctx context.Context, manifest *domain.Manifest) error {
	query := `
		INSERT INTO manifests (id, venue_id, event_id, version, layout_algorithm, coordinate_source, places, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	places, err := json.Marshal(manifest.Places)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query,
		manifest.ID,
		manifest.VenueID,
		manifest.EventID,
		manifest.Version,
		manifest.LayoutAlgorithm,
		manifest.CoordinateSource,
		places,
		manifest.CreatedAt,
		manifest.UpdatedAt,
	)
	return err
}

// GetByID retrieves a manifest by ID
func (r *PostgresManifestRepository) GetByID(ctx context.Context, id string) (*domain.Manifest, error) {
	query := `
		SELECT id, venue_id, event_id, version, layout_algorithm, coordinate_source, places, created_at, updated_at
		FROM manifests
		WHERE id = $1
	`
	return scanManifest(r.pool.QueryRow(ctx, query, id))
}

// GetByVenueID retrieves all manifests referencing a venue
func (r *PostgresManifestRepository) GetByVenueID(ctx context.Context, venueID string) ([]*domain.Manifest, error) {
	query := `
		SELECT id, venue_id, event_id, version, layout_algorithm, coordinate_source, places, created_at, updated_at
		FROM manifests
		WHERE venue_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var manifests []*domain.Manifest
	for rows.Next() {
		manifest, err := scanManifest(rows)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, manifest)
	}
	return manifests, rows.Err()
}

// Replace swaps a manifest's structural content with a version check
func (r *PostgresManifestRepository) Replace(ctx context.Context, manifest *domain.Manifest, expectedVersion int) error {
	query := `
		UPDATE manifests
		SET version = $2, layout_algorithm = $3, coordinate_source = $4, places = $5, updated_at = $6
		WHERE id = $1 AND version = $7
	`
	places, err := json.Marshal(manifest.Places)
	if err != nil {
		return err
	}
	manifest.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		manifest.ID,
		manifest.Version,
		manifest.LayoutAlgorithm,
		manifest.CoordinateSource,
		places,
		manifest.UpdatedAt,
		expectedVersion,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		// Distinguish a missing manifest from a concurrent regeneration
		existing, err := r.GetByID(ctx, manifest.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrManifestNotFound
		}
		return domain.ErrVersionConflict
	}
	return nil
}

// UpsertPlace adds or updates a single place without bumping the version
func (r *PostgresManifestRepository) UpsertPlace(ctx context.Context, manifestID string, place domain.Place) error {
	return r.editPlaces(ctx, manifestID, func(places []domain.Place) ([]domain.Place, error) {
		for i := range places {
			if places[i].PlaceID == place.PlaceID {
				places[i] = place
				return places, nil
			}
		}
		return append(places, place), nil
	})
}

// DeletePlace removes a single place without bumping the version
func (r *PostgresManifestRepository) DeletePlace(ctx context.Context, manifestID, placeID string) error {
	return r.editPlaces(ctx, manifestID, func(places []domain.Place) ([]domain.Place, error) {
		for i := range places {
			if places[i].PlaceID == placeID {
				return append(places[:i], places[i+1:]...), nil
			}
		}
		return nil, domain.ErrPlaceNotFound
	})
}

// Delete removes a manifest permanently
func (r *PostgresManifestRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM manifests WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrManifestNotFound
	}
	return nil
}

// editPlaces applies a mutation to the place document under a row lock so
// concurrent edits to different places serialize instead of clobbering
// each other.
func (r *PostgresManifestRepository) editPlaces(ctx context.Context, manifestID string, mutate func([]domain.Place) ([]domain.Place, error)) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var raw []byte
	err = tx.QueryRow(ctx, `SELECT places FROM manifests WHERE id = $1 FOR UPDATE`, manifestID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrManifestNotFound
		}
		return err
	}

	var places []domain.Place
	if err := json.Unmarshal(raw, &places); err != nil {
		return err
	}
	places, err = mutate(places)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(places)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE manifests SET places = $2, updated_at = $3 WHERE id = $1`, manifestID, payload, time.Now()); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanManifest(row pgx.Row) (*domain.Manifest, error) {
	manifest := &domain.Manifest{}
	var places []byte
	err := row.Scan(
		&manifest.ID,
		&manifest.VenueID,
		&manifest.EventID,
		&manifest.Version,
		&manifest.LayoutAlgorithm,
		&manifest.CoordinateSource,
		&places,
		&manifest.CreatedAt,
		&manifest.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(places, &manifest.Places); err != nil {
		return nil, err
	}
	return manifest, nil
}
