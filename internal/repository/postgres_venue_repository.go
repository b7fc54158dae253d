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

// PostgresVenueRepository implements VenueRepository using PostgreSQL.
// Structured fields (dimensions, layout config, sections, background svg)
// live in JSONB columns.
type PostgresVenueRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresVenueRepository creates a new PostgresVenueRepository
func NewPostgresVenueRepository(pool *pgxpool.Pool) *PostgresVenueRepository {
	return &PostgresVenueRepository{pool: pool}
}

// Create creates a new venue
func (r *PostgresVenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	query := `
		INSERT INTO venues (id, tenant_id, name, venue_type, dimensions, layout_config, sections, background_svg, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	dimensions, err := json.Marshal(venue.Dimensions)
	if err != nil {
		return err
	}
	layoutConfig, err := json.Marshal(venue.LayoutConfig)
	if err != nil {
		return err
	}
	sections, err := json.Marshal(venue.Sections)
	if err != nil {
		return err
	}
	background, err := json.Marshal(venue.BackgroundSVG)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query,
		venue.ID,
		venue.TenantID,
		venue.Name,
		venue.VenueType,
		dimensions,
		layoutConfig,
		sections,
		background,
		venue.CreatedAt,
		venue.UpdatedAt,
	)
	return err
}

// GetByID retrieves a venue by ID
func (r *PostgresVenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `
		SELECT id, tenant_id, name, venue_type, dimensions, layout_config, sections, background_svg, created_at, updated_at
		FROM venues
		WHERE id = $1 AND deleted_at IS NULL
	`
	return r.scanVenue(r.pool.QueryRow(ctx, query, id))
}

// GetByTenantID retrieves venues by tenant ID with pagination
func (r *PostgresVenueRepository) GetByTenantID(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Venue, int, error) {
	countQuery := `SELECT COUNT(*) FROM venues WHERE tenant_id = $1 AND deleted_at IS NULL`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, tenantID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, tenant_id, name, venue_type, dimensions, layout_config, sections, background_svg, created_at, updated_at
		FROM venues
		WHERE tenant_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var venues []*domain.Venue
	for rows.Next() {
		venue, err := r.scanVenue(rows)
		if err != nil {
			return nil, 0, err
		}
		venues = append(venues, venue)
	}
	return venues, total, rows.Err()
}

// Update updates a venue's top-level fields
func (r *PostgresVenueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	query := `
		UPDATE venues
		SET name = $2, venue_type = $3, dimensions = $4, layout_config = $5, background_svg = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`
	dimensions, err := json.Marshal(venue.Dimensions)
	if err != nil {
		return err
	}
	layoutConfig, err := json.Marshal(venue.LayoutConfig)
	if err != nil {
		return err
	}
	background, err := json.Marshal(venue.BackgroundSVG)
	if err != nil {
		return err
	}
	venue.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.VenueType,
		dimensions,
		layoutConfig,
		background,
		venue.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

// UpdateSections replaces the venue's section list
func (r *PostgresVenueRepository) UpdateSections(ctx context.Context, id string, sections []domain.Section) error {
	query := `
		UPDATE venues
		SET sections = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL
	`
	payload, err := json.Marshal(sections)
	if err != nil {
		return err
	}
	result, err := r.pool.Exec(ctx, query, id, payload, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

// Delete soft deletes a venue by ID
func (r *PostgresVenueRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE venues SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

func (r *PostgresVenueRepository) scanVenue(row pgx.Row) (*domain.Venue, error) {
	venue := &domain.Venue{}
	var dimensions, layoutConfig, sections, background []byte
	err := row.Scan(
		&venue.ID,
		&venue.TenantID,
		&venue.Name,
		&venue.VenueType,
		&dimensions,
		&layoutConfig,
		&sections,
		&background,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(dimensions, &venue.Dimensions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(layoutConfig, &venue.LayoutConfig); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sections, &venue.Sections); err != nil {
		return nil, err
	}
	if len(background) > 0 && string(background) != "null" {
		venue.BackgroundSVG = &domain.BackgroundSVG{}
		if err := json.Unmarshal(background, venue.BackgroundSVG); err != nil {
			return nil, err
		}
	}
	return venue, nil
}
