package repository

import (
	"context"

	"github.com/seatforge/seatmap-service/internal/domain"
)

// VenueRepository defines the interface for venue data access
type VenueRepository interface {
	// Create creates a new venue
	Create(ctx context.Context, venue *domain.Venue) error
	// GetByID retrieves a venue by ID
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
	// GetByTenantID retrieves venues by tenant ID with pagination
	GetByTenantID(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Venue, int, error)
	// Update updates a venue
	Update(ctx context.Context, venue *domain.Venue) error
	// UpdateSections replaces the venue's section list
	UpdateSections(ctx context.Context, id string, sections []domain.Section) error
	// Delete soft deletes a venue by ID. Manifests referencing the venue
	// are left untouched and may become orphaned.
	Delete(ctx context.Context, id string) error
}

// ManifestRepository defines the interface for manifest data access. The
// place collection is stored as a single document per manifest; per-place
// edits mutate the document without bumping the manifest version.
type ManifestRepository interface {
	// Create persists a freshly generated manifest
	Create(ctx context.Context, manifest *domain.Manifest) error
	// GetByID retrieves a manifest by ID
	GetByID(ctx context.Context, id string) (*domain.Manifest, error)
	// GetByVenueID retrieves all manifests referencing a venue
	GetByVenueID(ctx context.Context, venueID string) ([]*domain.Manifest, error)
	// Replace swaps a manifest's structural content after regeneration.
	// The write only succeeds while the stored version still equals
	// expectedVersion; otherwise domain.ErrVersionConflict is returned.
	Replace(ctx context.Context, manifest *domain.Manifest, expectedVersion int) error
	// UpsertPlace adds or updates a single place in a manifest
	UpsertPlace(ctx context.Context, manifestID string, place domain.Place) error
	// DeletePlace removes a single place from a manifest
	DeletePlace(ctx context.Context, manifestID, placeID string) error
	// Delete removes a manifest permanently. Irreversible, and never
	// cascades into venue deletion.
	Delete(ctx context.Context, id string) error
}
