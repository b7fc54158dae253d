package service

import (
	"context"

	"github.com/seatforge/seatmap-service/internal/domain"
	"github.com/seatforge/seatmap-service/internal/dto"
)

// VenueService defines venue business operations
type VenueService interface {
	// CreateVenue creates a new venue for a tenant
	CreateVenue(ctx context.Context, tenantID string, req *dto.CreateVenueRequest) (*domain.Venue, error)
	// GetVenueByID retrieves a venue by ID
	GetVenueByID(ctx context.Context, id string) (*domain.Venue, error)
	// ListVenues lists a tenant's venues with pagination
	ListVenues(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Venue, int, error)
	// UpdateVenue updates a venue's top-level fields
	UpdateVenue(ctx context.Context, id string, req *dto.UpdateVenueRequest) (*domain.Venue, error)
	// UpdateSections replaces the venue's section list
	UpdateSections(ctx context.Context, id string, req *dto.UpdateVenueSectionsRequest) (*domain.Venue, error)
	// DeleteVenue soft deletes a venue. Existing manifests keep their
	// venue reference and become orphaned; callers are expected to warn.
	DeleteVenue(ctx context.Context, id string) error
}

// GenerateResult is a built manifest plus any capacity warnings from the
// closest-fit partition.
type GenerateResult struct {
	Manifest *domain.Manifest
	Warnings []string
}

// ManifestService defines manifest business operations
type ManifestService interface {
	// Generate builds and persists a complete manifest for a venue
	Generate(ctx context.Context, req *dto.GenerateManifestRequest) (*GenerateResult, error)
	// GetManifestByID retrieves a manifest by ID
	GetManifestByID(ctx context.Context, id string) (*domain.Manifest, error)
	// ListManifestsByVenue retrieves all manifests referencing a venue
	ListManifestsByVenue(ctx context.Context, venueID string) ([]*domain.Manifest, error)
	// Regenerate rebuilds a manifest's structure under a version check
	Regenerate(ctx context.Context, id string, req *dto.RegenerateManifestRequest) (*GenerateResult, error)
	// DeleteManifest removes a manifest permanently
	DeleteManifest(ctx context.Context, id string) error
	// UpsertPlace adds or updates one place in a manifest
	UpsertPlace(ctx context.Context, manifestID, placeID string, req *dto.UpsertPlaceRequest) (*domain.Place, error)
	// DeletePlace removes one place from a manifest
	DeletePlace(ctx context.Context, manifestID, placeID string) error
}

// ManifestSyncer pushes a manifest snapshot to the external merchant
// pipeline: object storage first, then a message on the manifest topic.
// Sync failures are reported but never roll back local state.
type ManifestSyncer interface {
	SyncManifest(ctx context.Context, manifestID string) error
}
