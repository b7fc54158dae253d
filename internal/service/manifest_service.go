package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/seatforge/seatmap-service/internal/domain"
	"github.com/seatforge/seatmap-service/internal/dto"
	"github.com/seatforge/seatmap-service/internal/repository"
)

// VersionPolicy controls when a structural regeneration bumps the
// manifest version.
type VersionPolicy string

const (
	// VersionBumpOnRegenerate increments the version on every structural
	// regeneration (the default).
	VersionBumpOnRegenerate VersionPolicy = "on_regenerate"
	// VersionBumpExplicit increments only when the regenerate request
	// asks for it.
	VersionBumpExplicit VersionPolicy = "explicit"
)

// manifestService implements the ManifestService interface
type manifestService struct {
	manifestRepo  repository.ManifestRepository
	venueRepo     repository.VenueRepository
	versionPolicy VersionPolicy
}

// NewManifestService creates a new ManifestService
func NewManifestService(manifestRepo repository.ManifestRepository, venueRepo repository.VenueRepository, policy VersionPolicy) ManifestService {
	if policy == "" {
		policy = VersionBumpOnRegenerate
	}
	return &manifestService{
		manifestRepo:  manifestRepo,
		venueRepo:     venueRepo,
		versionPolicy: policy,
	}
}

// Generate builds and persists a complete manifest. Any failure aborts
// the whole operation before persistence; no partially built manifest is
// ever stored.
func (s *manifestService) Generate(ctx context.Context, req *dto.GenerateManifestRequest) (*GenerateResult, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, domain.NewConfigurationError("generate", msg)
	}

	venue, err := s.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, domain.ErrVenueNotFound
	}

	plan, err := buildGenerationPlan(venue, req)
	if err != nil {
		return nil, err
	}
	places, err := emitPlaces(plan, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	manifest := &domain.Manifest{
		ID:               uuid.New().String(),
		VenueID:          venue.ID,
		EventID:          req.EventID,
		Version:          1,
		LayoutAlgorithm:  plan.algorithm,
		CoordinateSource: domain.CoordinateSourceGenerated,
		Places:           places,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.manifestRepo.Create(ctx, manifest); err != nil {
		return nil, err
	}
	return &GenerateResult{Manifest: manifest, Warnings: plan.warnings}, nil
}

// GetManifestByID retrieves a manifest by ID
func (s *manifestService) GetManifestByID(ctx context.Context, id string) (*domain.Manifest, error) {
	manifest, err := s.manifestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if manifest == nil {
		return nil, domain.ErrManifestNotFound
	}
	return manifest, nil
}

// ListManifestsByVenue retrieves all manifests referencing a venue
func (s *manifestService) ListManifestsByVenue(ctx context.Context, venueID string) ([]*domain.Manifest, error) {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, domain.ErrVenueNotFound
	}
	return s.manifestRepo.GetByVenueID(ctx, venueID)
}

// Regenerate rebuilds a manifest's structure under a version check. All
// places receive fresh coordinates and, where the ID pattern demands it,
// fresh identifiers; the version bump follows the configured policy.
func (s *manifestService) Regenerate(ctx context.Context, id string, req *dto.RegenerateManifestRequest) (*GenerateResult, error) {
	manifest, err := s.GetManifestByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if manifest.Version != req.ExpectedVersion {
		return nil, domain.ErrVersionConflict
	}

	req.VenueID = manifest.VenueID
	venue, err := s.venueRepo.GetByID(ctx, manifest.VenueID)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, domain.ErrVenueNotFound
	}

	plan, err := buildGenerationPlan(venue, &req.GenerateManifestRequest)
	if err != nil {
		return nil, err
	}
	places, err := emitPlaces(plan, &req.GenerateManifestRequest)
	if err != nil {
		return nil, err
	}

	manifest.LayoutAlgorithm = plan.algorithm
	manifest.CoordinateSource = domain.CoordinateSourceGenerated
	manifest.Places = places
	if s.versionPolicy == VersionBumpOnRegenerate || req.BumpVersion {
		manifest.Version++
	}

	if err := s.manifestRepo.Replace(ctx, manifest, req.ExpectedVersion); err != nil {
		return nil, err
	}
	return &GenerateResult{Manifest: manifest, Warnings: plan.warnings}, nil
}

// DeleteManifest removes a manifest permanently. The referenced venue is
// never touched.
func (s *manifestService) DeleteManifest(ctx context.Context, id string) error {
	return s.manifestRepo.Delete(ctx, id)
}

// UpsertPlace adds or updates one place. The place ID in the URL wins:
// an existing place keeps its identifier, a new place adopts it.
func (s *manifestService) UpsertPlace(ctx context.Context, manifestID, placeID string, req *dto.UpsertPlaceRequest) (*domain.Place, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, domain.NewConfigurationError("place", msg)
	}
	place := req.ToPlace(placeID)
	if err := s.manifestRepo.UpsertPlace(ctx, manifestID, place); err != nil {
		return nil, err
	}
	return &place, nil
}

// DeletePlace removes one place from a manifest
func (s *manifestService) DeletePlace(ctx context.Context, manifestID, placeID string) error {
	return s.manifestRepo.DeletePlace(ctx, manifestID, placeID)
}
