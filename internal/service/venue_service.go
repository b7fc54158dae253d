package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/seatforge/seatmap-service/internal/domain"
	"github.com/seatforge/seatmap-service/internal/dto"
	"github.com/seatforge/seatmap-service/internal/repository"
)

// venueService implements the VenueService interface
type venueService struct {
	venueRepo repository.VenueRepository
}

// NewVenueService creates a new VenueService
func NewVenueService(venueRepo repository.VenueRepository) VenueService {
	return &venueService{venueRepo: venueRepo}
}

// CreateVenue creates a new venue for a tenant
func (s *venueService) CreateVenue(ctx context.Context, tenantID string, req *dto.CreateVenueRequest) (*domain.Venue, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, domain.NewConfigurationError("venue", msg)
	}

	venueType := domain.VenueType(req.VenueType)
	if venueType == "" {
		venueType = domain.VenueTypeGeneral
	}
	layoutConfig := domain.DefaultLayoutConfig()
	if req.LayoutConfig != nil {
		layoutConfig = *req.LayoutConfig
	}

	now := time.Now()
	venue := &domain.Venue{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		Name:          req.Name,
		VenueType:     venueType,
		LayoutConfig:  layoutConfig,
		Sections:      req.Sections,
		BackgroundSVG: req.BackgroundSVG,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Dimensions != nil {
		venue.Dimensions = *req.Dimensions
	}

	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

// GetVenueByID retrieves a venue by ID
func (s *venueService) GetVenueByID(ctx context.Context, id string) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, domain.ErrVenueNotFound
	}
	return venue, nil
}

// ListVenues lists a tenant's venues with pagination
func (s *venueService) ListVenues(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Venue, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.venueRepo.GetByTenantID(ctx, tenantID, limit, offset)
}

// UpdateVenue updates a venue's top-level fields
func (s *venueService) UpdateVenue(ctx context.Context, id string, req *dto.UpdateVenueRequest) (*domain.Venue, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, domain.NewConfigurationError("venue", msg)
	}

	venue, err := s.GetVenueByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		venue.Name = req.Name
	}
	if req.VenueType != "" {
		venue.VenueType = domain.VenueType(req.VenueType)
	}
	if req.Dimensions != nil {
		venue.Dimensions = *req.Dimensions
	}
	if req.LayoutConfig != nil {
		venue.LayoutConfig = *req.LayoutConfig
	}
	if req.BackgroundSVG != nil {
		venue.BackgroundSVG = req.BackgroundSVG
	}

	if err := s.venueRepo.Update(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

// UpdateSections replaces the venue's section list. The payload is
// rejected when the sections field is present but not a sequence.
func (s *venueService) UpdateSections(ctx context.Context, id string, req *dto.UpdateVenueSectionsRequest) (*domain.Venue, error) {
	sections, err := req.DecodeSections()
	if err != nil {
		return nil, err
	}

	venue, err := s.GetVenueByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.venueRepo.UpdateSections(ctx, id, sections); err != nil {
		return nil, err
	}
	venue.Sections = sections
	return venue, nil
}

// DeleteVenue soft deletes a venue
func (s *venueService) DeleteVenue(ctx context.Context, id string) error {
	return s.venueRepo.Delete(ctx, id)
}
