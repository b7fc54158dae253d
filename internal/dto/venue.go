package dto

import (
	"bytes"
	"encoding/json"

	"github.com/seatforge/seatmap-service/internal/domain"
)

// CreateVenueRequest represents the request to create a new venue
type CreateVenueRequest struct {
	Name          string                `json:"name" binding:"required,min=1,max=200"`
	VenueType     string                `json:"venue_type" binding:"omitempty,oneof=stadium theater arena general custom"`
	Dimensions    *domain.Dimensions    `json:"dimensions"`
	LayoutConfig  *domain.LayoutConfig  `json:"layout_config"`
	Sections      []domain.Section      `json:"sections"`
	BackgroundSVG *domain.BackgroundSVG `json:"background_svg"`
}

// Validate validates the CreateVenueRequest
func (r *CreateVenueRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Venue name is required"
	}
	if r.LayoutConfig != nil {
		if r.LayoutConfig.SeatSpacing <= 0 || r.LayoutConfig.RowSpacing <= 0 || r.LayoutConfig.SectionSpacing <= 0 {
			return false, "Layout spacing values must be positive"
		}
	}
	return true, ""
}

// UpdateVenueRequest represents the request to update a venue
type UpdateVenueRequest struct {
	Name          string                `json:"name" binding:"omitempty,min=1,max=200"`
	VenueType     string                `json:"venue_type" binding:"omitempty,oneof=stadium theater arena general custom"`
	Dimensions    *domain.Dimensions    `json:"dimensions"`
	LayoutConfig  *domain.LayoutConfig  `json:"layout_config"`
	BackgroundSVG *domain.BackgroundSVG `json:"background_svg"`
}

// Validate validates the UpdateVenueRequest
func (r *UpdateVenueRequest) Validate() (bool, string) {
	if r.Name == "" && r.VenueType == "" && r.Dimensions == nil && r.LayoutConfig == nil && r.BackgroundSVG == nil {
		return false, "At least one field must be provided for update"
	}
	if r.LayoutConfig != nil {
		if r.LayoutConfig.SeatSpacing <= 0 || r.LayoutConfig.RowSpacing <= 0 || r.LayoutConfig.SectionSpacing <= 0 {
			return false, "Layout spacing values must be positive"
		}
	}
	return true, ""
}

// UpdateVenueSectionsRequest carries a replacement section list. Sections
// binds as raw JSON so a payload whose sections field is present but not a
// sequence can be rejected explicitly instead of through an opaque
// unmarshal error.
type UpdateVenueSectionsRequest struct {
	Sections json.RawMessage `json:"sections"`
}

// DecodeSections validates and decodes the raw sections payload
func (r *UpdateVenueSectionsRequest) DecodeSections() ([]domain.Section, error) {
	if len(r.Sections) == 0 {
		return nil, domain.NewConfigurationError("sections", "field is required")
	}
	// json.Unmarshal accepts the null token into a slice, which would
	// silently clear the venue's sections. An empty list must be spelled [].
	if string(bytes.TrimSpace(r.Sections)) == "null" {
		return nil, domain.NewConfigurationError("sections", "must be a sequence of sections")
	}
	var sections []domain.Section
	if err := json.Unmarshal(r.Sections, &sections); err != nil {
		return nil, domain.NewConfigurationError("sections", "must be a sequence of sections")
	}
	return sections, nil
}

// VenueResponse represents the response for a venue
type VenueResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	VenueType     string                `json:"venue_type"`
	Dimensions    domain.Dimensions     `json:"dimensions"`
	LayoutConfig  domain.LayoutConfig   `json:"layout_config"`
	Sections      []domain.Section      `json:"sections,omitempty"`
	BackgroundSVG *domain.BackgroundSVG `json:"background_svg,omitempty"`
	CreatedAt     string                `json:"created_at"`
	UpdatedAt     string                `json:"updated_at"`
}

// VenueListResponse represents a list of venues
type VenueListResponse struct {
	Venues []*VenueResponse `json:"venues"`
	Total  int              `json:"total"`
}
