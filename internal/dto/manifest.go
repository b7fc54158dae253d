package dto

import "github.com/seatforge/seatmap-service/internal/domain"

// LayoutConfigRequest carries the per-request placement parameters for
// auto-generated sections.
type LayoutConfigRequest struct {
	Sections     int     `json:"sections" binding:"omitempty,gt=0"`
	SeatsPerRow  int     `json:"seats_per_row" binding:"omitempty,gt=0"`
	SectionWidth float64 `json:"section_width" binding:"omitempty,gt=0"`
	SeatSpacing  float64 `json:"seat_spacing" binding:"omitempty,gt=0"`
	RowSpacing   float64 `json:"row_spacing" binding:"omitempty,gt=0"`
	CenterX      float64 `json:"center_x"`
	CenterY      float64 `json:"center_y"`
	BaseRadius   float64 `json:"base_radius" binding:"omitempty,gt=0"`
	TotalRows    int     `json:"total_rows" binding:"omitempty,gt=0"`
}

// PlaceGenerationRequest selects the place identifier scheme
type PlaceGenerationRequest struct {
	Prefix  string `json:"prefix" binding:"omitempty,max=32"`
	Pattern string `json:"pattern" binding:"omitempty,oneof=sequential grid"`
}

// SectionNamingRequest selects the section naming scheme
type SectionNamingRequest struct {
	Pattern     string   `json:"pattern" binding:"omitempty,oneof=numeric alphabetic alphanumeric custom"`
	CustomNames []string `json:"custom_names"`
}

// GenerateManifestRequest represents the request to generate a manifest.
// When the referenced venue has manually configured sections, the layout
// algorithm, layout config and section naming fields are ignored entirely.
type GenerateManifestRequest struct {
	VenueID         string                 `json:"venue_id"`
	EventID         string                 `json:"event_id"`
	TotalPlaces     int                    `json:"total_places" binding:"omitempty,gt=0"`
	LayoutAlgorithm string                 `json:"layout_algorithm" binding:"omitempty,oneof=grid curved general"`
	LayoutConfig    LayoutConfigRequest    `json:"layout_config"`
	PlaceGeneration PlaceGenerationRequest `json:"place_generation"`
	SectionNaming   SectionNamingRequest   `json:"section_naming"`
	BasePrice       int64                  `json:"base_price" binding:"omitempty,gte=0"`
	Currency        string                 `json:"currency" binding:"omitempty,len=3"`
}

// Validate validates the GenerateManifestRequest
func (r *GenerateManifestRequest) Validate() (bool, string) {
	if r.VenueID == "" {
		return false, "Venue ID is required"
	}
	if r.TotalPlaces < 0 {
		return false, "Total places must be positive"
	}
	if r.BasePrice < 0 {
		return false, "Base price must not be negative"
	}
	return true, ""
}

// RegenerateManifestRequest represents the request to structurally
// regenerate an existing manifest. The version check makes a concurrent
// regeneration surface as a retryable conflict instead of a lost update.
type RegenerateManifestRequest struct {
	GenerateManifestRequest
	ExpectedVersion int  `json:"expected_version" binding:"required,gte=1"`
	BumpVersion     bool `json:"bump_version"`
}

// PricingResponse mirrors domain.Pricing on the wire
type PricingResponse struct {
	BasePrice    int64  `json:"base_price"`
	CurrentPrice int64  `json:"current_price"`
	Currency     string `json:"currency"`
}

// PlaceResponse represents a single place in a manifest response
type PlaceResponse struct {
	PlaceID   string          `json:"place_id"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Section   string          `json:"section"`
	Row       string          `json:"row"`
	Seat      string          `json:"seat"`
	Zone      string          `json:"zone,omitempty"`
	Pricing   PricingResponse `json:"pricing"`
	Available bool            `json:"available"`
	Status    string          `json:"status"`
	Tags      []string        `json:"tags,omitempty"`
}

// ManifestResponse represents the response for a manifest
type ManifestResponse struct {
	ID               string           `json:"id"`
	VenueID          string           `json:"venue_id"`
	EventID          string           `json:"event_id,omitempty"`
	Version          int              `json:"version"`
	LayoutAlgorithm  string           `json:"layout_algorithm"`
	CoordinateSource string           `json:"coordinate_source"`
	Places           []*PlaceResponse `json:"places"`
	Warnings         []string         `json:"warnings,omitempty"`
	CreatedAt        string           `json:"created_at"`
	UpdatedAt        string           `json:"updated_at"`
}

// UpsertPlaceRequest represents a single-seat edit. The place ID comes
// from the URL; an existing place keeps its identifier no matter what the
// body carries.
type UpsertPlaceRequest struct {
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Section   string   `json:"section" binding:"required"`
	Row       string   `json:"row"`
	Seat      string   `json:"seat"`
	Zone      string   `json:"zone"`
	BasePrice int64    `json:"base_price" binding:"omitempty,gte=0"`
	CurrentPrice int64 `json:"current_price" binding:"omitempty,gte=0"`
	Currency  string   `json:"currency" binding:"omitempty,len=3"`
	Available *bool    `json:"available"`
	Status    string   `json:"status" binding:"omitempty,oneof=available held sold blocked"`
	Tags      []string `json:"tags"`
}

// Validate validates the UpsertPlaceRequest
func (r *UpsertPlaceRequest) Validate() (bool, string) {
	if r.Section == "" {
		return false, "Section is required"
	}
	if r.BasePrice < 0 || r.CurrentPrice < 0 {
		return false, "Prices must not be negative"
	}
	return true, ""
}

// ToPlace converts the request into a domain place with the given ID
func (r *UpsertPlaceRequest) ToPlace(placeID string) domain.Place {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	status := domain.PlaceStatus(r.Status)
	if status == "" {
		status = domain.PlaceStatusAvailable
	}
	currency := r.Currency
	if currency == "" {
		currency = "USD"
	}
	current := r.CurrentPrice
	if current == 0 {
		current = r.BasePrice
	}
	return domain.Place{
		PlaceID: placeID,
		X:       r.X,
		Y:       r.Y,
		Section: r.Section,
		Row:     r.Row,
		Seat:    r.Seat,
		Zone:    r.Zone,
		Pricing: domain.Pricing{
			BasePrice:    r.BasePrice,
			CurrentPrice: current,
			Currency:     currency,
		},
		Available: available,
		Status:    status,
		Tags:      r.Tags,
	}
}
