package domain

import "time"

// VenueType categorizes a venue template
type VenueType string

const (
	VenueTypeStadium VenueType = "stadium"
	VenueTypeTheater VenueType = "theater"
	VenueTypeArena   VenueType = "arena"
	VenueTypeGeneral VenueType = "general"
	VenueTypeCustom  VenueType = "custom"
)

// SectionShape determines which layout engine places the section's seats
type SectionShape string

const (
	SectionShapeRectangle SectionShape = "rectangle"
	SectionShapeCurved    SectionShape = "curved"
	SectionShapeZone      SectionShape = "zone"
)

// Dimensions describes the advisory footprint of a venue. It is not
// binding on layout generation.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// LayoutConfig holds the spacing parameters shared by all layout engines
type LayoutConfig struct {
	SeatSpacing    float64 `json:"seat_spacing"`
	RowSpacing     float64 `json:"row_spacing"`
	SectionSpacing float64 `json:"section_spacing"`
}

// DefaultLayoutConfig returns the default spacing parameters
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		SeatSpacing:    0.5,
		RowSpacing:     0.8,
		SectionSpacing: 1.0,
	}
}

// BackgroundSVG carries an optional decorative overlay for a venue.
// It is purely presentational and never consulted by generation.
type BackgroundSVG struct {
	Markup  string  `json:"markup"`
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// RowSpec describes one row inside a section's explicit row configuration
type RowSpec struct {
	RowLabel  string `json:"row_label"`
	SeatCount int    `json:"seat_count"`
}

// Section is a named subdivision of a venue. Capacity is derived from
// exactly one of three sources, in priority order: the explicit Capacity
// field, the sum of RowConfig seat counts, or Rows * SeatsPerRow.
type Section struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Shape     SectionShape `json:"shape"`
	Capacity  int          `json:"capacity,omitempty"`
	RowConfig []RowSpec    `json:"row_config,omitempty"`
	Rows      int          `json:"rows,omitempty"`
	SeatsPerRow int        `json:"seats_per_row,omitempty"`
	BasePrice *int64       `json:"base_price,omitempty"`
}

// EffectiveCapacity resolves the section's seat count. The priority order
// is fixed: explicit capacity, then row config, then the uniform fallback.
func (s *Section) EffectiveCapacity() int {
	if s.Capacity > 0 {
		return s.Capacity
	}
	if len(s.RowConfig) > 0 {
		total := 0
		for _, r := range s.RowConfig {
			total += r.SeatCount
		}
		return total
	}
	return s.Rows * s.SeatsPerRow
}

// Venue is a physical location template. When Sections is non-empty it is
// authoritative: its order is the canonical rendering and naming order, and
// manifest generation derives everything from it.
type Venue struct {
	ID            string         `json:"id"`
	TenantID      string         `json:"tenant_id"`
	Name          string         `json:"name"`
	VenueType     VenueType      `json:"venue_type"`
	Dimensions    Dimensions     `json:"dimensions"`
	LayoutConfig  LayoutConfig   `json:"layout_config"`
	Sections      []Section      `json:"sections,omitempty"`
	BackgroundSVG *BackgroundSVG `json:"background_svg,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     *time.Time     `json:"-"`
}

// HasManualSections reports whether manifest generation must derive the
// layout from the venue's configured sections instead of the request's
// auto-generation parameters.
func (v *Venue) HasManualSections() bool {
	return len(v.Sections) > 0
}
