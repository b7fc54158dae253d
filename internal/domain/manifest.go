package domain

import "time"

// LayoutAlgorithm selects the layout engine used for auto-generated sections
type LayoutAlgorithm string

const (
	LayoutAlgorithmGrid    LayoutAlgorithm = "grid"
	LayoutAlgorithmCurved  LayoutAlgorithm = "curved"
	LayoutAlgorithmGeneral LayoutAlgorithm = "general"

	// LayoutAlgorithmSections is recorded when manually configured venue
	// sections drove generation and each section's shape picked its own
	// engine.
	LayoutAlgorithmSections LayoutAlgorithm = "sections"
)

// CoordinateSource records how the places in a manifest obtained their
// coordinates.
type CoordinateSource string

const (
	CoordinateSourceGenerated CoordinateSource = "generated"
	CoordinateSourceManual    CoordinateSource = "manual"
)

// Manifest is the versioned, persisted collection of places for a venue.
// Version is a monotonic integer incremented on structural regeneration;
// per-place edits mutate the manifest in place without bumping it. A venue
// may be referenced by multiple manifests, so deleting a manifest never
// cascades into the venue.
type Manifest struct {
	ID               string           `json:"id"`
	VenueID          string           `json:"venue_id"`
	EventID          string           `json:"event_id,omitempty"`
	Version          int              `json:"version"`
	LayoutAlgorithm  LayoutAlgorithm  `json:"layout_algorithm"`
	CoordinateSource CoordinateSource `json:"coordinate_source"`
	Places           []Place          `json:"places"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// PlaceByID returns the place with the given ID, or nil if absent
func (m *Manifest) PlaceByID(placeID string) *Place {
	for i := range m.Places {
		if m.Places[i].PlaceID == placeID {
			return &m.Places[i]
		}
	}
	return nil
}

// TotalCapacity returns the number of places in the manifest
func (m *Manifest) TotalCapacity() int {
	return len(m.Places)
}
