package editor

import (
	"github.com/seatforge/seatmap-service/internal/domain"
)

// Zoom bounds for the view transform
const (
	MinZoom = 0.5
	MaxZoom = 2.0
)

// Filter holds the place filter parameters. A nil PriceMax means
// "unbounded", so the zero-value Filter matches every place while a
// zero-valued upper bound still expresses "free places only".
type Filter struct {
	SelectedSection   string
	ShowAvailableOnly bool
	PriceMin          int64
	PriceMax          *int64
}

// DefaultFilter matches every place
func DefaultFilter() Filter {
	return Filter{}
}

// PriceCeiling builds the upper price bound for a filter literal
func PriceCeiling(max int64) *int64 {
	return &max
}

// Active reports whether the filter narrows the place set at all
func (f Filter) Active() bool {
	return f.SelectedSection != "" || f.ShowAvailableOnly || f.PriceMin > 0 || f.PriceMax != nil
}

// Match is the pure filter predicate: a place is kept iff it is in the
// selected section (or no section is selected), passes the availability
// gate, and its effective price falls inside the price range.
func (f Filter) Match(p domain.Place) bool {
	if f.SelectedSection != "" && p.Section != f.SelectedSection {
		return false
	}
	if f.ShowAvailableOnly && !p.Available {
		return false
	}
	price := p.Pricing.EffectivePrice()
	if price < f.PriceMin {
		return false
	}
	return f.PriceMax == nil || price <= *f.PriceMax
}

// Apply filters a place sequence, preserving order
func (f Filter) Apply(places []domain.Place) []domain.Place {
	kept := make([]domain.Place, 0, len(places))
	for _, p := range places {
		if f.Match(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// Viewport is the view transform, independent of the filter state
type Viewport struct {
	Zoom float64
	PanX float64
	PanY float64
}

// DefaultViewport is the identity transform
func DefaultViewport() Viewport {
	return Viewport{Zoom: 1}
}

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}
