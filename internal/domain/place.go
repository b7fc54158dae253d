package domain

// PlaceStatus tracks the sale state of a single place
type PlaceStatus string

const (
	PlaceStatusAvailable PlaceStatus = "available"
	PlaceStatusHeld      PlaceStatus = "held"
	PlaceStatusSold      PlaceStatus = "sold"
	PlaceStatusBlocked   PlaceStatus = "blocked"
)

// Pricing holds a place's price in minor currency units (cents). Integer
// minor units avoid floating-point rounding in downstream settlement.
// CurrentPrice defaults to BasePrice at creation and is the only field
// later price adjustments mutate.
type Pricing struct {
	BasePrice    int64  `json:"base_price"`
	CurrentPrice int64  `json:"current_price"`
	Currency     string `json:"currency"`
}

// EffectivePrice returns the price a filter should compare against:
// the current price when set, otherwise the base price.
func (p Pricing) EffectivePrice() int64 {
	if p.CurrentPrice > 0 {
		return p.CurrentPrice
	}
	return p.BasePrice
}

// Place is an individual generated seat or admission slot. PlaceID is
// immutable once persisted; manifest edits never regenerate it, only new
// places receive new IDs.
type Place struct {
	PlaceID   string      `json:"place_id"`
	X         float64     `json:"x"`
	Y         float64     `json:"y"`
	Section   string      `json:"section"`
	Row       string      `json:"row"`
	Seat      string      `json:"seat"`
	Zone      string      `json:"zone,omitempty"`
	Pricing   Pricing     `json:"pricing"`
	Available bool        `json:"available"`
	Status    PlaceStatus `json:"status"`
	Tags      []string    `json:"tags,omitempty"`
}
