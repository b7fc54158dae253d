package dto

import (
	"testing"

	"github.com/seatforge/seatmap-service/internal/domain"
)

func TestGenerateManifestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     GenerateManifestRequest
		want    bool
		wantMsg string
	}{
		{
			name: "valid request",
			req: GenerateManifestRequest{
				VenueID:     "venue-1",
				TotalPlaces: 100,
			},
			want:    true,
			wantMsg: "",
		},
		{
			name:    "missing venue id",
			req:     GenerateManifestRequest{TotalPlaces: 100},
			want:    false,
			wantMsg: "Venue ID is required",
		},
		{
			name: "negative total places",
			req: GenerateManifestRequest{
				VenueID:     "venue-1",
				TotalPlaces: -1,
			},
			want:    false,
			wantMsg: "Total places must be positive",
		},
		{
			name: "negative base price",
			req: GenerateManifestRequest{
				VenueID:     "venue-1",
				TotalPlaces: 100,
				BasePrice:   -500,
			},
			want:    false,
			wantMsg: "Base price must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := tt.req.Validate()
			if got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
			if msg != tt.wantMsg {
				t.Errorf("Validate() msg = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestUpsertPlaceRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  UpsertPlaceRequest
		want bool
	}{
		{
			name: "valid request",
			req:  UpsertPlaceRequest{Section: "A", BasePrice: 100},
			want: true,
		},
		{
			name: "missing section",
			req:  UpsertPlaceRequest{},
			want: false,
		},
		{
			name: "negative price",
			req:  UpsertPlaceRequest{Section: "A", BasePrice: -1},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := tt.req.Validate()
			if got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpsertPlaceRequest_ToPlace(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		req := UpsertPlaceRequest{
			Section:   "A",
			Row:       "1",
			Seat:      "5",
			BasePrice: 1500,
		}
		place := req.ToPlace("A-1-5")

		if place.PlaceID != "A-1-5" {
			t.Errorf("PlaceID = %s, want A-1-5", place.PlaceID)
		}
		if place.Pricing.CurrentPrice != 1500 {
			t.Errorf("CurrentPrice = %d, want base price 1500", place.Pricing.CurrentPrice)
		}
		if place.Pricing.Currency != "USD" {
			t.Errorf("Currency = %s, want USD", place.Pricing.Currency)
		}
		if !place.Available {
			t.Error("Available should default to true")
		}
		if place.Status != domain.PlaceStatusAvailable {
			t.Errorf("Status = %s, want available", place.Status)
		}
	})

	t.Run("explicit fields preserved", func(t *testing.T) {
		available := false
		req := UpsertPlaceRequest{
			Section:      "A",
			BasePrice:    1000,
			CurrentPrice: 1200,
			Currency:     "EUR",
			Available:    &available,
			Status:       "blocked",
			Tags:         []string{"wheelchair"},
		}
		place := req.ToPlace("p-1")

		if place.Pricing.CurrentPrice != 1200 {
			t.Errorf("CurrentPrice = %d, want 1200", place.Pricing.CurrentPrice)
		}
		if place.Pricing.Currency != "EUR" {
			t.Errorf("Currency = %s, want EUR", place.Pricing.Currency)
		}
		if place.Available {
			t.Error("Available should be false")
		}
		if place.Status != domain.PlaceStatusBlocked {
			t.Errorf("Status = %s, want blocked", place.Status)
		}
		if len(place.Tags) != 1 || place.Tags[0] != "wheelchair" {
			t.Errorf("Tags = %v, want [wheelchair]", place.Tags)
		}
	})
}
