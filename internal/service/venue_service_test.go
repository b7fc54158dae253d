package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/seatforge/seatmap-service/internal/domain"
	"github.com/seatforge/seatmap-service/internal/dto"
)

func TestVenueService_CreateVenue(t *testing.T) {
	mockVenueRepo := NewMockVenueRepository()
	svc := NewVenueService(mockVenueRepo)

	tests := []struct {
		name    string
		req     *dto.CreateVenueRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: &dto.CreateVenueRequest{
				Name:      "Grand Theater",
				VenueType: "theater",
			},
			wantErr: false,
		},
		{
			name:    "defaults applied",
			req:     &dto.CreateVenueRequest{Name: "Bare Venue"},
			wantErr: false,
		},
		{
			name:    "missing name",
			req:     &dto.CreateVenueRequest{},
			wantErr: true,
		},
		{
			name: "non-positive spacing",
			req: &dto.CreateVenueRequest{
				Name:         "Bad Spacing",
				LayoutConfig: &domain.LayoutConfig{SeatSpacing: 0, RowSpacing: 1, SectionSpacing: 1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			venue, err := svc.CreateVenue(context.Background(), "tenant-1", tt.req)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if venue.ID == "" {
				t.Error("expected a generated ID")
			}
			if venue.TenantID != "tenant-1" {
				t.Errorf("tenant ID = %s, want tenant-1", venue.TenantID)
			}
			if tt.req.VenueType == "" && venue.VenueType != domain.VenueTypeGeneral {
				t.Errorf("venue type = %s, want general default", venue.VenueType)
			}
			if tt.req.LayoutConfig == nil && venue.LayoutConfig != domain.DefaultLayoutConfig() {
				t.Errorf("layout config = %+v, want defaults", venue.LayoutConfig)
			}
		})
	}
}

func TestVenueService_GetVenueByID(t *testing.T) {
	mockVenueRepo := NewMockVenueRepository()
	svc := NewVenueService(mockVenueRepo)

	mockVenueRepo.AddVenue(newTestVenue("venue-1"))

	venue, err := svc.GetVenueByID(context.Background(), "venue-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if venue.ID != "venue-1" {
		t.Errorf("expected venue-1, got %s", venue.ID)
	}

	_, err = svc.GetVenueByID(context.Background(), "non-existent")
	if !errors.Is(err, domain.ErrVenueNotFound) {
		t.Errorf("expected venue not found, got %v", err)
	}
}

func TestVenueService_ListVenues(t *testing.T) {
	mockVenueRepo := NewMockVenueRepository()
	svc := NewVenueService(mockVenueRepo)

	mockVenueRepo.AddVenue(newTestVenue("venue-1"))
	other := newTestVenue("venue-2")
	other.TenantID = "tenant-2"
	mockVenueRepo.AddVenue(other)

	venues, total, err := svc.ListVenues(context.Background(), "tenant-1", 0, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(venues) != 1 {
		t.Errorf("expected 1 venue for tenant-1, got %d (total %d)", len(venues), total)
	}
}

func TestVenueService_UpdateVenue(t *testing.T) {
	mockVenueRepo := NewMockVenueRepository()
	svc := NewVenueService(mockVenueRepo)

	mockVenueRepo.AddVenue(newTestVenue("venue-1"))

	t.Run("partial update keeps other fields", func(t *testing.T) {
		venue, err := svc.UpdateVenue(context.Background(), "venue-1", &dto.UpdateVenueRequest{
			Name: "Renamed Hall",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if venue.Name != "Renamed Hall" {
			t.Errorf("name = %s, want Renamed Hall", venue.Name)
		}
		if venue.VenueType != domain.VenueTypeGeneral {
			t.Errorf("venue type changed unexpectedly: %s", venue.VenueType)
		}
	})

	t.Run("empty update rejected", func(t *testing.T) {
		_, err := svc.UpdateVenue(context.Background(), "venue-1", &dto.UpdateVenueRequest{})
		if !domain.IsConfigurationError(err) {
			t.Errorf("expected configuration error, got %v", err)
		}
	})

	t.Run("venue not found", func(t *testing.T) {
		_, err := svc.UpdateVenue(context.Background(), "non-existent", &dto.UpdateVenueRequest{Name: "X"})
		if !errors.Is(err, domain.ErrVenueNotFound) {
			t.Errorf("expected venue not found, got %v", err)
		}
	})
}

func TestVenueService_UpdateSections(t *testing.T) {
	mockVenueRepo := NewMockVenueRepository()
	svc := NewVenueService(mockVenueRepo)

	mockVenueRepo.AddVenue(newTestVenue("venue-1"))

	t.Run("replaces the section list", func(t *testing.T) {
		payload := json.RawMessage(`[{"id":"sec-1","name":"Orchestra","shape":"rectangle","rows":4,"seats_per_row":12}]`)
		venue, err := svc.UpdateSections(context.Background(), "venue-1", &dto.UpdateVenueSectionsRequest{Sections: payload})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(venue.Sections) != 1 || venue.Sections[0].Name != "Orchestra" {
			t.Errorf("sections not replaced: %+v", venue.Sections)
		}
		if venue.Sections[0].EffectiveCapacity() != 48 {
			t.Errorf("effective capacity = %d, want 48", venue.Sections[0].EffectiveCapacity())
		}
	})

	t.Run("clears sections with an empty list", func(t *testing.T) {
		venue, err := svc.UpdateSections(context.Background(), "venue-1", &dto.UpdateVenueSectionsRequest{
			Sections: json.RawMessage(`[]`),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if venue.HasManualSections() {
			t.Error("sections should be cleared")
		}
	})

	t.Run("rejects a non-sequence payload", func(t *testing.T) {
		_, err := svc.UpdateSections(context.Background(), "venue-1", &dto.UpdateVenueSectionsRequest{
			Sections: json.RawMessage(`{"name":"not a list"}`),
		})
		if !domain.IsConfigurationError(err) {
			t.Errorf("expected configuration error, got %v", err)
		}
	})

	t.Run("rejects a missing payload", func(t *testing.T) {
		_, err := svc.UpdateSections(context.Background(), "venue-1", &dto.UpdateVenueSectionsRequest{})
		if !domain.IsConfigurationError(err) {
			t.Errorf("expected configuration error, got %v", err)
		}
	})
}

func TestVenueService_DeleteVenue(t *testing.T) {
	mockVenueRepo := NewMockVenueRepository()
	svc := NewVenueService(mockVenueRepo)

	mockVenueRepo.AddVenue(newTestVenue("venue-1"))

	if err := svc.DeleteVenue(context.Background(), "venue-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// soft delete: the venue stops resolving
	if _, err := svc.GetVenueByID(context.Background(), "venue-1"); !errors.Is(err, domain.ErrVenueNotFound) {
		t.Errorf("deleted venue should not resolve, got %v", err)
	}
}
