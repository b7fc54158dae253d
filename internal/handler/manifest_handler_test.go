package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seatforge/seatmap-service/internal/domain"
	"github.com/seatforge/seatmap-service/internal/dto"
	"github.com/seatforge/seatmap-service/internal/service"
)

// MockManifestService is a mock implementation of ManifestService
type MockManifestService struct {
	manifests map[string]*domain.Manifest
	venues    map[string]bool
}

func NewMockManifestService() *MockManifestService {
	return &MockManifestService{
		manifests: make(map[string]*domain.Manifest),
		venues:    make(map[string]bool),
	}
}

func (m *MockManifestService) Generate(ctx context.Context, req *dto.GenerateManifestRequest) (*service.GenerateResult, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, domain.NewConfigurationError("generate", msg)
	}
	if !m.venues[req.VenueID] {
		return nil, domain.ErrVenueNotFound
	}
	if req.TotalPlaces <= 0 {
		return nil, domain.NewConfigurationError("total_places", "must be positive")
	}
	now := time.Now()
	manifest := &domain.Manifest{
		ID:               "manifest-new",
		VenueID:          req.VenueID,
		Version:          1,
		LayoutAlgorithm:  domain.LayoutAlgorithmGrid,
		CoordinateSource: domain.CoordinateSourceGenerated,
		Places:           makePlaces(req.TotalPlaces),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	m.manifests[manifest.ID] = manifest
	return &service.GenerateResult{Manifest: manifest, Warnings: []string{"requested 10 places, generated 12 (closest achievable grid fit)"}}, nil
}

func (m *MockManifestService) GetManifestByID(ctx context.Context, id string) (*domain.Manifest, error) {
	manifest, ok := m.manifests[id]
	if !ok {
		return nil, domain.ErrManifestNotFound
	}
	return manifest, nil
}

func (m *MockManifestService) ListManifestsByVenue(ctx context.Context, venueID string) ([]*domain.Manifest, error) {
	if !m.venues[venueID] {
		return nil, domain.ErrVenueNotFound
	}
	var manifests []*domain.Manifest
	for _, mf := range m.manifests {
		if mf.VenueID == venueID {
			manifests = append(manifests, mf)
		}
	}
	return manifests, nil
}

func (m *MockManifestService) Regenerate(ctx context.Context, id string, req *dto.RegenerateManifestRequest) (*service.GenerateResult, error) {
	manifest, ok := m.manifests[id]
	if !ok {
		return nil, domain.ErrManifestNotFound
	}
	if manifest.Version != req.ExpectedVersion {
		return nil, domain.ErrVersionConflict
	}
	manifest.Version++
	manifest.Places = makePlaces(req.TotalPlaces)
	return &service.GenerateResult{Manifest: manifest}, nil
}

func (m *MockManifestService) DeleteManifest(ctx context.Context, id string) error {
	if _, ok := m.manifests[id]; !ok {
		return domain.ErrManifestNotFound
	}
	delete(m.manifests, id)
	return nil
}

func (m *MockManifestService) UpsertPlace(ctx context.Context, manifestID, placeID string, req *dto.UpsertPlaceRequest) (*domain.Place, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, domain.NewConfigurationError("place", msg)
	}
	if _, ok := m.manifests[manifestID]; !ok {
		return nil, domain.ErrManifestNotFound
	}
	place := req.ToPlace(placeID)
	return &place, nil
}

func (m *MockManifestService) DeletePlace(ctx context.Context, manifestID, placeID string) error {
	manifest, ok := m.manifests[manifestID]
	if !ok {
		return domain.ErrManifestNotFound
	}
	for i, p := range manifest.Places {
		if p.PlaceID == placeID {
			manifest.Places = append(manifest.Places[:i], manifest.Places[i+1:]...)
			return nil
		}
	}
	return domain.ErrPlaceNotFound
}

func (m *MockManifestService) AddVenue(id string) {
	m.venues[id] = true
}

func (m *MockManifestService) AddManifest(manifest *domain.Manifest) {
	m.manifests[manifest.ID] = manifest
}

func makePlaces(n int) []domain.Place {
	places := make([]domain.Place, n)
	for i := range places {
		places[i] = domain.Place{
			PlaceID:   fmt.Sprintf("%06d", i+1),
			Section:   "Section 1",
			Available: true,
			Status:    domain.PlaceStatusAvailable,
		}
	}
	return places
}

// MockManifestSyncer is a mock implementation of ManifestSyncer
type MockManifestSyncer struct {
	synced  []string
	failErr error
}

func (m *MockManifestSyncer) SyncManifest(ctx context.Context, manifestID string) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.synced = append(m.synced, manifestID)
	return nil
}

func setupManifestRouter(h *ManifestHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/manifests/generate", h.Generate)
	r.GET("/manifests/:id", h.GetByID)
	r.POST("/manifests/:id/regenerate", h.Regenerate)
	r.DELETE("/manifests/:id", h.Delete)
	r.PUT("/manifests/:id/places/:placeId", h.UpsertPlace)
	r.DELETE("/manifests/:id/places/:placeId", h.DeletePlace)
	r.POST("/manifests/:id/sync", h.Sync)
	r.GET("/venues/:id/manifests", h.ListByVenue)
	return r
}

func seededManifestService() *MockManifestService {
	mockService := NewMockManifestService()
	mockService.AddVenue("venue-1")
	mockService.AddManifest(&domain.Manifest{
		ID:              "manifest-1",
		VenueID:         "venue-1",
		Version:         2,
		LayoutAlgorithm: domain.LayoutAlgorithmGrid,
		Places:          makePlaces(4),
	})
	return mockService
}

func TestManifestHandler_Generate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid request",
			body:       `{"venue_id":"venue-1","total_places":10,"layout_config":{"sections":2}}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid json",
			body:       `{"venue_id":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing venue id",
			body:       `{"total_places":10}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown venue",
			body:       `{"venue_id":"nope","total_places":10}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "zero places",
			body:       `{"venue_id":"venue-1"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupManifestRouter(NewManifestHandler(seededManifestService(), &MockManifestSyncer{}))

			req := httptest.NewRequest(http.MethodPost, "/manifests/generate", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusCreated {
				var body struct {
					Data dto.ManifestResponse `json:"data"`
				}
				if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				if body.Data.Version != 1 {
					t.Errorf("version = %d, want 1", body.Data.Version)
				}
				if len(body.Data.Warnings) != 1 {
					t.Errorf("warnings not surfaced: %+v", body.Data.Warnings)
				}
			}
		})
	}
}

func TestManifestHandler_GetByID(t *testing.T) {
	router := setupManifestRouter(NewManifestHandler(seededManifestService(), &MockManifestSyncer{}))

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{name: "existing manifest", id: "manifest-1", wantStatus: http.StatusOK},
		{name: "non-existent manifest", id: "nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/manifests/"+tt.id, nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.Code, tt.wantStatus)
			}
		})
	}
}

func TestManifestHandler_ListByVenue(t *testing.T) {
	router := setupManifestRouter(NewManifestHandler(seededManifestService(), &MockManifestSyncer{}))

	tests := []struct {
		name       string
		venueID    string
		wantStatus int
	}{
		{name: "existing venue", venueID: "venue-1", wantStatus: http.StatusOK},
		{name: "non-existent venue", venueID: "nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/venues/"+tt.venueID+"/manifests", nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.Code, tt.wantStatus)
			}
		})
	}
}

func TestManifestHandler_Regenerate(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
	}{
		{
			name:       "matching version",
			id:         "manifest-1",
			body:       `{"total_places":10,"expected_version":2}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "stale version",
			id:         "manifest-1",
			body:       `{"total_places":10,"expected_version":1}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "missing expected version",
			id:         "manifest-1",
			body:       `{"total_places":10}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-existent manifest",
			id:         "nope",
			body:       `{"total_places":10,"expected_version":1}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupManifestRouter(NewManifestHandler(seededManifestService(), &MockManifestSyncer{}))

			req := httptest.NewRequest(http.MethodPost, "/manifests/"+tt.id+"/regenerate", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				var body struct {
					Data dto.ManifestResponse `json:"data"`
				}
				if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				if body.Data.Version != 3 {
					t.Errorf("version = %d, want 3 after bump", body.Data.Version)
				}
			}
		})
	}
}

func TestManifestHandler_Delete(t *testing.T) {
	router := setupManifestRouter(NewManifestHandler(seededManifestService(), &MockManifestSyncer{}))

	req := httptest.NewRequest(http.MethodDelete, "/manifests/manifest-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/manifests/manifest-1", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.Code)
	}
}

func TestManifestHandler_UpsertPlace(t *testing.T) {
	tests := []struct {
		name       string
		manifestID string
		placeID    string
		body       string
		wantStatus int
	}{
		{
			name:       "valid place",
			manifestID: "manifest-1",
			placeID:    "A-1-5",
			body:       `{"section":"A","row":"1","seat":"5","base_price":1500}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing section",
			manifestID: "manifest-1",
			placeID:    "A-1-5",
			body:       `{"row":"1"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-existent manifest",
			manifestID: "nope",
			placeID:    "A-1-5",
			body:       `{"section":"A"}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupManifestRouter(NewManifestHandler(seededManifestService(), &MockManifestSyncer{}))

			url := "/manifests/" + tt.manifestID + "/places/" + tt.placeID
			req := httptest.NewRequest(http.MethodPut, url, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				var body struct {
					Data dto.PlaceResponse `json:"data"`
				}
				if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				// the URL id wins over whatever the body implies
				if body.Data.PlaceID != tt.placeID {
					t.Errorf("place ID = %s, want %s", body.Data.PlaceID, tt.placeID)
				}
			}
		})
	}
}

func TestManifestHandler_DeletePlace(t *testing.T) {
	router := setupManifestRouter(NewManifestHandler(seededManifestService(), &MockManifestSyncer{}))

	tests := []struct {
		name       string
		manifestID string
		placeID    string
		wantStatus int
	}{
		{name: "existing place", manifestID: "manifest-1", placeID: "000001", wantStatus: http.StatusOK},
		{name: "non-existent place", manifestID: "manifest-1", placeID: "999999", wantStatus: http.StatusNotFound},
		{name: "non-existent manifest", manifestID: "nope", placeID: "000001", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := "/manifests/" + tt.manifestID + "/places/" + tt.placeID
			req := httptest.NewRequest(http.MethodDelete, url, nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.Code, tt.wantStatus)
			}
		})
	}
}

func TestManifestHandler_Sync(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		failErr    error
		wantStatus int
	}{
		{name: "sync succeeds", id: "manifest-1", wantStatus: http.StatusOK},
		{name: "manifest not found", id: "nope", failErr: domain.ErrManifestNotFound, wantStatus: http.StatusNotFound},
		{name: "pipeline down", id: "manifest-1", failErr: fmt.Errorf("%w: broker unreachable", domain.ErrSyncFailed), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncer := &MockManifestSyncer{failErr: tt.failErr}
			router := setupManifestRouter(NewManifestHandler(seededManifestService(), syncer))

			req := httptest.NewRequest(http.MethodPost, "/manifests/"+tt.id+"/sync", nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && len(syncer.synced) != 1 {
				t.Errorf("expected 1 sync call, got %d", len(syncer.synced))
			}
		})
	}
}
