package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seatforge/seatmap-service/internal/domain"
	"github.com/seatforge/seatmap-service/internal/dto"
)

// MockVenueService is a mock implementation of VenueService
type MockVenueService struct {
	venues map[string]*domain.Venue
}

func NewMockVenueService() *MockVenueService {
	return &MockVenueService{venues: make(map[string]*domain.Venue)}
}

func (m *MockVenueService) CreateVenue(ctx context.Context, tenantID string, req *dto.CreateVenueRequest) (*domain.Venue, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, domain.NewConfigurationError("venue", msg)
	}
	now := time.Now()
	venue := &domain.Venue{
		ID:           "venue-new",
		TenantID:     tenantID,
		Name:         req.Name,
		VenueType:    domain.VenueType(req.VenueType),
		LayoutConfig: domain.DefaultLayoutConfig(),
		Sections:     req.Sections,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.venues[venue.ID] = venue
	return venue, nil
}

func (m *MockVenueService) GetVenueByID(ctx context.Context, id string) (*domain.Venue, error) {
	venue, ok := m.venues[id]
	if !ok {
		return nil, domain.ErrVenueNotFound
	}
	return venue, nil
}

func (m *MockVenueService) ListVenues(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Venue, int, error) {
	var venues []*domain.Venue
	for _, v := range m.venues {
		venues = append(venues, v)
	}
	return venues, len(venues), nil
}

func (m *MockVenueService) UpdateVenue(ctx context.Context, id string, req *dto.UpdateVenueRequest) (*domain.Venue, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, domain.NewConfigurationError("venue", msg)
	}
	venue, ok := m.venues[id]
	if !ok {
		return nil, domain.ErrVenueNotFound
	}
	if req.Name != "" {
		venue.Name = req.Name
	}
	return venue, nil
}

func (m *MockVenueService) UpdateSections(ctx context.Context, id string, req *dto.UpdateVenueSectionsRequest) (*domain.Venue, error) {
	sections, err := req.DecodeSections()
	if err != nil {
		return nil, err
	}
	venue, ok := m.venues[id]
	if !ok {
		return nil, domain.ErrVenueNotFound
	}
	venue.Sections = sections
	return venue, nil
}

func (m *MockVenueService) DeleteVenue(ctx context.Context, id string) error {
	if _, ok := m.venues[id]; !ok {
		return domain.ErrVenueNotFound
	}
	delete(m.venues, id)
	return nil
}

func (m *MockVenueService) AddVenue(venue *domain.Venue) {
	m.venues[venue.ID] = venue
}

func setupVenueRouter(h *VenueHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/venues", h.Create)
	r.GET("/venues", h.List)
	r.GET("/venues/:id", h.GetByID)
	r.PUT("/venues/:id", h.Update)
	r.PUT("/venues/:id/sections", h.UpdateSections)
	r.DELETE("/venues/:id", h.Delete)
	return r
}

func testVenue(id string) *domain.Venue {
	now := time.Now()
	return &domain.Venue{
		ID:           id,
		TenantID:     "tenant-1",
		Name:         "Test Hall",
		VenueType:    domain.VenueTypeTheater,
		LayoutConfig: domain.DefaultLayoutConfig(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestVenueHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid request",
			body:       `{"name":"Grand Theater","venue_type":"theater"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid json",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing name",
			body:       `{"venue_type":"theater"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := NewMockVenueService()
			router := setupVenueRouter(NewVenueHandler(mockService))

			req := httptest.NewRequest(http.MethodPost, "/venues", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.Code, tt.wantStatus)
			}
		})
	}
}

func TestVenueHandler_GetByID(t *testing.T) {
	mockService := NewMockVenueService()
	mockService.AddVenue(testVenue("venue-1"))
	router := setupVenueRouter(NewVenueHandler(mockService))

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{name: "existing venue", id: "venue-1", wantStatus: http.StatusOK},
		{name: "non-existent venue", id: "nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/venues/"+tt.id, nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				var body struct {
					Success bool              `json:"success"`
					Data    dto.VenueResponse `json:"data"`
				}
				if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				if !body.Success || body.Data.ID != tt.id {
					t.Errorf("unexpected body: %+v", body)
				}
			}
		})
	}
}

func TestVenueHandler_List(t *testing.T) {
	mockService := NewMockVenueService()
	mockService.AddVenue(testVenue("venue-1"))
	mockService.AddVenue(testVenue("venue-2"))
	router := setupVenueRouter(NewVenueHandler(mockService))

	req := httptest.NewRequest(http.MethodGet, "/venues?limit=10&offset=0", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}
	var body struct {
		Data dto.VenueListResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Data.Total != 2 {
		t.Errorf("total = %d, want 2", body.Data.Total)
	}
}

func TestVenueHandler_Update(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
	}{
		{
			name:       "valid update",
			id:         "venue-1",
			body:       `{"name":"Renamed"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty update",
			id:         "venue-1",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-existent venue",
			id:         "nope",
			body:       `{"name":"Renamed"}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := NewMockVenueService()
			mockService.AddVenue(testVenue("venue-1"))
			router := setupVenueRouter(NewVenueHandler(mockService))

			req := httptest.NewRequest(http.MethodPut, "/venues/"+tt.id, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.Code, tt.wantStatus)
			}
		})
	}
}

func TestVenueHandler_UpdateSections(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		wantStatus int
	}{
		{
			name:       "valid sections",
			id:         "venue-1",
			body:       `{"sections":[{"id":"sec-1","name":"Orchestra","shape":"rectangle","rows":4,"seats_per_row":12}]}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "sections not a list",
			id:         "venue-1",
			body:       `{"sections":{"name":"bad"}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing sections",
			id:         "venue-1",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-existent venue",
			id:         "nope",
			body:       `{"sections":[]}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := NewMockVenueService()
			mockService.AddVenue(testVenue("venue-1"))
			router := setupVenueRouter(NewVenueHandler(mockService))

			req := httptest.NewRequest(http.MethodPut, "/venues/"+tt.id+"/sections", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.Code, tt.wantStatus)
			}
		})
	}
}

func TestVenueHandler_Delete(t *testing.T) {
	mockService := NewMockVenueService()
	mockService.AddVenue(testVenue("venue-1"))
	router := setupVenueRouter(NewVenueHandler(mockService))

	req := httptest.NewRequest(http.MethodDelete, "/venues/venue-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/venues/venue-1", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.Code)
	}
}
