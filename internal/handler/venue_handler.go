package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/seatforge/seatmap-service/internal/domain"
	"github.com/seatforge/seatmap-service/internal/dto"
	"github.com/seatforge/seatmap-service/internal/service"
	"github.com/seatforge/seatmap-service/pkg/middleware"
	"github.com/seatforge/seatmap-service/pkg/response"
	"github.com/seatforge/seatmap-service/pkg/telemetry"
)

// VenueHandler handles venue-related HTTP requests
type VenueHandler struct {
	venueService service.VenueService
}

// NewVenueHandler creates a new VenueHandler
func NewVenueHandler(venueService service.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

// Create handles POST /venues - creates a new venue
func (h *VenueHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.Create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		response.BadRequest(c, "Invalid request body")
		return
	}

	if valid, msg := req.Validate(); !valid {
		span.RecordError(errors.New(msg))
		span.SetStatus(codes.Error, msg)
		response.BadRequest(c, msg)
		return
	}

	tenantID := requestTenantID(c)
	span.SetAttributes(attribute.String("tenant_id", tenantID))

	venue, err := h.venueService.CreateVenue(ctx, tenantID, &req)
	if err != nil {
		span.RecordError(err)
		if domain.IsConfigurationError(err) {
			span.SetStatus(codes.Error, err.Error())
			response.BadRequest(c, err.Error())
			return
		}
		span.SetStatus(codes.Error, "Failed to create venue")
		response.InternalError(c, err)
		return
	}

	span.SetAttributes(attribute.String("venue_id", venue.ID))
	span.SetStatus(codes.Ok, "")
	response.Created(c, toVenueResponse(venue))
}

// GetByID handles GET /venues/:id - retrieves a venue by ID
func (h *VenueHandler) GetByID(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.GetByID")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id := c.Param("id")
	span.SetAttributes(attribute.String("venue_id", id))

	if id == "" {
		span.RecordError(errors.New("venue ID is required"))
		span.SetStatus(codes.Error, "Venue ID is required")
		response.BadRequest(c, "Venue ID is required")
		return
	}

	venue, err := h.venueService.GetVenueByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrVenueNotFound) {
			span.SetStatus(codes.Error, "Venue not found")
			response.NotFound(c, "Venue not found")
			return
		}
		span.SetStatus(codes.Error, "Failed to get venue")
		response.InternalError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Success(c, toVenueResponse(venue))
}

// List handles GET /venues - lists the tenant's venues
func (h *VenueHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.List")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	tenantID := requestTenantID(c)
	span.SetAttributes(attribute.String("tenant_id", tenantID))

	venues, total, err := h.venueService.ListVenues(ctx, tenantID, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list venues")
		response.InternalError(c, err)
		return
	}

	resp := &dto.VenueListResponse{
		Venues: make([]*dto.VenueResponse, len(venues)),
		Total:  total,
	}
	for i, venue := range venues {
		resp.Venues[i] = toVenueResponse(venue)
	}

	span.SetAttributes(attribute.Int("venue_count", len(venues)))
	span.SetStatus(codes.Ok, "")
	response.Success(c, resp)
}

// Update handles PUT /venues/:id - updates a venue
func (h *VenueHandler) Update(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.Update")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id := c.Param("id")
	span.SetAttributes(attribute.String("venue_id", id))

	if id == "" {
		span.RecordError(errors.New("venue ID is required"))
		span.SetStatus(codes.Error, "Venue ID is required")
		response.BadRequest(c, "Venue ID is required")
		return
	}

	var req dto.UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		response.BadRequest(c, "Invalid request body")
		return
	}

	if valid, msg := req.Validate(); !valid {
		span.RecordError(errors.New(msg))
		span.SetStatus(codes.Error, msg)
		response.BadRequest(c, msg)
		return
	}

	venue, err := h.venueService.UpdateVenue(ctx, id, &req)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrVenueNotFound) {
			span.SetStatus(codes.Error, "Venue not found")
			response.NotFound(c, "Venue not found")
			return
		}
		span.SetStatus(codes.Error, "Failed to update venue")
		response.InternalError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Success(c, toVenueResponse(venue))
}

// UpdateSections handles PUT /venues/:id/sections - replaces the venue's
// section list
func (h *VenueHandler) UpdateSections(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.UpdateSections")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id := c.Param("id")
	span.SetAttributes(attribute.String("venue_id", id))

	if id == "" {
		span.RecordError(errors.New("venue ID is required"))
		span.SetStatus(codes.Error, "Venue ID is required")
		response.BadRequest(c, "Venue ID is required")
		return
	}

	var req dto.UpdateVenueSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		response.BadRequest(c, "Invalid request body")
		return
	}

	venue, err := h.venueService.UpdateSections(ctx, id, &req)
	if err != nil {
		span.RecordError(err)
		if domain.IsConfigurationError(err) {
			span.SetStatus(codes.Error, err.Error())
			response.BadRequest(c, err.Error())
			return
		}
		if errors.Is(err, domain.ErrVenueNotFound) {
			span.SetStatus(codes.Error, "Venue not found")
			response.NotFound(c, "Venue not found")
			return
		}
		span.SetStatus(codes.Error, "Failed to update sections")
		response.InternalError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("section_count", len(venue.Sections)))
	span.SetStatus(codes.Ok, "")
	response.Success(c, toVenueResponse(venue))
}

// Delete handles DELETE /venues/:id - soft deletes a venue
func (h *VenueHandler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.Delete")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id := c.Param("id")
	span.SetAttributes(attribute.String("venue_id", id))

	if id == "" {
		span.RecordError(errors.New("venue ID is required"))
		span.SetStatus(codes.Error, "Venue ID is required")
		response.BadRequest(c, "Venue ID is required")
		return
	}

	if err := h.venueService.DeleteVenue(ctx, id); err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrVenueNotFound) {
			span.SetStatus(codes.Error, "Venue not found")
			response.NotFound(c, "Venue not found")
			return
		}
		span.SetStatus(codes.Error, "Failed to delete venue")
		response.InternalError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Success(c, map[string]string{"message": "Venue deleted successfully"})
}

// requestTenantID resolves the tenant the request acts for. Falls back to
// the user ID for tokens without a tenant claim.
func requestTenantID(c *gin.Context) string {
	if tenantID, ok := middleware.GetTenantID(c); ok {
		return tenantID
	}
	if userID, ok := middleware.GetUserID(c); ok {
		return userID
	}
	return ""
}

// toVenueResponse converts a domain venue to response DTO
func toVenueResponse(venue *domain.Venue) *dto.VenueResponse {
	return &dto.VenueResponse{
		ID:            venue.ID,
		Name:          venue.Name,
		VenueType:     string(venue.VenueType),
		Dimensions:    venue.Dimensions,
		LayoutConfig:  venue.LayoutConfig,
		Sections:      venue.Sections,
		BackgroundSVG: venue.BackgroundSVG,
		CreatedAt:     venue.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     venue.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
