package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/seatforge/seatmap-service/internal/domain"
	"github.com/seatforge/seatmap-service/internal/dto"
	"github.com/seatforge/seatmap-service/internal/service"
	"github.com/seatforge/seatmap-service/pkg/response"
	"github.com/seatforge/seatmap-service/pkg/telemetry"
)

// ManifestHandler handles manifest-related HTTP requests
type ManifestHandler struct {
	manifestService service.ManifestService
	syncer          service.ManifestSyncer
}

// NewManifestHandler creates a new ManifestHandler
func NewManifestHandler(manifestService service.ManifestService, syncer service.ManifestSyncer) *ManifestHandler {
	return &ManifestHandler{
		manifestService: manifestService,
		syncer:          syncer,
	}
}

// Generate handles POST /manifests/generate - builds a manifest for a venue
func (h *ManifestHandler) Generate(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.manifest.Generate")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.GenerateManifestRequest
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

	span.SetAttributes(attribute.String("venue_id", req.VenueID))

	result, err := h.manifestService.Generate(ctx, &req)
	if err != nil {
		h.writeGenerationError(c, span, err)
		return
	}

	span.SetAttributes(
		attribute.String("manifest_id", result.Manifest.ID),
		attribute.Int("place_count", len(result.Manifest.Places)),
	)
	span.SetStatus(codes.Ok, "")
	response.Created(c, toManifestResponse(result.Manifest, result.Warnings))
}

// GetByID handles GET /manifests/:id - retrieves a manifest by ID
func (h *ManifestHandler) GetByID(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.manifest.GetByID")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id := c.Param("id")
	span.SetAttributes(attribute.String("manifest_id", id))

	if id == "" {
		span.RecordError(errors.New("manifest ID is required"))
		span.SetStatus(codes.Error, "Manifest ID is required")
		response.BadRequest(c, "Manifest ID is required")
		return
	}

	manifest, err := h.manifestService.GetManifestByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrManifestNotFound) {
			span.SetStatus(codes.Error, "Manifest not found")
			response.NotFound(c, "Manifest not found")
			return
		}
		span.SetStatus(codes.Error, "Failed to get manifest")
		response.InternalError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Success(c, toManifestResponse(manifest, nil))
}

// ListByVenue handles GET /venues/:id/manifests - lists manifests for a venue
func (h *ManifestHandler) ListByVenue(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.manifest.ListByVenue")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	venueID := c.Param("id")
	span.SetAttributes(attribute.String("venue_id", venueID))

	if venueID == "" {
		span.RecordError(errors.New("venue ID is required"))
		span.SetStatus(codes.Error, "Venue ID is required")
		response.BadRequest(c, "Venue ID is required")
		return
	}

	manifests, err := h.manifestService.ListManifestsByVenue(ctx, venueID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrVenueNotFound) {
			span.SetStatus(codes.Error, "Venue not found")
			response.NotFound(c, "Venue not found")
			return
		}
		span.SetStatus(codes.Error, "Failed to list manifests")
		response.InternalError(c, err)
		return
	}

	resp := make([]*dto.ManifestResponse, len(manifests))
	for i, m := range manifests {
		resp[i] = toManifestResponse(m, nil)
	}

	span.SetAttributes(attribute.Int("manifest_count", len(manifests)))
	span.SetStatus(codes.Ok, "")
	response.Success(c, resp)
}

// Regenerate handles POST /manifests/:id/regenerate - rebuilds a manifest
// under an optimistic version check
func (h *ManifestHandler) Regenerate(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.manifest.Regenerate")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id := c.Param("id")
	span.SetAttributes(attribute.String("manifest_id", id))

	if id == "" {
		span.RecordError(errors.New("manifest ID is required"))
		span.SetStatus(codes.Error, "Manifest ID is required")
		response.BadRequest(c, "Manifest ID is required")
		return
	}

	var req dto.RegenerateManifestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		response.BadRequest(c, "Invalid request body")
		return
	}

	span.SetAttributes(attribute.Int("expected_version", req.ExpectedVersion))

	result, err := h.manifestService.Regenerate(ctx, id, &req)
	if err != nil {
		if errors.Is(err, domain.ErrManifestNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Manifest not found")
			response.NotFound(c, "Manifest not found")
			return
		}
		if errors.Is(err, domain.ErrVersionConflict) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Version conflict")
			response.Conflict(c, "Manifest was modified concurrently, refetch and retry")
			return
		}
		h.writeGenerationError(c, span, err)
		return
	}

	span.SetAttributes(attribute.Int("new_version", result.Manifest.Version))
	span.SetStatus(codes.Ok, "")
	response.Success(c, toManifestResponse(result.Manifest, result.Warnings))
}

// Delete handles DELETE /manifests/:id - permanently removes a manifest
func (h *ManifestHandler) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.manifest.Delete")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id := c.Param("id")
	span.SetAttributes(attribute.String("manifest_id", id))

	if id == "" {
		span.RecordError(errors.New("manifest ID is required"))
		span.SetStatus(codes.Error, "Manifest ID is required")
		response.BadRequest(c, "Manifest ID is required")
		return
	}

	if err := h.manifestService.DeleteManifest(ctx, id); err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrManifestNotFound) {
			span.SetStatus(codes.Error, "Manifest not found")
			response.NotFound(c, "Manifest not found")
			return
		}
		span.SetStatus(codes.Error, "Failed to delete manifest")
		response.InternalError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Success(c, map[string]string{"message": "Manifest deleted successfully"})
}

// UpsertPlace handles PUT /manifests/:id/places/:placeId - adds or updates
// a single place without touching the manifest version
func (h *ManifestHandler) UpsertPlace(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.manifest.UpsertPlace")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	manifestID := c.Param("id")
	placeID := c.Param("placeId")
	span.SetAttributes(
		attribute.String("manifest_id", manifestID),
		attribute.String("place_id", placeID),
	)

	if manifestID == "" || placeID == "" {
		span.RecordError(errors.New("manifest ID and place ID are required"))
		span.SetStatus(codes.Error, "Manifest ID and place ID are required")
		response.BadRequest(c, "Manifest ID and place ID are required")
		return
	}

	var req dto.UpsertPlaceRequest
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

	place, err := h.manifestService.UpsertPlace(ctx, manifestID, placeID, &req)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrManifestNotFound) {
			span.SetStatus(codes.Error, "Manifest not found")
			response.NotFound(c, "Manifest not found")
			return
		}
		span.SetStatus(codes.Error, "Failed to save place")
		response.InternalError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Success(c, toPlaceResponse(*place))
}

// DeletePlace handles DELETE /manifests/:id/places/:placeId - removes a
// single place from a manifest
func (h *ManifestHandler) DeletePlace(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.manifest.DeletePlace")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	manifestID := c.Param("id")
	placeID := c.Param("placeId")
	span.SetAttributes(
		attribute.String("manifest_id", manifestID),
		attribute.String("place_id", placeID),
	)

	if manifestID == "" || placeID == "" {
		span.RecordError(errors.New("manifest ID and place ID are required"))
		span.SetStatus(codes.Error, "Manifest ID and place ID are required")
		response.BadRequest(c, "Manifest ID and place ID are required")
		return
	}

	if err := h.manifestService.DeletePlace(ctx, manifestID, placeID); err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrManifestNotFound) {
			span.SetStatus(codes.Error, "Manifest not found")
			response.NotFound(c, "Manifest not found")
			return
		}
		if errors.Is(err, domain.ErrPlaceNotFound) {
			span.SetStatus(codes.Error, "Place not found")
			response.NotFound(c, "Place not found")
			return
		}
		span.SetStatus(codes.Error, "Failed to delete place")
		response.InternalError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Success(c, map[string]string{"message": "Place deleted successfully"})
}

// Sync handles POST /manifests/:id/sync - pushes the manifest snapshot to
// the merchant pipeline
func (h *ManifestHandler) Sync(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.manifest.Sync")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	id := c.Param("id")
	span.SetAttributes(attribute.String("manifest_id", id))

	if id == "" {
		span.RecordError(errors.New("manifest ID is required"))
		span.SetStatus(codes.Error, "Manifest ID is required")
		response.BadRequest(c, "Manifest ID is required")
		return
	}

	if err := h.syncer.SyncManifest(ctx, id); err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrManifestNotFound) {
			span.SetStatus(codes.Error, "Manifest not found")
			response.NotFound(c, "Manifest not found")
			return
		}
		if errors.Is(err, domain.ErrSyncFailed) {
			span.SetStatus(codes.Error, "Sync failed")
			response.BadGateway(c, "Manifest sync failed, local state unchanged")
			return
		}
		span.SetStatus(codes.Error, "Failed to sync manifest")
		response.InternalError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	response.Success(c, map[string]string{"message": "Manifest synced successfully"})
}

// writeGenerationError maps generation failures onto HTTP statuses
func (h *ManifestHandler) writeGenerationError(c *gin.Context, span trace.Span, err error) {
	span.RecordError(err)

	var capErr *domain.CapacityMismatchError
	if domain.IsConfigurationError(err) || errors.As(err, &capErr) {
		span.SetStatus(codes.Error, err.Error())
		response.BadRequest(c, err.Error())
		return
	}
	if errors.Is(err, domain.ErrVenueNotFound) {
		span.SetStatus(codes.Error, "Venue not found")
		response.NotFound(c, "Venue not found")
		return
	}
	span.SetStatus(codes.Error, "Failed to generate manifest")
	response.InternalError(c, err)
}

// toManifestResponse converts a domain manifest to response DTO
func toManifestResponse(m *domain.Manifest, warnings []string) *dto.ManifestResponse {
	places := make([]*dto.PlaceResponse, len(m.Places))
	for i, p := range m.Places {
		places[i] = toPlaceResponse(p)
	}
	return &dto.ManifestResponse{
		ID:               m.ID,
		VenueID:          m.VenueID,
		EventID:          m.EventID,
		Version:          m.Version,
		LayoutAlgorithm:  string(m.LayoutAlgorithm),
		CoordinateSource: string(m.CoordinateSource),
		Places:           places,
		Warnings:         warnings,
		CreatedAt:        m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:        m.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// toPlaceResponse converts a domain place to response DTO
func toPlaceResponse(p domain.Place) *dto.PlaceResponse {
	return &dto.PlaceResponse{
		PlaceID: p.PlaceID,
		X:       p.X,
		Y:       p.Y,
		Section: p.Section,
		Row:     p.Row,
		Seat:    p.Seat,
		Zone:    p.Zone,
		Pricing: dto.PricingResponse{
			BasePrice:    p.Pricing.BasePrice,
			CurrentPrice: p.Pricing.CurrentPrice,
			Currency:     p.Pricing.Currency,
		},
		Available: p.Available,
		Status:    string(p.Status),
		Tags:      p.Tags,
	}
}
