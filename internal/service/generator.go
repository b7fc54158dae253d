package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/seatforge/seatmap-service/internal/domain"
	"github.com/seatforge/seatmap-service/internal/dto"
	"github.com/seatforge/seatmap-service/internal/geometry"
	"github.com/seatforge/seatmap-service/internal/layout"
	"github.com/seatforge/seatmap-service/internal/naming"
)

// defaultSeatsPerRow applies when neither the request nor a manual
// section constrains row width.
const defaultSeatsPerRow = 10

// defaultCurrency for generated pricing when the request omits one
const defaultCurrency = "USD"

// sectionBuild pairs a resolved section plan with the engine and pricing
// that will realize it.
type sectionBuild struct {
	plan      layout.SectionPlan
	engine    layout.Engine
	params    layout.Params
	basePrice int64
	isZone    bool
}

// generationPlan is everything needed to emit places deterministically
type generationPlan struct {
	builds    []sectionBuild
	algorithm domain.LayoutAlgorithm
	warnings  []string
}

// buildGenerationPlan is the single decision point for the
// manual-sections-override policy: a venue with one or more configured
// sections ignores the request's layout algorithm, layout config and
// section naming entirely, and total capacity is derived from the
// sections themselves. Only venues without sections use auto-partition.
func buildGenerationPlan(venue *domain.Venue, req *dto.GenerateManifestRequest) (*generationPlan, error) {
	if venue.HasManualSections() {
		return planFromManualSections(venue, req.BasePrice)
	}
	return planFromRequest(venue, req)
}

// planFromManualSections lays out the venue's configured sections in
// their canonical order, one engine per section shape.
func planFromManualSections(venue *domain.Venue, basePrice int64) (*generationPlan, error) {
	spacing := venue.LayoutConfig
	plan := &generationPlan{algorithm: domain.LayoutAlgorithmSections}

	offsetX := 0.0
	radialOffset := 0.0
	for i, section := range venue.Sections {
		capacity := section.EffectiveCapacity()
		if capacity <= 0 {
			return nil, &domain.CapacityMismatchError{SectionName: section.Name}
		}

		engine, err := layout.ForShape(section.Shape)
		if err != nil {
			return nil, err
		}

		sp := layout.SectionPlan{
			Index:       i,
			Name:        section.Name,
			Shape:       section.Shape,
			RowConfig:   section.RowConfig,
			Capacity:    capacity,
			Rows:        section.Rows,
			SeatsPerRow: section.SeatsPerRow,
		}
		// capacity-only rectangle sections fall back to uniform rows
		if len(sp.RowConfig) == 0 && sp.SeatsPerRow <= 0 {
			sp.SeatsPerRow = defaultSeatsPerRow
		}
		if len(sp.RowConfig) == 0 && sp.Rows <= 0 {
			sp.Rows = int(math.Ceil(float64(capacity) / float64(sp.SeatsPerRow)))
		}

		params := layout.Params{
			SeatSpacing: spacing.SeatSpacing,
			RowSpacing:  spacing.RowSpacing,
			BaseRadius:  10, // manual curved sections share a default radius band
		}
		switch section.Shape {
		case domain.SectionShapeCurved:
			params.OffsetY = radialOffset
			radialOffset += float64(rowCountOf(sp))*spacing.RowSpacing + spacing.SectionSpacing
		default:
			params.OffsetX = offsetX
			width := geometry.GridWidth(sp.SeatsPerRow, spacing.SeatSpacing)
			offsetX += width + spacing.SectionSpacing
		}

		price := basePrice
		if section.BasePrice != nil {
			price = *section.BasePrice
		}
		plan.builds = append(plan.builds, sectionBuild{
			plan:      sp,
			engine:    engine,
			params:    params,
			basePrice: price,
			isZone:    section.Shape == domain.SectionShapeZone,
		})
	}
	return plan, nil
}

// planFromRequest auto-partitions totalPlaces across synthetic sections
// named by the request's naming pattern.
func planFromRequest(venue *domain.Venue, req *dto.GenerateManifestRequest) (*generationPlan, error) {
	cfg := req.LayoutConfig
	if cfg.Sections <= 0 {
		return nil, domain.NewConfigurationError("layout_config.sections", "at least one section is required")
	}
	if req.TotalPlaces <= 0 {
		return nil, domain.NewConfigurationError("total_places", "must be positive")
	}

	seatSpacing := cfg.SeatSpacing
	rowSpacing := cfg.RowSpacing
	sectionSpacing := venue.LayoutConfig.SectionSpacing
	if seatSpacing == 0 {
		seatSpacing = venue.LayoutConfig.SeatSpacing
	}
	if rowSpacing == 0 {
		rowSpacing = venue.LayoutConfig.RowSpacing
	}
	if seatSpacing <= 0 {
		return nil, domain.NewConfigurationError("layout_config.seat_spacing", "must be positive")
	}
	if rowSpacing <= 0 {
		return nil, domain.NewConfigurationError("layout_config.row_spacing", "must be positive")
	}

	seatsPerRow := cfg.SeatsPerRow
	if seatsPerRow <= 0 {
		seatsPerRow = defaultSeatsPerRow
	}

	algorithm := domain.LayoutAlgorithm(req.LayoutAlgorithm)
	if algorithm == "" {
		algorithm = domain.LayoutAlgorithmGrid
	}
	engine, err := layout.ForAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}

	namer, err := naming.NewSectionNamer(naming.SectionPattern(req.SectionNaming.Pattern), req.SectionNaming.CustomNames)
	if err != nil {
		return nil, err
	}

	plan := &generationPlan{algorithm: algorithm}

	if algorithm == domain.LayoutAlgorithmGeneral {
		return planGeneralAdmission(plan, req, namer, engine, sectionSpacing)
	}

	// Closest-fit partition: floor places per section, then round rows
	// up so every partial row is still complete. The achieved capacity
	// can exceed the request; that is reported, never silently fixed.
	seatsPerSection := req.TotalPlaces / cfg.Sections
	rowsPerSection := int(math.Ceil(float64(seatsPerSection) / float64(seatsPerRow)))
	if rowsPerSection < 1 {
		rowsPerSection = 1
	}
	achieved := rowsPerSection * seatsPerRow * cfg.Sections
	if achieved != req.TotalPlaces {
		plan.warnings = append(plan.warnings, domain.CapacityWarning{
			Declared: req.TotalPlaces,
			Achieved: achieved,
		}.String())
	}

	sectionWidth := cfg.SectionWidth
	if sectionWidth <= 0 {
		sectionWidth = geometry.GridWidth(seatsPerRow, seatSpacing)
	}

	for i := 0; i < cfg.Sections; i++ {
		name, err := namer.Name(i)
		if err != nil {
			return nil, err
		}
		params := layout.Params{
			SeatSpacing: seatSpacing,
			RowSpacing:  rowSpacing,
			CenterX:     cfg.CenterX,
			CenterY:     cfg.CenterY,
			BaseRadius:  cfg.BaseRadius,
			TotalRows:   cfg.TotalRows,
		}
		switch algorithm {
		case domain.LayoutAlgorithmCurved:
			// curved sections stack radially so concentric bands never overlap
			params.OffsetY = float64(i) * (float64(rowsPerSection)*rowSpacing + sectionSpacing)
		default:
			params.OffsetX = geometry.SectionOffsetX(i, sectionWidth, sectionSpacing)
		}
		plan.builds = append(plan.builds, sectionBuild{
			plan: layout.SectionPlan{
				Index:       i,
				Name:        name,
				Rows:        rowsPerSection,
				SeatsPerRow: seatsPerRow,
				Capacity:    rowsPerSection * seatsPerRow,
			},
			engine:    engine,
			params:    params,
			basePrice: req.BasePrice,
		})
	}
	return plan, nil
}

// planGeneralAdmission partitions totalPlaces exactly: zones have no row
// constraint, so the remainder spreads over the leading zones.
func planGeneralAdmission(plan *generationPlan, req *dto.GenerateManifestRequest, namer naming.SectionNamer, engine layout.Engine, sectionSpacing float64) (*generationPlan, error) {
	cfg := req.LayoutConfig
	per := req.TotalPlaces / cfg.Sections
	remainder := req.TotalPlaces % cfg.Sections

	width := cfg.SectionWidth
	if width <= 0 {
		width = 1
	}

	for i := 0; i < cfg.Sections; i++ {
		name, err := namer.Name(i)
		if err != nil {
			return nil, err
		}
		capacity := per
		if i < remainder {
			capacity++
		}
		plan.builds = append(plan.builds, sectionBuild{
			plan: layout.SectionPlan{
				Index:    i,
				Name:     name,
				Shape:    domain.SectionShapeZone,
				Capacity: capacity,
			},
			engine: engine,
			params: layout.Params{
				CenterX: cfg.CenterX,
				CenterY: cfg.CenterY,
				OffsetX: geometry.SectionOffsetX(i, width, sectionSpacing),
			},
			basePrice: req.BasePrice,
			isZone:    true,
		})
	}
	return plan, nil
}

// emitPlaces runs every section's engine and assigns identifiers and
// pricing. The sequential counter is global across the whole manifest
// and strictly increasing from 1.
func emitPlaces(plan *generationPlan, req *dto.GenerateManifestRequest) ([]domain.Place, error) {
	pattern := naming.PlaceIDPattern(req.PlaceGeneration.Pattern)
	idGen, err := naming.NewPlaceIDGenerator(pattern, req.PlaceGeneration.Prefix)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	var places []domain.Place
	sequential := 0
	seen := make(map[string]struct{})
	for _, build := range plan.builds {
		seats, err := build.engine.Layout(build.plan, build.params)
		if err != nil {
			return nil, err
		}
		for _, seat := range seats {
			sequential++
			// Grid tokens decode from the right, which is only sound
			// while row and seat labels stay free of the separator.
			if pattern == naming.PlaceIDPatternGrid && (strings.Contains(seat.Row, "-") || strings.Contains(seat.Seat, "-")) {
				return nil, domain.NewConfigurationError("place_generation.pattern",
					fmt.Sprintf("row label %q in section %q contains %q, which grid place ids reserve as a separator", seat.Row, build.plan.Name, "-"))
			}
			placeID := idGen.Next(build.plan.Name, seat.Row, seat.Seat, sequential)
			if _, dup := seen[placeID]; dup {
				return nil, domain.NewConfigurationError("place_generation",
					fmt.Sprintf("duplicate place id %q generated for section %q; section names must be unique", placeID, build.plan.Name))
			}
			seen[placeID] = struct{}{}

			place := domain.Place{
				PlaceID: placeID,
				X:       seat.Pos.X,
				Y:       seat.Pos.Y,
				Section: build.plan.Name,
				Row:     seat.Row,
				Seat:    seat.Seat,
				Pricing: domain.Pricing{
					BasePrice:    build.basePrice,
					CurrentPrice: build.basePrice,
					Currency:     currency,
				},
				Available: true,
				Status:    domain.PlaceStatusAvailable,
			}
			if build.isZone {
				place.Zone = build.plan.Name
			}
			places = append(places, place)
		}
	}
	return places, nil
}

func rowCountOf(plan layout.SectionPlan) int {
	if len(plan.RowConfig) > 0 {
		return len(plan.RowConfig)
	}
	return plan.Rows
}
