// Package floorplan computes a simple deterministic 2D layout of tables,
// stage and exits for a venue, used by the frontend to render a preview of
// the event space. All dimensions are meters; the origin is the venue's
// top-left corner.
package floorplan

import (
	"fmt"
	"math"
)

// Seating styles supported by the layout calculator.
const (
	StyleBanquet   = "banquet"
	StyleTheater   = "theater"
	StyleClassroom = "classroom"
)

// Request describes the venue and audience to lay out.
type Request struct {
	VenueWidth    float64 `json:"venueWidth"`
	VenueLength   float64 `json:"venueLength"`
	AttendeeCount int     `json:"attendeeCount"`
	SeatingStyle  string  `json:"seatingStyle"`
	IncludeStage  bool    `json:"includeStage"`
}

// Element is one placed item on the floor plan.
type Element struct {
	Type     string  `json:"type"` // "table", "chairRow", "stage", "exit"
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Capacity int     `json:"capacity,omitempty"`
}

// Plan is the computed layout.
type Plan struct {
	VenueWidth  float64   `json:"venueWidth"`
	VenueLength float64   `json:"venueLength"`
	Elements    []Element `json:"elements"`
	Seats       int       `json:"seats"`
}

// wallMargin keeps furniture off the walls; fire code clearance.
const wallMargin = 1.5

// seatingSpec is the per-style furniture unit.
type seatingSpec struct {
	unitWidth  float64
	unitHeight float64
	spacing    float64
	seats      int
	elemType   string
}

var styleSpecs = map[string]seatingSpec{
	StyleBanquet:   {unitWidth: 1.8, unitHeight: 1.8, spacing: 3.0, seats: 10, elemType: "table"},
	StyleTheater:   {unitWidth: 4.0, unitHeight: 0.5, spacing: 1.0, seats: 8, elemType: "chairRow"},
	StyleClassroom: {unitWidth: 1.8, unitHeight: 0.6, spacing: 1.5, seats: 2, elemType: "table"},
}

// Generate computes the layout for the request. It is fully deterministic:
// the same request always yields the same plan.
func Generate(req Request) (*Plan, error) {
	if req.VenueWidth <= 0 || req.VenueLength <= 0 {
		return nil, fmt.Errorf("venue dimensions must be positive, got %.1fx%.1f", req.VenueWidth, req.VenueLength)
	}
	if req.AttendeeCount <= 0 {
		return nil, fmt.Errorf("attendee count must be positive, got %d", req.AttendeeCount)
	}

	spec, ok := styleSpecs[req.SeatingStyle]
	if !ok {
		return nil, fmt.Errorf("unknown seating style %q", req.SeatingStyle)
	}

	plan := &Plan{VenueWidth: req.VenueWidth, VenueLength: req.VenueLength}

	top := wallMargin
	if req.IncludeStage {
		stageWidth := math.Min(req.VenueWidth/3, 8)
		stage := Element{
			Type:   "stage",
			X:      (req.VenueWidth - stageWidth) / 2,
			Y:      wallMargin,
			Width:  stageWidth,
			Height: 3,
		}
		plan.Elements = append(plan.Elements, stage)
		top = stage.Y + stage.Height + 2 // aisle in front of the stage
	}

	usableWidth := req.VenueWidth - 2*wallMargin
	usableLength := req.VenueLength - top - wallMargin

	cellW := spec.unitWidth + spec.spacing
	cellH := spec.unitHeight + spec.spacing
	cols := int(usableWidth / cellW)
	maxRows := int(usableLength / cellH)
	if cols < 1 || maxRows < 1 {
		return nil, fmt.Errorf("venue %.1fx%.1f too small for %s seating", req.VenueWidth, req.VenueLength, req.SeatingStyle)
	}

	unitsNeeded := (req.AttendeeCount + spec.seats - 1) / spec.seats
	if unitsNeeded > cols*maxRows {
		return nil, fmt.Errorf("venue fits %d %s seats, need %d", cols*maxRows*spec.seats, req.SeatingStyle, req.AttendeeCount)
	}

	placed := 0
	for row := 0; row < maxRows && placed < unitsNeeded; row++ {
		for col := 0; col < cols && placed < unitsNeeded; col++ {
			plan.Elements = append(plan.Elements, Element{
				Type:     spec.elemType,
				X:        wallMargin + float64(col)*cellW,
				Y:        top + float64(row)*cellH,
				Width:    spec.unitWidth,
				Height:   spec.unitHeight,
				Capacity: spec.seats,
			})
			placed++
		}
	}
	plan.Seats = placed * spec.seats

	// Two exits: main entrance bottom-center, emergency exit mid-right.
	plan.Elements = append(plan.Elements,
		Element{Type: "exit", X: req.VenueWidth/2 - 1, Y: req.VenueLength - 0.2, Width: 2, Height: 0.2},
		Element{Type: "exit", X: req.VenueWidth - 0.2, Y: req.VenueLength/2 - 1, Width: 0.2, Height: 2},
	)

	return plan, nil
}
