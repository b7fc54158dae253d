// Package editor holds the seat selection and filter engine: an explicit,
// render-free state machine over a manifest's places. All transitions are
// pure with respect to the manifest itself; the only side effects are the
// single repository call issued per save or delete.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/seatforge/seatmap-service/internal/domain"
)

// State is the editing lifecycle of a session
type State string

const (
	StateIdle      State = "idle"
	StateFiltering State = "filtering"
	StateEditing   State = "editing"
	StateSyncing   State = "syncing"
)

// Session errors
var (
	ErrEditInProgress = errors.New("another place edit is in progress")
	ErrNoEditActive   = errors.New("no place edit is active")
)

// PlaceWriter is the slice of the repository contract the editor needs.
// One upsert or delete call is issued per committed edit, never more.
type PlaceWriter interface {
	UpsertPlace(ctx context.Context, manifestID string, place domain.Place) error
	DeletePlace(ctx context.Context, manifestID, placeID string) error
}

// Session tracks filter parameters, the view transform, the selection set,
// and at most one in-flight place edit for a single manifest. It is not
// safe for concurrent use; each client session owns one instance.
type Session struct {
	manifestID string
	writer     PlaceWriter

	state     State
	editingID string
	lastErr   error

	filter    Filter
	viewport  Viewport
	selection map[string]struct{}
}

// NewSession creates an idle session for a manifest
func NewSession(manifestID string, writer PlaceWriter) *Session {
	return &Session{
		manifestID: manifestID,
		writer:     writer,
		state:      StateIdle,
		filter:     DefaultFilter(),
		viewport:   DefaultViewport(),
		selection:  make(map[string]struct{}),
	}
}

// State returns the current lifecycle state
func (s *Session) State() State { return s.state }

// EditingPlaceID returns the place under edit, or "" when none is
func (s *Session) EditingPlaceID() string { return s.editingID }

// LastError returns the error surfaced by the most recent failed sync
func (s *Session) LastError() error { return s.lastErr }

// StartEdit activates a seat for editing. Only one place may be under edit
// at a time; this is what keeps two in-flight edits from targeting the same
// manifest from one session.
func (s *Session) StartEdit(placeID string) error {
	if s.state == StateEditing || s.state == StateSyncing {
		return fmt.Errorf("%w: %s", ErrEditInProgress, s.editingID)
	}
	s.state = StateEditing
	s.editingID = placeID
	s.lastErr = nil
	return nil
}

// Abandon drops the active edit without issuing any repository call,
// leaving the manifest unmodified.
func (s *Session) Abandon() {
	if s.state != StateEditing {
		return
	}
	s.toIdle()
}

// Save commits the active edit with exactly one upsert call. The local
// state is never mutated optimistically: on failure the session returns to
// editing with the error attached for redisplay.
func (s *Session) Save(ctx context.Context, place domain.Place) error {
	if s.state != StateEditing {
		return ErrNoEditActive
	}
	s.state = StateSyncing
	if err := s.writer.UpsertPlace(ctx, s.manifestID, place); err != nil {
		s.state = StateEditing
		s.lastErr = err
		return err
	}
	s.toIdle()
	return nil
}

// Delete commits the active edit as a single delete call. Failure behaves
// like Save: back to editing with the error attached.
func (s *Session) Delete(ctx context.Context) error {
	if s.state != StateEditing {
		return ErrNoEditActive
	}
	s.state = StateSyncing
	if err := s.writer.DeletePlace(ctx, s.manifestID, s.editingID); err != nil {
		s.state = StateEditing
		s.lastErr = err
		return err
	}
	s.toIdle()
	return nil
}

func (s *Session) toIdle() {
	s.editingID = ""
	s.lastErr = nil
	if s.filter.Active() {
		s.state = StateFiltering
	} else {
		s.state = StateIdle
	}
}

// SetFilter replaces the filter parameters. Filtering is independent of
// any in-flight edit, so the lifecycle state only moves between idle and
// filtering when no edit is active.
func (s *Session) SetFilter(f Filter) {
	s.filter = f
	if s.state == StateIdle || s.state == StateFiltering {
		if s.filter.Active() {
			s.state = StateFiltering
		} else {
			s.state = StateIdle
		}
	}
}

// Filter returns the current filter parameters
func (s *Session) Filter() Filter { return s.filter }

// VisiblePlaces applies the filter predicate to the manifest's place
// sequence, preserving order.
func (s *Session) VisiblePlaces(places []domain.Place) []domain.Place {
	return s.filter.Apply(places)
}

// Select adds a place to the selection set
func (s *Session) Select(placeID string) {
	s.selection[placeID] = struct{}{}
}

// Deselect removes a place from the selection set
func (s *Session) Deselect(placeID string) {
	delete(s.selection, placeID)
}

// Selected reports whether a place is in the selection set
func (s *Session) Selected(placeID string) bool {
	_, ok := s.selection[placeID]
	return ok
}

// SelectionCount returns the size of the selection set
func (s *Session) SelectionCount() int { return len(s.selection) }

// Viewport returns the current view transform
func (s *Session) Viewport() Viewport { return s.viewport }

// Zoom sets the zoom factor, clamped to the allowed range
func (s *Session) Zoom(factor float64) {
	s.viewport.Zoom = clampZoom(factor)
}

// Pan moves the viewport by dx, dy
func (s *Session) Pan(dx, dy float64) {
	s.viewport.PanX += dx
	s.viewport.PanY += dy
}

// ResetView restores the identity view transform and clears the selection
// set in one action.
func (s *Session) ResetView() {
	s.viewport = DefaultViewport()
	s.selection = make(map[string]struct{})
}
