package editor

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/seatforge/seatmap-service/internal/domain"
)

// MockPlaceWriter is a mock implementation of PlaceWriter
type MockPlaceWriter struct {
	upserts []domain.Place
	deletes []string
	err     error
}

func (m *MockPlaceWriter) UpsertPlace(ctx context.Context, manifestID string, place domain.Place) error {
	if m.err != nil {
		return m.err
	}
	m.upserts = append(m.upserts, place)
	return nil
}

func (m *MockPlaceWriter) DeletePlace(ctx context.Context, manifestID, placeID string) error {
	if m.err != nil {
		return m.err
	}
	m.deletes = append(m.deletes, placeID)
	return nil
}

func testPlaces() []domain.Place {
	return []domain.Place{
		{PlaceID: "p1", Section: "A", Available: true, Pricing: domain.Pricing{BasePrice: 1000, CurrentPrice: 1000}},
		{PlaceID: "p2", Section: "A", Available: false, Pricing: domain.Pricing{BasePrice: 1000, CurrentPrice: 1500}},
		{PlaceID: "p3", Section: "B", Available: true, Pricing: domain.Pricing{BasePrice: 2000, CurrentPrice: 2000}},
		{PlaceID: "p4", Section: "B", Available: true, Pricing: domain.Pricing{BasePrice: 500}},
	}
}

func TestFilterPredicate(t *testing.T) {
	places := testPlaces()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "default filter keeps everything",
			filter: DefaultFilter(),
			want:   []string{"p1", "p2", "p3", "p4"},
		},
		{
			name:   "section filter",
			filter: Filter{SelectedSection: "A"},
			want:   []string{"p1", "p2"},
		},
		{
			name:   "available only",
			filter: Filter{ShowAvailableOnly: true},
			want:   []string{"p1", "p3", "p4"},
		},
		{
			name:   "price range uses effective price",
			filter: Filter{PriceMin: 1200, PriceMax: PriceCeiling(2000)},
			want:   []string{"p2", "p3"},
		},
		{
			name:   "zero current price falls back to base price",
			filter: Filter{PriceMin: 400, PriceMax: PriceCeiling(600)},
			want:   []string{"p4"},
		},
		{
			name:   "zero ceiling keeps only free places",
			filter: Filter{PriceMax: PriceCeiling(0)},
			want:   []string{},
		},
		{
			name:   "combined",
			filter: Filter{SelectedSection: "B", ShowAvailableOnly: true, PriceMin: 1000},
			want:   []string{"p3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(places)
			ids := make([]string, len(got))
			for i, p := range got {
				ids[i] = p.PlaceID
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("Apply() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestFilterIdempotence(t *testing.T) {
	places := testPlaces()
	f := Filter{SelectedSection: "A", ShowAvailableOnly: true}

	once := f.Apply(places)
	twice := f.Apply(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter is not idempotent: %v vs %v", once, twice)
	}
}

func TestFilterWideningReturnsFullSet(t *testing.T) {
	places := testPlaces()
	s := NewSession("m1", &MockPlaceWriter{})

	s.SetFilter(Filter{SelectedSection: "A", PriceMin: 1000, PriceMax: PriceCeiling(1200)})
	if got := len(s.VisiblePlaces(places)); got == len(places) {
		t.Fatal("narrow filter should not keep the full set")
	}

	s.SetFilter(Filter{})
	if got := s.VisiblePlaces(places); len(got) != len(places) {
		t.Errorf("widened filter kept %d of %d places", len(got), len(places))
	}
	if s.State() != StateIdle {
		t.Errorf("state after clearing filter = %s, want idle", s.State())
	}
}

func TestEditLifecycle(t *testing.T) {
	writer := &MockPlaceWriter{}
	s := NewSession("m1", writer)

	if s.State() != StateIdle {
		t.Fatalf("new session state = %s, want idle", s.State())
	}

	if err := s.StartEdit("p1"); err != nil {
		t.Fatalf("StartEdit() error = %v", err)
	}
	if s.State() != StateEditing || s.EditingPlaceID() != "p1" {
		t.Fatalf("state = %s editing %q, want editing p1", s.State(), s.EditingPlaceID())
	}

	// a second concurrent edit from the same session is rejected
	if err := s.StartEdit("p2"); !errors.Is(err, ErrEditInProgress) {
		t.Errorf("second StartEdit() error = %v, want ErrEditInProgress", err)
	}

	place := domain.Place{PlaceID: "p1", Section: "A"}
	if err := s.Save(context.Background(), place); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if s.State() != StateIdle {
		t.Errorf("state after save = %s, want idle", s.State())
	}
	if len(writer.upserts) != 1 {
		t.Errorf("expected exactly one upsert call, got %d", len(writer.upserts))
	}
}

func TestSaveFailureRevertsToEditing(t *testing.T) {
	writer := &MockPlaceWriter{err: errors.New("version conflict")}
	s := NewSession("m1", writer)

	if err := s.StartEdit("p1"); err != nil {
		t.Fatalf("StartEdit() error = %v", err)
	}
	err := s.Save(context.Background(), domain.Place{PlaceID: "p1"})
	if err == nil {
		t.Fatal("expected save to fail")
	}
	if s.State() != StateEditing {
		t.Errorf("state after failed save = %s, want editing", s.State())
	}
	if s.LastError() == nil {
		t.Error("failed save must surface the error for redisplay")
	}

	// the session recovers once the writer does
	writer.err = nil
	if err := s.Save(context.Background(), domain.Place{PlaceID: "p1"}); err != nil {
		t.Fatalf("retried Save() error = %v", err)
	}
	if s.State() != StateIdle || s.LastError() != nil {
		t.Errorf("state after retry = %s err %v, want idle/nil", s.State(), s.LastError())
	}
}

func TestDeleteIssuesOneCall(t *testing.T) {
	writer := &MockPlaceWriter{}
	s := NewSession("m1", writer)

	if err := s.StartEdit("p3"); err != nil {
		t.Fatalf("StartEdit() error = %v", err)
	}
	if err := s.Delete(context.Background()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(writer.deletes) != 1 || writer.deletes[0] != "p3" {
		t.Errorf("deletes = %v, want [p3]", writer.deletes)
	}
}

func TestAbandonLeavesManifestUntouched(t *testing.T) {
	writer := &MockPlaceWriter{}
	s := NewSession("m1", writer)

	if err := s.StartEdit("p1"); err != nil {
		t.Fatalf("StartEdit() error = %v", err)
	}
	s.Abandon()
	if s.State() != StateIdle {
		t.Errorf("state after abandon = %s, want idle", s.State())
	}
	if len(writer.upserts) != 0 || len(writer.deletes) != 0 {
		t.Error("abandon must not issue repository calls")
	}
}

func TestSaveWithoutEdit(t *testing.T) {
	s := NewSession("m1", &MockPlaceWriter{})
	if err := s.Save(context.Background(), domain.Place{}); !errors.Is(err, ErrNoEditActive) {
		t.Errorf("Save() without edit = %v, want ErrNoEditActive", err)
	}
	if err := s.Delete(context.Background()); !errors.Is(err, ErrNoEditActive) {
		t.Errorf("Delete() without edit = %v, want ErrNoEditActive", err)
	}
}

func TestViewport(t *testing.T) {
	s := NewSession("m1", &MockPlaceWriter{})

	s.Zoom(3.0)
	if got := s.Viewport().Zoom; got != MaxZoom {
		t.Errorf("zoom clamped to %v, want %v", got, MaxZoom)
	}
	s.Zoom(0.1)
	if got := s.Viewport().Zoom; got != MinZoom {
		t.Errorf("zoom clamped to %v, want %v", got, MinZoom)
	}

	s.Pan(5, -3)
	s.Pan(1, 1)
	vp := s.Viewport()
	if vp.PanX != 6 || vp.PanY != -2 {
		t.Errorf("pan = (%v,%v), want (6,-2)", vp.PanX, vp.PanY)
	}

	s.Select("p1")
	s.Select("p2")
	if s.SelectionCount() != 2 {
		t.Fatalf("selection count = %d, want 2", s.SelectionCount())
	}

	s.ResetView()
	vp = s.Viewport()
	if vp.Zoom != 1 || vp.PanX != 0 || vp.PanY != 0 {
		t.Errorf("viewport after reset = %+v, want identity", vp)
	}
	if s.SelectionCount() != 0 {
		t.Error("ResetView must clear the selection set")
	}
}

func TestViewportIndependentOfFilter(t *testing.T) {
	s := NewSession("m1", &MockPlaceWriter{})
	s.Zoom(1.5)
	s.SetFilter(Filter{SelectedSection: "A"})
	if got := s.Viewport().Zoom; got != 1.5 {
		t.Errorf("changing the filter altered the zoom: %v", got)
	}
	s.ResetView()
	if !s.Filter().Active() {
		t.Error("ResetView must not clear the filter")
	}
}

func TestSelectionSet(t *testing.T) {
	s := NewSession("m1", &MockPlaceWriter{})
	s.Select("p1")
	if !s.Selected("p1") {
		t.Error("p1 should be selected")
	}
	s.Deselect("p1")
	if s.Selected("p1") {
		t.Error("p1 should be deselected")
	}
}
