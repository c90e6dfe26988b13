package field

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
)

func TestBedRing(t *testing.T) {
	var nilBed *Bed
	if got := nilBed.Ring(); got != nil {
		t.Errorf("nil bed ring = %v, want nil", got)
	}
	if got := (&Bed{}).Ring(); got != nil {
		t.Errorf("empty bed ring = %v, want nil", got)
	}

	b := &Bed{Coordinates: orb.Polygon{{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}}}
	if got := len(b.Ring()); got != 5 {
		t.Errorf("ring length = %d, want 5", got)
	}
}

func TestBedCoordinatesWireFormat(t *testing.T) {
	b := Bed{
		ID:          "bed-1",
		Name:        "South-4",
		Coordinates: orb.Polygon{{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}},
	}
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// One closed ring of [lon,lat] pairs, per the backend contract.
	want := `"coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]`
	if !strings.Contains(string(raw), want) {
		t.Errorf("coordinates encoding = %s, want to contain %s", raw, want)
	}
}

func TestSortSpatialMaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 4, d, 0, 0, 0, 0, time.UTC)
	}
	maps := []SpatialMap{
		{ID: "a", CaptureDate: day(2)},
		{ID: "b", CaptureDate: day(20)},
		{ID: "c", CaptureDate: day(11)},
		{ID: "d", CaptureDate: day(20)}, // ties keep server order
	}
	SortSpatialMaps(maps)

	gotIDs := []string{maps[0].ID, maps[1].ID, maps[2].ID, maps[3].ID}
	wantIDs := []string{"b", "d", "c", "a"}
	if diff := cmp.Diff(wantIDs, gotIDs); diff != "" {
		t.Errorf("sort order mismatch (-want +got):\n%s", diff)
	}
}
