// Package field holds the shared data model for the dashboard: plots
// (georeferenced rasters), beds (quadrilateral regions drawn over a plot)
// and spatial-map attachments (3D scans tied to a bed).
package field

import (
	"sort"
	"time"

	"github.com/paulmach/orb"
)

// Plot identifies one georeferenced raster image. Plots are immutable once
// created; the server assigns the id at upload time.
type Plot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// Bed is a quadrilateral region of interest within a plot. Coordinates hold
// a single closed ring of geographic (lon, lat) pairs: four vertices plus
// the closing repeat of the first point.
type Bed struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Coordinates orb.Polygon  `json:"coordinates"`
	CreatedAt   time.Time    `json:"createdAt,omitzero"`
	UpdatedAt   time.Time    `json:"updatedAt,omitzero"`
	SpatialMaps []SpatialMap `json:"spatialMaps,omitempty"`
}

// Ring returns the bed's outer ring, or nil if no geometry is present.
func (b *Bed) Ring() orb.Ring {
	if b == nil || len(b.Coordinates) == 0 {
		return nil
	}
	return b.Coordinates[0]
}

// SpatialMap references a 3D point-cloud scan attached to a bed. Attachments
// are immutable once uploaded.
type SpatialMap struct {
	ID               string    `json:"id"`
	OriginalFilename string    `json:"originalFilename"`
	StoredURL        string    `json:"url,omitempty"`
	CaptureDate      time.Time `json:"captureDate"`
}

// SortSpatialMaps orders attachments for display: most recent capture date
// first. The sort is stable so equal dates keep their server order.
func SortSpatialMaps(maps []SpatialMap) {
	sort.SliceStable(maps, func(i, j int) bool {
		return maps[i].CaptureDate.After(maps[j].CaptureDate)
	})
}
