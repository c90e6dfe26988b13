// Package bedview renders a bed's footprint to a static mini-map image.
// It is a presentational helper for reports and CLI output; the
// interactive canvas lives in the dashboard, not here.
package bedview

import (
	"fmt"
	"image/color"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	fillColor   = color.NRGBA{R: 46, G: 139, B: 87, A: 60}
	strokeColor = color.NRGBA{R: 46, G: 139, B: 87, A: 255}
	labelColor  = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
)

// Options controls the rendered mini-map.
type Options struct {
	Title     string
	ShowLabel bool // mark the label point at the ring centroid
	XLabel    string
	YLabel    string
}

// build assembles the plot for a closed ring.
func build(ring orb.Ring, o Options) (*plot.Plot, error) {
	if len(ring) < 4 {
		return nil, fmt.Errorf("bedview: ring has %d points, need at least 4", len(ring))
	}

	p := plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.XLabel
	p.Y.Label.Text = o.YLabel
	if o.XLabel == "" {
		p.X.Label.Text = "Easting (m)"
	}
	if o.YLabel == "" {
		p.Y.Label.Text = "Northing (m)"
	}

	pts := make(plotter.XYs, len(ring))
	for i, c := range ring {
		pts[i].X = c[0]
		pts[i].Y = c[1]
	}

	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		return nil, fmt.Errorf("bedview: polygon: %w", err)
	}
	poly.Color = fillColor
	poly.LineStyle.Color = strokeColor
	poly.LineStyle.Width = vg.Points(1.5)
	p.Add(poly)

	if o.ShowLabel {
		centroid, _ := planar.CentroidArea(ring)
		marker, err := plotter.NewScatter(plotter.XYs{{X: centroid[0], Y: centroid[1]}})
		if err != nil {
			return nil, fmt.Errorf("bedview: label marker: %w", err)
		}
		marker.GlyphStyle.Shape = draw.CrossGlyph{}
		marker.GlyphStyle.Color = labelColor
		marker.GlyphStyle.Radius = vg.Points(4)
		p.Add(marker)
	}
	return p, nil
}

// RenderPNG writes a mini-map of the ring as a PNG.
func RenderPNG(w io.Writer, ring orb.Ring, o Options) error {
	p, err := build(ring, o)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(6*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("bedview: render: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("bedview: write: %w", err)
	}
	return nil
}

// SavePNG renders the mini-map straight to a file path.
func SavePNG(path string, ring orb.Ring, o Options) error {
	p, err := build(ring, o)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("bedview: save %s: %w", path, err)
	}
	return nil
}
