package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/florisys/field.report/internal/field"
)

// ListPlots returns every plot in the collection.
func (c *Client) ListPlots(ctx context.Context) ([]field.Plot, error) {
	url := c.base + "/plots"
	var plots []field.Plot
	if err := c.doJSON(ctx, "list plots", http.MethodGet, url, nil, &plots); err != nil {
		return nil, err
	}
	return plots, nil
}

// AddPlot uploads a georeferenced raster and returns the created plot.
func (c *Client) AddPlot(ctx context.Context, filename string, r io.Reader) (*field.Plot, error) {
	url := c.base + "/plots"
	var p field.Plot
	if err := c.uploadFile(ctx, "add plot", url, filename, r, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePlot removes a plot and everything attached to it.
func (c *Client) DeletePlot(ctx context.Context, plotID string) error {
	url := fmt.Sprintf("%s/plots/%s", c.base, plotID)
	return c.doJSON(ctx, "delete plot", http.MethodDelete, url, nil, nil)
}
