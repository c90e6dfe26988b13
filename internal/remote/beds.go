package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/paulmach/orb"

	"github.com/florisys/field.report/internal/field"
)

// BedPatch is a partial bed update. Nil/empty fields are omitted from the
// request body and left untouched by the server.
type BedPatch struct {
	Name        *string     `json:"name,omitempty"`
	Coordinates orb.Polygon `json:"coordinates,omitempty"`
}

type createBedRequest struct {
	Name        string      `json:"name"`
	Coordinates orb.Polygon `json:"coordinates"`
}

// ListBeds returns all beds of a plot. Order is server-defined.
func (c *Client) ListBeds(ctx context.Context, plotID string) ([]field.Bed, error) {
	url := fmt.Sprintf("%s/plots/%s/beds", c.base, plotID)
	var beds []field.Bed
	if err := c.doJSON(ctx, "list beds", http.MethodGet, url, nil, &beds); err != nil {
		return nil, err
	}
	return beds, nil
}

// GetBed fetches the full bed record, including spatial-map attachments.
func (c *Client) GetBed(ctx context.Context, plotID, bedID string) (*field.Bed, error) {
	url := fmt.Sprintf("%s/plots/%s/beds/%s", c.base, plotID, bedID)
	var b field.Bed
	if err := c.doJSON(ctx, "get bed", http.MethodGet, url, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBed creates a bed from a name and a closed geographic ring and
// returns the server-assigned record.
func (c *Client) CreateBed(ctx context.Context, plotID, name string, ring orb.Ring) (*field.Bed, error) {
	url := fmt.Sprintf("%s/plots/%s/beds", c.base, plotID)
	req := createBedRequest{Name: name, Coordinates: orb.Polygon{ring}}
	var b field.Bed
	if err := c.doJSON(ctx, "create bed", http.MethodPost, url, req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBed applies a partial update and returns the full updated bed.
func (c *Client) UpdateBed(ctx context.Context, plotID, bedID string, patch BedPatch) (*field.Bed, error) {
	url := fmt.Sprintf("%s/plots/%s/beds/%s", c.base, plotID, bedID)
	var b field.Bed
	if err := c.doJSON(ctx, "update bed", http.MethodPatch, url, patch, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBed removes a bed.
func (c *Client) DeleteBed(ctx context.Context, plotID, bedID string) error {
	url := fmt.Sprintf("%s/plots/%s/beds/%s", c.base, plotID, bedID)
	return c.doJSON(ctx, "delete bed", http.MethodDelete, url, nil, nil)
}

// CollectRoverData asks the backend to schedule a rover pass over the bed.
func (c *Client) CollectRoverData(ctx context.Context, plotID, bedID string) error {
	url := fmt.Sprintf("%s/plots/%s/beds/%s/collect-rover-data", c.base, plotID, bedID)
	return c.doJSON(ctx, "collect rover data", http.MethodPost, url, nil, nil)
}
