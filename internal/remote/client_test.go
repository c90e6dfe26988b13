package remote

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florisys/field.report/internal/httputil"
)

const bedJSON = `{
	"id": "bed-7",
	"name": "South-4",
	"coordinates": [[[0,0],[0,1],[1,1],[1,0],[0,0]]],
	"spatialMaps": [
		{"id": "sm-1", "originalFilename": "scan-a.ply", "captureDate": "2026-03-01T10:00:00Z"},
		{"id": "sm-2", "originalFilename": "scan-b.ply", "captureDate": "2026-05-20T08:30:00Z"}
	]
}`

func TestNewClientBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DefaultBaseURL},
		{"   ", DefaultBaseURL},
		{"http://farm.example:9000", "http://farm.example:9000"},
		{"http://farm.example:9000///", "http://farm.example:9000"},
	}
	for _, tt := range tests {
		c := NewClient(tt.in, httputil.NewMock())
		assert.Equal(t, tt.want, c.BaseURL(), "base %q", tt.in)
	}
}

func TestListBeds(t *testing.T) {
	mock := httputil.NewMock().Reply(200, `[`+bedJSON+`]`)
	c := NewClient("http://farm.example", mock)

	beds, err := c.ListBeds(context.Background(), "plot-1")
	require.NoError(t, err)
	require.Len(t, beds, 1)
	assert.Equal(t, "bed-7", beds[0].ID)
	assert.Equal(t, orb.Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}, beds[0].Ring())

	req := mock.Request(0)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "http://farm.example/plots/plot-1/beds", req.URL.String())
}

func TestGetBedDecodesSpatialMaps(t *testing.T) {
	mock := httputil.NewMock().Reply(200, bedJSON)
	c := NewClient("http://farm.example", mock)

	b, err := c.GetBed(context.Background(), "plot-1", "bed-7")
	require.NoError(t, err)
	require.Len(t, b.SpatialMaps, 2)
	assert.Equal(t, "scan-a.ply", b.SpatialMaps[0].OriginalFilename)
	assert.Equal(t, "http://farm.example/plots/plot-1/beds/bed-7", mock.Request(0).URL.String())
}

func TestCreateBed(t *testing.T) {
	mock := httputil.NewMock().Reply(201, bedJSON)
	c := NewClient("http://farm.example", mock)

	ring := orb.Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}
	b, err := c.CreateBed(context.Background(), "plot-1", "South-4", ring)
	require.NoError(t, err)
	assert.Equal(t, "bed-7", b.ID)

	req := mock.Request(0)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.JSONEq(t,
		`{"name":"South-4","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]}`,
		mock.Body(0))
}

func TestUpdateBedOmitsUnsetFields(t *testing.T) {
	mock := httputil.NewMock().Reply(200, bedJSON)
	c := NewClient("http://farm.example", mock)

	ring := orb.Ring{{2, 2}, {2, 3}, {3, 3}, {3, 2}, {2, 2}}
	_, err := c.UpdateBed(context.Background(), "plot-1", "bed-7", BedPatch{
		Coordinates: orb.Polygon{ring},
	})
	require.NoError(t, err)

	req := mock.Request(0)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.NotContains(t, mock.Body(0), `"name"`)
	assert.Contains(t, mock.Body(0), `"coordinates"`)
}

func TestDeleteBed(t *testing.T) {
	mock := httputil.NewMock().Reply(204, "")
	c := NewClient("http://farm.example", mock)

	err := c.DeleteBed(context.Background(), "plot-1", "bed-7")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, mock.Request(0).Method)
}

func TestRemoteErrorOnBadStatus(t *testing.T) {
	mock := httputil.NewMock().Reply(500, `{"error":"boom"}`)
	c := NewClient("http://farm.example", mock)

	_, err := c.ListBeds(context.Background(), "plot-1")
	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 500, rerr.Status)
	assert.Equal(t, "list beds", rerr.Op)
}

func TestRemoteErrorOnTransportFailure(t *testing.T) {
	sentinel := errors.New("connection refused")
	mock := httputil.NewMock().Fail(sentinel)
	c := NewClient("http://farm.example", mock)

	err := c.DeleteBed(context.Background(), "plot-1", "bed-7")
	var rerr *RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Zero(t, rerr.Status)
	assert.ErrorIs(t, err, sentinel)
}

func TestCollectRoverData(t *testing.T) {
	mock := httputil.NewMock().Reply(202, "")
	c := NewClient("http://farm.example", mock)

	err := c.CollectRoverData(context.Background(), "plot-1", "bed-7")
	require.NoError(t, err)

	req := mock.Request(0)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "http://farm.example/plots/plot-1/beds/bed-7/collect-rover-data", req.URL.String())
}

func TestUploadSpatialMap(t *testing.T) {
	mock := httputil.NewMock().Reply(201, "")
	c := NewClient("http://farm.example", mock)

	err := c.UploadSpatialMap(context.Background(), "plot-1", "bed-7", "scan.ply", strings.NewReader("ply\n"))
	require.NoError(t, err)

	req := mock.Request(0)
	assert.Contains(t, req.Header.Get("Content-Type"), "multipart/form-data")
	body := mock.Body(0)
	assert.Contains(t, body, `name="file"`)
	assert.Contains(t, body, `filename="scan.ply"`)
	assert.Contains(t, body, "ply\n")
}

func TestUploadStripsPathFromFilename(t *testing.T) {
	mock := httputil.NewMock().Reply(201, "")
	c := NewClient("http://farm.example", mock)

	err := c.UploadSpatialMap(context.Background(), "plot-1", "bed-7", "../../tmp/scan.ply", strings.NewReader("ply\n"))
	require.NoError(t, err)
	assert.Contains(t, mock.Body(0), `filename="scan.ply"`)
}

func TestListPlots(t *testing.T) {
	mock := httputil.NewMock().Reply(200, `[
		{"id":"plot-1","name":"north-orchard","url":"http://farm.example/rasters/p1.tif","createdAt":"2026-01-05T09:00:00Z"}
	]`)
	c := NewClient("http://farm.example", mock)

	plots, err := c.ListPlots(context.Background())
	require.NoError(t, err)
	require.Len(t, plots, 1)
	assert.Equal(t, "north-orchard", plots[0].Name)
}

func TestAddPlot(t *testing.T) {
	mock := httputil.NewMock().Reply(201, `{"id":"plot-9","name":"new","url":"u","createdAt":"2026-02-01T00:00:00Z"}`)
	c := NewClient("http://farm.example", mock)

	p, err := c.AddPlot(context.Background(), "ortho.tif", strings.NewReader("tiff-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "plot-9", p.ID)
	assert.Contains(t, mock.Body(0), `filename="ortho.tif"`)
}
