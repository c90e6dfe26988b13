package geo

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseRing(t *testing.T) {
	tests := []struct {
		name string
		in   orb.Ring
		want orb.Ring
	}{
		{"empty", orb.Ring{}, orb.Ring{}},
		{"single point", orb.Ring{{1, 2}}, orb.Ring{{1, 2}}},
		{
			"open quad",
			orb.Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
			orb.Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}},
		},
		{
			"already closed",
			orb.Ring{{0, 0}, {0, 1}, {1, 1}, {0, 0}},
			orb.Ring{{0, 0}, {0, 1}, {1, 1}, {0, 0}},
		},
		{
			"two distinct points",
			orb.Ring{{3, 4}, {5, 6}},
			orb.Ring{{3, 4}, {5, 6}, {3, 4}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CloseRing(tt.in)
			assert.Equal(t, tt.want, got)
			// Idempotence: closing twice equals closing once.
			assert.Equal(t, got, CloseRing(got))
		})
	}
}

func TestCloseRingDoesNotMutateInput(t *testing.T) {
	in := make(orb.Ring, 0, 8)
	in = append(in, orb.Point{0, 0}, orb.Point{0, 1}, orb.Point{1, 1})
	_ = CloseRing(in)
	assert.Equal(t, orb.Ring{{0, 0}, {0, 1}, {1, 1}}, in)
}

func TestTransformRoundTrip(t *testing.T) {
	// The transverse-mercator series is only meant for points near a
	// zone's central meridian, so each code gets in-zone samples.
	cases := map[string][]orb.Point{
		"EPSG:4326":  {{0, 0}, {13.405, 52.52}, {-122.42, 37.77}},
		"EPSG:3857":  {{0, 0}, {13.405, 52.52}, {-122.42, 37.77}, {174.78, -41.29}},
		"EPSG:32633": {{13.405, 52.52}, {15, 48.2}, {16.37, 48.21}},   // Berlin, zone 33N
		"EPSG:32610": {{-122.42, 37.77}, {-121.49, 38.58}},            // San Francisco, zone 10N
		"EPSG:32760": {{174.78, -41.29}, {176.2, -38.14}},             // Wellington, zone 60S
		"EPSG:32721": {{-58.38, -34.6}, {-56.16, -34.9}},              // Buenos Aires, zone 21S
	}

	for code, points := range cases {
		t.Run(code, func(t *testing.T) {
			for _, p := range points {
				w, err := ToWorking(p, code)
				require.NoError(t, err)
				back, err := ToGeographic(w, code)
				require.NoError(t, err)
				assert.InDelta(t, p[0], back[0], 1e-6, "lon for %v", p)
				assert.InDelta(t, p[1], back[1], 1e-6, "lat for %v", p)
			}
		})
	}
}

func TestTransformKnownValues(t *testing.T) {
	// Geographic code is the identity.
	p, err := ToWorking(orb.Point{4.5, 51.9}, Geographic)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{4.5, 51.9}, p)

	// Web mercator equator scale: 180 degrees maps to pi * semi-major axis.
	p, err = ToWorking(orb.Point{180, 0}, WebMercator)
	require.NoError(t, err)
	assert.InDelta(t, 20037508.34, p[0], 0.01)
	assert.InDelta(t, 0, p[1], 1e-9)

	// UTM zone 31N: the central meridian (3E) maps to the false easting.
	p, err = ToWorking(orb.Point{3, 0}, "EPSG:32631")
	require.NoError(t, err)
	assert.InDelta(t, 500000, p[0], 1e-6)
	assert.InDelta(t, 0, p[1], 1e-6)

	// Southern-hemisphere zones carry the false northing.
	p, err = ToWorking(orb.Point{3, -0.0001}, "EPSG:32731")
	require.NoError(t, err)
	assert.Greater(t, p[1], 9_000_000.0)
}

func TestRingTransformPreservesOrder(t *testing.T) {
	ring := orb.Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}
	working, err := RingToWorking(ring, WebMercator)
	require.NoError(t, err)
	require.Len(t, working, len(ring))

	back, err := RingToGeographic(working, WebMercator)
	require.NoError(t, err)
	for i := range ring {
		assert.InDelta(t, ring[i][0], back[i][0], 1e-9)
		assert.InDelta(t, ring[i][1], back[i][1], 1e-9)
	}
}

func TestUnsupportedProjection(t *testing.T) {
	for _, code := range []string{"", "EPSG:2154", "ESRI:54009", "bogus"} {
		_, err := ToWorking(orb.Point{0, 0}, code)
		assert.True(t, errors.Is(err, ErrProjectionUnavailable), "code %q", code)

		_, err = RingToGeographic(orb.Ring{{0, 0}}, code)
		assert.True(t, errors.Is(err, ErrProjectionUnavailable), "code %q", code)
	}
}
