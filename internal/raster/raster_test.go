package raster

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestStaticBinding(t *testing.T) {
	b := NewStatic("EPSG:32633", orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{500, 500}})
	assert.True(t, b.Ready())
	assert.Equal(t, "EPSG:32633", b.ProjectionCode())
	assert.Equal(t, orb.Point{500, 500}, b.Extent().Max)
}

func TestStaticNotReadyWithoutCode(t *testing.T) {
	assert.False(t, (&Static{}).Ready())
}

func TestStaticNilSafe(t *testing.T) {
	var b *Static
	assert.False(t, b.Ready())
	assert.Empty(t, b.ProjectionCode())
	assert.Equal(t, orb.Bound{}, b.Extent())
}
