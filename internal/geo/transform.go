package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// WGS84 ellipsoid and UTM grid constants.
const (
	semiMajor  = 6378137.0
	flattening = 1 / 298.257223563

	utmScale         = 0.9996
	utmFalseEasting  = 500000.0
	utmFalseNorthing = 10000000.0 // southern hemisphere only
)

var (
	ecc2  = flattening * (2 - flattening) // first eccentricity squared
	ecc4  = ecc2 * ecc2
	ecc6  = ecc4 * ecc2
	eccP2 = ecc2 / (1 - ecc2) // second eccentricity squared
)

// forward projects geographic lon/lat (degrees) into working coordinates.
func (pr projection) forward(p orb.Point) orb.Point {
	switch pr.kind {
	case kindWebMercator:
		x := semiMajor * p[0] * math.Pi / 180
		y := semiMajor * math.Log(math.Tan(math.Pi/4+p[1]*math.Pi/360))
		return orb.Point{x, y}
	case kindUTM:
		return utmForward(p, pr.zone, pr.south)
	default:
		return p
	}
}

// inverse projects working coordinates back into geographic lon/lat.
func (pr projection) inverse(p orb.Point) orb.Point {
	switch pr.kind {
	case kindWebMercator:
		lon := p[0] / semiMajor * 180 / math.Pi
		lat := (2*math.Atan(math.Exp(p[1]/semiMajor)) - math.Pi/2) * 180 / math.Pi
		return orb.Point{lon, lat}
	case kindUTM:
		return utmInverse(p, pr.zone, pr.south)
	default:
		return p
	}
}

// centralMeridian returns the central meridian of a UTM zone in radians.
func centralMeridian(zone int) float64 {
	return float64(zone*6-183) * math.Pi / 180
}

// meridianArc computes the distance along the meridian from the equator to
// latitude phi (Snyder 3-21).
func meridianArc(phi float64) float64 {
	return semiMajor * ((1-ecc2/4-3*ecc4/64-5*ecc6/256)*phi -
		(3*ecc2/8+3*ecc4/32+45*ecc6/1024)*math.Sin(2*phi) +
		(15*ecc4/256+45*ecc6/1024)*math.Sin(4*phi) -
		(35*ecc6/3072)*math.Sin(6*phi))
}

// utmForward implements the transverse-mercator series expansion
// (Snyder 8-9..8-13) for the WGS84 ellipsoid.
func utmForward(p orb.Point, zone int, south bool) orb.Point {
	phi := p[1] * math.Pi / 180
	lam := p[0] * math.Pi / 180

	sinPhi, cosPhi := math.Sincos(phi)
	tanPhi := sinPhi / cosPhi

	n := semiMajor / math.Sqrt(1-ecc2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := eccP2 * cosPhi * cosPhi
	a := cosPhi * (lam - centralMeridian(zone))
	m := meridianArc(phi)

	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	x := utmScale*n*(a+(1-t+c)*a3/6+(5-18*t+t*t+72*c-58*eccP2)*a5/120) + utmFalseEasting
	y := utmScale * (m + n*tanPhi*(a2/2+(5-t+9*c+4*c*c)*a4/24+
		(61-58*t+t*t+600*c-330*eccP2)*a6/720))
	if south {
		y += utmFalseNorthing
	}
	return orb.Point{x, y}
}

// utmInverse recovers lon/lat from UTM easting/northing via the footpoint
// latitude (Snyder 8-16..8-25).
func utmInverse(p orb.Point, zone int, south bool) orb.Point {
	x := p[0] - utmFalseEasting
	y := p[1]
	if south {
		y -= utmFalseNorthing
	}

	m := y / utmScale
	mu := m / (semiMajor * (1 - ecc2/4 - 3*ecc4/64 - 5*ecc6/256))

	e1 := (1 - math.Sqrt(1-ecc2)) / (1 + math.Sqrt(1-ecc2))
	e12 := e1 * e1
	e13 := e12 * e1
	e14 := e13 * e1

	phi1 := mu + (3*e1/2-27*e13/32)*math.Sin(2*mu) +
		(21*e12/16-55*e14/32)*math.Sin(4*mu) +
		(151*e13/96)*math.Sin(6*mu) +
		(1097*e14/512)*math.Sin(8*mu)

	sinPhi1, cosPhi1 := math.Sincos(phi1)
	tanPhi1 := sinPhi1 / cosPhi1

	c1 := eccP2 * cosPhi1 * cosPhi1
	t1 := tanPhi1 * tanPhi1
	n1 := semiMajor / math.Sqrt(1-ecc2*sinPhi1*sinPhi1)
	r1 := semiMajor * (1 - ecc2) / math.Pow(1-ecc2*sinPhi1*sinPhi1, 1.5)
	d := x / (n1 * utmScale)

	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	phi := phi1 - (n1*tanPhi1/r1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*eccP2)*d4/24+
		(61+90*t1+298*c1+45*t1*t1-252*eccP2-3*c1*c1)*d6/720)
	lam := centralMeridian(zone) + (d-(1+2*t1+c1)*d3/6+
		(5-2*c1+28*t1-3*c1*c1+8*eccP2+24*t1*t1)*d5/120)/cosPhi1

	return orb.Point{lam * 180 / math.Pi, phi * 180 / math.Pi}
}
