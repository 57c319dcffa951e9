package analytic

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/pluto"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/okian/kpastro/internal/ephemeris"
	"github.com/okian/kpastro/pkg/angle"
)

const (
	keplerTolerance = 1e-9
	keplerMaxSteps  = 30
	// plutoPrecession moves J2000 ecliptic longitudes to the equinox of date, degrees per day.
	plutoPrecession = 3.82394e-5
)

// linear is a value c0 + c1*d with d in days since elementsEpochJD.
type linear struct {
	c0, c1 float64
}

func (l linear) at(d float64) float64 { return l.c0 + l.c1*d }

// elements are mean Keplerian elements of date: ascending node N, inclination i,
// argument of perihelion w (degrees), semi-major axis a, eccentricity e and mean anomaly M.
type elements struct {
	N, i, w, a, e, M linear
}

type orbit struct {
	N, i, w, a, e, M float64
}

func (el elements) at(d float64) orbit {
	return orbit{
		N: norm(el.N.at(d)),
		i: el.i.at(d),
		w: norm(el.w.at(d)),
		a: el.a.at(d),
		e: el.e.at(d),
		M: norm(el.M.at(d)),
	}
}

var planetElements = map[string]elements{
	ephemeris.Mercury: {
		N: linear{48.3313, 3.24587e-5}, i: linear{7.0047, 5.00e-8}, w: linear{29.1241, 1.01444e-5},
		a: linear{0.387098, 0}, e: linear{0.205635, 5.59e-10}, M: linear{168.6562, 4.0923344368},
	},
	ephemeris.Venus: {
		N: linear{76.6799, 2.46590e-5}, i: linear{3.3946, 2.75e-8}, w: linear{54.8910, 1.38374e-5},
		a: linear{0.723330, 0}, e: linear{0.006773, -1.302e-9}, M: linear{48.0052, 1.6021302244},
	},
	ephemeris.Mars: {
		N: linear{49.5574, 2.11081e-5}, i: linear{1.8497, -1.78e-8}, w: linear{286.5016, 2.92961e-5},
		a: linear{1.523688, 0}, e: linear{0.093405, 2.516e-9}, M: linear{18.6021, 0.5240207766},
	},
	ephemeris.Jupiter: {
		N: linear{100.4542, 2.76854e-5}, i: linear{1.3030, -1.557e-7}, w: linear{273.8777, 1.64505e-5},
		a: linear{5.20256, 0}, e: linear{0.048498, 4.469e-9}, M: linear{19.8950, 0.0830853001},
	},
	ephemeris.Saturn: {
		N: linear{113.6634, 2.38980e-5}, i: linear{2.4886, -1.081e-7}, w: linear{339.3939, 2.97661e-5},
		a: linear{9.55475, 0}, e: linear{0.055546, -9.499e-9}, M: linear{316.9670, 0.0334442282},
	},
	ephemeris.Uranus: {
		N: linear{74.0005, 1.3978e-5}, i: linear{0.7733, 1.9e-8}, w: linear{96.6612, 3.0565e-5},
		a: linear{19.18171, -1.55e-8}, e: linear{0.047318, 7.45e-9}, M: linear{142.5905, 0.011725806},
	},
	ephemeris.Neptune: {
		N: linear{131.7806, 3.0173e-5}, i: linear{1.7700, -2.55e-7}, w: linear{272.8461, -6.027e-6},
		a: linear{30.05826, 3.313e-8}, e: linear{0.008606, 2.15e-9}, M: linear{260.2471, 0.005995147},
	},
}

// eccentricAnomaly solves Kepler's equation M = E - e sin E, angles in degrees.
func eccentricAnomaly(m, e float64) (float64, error) {
	mr := rad(m)
	x := mr + e*math.Sin(mr)*(1+e*math.Cos(mr))
	for range keplerMaxSteps {
		next := x - (x-e*math.Sin(x)-mr)/(1-e*math.Cos(x))
		if math.Abs(next-x) < keplerTolerance {
			return deg(next), nil
		}
		x = next
	}
	return 0, ErrKeplerDiverged
}

// vec is an ecliptic rectangular vector.
type vec struct {
	x, y, z float64
}

func (v vec) add(o vec) vec { return vec{v.x + o.x, v.y + o.y, v.z + o.z} }

// spherical returns ecliptic longitude, latitude (degrees) and distance.
func (v vec) spherical() (lon, lat, r float64) {
	r = math.Sqrt(v.x*v.x + v.y*v.y + v.z*v.z)
	lon = norm(deg(math.Atan2(v.y, v.x)))
	lat = deg(math.Atan2(v.z, math.Hypot(v.x, v.y)))
	return lon, lat, r
}

func fromSpherical(lon, lat, r float64) vec {
	lr, br := rad(lon), rad(lat)
	return vec{
		x: r * math.Cos(lr) * math.Cos(br),
		y: r * math.Sin(lr) * math.Cos(br),
		z: r * math.Sin(br),
	}
}

// position returns the position of a body on its orbit relative to the central body.
func (o orbit) position() (vec, error) {
	ea, err := eccentricAnomaly(o.M, o.e)
	if err != nil {
		return vec{}, err
	}
	er := rad(ea)
	xv := o.a * (math.Cos(er) - o.e)
	yv := o.a * math.Sqrt(1-o.e*o.e) * math.Sin(er)
	v := math.Atan2(yv, xv)
	r := math.Hypot(xv, yv)

	n, i, vw := rad(o.N), rad(o.i), v+rad(o.w)
	return vec{
		x: r * (math.Cos(n)*math.Cos(vw) - math.Sin(n)*math.Sin(vw)*math.Cos(i)),
		y: r * (math.Sin(n)*math.Cos(vw) + math.Cos(n)*math.Sin(vw)*math.Cos(i)),
		z: r * math.Sin(vw) * math.Sin(i),
	}, nil
}

// sunGeocentric returns the Sun's geocentric vector in AU, equinox of date.
func sunGeocentric(jde float64) vec {
	t := base.J2000Century(jde)
	lon, _ := solar.True(t)
	return fromSpherical(deg(float64(lon)), 0, solar.Radius(t))
}

// moonGeocentric returns the Moon's geocentric longitude and latitude, equinox of date.
func moonGeocentric(jde float64) (lon, lat float64) {
	l, b, _ := moonposition.Position(jde)
	return norm(deg(float64(l))), deg(float64(b))
}

// moonNode returns the longitude of the Moon's mean ascending node.
func moonNode(jde float64) float64 {
	return norm(deg(float64(moonposition.Node(jde))))
}

// planetHeliocentric returns a planet's heliocentric vector including the mutual
// perturbations of the outer planets.
func planetHeliocentric(name string, jde float64) (vec, error) {
	if name == ephemeris.Pluto {
		return plutoHeliocentric(jde), nil
	}
	d := jde - elementsEpochJD
	o := planetElements[name].at(d)
	p, err := o.position()
	if err != nil {
		return vec{}, err
	}
	mj := planetElements[ephemeris.Jupiter].M.at(d)
	ms := planetElements[ephemeris.Saturn].M.at(d)
	mu := planetElements[ephemeris.Uranus].M.at(d)

	var dLon, dLat float64
	switch name {
	case ephemeris.Jupiter:
		dLon = -0.332*sind(2*mj-5*ms-67.6) -
			0.056*sind(2*mj-2*ms+21) +
			0.042*sind(3*mj-5*ms+21) -
			0.036*sind(mj-2*ms) +
			0.022*cosd(mj-ms) +
			0.023*sind(2*mj-3*ms+52) -
			0.016*sind(mj-5*ms-69)
	case ephemeris.Saturn:
		dLon = 0.812*sind(2*mj-5*ms-67.6) -
			0.229*cosd(2*mj-4*ms-2) +
			0.119*sind(mj-2*ms-3) +
			0.046*sind(2*mj-6*ms-69) +
			0.014*sind(mj-3*ms+32)
		dLat = -0.020*cosd(2*mj-4*ms-2) + 0.018*sind(2*mj-6*ms-49)
	case ephemeris.Uranus:
		dLon = 0.040*sind(ms-2*mu+6) + 0.035*sind(ms-3*mu+33) - 0.015*sind(mj-mu+20)
	default:
		return p, nil
	}
	lon, lat, r := p.spherical()
	return fromSpherical(lon+dLon, lat+dLat, r), nil
}

// plutoHeliocentric returns Pluto's heliocentric vector moved from the J2000 equinox
// to the equinox of date. The theory covers 1885 to 2099.
func plutoHeliocentric(jde float64) vec {
	l, b, r := pluto.Heliocentric(jde)
	return fromSpherical(deg(float64(l))+plutoPrecession*(jde-j2000JD), deg(float64(b)), r)
}

// tropicalPosition returns the geocentric tropical longitude and latitude of a body.
func tropicalPosition(name string, jde float64) (lon, lat float64, err error) {
	switch name {
	case ephemeris.Sun:
		lon, _, _ = sunGeocentric(jde).spherical()
		return lon, 0, nil
	case ephemeris.Moon:
		lon, lat = moonGeocentric(jde)
		return lon, lat, nil
	case ephemeris.Rahu:
		return moonNode(jde), 0, nil
	case ephemeris.Ketu:
		return norm(moonNode(jde) + 180), 0, nil
	}
	h, err := planetHeliocentric(name, jde)
	if err != nil {
		return 0, 0, err
	}
	lon, lat, _ = h.add(sunGeocentric(jde)).spherical()
	return lon, lat, nil
}

func rad(x float64) float64  { return x * math.Pi / 180 }
func deg(x float64) float64  { return x * 180 / math.Pi }
func sind(x float64) float64 { return math.Sin(rad(x)) }
func cosd(x float64) float64 { return math.Cos(rad(x)) }
func norm(x float64) float64 { return angle.Normalize(x) }
