package derive

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tzneal/coordconv"
)

// earthRadiusMeters is the mean Earth radius used to turn an s1.Angle great
// circle separation into a distance.
const earthRadiusMeters = 6_371_000.0

// Station is a ground position in decimal degrees, the same representation
// the teacher's coordinate tooling takes on the command line.
type Station struct {
	Lat float64
	Lon float64
}

func (s Station) latLng() s2.LatLng {
	return s2.LatLng{
		Lat: s1.Angle(s.Lat * math.Pi / 180),
		Lng: s1.Angle(s.Lon * math.Pi / 180),
	}
}

// UTM converts a Station to UTM easting/northing at the given precision, the
// same call the teacher's ll2utm tool makes.
func (s Station) UTM(precision int) (coordconv.UTMCoord, error) {
	return coordconv.DefaultUTMConverter.ConvertFromGeodetic(s.latLng(), precision)
}

// BistaticAngle returns the bistatic angle (radians) at the scatter point
// implied by a straight line between transmitter and receiver: the angle
// subtended at the meteor trail between the incident ray from tx and the
// scattered ray to rx, approximated here using the transmitter-receiver
// great-circle separation and assuming a scatter point roughly equidistant
// from both (the forward-scatter geometry GRAVES monitoring normally
// operates under).
func BistaticAngle(tx, rx Station, scatterAltitudeMeters float64) s1.Angle {
	var baseline = float64(tx.latLng().Distance(rx.latLng())) * earthRadiusMeters
	// Treat tx, rx and the scatter point as an isosceles triangle whose
	// apex sits at the trail altitude above the baseline's midpoint.
	var halfBaseline = baseline / 2
	var legAngle = math.Atan2(halfBaseline, scatterAltitudeMeters)
	return s1.Angle(2 * legAngle)
}

// Separation returns the great-circle distance between two stations, in
// meters.
func Separation(a, b Station) float64 {
	return float64(a.latLng().Distance(b.latLng())) * earthRadiusMeters
}
