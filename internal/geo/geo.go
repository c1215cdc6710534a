// Package geo holds the coordinate type and the proximity computations the
// club and match views derive their distance labels from.
package geo

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DistanceUnknown is returned whenever one of the two coordinates is missing.
const DistanceUnknown = "unknown distance"

const earthRadiusKm = 6371

// Coordinate is a geographic point. The backend serializes coordinates three
// different ways depending on the endpoint: {"x":lat,"y":lng} on clubs,
// {"lat":..,"lng":..} on matches, and occasionally the string "lat,lng".
// UnmarshalJSON accepts all of them.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var obj struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
		X   *float64 `json:"x"`
		Y   *float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		switch {
		case obj.Lat != nil && obj.Lng != nil:
			c.Lat, c.Lng = *obj.Lat, *obj.Lng
			return nil
		case obj.X != nil && obj.Y != nil:
			// x carries latitude, y longitude
			c.Lat, c.Lng = *obj.X, *obj.Y
			return nil
		default:
			return nil
		}
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("coordinate: unsupported encoding %s", string(data))
	}
	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return nil
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	c.Lat, c.Lng = lat, lng
	return nil
}

// IsZero reports whether the coordinate was never populated. (0,0) is in the
// Gulf of Guinea; no club plays there.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// Distance returns the great-circle distance between two points in
// kilometers, via the Haversine formula.
func Distance(a, b Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// FormatDistance renders a distance in kilometers as the UI shows it:
// meters below one kilometer, otherwise kilometers to one decimal.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}

// DistanceLabel combines Distance and FormatDistance, tolerating missing
// coordinates on either side. nil or zero-valued coordinates yield the
// sentinel instead of an error or a NaN string.
func DistanceLabel(from, to *Coordinate) string {
	if from == nil || to == nil || from.IsZero() || to.IsZero() {
		return DistanceUnknown
	}
	return FormatDistance(Distance(*from, *to))
}

// LocationSource supplies the viewer's position for proximity labels. A nil
// result means no position is available (permission denied, no fix yet);
// labels then fall back to the sentinel.
type LocationSource interface {
	Location() *Coordinate
}

// Fixed is a LocationSource pinned to one coordinate, for callers without a
// real positioning backend.
func Fixed(c Coordinate) LocationSource {
	return fixedLocation(c)
}

type fixedLocation Coordinate

func (f fixedLocation) Location() *Coordinate {
	c := Coordinate(f)
	return &c
}

// DistanceLabelFrom labels the distance from a source's current position,
// tolerating an absent source the same way DistanceLabel tolerates absent
// coordinates.
func DistanceLabelFrom(src LocationSource, to *Coordinate) string {
	if src == nil {
		return DistanceUnknown
	}
	return DistanceLabel(src.Location(), to)
}
