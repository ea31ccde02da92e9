// Package solar computes sunrise and sunset for the station's fixed position.
package solar

import (
	"fmt"
	"math"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Coordinates locate the station. They are validated once by NewLookup.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Events holds one day's solar events rendered as RFC3339 in the station zone.
// A field is empty when the event does not occur that day (polar day or night).
type Events struct {
	Sunrise string
	Sunset  string
}

// Lookup is immutable after construction and safe for concurrent use.
type Lookup struct {
	coords   Coordinates
	location *time.Location
}

// NewLookup validates the coordinates. A nil location means the process local zone.
func NewLookup(coords Coordinates, location *time.Location) (*Lookup, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}
	if location == nil {
		location = time.Local
	}
	return &Lookup{coords: coords, location: location}, nil
}

// Validate rejects coordinates outside the geographic range.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// Location returns the zone events are rendered in.
func (l *Lookup) Location() *time.Location {
	return l.location
}

// Events computes sunrise and sunset for the calendar date of day in the station zone.
func (l *Lookup) Events(day time.Time) Events {
	local := day.In(l.location)
	rise, set := sunrise.SunriseSunset(l.coords.Latitude, l.coords.Longitude, local.Year(), local.Month(), local.Day())
	return Events{
		Sunrise: l.render(rise),
		Sunset:  l.render(set),
	}
}

func (l *Lookup) render(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(l.location).Format(time.RFC3339)
}
