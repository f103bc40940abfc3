package domain

import "github.com/paulmach/orb"

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as an orb point; orb orders points [lon, lat].
func (c Coordinates) Point() orb.Point { return orb.Point{c.Lon, c.Lat} }

// Return coordinates as [lon, lat] for GeoJSON compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }
