package domain

// Immutable geographic point (latitude, longitude) with an optional
// display name for log annotations.
type GeoPoint struct {
	Lat  float64
	Lon  float64
	Name string
}

// Return coordinates as [lon, lat] for external API compatibility.
func (p GeoPoint) CoordsToList() []float64 { return []float64{p.Lon, p.Lat} }
