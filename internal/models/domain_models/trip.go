package domain_models

// LatLng is a bare coordinate pair, used for the caller's location and for
// map view bounds.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Waypoint is one stop defining the driving route, in driving order. Produced
// by extraction from model output and immutable afterwards; a new planning
// round replaces the whole list.
type Waypoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// PointOfInterest is a suggested sight along the route. Independent of the
// waypoint list; either may be empty while the other is populated.
type PointOfInterest struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}
