package response_models

import "vanplan/internal/models/domain_models"

type MapBounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// MapFeaturesResponse carries everything the map pane draws. DefaultView is
// set when the session has no coordinates yet and Bounds holds the home
// region instead of a fitted box.
type MapFeaturesResponse struct {
	Waypoints   []domain_models.Waypoint        `json:"waypoints"`
	Pois        []domain_models.PointOfInterest `json:"pois"`
	HasRoute    bool                            `json:"has_route"`
	Bounds      MapBounds                       `json:"bounds"`
	DefaultView bool                            `json:"default_view"`
}
