package services

import (
	"github.com/samber/lo"

	"vanplan/internal/models/domain_models"
	"vanplan/internal/models/response_models"
	mem "vanplan/pkg/memcache"
	"vanplan/pkg/utils"
)

// DefaultViewBounds frames central Europe, the region most trips here start
// from. Shown whenever a session has no coordinates to fit yet.
var DefaultViewBounds = response_models.MapBounds{
	MinLat: 47.3,
	MinLng: 5.9,
	MaxLat: 55.1,
	MaxLng: 15.0,
}

type MapViewServiceInterface interface {
	Features(sessionID string) (response_models.MapFeaturesResponse, error)
}

type MapViewService struct {
	store mem.ConversationStore
}

func NewMapViewService(store mem.ConversationStore) MapViewServiceInterface {
	return &MapViewService{store: store}
}

// Features projects a session onto the map pane: route markers, POI pins, a
// polyline flag once two stops exist, and a bounding box fitted over every
// coordinate in play.
func (s *MapViewService) Features(sessionID string) (response_models.MapFeaturesResponse, error) {
	conv, ok := s.store.Get(sessionID)
	if !ok {
		return response_models.MapFeaturesResponse{}, utils.ErrSessionNotFound
	}
	snap := conv.Snapshot()

	points := lo.Map(snap.Waypoints, func(wp domain_models.Waypoint, _ int) domain_models.LatLng {
		return domain_models.LatLng{Lat: wp.Lat, Lng: wp.Lng}
	})
	points = append(points, lo.Map(snap.Pois, func(poi domain_models.PointOfInterest, _ int) domain_models.LatLng {
		return domain_models.LatLng{Lat: poi.Lat, Lng: poi.Lng}
	})...)

	resp := response_models.MapFeaturesResponse{
		Waypoints: snap.Waypoints,
		Pois:      snap.Pois,
		HasRoute:  len(snap.Waypoints) >= 2,
	}
	if len(points) == 0 {
		resp.Bounds = DefaultViewBounds
		resp.DefaultView = true
		return resp, nil
	}

	lats := lo.Map(points, func(p domain_models.LatLng, _ int) float64 { return p.Lat })
	lngs := lo.Map(points, func(p domain_models.LatLng, _ int) float64 { return p.Lng })
	resp.Bounds = response_models.MapBounds{
		MinLat: lo.Min(lats),
		MinLng: lo.Min(lngs),
		MaxLat: lo.Max(lats),
		MaxLng: lo.Max(lngs),
	}
	return resp, nil
}
