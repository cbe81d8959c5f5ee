package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vanplan/internal/services"
	"vanplan/pkg/utils"
)

type MapController struct {
	mapViewService services.MapViewServiceInterface
}

func NewMapController(mapViewService services.MapViewServiceInterface) *MapController {
	return &MapController{
		mapViewService: mapViewService,
	}
}

// GET /api/v1/map/features/:session_id
func (m *MapController) FeaturesHandler(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "session_id is required")
		return
	}

	resp, err := m.mapViewService.Features(sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Map features fetched")
}
