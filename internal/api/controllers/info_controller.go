package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vanplan/internal/services"
	"vanplan/pkg/utils"
)

type InfoController struct {
	infoService services.InfoServiceInterface
}

func NewInfoController(infoService services.InfoServiceInterface) *InfoController {
	return &InfoController{
		infoService: infoService,
	}
}

// GET /api/v1/info/:topic
func (i *InfoController) TopicHandler(c *gin.Context) {
	topic := c.Param("topic")
	if topic == "" {
		utils.RespondError(c, http.StatusBadRequest, "topic is required")
		return
	}

	resp, err := i.infoService.Topic(topic)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Info fetched")
}
