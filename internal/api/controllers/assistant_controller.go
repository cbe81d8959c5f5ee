package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vanplan/internal/models/request_models"
	"vanplan/internal/services"
	"vanplan/pkg/utils"
)

type AssistantController struct {
	assistantService services.AssistantServiceInterface
}

func NewAssistantController(assistantService services.AssistantServiceInterface) *AssistantController {
	return &AssistantController{
		assistantService: assistantService,
	}
}

// POST /api/v1/assistant/session
func (a *AssistantController) StartSessionHandler(c *gin.Context) {
	resp, err := a.assistantService.StartSession()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Session started")
}

// POST /api/v1/assistant/prompt
// An empty session_id starts a new session implicitly.
func (a *AssistantController) SubmitPromptHandler(c *gin.Context) {
	var req request_models.ChatPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := a.assistantService.SubmitPrompt(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Prompt accepted")
}

// GET /api/v1/assistant/history/:session_id
func (a *AssistantController) HistoryHandler(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "session_id is required")
		return
	}

	resp, err := a.assistantService.History(sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "History fetched")
}

// DELETE /api/v1/assistant/history/:session_id
func (a *AssistantController) ClearHistoryHandler(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "session_id is required")
		return
	}

	resp, err := a.assistantService.ClearHistory(sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "History cleared")
}
