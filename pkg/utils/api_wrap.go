package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDFrom(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDFrom(c),
	})
}

func traceIDFrom(c *gin.Context) string {
	v, _ := c.Get("trace_id")
	traceID, _ := v.(string)
	return traceID
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyPrompt):
		RespondError(c, http.StatusBadRequest, "Prompt must not be empty")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid request data")
	case errors.Is(err, ErrRoundInFlight):
		RespondError(c, http.StatusConflict, "A planning round is already in flight for this session")
	case errors.Is(err, ErrRoundSuperseded):
		RespondError(c, http.StatusConflict, "This planning round was superseded before it finished")
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Session not found or expired")
	case errors.Is(err, ErrUnknownTopic):
		RespondError(c, http.StatusNotFound, "Unknown info topic")
	case errors.Is(err, ErrPlannerAuth):
		log.Printf("Planner auth error: %v", err)
		RespondError(c, http.StatusBadGateway, "The itinerary provider rejected our credentials. Please check the configured API key.")
	case errors.Is(err, ErrPlannerUnavailable):
		log.Printf("Planner error: %v", err)
		RespondError(c, http.StatusBadGateway, "The itinerary provider could not be reached. Please try again.")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
