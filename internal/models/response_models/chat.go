package response_models

import "vanplan/internal/models/domain_models"

// ConversationResponse is the full client-facing view of one session. Every
// assistant endpoint returns it so the client can re-render from any reply.
type ConversationResponse struct {
	SessionID string                          `json:"session_id"`
	Messages  []domain_models.ChatMessage     `json:"messages"`
	Waypoints []domain_models.Waypoint        `json:"waypoints"`
	Pois      []domain_models.PointOfInterest `json:"pois"`
	Error     string                          `json:"error,omitempty"`
	Loading   bool                            `json:"loading"`
	Enriching bool                            `json:"enriching"`
}
