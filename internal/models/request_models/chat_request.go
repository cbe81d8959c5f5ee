package request_models

import "vanplan/internal/models/domain_models"

// ChatPromptRequest is one user turn. An omitted session id starts a fresh
// session implicitly. Location is the browser position when the user granted
// it; the planner falls back to a fixed city otherwise.
type ChatPromptRequest struct {
	SessionID string                `json:"session_id"`
	Prompt    string                `json:"prompt"`
	Location  *domain_models.LatLng `json:"location,omitempty"`
}
