package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"vanplan/internal/models/domain_models"
	"vanplan/internal/models/request_models"
	"vanplan/internal/models/response_models"
	mem "vanplan/pkg/memcache"
	"vanplan/pkg/utils"
)

// WelcomeMessage opens every new session and is the only message left after a
// history clear.
const WelcomeMessage = "Hi! I'm your campervan trip planner. Tell me where you want to go, " +
	"roughly when, and for how long, and I'll draft a day-by-day route with overnight stops " +
	"and places worth seeing along the way."

// DefaultLocation anchors the route when the browser shares no position.
var DefaultLocation = domain_models.LatLng{Lat: 52.52, Lng: 13.405}

const enrichTimeout = 90 * time.Second

type AssistantServiceInterface interface {
	StartSession() (response_models.ConversationResponse, error)
	SubmitPrompt(ctx context.Context, req request_models.ChatPromptRequest) (response_models.ConversationResponse, error)
	History(sessionID string) (response_models.ConversationResponse, error)
	ClearHistory(sessionID string) (response_models.ConversationResponse, error)
}

type AssistantService struct {
	planner utils.PlannerClientInterface
	extract ExtractServiceInterface
	enrich  EnrichServiceInterface
	store   mem.ConversationStore
}

func NewAssistantService(
	planner utils.PlannerClientInterface,
	extract ExtractServiceInterface,
	enrich EnrichServiceInterface,
	store mem.ConversationStore,
) AssistantServiceInterface {
	return &AssistantService{
		planner: planner,
		extract: extract,
		enrich:  enrich,
		store:   store,
	}
}

func (s *AssistantService) StartSession() (response_models.ConversationResponse, error) {
	conv := domain_models.NewConversation(WelcomeMessage)
	s.store.Put(conv)
	log.Printf("Started session %s", conv.ID())
	return s.respond(conv), nil
}

// SubmitPrompt runs one conversation round: accept the prompt, ask the
// planner, extract trip data, and show the reply. Weather enrichment
// continues in the background once a start date and at least one waypoint
// are known.
func (s *AssistantService) SubmitPrompt(ctx context.Context, req request_models.ChatPromptRequest) (response_models.ConversationResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return response_models.ConversationResponse{}, utils.ErrEmptyPrompt
	}

	conv, err := s.resolveSession(req.SessionID)
	if err != nil {
		return response_models.ConversationResponse{}, err
	}

	round, ok := conv.BeginRound(prompt)
	if !ok {
		return response_models.ConversationResponse{}, utils.ErrRoundInFlight
	}

	raw, err := s.generatePlanWithRetry(ctx, s.buildPlannerPrompt(prompt, resolveLocation(req.Location)))
	if err != nil {
		if !conv.FailRound(round, plannerFailureMessage(err)) {
			return response_models.ConversationResponse{}, utils.ErrRoundSuperseded
		}
		return response_models.ConversationResponse{}, err
	}

	plan := s.extract.Normalize(raw)
	enriching := plan.StartDate != "" && len(plan.Waypoints) > 0
	if !conv.CompleteRound(round, plan.Itinerary, strings.Join(plan.DataErrors, " "), plan.Waypoints, plan.Pois, enriching) {
		return response_models.ConversationResponse{}, utils.ErrRoundSuperseded
	}

	// Snapshot before the goroutine starts so the immediate render always
	// shows the raw itinerary.
	resp := s.respond(conv)
	if enriching {
		go s.enrichInBackground(conv, round, plan)
	}
	return resp, nil
}

// resolveSession looks up the conversation, creating one implicitly when the
// request carries no session id. A non-empty unknown id stays an error so an
// expired session surfaces instead of silently forking a new one.
func (s *AssistantService) resolveSession(sessionID string) (*domain_models.Conversation, error) {
	if sessionID == "" {
		conv := domain_models.NewConversation(WelcomeMessage)
		s.store.Put(conv)
		log.Printf("Implicitly started session %s", conv.ID())
		return conv, nil
	}
	conv, ok := s.store.Get(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return conv, nil
}

func (s *AssistantService) History(sessionID string) (response_models.ConversationResponse, error) {
	conv, ok := s.store.Get(sessionID)
	if !ok {
		return response_models.ConversationResponse{}, utils.ErrSessionNotFound
	}
	return s.respond(conv), nil
}

func (s *AssistantService) ClearHistory(sessionID string) (response_models.ConversationResponse, error) {
	conv, ok := s.store.Get(sessionID)
	if !ok {
		return response_models.ConversationResponse{}, utils.ErrSessionNotFound
	}
	conv.Reset(WelcomeMessage)
	log.Printf("Cleared session %s", sessionID)
	return s.respond(conv), nil
}

// enrichInBackground rewrites the latest reply with per-day weather lines.
// The request context is gone by the time this runs, so the lookups get
// their own deadline. A superseded round drops the result on the floor.
func (s *AssistantService) enrichInBackground(conv *domain_models.Conversation, round string, plan NormalizedPlan) {
	ctx, cancel := context.WithTimeout(context.Background(), enrichTimeout)
	defer cancel()

	enriched := s.enrich.Enrich(ctx, plan.Itinerary, plan.StartDate, plan.Waypoints)
	if !conv.ApplyEnrichment(round, enriched) {
		log.Printf("Discarding enrichment for session %s: round superseded", conv.ID())
	}
}

func (s *AssistantService) generatePlanWithRetry(ctx context.Context, prompt string) (string, error) {
	maxAttempts := 3

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := s.planner.GeneratePlan(ctx, prompt)
		if err == nil && strings.TrimSpace(raw) != "" {
			return raw, nil
		}
		if err == nil {
			err = fmt.Errorf("%w: empty response", utils.ErrPlannerUnavailable)
		}
		lastErr = err
		log.Printf("Plan generation attempt %d/%d failed: %v", attempt, maxAttempts, err)
		if errors.Is(err, utils.ErrPlannerAuth) {
			break // A rejected key will not get better on retry.
		}
	}
	return "", lastErr
}

func (s *AssistantService) buildPlannerPrompt(userPrompt string, loc domain_models.LatLng) string {
	var prompt strings.Builder

	prompt.WriteString("You are a campervan trip planner. Plan a realistic road trip with ")
	prompt.WriteString("drivable daily legs and overnight stops suitable for a campervan.\n\n")
	prompt.WriteString(fmt.Sprintf("The traveller is starting near latitude %.4f, longitude %.4f.\n\n", loc.Lat, loc.Lng))
	prompt.WriteString(fmt.Sprintf("Traveller request: %s\n\n", userPrompt))

	prompt.WriteString("FORMAT REQUIREMENTS:\n")
	prompt.WriteString("1. Start the reply with one line: START_DATE: YYYY-MM-DD (the first travel day)\n")
	prompt.WriteString("2. Write the itinerary with one heading per day: Day 1, Day 2, ...\n")
	prompt.WriteString("3. After the itinerary add a line WAYPOINTS: followed by a JSON array of the ")
	prompt.WriteString(`overnight stops in driving order, each {"name": "...", "lat": 0.0, "lng": 0.0}` + "\n")
	prompt.WriteString("4. Then add a line POIS: followed by a JSON array of places worth visiting, ")
	prompt.WriteString(`each {"name": "...", "address": "...", "lat": 0.0, "lng": 0.0}` + "\n")
	prompt.WriteString("5. Use strict JSON in the arrays: double-quoted keys and no trailing commas\n")

	return prompt.String()
}

func (s *AssistantService) respond(conv *domain_models.Conversation) response_models.ConversationResponse {
	snap := conv.Snapshot()
	return response_models.ConversationResponse{
		SessionID: snap.SessionID,
		Messages:  snap.Messages,
		Waypoints: snap.Waypoints,
		Pois:      snap.Pois,
		Error:     snap.LastError,
		Loading:   snap.Loading,
		Enriching: snap.Enriching,
	}
}

func plannerFailureMessage(err error) string {
	if errors.Is(err, utils.ErrPlannerAuth) {
		return "I couldn't reach the itinerary service: the configured API key was rejected. " +
			"Please check the server configuration and try again."
	}
	return "I couldn't reach the itinerary service just now. Please try again in a moment."
}

// resolveLocation falls back to DefaultLocation for absent or nonsense
// coordinates. The zero value means the field was omitted; (0,0) is open
// ocean anyway.
func resolveLocation(loc *domain_models.LatLng) domain_models.LatLng {
	if loc == nil {
		return DefaultLocation
	}
	if loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180 {
		return DefaultLocation
	}
	if loc.Lat == 0 && loc.Lng == 0 {
		return DefaultLocation
	}
	return *loc
}
