package services

import (
	"vanplan/internal/models/response_models"
	"vanplan/pkg/utils"
)

type InfoServiceInterface interface {
	Topic(topic string) (response_models.InfoResponse, error)
}

type InfoService struct {
	topics map[string]response_models.InfoResponse
}

func NewInfoService() InfoServiceInterface {
	return &InfoService{topics: map[string]response_models.InfoResponse{
		"about": {
			Topic: "about",
			Title: "About this planner",
			Body: "Describe the campervan trip you have in mind and the assistant drafts a " +
				"day-by-day itinerary, plots the route on the map, and adds the weather " +
				"outlook for each travel day. Refine the plan by asking follow-up " +
				"questions in the same conversation.",
		},
		"privacy": {
			Topic: "privacy",
			Title: "Privacy",
			Body: "Your browser position, when you share it, is used once per request to " +
				"anchor the route near you and is never stored. Conversations live in " +
				"server memory only and expire automatically after a period of " +
				"inactivity. No accounts, no tracking.",
		},
		"safety": {
			Topic: "safety",
			Title: "Travel safety",
			Body: "Itineraries and weather summaries are generated automatically and can " +
				"be wrong. Check road conditions, campsite availability, and official " +
				"forecasts before you drive, and plan rest stops for long legs.",
		},
	}}
}

func (s *InfoService) Topic(topic string) (response_models.InfoResponse, error) {
	info, ok := s.topics[topic]
	if !ok {
		return response_models.InfoResponse{}, utils.ErrUnknownTopic
	}
	return info, nil
}
