package utils

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptyPrompt        = errors.New("empty prompt")
	ErrRoundInFlight      = errors.New("round already in flight")
	ErrRoundSuperseded    = errors.New("round superseded")
	ErrSessionNotFound    = errors.New("session not found")
	ErrPlannerAuth        = errors.New("planner credential rejected")
	ErrPlannerUnavailable = errors.New("planner unavailable")
	ErrMalformedPlan      = errors.New("malformed plan data")
	ErrUnknownTopic       = errors.New("unknown info topic")
)
