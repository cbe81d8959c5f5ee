package services

import (
	"context"
	"log"
	"regexp"
	"strings"
	"sync"

	"vanplan/internal/models/domain_models"
	"vanplan/pkg/utils"
)

// Day headings as models emit them: plain "Day 1", markdown "## Day 2",
// bolded "**Day 3**". Only headings at the start of a line count.
var dayHeadingPattern = regexp.MustCompile(`(?m)^\s*(?:#{1,6}\s*|\*{1,2}\s*)?Day\s+(\d+)\b[^\n]*`)

// EnrichServiceInterface splices a weather line under every day heading of an
// itinerary. Enrichment is strictly additive: on any precondition failure the
// input text comes back untouched.
type EnrichServiceInterface interface {
	Enrich(ctx context.Context, itinerary, startDate string, waypoints []domain_models.Waypoint) string
}

type EnrichService struct {
	forecast ForecastServiceInterface
}

func NewEnrichService(forecast ForecastServiceInterface) EnrichServiceInterface {
	return &EnrichService{forecast: forecast}
}

// Enrich walks the day headings in document order. Heading n draws its
// location from waypoints[n+1] when the route is long enough, otherwise from
// the final stop. The date advances one calendar day per heading whether or
// not that day's lookup succeeds, so a mid-trip outage cannot shift later
// days.
func (s *EnrichService) Enrich(ctx context.Context, itinerary, startDate string, waypoints []domain_models.Waypoint) string {
	start, ok := utils.ParseISODate(startDate)
	if !ok {
		log.Printf("Enrichment skipped: unparsable start date %q", startDate)
		return itinerary
	}
	if len(waypoints) == 0 {
		return itinerary
	}

	matches := dayHeadingPattern.FindAllStringIndex(itinerary, -1)
	if len(matches) == 0 {
		return itinerary
	}

	lines := make([]string, len(matches))
	var wg sync.WaitGroup
	for i := range matches {
		wp := waypoints[len(waypoints)-1]
		if i+1 < len(waypoints) {
			wp = waypoints[i+1]
		}
		date := utils.FormatISODate(start.AddDate(0, 0, i))

		wg.Add(1)
		go func(i int, wp domain_models.Waypoint, date string) {
			defer wg.Done()
			lines[i] = s.forecastLine(ctx, wp, date)
		}(i, wp, date)
	}
	wg.Wait()

	var b strings.Builder
	b.Grow(len(itinerary) + len(matches)*64)
	prev := 0
	for i, m := range matches {
		b.WriteString(itinerary[prev:m[1]])
		b.WriteString("\n")
		b.WriteString(lines[i])
		prev = m[1]
	}
	b.WriteString(itinerary[prev:])
	return b.String()
}

func (s *EnrichService) forecastLine(ctx context.Context, wp domain_models.Waypoint, date string) string {
	summary, err := s.forecast.DailyForecast(ctx, wp.Lat, wp.Lng, date)
	if err != nil {
		log.Printf("Forecast lookup failed for %s on %s: %v", wp.Name, date, err)
		return "Weather (" + wp.Name + ", " + date + "): forecast unavailable"
	}
	if summary == "" {
		return "Weather (" + wp.Name + ", " + date + "): forecast unavailable"
	}
	return "Weather (" + wp.Name + ", " + date + "): " + summary
}
