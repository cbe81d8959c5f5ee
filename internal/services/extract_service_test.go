package services

import (
	"errors"
	"strings"
	"testing"

	"vanplan/pkg/utils"
)

const sampleLabeledResponse = `START_DATE: 2024-07-22

Day 1: Drive the coast road to Ghent.
Day 2: Canals and a slow morning in Bruges.

WAYPOINTS: [{"name": "Brussels", "lat": 50.85, "lng": 4.35}, {"name": "Ghent", "lat": 51.05, "lng": 3.72}, {"name": "Bruges", "lat": 51.21, "lng": 3.22}]

POIS: [{"name": "Gravensteen", "address": "Sint-Veerleplein 11, Ghent", "lat": 51.057, "lng": 3.721}]`

func TestStartDate(t *testing.T) {
	s := NewExtractService()

	date, ok := s.StartDate(sampleLabeledResponse)
	if !ok || date != "2024-07-22" {
		t.Errorf("StartDate = %q, %v, want %q, true", date, ok, "2024-07-22")
	}

	if _, ok := s.StartDate("no label in sight"); ok {
		t.Error("StartDate on unlabeled text should report not found")
	}

	// First occurrence wins.
	date, _ = s.StartDate("START_DATE: 2024-01-01 ... START_DATE: 2025-01-01")
	if date != "2024-01-01" {
		t.Errorf("StartDate = %q, want first occurrence", date)
	}

	// Extraction is textual; the enricher decides whether the date is real.
	date, ok = s.StartDate("START_DATE: 2024-13-99")
	if !ok || date != "2024-13-99" {
		t.Errorf("StartDate = %q, %v, want the raw token", date, ok)
	}
}

func TestWaypoints_WellFormed(t *testing.T) {
	s := NewExtractService()

	waypoints, err := s.Waypoints(sampleLabeledResponse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waypoints) != 3 {
		t.Fatalf("waypoint count = %d, want 3", len(waypoints))
	}
	if waypoints[1].Name != "Ghent" || waypoints[1].Lat != 51.05 || waypoints[1].Lng != 3.72 {
		t.Errorf("waypoints[1] = %+v, want Ghent at 51.05/3.72", waypoints[1])
	}
}

func TestWaypoints_RepairsLooseJSON(t *testing.T) {
	s := NewExtractService()

	text := `WAYPOINTS: [{name: "Alpha", lat: "51.05", lng: 3.72,},]`
	waypoints, err := s.Waypoints(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waypoints) != 1 {
		t.Fatalf("waypoint count = %d, want 1", len(waypoints))
	}
	if waypoints[0].Lat != 51.05 {
		t.Errorf("quoted latitude = %v, want 51.05", waypoints[0].Lat)
	}
}

func TestWaypoints_AbsentLabelIsNotAnError(t *testing.T) {
	s := NewExtractService()

	waypoints, err := s.Waypoints("just prose, no structured data at all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if waypoints != nil {
		t.Errorf("waypoints = %v, want nil for absent label", waypoints)
	}
}

func TestWaypoints_DoesNotStealTheNextBlock(t *testing.T) {
	s := NewExtractService()

	text := `WAYPOINTS: none this time
POIS: [{"name": "X", "address": "Y", "lat": 1, "lng": 2}]`

	waypoints, err := s.Waypoints(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waypoints) != 0 {
		t.Errorf("waypoints = %v, want none; the POIS array belongs to the next block", waypoints)
	}
}

func TestWaypoints_BadShapeFailsWholeList(t *testing.T) {
	s := NewExtractService()

	tests := []struct {
		name string
		text string
	}{
		{name: "missing lat", text: `WAYPOINTS: [{"name": "A", "lng": 3.7}]`},
		{name: "missing name", text: `WAYPOINTS: [{"lat": 51.0, "lng": 3.7}]`},
		{name: "blank name", text: `WAYPOINTS: [{"name": "  ", "lat": 51.0, "lng": 3.7}]`},
		{name: "latitude out of range", text: `WAYPOINTS: [{"name": "A", "lat": 95.0, "lng": 3.7}]`},
		{name: "longitude out of range", text: `WAYPOINTS: [{"name": "A", "lat": 51.0, "lng": 200.0}]`},
		{name: "non-numeric coordinate", text: `WAYPOINTS: [{"name": "A", "lat": "north", "lng": 3.7}]`},
		{name: "second record broken", text: `WAYPOINTS: [{"name": "A", "lat": 51.0, "lng": 3.7}, {"name": "B"}]`},
		{name: "element not a record", text: `WAYPOINTS: ["A", "B"]`},
		{name: "truncated array", text: `WAYPOINTS: [{"name": "A", "lat": 51.0,`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			waypoints, err := s.Waypoints(tt.text)
			if err == nil {
				t.Fatal("expected error for malformed block")
			}
			if !errors.Is(err, utils.ErrMalformedPlan) {
				t.Errorf("error = %v, want ErrMalformedPlan", err)
			}
			if len(waypoints) != 0 {
				t.Errorf("waypoints = %v, want empty list on failure", waypoints)
			}
		})
	}
}

func TestPois_RequiresAddress(t *testing.T) {
	s := NewExtractService()

	pois, err := s.Pois(sampleLabeledResponse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pois) != 1 || pois[0].Address != "Sint-Veerleplein 11, Ghent" {
		t.Fatalf("pois = %+v, want one with its address", pois)
	}

	_, err = s.Pois(`POIS: [{"name": "X", "lat": 1, "lng": 2}]`)
	if !errors.Is(err, utils.ErrMalformedPlan) {
		t.Errorf("error = %v, want ErrMalformedPlan for missing address", err)
	}
}

func TestNormalize_LabeledText(t *testing.T) {
	s := NewExtractService()

	plan := s.Normalize(sampleLabeledResponse)
	if plan.Itinerary != sampleLabeledResponse {
		t.Error("Itinerary should be the raw text in labeled mode")
	}
	if plan.StartDate != "2024-07-22" {
		t.Errorf("StartDate = %q, want 2024-07-22", plan.StartDate)
	}
	if len(plan.Waypoints) != 3 || len(plan.Pois) != 1 {
		t.Errorf("lists = %d waypoints, %d pois, want 3 and 1", len(plan.Waypoints), len(plan.Pois))
	}
	if len(plan.DataErrors) != 0 {
		t.Errorf("DataErrors = %v, want none", plan.DataErrors)
	}
}

func TestNormalize_BrokenBlocksStayIndependent(t *testing.T) {
	s := NewExtractService()

	text := `START_DATE: 2024-07-22
Day 1: out and about.
WAYPOINTS: [{"name": "A"}]
POIS: [{"name": "X", "address": "Y", "lat": 1, "lng": 2}]`

	plan := s.Normalize(text)
	if len(plan.Waypoints) != 0 {
		t.Errorf("waypoints = %v, want empty after shape failure", plan.Waypoints)
	}
	if len(plan.Pois) != 1 {
		t.Errorf("pois = %v, want the intact block extracted anyway", plan.Pois)
	}
	if len(plan.DataErrors) != 1 || !strings.Contains(plan.DataErrors[0], "waypoints") {
		t.Errorf("DataErrors = %v, want one waypoint note", plan.DataErrors)
	}
	if plan.StartDate != "2024-07-22" {
		t.Errorf("StartDate = %q, want 2024-07-22", plan.StartDate)
	}
}

func TestNormalize_StructuredObject(t *testing.T) {
	s := NewExtractService()

	raw := "```json\n" + `{
  "itinerary": "Day 1: Ghent.\nDay 2: Bruges.",
  "startDate": "2024-07-22",
  "waypoints": [
    {"name": "Brussels", "lat": 50.85, "lng": 4.35},
    {"name": "Ghent", "lat": 51.05, "lng": 3.72}
  ],
  "pois": [{"name": "Gravensteen", "address": "Ghent", "lat": 51.057, "lng": 3.721}]
}` + "\n```"

	plan := s.Normalize(raw)
	if plan.Itinerary != "Day 1: Ghent.\nDay 2: Bruges." {
		t.Errorf("Itinerary = %q, want the embedded text, not the JSON envelope", plan.Itinerary)
	}
	if plan.StartDate != "2024-07-22" {
		t.Errorf("StartDate = %q, want 2024-07-22", plan.StartDate)
	}
	if len(plan.Waypoints) != 2 || len(plan.Pois) != 1 {
		t.Errorf("lists = %d waypoints, %d pois, want 2 and 1", len(plan.Waypoints), len(plan.Pois))
	}
	if len(plan.DataErrors) != 0 {
		t.Errorf("DataErrors = %v, want none", plan.DataErrors)
	}
}

func TestNormalize_StructuredObjectWithBadRecords(t *testing.T) {
	s := NewExtractService()

	raw := `{
  "itinerary": "Day 1: somewhere.",
  "startDate": "2024-07-22",
  "waypoints": [{"name": "A", "lat": 50.85, "lng": 4.35}, {"name": "B"}],
  "pois": []
}`

	plan := s.Normalize(raw)
	if plan.Itinerary != "Day 1: somewhere." {
		t.Errorf("Itinerary = %q, want the embedded text", plan.Itinerary)
	}
	if len(plan.Waypoints) != 0 {
		t.Errorf("waypoints = %v, want empty after a bad record", plan.Waypoints)
	}
	if len(plan.DataErrors) != 1 {
		t.Errorf("DataErrors = %v, want one note", plan.DataErrors)
	}
}

func TestNormalize_StructuredWithoutItineraryFallsBack(t *testing.T) {
	s := NewExtractService()

	raw := `{"startDate": "2024-07-22"}`
	plan := s.Normalize(raw)
	if plan.Itinerary != raw {
		t.Errorf("Itinerary = %q, want the raw text shown as is", plan.Itinerary)
	}
	if plan.StartDate != "" {
		t.Errorf("StartDate = %q, want empty; the JSON key is not the text label", plan.StartDate)
	}
}
