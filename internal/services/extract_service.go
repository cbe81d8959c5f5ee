package services

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"vanplan/internal/models/domain_models"
	"vanplan/pkg/utils"
)

const (
	startDateLabel = "START_DATE:"
	waypointsLabel = "WAYPOINTS:"
	poisLabel      = "POIS:"
)

var startDatePattern = regexp.MustCompile(startDateLabel + `\s*(\d{4}-\d{2}-\d{2})`)

// NormalizedPlan is one provider response reduced to domain data. Itinerary
// always carries the text to show; the lists may be empty with a note in
// DataErrors when extraction soft-failed.
type NormalizedPlan struct {
	Itinerary  string
	StartDate  string
	Waypoints  []domain_models.Waypoint
	Pois       []domain_models.PointOfInterest
	DataErrors []string
}

// ExtractServiceInterface pulls structured trip data out of raw model output.
// The three extractions are independent and each tolerates the absence of the
// others; a malformed block empties that list and reports why instead of
// failing the round.
type ExtractServiceInterface interface {
	StartDate(text string) (string, bool)
	Waypoints(text string) ([]domain_models.Waypoint, error)
	Pois(text string) ([]domain_models.PointOfInterest, error)
	Normalize(raw string) NormalizedPlan
}

type ExtractService struct{}

func NewExtractService() ExtractServiceInterface {
	return &ExtractService{}
}

// StartDate returns the first labeled YYYY-MM-DD token. No calendar
// validation happens here; the enricher parses the date and degrades on
// nonsense like month 13.
func (s *ExtractService) StartDate(text string) (string, bool) {
	m := startDatePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Waypoints extracts the labeled route list. A missing label is not an error,
// it just means the response carried no structured route. A present but
// unusable block returns an empty list plus the reason.
func (s *ExtractService) Waypoints(text string) ([]domain_models.Waypoint, error) {
	items, found, err := s.labeledRecords(text, waypointsLabel)
	if err != nil {
		return nil, fmt.Errorf("%w: waypoints: %v", utils.ErrMalformedPlan, err)
	}
	if !found {
		return nil, nil
	}

	waypoints := make([]domain_models.Waypoint, 0, len(items))
	for i, record := range items {
		wp, err := waypointFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: waypoint %d: %v", utils.ErrMalformedPlan, i+1, err)
		}
		waypoints = append(waypoints, wp)
	}
	return waypoints, nil
}

// Pois extracts the labeled points-of-interest list, symmetric to Waypoints
// with the extra address requirement.
func (s *ExtractService) Pois(text string) ([]domain_models.PointOfInterest, error) {
	items, found, err := s.labeledRecords(text, poisLabel)
	if err != nil {
		return nil, fmt.Errorf("%w: pois: %v", utils.ErrMalformedPlan, err)
	}
	if !found {
		return nil, nil
	}

	pois := make([]domain_models.PointOfInterest, 0, len(items))
	for i, record := range items {
		poi, err := poiFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: poi %d: %v", utils.ErrMalformedPlan, i+1, err)
		}
		pois = append(pois, poi)
	}
	return pois, nil
}

// Normalize reduces one raw response to domain data. The structured object
// form is recognized first; otherwise the labeled blocks are extracted from
// the text. Extraction failures never escalate: the prose is still shown and
// the failure becomes a user-visible note.
func (s *ExtractService) Normalize(raw string) NormalizedPlan {
	if plan, ok := s.structured(raw); ok {
		return plan
	}

	out := NormalizedPlan{Itinerary: raw}
	if date, ok := s.StartDate(raw); ok {
		out.StartDate = date
	}

	waypoints, err := s.Waypoints(raw)
	if err != nil {
		log.Printf("Waypoint extraction failed: %v", err)
		out.DataErrors = append(out.DataErrors, "The route waypoints in the response could not be read.")
	}
	out.Waypoints = waypoints

	pois, err := s.Pois(raw)
	if err != nil {
		log.Printf("POI extraction failed: %v", err)
		out.DataErrors = append(out.DataErrors, "The points of interest in the response could not be read.")
	}
	out.Pois = pois

	return out
}

// structuredPayload is the provider's alternative response form: one JSON
// object instead of labeled blocks inside text.
type structuredPayload struct {
	Itinerary string                   `json:"itinerary"`
	StartDate string                   `json:"startDate"`
	Waypoints []map[string]interface{} `json:"waypoints"`
	Pois      []map[string]interface{} `json:"pois"`
}

func (s *ExtractService) structured(raw string) (NormalizedPlan, bool) {
	cleaned := utils.StripCodeFences(raw)
	if !strings.HasPrefix(cleaned, "{") {
		return NormalizedPlan{}, false
	}

	var payload structuredPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return NormalizedPlan{}, false
	}
	if strings.TrimSpace(payload.Itinerary) == "" {
		return NormalizedPlan{}, false
	}

	out := NormalizedPlan{
		Itinerary: payload.Itinerary,
		StartDate: strings.TrimSpace(payload.StartDate),
	}

	waypoints := make([]domain_models.Waypoint, 0, len(payload.Waypoints))
	for i, record := range payload.Waypoints {
		wp, err := waypointFromRecord(record)
		if err != nil {
			log.Printf("Structured waypoint %d rejected: %v", i+1, err)
			out.DataErrors = append(out.DataErrors, "The route waypoints in the response could not be read.")
			waypoints = waypoints[:0]
			break
		}
		waypoints = append(waypoints, wp)
	}
	out.Waypoints = waypoints

	pois := make([]domain_models.PointOfInterest, 0, len(payload.Pois))
	for i, record := range payload.Pois {
		poi, err := poiFromRecord(record)
		if err != nil {
			log.Printf("Structured poi %d rejected: %v", i+1, err)
			out.DataErrors = append(out.DataErrors, "The points of interest in the response could not be read.")
			pois = pois[:0]
			break
		}
		pois = append(pois, poi)
	}
	out.Pois = pois

	return out, true
}

// labeledRecords bounds the array region after a label and runs it through
// the repair parser. found is false when the label never appears.
func (s *ExtractService) labeledRecords(text, label string) ([]map[string]interface{}, bool, error) {
	region, found := labeledArrayRegion(text, label)
	if !found {
		return nil, false, nil
	}

	parsed, ok := utils.ParseLooseJSON(region)
	if !ok {
		return nil, true, fmt.Errorf("array could not be parsed")
	}
	items, ok := parsed.([]interface{})
	if !ok {
		return nil, true, fmt.Errorf("block is not a list")
	}

	records := make([]map[string]interface{}, 0, len(items))
	for i, item := range items {
		record, ok := item.(map[string]interface{})
		if !ok {
			return nil, true, fmt.Errorf("element %d is not a record", i+1)
		}
		records = append(records, record)
	}
	return records, true, nil
}

// labeledArrayRegion isolates the array text after a label. The search stops
// at the next label so one block can never swallow its neighbor. The balanced
// bracket scan keeps nested arrays intact; an unbalanced block is returned as
// is and the repair parser gets to try its widened match.
func labeledArrayRegion(text, label string) (string, bool) {
	idx := strings.Index(text, label)
	if idx == -1 {
		return "", false
	}
	rest := text[idx+len(label):]
	if cut := nextLabelIndex(rest); cut != -1 {
		rest = rest[:cut]
	}

	open := strings.Index(rest, "[")
	if open == -1 {
		return "", false
	}
	if end := utils.FindMatchingBracket(rest, open); end != -1 {
		return rest[open : end+1], true
	}
	return rest[open:], true
}

func nextLabelIndex(text string) int {
	cut := -1
	for _, label := range []string{startDateLabel, waypointsLabel, poisLabel} {
		if idx := strings.Index(text, label); idx != -1 && (cut == -1 || idx < cut) {
			cut = idx
		}
	}
	return cut
}

func waypointFromRecord(record map[string]interface{}) (domain_models.Waypoint, error) {
	name, err := stringField(record, "name")
	if err != nil {
		return domain_models.Waypoint{}, err
	}
	lat, lng, err := coordinateFields(record)
	if err != nil {
		return domain_models.Waypoint{}, err
	}
	return domain_models.Waypoint{Name: name, Lat: lat, Lng: lng}, nil
}

func poiFromRecord(record map[string]interface{}) (domain_models.PointOfInterest, error) {
	name, err := stringField(record, "name")
	if err != nil {
		return domain_models.PointOfInterest{}, err
	}
	address, err := stringField(record, "address")
	if err != nil {
		return domain_models.PointOfInterest{}, err
	}
	lat, lng, err := coordinateFields(record)
	if err != nil {
		return domain_models.PointOfInterest{}, err
	}
	return domain_models.PointOfInterest{Name: name, Address: address, Lat: lat, Lng: lng}, nil
}

func coordinateFields(record map[string]interface{}) (float64, float64, error) {
	lat, err := floatField(record, "lat")
	if err != nil {
		return 0, 0, err
	}
	lng, err := floatField(record, "lng")
	if err != nil {
		return 0, 0, err
	}
	if lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("lat %v out of range", lat)
	}
	if lng < -180 || lng > 180 {
		return 0, 0, fmt.Errorf("lng %v out of range", lng)
	}
	return lat, lng, nil
}

func stringField(record map[string]interface{}, key string) (string, error) {
	v, ok := record[key]
	if !ok {
		return "", fmt.Errorf("missing %q", key)
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("unusable %q", key)
	}
	return strings.TrimSpace(s), nil
}

// floatField reads a number, tolerating models that quote their coordinates.
func floatField(record map[string]interface{}, key string) (float64, error) {
	v, ok := record[key]
	if !ok {
		return 0, fmt.Errorf("missing %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric %q", key)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("non-numeric %q", key)
	}
}
