package domain_models

import (
	"sync"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Snapshot is a point-in-time copy of a conversation, safe to serialize while
// background enrichment keeps running.
type Snapshot struct {
	SessionID string
	Messages  []ChatMessage
	Waypoints []Waypoint
	Pois      []PointOfInterest
	LastError string
	Loading   bool
	Enriching bool
}

// Conversation is the per-session aggregate behind one chat surface. Every
// mutation goes through a method holding the internal mutex, and every
// asynchronous completion must present the round tag it captured at
// submission: a mismatching tag means history was cleared or a newer round
// started, and the mutation becomes a no-op instead of resurrecting or
// overwriting state.
type Conversation struct {
	mu        sync.Mutex
	id        string
	messages  []ChatMessage
	waypoints []Waypoint
	pois      []PointOfInterest
	lastError string
	loading   bool
	enriching bool
	round     string
}

// NewConversation starts a session holding exactly the welcome message.
func NewConversation(welcome string) *Conversation {
	return &Conversation{
		id:       uuid.NewString(),
		messages: []ChatMessage{{Role: RoleAssistant, Content: welcome}},
		round:    uuid.NewString(),
	}
}

func (c *Conversation) ID() string {
	return c.id
}

// BeginRound accepts a new user prompt. At most one round may be in flight;
// while loading the call is rejected and nothing changes. On acceptance the
// prior round's structured data and error are cleared, the user message is
// appended, and a fresh round tag is issued.
func (c *Conversation) BeginRound(prompt string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return "", false
	}

	c.messages = append(c.messages, ChatMessage{Role: RoleUser, Content: prompt})
	c.waypoints = nil
	c.pois = nil
	c.lastError = ""
	c.loading = true
	c.round = uuid.NewString()
	return c.round, true
}

// FailRound aborts the round: the failure is recorded both as the standalone
// error and as an assistant message. Returns false when the tag is stale.
func (c *Conversation) FailRound(round, message string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if round != c.round {
		return false
	}

	c.lastError = message
	c.messages = append(c.messages, ChatMessage{Role: RoleAssistant, Content: message})
	c.loading = false
	return true
}

// CompleteRound lands the immediate render: structured data is stored, the
// raw itinerary is appended, and loading clears so new submissions are
// accepted while enrichment may still be pending. extractErr carries the
// user-visible note when shape validation emptied a list.
func (c *Conversation) CompleteRound(round, rawText, extractErr string, waypoints []Waypoint, pois []PointOfInterest, enriching bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if round != c.round {
		return false
	}

	c.waypoints = waypoints
	c.pois = pois
	c.lastError = extractErr
	c.messages = append(c.messages, ChatMessage{Role: RoleAssistant, Content: rawText})
	c.loading = false
	c.enriching = enriching
	return true
}

// ApplyEnrichment replaces the last message with the enriched itinerary. The
// replacement is positional and guarded: it applies only while the round tag
// is still current, so a cleared history or a newer round is never touched.
func (c *Conversation) ApplyEnrichment(round, enrichedText string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if round != c.round || len(c.messages) == 0 {
		return false
	}

	c.messages[len(c.messages)-1] = ChatMessage{Role: RoleAssistant, Content: enrichedText}
	c.enriching = false
	return true
}

// Reset returns the conversation to the single welcome message and clears
// lists, error, and flags. The round tag is rotated so anything still in
// flight resolves as a no-op.
func (c *Conversation) Reset(welcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = []ChatMessage{{Role: RoleAssistant, Content: welcome}}
	c.waypoints = nil
	c.pois = nil
	c.lastError = ""
	c.loading = false
	c.enriching = false
	c.round = uuid.NewString()
}

// Snapshot copies the visible state under the lock.
func (c *Conversation) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		SessionID: c.id,
		Messages:  make([]ChatMessage, len(c.messages)),
		LastError: c.lastError,
		Loading:   c.loading,
		Enriching: c.enriching,
	}
	copy(snap.Messages, c.messages)

	if len(c.waypoints) > 0 {
		snap.Waypoints = make([]Waypoint, len(c.waypoints))
		copy(snap.Waypoints, c.waypoints)
	}
	if len(c.pois) > 0 {
		snap.Pois = make([]PointOfInterest, len(c.pois))
		copy(snap.Pois, c.pois)
	}
	return snap
}
