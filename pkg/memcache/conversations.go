// pkg/memcache/conversations.go
package mem

import (
	"sync"
	"time"

	"vanplan/internal/models/domain_models"
)

type ConversationStore interface {
	Put(conv *domain_models.Conversation)

	// Get returns the live conversation and slides its expiry window.
	// Returns false if the session is missing or already expired.
	Get(id string) (*domain_models.Conversation, bool)

	Delete(id string)

	// Stop terminates the background janitor.
	Stop()
}

type conversationEntry struct {
	conv      *domain_models.Conversation
	expiresAt time.Time
}

type Conversations struct {
	mu   sync.RWMutex
	data map[string]conversationEntry
	ttl  time.Duration
	stop chan struct{}
}

// NewConversations builds the in-memory session store. Sessions idle longer
// than ttl are dropped by a janitor sweep; every Get slides the window.
func NewConversations(ttl time.Duration, sweepEvery time.Duration) *Conversations {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if sweepEvery <= 0 {
		sweepEvery = 10 * time.Minute
	}

	s := &Conversations{
		data: make(map[string]conversationEntry),
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go s.janitor(sweepEvery)
	return s
}

func (s *Conversations) Put(conv *domain_models.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[conv.ID()] = conversationEntry{
		conv:      conv,
		expiresAt: time.Now().Add(s.ttl),
	}
}

func (s *Conversations) Get(id string) (*domain_models.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, id) // cleanup expired
		return nil, false
	}
	e.expiresAt = time.Now().Add(s.ttl)
	s.data[id] = e
	return e.conv, true
}

func (s *Conversations) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
}

func (s *Conversations) Stop() {
	close(s.stop)
}

func (s *Conversations) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Conversations) sweep() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, id)
		}
	}
}
