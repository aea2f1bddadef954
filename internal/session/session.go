package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Vrajesh-Sharma/Blog-Agent/models"
)

// Status is the lifecycle state of a generation session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
	StatusFailed     Status = "failed"
)

// Record is the per-generation state tracked while a pipeline runs.
type Record struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id,omitempty"`
	Topic           string              `json:"topic"`
	Preferences     models.Preferences  `json:"preferences"`
	Status          Status              `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	CurrentStage    string              `json:"current_stage,omitempty"`
	StagesCompleted []string            `json:"stages_completed"`
	ResearchData    interface{}         `json:"research_data,omitempty"`
	Outline         interface{}         `json:"outline,omitempty"`
	Draft           string              `json:"draft,omitempty"`
	FinalBlog       string              `json:"final_blog,omitempty"`
	Error           string              `json:"error,omitempty"`
}

// Store is an in-memory session registry safe for concurrent pipelines.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Record
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: map[string]*Record{}}
}

// Create registers a new in-progress session and returns its id.
func (s *Store) Create(userID, topic string, prefs models.Preferences) string {
	id := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &Record{
		ID:              id,
		UserID:          userID,
		Topic:           topic,
		Preferences:     prefs,
		Status:          StatusInProgress,
		CreatedAt:       time.Now().UTC(),
		StagesCompleted: []string{},
	}
	return id
}

// Get returns a snapshot of the session, or false when the id is unknown.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[id]
	if !ok {
		return Record{}, false
	}
	snap := *rec
	snap.StagesCompleted = append([]string{}, rec.StagesCompleted...)
	return snap, true
}

// Update applies fn to the session under the store lock. fn must only mutate
// the record and return quickly. Unknown ids are ignored.
func (s *Store) Update(id string, fn func(*Record)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.sessions[id]; ok {
		fn(rec)
	}
}

// Len returns the number of tracked sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
