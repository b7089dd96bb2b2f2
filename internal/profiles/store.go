// Package profiles is the in-memory applicant profile store. Profiles
// live for the process lifetime only; durability is out of scope.
package profiles

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/david/grant-match/internal/models"
)

var ErrNotFound = errors.New("profile not found")

type Store struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile
}

func NewStore() *Store {
	return &Store{profiles: make(map[string]models.Profile)}
}

// Put stores a copy of the profile, assigning an ID and creation time
// when absent, and returns the stored profile.
func (s *Store) Put(profile models.Profile) models.Profile {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt == nil {
		now := time.Now().UTC().Format(time.RFC3339)
		profile.CreatedAt = &now
	}

	s.mu.Lock()
	s.profiles[profile.ID] = profile
	s.mu.Unlock()
	return profile
}

func (s *Store) Get(id string) (models.Profile, error) {
	s.mu.RLock()
	profile, ok := s.profiles[id]
	s.mu.RUnlock()
	if !ok {
		return models.Profile{}, ErrNotFound
	}
	return profile, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}
