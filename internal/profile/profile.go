package profile

// Fixed-size profile slots persisted in a preference store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tturner/autoclick/internal/prefs"
)

// Count is the number of profile slots.
const Count = 4

// ErrIndexOutOfRange is returned for slot indices outside [0, Count).
var ErrIndexOutOfRange = errors.New("profile index out of range")

// Profile is a named click interval. Interval is kept as the text the user
// typed and is parsed only when clicking starts.
type Profile struct {
	Name     string `yaml:"name"`
	Interval string `yaml:"interval"`
}

// Defaults returns the compiled-in profiles used before anything is saved.
func Defaults() [Count]Profile {
	return [Count]Profile{
		{Name: "Default", Interval: "30"},
		{Name: "Profile 1"},
		{Name: "Profile 2"},
		{Name: "Profile 3"},
	}
}

// NameKey is the preference key holding the name of slot index.
func NameKey(index int) string {
	return fmt.Sprintf("profile_name_%d", index)
}

// IntervalKey is the preference key holding the interval of slot index.
func IntervalKey(index int) string {
	return fmt.Sprintf("profile_interval_%d", index)
}

// Store holds the in-memory profiles and their backing preference store.
type Store struct {
	mu       sync.RWMutex
	prefs    prefs.Store
	profiles [Count]Profile
}

// NewStore creates a store initialised with Defaults.
func NewStore(p prefs.Store) *Store {
	return &Store{prefs: p, profiles: Defaults()}
}

// Load reads every slot from the preference store. Absent or empty values keep
// whatever is in memory.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.profiles {
		if name, ok := s.prefs.Get(NameKey(i)); ok && name != "" {
			s.profiles[i].Name = name
		}
		if interval, ok := s.prefs.Get(IntervalKey(i)); ok && interval != "" {
			s.profiles[i].Interval = interval
		}
	}
}

// Save writes slot index to the preference store.
func (s *Store) Save(index int) error {
	p, err := s.Get(index)
	if err != nil {
		return err
	}
	if err := s.prefs.Set(NameKey(index), p.Name); err != nil {
		return fmt.Errorf("save profile %d name: %w", index, err)
	}
	if err := s.prefs.Set(IntervalKey(index), p.Interval); err != nil {
		return fmt.Errorf("save profile %d interval: %w", index, err)
	}
	return nil
}

// Get returns the in-memory profile at index.
func (s *Store) Get(index int) (Profile, error) {
	if err := checkIndex(index); err != nil {
		return Profile{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles[index], nil
}

// Set replaces the in-memory profile at index without persisting it.
func (s *Store) Set(index int, p Profile) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[index] = p
	return nil
}

// All returns a copy of every slot.
func (s *Store) All() [Count]Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles
}

func checkIndex(index int) error {
	if index < 0 || index >= Count {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return nil
}
