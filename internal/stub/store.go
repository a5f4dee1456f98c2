// Package stub implements the activities service's wire contract against an
// in-memory store. It exists for local development and hermetic tests; the
// real service remains an external collaborator.
package stub

import (
	"errors"
	"slices"
	"sync"

	"github.com/mergington-hs/activities-client/internal/model"
)

// ErrNotFound is returned when an activity does not exist.
var ErrNotFound = errors.New("activity not found")

// ErrAlreadySignedUp is returned when the same email signs up twice.
var ErrAlreadySignedUp = errors.New("student is already signed up")

// ErrNotSignedUp is returned when unregistering an email that is not
// enrolled.
var ErrNotSignedUp = errors.New("student is not signed up for this activity")

// ErrActivityFull is returned when an activity has no remaining capacity.
var ErrActivityFull = errors.New("activity is full")

// Store keeps the roster in memory. All methods are safe for concurrent
// use; the roster's document order is the seed order and never changes.
type Store struct {
	mu     sync.Mutex
	roster *model.Roster
}

// NewStore returns a store holding the school's seed roster.
func NewStore() *Store {
	return &Store{roster: seedRoster()}
}

// Snapshot returns a deep copy of the current roster, so handlers can
// encode it without holding the lock and callers cannot mutate shared
// state.
func (s *Store) Snapshot() *model.Roster {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := model.NewRoster()
	for _, name := range s.roster.Names() {
		a, _ := s.roster.Get(name)
		out.Add(&model.Activity{
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    slices.Clone(a.Participants),
		})
	}
	return out
}

// Signup enrolls email in the named activity.
func (s *Store) Signup(name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.roster.Get(name)
	if !ok {
		return ErrNotFound
	}
	if slices.Contains(a.Participants, email) {
		return ErrAlreadySignedUp
	}
	if a.IsFull() {
		return ErrActivityFull
	}
	a.Participants = append(a.Participants, email)
	return nil
}

// Unregister removes email from the named activity.
func (s *Store) Unregister(name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.roster.Get(name)
	if !ok {
		return ErrNotFound
	}
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return ErrNotSignedUp
	}
	a.Participants = slices.Delete(a.Participants, i, i+1)
	return nil
}

func seedRoster() *model.Roster {
	r := model.NewRoster()
	r.Add(&model.Activity{
		Name:            "Chess Club",
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
	})
	r.Add(&model.Activity{
		Name:            "Programming Class",
		Description:     "Learn programming fundamentals and build software projects",
		Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
		MaxParticipants: 20,
		Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
	})
	r.Add(&model.Activity{
		Name:            "Gym Class",
		Description:     "Physical education and sports activities",
		Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
		MaxParticipants: 30,
		Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
	})
	r.Add(&model.Activity{
		Name:            "Basketball Team",
		Description:     "Practice and compete in basketball tournaments",
		Schedule:        "Wednesdays, 4:00 PM - 5:30 PM",
		MaxParticipants: 15,
		Participants:    []string{"liam@mergington.edu"},
	})
	r.Add(&model.Activity{
		Name:            "Tennis Club",
		Description:     "Learn tennis skills and play friendly matches",
		Schedule:        "Tuesdays, 3:30 PM - 5:00 PM",
		MaxParticipants: 10,
		Participants:    []string{"ava@mergington.edu"},
	})
	r.Add(&model.Activity{
		Name:            "Drama Club",
		Description:     "Act, direct, and produce plays and performances",
		Schedule:        "Mondays and Fridays, 3:30 PM - 5:30 PM",
		MaxParticipants: 20,
		Participants:    []string{"mia@mergington.edu"},
	})
	r.Add(&model.Activity{
		Name:            "Art Studio",
		Description:     "Painting, drawing, and mixed-media projects",
		Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
		MaxParticipants: 16,
		Participants:    []string{},
	})
	return r
}
