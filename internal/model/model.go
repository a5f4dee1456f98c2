// Package model defines the core domain types for the activities client.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Activity represents one extracurricular offering and its enrolled
// participants. Participants are kept in the order the service returns
// them, which is enrollment order.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Remaining returns the number of open spots. The service is trusted to
// keep this non-negative; the client does not validate it.
func (a *Activity) Remaining() int {
	return a.MaxParticipants - len(a.Participants)
}

// IsFull returns true when no spots remain.
func (a *Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// Roster is the full set of activities as last fetched, keyed by activity
// name. The service's JSON object order is meaningful, so the roster
// preserves it: iteration via Names follows document order, and the custom
// JSON codec keeps that order on both encode and decode.
//
// A roster is a snapshot: every successful fetch produces a fresh one and
// the previous snapshot is discarded wholesale, never patched.
type Roster struct {
	names  []string
	byName map[string]*Activity
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{byName: make(map[string]*Activity)}
}

// Add appends an activity, keeping insertion order. Adding a name twice
// replaces the entry in place without duplicating it in the order.
func (r *Roster) Add(a *Activity) {
	if r.byName == nil {
		r.byName = make(map[string]*Activity)
	}
	if _, exists := r.byName[a.Name]; !exists {
		r.names = append(r.names, a.Name)
	}
	r.byName[a.Name] = a
}

// Get returns the named activity, or false when it is not on the roster.
func (r *Roster) Get(name string) (*Activity, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Names returns activity names in document order. The returned slice is a
// copy; callers may keep it across mutations.
func (r *Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of activities on the roster.
func (r *Roster) Len() int {
	return len(r.names)
}

// UnmarshalJSON decodes the service's name → activity mapping while
// preserving the object's key order, which encoding/json's map decoding
// would lose.
func (r *Roster) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("roster: read opening token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("roster: expected JSON object, got %v", tok)
	}

	r.names = nil
	r.byName = make(map[string]*Activity)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("roster: read activity name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("roster: activity name is not a string: %v", keyTok)
		}

		var a Activity
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("roster: decode activity %q: %w", name, err)
		}
		a.Name = name
		r.Add(&a)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("roster: read closing token: %w", err)
	}
	return nil
}

// MarshalJSON encodes the roster as a JSON object in document order.
func (r *Roster) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("roster: encode activity name %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.byName[name])
		if err != nil {
			return nil, fmt.Errorf("roster: encode activity %q: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MessageResponse is the service's success envelope for mutating calls.
type MessageResponse struct {
	Message string `json:"message"`
}

// DetailResponse is the service's error envelope for mutating calls.
type DetailResponse struct {
	Detail string `json:"detail"`
}
