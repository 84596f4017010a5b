package domain

import "time"

// State represents the shared, mutable store of one session.
//
// Keys are namespaced by convention (e.g. "git.changes", "jira.ticket") so
// workflows do not collide. Keys are only added or overwritten, never
// removed mid-pipeline; stages must tolerate absent keys.
type State struct {
	// SessionID identifies the owning session.
	SessionID string `json:"session_id"`

	// UserID is the user the session belongs to.
	UserID string `json:"user_id"`

	// CreatedAt is when the session was first seeded.
	CreatedAt time.Time `json:"created_at"`

	// Workflow is the name of the last workflow dispatched for this session.
	Workflow string `json:"workflow,omitempty"`

	// Values holds the shared key/value data mutated by stages.
	Values map[string]any `json:"values"`
}

// NewState creates a clean state for a session.
func NewState(sessionID, userID string) *State {
	return &State{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		Values:    make(map[string]any),
	}
}

// Get returns the value for key. The second return reports presence, so
// stages can distinguish "absent" (not yet produced upstream) from a zero
// value. Absent reads are never an error.
func (s *State) Get(key string) (any, bool) {
	v, ok := s.Values[key]
	return v, ok
}

// GetString returns the value for key as a string, or "" when absent or
// of another type.
func (s *State) GetString(key string) string {
	if v, ok := s.Values[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// Set stores a value. Overwriting is allowed; there is no delete.
func (s *State) Set(key string, value any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = value
}

// Snapshot returns a deep copy of the values for result reporting.
// Mutating the snapshot never affects the live state.
func (s *State) Snapshot() map[string]any {
	return cloneMap(s.Values)
}

// Clone returns a deep copy of the full state, suitable for store adapters
// that must isolate their data from caller mutation.
func (s *State) Clone() *State {
	cp := *s
	cp.Values = cloneMap(s.Values)
	return &cp
}

func cloneMap(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

// cloneValue copies the container shapes produced by stages and JSON
// round-trips (maps and slices). Scalars are copied by value.
func cloneValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return cloneMap(tv)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(tv))
		copy(out, tv)
		return out
	default:
		return v
	}
}
