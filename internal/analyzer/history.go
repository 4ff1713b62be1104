package analyzer

import (
	"sync"
)

// HistoryStore owns the per-course append-only fingerprint lists used by
// one-vs-history checking. Appends are serialized; readers take a
// point-in-time snapshot so a fingerprint appended mid-request stays
// invisible to that request's in-flight comparisons. In-memory only;
// durability is the caller's choice.
type HistoryStore struct {
	mu       sync.RWMutex
	byCourse map[string][]*Fingerprint
}

// NewHistoryStore creates an empty history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		byCourse: make(map[string][]*Fingerprint),
	}
}

// Snapshot returns a stable copy of a course's current fingerprints.
func (s *HistoryStore) Snapshot(courseID string) []*Fingerprint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.byCourse[courseID]
	snapshot := make([]*Fingerprint, len(history))
	copy(snapshot, history)
	return snapshot
}

// Append adds a fingerprint to a course's history.
func (s *HistoryStore) Append(courseID string, fp *Fingerprint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byCourse[courseID] = append(s.byCourse[courseID], fp)
}

// Size returns the number of fingerprints stored for a course.
func (s *HistoryStore) Size(courseID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byCourse[courseID])
}

// Courses returns the course IDs with at least one fingerprint.
func (s *HistoryStore) Courses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]string, 0, len(s.byCourse))
	for courseID := range s.byCourse {
		courses = append(courses, courseID)
	}
	return courses
}
