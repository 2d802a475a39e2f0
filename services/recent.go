package services

import "sync"

// DefaultRecentCapacity matches the client cache this replaces: ten ids,
// most recent first.
const DefaultRecentCapacity = 10

// RecentSessions is a bounded ordered set of recently touched session ids.
// Touching an id promotes it to the front; the oldest entry falls off when
// the cap is exceeded.
type RecentSessions struct {
	mu  sync.Mutex
	ids []string
	cap int
}

func NewRecentSessions(capacity int) *RecentSessions {
	if capacity <= 0 {
		capacity = DefaultRecentCapacity
	}
	return &RecentSessions{cap: capacity}
}

// Touch moves the id to the front, inserting it if absent.
func (r *RecentSessions) Touch(id string) {
	if id == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.remove(id)
	r.ids = append([]string{id}, r.ids...)
	if len(r.ids) > r.cap {
		r.ids = r.ids[:r.cap]
	}
}

// Remove evicts the id if present.
func (r *RecentSessions) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(id)
}

// List returns the ids, most recent first.
func (r *RecentSessions) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

func (r *RecentSessions) remove(id string) {
	for i, v := range r.ids {
		if v == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			return
		}
	}
}
