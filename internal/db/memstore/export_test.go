package memstore

import "time"

// Backdate rewrites fecha_agregado of a video.
func (s *Store) Backdate(id int64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.videos[id]; ok {
		v.AddedAt = at
	}
}
