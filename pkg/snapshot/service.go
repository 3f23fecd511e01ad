package snapshot

import "sync/atomic"

// Service holds the current snapshot behind an atomic pointer so reads
// never block a refresh.
type Service struct {
	current atomic.Pointer[Snapshot]
}

func NewService() *Service {
	return &Service{}
}

// Current returns the latest snapshot, or nil before the first refresh.
func (s *Service) Current() *Snapshot {
	return s.current.Load()
}

// Set swaps in a new snapshot.
func (s *Service) Set(snap *Snapshot) {
	s.current.Store(snap)
}
