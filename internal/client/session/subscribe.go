package session

// Subscribe returns a channel that receives the state after every mutation,
// starting with the current one, and a function that cancels the
// subscription and closes the channel.
//
// Delivery is coalescing: a slow reader sees the latest state, not every
// intermediate one. Mutations never block on subscribers.
func (s *Store) Subscribe() (<-chan AuthState, func()) {
	ch := make(chan AuthState, 1)

	s.mu.Lock()
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.state.clone()
	s.subMu.Unlock()
	s.mu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (s *Store) publish(st AuthState) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		// drop the stale value, if any, then deliver the latest
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- st.clone():
		default:
		}
	}
}
