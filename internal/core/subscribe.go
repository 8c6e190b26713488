package core

// Event announces a committed mutation.
type Event struct {
	Entity    EntityType
	Action    Action
	ID        string
	Operation string
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subscribe registers fn to be called synchronously, in subscription order,
// after every committed mutation. Failed mutations notify nobody. The
// returned function removes the subscription and is safe to call twice.
func (s *Service) Subscribe(fn func(Event)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.subMu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (s *Service) notify(evt Event) {
	s.subMu.Lock()
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()
	for _, sub := range subs {
		sub.fn(evt)
	}
}
