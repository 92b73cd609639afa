// Package theme holds the site's light/dark flag and notifies the components
// that have to react when it flips.
package theme

// Signal is the single source of the theme flag. Readers call Dark once per
// frame; components with side effects on a flip (the music player) Subscribe.
//
// Signal is not safe for concurrent use; it lives on the frame loop.
type Signal struct {
	dark   bool
	nextID int
	subs   map[int]func(dark bool)
	order  []int
}

func NewSignal(dark bool) *Signal {
	return &Signal{dark: dark, subs: map[int]func(bool){}}
}

func (s *Signal) Dark() bool { return s.dark }

// Set changes the flag. Subscribers run, in subscription order, only when
// the value actually changes.
func (s *Signal) Set(dark bool) {
	if s.dark == dark {
		return
	}
	s.dark = dark
	for _, id := range s.order {
		if fn, ok := s.subs[id]; ok {
			fn(dark)
		}
	}
}

func (s *Signal) Toggle() { s.Set(!s.dark) }

// Subscribe registers fn for future changes and returns a cancel func.
// Cancelling twice is harmless.
func (s *Signal) Subscribe(fn func(dark bool)) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	return func() {
		if _, ok := s.subs[id]; !ok {
			return
		}
		delete(s.subs, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Subscribers reports how many subscriptions are live.
func (s *Signal) Subscribers() int { return len(s.subs) }
