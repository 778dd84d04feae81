package wm

// Suppressor reference-counts gesture suppression requests so that nested or
// overlapping requests compose: the host is toggled on the first acquire and
// restored only on the last release.
type Suppressor struct {
	host GestureHost
	refs int
}

// NewSuppressor returns a Suppressor driving host. A nil host is allowed and
// makes the suppressor count-only.
func NewSuppressor(host GestureHost) *Suppressor {
	return &Suppressor{host: host}
}

// Acquire requests gesture suppression.
func (s *Suppressor) Acquire() {
	s.refs++
	if s.refs == 1 && s.host != nil {
		s.host.SetGesturesSuppressed(true)
	}
}

// Release drops one suppression request. Releasing more times than acquired
// is a no-op.
func (s *Suppressor) Release() {
	if s.refs == 0 {
		return
	}
	s.refs--
	if s.refs == 0 && s.host != nil {
		s.host.SetGesturesSuppressed(false)
	}
}

// Active reports whether any suppression request is outstanding.
func (s *Suppressor) Active() bool { return s.refs > 0 }
