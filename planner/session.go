package planner

import (
	"time"

	"github.com/theoremus-urban-solutions/transit-fares/fare"
)

// Session is one rider's sequence of trips. Not safe for concurrent use.
type Session struct {
	planner *Planner
	state   fare.State
	history []Quote
	total   fare.Money
}

// NewSession starts a session with the zero fare state.
func (p *Planner) NewSession() *Session {
	return &Session{planner: p}
}

// Trip plans and prices the next trip of the session. Failed trips leave the
// session untouched.
func (s *Session) Trip(origin, destination string, at time.Time) (Quote, error) {
	q, next, err := s.planner.Plan(s.state, origin, destination, at)
	if err != nil {
		return Quote{}, err
	}
	s.state = next
	s.history = append(s.history, q)
	s.total += q.Fare.Amount
	return q, nil
}

// State is the rider's current fare state.
func (s *Session) State() fare.State { return s.state }

// History returns the successful trips in the order they were taken.
func (s *Session) History() []Quote {
	return append([]Quote(nil), s.history...)
}

// Total is the sum charged across the session.
func (s *Session) Total() fare.Money { return s.total }
