package reasoning

import (
	"context"
	"fmt"
	"sync"
)

// Stub is a deterministic Capability for tests. Responses are consumed in
// order; when the queue is empty, Fn (if set) produces the answer. Every
// call is recorded.
type Stub struct {
	mu        sync.Mutex
	Responses []string
	Fn        func(Completion) (string, error)
	Err       error
	// ErrAfter, when > 0, makes call number ErrAfter (1-based) fail.
	ErrAfter int

	calls []Completion
}

// Complete pops the next scripted response.
func (s *Stub) Complete(_ context.Context, c Completion) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, c)

	if s.ErrAfter > 0 && len(s.calls) == s.ErrAfter {
		if s.Err != nil {
			return "", s.Err
		}
		return "", fmt.Errorf("stub failure on call %d", s.ErrAfter)
	}
	if s.Err != nil && s.ErrAfter == 0 {
		return "", s.Err
	}

	if len(s.Responses) > 0 {
		out := s.Responses[0]
		s.Responses = s.Responses[1:]
		return out, nil
	}
	if s.Fn != nil {
		return s.Fn(c)
	}
	return "", fmt.Errorf("stub has no response for role %q", c.Role)
}

// Calls returns a copy of the recorded completions.
func (s *Stub) Calls() []Completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Completion, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many completions were requested.
func (s *Stub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
