package gui

import (
	"fmt"
	"io"
	"sync"

	"edgeframe/internal/algorithms"
	"edgeframe/internal/app"
	"edgeframe/internal/frame"
)

// Session holds the loaded frame and the latest result for the viewer. It
// has no UI dependencies.
type Session struct {
	env      *app.Environment
	mu       sync.RWMutex
	original *frame.Frame
	result   *algorithms.ProcessingResult
}

func NewSession(env *app.Environment) *Session {
	return &Session{env: env}
}

// Load decodes r as the new original frame and drops any previous result.
func (s *Session) Load(r io.Reader) (*frame.Frame, error) {
	f, _, err := s.env.Codec.Decode(r)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.original = f
	s.result = nil
	s.mu.Unlock()

	return f, nil
}

func (s *Session) Original() *frame.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.original
}

func (s *Session) Result() *algorithms.ProcessingResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Process runs the current algorithm on the original frame.
func (s *Session) Process() (*algorithms.ProcessingResult, error) {
	original := s.Original()
	if original == nil {
		return nil, fmt.Errorf("no image loaded")
	}

	result, err := s.env.Algorithms.RunCurrent(original)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.result = result
	s.mu.Unlock()

	return result, nil
}

// Save encodes the latest result to w.
func (s *Session) Save(w io.Writer, format string) error {
	result := s.Result()
	if result == nil {
		return fmt.Errorf("no processed image to save")
	}
	return s.env.Codec.Encode(w, result.Output, format)
}
