package formdom

import (
	"sync"
	"time"
	"unicode/utf8"

	"evalportal/internal/platform/debounce"
)

const (
	SearchDelay     = 500 * time.Millisecond
	SearchMinLength = 3
)

// SearchBinding coalesces keystrokes of a search box. Once input stops for
// the delay, Submit receives the term if it is empty or at least
// SearchMinLength characters long. A nil Submit makes the binding inert.
//
// The rendered pages submit their search forms on request and only publish
// the delay in data-search-delay, so no handler drives a SearchBinding; it
// serves callers that replay input events against a document.
type SearchBinding struct {
	Submit func(term string)

	debouncer *debounce.Debouncer

	mu   sync.Mutex
	term string
}

func NewSearchBinding(delay time.Duration, submit func(term string)) *SearchBinding {
	if delay <= 0 {
		delay = SearchDelay
	}
	s := &SearchBinding{Submit: submit}
	s.debouncer = debounce.New(delay, s.fire)
	return s
}

func (s *SearchBinding) Input(term string) {
	s.mu.Lock()
	s.term = term
	s.mu.Unlock()

	s.debouncer.Trigger()
}

func (s *SearchBinding) Stop() bool {
	return s.debouncer.Stop()
}

func (s *SearchBinding) fire() {
	s.mu.Lock()
	term := s.term
	submit := s.Submit
	s.mu.Unlock()

	n := utf8.RuneCountInString(term)
	if submit == nil || (n > 0 && n < SearchMinLength) {
		return
	}
	submit(term)
}
