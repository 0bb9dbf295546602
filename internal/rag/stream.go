// Package rag implements the streaming retrieval-augmented answer pipeline:
// an event stream per request, a processor that drives retrieval, completion
// and citation resolution, and a gin adapter rendering the stream as
// server-sent events.
package rag

import "sync"

// Envelope pairs an SSE event name with its JSON payload.
type Envelope struct {
	Event string
	Data  any
}

// Stream is an unbounded FIFO queue decoupling the processor goroutine from
// the HTTP response writer. Any goroutine may Send; a single consumer drains
// with Next. Close marks the end of the stream: events sent before Close are
// still delivered, events sent after are dropped.
type Stream struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    []Envelope
	read     int
	closedAt int // enqueue position of the sentinel, -1 while open
}

func NewStream() *Stream {
	s := &Stream{closedAt: -1}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Send enqueues an event. It never blocks.
func (s *Stream) Send(event string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closedAt >= 0 {
		return
	}
	s.items = append(s.items, Envelope{Event: event, Data: data})
	s.cond.Signal()
}

// Close enqueues the sentinel. Safe to call more than once.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closedAt >= 0 {
		return
	}
	s.closedAt = len(s.items)
	s.cond.Broadcast()
}

// Next blocks until an event is available. The second return is false once
// every event enqueued before Close has been consumed.
func (s *Stream) Next() (Envelope, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.closedAt >= 0 && s.read >= s.closedAt {
			return Envelope{}, false
		}
		if s.read < len(s.items) {
			env := s.items[s.read]
			s.read++
			return env, true
		}
		s.cond.Wait()
	}
}
