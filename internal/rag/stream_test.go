package rag

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStreamPreservesFIFOOrder(t *testing.T) {
	s := NewStream()
	s.Send(EventInfo, 1)
	s.Send(EventAnswer, 2)
	s.Send(EventCitation, 3)
	s.Close()

	var got []any
	for {
		env, ok := s.Next()
		if !ok {
			break
		}
		got = append(got, env.Data)
	}
	assert.Equal(t, []any{1, 2, 3}, got)
}

func TestStreamNextBlocksUntilSend(t *testing.T) {
	s := NewStream()

	done := make(chan Envelope, 1)
	go func() {
		env, ok := s.Next()
		assert.True(t, ok)
		done <- env
	}()

	time.Sleep(10 * time.Millisecond)
	s.Send(EventInfo, "hello")

	select {
	case env := <-done:
		assert.Equal(t, EventInfo, env.Event)
		assert.Equal(t, "hello", env.Data)
	case <-time.After(time.Second):
		t.Fatal("Next did not wake up after Send")
	}
}

func TestStreamCloseIsIdempotent(t *testing.T) {
	s := NewStream()
	s.Send(EventInfo, "before")
	s.Close()
	s.Close()
	s.Close()

	env, ok := s.Next()
	assert.True(t, ok)
	assert.Equal(t, "before", env.Data)

	_, ok = s.Next()
	assert.False(t, ok)
	_, ok = s.Next()
	assert.False(t, ok)
}

func TestStreamDropsSendsAfterClose(t *testing.T) {
	s := NewStream()
	s.Send(EventInfo, "kept")
	s.Close()
	s.Send(EventInfo, "dropped")

	env, ok := s.Next()
	assert.True(t, ok)
	assert.Equal(t, "kept", env.Data)

	_, ok = s.Next()
	assert.False(t, ok)
}

func TestStreamConcurrentProducers(t *testing.T) {
	s := NewStream()

	const perProducer = 100
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				s.Send(EventInfo, i)
			}
		}()
	}
	go func() {
		wg.Wait()
		s.Close()
	}()

	count := 0
	for {
		_, ok := s.Next()
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, 4*perProducer, count)
}
