package conversation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypewriter_RevealsEveryPrefix(t *testing.T) {
	var mu sync.Mutex
	var prefixes []string
	done := make(chan struct{})

	tw := NewTypewriter("abc", time.Millisecond,
		func(prefix string) {
			mu.Lock()
			prefixes = append(prefixes, prefix)
			mu.Unlock()
		},
		func() { close(done) },
	)
	require.Equal(t, 3, tw.Len())

	tw.Start()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("typewriter did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a", "ab", "abc"}, prefixes)
}

func TestTypewriter_MultibyteRunes(t *testing.T) {
	var mu sync.Mutex
	var last string
	done := make(chan struct{})

	tw := NewTypewriter("héllo 👋", time.Millisecond,
		func(prefix string) {
			mu.Lock()
			last = prefix
			mu.Unlock()
		},
		func() { close(done) },
	)
	require.Equal(t, 7, tw.Len())

	tw.Start()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("typewriter did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "héllo 👋", last)
}

func TestTypewriter_StopSuppressesCompletion(t *testing.T) {
	completed := make(chan struct{})

	tw := NewTypewriter("some longer prompt text", 10*time.Millisecond,
		nil,
		func() { close(completed) },
	)
	tw.Start()
	time.Sleep(25 * time.Millisecond)
	tw.Stop()

	select {
	case <-completed:
		t.Fatal("completion fired after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTypewriter_StopIsIdempotent(t *testing.T) {
	tw := NewTypewriter("abc", time.Millisecond, nil, nil)
	tw.Start()
	tw.Stop()
	tw.Stop()
}

func TestTypewriter_EmptyText(t *testing.T) {
	done := make(chan struct{})

	tw := NewTypewriter("", time.Millisecond, nil, func() { close(done) })
	require.Equal(t, 0, tw.Len())

	tw.Start()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("empty typewriter did not complete")
	}
}
