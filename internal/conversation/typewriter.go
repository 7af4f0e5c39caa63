package conversation

import (
	"sync"
	"time"
	"unicode/utf8"
)

// Typewriter reveals a prompt one character at a time on a fixed
// interval, mirroring the wizard's typing animation. It runs on a
// single goroutine; Stop discards the remaining reveals without
// emitting partial callbacks, and the completion callback fires at
// most once.
type Typewriter struct {
	text     string
	interval time.Duration

	onReveal   func(prefix string)
	onComplete func()

	mu      sync.Mutex
	done    chan struct{}
	started bool
	stopped bool
}

func NewTypewriter(text string, interval time.Duration, onReveal func(prefix string), onComplete func()) *Typewriter {
	return &Typewriter{
		text:       text,
		interval:   interval,
		onReveal:   onReveal,
		onComplete: onComplete,
		done:       make(chan struct{}),
	}
}

// Start begins the reveal loop. Empty text completes on the first tick.
func (t *Typewriter) Start() {
	t.mu.Lock()
	if t.started || t.stopped {
		t.mu.Unlock()
		return
	}
	t.started = true
	t.mu.Unlock()

	go t.run()
}

func (t *Typewriter) run() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	runes := []rune(t.text)
	revealed := 0

	for {
		select {
		case <-ticker.C:
			if revealed < len(runes) {
				revealed++
				t.emitReveal(string(runes[:revealed]))
				continue
			}
			t.emitComplete()
			return
		case <-t.done:
			return
		}
	}
}

func (t *Typewriter) emitReveal(prefix string) {
	t.mu.Lock()
	stopped := t.stopped
	t.mu.Unlock()
	if stopped {
		return
	}
	if t.onReveal != nil {
		t.onReveal(prefix)
	}
}

func (t *Typewriter) emitComplete() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	close(t.done)
	t.mu.Unlock()

	if t.onComplete != nil {
		t.onComplete()
	}
}

// Stop cancels the animation. Pending reveals are discarded and the
// completion callback will not fire. Safe to call more than once.
func (t *Typewriter) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	close(t.done)
}

// Len reports how many characters the typewriter will reveal in total.
func (t *Typewriter) Len() int {
	return utf8.RuneCountInString(t.text)
}
