package ticker

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidDelay = errors.New("ticker delay must be positive")

// Source delivers ticks at a fixed period until stopped.
type Source interface {
	C() <-chan time.Time
	Stop()
}

// NewSourceFunc starts a Source firing every d.
type NewSourceFunc func(d time.Duration) Source

type systemSource struct {
	t *time.Ticker
}

func (s systemSource) C() <-chan time.Time { return s.t.C }
func (s systemSource) Stop()               { s.t.Stop() }

// SystemSource is backed by time.Ticker, which drops ticks for slow receivers.
func SystemSource(d time.Duration) Source {
	return systemSource{t: time.NewTicker(d)}
}

// Ticker runs the most recently scheduled action on a fixed period. Replacing
// the action keeps the running loop; changing the delay restarts it.
type Ticker struct {
	action atomic.Pointer[func()]

	mu        sync.Mutex
	delay     time.Duration
	running   bool
	stopChan  chan struct{}
	doneChan  chan struct{}
	newSource NewSourceFunc
}

func New(src NewSourceFunc) *Ticker {
	if src == nil {
		src = SystemSource
	}
	return &Ticker{newSource: src}
}

// Schedule makes action the one invoked on every tick, starting or
// restarting the loop only when delay differs from the running period.
func (t *Ticker) Schedule(action func(), delay time.Duration) error {
	if delay <= 0 {
		return ErrInvalidDelay
	}
	t.action.Store(&action)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running && t.delay == delay {
		return nil
	}
	t.stopLocked()

	t.delay = delay
	t.running = true
	t.stopChan = make(chan struct{})
	t.doneChan = make(chan struct{})

	go t.loop(t.newSource(delay), t.stopChan, t.doneChan)
	return nil
}

// Cancel stops future firings and returns once the loop has exited. It must
// not be called from inside the action.
func (t *Ticker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Ticker) stopLocked() {
	if !t.running {
		return
	}
	t.running = false
	close(t.stopChan)
	<-t.doneChan
}

func (t *Ticker) loop(src Source, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer src.Stop()

	for {
		select {
		case <-stop:
			return
		case <-src.C():
			select {
			case <-stop:
				return
			default:
			}
			if action := t.action.Load(); action != nil && *action != nil {
				(*action)()
			}
		}
	}
}

func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Ticker) Delay() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.delay
}
