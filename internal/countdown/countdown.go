package countdown

import (
	"errors"
	"io"
	"log"
	"sync"

	"countdown_tui/internal/timefmt"
)

var ErrNegativeSeconds = errors.New("countdown seconds must not be negative")

type State int

const (
	Running State = iota
	JustCompleted
	Completed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case JustCompleted:
		return "just completed"
	case Completed:
		return "completed"
	}
	return "unknown"
}

type Options struct {
	Seconds        int
	Format         timefmt.Format
	ShowDoubleZero bool

	// OnProgress receives the new remaining value after each decrement.
	OnProgress func(remaining int)
	// OnComplete is called with true once per run when zero is reached.
	OnComplete func(complete bool)

	Logger *log.Logger
}

// Countdown holds one countdown value and the text derived from it.
type Countdown struct {
	mu              sync.Mutex
	initial         int
	remaining       int
	completionFired bool
	display         string

	format         timefmt.Format
	showDoubleZero bool
	onProgress     func(int)
	onComplete     func(bool)
	logger         *log.Logger
}

func New(opts Options) (*Countdown, error) {
	if opts.Seconds < 0 {
		return nil, ErrNegativeSeconds
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Countdown{
		initial:        opts.Seconds,
		remaining:      opts.Seconds,
		display:        timefmt.Placeholder(opts.Format),
		format:         opts.Format,
		showDoubleZero: opts.ShowDoubleZero,
		onProgress:     opts.OnProgress,
		onComplete:     opts.OnComplete,
		logger:         logger,
	}, nil
}

// Tick applies one transition and returns the new display text. The text is
// rendered from the remaining value after the transition.
func (c *Countdown) Tick() string {
	c.mu.Lock()
	var progressed, completed bool
	switch {
	case c.remaining > 0:
		c.remaining--
		progressed = true
	case !c.completionFired:
		c.completionFired = true
		completed = true
	}
	remaining := c.remaining
	c.display = timefmt.Render(remaining, c.format, c.showDoubleZero)
	display := c.display
	c.mu.Unlock()

	// Callbacks run unlocked so they may call Reset.
	if progressed && c.onProgress != nil {
		c.onProgress(remaining)
	}
	if completed {
		if c.onComplete != nil {
			c.onComplete(true)
		} else {
			c.logger.Printf("countdown finished with no completion callback set; pass one to be notified")
		}
	}
	return display
}

// Reset starts a new run from the initial value. The display keeps its
// current text until the next tick.
func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remaining = c.initial
	c.completionFired = false
}

func (c *Countdown) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.remaining > 0:
		return Running
	case !c.completionFired:
		return JustCompleted
	}
	return Completed
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

func (c *Countdown) Initial() int {
	return c.initial
}

func (c *Countdown) CompletionFired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completionFired
}

func (c *Countdown) Display() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.display
}

func (c *Countdown) Format() timefmt.Format {
	return c.format
}
