package widget

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"countdown_tui/internal/countdown"
	"countdown_tui/internal/ticker"
	"countdown_tui/internal/timefmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const DefaultDelay = time.Second

// TickMsg asks the widget to apply one countdown tick. The zero value is
// always applied; ticks sent by the widget's own ticker carry the schedule
// they came from and are dropped once that schedule is replaced.
type TickMsg struct {
	gen uint64
}

// ResetMsg asks the widget to restart its countdown.
type ResetMsg struct{}

// Handle is the only way for outside code to mutate a mounted widget.
type Handle interface {
	ResetTimer()
}

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

type Options struct {
	Timestamp      int
	Delay          time.Duration
	Format         timefmt.Format
	ShowDoubleZero bool

	TimerOnProgress func(remaining int)
	TimerCallback   func(complete bool)

	// Styles are handed to the renderer as-is.
	ContainerStyle lipgloss.Style
	TextStyle      lipgloss.Style

	Logger *log.Logger
	Source ticker.NewSourceFunc
}

type Model struct {
	countdown *countdown.Countdown
	ticker    *ticker.Ticker

	mu     sync.Mutex
	delay  time.Duration
	sender Sender

	// gen identifies the current schedule; pending is set while one of its
	// ticks is on the way to Update.
	gen     atomic.Uint64
	pending atomic.Bool

	containerStyle lipgloss.Style
	textStyle      lipgloss.Style
}

var _ Handle = (*Model)(nil)

func New(opts Options) (*Model, error) {
	delay := opts.Delay
	if delay == 0 {
		delay = DefaultDelay
	}
	if delay < 0 {
		return nil, fmt.Errorf("invalid delay %s: %w", delay, ticker.ErrInvalidDelay)
	}

	cd, err := countdown.New(countdown.Options{
		Seconds:        opts.Timestamp,
		Format:         opts.Format,
		ShowDoubleZero: opts.ShowDoubleZero,
		OnProgress:     opts.TimerOnProgress,
		OnComplete:     opts.TimerCallback,
		Logger:         opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %d: %w", opts.Timestamp, err)
	}

	return &Model{
		countdown:      cd,
		ticker:         ticker.New(opts.Source),
		delay:          delay,
		containerStyle: opts.ContainerStyle,
		textStyle:      opts.TextStyle,
	}, nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.gen != 0 {
			if msg.gen != m.gen.Load() {
				return m, nil
			}
			m.pending.Store(false)
		}
		m.countdown.Tick()
	case ResetMsg:
		m.countdown.Reset()
	}
	return m, nil
}

func (m *Model) View() string {
	return m.containerStyle.Render(m.textStyle.Render(m.countdown.Display()))
}

// Mount starts ticking into s. Every tick arrives as a TickMsg so it is
// handled on the program's event loop.
func (m *Model) Mount(s Sender) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sender = s
	return m.scheduleLocked()
}

// SetDelay changes the tick period. A mounted widget restarts its ticker at
// the new period; the old one is stopped first.
func (m *Model) SetDelay(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("invalid delay %s: %w", d, ticker.ErrInvalidDelay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	if m.sender == nil {
		return nil
	}
	return m.scheduleLocked()
}

// scheduleLocked never lets the ticker loop block on the program: a tick is
// handed off in its own goroutine, and only one may be outstanding.
func (m *Model) scheduleLocked() error {
	s := m.sender
	gen := m.gen.Load()
	if m.ticker.Delay() != m.delay || !m.ticker.Running() {
		gen = m.gen.Add(1)
		m.pending.Store(false)
	}
	return m.ticker.Schedule(func() {
		if !m.pending.CompareAndSwap(false, true) {
			return
		}
		go s.Send(TickMsg{gen: gen})
	}, m.delay)
}

// Unmount stops the ticker. Hosts must call it before discarding the widget.
func (m *Model) Unmount() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticker.Cancel()
	m.gen.Add(1)
	m.sender = nil
}

// ResetTimer restarts the countdown from its initial value and re-arms the
// completion callback.
func (m *Model) ResetTimer() {
	m.countdown.Reset()
}

func (m *Model) Delay() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delay
}

func (m *Model) Mounted() bool {
	return m.ticker.Running()
}

func (m *Model) Remaining() int {
	return m.countdown.Remaining()
}

func (m *Model) State() countdown.State {
	return m.countdown.State()
}

func (m *Model) Display() string {
	return m.countdown.Display()
}

func (m *Model) Format() timefmt.Format {
	return m.countdown.Format()
}
