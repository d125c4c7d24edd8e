package internal

import (
	"fmt"
	"log"
	"time"

	"countdown_tui/internal/config"
	"countdown_tui/internal/countdown"
	"countdown_tui/internal/runlog"
	"countdown_tui/internal/widget"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	recentRuns = 5
	minDelay   = 10 * time.Millisecond
	maxDelay   = time.Minute
)

type Model struct {
	Widget *widget.Model
	Config *config.Config
	Err    error

	// Run tracking for the run log
	RunStarted   time.Time
	LastProgress int
	Completions  int
	Runs         []runlog.Run

	repo   *runlog.Repository
	logger *log.Logger
	now    func() time.Time
}

func NewModel(cfg *config.Config, logger *log.Logger) (*Model, error) {
	if logger == nil {
		logger = log.Default()
	}

	m := &Model{
		Config:       cfg,
		LastProgress: cfg.Timestamp,
		logger:       logger,
		now:          time.Now,
	}

	if cfg.LogDB != "" {
		repo, err := runlog.Open(cfg.LogDB)
		if err != nil {
			return nil, fmt.Errorf("failed to open run log: %w", err)
		}
		runs, err := repo.Recent(recentRuns)
		if err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to load runs: %w", err)
		}
		m.repo = repo
		m.Runs = runs
	}

	w, err := widget.New(widget.Options{
		Timestamp:       cfg.Timestamp,
		Delay:           cfg.Delay,
		Format:          cfg.DisplayFormat(),
		ShowDoubleZero:  cfg.ShowDoubleZero,
		TimerOnProgress: m.onProgress,
		TimerCallback:   m.onComplete,
		ContainerStyle:  containerStyle,
		TextStyle:       timerTextStyle,
		Logger:          logger,
	})
	if err != nil {
		if m.repo != nil {
			m.repo.Close()
		}
		return nil, err
	}
	m.Widget = w
	m.RunStarted = m.now()

	return m, nil
}

// Mount starts the widget's ticker, delivering ticks to s.
func (m *Model) Mount(s widget.Sender) error {
	return m.Widget.Mount(s)
}

func (m *Model) Init() tea.Cmd {
	return m.Widget.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case widget.TickMsg, widget.ResetMsg:
		_, cmd := m.Widget.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	return m.mainView()
}

func (m *Model) onProgress(remaining int) {
	m.LastProgress = remaining
}

func (m *Model) onComplete(bool) {
	m.Completions++
	if m.repo == nil {
		return
	}
	run := &runlog.Run{
		Seconds:     m.Config.Timestamp,
		Format:      m.Widget.Format().String(),
		StartedAt:   m.RunStarted,
		CompletedAt: m.now(),
	}
	if err := m.repo.Create(run); err != nil {
		m.Err = err
		m.logger.Printf("failed to record run: %v", err)
		return
	}
	m.Runs = append([]runlog.Run{*run}, m.Runs...)
	if len(m.Runs) > recentRuns {
		m.Runs = m.Runs[:recentRuns]
	}
}

func (m *Model) Reset() {
	m.Widget.ResetTimer()
	m.RunStarted = m.now()
	m.LastProgress = m.Config.Timestamp
}

// ChangeDelay scales the tick period, clamped to [minDelay, maxDelay].
func (m *Model) ChangeDelay(factor float64) {
	d := time.Duration(float64(m.Widget.Delay()) * factor)
	d = max(d, minDelay)
	d = min(d, maxDelay)
	if err := m.Widget.SetDelay(d); err != nil {
		m.Err = err
	}
}

func (m *Model) Completed() bool {
	return m.Widget.State() == countdown.Completed
}

func (m *Model) Close() error {
	m.Widget.Unmount()
	if m.repo != nil {
		return m.repo.Close()
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "r":
		m.Reset()
	case "+", "=":
		m.ChangeDelay(2)
	case "-", "_":
		m.ChangeDelay(0.5)
	}
	return m, nil
}
