package display

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"countdown_tui/internal/countdown"
	"countdown_tui/internal/ticker"
)

const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorBold  = "\033[1m"
)

// Plain is a line-mode surface that redraws the countdown in place.
type Plain struct {
	Out   io.Writer
	Color bool

	mu sync.Mutex
}

func (p *Plain) Publish(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Color {
		fmt.Fprintf(p.Out, "\r%s%s%s%s\033[K", colorBold, colorCyan, text, colorReset)
		return
	}
	fmt.Fprintf(p.Out, "\r%s\033[K", text)
}

// Run ticks cd every delay until the completion tick has been applied or ctx
// is done. The ticker is cancelled before Run returns.
func (p *Plain) Run(ctx context.Context, cd *countdown.Countdown, t *ticker.Ticker, delay time.Duration) error {
	done := make(chan struct{}, 1)

	p.Publish(cd.Display())
	err := t.Schedule(func() {
		p.Publish(cd.Tick())
		if cd.State() == countdown.Completed {
			select {
			case done <- struct{}{}:
			default:
			}
		}
	}, delay)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-done:
	}
	t.Cancel()

	fmt.Fprintln(p.Out)
	return err
}
