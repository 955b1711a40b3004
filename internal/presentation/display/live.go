// Package display renders the live terminal view: a statistics header and a
// deficit sparkline, refreshed on a timer and whenever the underlying data
// file changes.
package display

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/term"

	"github.com/ChaseCares/pill-doser/internal/presentation/formatter"
	"github.com/ChaseCares/pill-doser/internal/util"
)

// RefreshFunc produces a fresh report for each redraw.
type RefreshFunc func(ctx context.Context) (formatter.Report, error)

// Live is the terminal dashboard.
type Live struct {
	w        io.Writer
	interval time.Duration
}

// NewLive creates a dashboard redrawing every interval.
func NewLive(w io.Writer, interval time.Duration) *Live {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Live{w: w, interval: interval}
}

// Run redraws until the context is cancelled. watchPath, when non-empty,
// names a data file whose writes trigger an immediate redraw; the parent
// directory is watched because saves replace the file by rename.
func (l *Live) Run(ctx context.Context, refresh RefreshFunc, watchPath string) error {
	var fileEvents chan fsnotify.Event

	if watchPath != "" {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			util.LogWarnf("file watching unavailable: %v", err)
		} else {
			defer watcher.Close()
			if err := watcher.Add(filepath.Dir(watchPath)); err != nil {
				util.LogWarnf("cannot watch %s: %v", watchPath, err)
			} else {
				fileEvents = make(chan fsnotify.Event, 1)
				go func() {
					for {
						select {
						case ev, ok := <-watcher.Events:
							if !ok {
								return
							}
							if filepath.Base(ev.Name) != filepath.Base(watchPath) {
								continue
							}
							select {
							case fileEvents <- ev:
							default:
							}
						case err, ok := <-watcher.Errors:
							if !ok {
								return
							}
							util.LogWarnf("watch error: %v", err)
						}
					}
				}()
			}
		}
	}

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	if err := l.draw(ctx, refresh); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := l.draw(ctx, refresh); err != nil {
				return err
			}
		case <-fileEvents:
			if err := l.draw(ctx, refresh); err != nil {
				return err
			}
		}
	}
}

func (l *Live) draw(ctx context.Context, refresh RefreshFunc) error {
	report, err := refresh(ctx)
	if err != nil {
		return err
	}

	width := terminalWidth()

	// Home the cursor and clear before each frame
	fmt.Fprint(l.w, "\033[H\033[2J")

	tp := util.GetTimeProvider()
	fmt.Fprintf(l.w, "pill-doser  %s\n\n", tp.Format(report.GeneratedAt, "15:04:05"))

	if err := formatter.NewSummaryFormatter(l.w).Format(report); err != nil {
		return err
	}

	if spark := Sparkline(report.Result.Curve, width); spark != "" {
		fmt.Fprintf(l.w, "\n%s\n", spark)
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
