// Package browse is an interactive terminal view of a document that moves
// focus with the arrow keys.
package browse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/spatialnav/internal/document"
	"github.com/1broseidon/spatialnav/internal/index"
	"github.com/1broseidon/spatialnav/internal/watch"
)

// Options configures the browser.
type Options struct {
	Rules index.Rules
	// Throttle drops key presses closer together than this.
	Throttle time.Duration
	// Watch reloads the document when the file changes.
	Watch bool
}

// Run opens path and browses it until the user quits.
func Run(ctx context.Context, path string, opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("browse requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	tree, err := document.LoadFile(path)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newModel(path, tree, opts), tea.WithAltScreen(), tea.WithContext(ctx))

	if opts.Watch {
		w, err := watch.New(watch.Config{
			Files: []string{path},
			OnChange: func([]string) {
				tree, err := document.LoadFile(path)
				p.Send(reloadMsg{tree: tree, err: err})
			},
		})
		if err != nil {
			return err
		}
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go w.Run(watchCtx)
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}
