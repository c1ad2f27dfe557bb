package ui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// FilePager shows a file's complete content outside the picker viewport.
// The preview pane is bounded; the pager is not.
type FilePager interface {
	ShowFile(path string) error
}

// ovPager pages files through the ov library, taking over the terminal for
// the duration.
type ovPager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

func newOvPager(program *tea.Program) *ovPager {
	return &ovPager{program: program}
}

// ShowFile pages path's full content using ov
func (p *ovPager) ShowFile(path string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(f)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
