package index

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fpick/internal/domain"
	"fpick/internal/eventbus"
)

// Scanner walks the filesystem under a root and produces file items in the
// background. Progress is exposed by polling, not by subscription.
type Scanner struct {
	bus eventbus.EventBus

	mu         sync.Mutex
	isScanning bool
	scanned    int
	total      int // final count of the previous scan
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewScanner creates a new scanner
func NewScanner(bus eventbus.EventBus) *Scanner {
	return &Scanner{bus: bus}
}

// Start begins scanning root in the background. onDone receives the
// collected items once, on completion; it is not called when the scan is
// cancelled.
func (s *Scanner) Start(ctx context.Context, root string, onDone func([]domain.FileItem)) error {
	s.mu.Lock()
	if s.isScanning {
		s.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	s.isScanning = true
	s.scanned = 0

	scanCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.mu.Unlock()

	s.bus.Publish(eventbus.ScanStartedEvent{Root: root})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		items := s.collect(scanCtx, root)

		// Install the result while still reporting "scanning" so a
		// poller seeing completion always sees the installed files.
		if scanCtx.Err() == nil && onDone != nil {
			onDone(items)
		}

		s.mu.Lock()
		s.isScanning = false
		s.total = len(items)
		s.cancelFunc = nil
		s.mu.Unlock()

		s.bus.Publish(eventbus.ScanCompletedEvent{FilesFound: len(items)})
	}()

	return nil
}

// Stop cancels any ongoing scan and waits for it to wind down
func (s *Scanner) Stop() {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// Progress returns the current scan state
func (s *Scanner) Progress() domain.ScanProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.ScanProgress{
		IsScanning: s.isScanning,
		Scanned:    s.scanned,
		Total:      s.total,
	}
}

// collect lists files under root, preferring git's view of tracked and
// untracked-but-not-ignored files, falling back to a plain walk.
func (s *Scanner) collect(ctx context.Context, root string) []domain.FileItem {
	relPaths, err := gitListFiles(ctx, root)
	if err != nil {
		log.Printf("git file listing unavailable for %s, walking: %v", root, err)
		relPaths = s.walkFiles(ctx, root)
	}

	items := make([]domain.FileItem, 0, len(relPaths))
	for _, rel := range relPaths {
		select {
		case <-ctx.Done():
			return items
		default:
		}

		abs := filepath.Join(root, rel)
		info, err := os.Lstat(abs)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		items = append(items, domain.FileItem{
			Path:         abs,
			RelativePath: filepath.ToSlash(rel),
			Name:         filepath.Base(rel),
			Extension:    strings.TrimPrefix(filepath.Ext(rel), "."),
			Directory:    dirOf(rel),
			Size:         info.Size(),
			Modified:     info.ModTime(),
			GitStatus:    domain.GitStatusClear,
		})

		s.mu.Lock()
		s.scanned = len(items)
		s.mu.Unlock()
	}

	return items
}

// gitListFiles asks git for cached plus untracked files, which applies the
// repository's ignore rules for free.
func gitListFiles(ctx context.Context, root string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "-C", root,
		"ls-files", "--cached", "--others", "--exclude-standard", "-z")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	var paths []string
	for _, f := range bytes.Split(out, []byte{0}) {
		if len(f) > 0 {
			paths = append(paths, string(f))
		}
	}
	return paths, nil
}

// walkFiles is the non-repository fallback
func (s *Scanner) walkFiles(ctx context.Context, root string) []string {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			log.Printf("error walking path %s: %v", path, err)
			return nil
		}

		if d.IsDir() {
			if skipDir(d.Name()) && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil && ctx.Err() == nil {
		log.Printf("walk failed for %s: %v", root, err)
	}

	return paths
}

// skipDir filters directories that are never worth indexing
func skipDir(name string) bool {
	switch name {
	case ".git", "node_modules", "vendor", "dist", "build", "target",
		"__pycache__", ".cache", ".venv", "venv":
		return true
	}
	return false
}

func dirOf(rel string) string {
	dir := filepath.Dir(rel)
	if dir == "." {
		return ""
	}
	return filepath.ToSlash(dir)
}
