package preview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileInfoFunc reports a file's metadata; absent files return an error
type FileInfoFunc func(path string) (mod time.Time, size int64, isDir bool, err error)

// OSFileInfo is the production FileInfoFunc
func OSFileInfo(path string) (time.Time, int64, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, 0, false, err
	}
	return info.ModTime(), info.Size(), info.IsDir(), nil
}

// ReadFunc reads up to max bytes from a file
type ReadFunc func(path string, max int64) ([]byte, error)

// OSRead is the production ReadFunc. It fills the buffer up to max; a
// short file is not an error.
func OSRead(path string, max int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, max)
	n, err := io.ReadFull(f, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Loader builds preview cache entries from file content. Oversized,
// binary, or unreadable files yield descriptive placeholder entries
// rather than errors.
type Loader struct {
	maxLines int
	maxBytes int64
	stat     FileInfoFunc
	read     ReadFunc
}

// NewLoader creates a loader with the given content bounds
func NewLoader(maxLines int, maxBytes int64, stat FileInfoFunc, read ReadFunc) *Loader {
	if stat == nil {
		stat = OSFileInfo
	}
	if read == nil {
		read = OSRead
	}
	return &Loader{
		maxLines: maxLines,
		maxBytes: maxBytes,
		stat:     stat,
		read:     read,
	}
}

// Load produces an entry for path. It never returns an error: failures
// become placeholder entries so the session keeps running.
func (l *Loader) Load(path string) *Entry {
	now := time.Now()

	mod, size, isDir, err := l.stat(path)
	if err != nil {
		return placeholder(KindUnreadable, now, time.Time{},
			fmt.Sprintf("Cannot read %s", path),
			err.Error())
	}

	if isDir {
		return placeholder(KindDirectory, now, mod,
			fmt.Sprintf("%s is a directory", path))
	}

	if size > l.maxBytes {
		return placeholder(KindTooLarge, now, mod,
			fmt.Sprintf("File too large to preview (%s, limit %s)",
				humanSize(size), humanSize(l.maxBytes)))
	}

	data, err := l.read(path, l.maxBytes)
	if err != nil {
		return placeholder(KindUnreadable, now, mod,
			fmt.Sprintf("Cannot read %s", path),
			err.Error())
	}

	if isBinary(data) {
		return placeholder(KindBinary, now, mod,
			fmt.Sprintf("Binary file (%s)", humanSize(size)))
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	truncated := false
	if len(lines) > l.maxLines {
		lines = lines[:l.maxLines]
		truncated = true
	}

	return &Entry{
		Lines:     lines,
		Kind:      KindText,
		Language:  languageFor(path),
		CreatedAt: now,
		ModTime:   mod,
		Truncated: truncated,
	}
}

// Loading returns the interim placeholder shown while a load is deferred
func Loading(path string) *Entry {
	return &Entry{
		Lines:     []string{fmt.Sprintf("Loading %s…", filepath.Base(path))},
		Kind:      KindLoading,
		CreatedAt: time.Now(),
	}
}

func placeholder(kind Kind, created, mod time.Time, lines ...string) *Entry {
	return &Entry{
		Lines:     lines,
		Kind:      kind,
		CreatedAt: created,
		ModTime:   mod,
	}
}

// isBinary sniffs the leading bytes for a NUL, the same heuristic git uses
func isBinary(data []byte) bool {
	probe := data
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	for _, b := range probe {
		if b == 0 {
			return true
		}
	}
	return false
}

func languageFor(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return strings.ToLower(ext)
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
