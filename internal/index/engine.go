package index

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"

	"fpick/internal/config"
	"fpick/internal/domain"
	"fpick/internal/eventbus"
)

// Bonus and penalty weights applied on top of the raw fuzzy score
const (
	filenameBonus  = 32
	currentPenalty = 1000
)

// Engine indexes the files under a root and answers ranked search queries.
// It owns the scanner, the git status pass, and the frecency tracker; the
// UI consumes it through Search/Progress/RecordAccess only.
type Engine struct {
	cfg      *config.Config
	bus      eventbus.EventBus
	root     string
	scanner  *Scanner
	frecency *FrecencyTracker

	mu          sync.RWMutex
	files       []domain.FileItem
	currentFile string
}

// New creates an engine for root. The frecency tracker may be shared
// across engines; a nil tracker disables frecency scoring.
func New(cfg *config.Config, bus eventbus.EventBus, root string, frecency *FrecencyTracker) *Engine {
	return &Engine{
		cfg:      cfg,
		bus:      bus,
		root:     root,
		scanner:  NewScanner(bus),
		frecency: frecency,
	}
}

// SetCurrentFile marks the file the picker was opened from, which is
// demoted in results so it never shadows better candidates.
func (e *Engine) SetCurrentFile(path string) {
	e.mu.Lock()
	e.currentFile = path
	e.mu.Unlock()
}

// StartScan kicks off the background index scan; a scan already in flight
// is left running.
func (e *Engine) StartScan(ctx context.Context) error {
	if e.scanner.Progress().IsScanning {
		return nil
	}
	return e.scanner.Start(ctx, e.root, func(items []domain.FileItem) {
		e.install(ctx, items)
	})
}

// StopScan cancels any in-flight scan
func (e *Engine) StopScan() {
	e.scanner.Stop()
}

// Progress reports the state of the background scan. The error return is
// part of the scan-status contract; this provider cannot fail.
func (e *Engine) Progress() (domain.ScanProgress, error) {
	return e.scanner.Progress(), nil
}

// RecordAccess notes a selection in the frecency store
func (e *Engine) RecordAccess(path string) {
	if e.frecency == nil {
		return
	}
	if err := e.frecency.RecordAccess(path); err != nil {
		e.bus.Publish(eventbus.ErrorEvent{Message: "failed to persist frecency data", Err: err})
	}
}

// install applies git status and frecency scores to freshly scanned items
// and swaps them in as the searchable set.
func (e *Engine) install(ctx context.Context, items []domain.FileItem) {
	var statuses map[string]string
	if e.cfg.ShowGitStatus {
		statuses = readGitStatus(ctx, e.root)
	}

	now := time.Now()
	for i := range items {
		if statuses != nil {
			if tag, ok := statuses[items[i].RelativePath]; ok {
				items[i].GitStatus = tag
			} else {
				items[i].GitStatus = domain.GitStatusClean
			}
		}
		if e.frecency != nil {
			items[i].FrecencyScore = e.frecency.Score(items[i].Path, now)
		}
	}

	sort.Slice(items, func(a, b int) bool {
		return items[a].RelativePath < items[b].RelativePath
	})

	e.mu.Lock()
	for i := range items {
		items[i].IsCurrent = items[i].Path == e.currentFile
	}
	e.files = items
	e.mu.Unlock()

	e.bus.Publish(eventbus.IndexUpdatedEvent{TotalFiles: len(items)})
}

// fileSource adapts a file slice to the fuzzy matcher
type fileSource []domain.FileItem

func (s fileSource) String(i int) string { return s[i].RelativePath }
func (s fileSource) Len() int            { return len(s) }

// Search returns up to maxResults items ranked for query. An empty query
// lists files by frecency, then recency. hint names the file the request
// was issued from and is recorded as the current file.
func (e *Engine) Search(query string, maxResults int, hint string) (domain.SearchResult, error) {
	if hint != "" {
		e.SetCurrentFile(hint)
	}

	e.mu.RLock()
	files := e.files
	current := e.currentFile
	e.mu.RUnlock()

	if query == "" {
		return e.listByFrecency(files, maxResults), nil
	}

	matches := fuzzy.FindFrom(query, fileSource(files))

	type ranked struct {
		item  domain.FileItem
		score domain.Score
	}
	rankedItems := make([]ranked, 0, len(matches))
	lowQuery := strings.ToLower(query)

	for _, m := range matches {
		item := files[m.Index]
		s := domain.Score{
			BaseScore: m.Score,
			MatchType: "fuzzy",
		}
		if strings.Contains(strings.ToLower(item.RelativePath), lowQuery) {
			s.MatchType = "exact"
		}
		if strings.Contains(strings.ToLower(item.Name), lowQuery) {
			s.FilenameBonus = filenameBonus
		}
		s.FrecencyBoost = item.FrecencyScore
		if item.Path == current {
			s.CurrentPenalty = currentPenalty
		}
		s.Total = s.BaseScore + s.FilenameBonus + s.FrecencyBoost - s.CurrentPenalty

		rankedItems = append(rankedItems, ranked{item: item, score: s})
	}

	sort.SliceStable(rankedItems, func(a, b int) bool {
		return rankedItems[a].score.Total > rankedItems[b].score.Total
	})

	result := domain.SearchResult{
		TotalMatched: len(rankedItems),
		TotalFiles:   len(files),
	}
	for _, r := range rankedItems {
		if len(result.Items) >= maxResults {
			break
		}
		result.Items = append(result.Items, r.item)
		result.Scores = append(result.Scores, r.score)
	}

	return result, nil
}

// listByFrecency is the empty-query ordering: recently used files first,
// then most recently modified.
func (e *Engine) listByFrecency(files []domain.FileItem, maxResults int) domain.SearchResult {
	ordered := make([]domain.FileItem, len(files))
	copy(ordered, files)

	sort.SliceStable(ordered, func(a, b int) bool {
		if ordered[a].FrecencyScore != ordered[b].FrecencyScore {
			return ordered[a].FrecencyScore > ordered[b].FrecencyScore
		}
		return ordered[a].Modified.After(ordered[b].Modified)
	})

	result := domain.SearchResult{
		TotalMatched: len(ordered),
		TotalFiles:   len(files),
	}
	for _, item := range ordered {
		if len(result.Items) >= maxResults {
			break
		}
		result.Items = append(result.Items, item)
		result.Scores = append(result.Scores, domain.Score{
			FrecencyBoost: item.FrecencyScore,
			Total:         item.FrecencyScore,
			MatchType:     "frecency",
		})
	}

	return result
}
