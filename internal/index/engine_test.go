package index

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fpick/internal/config"
	"fpick/internal/domain"
	"fpick/internal/eventbus"
)

func testEngine(t *testing.T, items []domain.FileItem) *Engine {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ShowGitStatus = false

	bus := eventbus.New()
	t.Cleanup(bus.Close)

	e := New(cfg, bus, "/r", nil)
	e.install(context.Background(), items)
	return e
}

func file(rel string, frecency int, modified time.Time) domain.FileItem {
	return domain.FileItem{
		Path:          "/r/" + rel,
		RelativePath:  rel,
		Name:          rel[lastSlash(rel)+1:],
		FrecencyScore: frecency,
		Modified:      modified,
	}
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}

func TestEmptyQueryOrdersByFrecencyThenRecency(t *testing.T) {
	now := time.Now()
	e := testEngine(t, []domain.FileItem{
		file("cold/old.go", 0, now.Add(-48*time.Hour)),
		file("hot/recent.go", 102, now),
		file("warm/used.go", 62, now),
		file("cold/fresh.go", 0, now.Add(-time.Minute)),
	})

	res, err := e.Search("", 100, "")
	require.NoError(t, err)
	require.Len(t, res.Items, 4)

	assert.Equal(t, "hot/recent.go", res.Items[0].RelativePath)
	assert.Equal(t, "warm/used.go", res.Items[1].RelativePath)
	// Frecency ties break on modification time
	assert.Equal(t, "cold/fresh.go", res.Items[2].RelativePath)
	assert.Equal(t, "cold/old.go", res.Items[3].RelativePath)

	assert.Equal(t, "frecency", res.Scores[0].MatchType)
	assert.Equal(t, 4, res.TotalMatched)
	assert.Equal(t, 4, res.TotalFiles)
}

func TestFuzzyQueryRanksFilenameMatchFirst(t *testing.T) {
	now := time.Now()
	e := testEngine(t, []domain.FileItem{
		file("internal/config/parser.go", 0, now),
		file("internal/config/config.go", 0, now),
		file("cmd/main.go", 0, now),
	})

	res, err := e.Search("config", 100, "")
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	// Both candidates match on the shared directory segment; the filename
	// match breaks the tie.
	assert.Equal(t, "internal/config/config.go", res.Items[0].RelativePath)
	assert.Equal(t, "exact", res.Scores[0].MatchType)
	assert.Equal(t, filenameBonus, res.Scores[0].FilenameBonus)
	assert.Zero(t, res.Scores[1].FilenameBonus)

	// main.go matches nothing
	for _, item := range res.Items {
		assert.NotEqual(t, "cmd/main.go", item.RelativePath)
	}
}

func TestSearchCapsResultsButReportsFullMatchCount(t *testing.T) {
	now := time.Now()
	items := make([]domain.FileItem, 0, 10)
	for _, rel := range []string{
		"pkg/a_test.go", "pkg/b_test.go", "pkg/c_test.go", "pkg/d_test.go",
		"pkg/e_test.go", "pkg/f_test.go", "pkg/g_test.go", "pkg/h_test.go",
		"pkg/i_test.go", "pkg/j_test.go",
	} {
		items = append(items, file(rel, 0, now))
	}
	e := testEngine(t, items)

	res, err := e.Search("test", 3, "")
	require.NoError(t, err)

	assert.Len(t, res.Items, 3)
	assert.Len(t, res.Scores, 3)
	assert.Equal(t, 10, res.TotalMatched)
}

func TestCurrentFileIsDemoted(t *testing.T) {
	now := time.Now()
	e := testEngine(t, []domain.FileItem{
		file("a/config.go", 0, now),
		file("b/config.go", 0, now),
	})

	// Identical candidates, except one is the file we came from
	res, err := e.Search("config", 100, "/r/a/config.go")
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	assert.Equal(t, "b/config.go", res.Items[0].RelativePath)
	assert.Equal(t, "a/config.go", res.Items[1].RelativePath)
	assert.Equal(t, currentPenalty, res.Scores[1].CurrentPenalty)
	assert.Zero(t, res.Scores[0].CurrentPenalty)
}

func TestFrecencyBoostsFuzzyRanking(t *testing.T) {
	now := time.Now()
	e := testEngine(t, []domain.FileItem{
		file("a/handler.go", 0, now),
		file("b/handler.go", 120, now),
	})

	res, err := e.Search("handler", 100, "")
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	assert.Equal(t, "b/handler.go", res.Items[0].RelativePath)
	assert.Equal(t, 120, res.Scores[0].FrecencyBoost)
}

func TestSearchWithNoMatches(t *testing.T) {
	e := testEngine(t, []domain.FileItem{
		file("pkg/util.go", 0, time.Now()),
	})

	res, err := e.Search("zzzzzz", 100, "")
	require.NoError(t, err)

	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalMatched)
	assert.Equal(t, 1, res.TotalFiles)
}

func TestSearchBeforeScanCompletes(t *testing.T) {
	cfg := config.DefaultConfig()
	bus := eventbus.New()
	t.Cleanup(bus.Close)
	e := New(cfg, bus, "/r", nil)

	res, err := e.Search("anything", 100, "")
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalFiles)
}
