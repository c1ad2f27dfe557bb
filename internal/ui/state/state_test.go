package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fpick/internal/domain"
)

func resultOf(n int) domain.SearchResult {
	res := domain.SearchResult{TotalMatched: n, TotalFiles: n}
	for i := 0; i < n; i++ {
		res.Items = append(res.Items, domain.FileItem{Path: string(rune('a' + i))})
		res.Scores = append(res.Scores, domain.Score{})
	}
	return res
}

func TestCursorStartsAtOne(t *testing.T) {
	s := NewSessionState()
	assert.Equal(t, 1, s.Cursor)
}

func TestMoveCursorClampsToBounds(t *testing.T) {
	s := NewSessionState()
	s.SetResults(resultOf(3))

	s.MoveCursor(-5)
	assert.Equal(t, 1, s.Cursor)

	s.MoveCursor(10)
	assert.Equal(t, 3, s.Cursor)
}

func TestSetResultsReclampsCursor(t *testing.T) {
	s := NewSessionState()
	s.SetResults(resultOf(5))
	s.MoveCursor(4)
	require.Equal(t, 5, s.Cursor)

	// The list shrank under the cursor
	s.SetResults(resultOf(2))
	assert.Equal(t, 2, s.Cursor)

	s.SetResults(resultOf(0))
	assert.Equal(t, 1, s.Cursor)
}

func TestCursorItem(t *testing.T) {
	s := NewSessionState()

	_, ok := s.CursorItem()
	assert.False(t, ok)

	s.SetResults(resultOf(2))
	s.MoveCursor(1)
	item, ok := s.CursorItem()
	require.True(t, ok)
	assert.Equal(t, "b", item.Path)
}

func TestResetReturnsToPostCloseShape(t *testing.T) {
	s := NewSessionState()
	s.Active = true
	s.Query = "abc"
	s.SetResults(resultOf(3))
	s.DisplayedPath = "/r/a.go"
	s.LastStatus = "3/3"
	s.Notice = "x"
	s.InitialRenderDone = true

	s.Reset()

	assert.Equal(t, NewSessionState(), s)
}
