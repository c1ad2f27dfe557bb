package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fpick/internal/domain"
)

func TestRenderEmptyListReflectsScanState(t *testing.T) {
	r := NewRenderer()
	vs := ViewState{Width: 80, Height: 24, Scanning: true}

	assert.Contains(t, r.Render(vs), "Scanning")

	vs.Scanning = false
	out := r.Render(vs)
	assert.Contains(t, out, "No results")
	assert.NotContains(t, out, "Scanning")
}

func TestRenderZeroSizeIsEmpty(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, "", r.Render(ViewState{}))
}

func TestStatusLineShowsScanProgress(t *testing.T) {
	r := NewRenderer()

	idle := r.StatusLine(3, 10, domain.ScanProgress{}, "")
	assert.Contains(t, idle, "3/10")
	assert.NotContains(t, idle, "indexing")

	busy := r.StatusLine(0, 0, domain.ScanProgress{IsScanning: true, Scanned: 42}, "")
	assert.Contains(t, busy, "indexing 42 files")
}
