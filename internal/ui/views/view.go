package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"fpick/internal/domain"
	"fpick/internal/preview"
)

// ViewState contains all the state needed for rendering. The renderer
// reads it at render time, never earlier, so a render always reflects the
// freshest session state.
type ViewState struct {
	Width        int
	Height       int
	QueryView    string
	Results      []domain.FileItem
	Cursor       int // 1-based
	TotalMatched int
	TotalFiles   int
	Status       string
	Scanning     bool
	PreviewPath  string
	PreviewEntry *preview.Entry
	ShowGit      bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	if vs.Width <= 0 || vs.Height <= 0 {
		return ""
	}

	listWidth := vs.Width / 2
	previewWidth := vs.Width - listWidth - 2
	bodyHeight := vs.Height - 3
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	header := r.styles.Title.Render("fpick") + "  " + r.styles.Prompt.Render(vs.QueryView)

	list := r.renderList(vs, listWidth, bodyHeight)
	prev := r.renderPreview(vs, previewWidth, bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listWidth).Height(bodyHeight).Render(list),
		r.styles.PreviewBorder.Height(bodyHeight).Render(prev),
	)

	status := r.styles.Status.Render(runewidth.Truncate(vs.Status, vs.Width, "…"))

	return header + "\n" + body + "\n" + status
}

// renderList renders the visible window of the result list
func (r *Renderer) renderList(vs ViewState, width, height int) string {
	if len(vs.Results) == 0 {
		if vs.Scanning {
			return r.styles.Placeholder.Render("Scanning…")
		}
		return r.styles.Placeholder.Render("No results")
	}

	// Keep the cursor inside the window
	start := 0
	if vs.Cursor > height {
		start = vs.Cursor - height
	}
	end := start + height
	if end > len(vs.Results) {
		end = len(vs.Results)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderItem(vs.Results[i], i+1 == vs.Cursor, vs.ShowGit, width))
	}

	return strings.Join(lines, "\n")
}

// renderItem renders one result line: marker, git tag, name, dim directory
func (r *Renderer) renderItem(item domain.FileItem, selected, showGit bool, width int) string {
	marker := "  "
	if selected {
		marker = r.styles.Cursor.Render("▌ ")
	}

	git := ""
	if showGit {
		git = r.gitMarker(item.GitStatus)
	}

	name := item.Name
	if selected {
		name = r.styles.CursorLine.Render(name)
	}

	dir := ""
	if item.Directory != "" {
		avail := width - runewidth.StringWidth(item.Name) - 6
		if avail > 4 {
			dir = " " + r.styles.Dim.Render(runewidth.Truncate(item.Directory, avail, "…"))
		}
	}

	return marker + git + name + dir
}

// gitMarker maps a status tag to a one-cell colored marker
func (r *Renderer) gitMarker(status string) string {
	switch status {
	case domain.GitStatusModified:
		return r.styles.GitModified.Render("M ")
	case domain.GitStatusUntracked:
		return r.styles.GitUntracked.Render("? ")
	case domain.GitStatusDeleted:
		return r.styles.GitDeleted.Render("D ")
	case domain.GitStatusRenamed:
		return r.styles.GitModified.Render("R ")
	case domain.GitStatusStagedNew, domain.GitStatusStagedModified, domain.GitStatusStagedDeleted:
		return r.styles.GitStaged.Render("S ")
	default:
		return "  "
	}
}

// renderPreview renders the preview pane for the entry handed over by the
// async loader
func (r *Renderer) renderPreview(vs ViewState, width, height int) string {
	if vs.PreviewEntry == nil {
		return r.styles.Placeholder.Render("Select a file to preview")
	}

	e := vs.PreviewEntry

	title := vs.PreviewPath
	if e.Language != "" {
		title += "  " + r.styles.Dim.Render("["+e.Language+"]")
	}
	lines := []string{r.styles.PreviewTitle.Render(runewidth.Truncate(title, width, "…"))}

	style := lipgloss.NewStyle()
	if e.Kind != preview.KindText {
		style = r.styles.Placeholder
	}

	max := height - 1
	for i, line := range e.Lines {
		if i >= max {
			break
		}
		lines = append(lines, style.Render(runewidth.Truncate(expandTabs(line), width, "…")))
	}

	if e.Truncated && len(lines) < height {
		lines = append(lines, r.styles.Dim.Render("…"))
	}

	return strings.Join(lines, "\n")
}

// StatusLine formats the bottom status bar
func (r *Renderer) StatusLine(matched, total int, progress domain.ScanProgress, notice string) string {
	parts := []string{fmt.Sprintf("%d/%d", matched, total)}

	if progress.IsScanning {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		parts = append(parts, r.styles.Scan.Render(
			fmt.Sprintf("%s indexing %d files", spinner[frame], progress.Scanned)))
	}

	if notice != "" {
		parts = append(parts, r.styles.Notice.Render(notice))
	}

	return strings.Join(parts, "  ")
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
