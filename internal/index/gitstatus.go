package index

import (
	"bytes"
	"context"
	"log"
	"os/exec"
	"time"

	"fpick/internal/domain"
)

// readGitStatus returns relative path → status tag for the repository at
// root. A nil map means no status is available (not a repository, or git
// failed); every file is then tagged "clear".
func readGitStatus(ctx context.Context, root string) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "-C", root, "status", "--porcelain", "-z")
	out, err := cmd.Output()
	if err != nil {
		log.Printf("git status failed for %s: %v", root, err)
		return nil
	}

	return parsePorcelain(out)
}

// parsePorcelain parses NUL-terminated `git status --porcelain -z` output.
// Renamed entries carry the original path in a second NUL field, which is
// consumed and ignored.
func parsePorcelain(out []byte) map[string]string {
	statuses := make(map[string]string)

	fields := bytes.Split(out, []byte{0})
	for i := 0; i < len(fields); i++ {
		entry := fields[i]
		if len(entry) < 4 {
			continue
		}

		x, y := entry[0], entry[1]
		path := string(entry[3:])
		statuses[path] = statusTag(x, y)

		if x == 'R' || x == 'C' {
			i++ // skip the rename source path
		}
	}

	return statuses
}

// statusTag maps porcelain XY codes to a status tag; worktree state wins
// over index state.
func statusTag(x, y byte) string {
	switch {
	case x == '?' && y == '?':
		return domain.GitStatusUntracked
	case x == '!' && y == '!':
		return domain.GitStatusIgnored
	case y == 'M':
		return domain.GitStatusModified
	case y == 'D':
		return domain.GitStatusDeleted
	case y == 'R':
		return domain.GitStatusRenamed
	case x == 'A':
		return domain.GitStatusStagedNew
	case x == 'M':
		return domain.GitStatusStagedModified
	case x == 'D':
		return domain.GitStatusStagedDeleted
	case x == 'R':
		return domain.GitStatusRenamed
	default:
		return domain.GitStatusClean
	}
}
