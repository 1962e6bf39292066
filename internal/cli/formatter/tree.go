package formatter

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Status string
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. Completed items get a ✔ prefix,
// in-progress items a ▶ prefix, and detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				prefix += treePipe
			}
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		statusPrefix := ""
		switch strings.ToLower(item.Status) {
		case "completed":
			statusPrefix = "✔ "
		case "in_progress":
			statusPrefix = "▶ "
		case "delayed":
			statusPrefix = "! "
		}

		content := prefix + statusPrefix + item.Title
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = fmt.Sprintf("[ %s ]", item.Detail)
		}

		if w := utf8.RuneCountInString(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - utf8.RuneCountInString(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}
