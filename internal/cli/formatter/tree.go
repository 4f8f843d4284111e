package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a note/step outline.
type TreeItem struct {
	Title  string
	ID     string // short display ID; empty hides the column
	Level  int
	IsLast bool
	Check  *bool // nil for non-checklist rows
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented outline. Checklist rows get a box
// that is ticked when done; details are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	widest := 0
	for i, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.Check != nil {
			if *item.Check {
				title = StyleGreen.Render("[x] ") + Dim(title)
			} else {
				title = StyleFg.Render("[ ] ") + title
			}
		}
		if item.ID != "" {
			title = Dim(item.ID+" ") + title
		}

		contents[i] = prefix + title
		if w := lipgloss.Width(contents[i]); w > widest {
			widest = w
		}
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			pad := widest - lipgloss.Width(contents[i])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
