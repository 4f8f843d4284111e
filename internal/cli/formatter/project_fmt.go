package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/notestudio/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatProjectList renders every project, pinned first, in a bordered box.
func FormatProjectList(state *domain.AppState) string {
	if len(state.Projects) == 0 {
		return RenderBox("Projects", Dim("No projects yet. Add one with 'project add <name>'."))
	}

	headers := []string{"", "ID", "NAME", "NOTES", "STEPS"}
	if state.Settings.StatusesEnabled {
		headers = append(headers, "STATUS")
	}

	rows := make([][]string, 0, len(state.Projects))
	for _, i := range state.SortedProjects() {
		p := &state.Projects[i]
		done, total := p.StepProgress()
		row := []string{
			PinMark(p.Pinned),
			Dim(p.DisplayID()),
			Bold(p.Name),
			fmt.Sprintf("%d", len(p.Notes)),
			RenderProgress(done, total, 8),
		}
		if state.Settings.StatusesEnabled {
			row = append(row, StatusPill(p.Status, state.Settings.ProjectStatuses))
		}
		rows = append(rows, row)
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectShow renders a project card: metadata on the left, the
// notes and checklist outline on the right.
func FormatProjectShow(p *domain.Project, settings domain.Settings) string {
	var meta strings.Builder
	meta.WriteString(StyleBold.Render(p.Name))
	if p.Pinned {
		meta.WriteString(" " + PinMark(true))
	}
	meta.WriteString("\n")
	if p.Description != "" {
		meta.WriteString(StyleFg.Render(p.Description) + "\n")
	}
	meta.WriteString("\n")
	meta.WriteString(fmt.Sprintf("%s  %s\n", Dim("ID    "), p.DisplayID()))
	if settings.StatusesEnabled {
		meta.WriteString(fmt.Sprintf("%s  %s\n", Dim("STATUS"), StatusPill(p.Status, settings.ProjectStatuses)))
	}
	done, total := p.StepProgress()
	meta.WriteString(fmt.Sprintf("%s  %s\n", Dim("STEPS "), RenderProgress(done, total, 12)))

	outline := RenderTree(projectOutline(p))
	if outline == "" {
		outline = Dim("No notes or steps.")
	}

	combined := lipgloss.JoinHorizontal(lipgloss.Top, meta.String(), "    ", outline)
	return RenderBox("", combined)
}

func projectOutline(p *domain.Project) []TreeItem {
	var items []TreeItem
	if len(p.Steps) > 0 {
		items = append(items, TreeItem{Title: StyleHeader.Render("Steps")})
		items = append(items, stepItems(p.Steps, 1)...)
	}
	for i := range p.Notes {
		n := &p.Notes[i]
		detail := ""
		if len(n.Steps) > 0 {
			d := 0
			for _, s := range n.Steps {
				if s.Done {
					d++
				}
			}
			detail = fmt.Sprintf("%d/%d", d, len(n.Steps))
		}
		items = append(items, TreeItem{Title: Bold(n.Title), ID: n.DisplayID(), Detail: detail})
		if body := firstLine(n.Body); body != "" {
			items = append(items, TreeItem{Title: Dim(body), Level: 1, IsLast: len(n.Steps) == 0})
		}
		items = append(items, stepItems(n.Steps, 1)...)
	}
	return items
}

func stepItems(steps []domain.Step, level int) []TreeItem {
	items := make([]TreeItem, 0, len(steps))
	for i := range steps {
		done := steps[i].Done
		items = append(items, TreeItem{
			Title:  steps[i].Text,
			ID:     steps[i].DisplayID(),
			Level:  level,
			IsLast: i == len(steps)-1,
			Check:  &done,
		})
	}
	return items
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
