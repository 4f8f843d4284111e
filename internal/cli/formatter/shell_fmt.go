package formatter

import (
	"fmt"
	"strings"
)

// FormatShellWelcome renders the banner shown when the shell starts.
func FormatShellWelcome() string {
	var b strings.Builder
	b.WriteString(StylePurple.Render("  notestudio") + "\n")
	b.WriteString(Dim("  ─────────────────────────────") + "\n")
	b.WriteString("  " + StyleGreen.Render("projects") + Dim("        List projects") + "\n")
	b.WriteString("  " + StyleGreen.Render("use <project>") + Dim("   Make a project current") + "\n")
	b.WriteString("  " + StyleGreen.Render("settings edit") + Dim("   Change preferences") + "\n")
	b.WriteString("  " + StyleGreen.Render("help") + Dim("            Show all commands") + "\n")
	b.WriteString(Dim("  Tab accepts a suggestion. Ctrl+C quits.") + "\n")
	return b.String()
}

type helpCategory struct {
	title    string
	commands [][]string
}

func renderHelpCategory(cat helpCategory) string {
	var b strings.Builder
	b.WriteString("\n " + StyleHeader.Render(strings.ToUpper(cat.title)) + "\n")
	for _, c := range cat.commands {
		b.WriteString(fmt.Sprintf("  %-28s %s\n", StyleGreen.Render(c[0]), Dim(c[1])))
	}
	return b.String()
}

// FormatShellHelp renders the categorized command reference.
func FormatShellHelp() string {
	categories := []helpCategory{
		{
			title: "Navigation",
			commands: [][]string{
				{"projects", "List projects, pinned first"},
				{"use [project]", "Set the current project (no args to clear)"},
				{"show [project]", "Show a project's notes and steps"},
			},
		},
		{
			title: "Projects",
			commands: [][]string{
				{"project add <name>", "Create a project"},
				{"project status <p> <label>", "Set a project's status"},
				{"project pin <p>", "Pin or unpin a project"},
				{"project export <p> <file>", "Write a project to a file"},
				{"project import <file>", "Add a project from a file"},
			},
		},
		{
			title: "Notes & steps",
			commands: [][]string{
				{"note add <title>", "Add a note to the current project"},
				{"step add <text>", "Add a step (--note for a note's list)"},
				{"step done <step>", "Tick a step"},
				{"step move <from> <to>", "Reorder project steps"},
			},
		},
		{
			title: "Settings",
			commands: [][]string{
				{"settings show", "Show preferences"},
				{"settings set <key> <value>", "Change one preference"},
				{"settings edit", "Edit preferences in a form"},
				{"settings window", "Re-apply the window mode"},
			},
		},
		{
			title: "Utilities",
			commands: [][]string{
				{"export --sqlite <file>", "Write a SQLite snapshot"},
				{"clear", "Clear the output"},
				{"exit / quit", "Leave the shell"},
			},
		},
	}

	var b strings.Builder
	for _, cat := range categories {
		b.WriteString(renderHelpCategory(cat))
	}
	b.WriteString("\n" + Dim("All CLI commands work here. The current project is used when --project is omitted."))
	return RenderBox("Commands", b.String())
}
