package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a checklist bar like [████░░░░] 2/5.
// Green when complete, yellow past half, red otherwise. An empty checklist
// renders as a dim dash.
func RenderProgress(done, total, width int) string {
	if total <= 0 {
		return Dim("--")
	}
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	if width < 2 {
		width = 2
	}

	filled := done * width / total
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleRed
	switch {
	case done == total:
		style = StyleGreen
	case done*2 >= total:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), done, total)
}
