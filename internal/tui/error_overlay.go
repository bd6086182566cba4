package tui

import "strings"

// errorOverlayModel lists the errors and warnings of the last pass.
type errorOverlayModel struct {
	lines []string
}

func (m errorOverlayModel) View() string {
	content := "Details\n\n- " + strings.Join(m.lines, "\n- ") + "\n\nd: hide"
	return overlayBoxStyle.Render(content)
}
