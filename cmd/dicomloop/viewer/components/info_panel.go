package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/dicomloop/internal/playback"
)

var (
	infoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 2)

	infoTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true)

	infoTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	infoDetailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// InfoPanel shows the file name, metadata and pixel statistics of a frame.
type InfoPanel struct {
	view      playback.FrameView
	total     int
	showStats bool
	width     int
}

// NewInfoPanel creates a new info panel
func NewInfoPanel() *InfoPanel {
	return &InfoPanel{width: 60}
}

// SetFrame updates which frame is described. total is the series length.
func (p *InfoPanel) SetFrame(view playback.FrameView, total int) {
	p.view = view
	p.total = total
}

// SetShowStats toggles the statistics line
func (p *InfoPanel) SetShowStats(show bool) {
	p.showStats = show
}

// SetWidth updates the panel width
func (p *InfoPanel) SetWidth(width int) {
	p.width = width
}

// View renders the info panel
func (p *InfoPanel) View() string {
	style := infoPanelStyle.Width(max(p.width-2, 20)) // Compute locally, don't mutate global

	var sb strings.Builder
	sb.WriteString(infoTitleStyle.Render("File: " + p.view.Filename))
	sb.WriteString(infoDetailStyle.Render(fmt.Sprintf("  (%d/%d)", p.view.Index+1, p.total)))
	sb.WriteString("\n")
	sb.WriteString(infoTextStyle.Render(p.view.Text))

	if p.showStats {
		sb.WriteString("\n")
		line := p.view.Stats.String()
		if p.view.Geometry.Valid() {
			line = p.view.Geometry.String() + "  " + line
		}
		sb.WriteString(infoDetailStyle.Render(line))
	}

	return style.Render(sb.String())
}
