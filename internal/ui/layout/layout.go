package layout

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/ui/theme"
)

// DefaultWidth is used before the terminal reports its size.
const DefaultWidth = 60

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// RenderHeader renders a one-line header with the app name on the left
// and status on the right.
func RenderHeader(status string, width int) string {
	left := theme.Title.Render("drill")
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(status)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// RenderFooter renders the key hints.
func RenderFooter(hints []KeyHint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		parts = append(parts, part)
	}
	return strings.Join(parts, "   ")
}

// RenderCard frames content in a bordered box of the given outer width.
func RenderCard(content string, width int) string {
	return theme.Card.Width(width).Render(content)
}
