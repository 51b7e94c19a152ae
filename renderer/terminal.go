package renderer

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Terminal renders the document for a terminal 'width' columns wide.
//
// The style follows the terminal background, and falls back to plain text when the output
// is not a terminal.
func Terminal(doc *Document, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("cannot create terminal renderer: %w", err)
	}
	out, err := r.Render(Markdown(doc))
	if err != nil {
		return "", fmt.Errorf("cannot render report for the terminal: %w", err)
	}
	return out, nil
}
