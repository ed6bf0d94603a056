package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

// minHelpWrap is the narrowest wrap width the help document renders at.
const minHelpWrap = 24

// helpStyle returns the glamour style for the help overlay, tinted with the board palette.
func helpStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	accent := "62"
	highlight := "212"
	muted := "241"
	noMargin := uint(0)

	cfg.Document.Margin = &noMargin
	cfg.Heading.Color = &accent
	cfg.H2.Color = &accent
	cfg.H2.Prefix = ""
	cfg.H2.BackgroundColor = nil
	cfg.Code.Color = &highlight
	cfg.Code.BackgroundColor = nil
	cfg.Item.Color = &muted
	return cfg
}

// markdownRenderer renders the help document and caches the last result per width.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer

	source string
	output string
}

// render returns source as styled terminal text wrapped to width.
func (r *markdownRenderer) render(source string, width int) string {
	source = strings.TrimSpace(source)
	if source == "" {
		return ""
	}
	width = max(width, minHelpWrap)
	if r.renderer != nil && r.width == width && r.source == source {
		return r.output
	}

	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStyles(helpStyle()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return source
		}
		r.renderer = renderer
		r.width = width
	}

	rendered, err := r.renderer.Render(source)
	if err != nil {
		return source
	}
	r.source = source
	r.output = strings.TrimRight(rendered, "\n")
	return r.output
}
