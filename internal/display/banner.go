package display

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// Banner returns the banner art centred in width columns. Art wider than
// width is left-aligned.
func Banner(width int) string {
	lines := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")

	art := 0
	for _, l := range lines {
		art = max(art, len(l))
	}
	pad := ""
	if width > art {
		pad = strings.Repeat(" ", (width-art)/2)
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(pad)
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// TerminalWidth returns the column count of the terminal behind fd, 0 when
// fd is not a terminal, or 80 when the size is unknown.
func TerminalWidth(fd uintptr) int {
	if !term.IsTerminal(fd) {
		return 0
	}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return 80
}
