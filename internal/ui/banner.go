package ui

import (
	"fmt"
	"strings"
)

const rule = "═══════════════════════════════════════"

// BannerInfo is what the startup banner reports.
type BannerInfo struct {
	Title string
	URL   string
	Port  int
	Root  string
}

// Banner renders the startup block shown once the server socket is bound.
func (p *Palette) Banner(info BannerInfo) string {
	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, p.Title(info.Title))
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Server URL: %s\n", p.As(info.URL, "#04B5F5"))
	fmt.Fprintf(&b, "Port:       %d\n", info.Port)
	fmt.Fprintf(&b, "Directory:  %s\n", info.Root)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, p.OK("✓ Server started"))
	fmt.Fprintln(&b, p.Help("Press Ctrl+C to stop the server"))
	fmt.Fprintln(&b, rule)
	return b.String()
}
