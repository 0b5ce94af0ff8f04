package tools

import (
	"fmt"
	"strings"
)

// BrowserFrame wraps an HTML snippet in an SVG-styled browser chrome so the
// admin can preview generated banners in context.
func BrowserFrame(title, innerHTML string) string {
	var b strings.Builder
	b.WriteString(`<div class="browser-frame" style="border:1px solid #e5e7eb;border-radius:12px;overflow:hidden;font-family:system-ui,sans-serif;">`)
	b.WriteString(`<div class="browser-bar" style="display:flex;align-items:center;gap:8px;background:#f3f4f6;padding:8px 12px;">`)
	for _, color := range []string{"#ef4444", "#f59e0b", "#22c55e"} {
		fmt.Fprintf(&b, `<svg width="12" height="12"><circle cx="6" cy="6" r="6" fill="%s"/></svg>`, color)
	}
	fmt.Fprintf(&b, `<span style="margin-left:8px;font-size:12px;color:#6b7280;">%s</span>`, title)
	b.WriteString(`</div>`)
	b.WriteString(`<div class="browser-body" style="padding:24px;display:flex;justify-content:center;">`)
	b.WriteString(innerHTML)
	b.WriteString(`</div></div>`)
	return b.String()
}
