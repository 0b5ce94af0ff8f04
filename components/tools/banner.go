package tools

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
)

// BannerSpec describes a promotional banner to generate.
type BannerSpec struct {
	Headline     string `json:"headline"`
	Subtext      string `json:"subtext,omitempty"`
	DiscountCode string `json:"discount_code,omitempty"`
	CTA          string `json:"cta,omitempty"`
	CTAURL       string `json:"cta_url,omitempty"`
	Style        string `json:"style,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
}

const (
	defaultBannerWidth  = 600
	defaultBannerHeight = 200
)

// BuildBanner renders a self-contained HTML snippet for the spec. The output
// is deterministic: same spec, same bytes.
func BuildBanner(spec BannerSpec) (string, error) {
	if strings.TrimSpace(spec.Headline) == "" {
		return "", errors.New("tools: banner headline is required")
	}
	preset := Preset(spec.Style)
	width := spec.Width
	if width <= 0 {
		width = defaultBannerWidth
	}
	height := spec.Height
	if height <= 0 {
		height = defaultBannerHeight
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="promo-banner" style="%s">`, bannerStyle(preset, width, height))
	fmt.Fprintf(&b, `<h2 style="margin:0;font-size:24px;">%s</h2>`, html.EscapeString(spec.Headline))
	if spec.Subtext != "" {
		fmt.Fprintf(&b, `<p style="margin:8px 0 0;opacity:.85;">%s</p>`, html.EscapeString(spec.Subtext))
	}
	if spec.DiscountCode != "" {
		fmt.Fprintf(&b, `<code style="margin-top:12px;padding:4px 12px;border:1px dashed %s;color:%s;">%s</code>`,
			preset.Accent, preset.Accent, html.EscapeString(spec.DiscountCode))
	}
	if spec.CTA != "" {
		url := spec.CTAURL
		if url == "" {
			url = "#"
		}
		fmt.Fprintf(&b, `<a href=%q style="margin-top:16px;padding:10px 24px;background:%s;color:%s;text-decoration:none;border-radius:6px;">%s</a>`,
			url, preset.Accent, preset.Background, html.EscapeString(spec.CTA))
	}
	b.WriteString(`</div>`)
	return b.String(), nil
}

func bannerStyle(preset StylePreset, width, height int) string {
	vars := preset.CSSVariables()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s:%s;", k, vars[k])
	}
	fmt.Fprintf(&b,
		"width:%dpx;min-height:%dpx;display:flex;flex-direction:column;align-items:center;justify-content:center;text-align:center;"+
			"background:%s;color:%s;border:1px solid %s;border-radius:12px;padding:24px;font-family:system-ui,sans-serif;",
		width, height, preset.Background, preset.Text, preset.Border)
	return b.String()
}
