package tools

import "strings"

// StylePreset carries the palette tokens for a banner or hero style. Preset
// names match the `style` values stored in hero slide content so the admin
// can reuse them across the site and generated snippets.
type StylePreset struct {
	Name       string
	Background string
	Text       string
	Accent     string
	Border     string
}

var stylePresets = []StylePreset{
	{
		Name:       "light-mode",
		Background: "#ffffff",
		Text:       "#111827",
		Accent:     "#4f46e5",
		Border:     "#e5e7eb",
	},
	{
		Name:       "dark-mode",
		Background: "#0f172a",
		Text:       "#f8fafc",
		Accent:     "#818cf8",
		Border:     "#1e293b",
	},
	{
		Name:       "gradient-indigo",
		Background: "linear-gradient(135deg, #4f46e5 0%, #7c3aed 100%)",
		Text:       "#ffffff",
		Accent:     "#facc15",
		Border:     "transparent",
	},
}

// Preset resolves a style preset by name. Unknown names fall back to
// light-mode so a typo in stored content still renders something usable.
func Preset(name string) StylePreset {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range stylePresets {
		if p.Name == name {
			return p
		}
	}
	return stylePresets[0]
}

// Presets lists every known style preset.
func Presets() []StylePreset {
	out := make([]StylePreset, len(stylePresets))
	copy(out, stylePresets)
	return out
}

// CSSVariables normalizes preset tokens into CSS custom property form.
func (p StylePreset) CSSVariables() map[string]string {
	return map[string]string{
		"--banner-bg":     p.Background,
		"--banner-text":   p.Text,
		"--banner-accent": p.Accent,
		"--banner-border": p.Border,
	}
}
