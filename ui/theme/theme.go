// Package theme holds the tracker palette and the ttk styles built from it.
package theme

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ColorVideoBg is the letterbox around the video; it matches images.Background.
const ColorVideoBg = "#101012"

// Style names for Style(...) on ttk widgets.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStateLabel    = "state.TLabel"
	StyleMutedLabel    = "muted.TLabel"
)

// PaletteSnapshot is the set of colours for one mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	VideoBg   string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

var (
	lightPalette = PaletteSnapshot{
		AppBg:     "#f7f9fb",
		Surface:   "#ffffff",
		VideoBg:   ColorVideoBg,
		Primary:   "#2563eb",
		Danger:    "#dc2626",
		Accent:    "#0d9488",
		Text:      "#1e293b",
		TextMuted: "#64748b",
	}
	darkPalette = PaletteSnapshot{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		VideoBg:   ColorVideoBg,
		Primary:   "#3b82f6",
		Danger:    "#ef4444",
		Accent:    "#14b8a6",
		Text:      "#f1f5f9",
		TextMuted: "#94a3b8",
	}
)

var darkMode bool

// CurrentPalette returns the palette of the active mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return darkPalette
	}
	return lightPalette
}

// InitStyles configures the ttk styles for the active mode.
func InitStyles() { applyStyles(CurrentPalette()) }

// SetDark selects the mode and reapplies the styles.
func SetDark(dark bool) {
	darkMode = dark
	InitStyles()
}

func applyStyles(p PaletteSnapshot) {
	themeName := "azure light"
	if darkMode {
		themeName = "azure dark"
	}
	_ = ActivateTheme(themeName)
	App.Configure(Background(p.AppBg))

	for style, bg := range map[string]string{
		StylePrimaryButton: p.Primary,
		StyleDangerButton:  p.Danger,
	} {
		StyleConfigure(style, Background(bg), Foreground("white"), Padding("4p 3p"), Relief("ridge"))
	}
	StyleConfigure(StyleStateLabel, Background(p.Accent), Foreground("white"), Padding("4p 2p"), Relief("groove"))
	StyleConfigure(StyleMutedLabel, Background(p.AppBg), Foreground(p.TextMuted), Padding("2p 1p"))
}
