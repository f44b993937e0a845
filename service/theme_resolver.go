package service

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"storefront-home/models"
)

// Hard default colors
const (
	DefaultPrimary    = "#FFFFFF"
	DefaultSecondary  = "#E0E0E0"
	DefaultAccent     = "#4a90e2"
	DefaultBackground = "#f0f2f5"
	DefaultHeaderText = "#333333"

	LightText = "#FFFFFF"
	DarkText  = "#333333"
)

// darkLuminanceThreshold is the luminance below which a color counts as dark
const darkLuminanceThreshold = 128

// themeField is one row of the field precedence table: the theme keys read in order,
// then the hard default.
type themeField struct {
	keys     []string
	fallback string
	set      func(*models.ThemeColors, string)
}

var themeFields = []themeField{
	{[]string{"primary", "background"}, DefaultPrimary, func(t *models.ThemeColors, v string) { t.Primary = v }},
	{[]string{"secondary"}, DefaultSecondary, func(t *models.ThemeColors, v string) { t.Secondary = v }},
	{[]string{"accent"}, DefaultAccent, func(t *models.ThemeColors, v string) { t.Accent = v }},
	{[]string{"background"}, DefaultBackground, func(t *models.ThemeColors, v string) { t.Background = v }},
}

// DefaultTheme returns the hard default palette
func DefaultTheme() models.ThemeColors {
	return models.ThemeColors{
		Primary:    DefaultPrimary,
		Secondary:  DefaultSecondary,
		Accent:     DefaultAccent,
		Background: DefaultBackground,
		HeaderText: DefaultHeaderText,
	}
}

// ResolveTheme picks the first usable theme among the store theme and the app theme and
// resolves it into a full palette. A usable theme is a non-empty JSON object, given either
// directly or as a JSON string holding one. headerText is always derived from primary.
func ResolveTheme(storeTheme, appTheme json.RawMessage) models.ThemeColors {
	colors := DefaultTheme()

	if theme, ok := firstUsableTheme(storeTheme, appTheme); ok {
		for _, f := range themeFields {
			f.set(&colors, pickColor(theme, f.keys, f.fallback))
		}
	}

	colors.HeaderText = TextColorFor(colors.Primary)
	return colors
}

func firstUsableTheme(candidates ...json.RawMessage) (gjson.Result, bool) {
	for _, raw := range candidates {
		if theme, ok := parseThemeObject(raw); ok {
			return theme, true
		}
	}
	return gjson.Result{}, false
}

func parseThemeObject(raw json.RawMessage) (gjson.Result, bool) {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return gjson.Result{}, false
	}
	res := gjson.ParseBytes(raw)
	if res.Type == gjson.String {
		inner := res.String()
		if !gjson.Valid(inner) {
			return gjson.Result{}, false
		}
		res = gjson.Parse(inner)
	}
	if !res.IsObject() || len(res.Map()) == 0 {
		return gjson.Result{}, false
	}
	return res, true
}

// pickColor returns the first non-blank string value among keys, or fallback
func pickColor(theme gjson.Result, keys []string, fallback string) string {
	for _, key := range keys {
		v := theme.Get(key)
		if v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			return strings.TrimSpace(v.Str)
		}
	}
	return fallback
}

// TextColorFor returns a legible text color for the given background
func TextColorFor(background string) string {
	if IsDark(background) {
		return LightText
	}
	return DarkText
}

// IsDark reports whether a hex color (3 or 6 digits, optional #) has luminance below 128.
// Malformed colors are not dark.
func IsDark(hex string) bool {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return false
	}
	luminance := (299*r + 587*g + 114*b) / 1000
	return luminance < darkLuminanceThreshold
}

func parseHex(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), true
}
