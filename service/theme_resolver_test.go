package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-home/models"
)

func TestResolveTheme_StoreThemeWins(t *testing.T) {
	theme := ResolveTheme(json.RawMessage(`{"primary":"#000000"}`), nil)

	assert.Equal(t, models.ThemeColors{
		Primary:    "#000000",
		Secondary:  DefaultSecondary,
		Accent:     DefaultAccent,
		Background: DefaultBackground,
		HeaderText: LightText,
	}, theme)
}

func TestResolveTheme_StoreThemeWinsEntirely(t *testing.T) {
	store := json.RawMessage(`{"primary":"#222222"}`)
	app := json.RawMessage(`{"primary":"#eeeeee","secondary":"#123456","accent":"#654321"}`)

	theme := ResolveTheme(store, app)
	assert.Equal(t, "#222222", theme.Primary)
	assert.Equal(t, DefaultSecondary, theme.Secondary)
	assert.Equal(t, DefaultAccent, theme.Accent)
}

func TestResolveTheme_FallsThroughToAppTheme(t *testing.T) {
	app := json.RawMessage(`{"primary":"#fafafa","secondary":"#111111","accent":"#ff0000","background":"#ffffff"}`)

	cases := map[string]json.RawMessage{
		"unparseable string": json.RawMessage(`"{not json"`),
		"invalid json":       json.RawMessage(`{primary:`),
		"empty object":       json.RawMessage(`{}`),
		"null":               json.RawMessage(`null`),
		"array":              json.RawMessage(`["#000"]`),
		"absent":             nil,
	}
	for name, store := range cases {
		t.Run(name, func(t *testing.T) {
			theme := ResolveTheme(store, app)
			assert.Equal(t, "#fafafa", theme.Primary)
			assert.Equal(t, "#111111", theme.Secondary)
			assert.Equal(t, "#ff0000", theme.Accent)
			assert.Equal(t, "#ffffff", theme.Background)
			assert.Equal(t, DarkText, theme.HeaderText)
		})
	}
}

func TestResolveTheme_JSONEncodedString(t *testing.T) {
	store := json.RawMessage(`"{\"primary\":\"#1a1a1a\",\"accent\":\"#00ff00\"}"`)

	theme := ResolveTheme(store, nil)
	assert.Equal(t, "#1a1a1a", theme.Primary)
	assert.Equal(t, "#00ff00", theme.Accent)
	assert.Equal(t, LightText, theme.HeaderText)
}

func TestResolveTheme_FieldFallbacks(t *testing.T) {
	theme := ResolveTheme(json.RawMessage(`{"primary":"  ","background":"#101010","secondary":42,"accent":""}`), nil)

	assert.Equal(t, "#101010", theme.Primary, "primary falls back to the theme background")
	assert.Equal(t, "#101010", theme.Background)
	assert.Equal(t, DefaultSecondary, theme.Secondary, "non-string values are skipped")
	assert.Equal(t, DefaultAccent, theme.Accent)
	assert.Equal(t, LightText, theme.HeaderText)
}

func TestResolveTheme_Defaults(t *testing.T) {
	assert.Equal(t, DefaultTheme(), ResolveTheme(nil, nil))
	assert.Equal(t, DefaultTheme(), ResolveTheme(json.RawMessage(`"nope"`), json.RawMessage(`42`)))
}

func TestResolveTheme_HeaderTextIgnoresThemeData(t *testing.T) {
	theme := ResolveTheme(json.RawMessage(`{"primary":"#FFFFFF","headerText":"#FFFFFF"}`), nil)
	assert.Equal(t, DarkText, theme.HeaderText)
}

func TestResolveTheme_Idempotent(t *testing.T) {
	store := json.RawMessage(`{"primary":"#336699","background":"#000"}`)
	assert.Equal(t, ResolveTheme(store, nil), ResolveTheme(store, nil))
}

func TestIsDark(t *testing.T) {
	tests := []struct {
		hex  string
		dark bool
	}{
		{"#000000", true},
		{"000", true},
		{"#FFFFFF", false},
		{"#fff", false},
		{"#808080", false}, // luminance 128
		{"#7f7f7f", true},  // luminance 127
		{"#4a90e2", false},
		{"#0000ff", true},
		{"", false},
		{"#12345", false},
		{"#zzzzzz", false},
		{"not a color", false},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			assert.Equal(t, tt.dark, IsDark(tt.hex))
		})
	}
}

func TestTextColorFor(t *testing.T) {
	assert.Equal(t, LightText, TextColorFor("#000"))
	assert.Equal(t, DarkText, TextColorFor("#FFFFFF"))
	assert.Equal(t, DarkText, TextColorFor("garbage"))
}
