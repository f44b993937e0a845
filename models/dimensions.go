package models

import (
	"strconv"
	"strings"
)

// DimensionUnit is the unit of a single dimension value
type DimensionUnit string

const (
	DimensionPixels  DimensionUnit = "px"
	DimensionPercent DimensionUnit = "%"
	DimensionAuto    DimensionUnit = "auto"
)

// Dimension is one side of a WxH size
type Dimension struct {
	Value float64       `json:"value,omitempty"`
	Unit  DimensionUnit `json:"unit"`
}

// Dimensions is a parsed size string
type Dimensions struct {
	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`
}

const (
	defaultIconSize     = 60
	defaultBannerHeight = 200
)

// Banner heights in pixels per banner_height_mode
var bannerHeights = map[string]int{
	BannerHeightSmall:  100,
	BannerHeightMedium: 150,
	BannerHeightLarge:  250,
}

func fullWidth() Dimension {
	return Dimension{Value: 100, Unit: DimensionPercent}
}

// ParseDimensions parses "WxH", "N%", "N" (height only) or "auto".
// Width defaults to 100% and height to 200px when a part is missing or malformed.
func ParseDimensions(size string) Dimensions {
	dims := Dimensions{
		Width:  fullWidth(),
		Height: Dimension{Value: defaultBannerHeight, Unit: DimensionPixels},
	}

	size = strings.ToLower(strings.TrimSpace(size))
	if size == "" {
		return dims
	}
	if size == "auto" {
		dims.Height = Dimension{Unit: DimensionAuto}
		return dims
	}

	parts := strings.Split(size, "x")
	switch len(parts) {
	case 2:
		if w, ok := parseDimension(parts[0]); ok && w.Unit != DimensionAuto {
			dims.Width = w
		}
		if h, ok := parseDimension(parts[1]); ok {
			dims.Height = h
		}
	case 1:
		if h, ok := parseDimension(parts[0]); ok && h.Unit != DimensionAuto {
			dims.Height = h
		}
	}
	return dims
}

func parseDimension(part string) (Dimension, bool) {
	part = strings.TrimSpace(part)
	if part == "auto" {
		return Dimension{Unit: DimensionAuto}, true
	}
	unit := DimensionPixels
	if strings.HasSuffix(part, "%") {
		unit = DimensionPercent
		part = strings.TrimSuffix(part, "%")
	}
	part = strings.TrimSuffix(part, "px")
	v, err := strconv.ParseFloat(part, 64)
	if err != nil || v < 0 {
		return Dimension{}, false
	}
	return Dimension{Value: v, Unit: unit}, true
}

// IconSize returns the icon size of a row section: the first numeric part of
// size (or item_dimensions when size is empty), 60 by default
func IconSize(cfg LayoutStyleConfig) int {
	sizeStr := cfg.Size
	if sizeStr == "" {
		sizeStr = cfg.ItemDimensions
	}
	if sizeStr == "" {
		return defaultIconSize
	}
	first := strings.Split(sizeStr, "x")[0]
	n, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil || n <= 0 {
		return defaultIconSize
	}
	return n
}

// BannerHeight returns the banner height in pixels for a banner_height_mode, medium by default
func BannerHeight(mode string) int {
	if h, ok := bannerHeights[mode]; ok {
		return h
	}
	return bannerHeights[BannerHeightMedium]
}
