package models

// SectionStatus is the hydration outcome of a section
type SectionStatus string

const (
	SectionStatusReady       SectionStatus = "ready"
	SectionStatusUnavailable SectionStatus = "unavailable"
	SectionStatusError       SectionStatus = "error"
)

// Presentation carries display hints derived from a section's layout config
type Presentation struct {
	IconSize        int        `json:"iconSize,omitempty"`
	Shape           ItemShape  `json:"shape,omitempty"`
	BannerHeight    int        `json:"bannerHeight,omitempty"`
	BannerHalfWidth bool       `json:"bannerHalfWidth,omitempty"`
	Dimensions      Dimensions `json:"dimensions"`
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	TitleColor      string     `json:"titleColor,omitempty"`
}

// BannerItem is a single banner image with its click action
type BannerItem struct {
	ImageURL string       `json:"imageUrl"`
	Action   *ClickAction `json:"action,omitempty"`
}

// RenderableSection is a section with its content resolved and ready for presentation
type RenderableSection struct {
	SectionID    string            `json:"section_id"`
	Title        string            `json:"title,omitempty"`
	SectionType  SectionType       `json:"section_type"`
	Status       SectionStatus     `json:"status"`
	Layout       LayoutStyleConfig `json:"layout"`
	Presentation Presentation      `json:"presentation"`
	LinkBehavior *ClickAction      `json:"link_behavior,omitempty"`
	Banners      []BannerItem      `json:"banners,omitempty"`
	Products     []ProductInfo     `json:"products,omitempty"`
	Categories   []CategoryInfo    `json:"categories,omitempty"`
	Tags         []TagInfo         `json:"tags,omitempty"`
	Diagnostic   string            `json:"diagnostic,omitempty"`
	Error        string            `json:"error,omitempty"`
	Retry        string            `json:"retry,omitempty"`
}

// HomePage is the resolved home page of a location
type HomePage struct {
	LocationID    string               `json:"locationId,omitempty"`
	StoreID       string               `json:"storeId,omitempty"`
	StoreName     string               `json:"storeName"`
	LogoURL       string               `json:"logoUrl,omitempty"`
	NeedsLocation bool                 `json:"needsLocation,omitempty"`
	Theme         ThemeColors          `json:"theme"`
	Sections      []*RenderableSection `json:"sections"`
}

// CompactSections drops nil placeholders, keeping order
func CompactSections(sections []*RenderableSection) []*RenderableSection {
	out := make([]*RenderableSection, 0, len(sections))
	for _, s := range sections {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
