package models

// ProductInfo represents a product as shown in a product collection
type ProductInfo struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	LocationID *string  `json:"location_id"`
	Price      *float64 `json:"price,omitempty"`
	OfferPrice *float64 `json:"offerPrice"`
	CreatedAt  string   `json:"created_at,omitempty"`
}

// IsDiscounted reports whether the product has a real discount: both prices numeric
// and the offer price strictly below the regular price
func (p ProductInfo) IsDiscounted() bool {
	return p.Price != nil && p.OfferPrice != nil && *p.OfferPrice < *p.Price
}

// CategoryInfo represents a category shown in a category row
type CategoryInfo struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	IconURL         string `json:"iconUrl,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
	// Resolved against the active theme by the dispatcher
	ItemBackgroundColor string `json:"itemBackgroundColor,omitempty"`
	ItemTextColor       string `json:"itemTextColor,omitempty"`
}

// TagInfo represents a featured tag shown in a tag row
type TagInfo struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	IconURL             string `json:"iconUrl,omitempty"`
	BackgroundColor     string `json:"background_color,omitempty"`
	TextColor           string `json:"text_color,omitempty"`
	ItemBackgroundColor string `json:"itemBackgroundColor,omitempty"`
	ItemTextColor       string `json:"itemTextColor,omitempty"`
}

// ContentKind tells which item slice of a Content is populated
type ContentKind string

const (
	ContentKindNone       ContentKind = "none"
	ContentKindProducts   ContentKind = "products"
	ContentKindCategories ContentKind = "categories"
	ContentKindTags       ContentKind = "tags"
)

// Content is the resolved data of one content source.
// Diagnostic is set when the source resolved to nothing because it was unrecognized or incomplete.
type Content struct {
	Kind       ContentKind
	Products   []ProductInfo
	Categories []CategoryInfo
	Tags       []TagInfo
	Diagnostic string
}

// Len returns the number of resolved items
func (c Content) Len() int {
	switch c.Kind {
	case ContentKindProducts:
		return len(c.Products)
	case ContentKindCategories:
		return len(c.Categories)
	case ContentKindTags:
		return len(c.Tags)
	}
	return 0
}
