package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-home/logging"
	"storefront-home/models"
)

func TestPreviewService_RenderHTML(t *testing.T) {
	price, offer := 20.0, 15.0
	theme := DefaultTheme()
	home := &models.HomePage{
		StoreName: "Corner & Co",
		LogoURL:   "https://cdn.example.com/logo.png",
		Theme:     theme,
		Sections: []*models.RenderableSection{
			{
				SectionID:    "hero",
				SectionType:  models.SectionTypeBannerMedia,
				Status:       models.SectionStatusReady,
				Layout:       models.LayoutStyleConfig{Style: models.LayoutStyleBanner},
				Presentation: models.Presentation{BannerHeight: 250},
				Banners:      []models.BannerItem{{ImageURL: "https://cdn.example.com/banner.png"}},
			},
			{
				SectionID:   "deals",
				Title:       "Deals",
				SectionType: models.SectionTypeProductCollection,
				Status:      models.SectionStatusReady,
				Layout:      models.LayoutStyleConfig{Style: models.LayoutStyleCarousel},
				Products:    []models.ProductInfo{{ID: "p1", Name: "Sourdough", Price: &price, OfferPrice: &offer}},
			},
			{
				SectionID:   "broken",
				Title:       "Tags",
				SectionType: models.SectionTypeTagGroupNav,
				Status:      models.SectionStatusError,
				Layout:      models.LayoutStyleConfig{Style: models.LayoutStyleIconRow},
				Error:       "connection reset",
			},
		},
	}

	html, err := NewPreviewService("", logging.Discard()).RenderHTML(home)
	require.NoError(t, err)

	assert.Contains(t, html, "Corner &amp; Co")
	assert.Contains(t, html, theme.Primary)
	assert.Contains(t, html, "https://cdn.example.com/banner.png")
	assert.Contains(t, html, "height: 250px")
	assert.Contains(t, html, "Sourdough")
	assert.Contains(t, html, "$15.00")
	assert.Contains(t, html, "$20.00")
	assert.Contains(t, html, "Could not load this section: connection reset")
}

func TestPreviewService_RenderHTMLNeedsLocation(t *testing.T) {
	home := &models.HomePage{StoreName: "Choose a Location", NeedsLocation: true, Theme: DefaultTheme()}

	html, err := NewPreviewService("", logging.Discard()).RenderHTML(home)
	require.NoError(t, err)
	assert.Contains(t, html, "Choose a location to see its home page.")

	_, err = NewPreviewService("", logging.Discard()).RenderHTML(nil)
	assert.Error(t, err)
}

func TestDetectChromePath_MissingConfiguredPath(t *testing.T) {
	path := detectChromePath("/definitely/not/chrome")
	assert.NotEqual(t, "/definitely/not/chrome", path)
}
