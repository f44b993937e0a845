package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"storefront-home/metrics"
	"storefront-home/models"
)

const (
	defaultDispatchConcurrency = 8
	defaultFetchTimeout        = 10 * time.Second
)

// anyKnownStyle accepts every style a layout can declare
var anyKnownStyle = map[models.LayoutStyle]bool{
	models.LayoutStyleIconRow:  true,
	models.LayoutStyleCarousel: true,
	models.LayoutStyleGrid:     true,
	models.LayoutStyleBanner:   true,
}

// eligibleStyles is the renderer eligibility table: the styles each section type can render with.
// Banners and product collections render regardless of style; navigation sections need a row or grid.
var eligibleStyles = map[models.SectionType]map[models.LayoutStyle]bool{
	models.SectionTypeBannerMedia: anyKnownStyle,
	models.SectionTypeBaseCategory: {
		models.LayoutStyleIconRow:  true,
		models.LayoutStyleCarousel: true,
		models.LayoutStyleGrid:     true,
	},
	models.SectionTypeTagGroupNav: {
		models.LayoutStyleIconRow:  true,
		models.LayoutStyleCarousel: true,
		models.LayoutStyleGrid:     true,
	},
	models.SectionTypeProductCollection: anyKnownStyle,
}

// StyleEligible reports whether a section type can render with a style
func StyleEligible(t models.SectionType, style models.LayoutStyle) bool {
	return eligibleStyles[t][style]
}

// IsRenderable reports whether a section has an eligible style and a source matching its type
func IsRenderable(s models.LayoutSection) bool {
	return StyleEligible(s.SectionType, s.Layout.Style) && models.SourceMatchesType(s.SectionType, s.Source)
}

// Dispatcher hydrates resolved sections with their content
type Dispatcher struct {
	content      ContentResolverInterface
	concurrency  int
	fetchTimeout time.Duration
	log          logrus.FieldLogger
}

// Ensure Dispatcher implements SectionDispatcherInterface
var _ SectionDispatcherInterface = (*Dispatcher)(nil)

// NewDispatcher creates a new Dispatcher. concurrency bounds the number of sections
// fetched at once; fetchTimeout bounds a single section fetch.
func NewDispatcher(content ContentResolverInterface, concurrency int, fetchTimeout time.Duration, log logrus.FieldLogger) *Dispatcher {
	if concurrency <= 0 {
		concurrency = defaultDispatchConcurrency
	}
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Dispatcher{
		content:      content,
		concurrency:  concurrency,
		fetchTimeout: fetchTimeout,
		log:          log,
	}
}

// Dispatch hydrates every section concurrently. The result has one slot per input section,
// in input order; unrenderable sections leave a nil slot. A failed fetch only affects its own section.
func (d *Dispatcher) Dispatch(ctx context.Context, sections []models.LayoutSection, brandID string, locationID *string, theme models.ThemeColors) []*models.RenderableSection {
	out := make([]*models.RenderableSection, len(sections))

	var g errgroup.Group
	g.SetLimit(d.concurrency)
	for i := range sections {
		i := i
		s := sections[i]
		if !IsRenderable(s) {
			d.log.WithFields(logrus.Fields{
				"section_id":   s.SectionID,
				"section_type": s.SectionType,
				"style":        s.Layout.Style,
			}).Debug("Skipping unrenderable section")
			continue
		}
		g.Go(func() error {
			out[i] = d.hydrate(ctx, s, brandID, locationID, theme)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// DispatchOne hydrates a single section, or returns nil when it is unrenderable
func (d *Dispatcher) DispatchOne(ctx context.Context, section models.LayoutSection, brandID string, locationID *string, theme models.ThemeColors) *models.RenderableSection {
	if !IsRenderable(section) {
		return nil
	}
	return d.hydrate(ctx, section, brandID, locationID, theme)
}

func (d *Dispatcher) hydrate(ctx context.Context, s models.LayoutSection, brandID string, locationID *string, theme models.ThemeColors) *models.RenderableSection {
	start := time.Now()
	rs := &models.RenderableSection{
		SectionID:    s.SectionID,
		Title:        s.Title,
		SectionType:  s.SectionType,
		Status:       models.SectionStatusReady,
		Layout:       s.Layout,
		Presentation: presentationFor(s, theme),
		LinkBehavior: s.LinkBehavior,
	}
	defer func() {
		metrics.RecordSection(string(s.SectionType), string(rs.Status), time.Since(start))
	}()

	if s.SectionType == models.SectionTypeBannerMedia {
		fillBanners(rs, s)
		return rs
	}

	if s.SectionType == models.SectionTypeProductCollection && brandID == "" {
		rs.Status = models.SectionStatusUnavailable
		rs.Diagnostic = "product collection needs a brand id"
		return rs
	}

	fetchCtx, cancel := context.WithTimeout(ctx, d.fetchTimeout)
	defer cancel()

	content, err := d.content.Resolve(fetchCtx, s.Source, ResolveContext{BrandID: brandID, LocationID: locationID})
	if err != nil {
		d.log.WithError(err).WithField("section_id", s.SectionID).Warn("❌ Section fetch failed")
		rs.Status = models.SectionStatusError
		rs.Error = err.Error()
		rs.Retry = retryPath(locationID, s.SectionID)
		return rs
	}

	rs.Diagnostic = content.Diagnostic
	switch content.Kind {
	case models.ContentKindProducts:
		rs.Products = content.Products
	case models.ContentKindCategories:
		rs.Categories = colorCategories(content.Categories, theme)
	case models.ContentKindTags:
		rs.Tags = colorTags(content.Tags, theme)
	}
	return rs
}

func retryPath(locationID *string, sectionID string) string {
	if locationID == nil {
		return ""
	}
	return fmt.Sprintf("/storefront/locations/%s/sections/%s", *locationID, sectionID)
}

func fillBanners(rs *models.RenderableSection, s models.LayoutSection) {
	if s.CustomImageURL == "" {
		rs.Status = models.SectionStatusUnavailable
		rs.Diagnostic = "banner has no image"
		return
	}
	rs.Banners = []models.BannerItem{{ImageURL: s.CustomImageURL, Action: s.LinkBehavior}}
	if s.CustomImageURLSecondary != "" {
		rs.Banners = append(rs.Banners, models.BannerItem{ImageURL: s.CustomImageURLSecondary, Action: s.LinkBehaviorSecondary})
	}
}

func presentationFor(s models.LayoutSection, theme models.ThemeColors) models.Presentation {
	cfg := s.Layout
	p := models.Presentation{
		Shape:           cfg.Shape,
		BackgroundColor: cfg.BackgroundColor,
		TitleColor:      TextColorFor(theme.Background),
	}
	if cfg.BackgroundColor != "" {
		p.TitleColor = TextColorFor(cfg.BackgroundColor)
	}

	switch cfg.Style {
	case models.LayoutStyleBanner:
		p.BannerHeight = models.BannerHeight(cfg.BannerHeightMode)
		p.BannerHalfWidth = cfg.BannerWidthMode == models.BannerWidthHalf
		p.Dimensions = models.ParseDimensions(cfg.Size)
	case models.LayoutStyleIconRow:
		p.IconSize = models.IconSize(cfg)
		p.Dimensions = models.ParseDimensions(firstNonEmpty(cfg.ItemDimensions, cfg.Size))
	default:
		p.Dimensions = models.ParseDimensions(firstNonEmpty(cfg.ItemDimensions, cfg.Size))
	}
	return p
}

// itemColors resolves the display colors of a category or tag item: its own background or
// the theme secondary, its own text color or the contrast color of that background
func itemColors(background, text string, theme models.ThemeColors) (string, string) {
	if background == "" {
		background = theme.Secondary
	}
	if text == "" {
		text = TextColorFor(background)
	}
	return background, text
}

func colorCategories(categories []models.CategoryInfo, theme models.ThemeColors) []models.CategoryInfo {
	out := make([]models.CategoryInfo, len(categories))
	for i, c := range categories {
		c.ItemBackgroundColor, c.ItemTextColor = itemColors(c.BackgroundColor, c.TextColor, theme)
		out[i] = c
	}
	return out
}

func colorTags(tags []models.TagInfo, theme models.ThemeColors) []models.TagInfo {
	out := make([]models.TagInfo, len(tags))
	for i, t := range tags {
		t.ItemBackgroundColor, t.ItemTextColor = itemColors(t.BackgroundColor, t.TextColor, theme)
		out[i] = t
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
