package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"storefront-home/models"
	"storefront-home/utils"
)

//go:embed templates/home_preview.html
var previewTemplates embed.FS

const (
	previewViewportWidth  = 414
	previewViewportHeight = 896
	screenshotTimeout     = 30 * time.Second
)

var previewTemplate = template.Must(template.ParseFS(previewTemplates, "templates/home_preview.html"))

// PreviewService renders resolved home pages as HTML and PNG previews
type PreviewService struct {
	chromePath string
	log        logrus.FieldLogger
}

// NewPreviewService creates a new PreviewService. chromePath may be empty.
func NewPreviewService(chromePath string, log logrus.FieldLogger) *PreviewService {
	return &PreviewService{chromePath: chromePath, log: log}
}

// Ensure PreviewService implements PreviewServiceInterface
var _ PreviewServiceInterface = (*PreviewService)(nil)

// detectChromePath detects the path to Chrome/Chromium executable.
// Checks the configured path first, then common installation paths.
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

type previewItem struct {
	Name          string
	ImageURL      string
	Product       bool
	Background    string
	Text          string
	Price         string
	OriginalPrice string
}

type previewBanner struct {
	ImageURL string
	Link     string
}

type previewSection struct {
	ID           string
	Title        string
	Style        string
	Status       models.SectionStatus
	Shape        string
	IconSize     int
	BannerHeight int
	HalfWidth    bool
	Background   string
	TitleColor   string
	Banners      []previewBanner
	Items        []previewItem
	Error        string
}

type previewData struct {
	StoreName     string
	LogoURL       string
	NeedsLocation bool
	Theme         models.ThemeColors
	ProductCard   string
	ProductText   string
	Sections      []previewSection
}

// RenderHTML renders a resolved home page into a standalone HTML document
func (s *PreviewService) RenderHTML(home *models.HomePage) (string, error) {
	if home == nil {
		return "", fmt.Errorf("nothing to preview")
	}

	data := previewData{
		StoreName:     home.StoreName,
		LogoURL:       home.LogoURL,
		NeedsLocation: home.NeedsLocation,
		Theme:         home.Theme,
		ProductCard:   home.Theme.Secondary,
		ProductText:   TextColorFor(home.Theme.Secondary),
		Sections:      make([]previewSection, 0, len(home.Sections)),
	}
	for _, rs := range home.Sections {
		if rs == nil {
			continue
		}
		data.Sections = append(data.Sections, previewSectionFor(rs, home.Theme))
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func previewSectionFor(rs *models.RenderableSection, theme models.ThemeColors) previewSection {
	ps := previewSection{
		ID:           rs.SectionID,
		Title:        rs.Title,
		Style:        string(rs.Layout.Style),
		Status:       rs.Status,
		Shape:        string(rs.Presentation.Shape),
		IconSize:     rs.Presentation.IconSize,
		BannerHeight: rs.Presentation.BannerHeight,
		HalfWidth:    rs.Presentation.BannerHalfWidth,
		Background:   rs.Presentation.BackgroundColor,
		TitleColor:   firstNonEmpty(rs.Presentation.TitleColor, TextColorFor(theme.Background)),
		Error:        rs.Error,
	}
	for _, b := range rs.Banners {
		link := ""
		if b.Action != nil && b.Action.Type == models.ClickActionLink {
			link = b.Action.Target
		}
		ps.Banners = append(ps.Banners, previewBanner{ImageURL: b.ImageURL, Link: link})
	}
	for _, c := range rs.Categories {
		ps.Items = append(ps.Items, previewItem{Name: c.Name, ImageURL: c.IconURL, Background: c.ItemBackgroundColor, Text: c.ItemTextColor})
	}
	for _, t := range rs.Tags {
		ps.Items = append(ps.Items, previewItem{Name: t.Name, ImageURL: t.IconURL, Background: t.ItemBackgroundColor, Text: t.ItemTextColor})
	}
	for _, p := range rs.Products {
		display, original := utils.DisplayPrices(p.Price, p.OfferPrice)
		ps.Items = append(ps.Items, previewItem{Name: p.Name, ImageURL: p.ImageURL, Product: true, Price: display, OriginalPrice: original})
	}
	return ps
}

// Screenshot loads an HTML document into headless Chrome and returns a full page PNG
func (s *PreviewService) Screenshot(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, screenshotTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		s.log.WithField("chrome_path", chromePath).Debug("🔍 Using Chrome")
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		s.log.Warn("⚠️ Chrome not found in common paths, relying on auto-detection")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var buf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(previewViewportWidth, previewViewportHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.Sleep(500*time.Millisecond), // Wait for images and layout
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture preview: %w", err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("failed to capture preview: empty screenshot")
	}

	s.log.WithField("bytes", len(buf)).Info("✓ Preview captured")
	return buf, nil
}
