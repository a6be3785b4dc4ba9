package content

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/lenscms/sanity"
)

// GROQ projections shared by the listing and detail queries.
const (
	articleProjection = `{
  title, "slug": slug.current, excerpt, "body": pt::text(body), category,
  "tags": tags[], "author": author->name, publishedAt, "cover": coverImage
}`
	locationProjection = `{
  name, "slug": slug.current, address, postalCode, city, phone, email,
  hours, services, "latitude": geo.lat, "longitude": geo.lng
}`
	brandProjection = `{
  name, "slug": slug.current, description, category, website, logo
}`
)

// coverWidth is the width requested from the image CDN for article covers.
const coverWidth = 1200

// SanitySource reads content from a Sanity dataset with GROQ.
type SanitySource struct {
	client *sanity.Client
	logger zerolog.Logger
}

// NewSanitySource creates a Source backed by client.
func NewSanitySource(client *sanity.Client, logger zerolog.Logger) *SanitySource {
	return &SanitySource{client: client, logger: logger}
}

// Name implements Source.
func (s *SanitySource) Name() string { return "sanity" }

type sanityArticle struct {
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Excerpt     string        `json:"excerpt"`
	Body        string        `json:"body"`
	Category    string        `json:"category"`
	Tags        []string      `json:"tags"`
	Author      string        `json:"author"`
	PublishedAt time.Time     `json:"publishedAt"`
	Cover       *sanity.Image `json:"cover"`
}

type sanityBrand struct {
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Website     string        `json:"website"`
	Logo        *sanity.Image `json:"logo"`
}

// Articles implements Source.
func (s *SanitySource) Articles(ctx context.Context, q ArticleQuery) ([]Article, error) {
	query := `*[_type == "article" && defined(slug.current)`
	params := map[string]any{}
	if q.Category != "" {
		query += ` && category == $category`
		params["category"] = q.Category
	}
	if q.Locale != "" {
		query += ` && language == $locale`
		params["locale"] = q.Locale
	}
	query += `] | order(publishedAt desc)`
	if q.Limit > 0 {
		query += ` [0...$limit]`
		params["limit"] = q.Limit
	}
	query += ` ` + articleProjection

	docs, err := sanity.QueryInto[[]sanityArticle](ctx, s.client, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}

	articles := make([]Article, 0, len(docs))
	for _, d := range docs {
		articles = append(articles, s.article(d))
	}
	return articles, nil
}

// Article implements Source.
func (s *SanitySource) Article(ctx context.Context, slug string) (*Article, error) {
	query := `*[_type == "article" && slug.current == $slug][0] ` + articleProjection

	doc, err := sanity.QueryInto[*sanityArticle](ctx, s.client, query, map[string]any{"slug": slug})
	if err != nil {
		return nil, fmt.Errorf("failed to query article %s: %w", slug, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("article %s: %w", slug, ErrNotFound)
	}

	article := s.article(*doc)
	return &article, nil
}

// Locations implements Source.
func (s *SanitySource) Locations(ctx context.Context) ([]Location, error) {
	query := `*[_type == "location"] | order(name asc) ` + locationProjection

	locations, err := sanity.QueryInto[[]Location](ctx, s.client, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	return locations, nil
}

// Brands implements Source.
func (s *SanitySource) Brands(ctx context.Context) ([]Brand, error) {
	query := `*[_type == "brand"] | order(name asc) ` + brandProjection

	docs, err := sanity.QueryInto[[]sanityBrand](ctx, s.client, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}

	brands := make([]Brand, 0, len(docs))
	for _, d := range docs {
		brands = append(brands, Brand{
			Slug:        d.Slug,
			Name:        d.Name,
			Description: d.Description,
			Category:    d.Category,
			Website:     d.Website,
			Logo:        s.image(d.Logo, 0),
		})
	}
	return brands, nil
}

// SubmitContact implements Source. Datasets are read-only here.
func (s *SanitySource) SubmitContact(context.Context, ContactRequest) error {
	return fmt.Errorf("sanity: contact form: %w", ErrUnsupported)
}

// RequestBooking implements Source. Datasets are read-only here.
func (s *SanitySource) RequestBooking(context.Context, BookingRequest) error {
	return fmt.Errorf("sanity: booking: %w", ErrUnsupported)
}

func (s *SanitySource) article(d sanityArticle) Article {
	return Article{
		Slug:        d.Slug,
		Title:       d.Title,
		Excerpt:     d.Excerpt,
		Body:        d.Body,
		Category:    d.Category,
		Tags:        d.Tags,
		Author:      d.Author,
		PublishedAt: d.PublishedAt,
		Cover:       s.image(d.Cover, coverWidth),
	}
}

// image builds a CDN URL for img. Broken references are logged and dropped
// so one bad asset does not fail a whole listing.
func (s *SanitySource) image(img *sanity.Image, width int) *Image {
	if img == nil || img.Asset.Ref == "" {
		return nil
	}
	b := s.client.Image(img).Auto("format")
	if width > 0 {
		b = b.Width(width)
	}
	u, err := b.URL()
	if err != nil {
		s.logger.Warn().Err(err).Str("ref", img.Asset.Ref).Msg("Skipping image with invalid asset reference")
		return nil
	}
	return &Image{URL: u, Alt: img.Alt}
}
