package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/s0up4200/lenscms/strapi"
)

// Collection endpoints on the content API.
const (
	articlesEndpoint  = "/articles"
	locationsEndpoint = "/locations"
	brandsEndpoint    = "/brands"
	contactEndpoint   = "/contact-messages"
	bookingEndpoint   = "/bookings"
)

// StrapiSource reads content from a Strapi content API.
type StrapiSource struct {
	client     *strapi.Client
	revalidate *time.Duration
	locale     string
}

// StrapiOption configures a StrapiSource.
type StrapiOption func(*StrapiSource)

// WithRevalidate lets reads be served from the client's response cache for d.
func WithRevalidate(d time.Duration) StrapiOption {
	return func(s *StrapiSource) {
		s.revalidate = strapi.RevalidateAfter(d)
	}
}

// WithLocale requests localized entries unless a query names its own locale.
func WithLocale(locale string) StrapiOption {
	return func(s *StrapiSource) {
		s.locale = locale
	}
}

// NewStrapiSource creates a Source backed by client.
func NewStrapiSource(client *strapi.Client, opts ...StrapiOption) *StrapiSource {
	s := &StrapiSource{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source.
func (s *StrapiSource) Name() string { return "strapi" }

type strapiArticle struct {
	Title       string               `json:"title"`
	Slug        string               `json:"slug"`
	Excerpt     string               `json:"excerpt"`
	Content     string               `json:"content"`
	Category    string               `json:"category"`
	Tags        []string             `json:"tags"`
	Author      string               `json:"author"`
	PublishedAt time.Time            `json:"publishedAt"`
	Cover       strapi.MediaRelation `json:"cover"`
}

type strapiLocation struct {
	Name       string         `json:"name"`
	Slug       string         `json:"slug"`
	Address    string         `json:"address"`
	PostalCode string         `json:"postalCode"`
	City       string         `json:"city"`
	Phone      string         `json:"phone"`
	Email      string         `json:"email"`
	Hours      []OpeningHours `json:"hours"`
	Services   []string       `json:"services"`
	Latitude   float64        `json:"latitude"`
	Longitude  float64        `json:"longitude"`
}

type strapiBrand struct {
	Name        string               `json:"name"`
	Slug        string               `json:"slug"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	Website     string               `json:"website"`
	Logo        strapi.MediaRelation `json:"logo"`
}

func (s *StrapiSource) options(opts strapi.FetchOptions) strapi.FetchOptions {
	if opts.Locale == "" {
		opts.Locale = s.locale
	}
	opts.Revalidate = s.revalidate
	return opts
}

// Articles implements Source. Newest articles come first.
func (s *StrapiSource) Articles(ctx context.Context, q ArticleQuery) ([]Article, error) {
	opts := strapi.FetchOptions{
		Populate: strapi.PopulateFields("cover"),
		Sort:     []string{"publishedAt:desc"},
		Locale:   q.Locale,
	}
	if q.Category != "" {
		opts.Filters = strapi.Filters{strapi.Eq("category", q.Category)}
	}
	if q.Limit > 0 {
		opts.Pagination = strapi.Page(1, q.Limit)
	}

	resp, err := strapi.Fetch[[]strapi.Entity[strapiArticle]](ctx, s.client, articlesEndpoint, s.options(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch articles: %w", err)
	}

	articles := make([]Article, 0, len(resp.Data))
	for _, e := range resp.Data {
		articles = append(articles, s.article(e.Attributes))
	}
	return articles, nil
}

// Article implements Source.
func (s *StrapiSource) Article(ctx context.Context, slug string) (*Article, error) {
	opts := strapi.FetchOptions{
		Populate:   strapi.PopulateFields("cover"),
		Filters:    strapi.Filters{strapi.Eq("slug", slug)},
		Pagination: strapi.Page(1, 1),
	}

	resp, err := strapi.Fetch[[]strapi.Entity[strapiArticle]](ctx, s.client, articlesEndpoint, s.options(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article %s: %w", slug, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("article %s: %w", slug, ErrNotFound)
	}

	article := s.article(resp.Data[0].Attributes)
	return &article, nil
}

// Locations implements Source.
func (s *StrapiSource) Locations(ctx context.Context) ([]Location, error) {
	opts := strapi.FetchOptions{Sort: []string{"name:asc"}}

	resp, err := strapi.Fetch[[]strapi.Entity[strapiLocation]](ctx, s.client, locationsEndpoint, s.options(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}

	locations := make([]Location, 0, len(resp.Data))
	for _, e := range resp.Data {
		l := e.Attributes
		locations = append(locations, Location{
			Slug:       l.Slug,
			Name:       l.Name,
			Address:    l.Address,
			PostalCode: l.PostalCode,
			City:       l.City,
			Phone:      l.Phone,
			Email:      l.Email,
			Hours:      l.Hours,
			Services:   l.Services,
			Latitude:   l.Latitude,
			Longitude:  l.Longitude,
		})
	}
	return locations, nil
}

// Brands implements Source.
func (s *StrapiSource) Brands(ctx context.Context) ([]Brand, error) {
	opts := strapi.FetchOptions{
		Populate: strapi.PopulateFields("logo"),
		Sort:     []string{"name:asc"},
	}

	resp, err := strapi.Fetch[[]strapi.Entity[strapiBrand]](ctx, s.client, brandsEndpoint, s.options(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch brands: %w", err)
	}

	brands := make([]Brand, 0, len(resp.Data))
	for _, e := range resp.Data {
		b := e.Attributes
		brands = append(brands, Brand{
			Slug:        b.Slug,
			Name:        b.Name,
			Description: b.Description,
			Category:    b.Category,
			Website:     b.Website,
			Logo:        s.image(b.Logo),
		})
	}
	return brands, nil
}

// SubmitContact implements Source.
func (s *StrapiSource) SubmitContact(ctx context.Context, req ContactRequest) error {
	if _, err := strapi.Create[json.RawMessage](ctx, s.client, contactEndpoint, req); err != nil {
		return fmt.Errorf("failed to submit contact form: %w", err)
	}
	return nil
}

// RequestBooking implements Source.
func (s *StrapiSource) RequestBooking(ctx context.Context, req BookingRequest) error {
	if _, err := strapi.Create[json.RawMessage](ctx, s.client, bookingEndpoint, req); err != nil {
		return fmt.Errorf("failed to request booking: %w", err)
	}
	return nil
}

func (s *StrapiSource) article(a strapiArticle) Article {
	return Article{
		Slug:        a.Slug,
		Title:       a.Title,
		Excerpt:     a.Excerpt,
		Body:        a.Content,
		Category:    a.Category,
		Tags:        a.Tags,
		Author:      a.Author,
		PublishedAt: a.PublishedAt,
		Cover:       s.image(a.Cover),
	}
}

// image resolves upload paths against the API host. Uploads served from a
// provider bucket already carry an absolute URL.
func (s *StrapiSource) image(rel strapi.MediaRelation) *Image {
	if rel.Media == nil {
		return nil
	}
	u := rel.Media.URL
	if strings.HasPrefix(u, "/") {
		u = s.client.BaseURL() + u
	}
	return &Image{
		URL:    u,
		Alt:    rel.Media.AlternativeText,
		Width:  rel.Media.Width,
		Height: rel.Media.Height,
	}
}
