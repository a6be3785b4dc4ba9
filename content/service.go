package content

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultHomeArticles is how many articles the home page shows.
const DefaultHomeArticles = 3

// Service is what the pages read content through. When fallback is enabled,
// listings that cannot be loaded are replaced by sample content so a page
// always renders.
type Service struct {
	source       Source
	logger       zerolog.Logger
	fallback     bool
	homeArticles int
	now          func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithFallback toggles sample content on failed listings. It is on by default.
func WithFallback(enabled bool) ServiceOption {
	return func(s *Service) {
		s.fallback = enabled
	}
}

// WithHomeArticles sets how many articles Home loads.
func WithHomeArticles(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.homeArticles = n
		}
	}
}

// NewService creates a Service reading from source.
func NewService(source Source, logger zerolog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		source:       source,
		logger:       logger,
		fallback:     true,
		homeArticles: DefaultHomeArticles,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Source returns the backend the service reads from.
func (s *Service) Source() Source {
	return s.source
}

// Articles lists articles, newest first.
func (s *Service) Articles(ctx context.Context, q ArticleQuery) ([]Article, error) {
	articles, err := s.source.Articles(ctx, q)
	if err != nil {
		if !s.fallback {
			return nil, err
		}
		s.logFallback(err, "articles")
		return filterSampleArticles(q), nil
	}
	return articles, nil
}

// Article returns the article with slug. A failed lookup only falls back to a
// sample article with the same slug.
func (s *Service) Article(ctx context.Context, slug string) (*Article, error) {
	article, err := s.source.Article(ctx, slug)
	if err != nil {
		if s.fallback {
			if sample, ok := sampleArticle(slug); ok {
				s.logFallback(err, "article")
				return sample, nil
			}
		}
		return nil, err
	}
	return article, nil
}

// Locations lists the stores.
func (s *Service) Locations(ctx context.Context) ([]Location, error) {
	locations, err := s.source.Locations(ctx)
	if err != nil {
		if !s.fallback {
			return nil, err
		}
		s.logFallback(err, "locations")
		return SampleLocations(), nil
	}
	return locations, nil
}

// Brands lists the brands carried.
func (s *Service) Brands(ctx context.Context) ([]Brand, error) {
	brands, err := s.source.Brands(ctx)
	if err != nil {
		if !s.fallback {
			return nil, err
		}
		s.logFallback(err, "brands")
		return SampleBrands(), nil
	}
	return brands, nil
}

// Home loads the latest articles, the stores and the brands concurrently.
func (s *Service) Home(ctx context.Context) (*Home, error) {
	var home Home

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(3)

	g.Go(func() error {
		articles, err := s.Articles(ctx, ArticleQuery{Limit: s.homeArticles})
		if err != nil {
			return err
		}
		home.Articles = articles
		return nil
	})
	g.Go(func() error {
		locations, err := s.Locations(ctx)
		if err != nil {
			return err
		}
		home.Locations = locations
		return nil
	})
	g.Go(func() error {
		brands, err := s.Brands(ctx)
		if err != nil {
			return err
		}
		home.Brands = brands
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load home page: %w", err)
	}
	return &home, nil
}

// SubmitContact validates and forwards a contact form. Forms never fall back.
func (s *Service) SubmitContact(ctx context.Context, req ContactRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.source.SubmitContact(ctx, req); err != nil {
		return err
	}
	s.logger.Info().Str("email", req.Email).Str("location", req.Location).Msg("Contact form submitted")
	return nil
}

// RequestBooking validates and forwards a booking request.
func (s *Service) RequestBooking(ctx context.Context, req BookingRequest) error {
	if err := req.Validate(s.now()); err != nil {
		return err
	}
	if err := s.source.RequestBooking(ctx, req); err != nil {
		return err
	}
	s.logger.Info().
		Str("location", req.Location).
		Str("service", req.Service).
		Time("date", req.Date).
		Msg("Booking requested")
	return nil
}

func (s *Service) logFallback(err error, what string) {
	s.logger.Warn().
		Err(err).
		Str("source", s.source.Name()).
		Str("content", what).
		Msg("Content source failed, serving sample content")
}
