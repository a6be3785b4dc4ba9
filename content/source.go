package content

import (
	"context"
)

// Source is a content backend.
type Source interface {
	// Name identifies the backend in logs, e.g. "strapi".
	Name() string

	Articles(ctx context.Context, q ArticleQuery) ([]Article, error)
	Article(ctx context.Context, slug string) (*Article, error)
	Locations(ctx context.Context) ([]Location, error)
	Brands(ctx context.Context) ([]Brand, error)

	SubmitContact(ctx context.Context, req ContactRequest) error
	RequestBooking(ctx context.Context, req BookingRequest) error
}
