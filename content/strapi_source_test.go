package content

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/lenscms/strapi"
)

func newStrapiSource(t *testing.T, handler http.HandlerFunc, opts ...StrapiOption) *StrapiSource {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := strapi.NewClient(srv.URL, "token", zerolog.Nop())
	require.NoError(t, err)
	return NewStrapiSource(client, opts...)
}

func TestStrapiSourceArticles(t *testing.T) {
	var gotQuery string
	src := newStrapiSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/articles", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":[
			{"id":1,"documentId":"abc","title":"Frames for round faces","slug":"round-faces",
			 "category":"frames","tags":["frames","guides"],"publishedAt":"2025-04-01T10:00:00.000Z",
			 "cover":{"id":7,"url":"/uploads/round.jpg","alternativeText":"Round frames","width":800,"height":600}},
			{"id":2,"attributes":{"title":"Old shape","slug":"old-shape","publishedAt":"2024-01-01T00:00:00Z",
			 "cover":{"data":{"id":8,"attributes":{"url":"https://cdn.example.com/old.jpg"}}}}}
		],"meta":{"pagination":{"page":1,"pageSize":2,"pageCount":1,"total":2}}}`)
	})

	articles, err := src.Articles(context.Background(), ArticleQuery{Category: "frames", Limit: 2, Locale: "nb-NO"})
	require.NoError(t, err)

	assert.Equal(t, "populate=cover"+
		"&filters%5Bcategory%5D=frames"+
		"&sort=publishedAt%3Adesc"+
		"&pagination%5Bpage%5D=1&pagination%5BpageSize%5D=2"+
		"&locale=nb-NO", gotQuery)

	require.Len(t, articles, 2)
	assert.Equal(t, "round-faces", articles[0].Slug)
	assert.Equal(t, []string{"frames", "guides"}, articles[0].Tags)
	assert.Equal(t, time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC), articles[0].PublishedAt)
	require.NotNil(t, articles[0].Cover)
	assert.Equal(t, src.client.BaseURL()+"/uploads/round.jpg", articles[0].Cover.URL)
	assert.Equal(t, "Round frames", articles[0].Cover.Alt)

	assert.Equal(t, "old-shape", articles[1].Slug)
	require.NotNil(t, articles[1].Cover)
	assert.Equal(t, "https://cdn.example.com/old.jpg", articles[1].Cover.URL)
}

func TestStrapiSourceDefaultLocale(t *testing.T) {
	var gotLocale string
	src := newStrapiSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotLocale = r.URL.Query().Get("locale")
		io.WriteString(w, `{"data":[],"meta":{}}`)
	}, WithLocale("en"))

	_, err := src.Locations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "en", gotLocale)
}

func TestStrapiSourceArticle(t *testing.T) {
	src := newStrapiSource(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("filters[slug]") == "known" {
			io.WriteString(w, `{"data":[{"id":3,"title":"Known","slug":"known","content":"Body text"}],"meta":{}}`)
			return
		}
		io.WriteString(w, `{"data":[],"meta":{}}`)
	})

	article, err := src.Article(context.Background(), "known")
	require.NoError(t, err)
	assert.Equal(t, "Known", article.Title)
	assert.Equal(t, "Body text", article.Body)
	assert.Nil(t, article.Cover)

	_, err = src.Article(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStrapiSourceRemoteError(t *testing.T) {
	src := newStrapiSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"data":null,"error":{"status":403,"name":"ForbiddenError","message":"Forbidden"}}`)
	})

	_, err := src.Brands(context.Background())
	remote, ok := strapi.AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, remote.StatusCode)
}

func TestStrapiSourceLocationsAndBrands(t *testing.T) {
	src := newStrapiSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "name:asc", r.URL.Query().Get("sort"))
		switch r.URL.Path {
		case "/api/locations":
			io.WriteString(w, `{"data":[{"id":1,"name":"Bergen","slug":"bergen","city":"Bergen",
				"hours":[{"days":"Mon-Fri","opens":"09:00","closes":"17:00"}],"services":["eye-exam"],
				"latitude":60.39,"longitude":5.32}],"meta":{}}`)
		case "/api/brands":
			assert.Equal(t, "logo", r.URL.Query().Get("populate"))
			io.WriteString(w, `{"data":[{"id":1,"name":"Lindberg","slug":"lindberg","category":"frames",
				"logo":{"url":"/uploads/lindberg.svg"}}],"meta":{}}`)
		default:
			http.NotFound(w, r)
		}
	})

	locations, err := src.Locations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, []OpeningHours{{Days: "Mon-Fri", Opens: "09:00", Closes: "17:00"}}, locations[0].Hours)
	assert.InDelta(t, 60.39, locations[0].Latitude, 0.001)

	brands, err := src.Brands(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 1)
	require.NotNil(t, brands[0].Logo)
	assert.Equal(t, src.client.BaseURL()+"/uploads/lindberg.svg", brands[0].Logo.URL)
}

func TestStrapiSourceForms(t *testing.T) {
	var gotPath string
	var gotBody map[string]map[string]any
	src := newStrapiSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		io.WriteString(w, `{"data":{"id":9},"meta":{}}`)
	})
	ctx := context.Background()

	require.NoError(t, src.SubmitContact(ctx, ContactRequest{Name: "Kari", Email: "kari@example.com", Message: "Hi"}))
	assert.Equal(t, "/api/contact-messages", gotPath)
	assert.Equal(t, "Kari", gotBody["data"]["name"])

	require.NoError(t, src.RequestBooking(ctx, BookingRequest{Name: "Ola", Service: "eye-exam"}))
	assert.Equal(t, "/api/bookings", gotPath)
	assert.Equal(t, "eye-exam", gotBody["data"]["service"])
}

func TestStrapiSourceEnvelopeMismatchFallsBack(t *testing.T) {
	src := newStrapiSource(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})

	_, err := src.Articles(context.Background(), ArticleQuery{})
	var malformed *strapi.MalformedResponseError
	require.ErrorAs(t, err, &malformed)

	articles, err := NewService(src, zerolog.Nop()).Articles(context.Background(), ArticleQuery{})
	require.NoError(t, err)
	assert.Equal(t, SampleArticles(), articles)
}
