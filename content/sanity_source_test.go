package content

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/lenscms/sanity"
)

func newSanitySource(t *testing.T, handler http.HandlerFunc) *SanitySource {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := sanity.NewClient(sanity.Config{ProjectID: "abc123"}, zerolog.Nop(), sanity.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return NewSanitySource(client, zerolog.Nop())
}

func TestSanitySourceArticles(t *testing.T) {
	var gotQuery, gotLimit, gotCategory string
	src := newSanitySource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2024-01-01/data/query/production", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotLimit = r.URL.Query().Get("$limit")
		gotCategory = r.URL.Query().Get("$category")
		io.WriteString(w, `{"ms":3,"result":[
			{"title":"Blue light","slug":"blue-light","publishedAt":"2025-05-05T00:00:00Z",
			 "cover":{"asset":{"_ref":"image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg"},"alt":"Screen"}},
			{"title":"Broken","slug":"broken","cover":{"asset":{"_ref":"file-nope"}}}
		]}`)
	})

	articles, err := src.Articles(context.Background(), ArticleQuery{Category: "lenses", Limit: 2})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, `category == $category`)
	assert.Contains(t, gotQuery, `order(publishedAt desc) [0...$limit]`)
	assert.Equal(t, "2", gotLimit)
	assert.Equal(t, `"lenses"`, gotCategory)

	require.Len(t, articles, 2)
	require.NotNil(t, articles[0].Cover)
	assert.Equal(t,
		"https://cdn.sanity.io/images/abc123/production/Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000.jpg?auto=format&w=1200",
		articles[0].Cover.URL)
	assert.Equal(t, "Screen", articles[0].Cover.Alt)
	assert.Nil(t, articles[1].Cover)
}

func TestSanitySourceArticle(t *testing.T) {
	src := newSanitySource(t, func(w http.ResponseWriter, r *http.Request) {
		var slug string
		assert.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("$slug")), &slug))
		if slug == "known" {
			io.WriteString(w, `{"result":{"title":"Known","slug":"known"}}`)
			return
		}
		io.WriteString(w, `{"result":null}`)
	})

	article, err := src.Article(context.Background(), "known")
	require.NoError(t, err)
	assert.Equal(t, "Known", article.Title)

	_, err = src.Article(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSanitySourceLocations(t *testing.T) {
	src := newSanitySource(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"result":[{"name":"Oslo","slug":"oslo","city":"Oslo","latitude":59.9,"longitude":10.7}]}`)
	})

	locations, err := src.Locations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Location{{Name: "Oslo", Slug: "oslo", City: "Oslo", Latitude: 59.9, Longitude: 10.7}}, locations)
}

func TestSanitySourceError(t *testing.T) {
	src := newSanitySource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"type":"queryParseError","description":"unexpected token"}}`)
	})

	_, err := src.Brands(context.Background())
	var apiErr *sanity.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "queryParseError", apiErr.Type)
}

func TestSanitySourceFormsUnsupported(t *testing.T) {
	src := newSanitySource(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("forms must not reach the dataset")
	})

	assert.ErrorIs(t, src.SubmitContact(context.Background(), ContactRequest{}), ErrUnsupported)
	assert.ErrorIs(t, src.RequestBooking(context.Background(), BookingRequest{}), ErrUnsupported)
}
