package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/lenscms/strapi"
)

func TestQueryFlagsOptions(t *testing.T) {
	f := queryFlags{
		populate: []string{"cover"},
		filters:  []string{"category=frames", "price[$gte]=10", "price[$lte]=20"},
		sort:     []string{"publishedAt:desc"},
		page:     2,
		pageSize: 10,
		start:    -1,
		locale:   "nb-NO",
		fields:   []string{"title", "slug"},
	}

	opts, err := f.options()
	require.NoError(t, err)

	q, err := strapi.Encode(opts)
	require.NoError(t, err)
	assert.Equal(t, "populate=cover"+
		"&filters%5Bcategory%5D=frames"+
		"&filters%5Bprice%5D%5B%24gte%5D=10&filters%5Bprice%5D%5B%24lte%5D=20"+
		"&sort=publishedAt%3Adesc"+
		"&pagination%5Bpage%5D=2&pagination%5BpageSize%5D=10"+
		"&locale=nb-NO"+
		"&fields=title&fields=slug", q)
}

func TestQueryFlagsOffsetAndCache(t *testing.T) {
	f := queryFlags{start: 0, limit: 25, revalidate: "never", cache: "force-cache"}

	opts, err := f.options()
	require.NoError(t, err)
	require.NotNil(t, opts.Pagination)
	assert.Equal(t, 0, *opts.Pagination.Start)
	assert.Equal(t, 25, *opts.Pagination.Limit)
	assert.Nil(t, opts.Pagination.Page)
	require.NotNil(t, opts.Revalidate)
	assert.Equal(t, strapi.NeverRevalidate, *opts.Revalidate)
	assert.Equal(t, strapi.CacheForceCache, opts.Cache)

	f = queryFlags{start: -1, revalidate: "90s"}
	opts, err = f.options()
	require.NoError(t, err)
	assert.Nil(t, opts.Pagination)
	assert.Equal(t, 90*time.Second, *opts.Revalidate)
}

func TestQueryFlagsPopulateJSON(t *testing.T) {
	f := queryFlags{start: -1, populateJSON: `{"stores":{"populate":["hours"]}}`}

	opts, err := f.options()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"stores": map[string]any{"populate": []any{"hours"}}}, opts.Populate.Deep())
}

func TestQueryFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		f    queryFlags
	}{
		{"populate conflict", queryFlags{start: -1, populate: []string{"a"}, populateJSON: `{}`}},
		{"bad populate json", queryFlags{start: -1, populateJSON: `{`}},
		{"bad filter", queryFlags{start: -1, filters: []string{"novalue"}}},
		{"bad revalidate", queryFlags{start: -1, revalidate: "soon"}},
		{"bad cache mode", queryFlags{start: -1, cache: "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.f.options()
			assert.Error(t, err)
		})
	}
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{`slug="blue-light"`, "limit=3", "$tags=[\"a\"]", "raw=plain text"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"slug":  "blue-light",
		"limit": float64(3),
		"tags":  []any{"a"},
		"raw":   "plain text",
	}, params)

	_, err = parseParams([]string{"=1"})
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	v := map[string]any{"name": "Bergen", "open": true}

	var buf bytes.Buffer
	require.NoError(t, render(&buf, outputJSON, v, nil))
	assert.JSONEq(t, `{"name":"Bergen","open":true}`, buf.String())

	buf.Reset()
	require.NoError(t, render(&buf, outputYAML, v, nil))
	assert.Equal(t, "name: Bergen\nopen: true\n", buf.String())

	buf.Reset()
	require.NoError(t, render(&buf, outputText, v, func(w io.Writer) error {
		_, err := io.WriteString(w, "Bergen\n")
		return err
	}))
	assert.Equal(t, "Bergen\n", buf.String())

	assert.Error(t, render(&buf, "xml", v, nil))
}

func TestDescribePagination(t *testing.T) {
	assert.Empty(t, describePagination(nil))
	assert.Equal(t, "page 1 of 3, 25 total (more available)",
		describePagination(&strapi.PageMeta{Page: 1, PageCount: 3, Total: 25}))
	assert.True(t, strings.HasPrefix(describePagination(&strapi.PageMeta{Page: 3, PageCount: 3}), "page 3 of 3"))
}
