package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/lenscms/strapi"
)

// queryFlags holds the flags shared by fetch and url
type queryFlags struct {
	populate     []string
	populateJSON string
	filters      []string
	sort         []string
	page         int
	pageSize     int
	start        int
	limit        int
	locale       string
	fields       []string
	revalidate   string
	cache        string
}

var qf queryFlags

func addQueryFlags(cmd *cobra.Command, f *queryFlags) {
	cmd.Flags().StringSliceVar(&f.populate, "populate", nil, "relations to populate, e.g. cover,author or *")
	cmd.Flags().StringVar(&f.populateJSON, "populate-json", "", "nested populate as JSON, e.g. '{\"stores\":{\"populate\":[\"hours\"]}}'")
	cmd.Flags().StringArrayVar(&f.filters, "filter", nil, "filter as field=value or field[$op]=value (repeatable)")
	cmd.Flags().StringSliceVar(&f.sort, "sort", nil, "sort fields, e.g. publishedAt:desc")
	cmd.Flags().IntVar(&f.page, "page", 0, "page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "entries per page")
	cmd.Flags().IntVar(&f.start, "start", -1, "offset of the first entry")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "number of entries from --start")
	cmd.Flags().StringVar(&f.locale, "locale", "", "locale, e.g. nb-NO")
	cmd.Flags().StringSliceVar(&f.fields, "fields", nil, "attributes to return")
	cmd.Flags().StringVar(&f.revalidate, "revalidate", "", "serve cached responses for this long (e.g. 60s, or 'never' to cache forever)")
	cmd.Flags().StringVar(&f.cache, "cache", "", "cache mode: default, no-store, reload, no-cache, force-cache, only-if-cached")
}

// options converts the flags into FetchOptions
func (f *queryFlags) options() (strapi.FetchOptions, error) {
	var opts strapi.FetchOptions

	switch {
	case f.populateJSON != "" && len(f.populate) > 0:
		return opts, fmt.Errorf("--populate and --populate-json are mutually exclusive")
	case f.populateJSON != "":
		var tree map[string]any
		if err := json.Unmarshal([]byte(f.populateJSON), &tree); err != nil {
			return opts, fmt.Errorf("invalid --populate-json: %w", err)
		}
		opts.Populate = strapi.PopulateDeep(tree)
	case len(f.populate) > 0:
		opts.Populate = strapi.PopulateFields(f.populate...)
	}

	parsed := make([]strapi.FieldFilter, 0, len(f.filters))
	for _, raw := range f.filters {
		ff, err := strapi.ParseFilter(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid --filter %q: %w", raw, err)
		}
		parsed = append(parsed, ff)
	}
	if len(parsed) > 0 {
		opts.Filters = strapi.MergeFilters(parsed...)
	}

	opts.Sort = f.sort
	opts.Locale = f.locale
	opts.Fields = f.fields

	if f.page != 0 || f.pageSize != 0 || f.start >= 0 || f.limit != 0 {
		p := &strapi.Pagination{}
		if f.page != 0 {
			p.Page = strapi.Int(f.page)
		}
		if f.pageSize != 0 {
			p.PageSize = strapi.Int(f.pageSize)
		}
		if f.start >= 0 {
			p.Start = strapi.Int(f.start)
		}
		if f.limit != 0 {
			p.Limit = strapi.Int(f.limit)
		}
		opts.Pagination = p
	}

	switch f.revalidate {
	case "":
	case "never":
		opts.Revalidate = strapi.RevalidateAfter(strapi.NeverRevalidate)
	default:
		d, err := time.ParseDuration(f.revalidate)
		if err != nil {
			return opts, fmt.Errorf("invalid --revalidate: %w", err)
		}
		opts.Revalidate = strapi.RevalidateAfter(d)
	}

	opts.Cache = strapi.CacheMode(f.cache)
	if !opts.Cache.Valid() {
		return opts, fmt.Errorf("invalid --cache: %s", f.cache)
	}
	return opts, nil
}

// urlCmd prints the request URL for a query without sending it
var urlCmd = &cobra.Command{
	Use:   "url <endpoint>",
	Short: "Print the request URL for a content API query",
	Example: `  lenscms url /articles --populate cover --filter 'category=frames' --sort publishedAt:desc --page 1 --page-size 10
  lenscms url /locations --filter 'city[$eqi]=bergen' --fields name,city`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runURL,
}

func runURL(cmd *cobra.Command, args []string) error {
	opts, err := qf.options()
	if err != nil {
		return err
	}
	u, err := strapiClient.URL(args[0], opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), u)
	return nil
}

// fetchCmd sends a query and prints the raw response envelope
var fetchCmd = &cobra.Command{
	Use:   "fetch <endpoint>",
	Short: "Fetch an endpoint from the content API",
	Long: `Fetch an endpoint from the content API and print its {data, meta} response.

Failed requests report the API's error status, name and message.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	opts, err := qf.options()
	if err != nil {
		return err
	}

	resp, err := strapi.Fetch[any](cmd.Context(), strapiClient, args[0], opts)
	if err != nil {
		if remote, ok := strapi.AsRemoteError(err); ok && remote.IsUnauthorized() {
			return fmt.Errorf("%w (check strapi.token / STRAPI_API_TOKEN)", err)
		}
		return err
	}

	if outputFormat != outputText {
		return render(cmd.OutOrStdout(), outputFormat, resp, nil)
	}
	if err := render(cmd.OutOrStdout(), outputJSON, resp, nil); err != nil {
		return err
	}
	if summary := describePagination(resp.Meta.Pagination); summary != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), summary)
	}
	return nil
}

func init() {
	addQueryFlags(urlCmd, &qf)
	addQueryFlags(fetchCmd, &qf)
	rootCmd.AddCommand(urlCmd, fetchCmd)
}

// describePagination summarizes the pagination meta of a list response
func describePagination(m *strapi.PageMeta) string {
	if m == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "page %d of %d, %d total", m.Page, m.PageCount, m.Total)
	if m.HasMorePages() {
		b.WriteString(" (more available)")
	}
	return b.String()
}
