package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/lenscms/content"
	"github.com/s0up4200/lenscms/filter"
)

var (
	// Command flags
	whereExpr       string
	preset          string
	articleCategory string
	articleLimit    int
	articleLocale   string
)

// addWhereFlags adds the client-side filter flags to cmd
func addWhereFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&whereExpr, "where", "w", "", `filter expression, e.g. 'hasTag("guides") and daysSince(PublishedAt) < 90'`)
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

// compileWhere compiles --where or --preset. A nil filter matches everything.
func compileWhere() (filter.Filter, error) {
	expr, err := getFilterExpression()
	if err != nil || expr == "" {
		return nil, err
	}

	f, err := filter.NewCompiler(filter.WithLogger(logger)).Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	logger.Debug().Str("filter", expr).Msg("Applying filter")
	return f, nil
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset
	if whereExpr != "" {
		return whereExpr, nil
	}

	if preset != "" {
		if expr, ok := cfg.Filter.Presets[preset]; ok {
			return expr, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return "", nil
}

// articlesCmd lists journal articles
var articlesCmd = &cobra.Command{
	Use:     "articles",
	Short:   "List journal articles, newest first",
	PreRunE: initializeApp,
	RunE:    runArticles,
}

func runArticles(cmd *cobra.Command, args []string) error {
	f, err := compileWhere()
	if err != nil {
		return err
	}

	articles, err := service.Articles(cmd.Context(), content.ArticleQuery{
		Category: articleCategory,
		Limit:    articleLimit,
		Locale:   articleLocale,
	})
	if err != nil {
		return err
	}
	articles = filter.Apply(f, articles)

	return render(cmd.OutOrStdout(), outputFormat, articles, func(w io.Writer) error {
		return printArticles(w, articles)
	})
}

// articleCmd shows a single article
var articleCmd = &cobra.Command{
	Use:     "article <slug>",
	Short:   "Show a single article",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runArticle,
}

func runArticle(cmd *cobra.Command, args []string) error {
	article, err := service.Article(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), outputFormat, article, func(w io.Writer) error {
		fmt.Fprintf(w, "%s\n%s\n", article.Title, strings.Repeat("=", len(article.Title)))
		fmt.Fprintf(w, "Published: %s", article.PublishedAt.Format("2006-01-02"))
		if article.Author != "" {
			fmt.Fprintf(w, " by %s", article.Author)
		}
		fmt.Fprintln(w)
		if len(article.Tags) > 0 {
			fmt.Fprintf(w, "Tags: %s\n", strings.Join(article.Tags, ", "))
		}
		if article.Cover != nil {
			fmt.Fprintf(w, "Cover: %s\n", article.Cover.URL)
		}
		if article.Excerpt != "" {
			fmt.Fprintf(w, "\n%s\n", article.Excerpt)
		}
		if article.Body != "" {
			fmt.Fprintf(w, "\n%s\n", article.Body)
		}
		return nil
	})
}

// locationsCmd lists the stores
var locationsCmd = &cobra.Command{
	Use:     "locations",
	Aliases: []string{"stores"},
	Short:   "List store locations",
	PreRunE: initializeApp,
	RunE:    runLocations,
}

func runLocations(cmd *cobra.Command, args []string) error {
	f, err := compileWhere()
	if err != nil {
		return err
	}

	locations, err := service.Locations(cmd.Context())
	if err != nil {
		return err
	}
	locations = filter.Apply(f, locations)

	return render(cmd.OutOrStdout(), outputFormat, locations, func(w io.Writer) error {
		return printLocations(w, locations)
	})
}

// brandsCmd lists the brands
var brandsCmd = &cobra.Command{
	Use:     "brands",
	Short:   "List eyewear brands",
	PreRunE: initializeApp,
	RunE:    runBrands,
}

func runBrands(cmd *cobra.Command, args []string) error {
	f, err := compileWhere()
	if err != nil {
		return err
	}

	brands, err := service.Brands(cmd.Context())
	if err != nil {
		return err
	}
	brands = filter.Apply(f, brands)

	return render(cmd.OutOrStdout(), outputFormat, brands, func(w io.Writer) error {
		return printBrands(w, brands)
	})
}

// homeCmd loads everything the landing page shows
var homeCmd = &cobra.Command{
	Use:     "home",
	Short:   "Load the home page content",
	PreRunE: initializeApp,
	RunE:    runHome,
}

func runHome(cmd *cobra.Command, args []string) error {
	f, err := compileWhere()
	if err != nil {
		return err
	}

	home, err := service.Home(cmd.Context())
	if err != nil {
		return err
	}
	// Fields a record does not have evaluate to nil.
	home.Articles = filter.Apply(f, home.Articles)
	home.Locations = filter.Apply(f, home.Locations)
	home.Brands = filter.Apply(f, home.Brands)

	return render(cmd.OutOrStdout(), outputFormat, home, func(w io.Writer) error {
		fmt.Fprintln(w, "Latest articles")
		if err := printArticles(w, home.Articles); err != nil {
			return err
		}
		fmt.Fprintln(w, "\nStores")
		if err := printLocations(w, home.Locations); err != nil {
			return err
		}
		fmt.Fprintln(w, "\nBrands")
		return printBrands(w, home.Brands)
	})
}

// navCmd prints the site navigation
var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Print the site navigation",
	RunE: func(cmd *cobra.Command, args []string) error {
		items := content.Navigation()
		return render(cmd.OutOrStdout(), outputFormat, items, func(w io.Writer) error {
			printNav(w, items, 0)
			return nil
		})
	},
}

func init() {
	articlesCmd.Flags().StringVar(&articleCategory, "category", "", "only articles in this category")
	articlesCmd.Flags().IntVar(&articleLimit, "limit", 0, "maximum number of articles")
	articlesCmd.Flags().StringVar(&articleLocale, "locale", "", "locale, e.g. nb-NO")

	for _, c := range []*cobra.Command{articlesCmd, locationsCmd, brandsCmd, homeCmd} {
		addWhereFlags(c)
	}

	rootCmd.AddCommand(articlesCmd, articleCmd, locationsCmd, brandsCmd, homeCmd, navCmd)
}

func printArticles(w io.Writer, articles []content.Article) error {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return nil
	}
	for _, a := range articles {
		fmt.Fprintf(w, "• %s [%s]", a.Title, a.Slug)
		if !a.PublishedAt.IsZero() {
			fmt.Fprintf(w, " (%s)", a.PublishedAt.Format("2006-01-02"))
		}
		fmt.Fprintln(w)
		if a.Excerpt != "" {
			fmt.Fprintf(w, "  %s\n", a.Excerpt)
		}
	}
	return nil
}

func printLocations(w io.Writer, locations []content.Location) error {
	if len(locations) == 0 {
		fmt.Fprintln(w, "No locations found.")
		return nil
	}
	for _, l := range locations {
		fmt.Fprintf(w, "• %s, %s %s %s\n", l.Name, l.Address, l.PostalCode, l.City)
		if l.Phone != "" {
			fmt.Fprintf(w, "  Phone: %s\n", l.Phone)
		}
		for _, h := range l.Hours {
			if h.Closed {
				fmt.Fprintf(w, "  %s: closed\n", h.Days)
				continue
			}
			fmt.Fprintf(w, "  %s: %s-%s\n", h.Days, h.Opens, h.Closes)
		}
		if len(l.Services) > 0 {
			fmt.Fprintf(w, "  Services: %s\n", strings.Join(l.Services, ", "))
		}
	}
	return nil
}

func printBrands(w io.Writer, brands []content.Brand) error {
	if len(brands) == 0 {
		fmt.Fprintln(w, "No brands found.")
		return nil
	}
	for _, b := range brands {
		fmt.Fprintf(w, "• %s", b.Name)
		if b.Category != "" {
			fmt.Fprintf(w, " (%s)", b.Category)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func printNav(w io.Writer, items []content.NavItem, depth int) {
	for _, item := range items {
		fmt.Fprintf(w, "%s%s  %s\n", strings.Repeat("  ", depth), item.Label, item.Href)
		printNav(w, item.Children, depth+1)
	}
}
