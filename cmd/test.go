package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/lenscms/strapi"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test the connection to the content backends",
	Long:    `Test the connection to the configured Strapi and Sanity instances and display basic information.`,
	PreRunE: initializeApp,
	RunE:    runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Testing connection to Strapi at %s...\n", strapiClient.BaseURL())
	if err := strapiClient.Ping(ctx); err != nil {
		return fmt.Errorf("strapi health check failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	// Count entries per collection with the smallest possible page
	fmt.Fprintf(out, "\nStrapi Statistics:\n")
	for _, endpoint := range []string{"/articles", "/locations", "/brands"} {
		resp, err := strapi.Fetch[[]strapi.Entity[map[string]any]](ctx, strapiClient, endpoint, strapi.FetchOptions{
			Fields:     []string{"id"},
			Pagination: strapi.Page(1, 1),
			Cache:      strapi.CacheNoStore,
		})
		switch {
		case err == nil && resp.Meta.Pagination != nil:
			fmt.Fprintf(out, "- %s: %d entries\n", endpoint, resp.Meta.Pagination.Total)
		case err == nil:
			fmt.Fprintf(out, "- %s: reachable\n", endpoint)
		case strapi.IsNotFound(err):
			fmt.Fprintf(out, "- %s: not found (collection missing or not public)\n", endpoint)
		default:
			fmt.Fprintf(out, "- %s: %v\n", endpoint, err)
		}
	}

	if sanityClient == nil {
		fmt.Fprintln(out, "\nSanity integration: Disabled")
		return nil
	}

	sc := sanityClient.Config()
	fmt.Fprintf(out, "\nTesting connection to Sanity project %s (dataset %s)...\n", sc.ProjectID, sc.Dataset)
	var count int
	if err := sanityClient.Query(ctx, `count(*[_type in ["article", "location", "brand"]])`, nil, &count); err != nil {
		return fmt.Errorf("sanity query failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Sanity connection successful!")
	fmt.Fprintf(out, "- Content documents: %d\n", count)
	fmt.Fprintf(out, "- Content backend: %s\n", service.Source().Name())

	return nil
}
