package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/lenscms/sanity"
)

var (
	groqParams  []string
	imageWidth  int
	imageHeight int
	imageFit    string
	imageFormat string
	imageAuto   string
	imageQual   int
)

// sanityCmd groups the Sanity commands
var sanityCmd = &cobra.Command{
	Use:   "sanity",
	Short: "Query the Sanity dataset",
}

var sanityQueryCmd = &cobra.Command{
	Use:     "query <groq>",
	Short:   "Run a GROQ query and print the result",
	Example: `  lenscms sanity query '*[_type == "article" && slug.current == $slug][0]' --param slug='"blue-light"'`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runSanityQuery,
}

var sanityImageCmd = &cobra.Command{
	Use:     "image <asset-ref>",
	Short:   "Build an image CDN URL for an asset reference",
	Example: `  lenscms sanity image image-Tb9Ew8CXIwaY6R1kjMvI0uRR-2000x3000-jpg --width 800 --auto format`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runSanityImage,
}

func requireSanity() error {
	if sanityClient == nil {
		return fmt.Errorf("sanity is not configured: set sanity.project_id or SANITY_PROJECT_ID")
	}
	return nil
}

// parseParams turns name=<json> pairs into query parameters. Values that are
// not valid JSON are sent as strings.
func parseParams(raw []string) (map[string]any, error) {
	params := make(map[string]any, len(raw))
	for _, p := range raw {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q: want name=value", p)
		}
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			v = value
		}
		params[strings.TrimPrefix(name, "$")] = v
	}
	return params, nil
}

func runSanityQuery(cmd *cobra.Command, args []string) error {
	if err := requireSanity(); err != nil {
		return err
	}
	params, err := parseParams(groqParams)
	if err != nil {
		return err
	}

	result, err := sanity.QueryInto[any](cmd.Context(), sanityClient, args[0], params)
	if err != nil {
		return err
	}

	format := outputFormat
	if format == outputText {
		format = outputJSON
	}
	return render(cmd.OutOrStdout(), format, result, nil)
}

func runSanityImage(cmd *cobra.Command, args []string) error {
	if err := requireSanity(); err != nil {
		return err
	}

	b := sanityClient.Image(args[0])
	if imageWidth > 0 {
		b = b.Width(imageWidth)
	}
	if imageHeight > 0 {
		b = b.Height(imageHeight)
	}
	if imageFit != "" {
		b = b.Fit(imageFit)
	}
	if imageFormat != "" {
		b = b.Format(imageFormat)
	}
	if imageAuto != "" {
		b = b.Auto(imageAuto)
	}
	if cmd.Flags().Changed("quality") {
		b = b.Quality(imageQual)
	}

	u, err := b.URL()
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, map[string]string{"url": u}, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, u)
		return err
	})
}

func init() {
	sanityQueryCmd.Flags().StringArrayVar(&groqParams, "param", nil, "query parameter as name=<json> (repeatable)")

	sanityImageCmd.Flags().IntVar(&imageWidth, "width", 0, "width in pixels")
	sanityImageCmd.Flags().IntVar(&imageHeight, "height", 0, "height in pixels")
	sanityImageCmd.Flags().StringVar(&imageFit, "fit", "", "clip, crop, fill, fillmax, max, scale or min")
	sanityImageCmd.Flags().StringVar(&imageFormat, "format", "", "jpg, pjpg, png or webp")
	sanityImageCmd.Flags().StringVar(&imageAuto, "auto", "", "let the CDN choose, e.g. format")
	sanityImageCmd.Flags().IntVar(&imageQual, "quality", 75, "compression quality 0-100")

	sanityCmd.AddCommand(sanityQueryCmd, sanityImageCmd)
	rootCmd.AddCommand(sanityCmd)
}
