package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/lenscms/cache"
	"github.com/s0up4200/lenscms/config"
	"github.com/s0up4200/lenscms/content"
	"github.com/s0up4200/lenscms/sanity"
	"github.com/s0up4200/lenscms/strapi"
)

var (
	cfgFile      string
	outputFormat string
	cfg          *config.Config
	logger       zerolog.Logger
	strapiClient *strapi.Client
	sanityClient *sanity.Client
	service      *content.Service
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lenscms",
	Short: "Query the content API behind the optical store website",
	Long: `lenscms reads articles, stores and brands from the site's headless CMS
(Strapi or Sanity), builds and inspects Strapi REST queries, and submits the
contact and booking forms.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", outputText, "output format: text, json or yaml")
}

// initializeApp loads the configuration and creates the clients
func initializeApp(cmd *cobra.Command, args []string) error {
	if !validOutput(outputFormat) {
		return fmt.Errorf("invalid output format: %s (must be 'text', 'json' or 'yaml')", outputFormat)
	}

	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	store, err := newCacheStore(cfg.Cache)
	if err != nil {
		return err
	}

	strapiOpts := []strapi.Option{strapi.WithTimeout(cfg.Strapi.Timeout)}
	if store != nil {
		strapiOpts = append(strapiOpts, strapi.WithCache(store))
	}
	if cfg.Strapi.UserAgent != "" {
		strapiOpts = append(strapiOpts, strapi.WithUserAgent(cfg.Strapi.UserAgent))
	}
	strapiClient, err = strapi.NewClient(cfg.Strapi.URL, cfg.Strapi.Token, logger, strapiOpts...)
	if err != nil {
		return fmt.Errorf("failed to create Strapi client: %w", err)
	}

	// Create Sanity client if a project is configured
	if cfg.Sanity.ProjectID != "" {
		sanityClient, err = sanity.NewClient(sanity.Config{
			ProjectID:  cfg.Sanity.ProjectID,
			Dataset:    cfg.Sanity.Dataset,
			APIVersion: cfg.Sanity.APIVersion,
			UseCDN:     cfg.Sanity.UseCDN,
			Token:      cfg.Sanity.Token,
		}, logger, sanity.WithTimeout(cfg.Sanity.Timeout))
		if err != nil {
			return fmt.Errorf("failed to create Sanity client: %w", err)
		}
	}

	var source content.Source
	switch cfg.Content.Backend {
	case config.BackendSanity:
		source = content.NewSanitySource(sanityClient, logger)
	default:
		var opts []content.StrapiOption
		if cfg.Content.Revalidate > 0 && store != nil {
			opts = append(opts, content.WithRevalidate(cfg.Content.Revalidate))
		}
		if cfg.Strapi.Locale != "" {
			opts = append(opts, content.WithLocale(cfg.Strapi.Locale))
		}
		source = content.NewStrapiSource(strapiClient, opts...)
	}

	service = content.NewService(source, logger,
		content.WithFallback(cfg.Content.Fallback),
		content.WithHomeArticles(cfg.Content.HomeArticles),
	)

	logger.Debug().
		Str("backend", source.Name()).
		Str("cache", cfg.Cache.Backend).
		Bool("fallback", cfg.Content.Fallback).
		Msg("Content service ready")

	return nil
}

// newCacheStore builds the response cache selected in cfg. A nil store
// disables caching.
func newCacheStore(cfg config.CacheConfig) (cache.Store, error) {
	switch cfg.Backend {
	case config.CacheMemory:
		return cache.NewMemory(cfg.Size), nil
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return cache.NewRedis(client, cfg.Redis.Prefix), nil
	case config.CacheNone, "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only when stderr is a terminal
	tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
