package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/movq/moviefetch/config"
	"github.com/movq/moviefetch/moviesdb"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *moviesdb.Client

	// Command flags
	infoLevel string
	genre     string
	limit     int
	page      int
	sortOrder string
	year      int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "moviefetch",
	Short: "Query the MoviesDatabase API from the command line",
	Long: `moviefetch is a CLI for the MoviesDatabase REST API on RapidAPI.
It lists and searches titles, looks up ratings, episodes and actors,
and handles pagination, retries and rate limits for you.`,
	PersistentPreRunE: initializeApp,
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
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	opts := []moviesdb.Option{
		moviesdb.WithTimeout(cfg.Client.Timeout),
		moviesdb.WithBackoff(cfg.Client.Backoff()),
		moviesdb.WithObserver(outcomeLogger()),
	}
	if cfg.Client.RatePerSec > 0 {
		opts = append(opts, moviesdb.WithRateLimiter(
			moviesdb.NewTokenBucket(cfg.Client.RatePerSec, cfg.Client.RateBurst)))
	}

	client, err = moviesdb.New(
		moviesdb.StaticCredentials{Key: cfg.API.Key, Host: cfg.API.Host},
		logger,
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	return nil
}

// outcomeLogger logs every completed call's attempt count and timing.
func outcomeLogger() moviesdb.Observer {
	return moviesdb.ObserverFunc(func(o moviesdb.Outcome) {
		logger.Debug().
			Str("endpoint", string(o.Endpoint)).
			Int("attempts", o.Attempts).
			Int("status", o.FinalStatus).
			Dur("elapsed", o.Elapsed).
			Msg("Call completed")
	})
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

	// Console format; color only on a real terminal
	color := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// listQuery assembles the shared listing flags into a core query.
func listQuery() moviesdb.Query {
	q := moviesdb.Query{}
	if infoLevel != "" {
		q["info"] = infoLevel
	}
	if genre != "" {
		q["genre"] = genre
	}
	if limit > 0 {
		q["limit"] = fmt.Sprintf("%d", limit)
	}
	if page > 0 {
		q["page"] = fmt.Sprintf("%d", page)
	}
	if sortOrder != "" {
		q["sort"] = sortOrder
	}
	if year > 0 {
		q["year"] = fmt.Sprintf("%d", year)
	}
	return q
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&infoLevel, "info", "", "info level (mini_info, base_info, ...)")
	cmd.Flags().StringVarP(&genre, "genre", "g", "", "genre (capitalized, e.g. Drama)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "results per page (1-50)")
	cmd.Flags().IntVarP(&page, "page", "p", 0, "page to start from")
	cmd.Flags().StringVar(&sortOrder, "sort", "", "sort order (year.incr or year.decr)")
	cmd.Flags().IntVar(&year, "year", 0, "release year")
}

func printTitle(title moviesdb.Title) {
	name := "(untitled)"
	if title.TitleText != nil {
		name = title.TitleText.Text
	}
	fmt.Printf("• %s [%s]", name, title.ID)
	if title.ReleaseYear != nil && title.ReleaseYear.Year != nil {
		fmt.Printf(" (%d)", *title.ReleaseYear.Year)
	}
	if title.TitleType != nil {
		fmt.Printf(" - %s", title.TitleType.Text)
	}
	fmt.Println()
}
