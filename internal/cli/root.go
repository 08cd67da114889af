// Package cli provides the mauser-monitor command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Wyzincsmarthome/mauser-monitor/internal/auth"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/config"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/fetch"
)

var (
	configPath  string
	statePath   string
	verbose     bool
	jsonLog     bool
	httpTimeout time.Duration
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mauser-monitor",
	Short: "Price and stock watcher for the Mauser storefront",
	Long: `mauser-monitor logs in to the supplier storefront, extracts price and
stock for each configured product page, compares them against the last
persisted snapshots and posts one aggregate Discord message per run.

It is designed to be invoked periodically by an external scheduler; a
single invocation performs exactly one full pass.`,
	Version: "1.0.0",
}

// Execute runs the CLI. This is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging, loadDotEnv)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Path to the YAML configuration")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", config.DefaultStatePath, "Path to the JSON state file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json", false, "Log in JSON instead of console format")
	rootCmd.PersistentFlags().DurationVar(&httpTimeout, "timeout", 60*time.Second, "HTTP timeout per request")
}

func initLogging() {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if jsonLog {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func loadDotEnv() {
	// Optional .env in the working directory; real deployments supply
	// secrets through the scheduler's environment.
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}
}

// newPipeline wires the plumbing shared by every command that talks to
// the storefront: the parsed configuration and a session-carrying fetcher.
func newPipeline() (*config.Config, *fetch.Fetcher, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	fetcher, err := fetch.New(httpTimeout, 1.0)
	if err != nil {
		return nil, nil, err
	}
	return cfg, fetcher, nil
}

func loginOptions(cfg *config.Config) auth.Options {
	return auth.Options{
		LoginPage:      cfg.Login.LoginPage,
		PostURL:        cfg.Login.PostURL,
		UserField:      cfg.Login.UserField,
		PassField:      cfg.Login.PassField,
		SuccessMarkers: cfg.Login.SuccessMarkers,
	}
}

// ensureLogin loads credentials (their absence is fatal, checked before
// any network call), performs the login and applies the confirmation
// policy from the configuration.
func ensureLogin(ctx context.Context, cfg *config.Config, fetcher *fetch.Fetcher) error {
	creds, err := auth.LoadCredentials()
	if err != nil {
		return err
	}
	verdict, err := auth.Login(ctx, fetcher.Client(), loginOptions(cfg), creds)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	switch verdict {
	case auth.Confirmed:
		log.Info().Msg("Login confirmed")
	case auth.Unconfirmed:
		if cfg.Login.RequireConfirmation {
			return fmt.Errorf("login not confirmed and login.require_confirmation is set")
		}
		log.Warn().Msg("Login not confirmed; continuing, pages may be readable without a session")
	}
	return nil
}
