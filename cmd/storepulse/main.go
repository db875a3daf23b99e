package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/storepulse/storepulse-cli/apiclient"
	"github.com/storepulse/storepulse-cli/credentials"
	"github.com/storepulse/storepulse-cli/credentials/filestore"
	"github.com/storepulse/storepulse-cli/credentials/redisstore"
	"github.com/storepulse/storepulse-cli/internal/config"
	"github.com/storepulse/storepulse-cli/notify"
	"github.com/storepulse/storepulse-cli/session"
)

const appName = "StorePulse"

// app holds the wired client stack shared by every command.
type app struct {
	cfg        *config.Config
	store      credentials.Store
	api        *apiclient.Client
	controller *session.Controller
}

var client *app

var rootCmd = &cobra.Command{
	Use:               "storepulse",
	Short:             "Headless client for the StorePulse Shopify analytics API",
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("storepulse exited with error")
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	return rootCmd.Execute()
}

// setup loads configuration and wires the store, API client, and session
// controller, then restores any persisted session.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "[setup] config.Load")
	}

	configureLogging(cfg.LogLevel)

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}

	api, err := apiclient.New(cfg.APIBaseURL, store, notify.LogNotifier{},
		apiclient.WithTimeout(cfg.RequestTimeout),
		apiclient.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		apiclient.WithMetrics(apiclient.NewMetrics()),
	)
	if err != nil {
		return errors.Wrap(err, "[setup] apiclient.New")
	}

	controller, err := session.New(session.Deps{
		API:      api,
		Store:    store,
		Notifier: notify.LogNotifier{},
	})
	if err != nil {
		return errors.Wrap(err, "[setup] session.New")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()
	controller.Initialize(ctx)

	client = &app{cfg: cfg, store: store, api: api, controller: controller}
	return nil
}

func buildStore(cfg *config.Config) (credentials.Store, error) {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		store, err := redisstore.New(rdb, cfg.Profile)
		return store, errors.Wrap(err, "[buildStore] redisstore.New")
	}

	dir := cfg.DataDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "[buildStore] UserConfigDir")
		}
		dir = filepath.Join(base, "storepulse", cfg.Profile)
	}
	store, err := filestore.New(dir)
	return store, errors.Wrap(err, "[buildStore] filestore.New")
}

func configureLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).Level(parsed)
}

func displayAppName() {
	myFigure := figure.NewFigure(appName, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

// requireAuth guards commands that need an authenticated session.
func requireAuth() error {
	if !client.controller.State().IsAuthenticated {
		return errors.New("not logged in: run 'storepulse login' first")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(
		loginCmd,
		registerCmd,
		logoutCmd,
		whoamiCmd,
		profileCmd,
		credentialsCmd,
		statsCmd,
		syncCmd,
		ingestStatusCmd,
		insightsCmd,
		watchCmd,
	)
}
