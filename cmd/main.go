package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"timeTrackerService/internal/auth"
	"timeTrackerService/internal/config"
	"timeTrackerService/internal/observability"
	"timeTrackerService/internal/tracker"
)

const shutdownTimeout = 10 * time.Second

type Config struct {
	Settings config.Config
	Tracker  *tracker.Tracker
	Tokens   *auth.TokenManager
}

var rootCmd = &cobra.Command{
	Use:   "timetracker",
	Short: "Time tracking service with duration and statistics endpoints",
	Long: `Time tracker records activities with start and end times, computes
durations (including spans that cross midnight) and aggregates them into
overall and weekly statistics.

Configuration is read from the environment:
  WEB_PORT, STORAGE (memory|file|redis|postgres), DATA_FILE, REDIS_ADDR,
  DSN, PG_TABLE, TIMEZONE, WEEK_START, ALLOW_ZERO_DURATION, LOCALE,
  LOCALE_FILE, JWT_SECRET, TOKEN_TTL`,
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP service",
	RunE:  runServe,
}

var tokenCmd = &cobra.Command{
	Use:   "token [subject]",
	Short: "Issue an owner token for record mutations",
	Long: `Issue a signed owner token using JWT_SECRET and TOKEN_TTL.

Send it as "Authorization: Bearer <token>" on POST, PATCH and DELETE
requests to /records.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	app, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Tracker.Close(); err != nil {
			log.Printf("Failed to close storage: %v", err)
		}
	}()

	if !app.Tokens.Enabled() {
		log.Printf("Warning: JWT_SECRET is not set, record mutations are not protected")
	}
	log.Printf("Starting time tracker service on port %s\n", cfg.WebPort)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.WebPort),
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// newApp wires storage, the tracker and metrics callbacks. A failed resume
// leaves the tracker empty and running.
func newApp(cfg config.Config) (*Config, error) {
	trackerCfg, err := cfg.TrackerConfig()
	if err != nil {
		return nil, err
	}

	persistence, err := openPersistence(cfg)
	if err != nil {
		return nil, err
	}

	t := tracker.NewTracker(trackerCfg, persistence)
	if err := t.Resume(context.Background()); err != nil {
		log.Printf("Warning: failed to resume time records, starting empty: %v", err)
	}
	observability.SetStoredRecords(len(t.Records()))

	t.SetCallbacks(
		func(op string, rec tracker.TimeRecord) {
			observability.RecordMutation(op)
			observability.SetStoredRecords(len(t.Records()))
		},
		func(err error) {
			observability.RecordPersistFailure()
		},
	)

	return &Config{
		Settings: cfg,
		Tracker:  t,
		Tokens:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
	}, nil
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	subject := "owner"
	if len(args) == 1 {
		subject = args[0]
	}

	token, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL).Issue(subject)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
