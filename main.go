package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"ecosoap/internal/auth"
	"ecosoap/internal/config"
	"ecosoap/internal/logging"
	"ecosoap/internal/output"
	"ecosoap/internal/store"
	"ecosoap/ui/console"
	"ecosoap/ui/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	fixturePath := flag.String("fixture", "", "seed data loaded into the in-memory store (overrides config)")
	printUser := flag.String("print", "", "print the pickup history of every property of `username` and exit")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(2)
	}
	if *fixturePath != "" {
		cfg = cfg.WithFixturePath(*fixturePath)
	}
	if *logLevel != "" {
		cfg = cfg.WithLogLevel(*logLevel)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log, err := logging.Setup(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logging.Close()

	repo, err := openStore(context.Background(), cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer repo.Close()

	if *printUser != "" {
		if err := printHistory(context.Background(), os.Stdout, repo, *printUser); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	provider := auth.NewLocalProvider(repo, log)
	if err := tui.Start(cfg, repo, provider, log); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// openStore creates the in-memory catalog and seeds it from the fixture file.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (*store.Repo, error) {
	client, err := store.NewClient(
		store.WithThreads(cfg.DBThreads),
		store.WithTimeout(cfg.DBTimeout.Duration),
	)
	if err != nil {
		return nil, err
	}

	repo := store.NewRepo(client, log)
	if err := repo.Migrate(ctx); err != nil {
		repo.Close()
		return nil, err
	}

	fixture, err := store.LoadFixtureFile(cfg.FixturePath)
	if err != nil {
		repo.Close()
		return nil, err
	}
	if err := repo.LoadFixture(ctx, fixture); err != nil {
		repo.Close()
		return nil, err
	}

	log.Info("store ready", "fixture", cfg.FixturePath)
	return repo, nil
}

func printHistory(ctx context.Context, w io.Writer, repo *store.Repo, username string) error {
	user, err := repo.UserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("user %q: %w", username, err)
	}

	properties, err := repo.PropertiesForUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(properties) == 0 {
		fmt.Fprintf(w, "%s has no properties.\n", user.DisplayName())
		return nil
	}

	for _, p := range properties {
		pickups, err := repo.PickupsForProperty(ctx, p.ID)
		if err != nil {
			return err
		}
		summary, err := repo.PickupSummary(ctx, p.ID)
		if err != nil {
			return err
		}
		console.Print(w, output.BuildHistory(p, pickups, summary))
	}
	return nil
}
