// Package game parses game service flags and starts the MCP runtime over
// the engines and the outcome ledger.
package game

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emberhatch/menagerie/internal/arena"
	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/fusion"
	"github.com/emberhatch/menagerie/internal/hatchery"
	"github.com/emberhatch/menagerie/internal/ledger/sqlite"
	"github.com/emberhatch/menagerie/internal/mcp/service"
	entrypoint "github.com/emberhatch/menagerie/internal/platform/cmd"
	"github.com/emberhatch/menagerie/internal/random"
)

// Config holds game service configuration.
type Config struct {
	CatalogPath      string `env:"MENAGERIE_CATALOG_PATH"`
	LedgerPath       string `env:"MENAGERIE_LEDGER_PATH"        envDefault:"data/menagerie.db"`
	Transport        string `env:"MENAGERIE_TRANSPORT"          envDefault:"stdio"`
	HTTPAddr         string `env:"MENAGERIE_HTTP_ADDR"          envDefault:"localhost:8081"`
	Locale           string `env:"MENAGERIE_LOCALE"             envDefault:"en-US"`
	AllowReplaySeeds bool   `env:"MENAGERIE_ALLOW_REPLAY_SEEDS" envDefault:"true"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Catalog override file (empty uses embedded defaults)")
	fs.StringVar(&cfg.LedgerPath, "ledger", cfg.LedgerPath, "Outcome ledger SQLite database path")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for user-facing error messages")
	fs.BoolVar(&cfg.AllowReplaySeeds, "allow-replay-seeds", cfg.AllowReplaySeeds, "Accept caller-provided seeds on replay rolls")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SeedPolicy returns the client-seed policy the configuration selects.
func (c Config) SeedPolicy() random.SeedPolicy {
	if c.AllowReplaySeeds {
		return random.AllowReplaySeeds
	}
	return random.RejectClientSeeds
}

// Run starts the game service and blocks until the context ends. The
// catalog is validated before any transport comes up, so a misconfigured
// economy never serves a single roll.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(ctx context.Context) error {
		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		store, err := openLedger(cfg.LedgerPath)
		if err != nil {
			return err
		}

		policy := cfg.SeedPolicy()
		return service.Run(ctx, service.Config{
			Transport: service.TransportKind(cfg.Transport),
			HTTPAddr:  cfg.HTTPAddr,
			Locale:    cfg.Locale,
		}, service.Dependencies{
			Catalog:  cat,
			Hatchery: hatchery.NewGeneratorWithPolicy(cat, policy),
			Arena:    arena.NewResolverWithPolicy(cat, policy),
			Fusion:   fusion.NewResolverWithPolicy(cat, policy),
			Ledger:   store,
		})
	})
}

func openLedger(path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open outcome ledger: %w", err)
	}
	return store, nil
}
