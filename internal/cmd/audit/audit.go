// Package audit parses audit tool flags and runs replay and distribution
// checks against the outcome ledger and the configured catalog.
package audit

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	auditor "github.com/emberhatch/menagerie/internal/audit"
	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/ledger/sqlite"
	entrypoint "github.com/emberhatch/menagerie/internal/platform/cmd"
)

// Config holds audit tool configuration. The operation flags are
// per-invocation and never read from the environment.
type Config struct {
	CatalogPath string `env:"MENAGERIE_CATALOG_PATH"`
	LedgerPath  string `env:"MENAGERIE_LEDGER_PATH" envDefault:"data/menagerie.db"`

	ReplayID          string
	CheckDistribution bool
	EggType           string
	Hatches           int
	BaseSeed          int64
	Tolerance         float64
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Catalog override file (empty uses embedded defaults)")
	fs.StringVar(&cfg.LedgerPath, "ledger", cfg.LedgerPath, "Outcome ledger SQLite database path")
	fs.StringVar(&cfg.ReplayID, "replay", "", "Outcome ID to re-execute from its stored seed and verify")
	fs.BoolVar(&cfg.CheckDistribution, "check-distribution", false, "Compare hatch tier frequencies against the configured odds")
	fs.StringVar(&cfg.EggType, "egg", "", "Restrict -check-distribution to one egg type (empty checks all)")
	fs.IntVar(&cfg.Hatches, "hatches", 20000, "Hatches per egg type for -check-distribution")
	fs.Int64Var(&cfg.BaseSeed, "seed", 1, "Base seed deriving the -check-distribution hatch seeds")
	fs.Float64Var(&cfg.Tolerance, "tolerance", 2.0, "Allowed drift in percentage points for -check-distribution")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the selected audit operation and blocks until it finishes.
// Divergence and drift come back as errors so the process exits non-zero.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAudit, func(ctx context.Context) error {
		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		switch {
		case cfg.ReplayID != "" && cfg.CheckDistribution:
			return fmt.Errorf("-replay and -check-distribution are mutually exclusive")
		case cfg.ReplayID != "":
			return replayOutcome(ctx, cfg, cat)
		case cfg.CheckDistribution:
			return checkDistribution(cfg, cat)
		default:
			return fmt.Errorf("nothing to audit: pass -replay <outcome-id> or -check-distribution")
		}
	})
}

// replayOutcome re-executes one recorded outcome and fails on divergence.
// The ledger must already exist; auditing never creates one.
func replayOutcome(ctx context.Context, cfg Config, cat *catalog.Catalog) error {
	if _, err := os.Stat(cfg.LedgerPath); err != nil {
		return fmt.Errorf("outcome ledger %s is not readable: %w", cfg.LedgerPath, err)
	}
	store, err := sqlite.Open(cfg.LedgerPath)
	if err != nil {
		return fmt.Errorf("open outcome ledger: %w", err)
	}
	defer store.Close()

	report, err := auditor.NewVerifier(cat, store).Replay(ctx, cfg.ReplayID)
	if err != nil {
		return err
	}

	log.Printf("replayed %s outcome %s from seed %d", report.Kind, report.OutcomeID, report.Seed)
	if !report.Match() {
		for _, mismatch := range report.Mismatches {
			log.Printf("mismatch: %s", mismatch)
		}
		return fmt.Errorf("outcome %s diverged from its recorded result (%d mismatches)", report.OutcomeID, len(report.Mismatches))
	}
	log.Printf("outcome %s verified: the recorded result was reproduced exactly", report.OutcomeID)
	return nil
}

// checkDistribution measures empirical tier frequencies for each egg type
// and fails when any tier drifts beyond the tolerance.
func checkDistribution(cfg Config, cat *catalog.Catalog) error {
	if cfg.Tolerance < 0 {
		return fmt.Errorf("tolerance %.2f is negative", cfg.Tolerance)
	}

	eggTypes := cat.EggTypes()
	if cfg.EggType != "" {
		eggTypes = []string{cfg.EggType}
	}

	verifier := auditor.NewVerifier(cat, nil)
	drifted := 0
	for _, eggType := range eggTypes {
		report, err := verifier.CheckDistribution(eggType, cfg.Hatches, cfg.BaseSeed)
		if err != nil {
			return fmt.Errorf("check %s distribution: %w", eggType, err)
		}
		for _, share := range report.Shares {
			log.Printf("%s %s: observed %.2f%% of %d hatches, configured %d%% (drift %.2f)",
				report.EggType, share.Tier, share.Observed, report.Hatches, share.Expected, share.Drift())
		}
		if !report.WithinTolerance(cfg.Tolerance) {
			drifted++
			log.Printf("%s drifted %.2f points, tolerance %.2f", report.EggType, report.MaxDrift(), cfg.Tolerance)
		}
	}
	if drifted > 0 {
		return fmt.Errorf("%d of %d egg types drifted beyond %.2f points over %d hatches", drifted, len(eggTypes), cfg.Tolerance, cfg.Hatches)
	}
	return nil
}
