// Package seed parses seed tool flags and fills a development ledger with
// a reproducible batch of hatches, battles, and fusions.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/emberhatch/menagerie/internal/arena"
	"github.com/emberhatch/menagerie/internal/catalog"
	"github.com/emberhatch/menagerie/internal/creature"
	"github.com/emberhatch/menagerie/internal/fusion"
	"github.com/emberhatch/menagerie/internal/hatchery"
	"github.com/emberhatch/menagerie/internal/ledger/sqlite"
	"github.com/emberhatch/menagerie/internal/mcp/domain"
	entrypoint "github.com/emberhatch/menagerie/internal/platform/cmd"
)

// Config holds seed tool configuration.
type Config struct {
	CatalogPath string `env:"MENAGERIE_CATALOG_PATH"`
	LedgerPath  string `env:"MENAGERIE_LEDGER_PATH" envDefault:"data/menagerie.db"`
	Locale      string `env:"MENAGERIE_LOCALE"      envDefault:"en-US"`

	BaseSeed int64
	Hatches  int
	Battles  int
	Fusions  int
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Catalog override file (empty uses embedded defaults)")
	fs.StringVar(&cfg.LedgerPath, "ledger", cfg.LedgerPath, "Outcome ledger SQLite database path")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Locale for user-facing error messages")
	fs.Int64Var(&cfg.BaseSeed, "seed", 1, "Base seed deriving every roll; reruns reproduce the same ledger")
	fs.IntVar(&cfg.Hatches, "hatches", 12, "Number of eggs to hatch, cycling through the configured egg types")
	fs.IntVar(&cfg.Battles, "battles", 6, "Number of battles to fight between the hatched creatures")
	fs.IntVar(&cfg.Fusions, "fusions", 6, "Number of fusion attempts to execute")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run seeds the ledger through the same tool handlers the game service
// registers, so every recorded outcome is shaped exactly like production
// traffic and replays cleanly under the audit tool.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.Hatches < 0 || cfg.Battles < 0 || cfg.Fusions < 0 {
		return fmt.Errorf("hatch, battle, and fusion counts must be non-negative")
	}
	if cfg.Battles > 0 && cfg.Hatches == 0 {
		return fmt.Errorf("battles are fought between hatched creatures; -hatches must be above zero")
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		cat, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		store, err := openLedger(cfg.LedgerPath)
		if err != nil {
			return err
		}
		defer store.Close()

		hatch := domain.EggHatchHandler(hatchery.NewGenerator(cat), cat, store, cfg.Locale)
		battle := domain.BattleResolveHandler(arena.NewResolver(cat), store, cfg.Locale)
		fusions := fusion.NewResolver(cat)
		fuse := domain.FusionExecuteHandler(fusions, store, cfg.Locale)

		seeds := rand.New(rand.NewSource(cfg.BaseSeed))
		eggTypes := cat.EggTypes()

		pool := make([]domain.CreatureInput, 0, cfg.Hatches)
		for i := 0; i < cfg.Hatches; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			eggType := eggTypes[i%len(eggTypes)]
			_, result, err := hatch(ctx, nil, domain.EggHatchInput{
				EggType: eggType,
				Rng:     replayRng(seeds.Int63()),
			})
			if err != nil {
				return fmt.Errorf("hatch %s egg: %w", eggType, err)
			}
			pool = append(pool, creatureInputFromPayload(result.Creature))
			fmt.Fprintf(out, "hatched %s %s %q from a %s egg (outcome %s)\n",
				result.Creature.Tier, result.Creature.Affinity, result.Creature.Name, result.EggType, result.OutcomeID)
		}

		for i := 0; i < cfg.Battles; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, result, err := battle(ctx, nil, domain.BattleResolveInput{
				Attackers: []domain.CreatureInput{pool[i%len(pool)]},
				Defenders: []domain.CreatureInput{pool[(i+1)%len(pool)]},
				Rng:       replayRng(seeds.Int63()),
			})
			if err != nil {
				return fmt.Errorf("resolve battle %d: %w", i+1, err)
			}
			fmt.Fprintf(out, "battle %d: %s vs %s, %s won (outcome %s)\n",
				i+1, result.AttackerAffinity, result.DefenderAffinity, result.Winner, result.OutcomeID)
		}

		targets := []creature.Tier{creature.TierUncommon, creature.TierRare, creature.TierEpic}
		for i := 0; i < cfg.Fusions; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			target := targets[i%len(targets)]
			requirement, err := fusions.Requirements(target)
			if err != nil {
				return fmt.Errorf("fusion requirements for %s: %w", target, err)
			}
			materials := make([]domain.FusionMaterialInput, requirement.Materials)
			for m := range materials {
				materials[m] = domain.FusionMaterialInput{
					ID:   fmt.Sprintf("seed-%d-m%d", i+1, m+1),
					Tier: (target - 1).String(),
				}
			}
			_, result, err := fuse(ctx, nil, domain.FusionExecuteInput{
				TargetTier: target.String(),
				Materials:  materials,
				Rng:        replayRng(seeds.Int63()),
			})
			if err != nil {
				return fmt.Errorf("execute fusion %d: %w", i+1, err)
			}
			fmt.Fprintf(out, "fusion %d: %s at %d%%, success=%v (outcome %s)\n",
				i+1, result.TargetTier, result.Chance, result.Success, result.OutcomeID)
		}

		fmt.Fprintf(out, "seeded %d hatches, %d battles, %d fusions into %s\n",
			cfg.Hatches, cfg.Battles, cfg.Fusions, cfg.LedgerPath)
		return nil
	})
}

// replayRng pins a derived seed so reruns of the same base seed rebuild an
// identical ledger.
func replayRng(seed int64) *domain.RngRequest {
	return &domain.RngRequest{Seed: &seed, RollMode: "replay"}
}

// creatureInputFromPayload feeds a hatched creature back in as a roster
// member.
func creatureInputFromPayload(payload domain.CreaturePayload) domain.CreatureInput {
	return domain.CreatureInput{
		Name:     payload.Name,
		Tier:     payload.Tier,
		Affinity: payload.Affinity,
		Level:    payload.Level,
		Attack:   payload.Attack,
		Defense:  payload.Defense,
		Speed:    payload.Speed,
		Health:   payload.Health,
	}
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
