package main

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swapCore/internal/config"
	"swapCore/internal/ident"
	"swapCore/internal/model"
	"swapCore/internal/pool"
	"swapCore/internal/storage"
	"swapCore/internal/storage/postgres"
	"swapCore/internal/vault"
)

// runtime wires one command invocation: config, logger, loaded state, the
// engine, and the persistence targets.
type runtime struct {
	cfg       config.Config
	logger    *zap.Logger
	ledger    *vault.MemoryLedger
	store     *pool.MemoryStore
	engine    *pool.Engine
	stateFile *storage.StateFile
	pg        *postgres.Store
	journal   storage.Journal
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("state-file", "./data/state.json", "state snapshot path")
	cmd.Flags().String("journal", "./data/transitions.jsonl", "transition journal path")
	cmd.Flags().String("pg-dsn", "", "optional Postgres DSN")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func openRuntime(ctx context.Context, cmd *cobra.Command) (*runtime, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		cfg:    cfg,
		logger: logger,
		ledger: vault.NewMemoryLedger(),
		store:  pool.NewMemoryStore(),
	}

	var st storage.State
	var found bool
	if cfg.PgDSN != "" {
		rt.pg, err = postgres.NewStore(ctx, cfg.PgDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		st, found, err = rt.pg.LoadState(ctx)
		if err != nil {
			return nil, fmt.Errorf("load state: %w", err)
		}
	} else {
		rt.stateFile = &storage.StateFile{Path: cfg.StateFile}
		st, found, err = rt.stateFile.Load()
		if err != nil {
			return nil, fmt.Errorf("load state: %w", err)
		}
	}
	if found {
		rt.ledger.Restore(st.Balances, st.Supplies)
		for _, p := range st.Pools {
			if err := rt.store.PutPool(p); err != nil {
				return nil, fmt.Errorf("restore pool: %w", err)
			}
		}
	}

	if cfg.Journal != "" {
		rt.journal = storage.NewJsonlJournal(cfg.Journal)
	}
	rt.engine = pool.NewEngine(rt.store, rt.ledger, logger)
	return rt, nil
}

func (rt *runtime) close() {
	if rt.pg != nil {
		rt.pg.Close()
	}
	rt.logger.Sync()
}

// persist writes the full state back to the configured target.
func (rt *runtime) persist(ctx context.Context) error {
	pools, err := rt.store.ListPools()
	if err != nil {
		return fmt.Errorf("list pools: %w", err)
	}
	balances, supplies := rt.ledger.Export()
	st := storage.State{Pools: pools, Balances: balances, Supplies: supplies}

	if rt.pg != nil {
		return rt.pg.SaveState(ctx, st)
	}
	return rt.stateFile.Save(st)
}

// record persists state and appends the receipt to the journal targets.
func (rt *runtime) record(ctx context.Context, rec model.TransitionRecord) error {
	if err := rt.persist(ctx); err != nil {
		return err
	}
	if rt.journal != nil {
		if err := rt.journal.Append(rec); err != nil {
			return fmt.Errorf("append journal: %w", err)
		}
	}
	if rt.pg != nil {
		if err := rt.pg.InsertTransitions(ctx, []model.TransitionRecord{rec}); err != nil {
			return fmt.Errorf("insert transition: %w", err)
		}
	}
	return nil
}

// resolvePoolID takes an explicit --pool id, or re-derives it from
// --seed/--asset-a/--asset-b the same way creation did.
func resolvePoolID(cmd *cobra.Command) (common.Hash, error) {
	poolHex, _ := cmd.Flags().GetString("pool")
	if poolHex != "" {
		return common.HexToHash(poolHex), nil
	}
	seed, _ := cmd.Flags().GetUint64("seed")
	assetA, err := parseAsset(cmd, "asset-a")
	if err != nil {
		return common.Hash{}, err
	}
	assetB, err := parseAsset(cmd, "asset-b")
	if err != nil {
		return common.Hash{}, err
	}
	return ident.PoolID(seed, assetA, assetB), nil
}

func parseAsset(cmd *cobra.Command, flag string) (common.Hash, error) {
	value, _ := cmd.Flags().GetString(flag)
	if value == "" {
		return common.Hash{}, fmt.Errorf("--%s is required", flag)
	}
	return common.HexToHash(value), nil
}

func parseActor(cmd *cobra.Command) (common.Address, error) {
	value, _ := cmd.Flags().GetString("actor")
	if value == "" {
		return common.Address{}, fmt.Errorf("--actor is required")
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid actor address %q", value)
	}
	return common.HexToAddress(value), nil
}
