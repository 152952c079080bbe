package pool

import (
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"swapCore/internal/ident"
	"swapCore/internal/model"
	"swapCore/internal/vault"
)

// MaxFeeBps is the exclusive upper bound on a pool's fee.
const MaxFeeBps = 10000

// Engine applies pool state transitions against the store and the custody
// ledger. All transitions for one engine serialize on its mutex, so reads
// and writes of one request never interleave with another's. Every
// precondition and every arithmetic step runs before the first ledger
// mutation; a failure at any point leaves zero state change.
type Engine struct {
	mu     sync.Mutex
	store  Store
	ledger vault.Ledger
	logger *zap.Logger
}

// NewEngine builds an Engine with its dependencies.
func NewEngine(store Store, ledger vault.Ledger, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: store, ledger: ledger, logger: logger}
}

// Create allocates a new pool record. No assets move; reserves and share
// supply start at zero in the ledger by construction.
func (e *Engine) Create(actor common.Address, seed uint64, assetA, assetB common.Hash, feeBps uint32, authority common.Address) (model.Pool, model.TransitionRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if assetA == assetB {
		return model.Pool{}, model.TransitionRecord{}, fmt.Errorf("create pool: identical assets: %w", ErrAssetMismatch)
	}
	if feeBps >= MaxFeeBps {
		return model.Pool{}, model.TransitionRecord{}, fmt.Errorf("create pool: fee %d: %w", feeBps, ErrInvalidFee)
	}

	id := ident.PoolID(seed, assetA, assetB)
	if _, ok, err := e.store.GetPool(id); err != nil {
		return model.Pool{}, model.TransitionRecord{}, fmt.Errorf("create pool: %w", err)
	} else if ok {
		return model.Pool{}, model.TransitionRecord{}, fmt.Errorf("create pool %s: %w", id, ErrPoolExists)
	}

	p := model.Pool{
		ID:         id,
		Seed:       seed,
		AssetA:     assetA,
		AssetB:     assetB,
		ShareAsset: ident.ShareAsset(id),
		FeeBps:     feeBps,
		Authority:  authority,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := e.store.PutPool(p); err != nil {
		return model.Pool{}, model.TransitionRecord{}, fmt.Errorf("create pool: %w", err)
	}

	e.logger.Info("pool created",
		zap.String("pool", id.Hex()),
		zap.Uint64("seed", seed),
		zap.String("asset_a", assetA.Hex()),
		zap.String("asset_b", assetB.Hex()),
		zap.Uint32("fee_bps", feeBps),
		zap.String("actor", actor.Hex()),
	)
	rec := model.TransitionRecord{
		Kind:      model.TransitionCreate,
		PoolID:    id,
		Actor:     actor,
		FeeBps:    feeBps,
		AppliedAt: p.CreatedAt,
	}
	return p, rec, nil
}

// SetLocked flips the pool's lock flag. Only the authority named at
// creation may do this; pools created without one reject the transition.
func (e *Engine) SetLocked(actor common.Address, poolID common.Hash, locked bool) (model.TransitionRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.loadPool(poolID)
	if err != nil {
		return model.TransitionRecord{}, err
	}
	if !p.HasAuthority() || actor != p.Authority {
		return model.TransitionRecord{}, fmt.Errorf("lock pool %s: %w", poolID, ErrUnauthorized)
	}

	p.Locked = locked
	if err := e.store.PutPool(p); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("lock pool: %w", err)
	}

	e.logger.Info("pool lock updated",
		zap.String("pool", poolID.Hex()),
		zap.Bool("locked", locked),
		zap.String("actor", actor.Hex()),
	)
	return model.TransitionRecord{
		Kind:      model.TransitionLock,
		PoolID:    poolID,
		Actor:     actor,
		Locked:    locked,
		AppliedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}

// View is a read-only snapshot of one pool with its live ledger balances.
type View struct {
	Pool        model.Pool `json:"pool"`
	ReserveA    uint64     `json:"reserve_a"`
	ReserveB    uint64     `json:"reserve_b"`
	ShareSupply uint64     `json:"share_supply"`
}

// PoolView resolves a pool and reads its reserves and share supply.
func (e *Engine) PoolView(poolID common.Hash) (View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.loadPool(poolID)
	if err != nil {
		return View{}, err
	}
	rA, rB, supply := e.balances(p)
	return View{Pool: p, ReserveA: rA, ReserveB: rB, ShareSupply: supply}, nil
}

func (e *Engine) loadPool(poolID common.Hash) (model.Pool, error) {
	p, ok, err := e.store.GetPool(poolID)
	if err != nil {
		return model.Pool{}, fmt.Errorf("load pool %s: %w", poolID, err)
	}
	if !ok {
		return model.Pool{}, fmt.Errorf("load pool %s: %w", poolID, ErrPoolNotFound)
	}
	return p, nil
}

// balances reads the two vault reserves and the share supply.
func (e *Engine) balances(p model.Pool) (reserveA, reserveB, shareSupply uint64) {
	reserveA = e.ledger.BalanceOf(p.AssetA, ident.VaultAddress(p.ID, p.AssetA))
	reserveB = e.ledger.BalanceOf(p.AssetB, ident.VaultAddress(p.ID, p.AssetB))
	shareSupply = e.ledger.SupplyOf(p.ShareAsset)
	return reserveA, reserveB, shareSupply
}
