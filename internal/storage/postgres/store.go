package postgres

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swapCore/internal/model"
	"swapCore/internal/storage"
)

// Store provides Postgres persistence for pool records, ledger balances,
// and transition receipts.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// SaveState writes the full state in one transaction. Balance and supply
// rows are replaced wholesale so rows that dropped to zero disappear;
// pool records are upserted.
func (s *Store) SaveState(ctx context.Context, st storage.State) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, p := range st.Pools {
		batch.Queue(`
			INSERT INTO pools (
				id, seed, asset_a, asset_b, share_asset, fee_bps, locked, authority, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
			ON CONFLICT (id)
			DO UPDATE SET
				locked = EXCLUDED.locked,
				updated_at = now()
		`,
			p.ID.Hex(),
			int64(p.Seed),
			p.AssetA.Hex(),
			p.AssetB.Hex(),
			p.ShareAsset.Hex(),
			int32(p.FeeBps),
			p.Locked,
			p.Authority.Hex(),
			p.CreatedAt,
		)
	}
	batch.Queue(`DELETE FROM balances`)
	for _, b := range st.Balances {
		batch.Queue(`
			INSERT INTO balances (asset, holder, amount, updated_at)
			VALUES ($1, $2, $3, now())
		`, b.Asset.Hex(), b.Holder.Hex(), int64(b.Amount))
	}
	batch.Queue(`DELETE FROM supplies`)
	for _, sp := range st.Supplies {
		batch.Queue(`
			INSERT INTO supplies (asset, amount, updated_at)
			VALUES ($1, $2, now())
		`, sp.Asset.Hex(), int64(sp.Amount))
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("save state: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	return tx.Commit(ctx)
}

// LoadState reads the full state back. Returns false if no pools exist.
func (s *Store) LoadState(ctx context.Context) (storage.State, bool, error) {
	var st storage.State

	rows, err := s.pool.Query(ctx, `
		SELECT id, seed, asset_a, asset_b, share_asset, fee_bps, locked, authority, created_at
		FROM pools
	`)
	if err != nil {
		return storage.State{}, false, fmt.Errorf("load pools: %w", err)
	}
	for rows.Next() {
		var (
			id, assetA, assetB, shareAsset, authority, createdAt string
			seed                                                 int64
			feeBps                                               int32
			locked                                               bool
		)
		if err := rows.Scan(&id, &seed, &assetA, &assetB, &shareAsset, &feeBps, &locked, &authority, &createdAt); err != nil {
			rows.Close()
			return storage.State{}, false, fmt.Errorf("scan pool: %w", err)
		}
		st.Pools = append(st.Pools, model.Pool{
			ID:         common.HexToHash(id),
			Seed:       uint64(seed),
			AssetA:     common.HexToHash(assetA),
			AssetB:     common.HexToHash(assetB),
			ShareAsset: common.HexToHash(shareAsset),
			FeeBps:     uint32(feeBps),
			Locked:     locked,
			Authority:  common.HexToAddress(authority),
			CreatedAt:  createdAt,
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return storage.State{}, false, fmt.Errorf("load pools: %w", err)
	}
	if len(st.Pools) == 0 {
		return storage.State{}, false, nil
	}

	rows, err = s.pool.Query(ctx, `SELECT asset, holder, amount FROM balances`)
	if err != nil {
		return storage.State{}, false, fmt.Errorf("load balances: %w", err)
	}
	for rows.Next() {
		var (
			asset, holder string
			amount        int64
		)
		if err := rows.Scan(&asset, &holder, &amount); err != nil {
			rows.Close()
			return storage.State{}, false, fmt.Errorf("scan balance: %w", err)
		}
		st.Balances = append(st.Balances, model.BalanceRecord{
			Asset:  common.HexToHash(asset),
			Holder: common.HexToAddress(holder),
			Amount: uint64(amount),
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return storage.State{}, false, fmt.Errorf("load balances: %w", err)
	}

	rows, err = s.pool.Query(ctx, `SELECT asset, amount FROM supplies`)
	if err != nil {
		return storage.State{}, false, fmt.Errorf("load supplies: %w", err)
	}
	for rows.Next() {
		var (
			asset  string
			amount int64
		)
		if err := rows.Scan(&asset, &amount); err != nil {
			rows.Close()
			return storage.State{}, false, fmt.Errorf("scan supply: %w", err)
		}
		st.Supplies = append(st.Supplies, model.SupplyRecord{
			Asset:  common.HexToHash(asset),
			Amount: uint64(amount),
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return storage.State{}, false, fmt.Errorf("load supplies: %w", err)
	}

	return st, true, nil
}

// InsertTransitions appends transition receipts.
func (s *Store) InsertTransitions(ctx context.Context, recs []model.TransitionRecord) error {
	if len(recs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, rec := range recs {
		batch.Queue(`
			INSERT INTO transitions (
				kind, pool_id, actor, amount_a, amount_b, shares,
				asset_in, amount_in, amount_out, fee_bps, locked, applied_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		`,
			rec.Kind,
			rec.PoolID.Hex(),
			rec.Actor.Hex(),
			int64(rec.AmountA),
			int64(rec.AmountB),
			int64(rec.Shares),
			rec.AssetIn.Hex(),
			int64(rec.AmountIn),
			int64(rec.AmountOut),
			int32(rec.FeeBps),
			rec.Locked,
			rec.AppliedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range recs {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
