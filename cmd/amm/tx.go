package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new pool",
		RunE:  runCreate,
	}
	addCommonFlags(cmd)
	cmd.Flags().String("actor", "", "acting account address")
	cmd.Flags().Uint64("seed", 0, "pool seed")
	cmd.Flags().String("asset-a", "", "asset A identity")
	cmd.Flags().String("asset-b", "", "asset B identity")
	cmd.Flags().Uint32("fee-bps", 30, "fee in basis points, [0, 10000)")
	cmd.Flags().String("authority", "", "optional administrative authority address")
	return cmd
}

func runCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := openRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	actor, err := parseActor(cmd)
	if err != nil {
		return err
	}
	seed, _ := cmd.Flags().GetUint64("seed")
	assetA, err := parseAsset(cmd, "asset-a")
	if err != nil {
		return err
	}
	assetB, err := parseAsset(cmd, "asset-b")
	if err != nil {
		return err
	}
	feeBps, _ := cmd.Flags().GetUint32("fee-bps")

	var authority common.Address
	if value, _ := cmd.Flags().GetString("authority"); value != "" {
		if !common.IsHexAddress(value) {
			return fmt.Errorf("invalid authority address %q", value)
		}
		authority = common.HexToAddress(value)
	}

	p, rec, err := rt.engine.Create(actor, seed, assetA, assetB, feeBps, authority)
	if err != nil {
		return err
	}
	if err := rt.record(ctx, rec); err != nil {
		return err
	}
	return printJSON(p)
}

func newDepositCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit liquidity for pool shares",
		RunE:  runDeposit,
	}
	addCommonFlags(cmd)
	addPoolFlags(cmd)
	cmd.Flags().Uint64("shares", 0, "share units to mint")
	cmd.Flags().Uint64("max-a", 0, "slippage ceiling on asset A")
	cmd.Flags().Uint64("max-b", 0, "slippage ceiling on asset B")
	return cmd
}

func runDeposit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := openRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	actor, err := parseActor(cmd)
	if err != nil {
		return err
	}
	poolID, err := resolvePoolID(cmd)
	if err != nil {
		return err
	}
	shares, _ := cmd.Flags().GetUint64("shares")
	maxA, _ := cmd.Flags().GetUint64("max-a")
	maxB, _ := cmd.Flags().GetUint64("max-b")

	rec, err := rt.engine.Deposit(actor, poolID, shares, maxA, maxB)
	if err != nil {
		return err
	}
	if err := rt.record(ctx, rec); err != nil {
		return err
	}
	return printJSON(rec)
}

func newWithdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Burn pool shares for both assets",
		RunE:  runWithdraw,
	}
	addCommonFlags(cmd)
	addPoolFlags(cmd)
	cmd.Flags().Uint64("shares", 0, "share units to burn")
	cmd.Flags().Uint64("min-a", 0, "slippage floor on asset A")
	cmd.Flags().Uint64("min-b", 0, "slippage floor on asset B")
	return cmd
}

func runWithdraw(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := openRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	actor, err := parseActor(cmd)
	if err != nil {
		return err
	}
	poolID, err := resolvePoolID(cmd)
	if err != nil {
		return err
	}
	shares, _ := cmd.Flags().GetUint64("shares")
	minA, _ := cmd.Flags().GetUint64("min-a")
	minB, _ := cmd.Flags().GetUint64("min-b")

	rec, err := rt.engine.Withdraw(actor, poolID, shares, minA, minB)
	if err != nil {
		return err
	}
	if err := rt.record(ctx, rec); err != nil {
		return err
	}
	return printJSON(rec)
}

func newSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Swap one asset of the pair for the other",
		RunE:  runSwap,
	}
	addCommonFlags(cmd)
	addPoolFlags(cmd)
	cmd.Flags().String("asset-in", "", "asset being sold")
	cmd.Flags().Uint64("amount-in", 0, "input amount")
	cmd.Flags().Uint64("min-out", 0, "slippage floor on the output asset")
	return cmd
}

func runSwap(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := openRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	actor, err := parseActor(cmd)
	if err != nil {
		return err
	}
	poolID, err := resolvePoolID(cmd)
	if err != nil {
		return err
	}
	assetIn, err := parseAsset(cmd, "asset-in")
	if err != nil {
		return err
	}
	amountIn, _ := cmd.Flags().GetUint64("amount-in")
	minOut, _ := cmd.Flags().GetUint64("min-out")

	rec, err := rt.engine.Swap(actor, poolID, assetIn, amountIn, minOut)
	if err != nil {
		return err
	}
	if err := rt.record(ctx, rec); err != nil {
		return err
	}
	return printJSON(rec)
}

func newLockCmd(lock bool) *cobra.Command {
	use, short := "lock", "Lock a pool (authority only)"
	if !lock {
		use, short = "unlock", "Unlock a pool (authority only)"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetLocked(cmd, lock)
		},
	}
	addCommonFlags(cmd)
	addPoolFlags(cmd)
	return cmd
}

func runSetLocked(cmd *cobra.Command, locked bool) error {
	ctx := cmd.Context()
	rt, err := openRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	actor, err := parseActor(cmd)
	if err != nil {
		return err
	}
	poolID, err := resolvePoolID(cmd)
	if err != nil {
		return err
	}

	rec, err := rt.engine.SetLocked(actor, poolID, locked)
	if err != nil {
		return err
	}
	if err := rt.record(ctx, rec); err != nil {
		return err
	}
	return printJSON(rec)
}

func newFaucetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faucet",
		Short: "Mint test balances directly on the ledger",
		RunE:  runFaucet,
	}
	addCommonFlags(cmd)
	cmd.Flags().String("asset", "", "asset identity")
	cmd.Flags().String("to", "", "receiving account address")
	cmd.Flags().Uint64("amount", 0, "amount to mint")
	return cmd
}

func runFaucet(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := openRuntime(ctx, cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	asset, err := parseAsset(cmd, "asset")
	if err != nil {
		return err
	}
	value, _ := cmd.Flags().GetString("to")
	if !common.IsHexAddress(value) {
		return fmt.Errorf("invalid receiving address %q", value)
	}
	to := common.HexToAddress(value)
	amount, _ := cmd.Flags().GetUint64("amount")
	if amount == 0 {
		return fmt.Errorf("amount must be greater than zero")
	}

	if err := rt.ledger.Mint(asset, to, amount); err != nil {
		return err
	}
	return rt.persist(ctx)
}

func addPoolFlags(cmd *cobra.Command) {
	cmd.Flags().String("actor", "", "acting account address")
	cmd.Flags().String("pool", "", "pool identity (hex)")
	cmd.Flags().Uint64("seed", 0, "pool seed (used when --pool is not given)")
	cmd.Flags().String("asset-a", "", "asset A identity (used when --pool is not given)")
	cmd.Flags().String("asset-b", "", "asset B identity (used when --pool is not given)")
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
