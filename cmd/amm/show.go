package main

import (
	"github.com/spf13/cobra"

	"swapCore/internal/pool"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a pool with its live reserves, or list all pools",
		RunE:  runShow,
	}
	addCommonFlags(cmd)
	cmd.Flags().String("pool", "", "pool identity (hex); empty lists every pool")
	cmd.Flags().Uint64("seed", 0, "pool seed (used when --pool is not given)")
	cmd.Flags().String("asset-a", "", "asset A identity (used when --pool is not given)")
	cmd.Flags().String("asset-b", "", "asset B identity (used when --pool is not given)")
	return cmd
}

func runShow(cmd *cobra.Command, _ []string) error {
	rt, err := openRuntime(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	poolHex, _ := cmd.Flags().GetString("pool")
	assetHex, _ := cmd.Flags().GetString("asset-a")
	if poolHex == "" && assetHex == "" {
		pools, err := rt.store.ListPools()
		if err != nil {
			return err
		}
		views := make([]pool.View, 0, len(pools))
		for _, p := range pools {
			view, err := rt.engine.PoolView(p.ID)
			if err != nil {
				return err
			}
			views = append(views, view)
		}
		return printJSON(views)
	}

	poolID, err := resolvePoolID(cmd)
	if err != nil {
		return err
	}
	view, err := rt.engine.PoolView(poolID)
	if err != nil {
		return err
	}
	return printJSON(view)
}
