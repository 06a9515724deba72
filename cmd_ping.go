package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"YSFinancials/pkg/config"
	"YSFinancials/pkg/store"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the configured inquiry store is reachable",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		backend, _, err := store.ParseURI(cfg.StoreURI)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.StoreTimeout)
		defer cancel()
		st, err := store.Open(ctx, cfg.StoreURI)
		if err != nil {
			return fmt.Errorf("open %s store: %w", backend, err)
		}
		defer st.Close()
		if err := st.Ping(ctx); err != nil {
			return fmt.Errorf("ping %s store: %w", backend, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s store ok (%s)\n", backend, store.Redact(cfg.StoreURI))
		return nil
	},
}
