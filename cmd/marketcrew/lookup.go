package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"marketcrew/internal/config"
)

// lookupCmd queries the catalog directly, bypassing the pipeline. Useful
// for checking what the shortlist stage will see.
var lookupCmd = &cobra.Command{
	Use:   "lookup [product-id]",
	Short: "List catalog records for a product id",
	Long: `Prints every catalog record matching the product id. Matching is
case-insensitive and ignores surrounding whitespace, exactly as the
pipeline's lookup does.

Example:
  marketcrew lookup p5`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	baseCtx := cmd.Context()
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}

	store, err := openStore(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Lookup(baseCtx, args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("no records for product id %q\n", args[0])
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
