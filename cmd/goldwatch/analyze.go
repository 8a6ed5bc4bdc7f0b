package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naratip/goldwatch/internal/app"
	"github.com/naratip/goldwatch/internal/collector/binance"
	"github.com/naratip/goldwatch/internal/collector/goldapi"
	"github.com/naratip/goldwatch/internal/logger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Fetch the current price and print a one-shot analysis",
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.Must(logLevel, debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	a := app.New(cfg, log)
	a.SetGoldSource(goldapi.New())
	if cfg.Collectors.Candles.Enabled {
		a.SetCandleSource(binance.New())
	}

	a.RunOnce(context.Background())

	price := a.LatestPrice()
	if price == nil {
		return fmt.Errorf("could not fetch the gold price")
	}

	snap, sig, ok := a.Analysis()
	if !ok {
		return fmt.Errorf("analysis did not complete")
	}

	out := map[string]any{
		"price":      price,
		"indicators": snap,
		"signal":     sig,
		"stats":      a.TodayStats(),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
