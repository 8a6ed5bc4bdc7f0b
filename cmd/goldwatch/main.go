package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	debug    bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "goldwatch",
	Short: "goldwatch - Thai gold price monitor and technical analysis service",
	Long: `goldwatch polls the Thai gold traders association price board, keeps a
session price log, computes technical indicators (RSI, MACD, Bollinger
bands, moving averages) and serves a dashboard API with price alerts.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
