package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wyhar1/execsim/backtest"
	"github.com/wyhar1/execsim/config"
	"github.com/wyhar1/execsim/history"
	"github.com/wyhar1/execsim/strategy"
)

func main() {
	configPath := flag.String("config", "config/backtests/ma_cross.yml", "backtest config file")
	historyPath := flag.String("history", "", "csv price history, overrides history_file")
	pairHistoryPath := flag.String("pair-history", "", "csv price history of the second leg, overrides pair_history_file")
	verbose := flag.Bool("ledger", false, "print the ledger and trades with the result")
	flag.Parse()

	config.NewLoggerService()

	if err := run(*configPath, *historyPath, *pairHistoryPath, *verbose); err != nil {
		config.Logger.Errorf("Backtest failed: %v", err)
		os.Exit(1)
	}
}

func runner(cfg *config.Backtest) (*backtest.Runner, string, error) {
	series, err := history.LoadFile(cfg.Symbol, cfg.HistoryFile)
	if err != nil {
		return nil, "", err
	}

	if !cfg.IsPair() {
		signals, err := strategy.FromConfig(cfg)
		if err != nil {
			return nil, "", err
		}

		return backtest.NewRunner(series, signals), signals.Name(), nil
	}

	pair, err := history.LoadFile(cfg.PairSymbol, cfg.PairHistoryFile)
	if err != nil {
		return nil, "", err
	}

	signals, err := strategy.PairFromConfig(cfg)
	if err != nil {
		return nil, "", err
	}

	return backtest.NewPairRunner(series, pair, signals), signals.Name(), nil
}

func run(configPath, historyPath, pairHistoryPath string, verbose bool) error {
	cfg, err := config.LoadBacktest(configPath)
	if err != nil {
		return err
	}

	if len(historyPath) > 0 {
		cfg.HistoryFile = historyPath
	}
	if len(pairHistoryPath) > 0 {
		cfg.PairHistoryFile = pairHistoryPath
	}

	r, name, err := runner(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := r.Run(ctx, backtest.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	output := map[string]interface{}{
		"symbol":      cfg.Symbol,
		"strategy":    name,
		"summary":     result.Summary,
		"performance": result.Performance,
	}
	if cfg.IsPair() {
		output["pair_symbol"] = cfg.PairSymbol
	}
	if verbose {
		output["ledger"] = result.Ledger
		output["trades"] = result.Trades
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	return nil
}
