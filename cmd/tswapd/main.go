// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// tswapd runs an in-memory exchange host seeded from a genesis config
// and serves the read-only JSON-RPC surface.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	sdkmath "cosmossdk.io/math"

	"github.com/tswaplabs/tswap/api"
	"github.com/tswaplabs/tswap/asset"
	"github.com/tswaplabs/tswap/factory"
	"github.com/tswaplabs/tswap/host"
	"github.com/tswaplabs/tswap/pair"
	"github.com/tswaplabs/tswap/token"
	"github.com/tswaplabs/tswap/whitelist"
)

const (
	whitelistCodeID uint64 = 1
	tokenCodeID     uint64 = 2
	pairCodeID      uint64 = 3
	factoryCodeID   uint64 = 4
)

func main() {
	configPath := flag.String("config", "tswapd.yaml", "path to config file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %s\n", err)
		os.Exit(1)
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %s\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("exiting", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := host.NewApp(log)
	app.RegisterCode(whitelistCodeID, &whitelist.Contract{})
	app.RegisterCode(tokenCodeID, &token.Contract{})
	app.RegisterCode(pairCodeID, &pair.Contract{})
	app.RegisterCode(factoryCodeID, &factory.Contract{})

	factoryAddr, err := seedGenesis(ctx, app, cfg.Genesis, log)
	if err != nil {
		return fmt.Errorf("seeding genesis: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           api.NewHandler(api.NewService(log, app, factoryAddr)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("serving", zap.String("listen", cfg.Listen))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// seedGenesis funds accounts, instantiates the genesis tokens and the
// factory, and creates the initial pairs. Returns the factory address.
func seedGenesis(ctx context.Context, app *host.App, genesis GenesisConfig, log *zap.Logger) (host.Address, error) {
	for _, account := range genesis.Accounts {
		coins := make(host.Coins, 0, len(account.Coins))
		for _, c := range account.Coins {
			amount, err := parseAmount(c.Amount)
			if err != nil {
				return host.EmptyAddress, err
			}
			coins = append(coins, host.NewCoin(c.Denom, amount))
		}
		if err := app.FundAccount(ctx, account.Address, coins); err != nil {
			return host.EmptyAddress, err
		}
	}

	tokens := make(map[string]host.Address, len(genesis.Tokens))
	for _, gt := range genesis.Tokens {
		balances := make([]token.InitialCoin, 0, len(gt.Balances))
		for _, b := range gt.Balances {
			amount, err := parseAmount(b.Amount)
			if err != nil {
				return host.EmptyAddress, err
			}
			balances = append(balances, token.InitialCoin{Address: b.Address, Amount: amount})
		}
		raw, err := json.Marshal(token.InstantiateMsg{
			Name:            gt.Symbol,
			Symbol:          gt.Symbol,
			Decimals:        6,
			InitialBalances: balances,
		})
		if err != nil {
			return host.EmptyAddress, err
		}
		addr, err := app.Instantiate(ctx, genesis.Operator, tokenCodeID, raw, nil, gt.Symbol)
		if err != nil {
			return host.EmptyAddress, fmt.Errorf("token %s: %w", gt.Symbol, err)
		}
		tokens[gt.Symbol] = addr
		log.Info("genesis token", zap.String("symbol", gt.Symbol), zap.String("address", addr.String()))
	}

	factoryMsg := factory.InstantiateMsg{
		PairCodeID:  pairCodeID,
		TokenCodeID: tokenCodeID,
	}
	if genesis.DefaultCommission != "" {
		commission, err := sdkmath.LegacyNewDecFromStr(genesis.DefaultCommission)
		if err != nil {
			return host.EmptyAddress, fmt.Errorf("default commission: %w", err)
		}
		factoryMsg.DefaultCommission = &commission
	}
	raw, err := json.Marshal(factoryMsg)
	if err != nil {
		return host.EmptyAddress, err
	}
	factoryAddr, err := app.Instantiate(ctx, genesis.Operator, factoryCodeID, raw, nil, "tswap factory")
	if err != nil {
		return host.EmptyAddress, fmt.Errorf("factory: %w", err)
	}
	log.Info("genesis factory", zap.String("address", factoryAddr.String()))

	for _, gp := range genesis.Pairs {
		var infos [2]asset.Info
		for i, ga := range gp.Assets {
			info, err := resolveAsset(ga, tokens)
			if err != nil {
				return host.EmptyAddress, err
			}
			infos[i] = info
		}
		create, err := json.Marshal(factory.ExecuteMsg{
			CreatePair: &factory.CreatePairMsg{AssetInfos: infos},
		})
		if err != nil {
			return host.EmptyAddress, err
		}
		if _, err := app.Execute(ctx, genesis.Operator, factoryAddr, create, nil); err != nil {
			return host.EmptyAddress, fmt.Errorf("pair %s/%s: %w", infos[0], infos[1], err)
		}
		log.Info("genesis pair", zap.Stringer("asset0", infos[0]), zap.Stringer("asset1", infos[1]))
	}
	return factoryAddr, nil
}

func newLogger(cfg LogConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
	}
	if cfg.File == "" {
		logCfg := zap.NewProductionConfig()
		logCfg.Level = zap.NewAtomicLevelAt(level)
		return logCfg.Build()
	}
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	})
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		sink,
		level,
	)
	return zap.New(core), nil
}
