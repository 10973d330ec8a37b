// Copyright (C) 2025, Tswap Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	sdkmath "cosmossdk.io/math"

	"github.com/tswaplabs/tswap/asset"
	"github.com/tswaplabs/tswap/host"
)

// Config drives a tswapd instance: where to listen, how to log, and the
// genesis state seeded before serving.
type Config struct {
	Listen  string        `yaml:"listen"`
	Log     LogConfig     `yaml:"log"`
	Genesis GenesisConfig `yaml:"genesis"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// GenesisConfig seeds the in-memory app at startup: funded accounts,
// custodial tokens, a factory owned by the operator, and the initial
// pair set.
type GenesisConfig struct {
	Operator          host.Address     `yaml:"operator"`
	DefaultCommission string           `yaml:"default_commission"`
	Accounts          []GenesisAccount `yaml:"accounts"`
	Tokens            []GenesisToken   `yaml:"tokens"`
	Pairs             []GenesisPair    `yaml:"pairs"`
}

type GenesisAccount struct {
	Address host.Address  `yaml:"address"`
	Coins   []GenesisCoin `yaml:"coins"`
}

type GenesisCoin struct {
	Denom  string `yaml:"denom"`
	Amount string `yaml:"amount"`
}

type GenesisToken struct {
	Symbol   string           `yaml:"symbol"`
	Balances []GenesisBalance `yaml:"balances"`
}

type GenesisBalance struct {
	Address host.Address `yaml:"address"`
	Amount  string       `yaml:"amount"`
}

// GenesisPair names the two sides by native denom or genesis token
// symbol; exactly one of Native/Token is set per side.
type GenesisPair struct {
	Assets [2]GenesisAsset `yaml:"assets"`
}

type GenesisAsset struct {
	Native string `yaml:"native,omitempty"`
	Token  string `yaml:"token,omitempty"`
}

func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8547"
	}
	if cfg.Genesis.Operator.Empty() {
		return Config{}, fmt.Errorf("genesis.operator is required")
	}
	return cfg, nil
}

func parseAmount(s string) (sdkmath.Int, error) {
	amount, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("invalid amount %q", s)
	}
	if err := asset.ValidateAmount(amount); err != nil {
		return sdkmath.Int{}, fmt.Errorf("amount %q: %w", s, err)
	}
	return amount, nil
}

// resolveAsset maps a genesis asset to a concrete asset info, consulting
// the symbol table built while instantiating genesis tokens.
func resolveAsset(ga GenesisAsset, tokens map[string]host.Address) (asset.Info, error) {
	switch {
	case ga.Native != "" && ga.Token == "":
		return asset.NativeInfo(ga.Native), nil
	case ga.Token != "" && ga.Native == "":
		addr, ok := tokens[ga.Token]
		if !ok {
			return asset.Info{}, fmt.Errorf("unknown genesis token %q", ga.Token)
		}
		return asset.TokenInfo(addr), nil
	default:
		return asset.Info{}, fmt.Errorf("genesis asset must set exactly one of native/token")
	}
}
