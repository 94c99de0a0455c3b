// Copyright 2017 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"unicode"

	"github.com/naoina/toml"
	"github.com/solbind/solbind/accounts/abi/bind"
	"github.com/solbind/solbind/cmd/utils"
	"github.com/solbind/solbind/common"
	"github.com/solbind/solbind/internal/flags"
	"github.com/solbind/solbind/log"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &flags.PathFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.GeneratorCategory,
	}
	dumpConfigCommand = &cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Export configuration values in a TOML format",
		ArgsUsage:   "<dumpfile (optional)>",
		Flags:       flags.Merge(generatorFlags, []cli.Flag{configFileFlag}),
		Description: `Export configuration values in TOML format (to stdout by default).`,
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		id := fmt.Sprintf("%s.%s", rt.String(), field)
		if deprecatedConfigFields[id] {
			log.Warn(fmt.Sprintf("Config field '%s' is deprecated and won't have any effect.", id))
			return nil
		}
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

var deprecatedConfigFields = map[string]bool{
	"main.generatorConfig.Lang":    true,
	"main.generatorConfig.Exclude": true,
}

// generatorConfig holds the inputs of a binding run.
type generatorConfig struct {
	ABI          string            `toml:",omitempty"`
	Type         string            `toml:",omitempty"`
	Package      string            `toml:",omitempty"`
	Out          string            `toml:",omitempty"`
	BytecodeHash string            `toml:",omitempty"`
	Aliases      map[string]string `toml:",omitempty"`
	Addresses    map[string]string `toml:",omitempty"`
}

type solbindConfig struct {
	Generator generatorConfig
}

func loadConfig(file string, cfg *solbindConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadBaseConfig loads the solbindConfig based on the given command line
// parameters and config file. Flags take precedence over file values.
func loadBaseConfig(ctx *cli.Context) (solbindConfig, error) {
	var cfg solbindConfig

	// Load config file.
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	// Apply flags.
	if err := setGeneratorConfig(ctx, &cfg.Generator); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setGeneratorConfig applies generator related command line flags to the config.
func setGeneratorConfig(ctx *cli.Context, cfg *generatorConfig) error {
	if ctx.IsSet(utils.ABIFlag.Name) {
		cfg.ABI = ctx.String(utils.ABIFlag.Name)
	}
	if ctx.IsSet(utils.TypeFlag.Name) {
		cfg.Type = ctx.String(utils.TypeFlag.Name)
	}
	if ctx.IsSet(utils.PkgFlag.Name) {
		cfg.Package = ctx.String(utils.PkgFlag.Name)
	}
	if ctx.IsSet(utils.OutFlag.Name) {
		cfg.Out = ctx.String(utils.OutFlag.Name)
	}
	if ctx.IsSet(utils.BytecodeHashFlag.Name) {
		cfg.BytecodeHash = ctx.String(utils.BytecodeHashFlag.Name)
	}
	if ctx.IsSet(utils.AliasFlag.Name) {
		aliases, err := bind.ParseAliases(ctx.StringSlice(utils.AliasFlag.Name))
		if err != nil {
			return err
		}
		if cfg.Aliases == nil {
			cfg.Aliases = make(map[string]string)
		}
		for original, renamed := range aliases {
			cfg.Aliases[original] = renamed
		}
	}
	if ctx.IsSet(utils.AddressFlag.Name) {
		addrs, err := bind.ParseAddresses(ctx.StringSlice(utils.AddressFlag.Name))
		if err != nil {
			return err
		}
		if cfg.Addresses == nil {
			cfg.Addresses = make(map[string]string)
		}
		for network, addr := range addrs {
			cfg.Addresses[network] = addr.Hex()
		}
	}
	return nil
}

// bindOptions converts the configuration into generator options.
func (cfg *generatorConfig) bindOptions() (bind.Options, error) {
	opts := bind.Options{
		Package:      cfg.Package,
		Aliases:      cfg.Aliases,
		BytecodeHash: cfg.BytecodeHash,
	}
	if len(cfg.Addresses) > 0 {
		networks := make([]string, 0, len(cfg.Addresses))
		for network := range cfg.Addresses {
			networks = append(networks, network)
		}
		sort.Strings(networks)

		pairs := make([]string, len(networks))
		for i, network := range networks {
			pairs[i] = network + "=" + cfg.Addresses[network]
		}
		addrs, err := bind.ParseAddresses(pairs)
		if err != nil {
			return bind.Options{}, err
		}
		opts.Addresses = make(map[string]common.Address, len(addrs))
		for network, addr := range addrs {
			opts.Addresses[network] = addr
		}
	}
	return opts, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	dump.Write(out)
	return nil
}
