// Copyright 2016 The go-ethereum Authors
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
	"errors"
	"fmt"

	"github.com/solbind/solbind/accounts/abi/bind"
	"github.com/solbind/solbind/cmd/utils"
	"github.com/solbind/solbind/internal/flags"
	"github.com/solbind/solbind/log"
	"github.com/urfave/cli/v2"
)

var generatorFlags = []cli.Flag{
	utils.ABIFlag,
	utils.TypeFlag,
	utils.PkgFlag,
	utils.OutFlag,
	utils.AliasFlag,
	utils.AddressFlag,
	utils.BytecodeHashFlag,
}

var (
	solidityCommand = &cli.Command{
		Name:  "solidity",
		Usage: "Solidity contract binding commands",
		Subcommands: []*cli.Command{
			generateCommand,
		},
	}
	generateCommand = &cli.Command{
		Action:    generateBinding,
		Name:      "generate",
		Aliases:   []string{"truffle"},
		Usage:     "Generate a typed Go binding from a contract interface description",
		ArgsUsage: " ",
		Flags:     flags.Merge(generatorFlags, []cli.Flag{configFileFlag}, utils.DeprecatedFlags),
		Description: `
The generate command reads a JSON or YAML contract interface description, or a
Truffle build artifact, and writes a Go source file holding a typed wrapper
around it: one method per function, a parser and a topic filter builder per
event and a decoder per custom error.

Binding is all or nothing. Functions sharing a selector, events sharing a topic
or members mapping to the same Go identifier abort the run without output; use
--alias to rename members. The output only depends on the inputs.

For build artifacts the contract name is the default --type and the deployments
listed under "networks" become known addresses keyed by network id.`,
	}
)

func generateBinding(ctx *cli.Context) error {
	if ctx.Args().Present() {
		return fmt.Errorf("invalid command: %s", ctx.Args().First())
	}
	if err := utils.CheckDeprecated(ctx); err != nil {
		return err
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	gen := cfg.Generator

	art, err := utils.LoadArtifact(gen.ABI)
	if err != nil {
		return err
	}
	// Build artifacts name the contract and list its deployments. Explicit
	// settings win.
	kind := gen.Type
	if kind == "" {
		kind = art.Name
	}
	if kind == "" {
		kind = gen.Package
	}
	if kind == "" {
		return errors.New("no destination package specified (--pkg)")
	}
	if len(art.Networks) > 0 {
		addrs := make(map[string]string, len(gen.Addresses)+len(art.Networks))
		for network, addr := range art.Networks {
			addrs[network] = addr
		}
		for network, addr := range gen.Addresses {
			addrs[network] = addr
		}
		gen.Addresses = addrs
	}
	opts, err := gen.bindOptions()
	if err != nil {
		return err
	}
	code, err := bind.Bind(art.ABIJSON, kind, opts)
	if err != nil {
		return fmt.Errorf("failed to generate binding: %w", err)
	}
	// Flush it either to a file or display on the standard output
	if gen.Out == "" {
		fmt.Fprint(ctx.App.Writer, code)
		return nil
	}
	if err := utils.WriteFileLocked(gen.Out, []byte(code)); err != nil {
		return fmt.Errorf("failed to write binding: %w", err)
	}
	log.Info("Wrote contract binding", "type", kind, "file", gen.Out, "size", len(code))
	return nil
}
