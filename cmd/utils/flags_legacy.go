// Copyright 2020 The go-ethereum Authors
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

package utils

import (
	"fmt"

	"github.com/solbind/solbind/internal/flags"
	"github.com/solbind/solbind/log"
	"github.com/urfave/cli/v2"
)

// DeprecatedFlags lists the flags that are still accepted but have no effect
// beyond a warning.
var DeprecatedFlags = []cli.Flag{
	LangFlag,
	ExcludeFlag,
}

var (
	// Go is the only binding language left
	LangFlag = &cli.StringFlag{
		Name:     "lang",
		Usage:    "Destination language for the bindings (deprecated, only go is supported)",
		Value:    "go",
		Category: flags.DeprecatedCategory,
	}
	// One interface description is bound per run
	ExcludeFlag = &cli.StringFlag{
		Name:     "exc",
		Usage:    "Comma separated types to exclude from binding (deprecated)",
		Category: flags.DeprecatedCategory,
	}
)

// CheckDeprecated warns about deprecated flags the user set, failing on
// values that cannot be honoured any more.
func CheckDeprecated(ctx *cli.Context) error {
	if ctx.IsSet(LangFlag.Name) {
		if lang := ctx.String(LangFlag.Name); lang != "go" {
			return fmt.Errorf("unsupported destination language %q (--%s)", lang, LangFlag.Name)
		}
		log.Warn("The flag is deprecated and will be removed", "flag", LangFlag.Name)
	}
	if ctx.IsSet(ExcludeFlag.Name) {
		log.Warn("The flag is deprecated and has no effect", "flag", ExcludeFlag.Name)
	}
	return nil
}
