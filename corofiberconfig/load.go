// Copyright 2014 by the Authors
// This file is part of the go-core library.
//
// The go-core library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-core library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-core library. If not, see <http://www.gnu.org/licenses/>.

// Package corofiberconfig loads a corofiber.Config from a TOML file using
// the naoina/toml decoder.
package corofiberconfig

import (
	"os"

	"github.com/naoina/toml"

	"github.com/corlang/corofiber"
)

// fileConfig mirrors corofiber.Config's tunables; Debug/Tracer are
// intentionally excluded since a Tracer has no serializable form.
type fileConfig struct {
	FiberStackWords         int
	StackPaddingWords       int
	CaptureJustValidVMStack bool
	TLSCapacity             int
}

// Load reads path as TOML and returns a corofiber.Config built from it,
// falling back to corofiber.DefaultConfig's values for any field absent
// from the file.
func Load(path string) (corofiber.Config, error) {
	cfg := corofiber.DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	fc := fileConfig{CaptureJustValidVMStack: cfg.CaptureJustValidVMStack}
	if err := toml.NewDecoder(f).Decode(&fc); err != nil {
		return cfg, err
	}

	if fc.FiberStackWords != 0 {
		cfg.FiberStackWords = fc.FiberStackWords
	}
	if fc.StackPaddingWords != 0 {
		cfg.StackPaddingWords = fc.StackPaddingWords
	}
	cfg.CaptureJustValidVMStack = fc.CaptureJustValidVMStack
	if fc.TLSCapacity != 0 {
		cfg.TLSCapacity = fc.TLSCapacity
	}
	return cfg, nil
}
