// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package config loads the small set of tunables the on-demand core
// needs at startup: the CHT window size, the modexp precompile's default
// divisor and activation height, and the batch size limits a dispatcher
// enforces before it will build a request batch.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/erigontech/odr/builtin"
	"github.com/erigontech/odr/cht"
)

// Config is the top-level YAML document, matching the teacher's
// convention of one struct tree per config file with yaml tags rather
// than a flat key-value store.
type Config struct {
	CHT       CHTConfig    `yaml:"cht"`
	Modexp    ModexpConfig `yaml:"modexp"`
	MaxBatch  int          `yaml:"max_batch_size"`
	CacheSize int          `yaml:"cht_root_cache_size"`
}

// CHTConfig configures the Canonical Hash Tree window.
type CHTConfig struct {
	WindowSize uint64 `yaml:"window_size"`
}

// ModexpConfig configures the modular-exponentiation precompile.
type ModexpConfig struct {
	Divisor    uint64 `yaml:"divisor"`
	ActivateAt uint64 `yaml:"activate_at"`
}

// Default returns the configuration this core runs with absent an
// operator-supplied file: a standard-size CHT window, Parity's default
// modexp divisor active from genesis, a 256-request batch ceiling, and a
// modestly sized CHT root cache.
func Default() Config {
	return Config{
		CHT:       CHTConfig{WindowSize: cht.DefaultWindowSize},
		Modexp:    ModexpConfig{Divisor: builtin.DefaultModexpDivisor, ActivateAt: 0},
		MaxBatch:  256,
		CacheSize: 128,
	}
}

// Load reads and parses a YAML config file at path, falling back to
// Default for any field the file omits (a zero WindowSize or zero
// MaxBatch after unmarshalling means "not set").
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %s", path)
	}
	if cfg.CHT.WindowSize == 0 {
		cfg.CHT.WindowSize = cht.DefaultWindowSize
	}
	if cfg.MaxBatch == 0 {
		cfg.MaxBatch = Default().MaxBatch
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = Default().CacheSize
	}
	return cfg, nil
}
