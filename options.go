// Copyright 2026 The Project Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eavg

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/eavgraph/eavg/internal/eaverrors"
)

// Options tunes the index and arena block sizes used by a Store. The
// zero value is not valid; use DefaultOptions or LoadOptions.
type Options struct {
	// InitialIndexCapacity sizes the initial entitiesByID/attributesByID/
	// relTypesByID/adjacency IntMap allocations.
	InitialIndexCapacity int `mapstructure:"initial_index_capacity"`

	EntityArenaBlockSize    int `mapstructure:"entity_arena_block_size"`
	AttributeArenaBlockSize int `mapstructure:"attribute_arena_block_size"`
	ValueArenaBlockSize     int `mapstructure:"value_arena_block_size"`
	EdgeArenaBlockSize      int `mapstructure:"edge_arena_block_size"`

	// RequireSnapshotChecksum controls whether Load treats a mismatched
	// trailer checksum as fatal (true, default) or as a logged warning on
	// an otherwise well-formed file (false). The 8-byte trailer itself must
	// be present either way.
	RequireSnapshotChecksum bool `mapstructure:"require_snapshot_checksum"`

	// Logger receives store lifecycle and warning messages. Nil selects
	// a discard-output logger so embedding this library never prints to
	// a consuming application's stdout uninvited.
	Logger *logrus.Logger `mapstructure:"-"`
}

// DefaultOptions returns the tuning defaults used when NewStore is called
// with no Option overrides.
func DefaultOptions() Options {
	return Options{
		InitialIndexCapacity:    64,
		EntityArenaBlockSize:    1 << 12,
		AttributeArenaBlockSize: 1 << 10,
		ValueArenaBlockSize:     1 << 12,
		EdgeArenaBlockSize:      1 << 12,
		RequireSnapshotChecksum: true,
	}
}

// LoadOptions reads tuning knobs from a YAML/JSON/TOML config file (the
// extension selects the format) or the EAVG_* environment, layering onto
// DefaultOptions. A missing file is not an error; an unparsable one is.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	v := viper.New()
	v.SetEnvPrefix("EAVG")
	v.AutomaticEnv()
	for _, key := range []string{
		"initial_index_capacity",
		"entity_arena_block_size",
		"attribute_arena_block_size",
		"value_arena_block_size",
		"edge_arena_block_size",
		"require_snapshot_checksum",
	} {
		_ = v.BindEnv(key, "EAVG_"+strings.ToUpper(key))
	}

	if path != "" {
		v.SetConfigFile(path)
		if ext := filepath.Ext(path); ext != "" {
			v.SetConfigType(strings.TrimPrefix(ext, "."))
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
				return Options{}, eaverrors.IO(err, "reading config %q", path)
			}
		}
	}

	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, eaverrors.New(eaverrors.InvalidArgumentErr, "parsing options: %v", err)
	}
	if opts.InitialIndexCapacity <= 0 {
		return Options{}, eaverrors.InvalidArgument("initial_index_capacity must be positive, got %d", opts.InitialIndexCapacity)
	}
	return opts, nil
}

// Option customizes a Store at construction time.
type Option func(*Options)

// WithInitialIndexCapacity overrides Options.InitialIndexCapacity.
func WithInitialIndexCapacity(n int) Option {
	return func(o *Options) { o.InitialIndexCapacity = n }
}

// WithLogger overrides Options.Logger.
func WithLogger(l *logrus.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithRequireSnapshotChecksum overrides Options.RequireSnapshotChecksum.
func WithRequireSnapshotChecksum(require bool) Option {
	return func(o *Options) { o.RequireSnapshotChecksum = require }
}

func (o Options) String() string {
	return fmt.Sprintf("Options{InitialIndexCapacity:%d EntityArenaBlockSize:%d AttributeArenaBlockSize:%d ValueArenaBlockSize:%d EdgeArenaBlockSize:%d RequireSnapshotChecksum:%v}",
		o.InitialIndexCapacity, o.EntityArenaBlockSize, o.AttributeArenaBlockSize, o.ValueArenaBlockSize, o.EdgeArenaBlockSize, o.RequireSnapshotChecksum)
}
