// Package config loads uudecode configuration files.
// It supports YAML, JSON, CUE and TOML file formats using CUE as the
// underlying representation.
package config

import (
	"errors"
	"fmt"
	"io"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
	"github.com/pelletier/go-toml/v2"
)

type parser struct {
	name  string
	parse func(ctx *cue.Context, data []byte) (cue.Value, error)
}

// Tried in order. YAML also covers JSON.
var parsers = []parser{
	{"yaml", func(ctx *cue.Context, data []byte) (cue.Value, error) {
		file, err := yaml.Extract("", data)
		if err != nil {
			return cue.Value{}, err
		}
		return ctx.BuildFile(file), nil
	}},
	{"cue", func(ctx *cue.Context, data []byte) (cue.Value, error) {
		return ctx.CompileBytes(data), nil
	}},
	{"toml", func(ctx *cue.Context, data []byte) (cue.Value, error) {
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return cue.Value{}, err
		}
		return ctx.Encode(m), nil
	}},
}

// LoadValueFromReader loads configuration from an io.Reader and returns a CUE value.
// The first format that yields a mapping wins.
func LoadValueFromReader(r io.Reader) (cue.Value, error) {
	ctx := cuecontext.New()

	data, err := io.ReadAll(r)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}

	var errs []error
	for _, p := range parsers {
		val, err := p.parse(ctx, data)
		if err == nil {
			err = val.Err()
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.name, err))
			continue
		}

		if k := val.IncompleteKind(); k != cue.StructKind && k != cue.NullKind {
			errs = append(errs, fmt.Errorf("%s: config must be a mapping of flag names to values, got %v", p.name, k))
			continue
		}
		return val, nil
	}

	return cue.Value{}, fmt.Errorf("failed to parse config: %w", errors.Join(errs...))
}
