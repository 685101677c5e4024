package config

import (
	"fmt"
	"io"
	"strconv"

	"cuelang.org/go/cue"
	"github.com/alecthomas/kong"
)

// KongLoader is a kong.ConfigurationLoader for YAML, JSON and CUE files.
//
// Top-level fields are matched against flag names, so a file containing
//
//	log-level: debug
//	checksum: true
//
// behaves like passing --log-level=debug --checksum. Flags given on the
// command line or through the environment take precedence.
func KongLoader(r io.Reader) (kong.Resolver, error) {
	val, err := LoadValueFromReader(r)
	if err != nil {
		return nil, err
	}
	return Resolver(val), nil
}

// Resolver returns a kong.Resolver that reads flag values from the
// top-level fields of val.
func Resolver(val cue.Value) kong.Resolver {
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		field := val.LookupPath(cue.MakePath(cue.Str(flag.Name)))
		if !field.Exists() {
			return nil, nil
		}

		s, err := scalar(field)
		if err != nil {
			return nil, fmt.Errorf("config %q: %w", flag.Name, err)
		}
		return s, nil
	})
}

// scalar renders a concrete CUE value in the string form kong parses for
// any flag type.
func scalar(v cue.Value) (string, error) {
	switch k := v.Kind(); k {
	case cue.StringKind:
		return v.String()
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case cue.IntKind:
		i, err := v.Int64()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(i, 10), nil
	default:
		return "", fmt.Errorf("unsupported value of kind %v", k)
	}
}
