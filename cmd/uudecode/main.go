package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/epithet-ssh/uudecode/pkg/config"
)

const defaultConfigPath = "~/.config/uudecode/config.yaml"

func main() {
	var cli CLI
	kctx := kong.Parse(&cli, parserOptions(defaultConfigPath)...)

	logger := newLogger(os.Stderr, cli.LogLevel, cli.NoColor)
	ctx := context.Background()
	kctx.BindTo(ctx, (*context.Context)(nil))

	err := kctx.Run(logger, &Streams{
		Prog:   filepath.Base(os.Args[0]),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

func parserOptions(configPaths ...string) []kong.Option {
	return []kong.Option{
		kong.Name("uudecode"),
		kong.Description("Decode a uuencoded file. With no arguments, reads standard input and writes standard output."),
		kong.UsageOnError(),
		kong.Configuration(config.KongLoader, configPaths...),
	}
}

// errorLine renders err as the single line the command prints on failure.
func errorLine(err error) string {
	return "uudecode: " + strings.TrimPrefix(err.Error(), "uu: ")
}
