package main

import (
	"context"
	"fmt"
	"hash"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/epithet-ssh/uudecode/pkg/endpoint"
	"github.com/epithet-ssh/uudecode/pkg/uu"
	"golang.org/x/crypto/blake2b"
)

type CLI struct {
	Config        kong.ConfigFlag `help:"Path to config file" short:"c"`
	LogLevel      string          `help:"Log level" enum:"debug,info,warn,error" default:"warn" env:"UUDECODE_LOG_LEVEL"`
	NoColor       bool            `help:"Disable colored log output"`
	Checksum      bool            `help:"Print the BLAKE2b-256 digest of the decoded output to stderr"`
	MaxLineLength int             `help:"Maximum length of an input line in bytes" default:"1048576"`

	S3Endpoint  string `name:"s3-endpoint" help:"Base URL of an S3-compatible service for s3:// names" env:"UUDECODE_S3_ENDPOINT"`
	S3Region    string `name:"s3-region" help:"Region for s3:// names (overrides the AWS configuration)"`
	S3PathStyle bool   `name:"s3-path-style" help:"Use path-style S3 addressing"`
	S3CACert    string `name:"s3-ca-cert" help:"PEM file of CA certificates trusted for the S3 endpoint" type:"path"`
	S3Insecure  bool   `name:"s3-insecure" help:"Skip TLS verification and allow http:// S3 endpoints (NOT RECOMMENDED)"`

	Args []string `arg:"" optional:"" name:"file" help:"<input_file> <output_file>: a path, - for stdio, or s3://bucket/key"`

	newS3Client func(context.Context, endpoint.S3Config) (endpoint.S3API, error) `kong:"-"`
}

// Streams are the process's standard streams and name.
type Streams struct {
	Prog   string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (c *CLI) Run(ctx context.Context, logger *slog.Logger, s *Streams) error {
	if len(c.Args) != 0 && len(c.Args) != 2 {
		fmt.Fprintf(s.Stderr, "uudecode: usage: %s <input_file> <output_file>\n", s.Prog)
		return nil
	}

	input, output := endpoint.Stdio, endpoint.Stdio
	if len(c.Args) == 2 {
		input, output = c.Args[0], c.Args[1]
	}
	logger.Debug("uudecode command called", "input", input, "output", output)

	opts := []endpoint.Option{
		endpoint.WithStdio(s.Stdin, s.Stdout),
		endpoint.WithLogger(logger),
	}

	// One client serves both ends.
	if endpoint.IsS3(input) || endpoint.IsS3(output) {
		client, err := c.s3Client(ctx)
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		opts = append(opts, endpoint.WithS3Client(client))
	}

	in, err := endpoint.Open(ctx, input, opts...)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	// Created before decoding starts, so a failed decode leaves the
	// output truncated or partially written.
	sink, err := endpoint.Create(ctx, output, opts...)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	var w io.Writer = sink
	var sum hash.Hash
	if c.Checksum {
		sum, err = blake2b.New256(nil)
		if err != nil {
			sink.Close()
			return err
		}
		w = io.MultiWriter(sink, sum)
	}

	dec := uu.NewDecoder(in, uu.WithLogger(logger), uu.MaxLineLength(c.MaxLineLength))
	res, err := dec.Decode(w)
	if err == nil {
		// The tee hides the sink's Flush from the decoder.
		if ferr := sink.Flush(); ferr != nil {
			err = &uu.WriteError{Err: ferr}
		}
	}
	if err != nil {
		sink.Close()
		return err
	}
	if err := sink.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	logger.Info("decoded", "input", input, "output", output, "lines", res.Lines, "bytes", res.Bytes)
	if sum != nil {
		fmt.Fprintf(s.Stderr, "blake2b-256:%x  %s\n", sum.Sum(nil), output)
	}
	return nil
}

func (c *CLI) s3Client(ctx context.Context) (endpoint.S3API, error) {
	cfg := endpoint.S3Config{
		Endpoint:   c.S3Endpoint,
		Region:     c.S3Region,
		PathStyle:  c.S3PathStyle,
		CACertFile: c.S3CACert,
		Insecure:   c.S3Insecure,
	}
	if c.newS3Client != nil {
		return c.newS3Client(ctx, cfg)
	}
	return endpoint.NewS3Client(ctx, cfg)
}
