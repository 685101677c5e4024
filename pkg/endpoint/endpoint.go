// Package endpoint opens the input and output of a decode by name.
//
// A name is one of:
//
//	"-" or ""          standard input or standard output
//	s3://bucket/key    an S3 object
//	anything else      a local file path
package endpoint

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Stdio is the name of the standard input and output endpoints.
const Stdio = "-"

// Sink is a buffered output endpoint.
//
// Flush makes everything written so far durable. Close releases the
// underlying handle on every path; for local sinks it first writes out any
// buffered bytes.
type Sink interface {
	io.WriteCloser
	Flush() error
}

type options struct {
	s3       S3API
	s3Config S3Config
	stdin    io.Reader
	stdout   io.Writer
	logger   *slog.Logger
}

// Option configures Open and Create.
type Option func(*options)

// WithS3Client sets the client used for s3:// names. Without it a client is
// built with NewS3Client the first time one is needed.
func WithS3Client(c S3API) Option {
	return func(o *options) {
		o.s3 = c
	}
}

// WithStdio replaces os.Stdin and os.Stdout for the "-" endpoint.
func WithStdio(in io.Reader, out io.Writer) Option {
	return func(o *options) {
		o.stdin = in
		o.stdout = out
	}
}

// WithLogger sets the logger for endpoint debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open opens the named input endpoint for reading.
// Closing the standard input endpoint does not close os.Stdin.
func Open(ctx context.Context, name string, opts ...Option) (io.ReadCloser, error) {
	o := newOptions(opts)

	if name == "" || name == Stdio {
		o.logger.Debug("reading standard input")
		return io.NopCloser(o.stdin), nil
	}

	if IsS3(name) {
		bucket, key, ok := ParseS3URL(name)
		if !ok {
			return nil, fmt.Errorf("invalid S3 URL %q: expected s3://bucket/key", name)
		}
		client, err := o.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		o.logger.Debug("reading S3 object", "bucket", bucket, "key", key)
		return openS3(ctx, client, bucket, key)
	}

	o.logger.Debug("reading file", "path", name)
	return os.Open(name)
}

// Create creates the named output endpoint. Local files are created or
// truncated immediately.
func Create(ctx context.Context, name string, opts ...Option) (Sink, error) {
	o := newOptions(opts)

	if name == "" || name == Stdio {
		o.logger.Debug("writing standard output")
		return &stdoutSink{Writer: bufio.NewWriter(o.stdout)}, nil
	}

	if IsS3(name) {
		bucket, key, ok := ParseS3URL(name)
		if !ok {
			return nil, fmt.Errorf("invalid S3 URL %q: expected s3://bucket/key", name)
		}
		client, err := o.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		o.logger.Debug("writing S3 object", "bucket", bucket, "key", key)
		return &s3Sink{
			ctx:    ctx,
			client: client,
			bucket: bucket,
			key:    key,
			logger: o.logger,
		}, nil
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("writing file", "path", name)
	return &fileSink{Writer: bufio.NewWriter(f), f: f}, nil
}

// fileSink buffers writes to a local file.
type fileSink struct {
	*bufio.Writer
	f *os.File
}

func (s *fileSink) Close() error {
	flushErr := s.Flush()
	return errors.Join(flushErr, s.f.Close())
}

// stdoutSink buffers writes to standard output and leaves it open.
type stdoutSink struct {
	*bufio.Writer
}

func (s *stdoutSink) Close() error {
	return s.Flush()
}
