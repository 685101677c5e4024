package endpoint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

// S3API is the subset of *s3.Client used for S3 endpoints.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ErrSinkClosed is returned when writing to an S3 sink after it was
// flushed or closed.
var ErrSinkClosed = errors.New("endpoint: write after flush or close")

// IsS3 reports whether name refers to an S3 object.
func IsS3(name string) bool {
	return strings.HasPrefix(name, s3Scheme)
}

// ParseS3URL splits an s3://bucket/key name. ok is false when name is not
// an S3 URL or the bucket or key is empty.
func ParseS3URL(name string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(name, s3Scheme)
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func (o *options) s3Client(ctx context.Context) (S3API, error) {
	if o.s3 != nil {
		return o.s3, nil
	}

	client, err := NewS3Client(ctx, o.s3Config)
	if err != nil {
		return nil, err
	}
	o.s3 = client
	return o.s3, nil
}

func openS3(ctx context.Context, client S3API, bucket, key string) (io.ReadCloser, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", bucket, key, err)
	}
	return out.Body, nil
}

// s3Sink collects the output in memory and uploads it in a single
// PutObject call on Flush. Nothing is uploaded if Flush is never called.
type s3Sink struct {
	ctx    context.Context
	client S3API
	bucket string
	key    string
	logger *slog.Logger

	buf  bytes.Buffer
	done bool
}

func (s *s3Sink) Write(p []byte) (int, error) {
	if s.done {
		return 0, ErrSinkClosed
	}
	return s.buf.Write(p)
}

func (s *s3Sink) Flush() error {
	if s.done {
		return nil
	}
	s.done = true

	_, err := s.client.PutObject(s.ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(s.buf.Bytes()),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("failed to write s3://%s/%s: %w", s.bucket, s.key, err)
	}

	s.logger.Debug("uploaded S3 object",
		slog.String("bucket", s.bucket),
		slog.String("key", s.key),
		slog.Int("bytes", s.buf.Len()))
	return nil
}

func (s *s3Sink) Close() error {
	if !s.done {
		s.logger.Debug("discarding S3 output that was never flushed",
			slog.String("bucket", s.bucket),
			slog.String("key", s.key))
	}
	s.done = true
	s.buf.Reset()
	return nil
}
