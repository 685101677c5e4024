package endpoint

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config selects the S3 service used for s3:// names. The zero value
// means AWS S3 with the default credential chain and system CAs.
type S3Config struct {
	// Endpoint is the base URL of an S3-compatible service such as MinIO.
	// Empty uses AWS.
	Endpoint string

	// Region overrides the region from the AWS configuration.
	Region string

	// PathStyle addresses objects as endpoint/bucket/key instead of
	// bucket.endpoint/key.
	PathStyle bool

	// CACertFile is a PEM file of CA certificates trusted for the endpoint.
	// Empty uses the system pool.
	CACertFile string

	// Insecure disables TLS certificate verification and permits
	// http:// endpoints.
	// NOT RECOMMENDED FOR PRODUCTION USE.
	Insecure bool
}

// DefaultTimeout bounds a single S3 request.
const DefaultTimeout = 5 * time.Minute

// WithS3Config sets how the S3 client is built when no client was given
// with WithS3Client.
func WithS3Config(cfg S3Config) Option {
	return func(o *options) {
		o.s3Config = cfg
	}
}

// ValidateEndpoint rejects plain http:// endpoints unless Insecure is set.
func (c S3Config) ValidateEndpoint() error {
	if strings.HasPrefix(c.Endpoint, "http://") && !c.Insecure {
		return fmt.Errorf("S3 endpoint %q uses insecure http:// protocol; use https:// or enable insecure mode", c.Endpoint)
	}
	return nil
}

// HTTPClient builds the HTTP client used for S3 requests.
//
// The client is an SDK BuildableClient so that an AWS_CA_BUNDLE or
// ca_bundle setting can still add its roots to the transport. Such a
// bundle replaces the roots from CACertFile.
func (c S3Config) HTTPClient() (*awshttp.BuildableClient, error) {
	var roots *x509.CertPool
	if c.CACertFile != "" {
		pem, err := os.ReadFile(c.CACertFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate file %q: %w", c.CACertFile, err)
		}

		roots = x509.NewCertPool()
		if !roots.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("failed to parse CA certificate file %q: no valid certificates found", c.CACertFile)
		}
	}

	return awshttp.NewBuildableClient().
		WithTimeout(DefaultTimeout).
		WithTransportOptions(func(tr *http.Transport) {
			if tr.TLSClientConfig == nil {
				tr.TLSClientConfig = &tls.Config{}
			}
			if c.Insecure {
				tr.TLSClientConfig.InsecureSkipVerify = true
			}
			if roots != nil {
				tr.TLSClientConfig.RootCAs = roots
			}
		}), nil
}

// NewS3Client builds an S3 client from the default AWS configuration
// adjusted by c.
func NewS3Client(ctx context.Context, c S3Config) (*s3.Client, error) {
	if err := c.ValidateEndpoint(); err != nil {
		return nil, err
	}

	httpClient, err := c.HTTPClient()
	if err != nil {
		return nil, err
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithHTTPClient(httpClient),
	}
	if c.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(c.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = c.PathStyle
	}), nil
}
