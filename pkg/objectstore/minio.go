package objectstore

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/onepredict/lges-query-server/pkg/config"
)

// Options configures NewMinio.
type Options struct {
	// Endpoint is a URL such as http://minio:9000
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	// Verify enables TLS certificate verification for https endpoints
	Verify bool
	Bucket string
	// Region skips the bucket location lookup when set
	Region string
}

// OptionsFromSettings maps the object storage settings to Options.
func OptionsFromSettings(cfg *config.Settings) Options {
	return Options{
		Endpoint:        cfg.EndpointURL,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Verify:          cfg.Verify,
		Bucket:          cfg.BucketName,
		Region:          "us-east-1",
	}
}

// Minio is a Store backed by a minio-go client.
type Minio struct {
	client *minio.Client
	bucket string
}

var _ Store = (*Minio)(nil)

// NewMinio creates a client for the bucket named in opts.
func NewMinio(opts Options) (*Minio, error) {
	u, err := url.Parse(opts.Endpoint)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid object storage endpoint %q", opts.Endpoint)
	}
	secure := u.Scheme == "https"

	transport, err := minio.DefaultTransport(secure)
	if err != nil {
		return nil, fmt.Errorf("failed to build transport: %w", err)
	}
	if secure && !opts.Verify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // verify=false is an operator choice
	}

	client, err := minio.New(u.Host, &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure:       secure,
		Transport:    transport,
		Region:       opts.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}
	return &Minio{client: client, bucket: opts.Bucket}, nil
}

// Get implements Store.
func (m *Minio) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, translate(err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translate(err)
	}
	return data, nil
}

// Put implements Store.
func (m *Minio) Put(ctx context.Context, key string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, objectName(key), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/zstd",
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

// Remove implements Store.
func (m *Minio) Remove(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, objectName(key), minio.RemoveObjectOptions{}); err != nil {
		return translate(err)
	}
	return nil
}

// BucketExists reports whether the configured bucket is reachable.
func (m *Minio) BucketExists(ctx context.Context) (bool, error) {
	return m.client.BucketExists(ctx, m.bucket)
}

// objectName drops the leading slash of keys built by Key.
func objectName(key string) string {
	return strings.TrimPrefix(key, "/")
}

func translate(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNoSuchKey
	}
	return err
}
