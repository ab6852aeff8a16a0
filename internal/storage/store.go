// Package storage keeps uploaded staff and service pictures, either on local
// disk or in an S3 bucket.
package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
)

const contentTypeWebP = "image/webp"

// Store writes an object and returns the URL clients should use to fetch it.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ======================================================
// Local disk
// ======================================================

type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore stores files under dir; they are expected to be served at
// baseURL.
func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	full := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", errors.Wrap(err, "create upload dir")
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", errors.Wrap(err, "write upload")
	}
	return s.baseURL + "/" + key, nil
}

// ======================================================
// S3
// ======================================================

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	client    objectPutter
	bucket    string
	publicURL string
}

func NewS3Store(cfg config.S3Config) *S3Store {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		)
	}
	if cfg.Endpoint != "" {
		// S3-compatible stores (MinIO, R2) want path-style addressing
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = "https://" + cfg.Bucket + ".s3." + cfg.Region + ".amazonaws.com"
	}

	return &S3Store{
		client:    s3.New(opts),
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}
}

func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrap(err, "put object")
	}
	return s.publicURL + "/" + key, nil
}

// ======================================================
// Uploader
// ======================================================

// Uploader normalises pictures and hands them to a Store.
type Uploader struct {
	store Store
}

func NewUploader(store Store) *Uploader {
	return &Uploader{store: store}
}

// FromConfig picks S3 when a bucket is configured, local disk otherwise.
func FromConfig(cfg *config.Config) *Uploader {
	if cfg.S3.Enabled() {
		return NewUploader(NewS3Store(cfg.S3))
	}
	return NewUploader(NewLocalStore(cfg.UploadDir, cfg.UploadBaseURL))
}

// Upload stores the picture under folder and returns its URL.
func (u *Uploader) Upload(ctx context.Context, folder string, r io.Reader) (string, error) {
	data, err := NormalizeImage(r)
	if err != nil {
		return "", err
	}
	key := path.Join(folder, uuid.NewString()+".webp")
	return u.store.Put(ctx, key, data, contentTypeWebP)
}

var (
	_ Store = (*LocalStore)(nil)
	_ Store = (*S3Store)(nil)
)
