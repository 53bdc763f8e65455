package audio

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"whisper-sync/internal/app/errors"
)

// MinioConfig configures the object-storage media backend.
type MinioConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	AccessKey string        `yaml:"access_key"`
	SecretKey string        `yaml:"secret_key"`
	Bucket    string        `yaml:"bucket"`
	UseSSL    bool          `yaml:"use_ssl"`
	URLExpiry time.Duration `yaml:"url_expiry"`
}

// MinioStore uploads each source as an object and hands out presigned GET URLs.
type MinioStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
	logger *zap.Logger

	mu   sync.Mutex
	keys map[string]string // url -> object key
}

// NewMinioStore connects to MinIO and makes sure the bucket exists.
func NewMinioStore(ctx context.Context, cfg MinioConfig, logger *zap.Logger) (*MinioStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Bucket == "" {
		cfg.Bucket = "wsync-media"
	}
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = time.Hour
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MinIO client")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check bucket existence")
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, "failed to create bucket")
		}
	}

	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		expiry: cfg.URLExpiry,
		logger: logger,
		keys:   make(map[string]string),
	}, nil
}

func (s *MinioStore) Acquire(ctx context.Context, src *Source) (string, error) {
	if src.Empty() {
		return "", errors.ErrMissingAudio
	}
	rc, err := src.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	key := objectKey(src)
	_, err = s.client.PutObject(ctx, s.bucket, key, rc, src.Size, minio.PutObjectOptions{
		ContentType: src.MIMEType,
		UserMetadata: map[string]string{
			"original-name": src.Name,
			"uploaded-at":   time.Now().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to upload audio to MinIO")
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, url.Values{})
	if err != nil {
		return "", errors.Wrap(err, "failed to presign audio URL")
	}

	u := presigned.String()
	s.mu.Lock()
	s.keys[u] = key
	s.mu.Unlock()

	s.logger.Debug("audio uploaded", zap.String("key", key), zap.Int64("size", src.Size))
	return u, nil
}

func (s *MinioStore) Release(ctx context.Context, u string) error {
	s.mu.Lock()
	key, ok := s.keys[u]
	delete(s.keys, u)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, "failed to remove %s", key)
	}
	return nil
}

func objectKey(src *Source) string {
	return fmt.Sprintf("audio/%s%s", src.ID, filepath.Ext(src.Name))
}
