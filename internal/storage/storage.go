package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"litigator/config"
)

// Driver abstracts exhibit file storage.
type Driver interface {
	Save(ctx context.Context, key string, data []byte) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	GetURL(key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewDriver selects a driver from config.
func NewDriver(cfg config.StorageConfig) (Driver, error) {
	switch cfg.Type {
	case "local":
		return newLocalDriver(cfg.Local)
	case "minio":
		return newMinioDriver(cfg.Minio)
	case "oss":
		return newOSSDriver(cfg.OSS)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

type localDriver struct {
	baseDir string
}

func newLocalDriver(cfg config.LocalConfig) (Driver, error) {
	if err := os.MkdirAll(cfg.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &localDriver{baseDir: cfg.BaseDir}, nil
}

func (d *localDriver) Save(ctx context.Context, key string, data []byte) error {
	path := filepath.Join(d.baseDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (d *localDriver) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(d.baseDir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return f, nil
}

func (d *localDriver) GetURL(key string) (string, error) {
	return "file://" + filepath.Join(d.baseDir, key), nil
}

func (d *localDriver) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(d.baseDir, key))
}

type minioDriver struct {
	client *minio.Client
	bucket string
}

func newMinioDriver(cfg config.MinioConfig) (Driver, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.AccessKeySecret, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &minioDriver{client: client, bucket: cfg.Bucket}, nil
}

func (d *minioDriver) Save(ctx context.Context, key string, data []byte) error {
	_, err := d.client.PutObject(ctx, d.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

func (d *minioDriver) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := d.client.GetObject(ctx, d.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return obj, nil
}

func (d *minioDriver) GetURL(key string) (string, error) {
	u, err := d.client.PresignedGetObject(context.Background(), d.bucket, key, 24*time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign object url: %w", err)
	}
	return u.String(), nil
}

func (d *minioDriver) Delete(ctx context.Context, key string) error {
	return d.client.RemoveObject(ctx, d.bucket, key, minio.RemoveObjectOptions{})
}

type ossDriver struct {
	bucket *oss.Bucket
}

func newOSSDriver(cfg config.OSSConfig) (Driver, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create oss client: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to open oss bucket: %w", err)
	}
	return &ossDriver{bucket: bucket}, nil
}

func (d *ossDriver) Save(ctx context.Context, key string, data []byte) error {
	return d.bucket.PutObject(key, bytes.NewReader(data))
}

func (d *ossDriver) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	body, err := d.bucket.GetObject(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return body, nil
}

func (d *ossDriver) GetURL(key string) (string, error) {
	return d.bucket.SignURL(key, oss.HTTPGet, int64((24 * time.Hour).Seconds()))
}

func (d *ossDriver) Delete(ctx context.Context, key string) error {
	return d.bucket.DeleteObject(key)
}
