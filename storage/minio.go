package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"musicapp/config"
	"musicapp/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// audioPrefix is the key prefix of audio objects inside the bucket.
const audioPrefix = "audio/"

// MinioStore keeps audio files in a MinIO (or S3 compatible) bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore 初始化 MinIO 客户端, creating the bucket when it does not exist yet.
func NewMinioStore(ctx context.Context, cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
		logger.Info("Created MinIO bucket", logger.String("bucket", cfg.MinioBucket))
	}

	return &MinioStore{client: client, bucket: cfg.MinioBucket}, nil
}

func (s *MinioStore) Open(ctx context.Context, name string) (io.ReadCloser, *ObjectInfo, error) {
	if !validName(name) {
		return nil, nil, ErrObjectNotFound
	}

	// GetObject is lazy; Stat performs the request and surfaces NoSuchKey.
	obj, err := s.client.GetObject(ctx, s.bucket, audioPrefix+name, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get object %s: %w", name, err)
	}
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil, ErrObjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to stat object %s: %w", name, err)
	}

	contentType := st.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = ContentType(name)
	}
	return obj, &ObjectInfo{Name: name, Size: st.Size, ContentType: contentType}, nil
}

func (s *MinioStore) Put(ctx context.Context, name string, r io.Reader, size int64) error {
	if !validName(name) {
		return fmt.Errorf("invalid audio file name %q", name)
	}
	_, err := s.client.PutObject(ctx, s.bucket, audioPrefix+name, r, size, minio.PutObjectOptions{
		ContentType: ContentType(name),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}

func (s *MinioStore) List(ctx context.Context) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    audioPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, audioPrefix)
		objects = append(objects, ObjectInfo{Name: name, Size: obj.Size, ContentType: ContentType(name)})
	}
	return objects, nil
}
