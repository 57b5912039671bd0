package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"travelbook/internal/config"
)

type Storage interface {
	UploadImage(ctx context.Context, folder, fileName, contentType string, file io.Reader, size int64) (string, string, error)
	DeleteImage(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
	log       *logrus.Logger
}

func NewMinIOClient(ctx context.Context, cfg config.MinIO, log *logrus.Logger) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	m := &MinIOClient{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: PublicBaseURL(cfg),
		log:       log,
	}

	if err := m.EnsureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}

	return m, nil
}

// PublicBaseURL is MINIO_PUBLIC_URL, or the endpoint when it is not set.
func PublicBaseURL(cfg config.MinIO) string {
	if cfg.PublicURL != "" {
		return strings.TrimSuffix(cfg.PublicURL, "/")
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + cfg.Endpoint
}

// ObjectName builds "folder/uuid.ext" for an uploaded file.
func ObjectName(folder, fileName, contentType string) string {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			fileExt = exts[0]
		} else {
			fileExt = ".jpg"
		}
	}

	return fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.New().String(), fileExt)
}

func (m *MinIOClient) EnsureBucket(ctx context.Context, region string) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", m.bucket, err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %q: %w", m.bucket, err)
	}

	m.log.WithField("bucket", m.bucket).Info("created MinIO bucket")
	return nil
}

// UploadImage stores the file and returns its object name and public URL.
func (m *MinIOClient) UploadImage(ctx context.Context, folder, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	objectName := ObjectName(folder, fileName, contentType)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"uploaded-at":       time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	imageURL := fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, objectName)

	m.log.WithFields(logrus.Fields{"object": objectName, "size": size}).Debug("image uploaded")
	return objectName, imageURL, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return fmt.Errorf("failed to delete from MinIO: %w", err)
	}
	return nil
}
