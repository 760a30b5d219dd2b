package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/clientwatch-team/clientwatch/pkg/config"
)

// WebhookArchive stores raw webhook payloads in object storage so ingest
// decisions can be replayed and audited after the fact.
type WebhookArchive struct {
	client *minio.Client
	bucket string
}

// NewWebhookArchive creates the archive and ensures its bucket exists
func NewWebhookArchive(cfg *config.StorageConfig) (*WebhookArchive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	archive := &WebhookArchive{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	if err := archive.ensureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return archive, nil
}

func (a *WebhookArchive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Store writes one raw webhook payload. Objects are keyed by receive time and
// the source meeting id so replays sort chronologically.
func (a *WebhookArchive) Store(ctx context.Context, meetingID string, payload []byte) (string, error) {
	objectName := fmt.Sprintf("fathom/%s/%s.json", time.Now().UTC().Format("2006/01/02"), meetingID)

	_, err := a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive payload: %w", err)
	}

	return objectName, nil
}

// List returns archived object keys under a prefix
func (a *WebhookArchive) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	objectCh := a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", object.Err)
		}
		keys = append(keys, object.Key)
	}

	return keys, nil
}
