// Package minio archives raw discharge-note text in S3-compatible object
// storage.  The archive is write-mostly: notes land here once at submission
// and are read back only for audits and reprocessing.
package minio

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/CarePath-Insight/internal/config"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CarePath-Insight/pkg/errors"
	"github.com/turtacn/CarePath-Insight/pkg/types/common"
)

const noteContentType = "text/plain; charset=utf-8"

// NoteStore implements the analysis-service blob-store port over MinIO.
type NoteStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
	logger logging.Logger
}

// NewNoteStore connects to MinIO and ensures the configured bucket exists.
func NewNoteStore(cfg config.MinIOConfig, logger logging.Logger) (*NoteStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "create minio client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "check bucket")
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeExternalService, "create bucket")
		}
	}

	logger.Info("connected to MinIO",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket),
	)
	return &NoteStore{
		client: client,
		bucket: cfg.Bucket,
		expiry: cfg.PresignExpiry,
		logger: logger.Named("minio"),
	}, nil
}

// PutNote archives raw note text under the note ID.
func (s *NoteStore) PutNote(ctx context.Context, id common.ID, rawText string) error {
	payload := []byte(rawText)
	_, err := s.client.PutObject(ctx, s.bucket, objectKey(id),
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: noteContentType})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeNoteStoreFailed, "archive note")
	}
	return nil
}

// GetNote reads an archived note back.
func (s *NoteStore) GetNote(ctx context.Context, id common.ID) (string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectKey(id), minio.GetObjectOptions{})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeNoteFetchFailed, "open archived note")
	}
	defer obj.Close()

	payload, err := io.ReadAll(obj)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeNoteFetchFailed, "read archived note")
	}
	return string(payload), nil
}

// DeleteNote removes an archived note.
func (s *NoteStore) DeleteNote(ctx context.Context, id common.ID) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectKey(id), minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeExternalService, "delete archived note")
	}
	return nil
}

// PresignNote returns a time-limited download URL for an archived note.
func (s *NoteStore) PresignNote(ctx context.Context, id common.ID) (*url.URL, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey(id), s.expiry, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "presign archived note")
	}
	return u, nil
}

func objectKey(id common.ID) string {
	return "notes/" + string(id) + ".txt"
}
