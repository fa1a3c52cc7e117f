// Package storage implements avatar byte storage on a gocloud blob bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"path"
	"strings"

	"passport/config"
	"passport/internal/domain/lifecycle"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Local filesystem bucket driver. S3/GCS drivers drop in by changing the
	// bucket URL scheme and the imported driver.
	_ "gocloud.dev/blob/fileblob"
)

// blobAvatarStorage implements AvatarStorage on top of a gocloud blob bucket.
// The bucket URL decides the backend, so the same code serves local disk in
// development and object storage in production.
type blobAvatarStorage struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewBlobAvatarStorage opens the configured bucket and manages its lifetime
// through the fx lifecycle.
func NewBlobAvatarStorage(params Params) (service.AvatarStorage, error) {
	openCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(openCtx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open avatar bucket %s", params.Config.Storage.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobAvatarStorage{bucket: bucket, logger: params.Logger}, nil
}

// Store writes the uploaded bytes under a key derived from the account id.
// Re-uploading replaces the previous avatar for the same extension.
func (s *blobAvatarStorage) Store(ctx context.Context, userID primitive.ObjectID, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	key := "avatars/" + userID.Hex() + ext

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentTypeForExt(ext),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open avatar writer")
	}

	if _, err := io.Copy(writer, r); err != nil {
		// Closing after a copy failure aborts the write.
		_ = writer.Close()

		return "", errors.Wrap(err, "failed to write avatar bytes")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize avatar write")
	}

	s.logger.Debug("Avatar stored", slog.String("key", key))

	return key, nil
}

func contentTypeForExt(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}

	return "application/octet-stream"
}
