package uploader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"

	"github.com/wordsteps/authoring-service/internal/editor"
	"github.com/wordsteps/authoring-service/internal/models"
)

// MinioUploader stores media blobs in an object-storage bucket and returns
// the bucket-relative URL that gets written into the content record.
type MinioUploader struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

func NewMinioUploader(client *minio.Client, bucket string, logger *slog.Logger) *MinioUploader {
	return &MinioUploader{client: client, bucket: bucket, logger: logger}
}

// Upload puts the blob into the bucket. Per the collaborator contract the
// editing layer treats an error as silent failure; logging here is the
// user-visible surfacing of that failure.
func (u *MinioUploader) Upload(ctx context.Context, file editor.File, kind models.MediaKind, progress func(int)) (string, error) {
	name := objectName(file.Name, kind)

	_, err := u.client.PutObject(ctx, u.bucket, name, wrapProgress(file, progress), file.Size, minio.PutObjectOptions{
		ContentType: file.ContentType,
	})
	if err != nil {
		u.logger.Error("object storage upload failed",
			"bucket", u.bucket, "object", name, "kind", kind, "error", err)
		return "", fmt.Errorf("put object %s: %w", name, err)
	}

	u.logger.Info("uploaded media object", "bucket", u.bucket, "object", name, "kind", kind, "size", file.Size)
	return "/" + name, nil
}
