package uploader

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wordsteps/authoring-service/internal/editor"
	"github.com/wordsteps/authoring-service/internal/models"
)

// LocalUploader writes media blobs under a local directory. Development
// fallback when no object storage is configured.
type LocalUploader struct {
	root   string
	logger *slog.Logger
}

func NewLocalUploader(root string, logger *slog.Logger) *LocalUploader {
	return &LocalUploader{root: root, logger: logger}
}

func (u *LocalUploader) Upload(ctx context.Context, file editor.File, kind models.MediaKind, progress func(int)) (string, error) {
	name := objectName(file.Name, kind)
	dst := filepath.Join(u.root, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, wrapProgress(file, progress)); err != nil {
		u.logger.Error("local upload failed", "path", dst, "error", err)
		return "", err
	}

	u.logger.Info("stored media file locally", "path", dst, "kind", kind)
	return "/" + name, nil
}
