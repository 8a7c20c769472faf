// Package uploader provides the concrete upload collaborators behind the
// media fields: an object-storage provider backed by MinIO and a local
// filesystem provider for development. Both satisfy editor.Uploader.
package uploader

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wordsteps/authoring-service/internal/editor"
	"github.com/wordsteps/authoring-service/internal/models"
)

// objectName builds a collision-free storage key under the per-kind uploads
// prefix, keeping the original extension for content-type sniffing.
func objectName(filename string, kind models.MediaKind) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("uploads/%s/%d-%s%s", kind, time.Now().Unix(), uuid.NewString()[:8], ext)
}

// progressReader reports read progress as a 0..100 percentage.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	progress func(int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.progress != nil && p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		p.progress(pct)
	}
	return n, err
}

func wrapProgress(file editor.File, progress func(int)) io.Reader {
	if progress == nil {
		return file.Reader
	}
	return &progressReader{r: file.Reader, total: file.Size, progress: progress}
}
