package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"hireboard/internal/domain"

	"github.com/google/uuid"
)

type documentStore interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (url, thumbnailURL string, err error)
	UploadDocument(ctx context.Context, file io.Reader, folder, publicID string) (url string, err error)
	DeleteByURL(ctx context.Context, url string) error
}

// Upload is a file received from a multipart form.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

const (
	maxImageSize    = 5 << 20
	maxDocumentSize = 10 << 20
)

var (
	imageExts    = []string{".jpg", ".jpeg", ".png", ".webp"}
	documentExts = []string{".pdf", ".doc", ".docx"}
)

func checkUpload(f Upload, exts []string, maxSize int64) (string, error) {
	ext := strings.ToLower(path.Ext(f.Filename))
	ok := false
	for _, e := range exts {
		if e == ext {
			ok = true
			break
		}
	}
	if !ok {
		return "", domain.Validation("file type %q is not allowed", ext)
	}
	if f.Size > maxSize {
		return "", domain.Validation("file must be at most %d MB", maxSize>>20)
	}
	return ext, nil
}

// uploadFolder is <root>/<kind>/<ownerID>.
func uploadFolder(root, kind string, ownerID uint) string {
	return fmt.Sprintf("%s/%s/%d", root, kind, ownerID)
}

func newPublicID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
}
