package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fleet/src/utils"

	"github.com/google/uuid"
)

var allowedUploadExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".pdf": true,
}

type UploadService struct {
	dir string
}

func NewUploadService(dir string) *UploadService {
	return &UploadService{dir: dir}
}

// Save stores r under a random name keeping the extension of filename, and
// returns the public path of the stored file.
func (s *UploadService) Save(r io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedUploadExt[ext] {
		return "", utils.BadRequest(fmt.Sprintf("file type %q is not allowed", ext))
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	out, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		_ = os.Remove(out.Name())
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return "/api/uploads/" + name, nil
}

// Resolve maps a stored file name to its location on disk. Names that would
// escape the upload directory are rejected.
func (s *UploadService) Resolve(name string) (string, error) {
	clean := filepath.Clean("/" + name)
	if clean == "/" || strings.Contains(name, "..") {
		return "", utils.BadRequest("invalid file path")
	}
	path := filepath.Join(s.dir, clean)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", utils.NotFound("file not found")
	}
	return path, nil
}
