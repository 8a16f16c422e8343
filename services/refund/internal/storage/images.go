package storage

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MaxFiles    = 3
	MaxFileSize = 5 << 20

	subdir = "refunds"
)

var ErrInvalidImage = errors.New("invalid image")

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// ImageStore keeps refund evidence on local disk under Dir/refunds.
type ImageStore struct {
	Dir string
	// URLPrefix is prepended to stored names in returned paths.
	URLPrefix string
}

func NewImageStore(dir string) *ImageStore {
	return &ImageStore{Dir: dir, URLPrefix: "uploads"}
}

// Validate checks count, size, extension and sniffed content of every file
// without storing anything.
func (s *ImageStore) Validate(files []*multipart.FileHeader) error {
	if len(files) > MaxFiles {
		return fmt.Errorf("%w: at most %d images are allowed", ErrInvalidImage, MaxFiles)
	}
	for _, fh := range files {
		if fh.Size > MaxFileSize {
			return fmt.Errorf("%w: %s is larger than 5MB", ErrInvalidImage, fh.Filename)
		}
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedExt[ext] {
			return fmt.Errorf("%w: only jpg, jpeg and png images are allowed", ErrInvalidImage)
		}
		if err := sniff(fh); err != nil {
			return err
		}
	}
	return nil
}

func sniff(fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return fmt.Errorf("detect content type: %w", err)
	}
	if !mt.Is("image/jpeg") && !mt.Is("image/png") {
		return fmt.Errorf("%w: %s is not a jpeg or png image", ErrInvalidImage, fh.Filename)
	}
	return nil
}

// Save writes files and returns their public paths. On error, files written
// so far are removed.
func (s *ImageStore) Save(files []*multipart.FileHeader) ([]string, error) {
	dir := filepath.Join(s.Dir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		name := fmt.Sprintf("images-%d-%d%s", time.Now().UnixMilli(), rand.IntN(1e9), strings.ToLower(filepath.Ext(fh.Filename)))
		if err := writeFile(filepath.Join(dir, name), fh); err != nil {
			s.Remove(paths)
			return nil, err
		}
		paths = append(paths, path.Join(s.URLPrefix, subdir, name))
	}
	return paths, nil
}

func writeFile(dst string, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return out.Close()
}

// Remove deletes previously saved files by their public paths.
func (s *ImageStore) Remove(paths []string) {
	for _, p := range paths {
		_ = os.Remove(filepath.Join(s.Dir, subdir, path.Base(p)))
	}
}
