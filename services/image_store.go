package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	maxImageWidth = 1600
	jpegQuality   = 80
)

var ErrInvalidImage = errors.New("invalid image data")

// ImageStore keeps uploaded invoice images as files; rows store the relative path.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

func (s *ImageStore) Dir() string {
	return s.dir
}

// IsDataURL reports whether v is an inline base64 image.
func IsDataURL(v string) bool {
	return strings.HasPrefix(v, "data:image/")
}

// SaveDataURL decodes a data:image/...;base64 URL, shrinks it to at most
// maxImageWidth wide, and writes it as JPEG. It returns the file name.
func (s *ImageStore) SaveDataURL(dataURL string) (string, error) {
	comma := strings.Index(dataURL, ",")
	if !IsDataURL(dataURL) || comma < 0 || !strings.Contains(dataURL[:comma], ";base64") {
		return "", ErrInvalidImage
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[comma+1:])
	if err != nil {
		return "", ErrInvalidImage
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrInvalidImage
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	name := uuid.NewString() + ".jpg"
	if err := imaging.Save(img, filepath.Join(s.dir, name), imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return name, nil
}

// Remove deletes a stored file. Missing files are ignored.
func (s *ImageStore) Remove(name string) error {
	if name == "" || IsDataURL(name) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
