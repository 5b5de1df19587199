package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrFileTooLarge     = errors.New("file too large")
	ErrEmptyFile        = errors.New("empty file")
)

// allowedImageTypes maps accepted MIME types to the extension files are
// stored with.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// MediaStorage stores uploaded images and resolves their public URLs.
type MediaStorage interface {
	SaveImage(ctx context.Context, subDir string, r io.Reader) (string, error)
	Delete(ctx context.Context, relPath string) error
	URL(relPath string) string
}

// LocalStorage keeps uploads under a root directory on disk. Returned paths
// are relative to the root and use forward slashes, e.g. "doctors/<uuid>.jpg".
type LocalStorage struct {
	root     string
	baseURL  string
	maxBytes int64
	log      *logrus.Logger
}

func NewLocalStorage(root, baseURL string, maxBytes int64, log *logrus.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %s: %w", root, err)
	}
	return &LocalStorage{
		root:     root,
		baseURL:  baseURL,
		maxBytes: maxBytes,
		log:      log,
	}, nil
}

// Root is the directory uploads are written to.
func (s *LocalStorage) Root() string {
	return s.root
}

// SaveImage sniffs the content, rejects anything that is not an allowed
// image or exceeds the size limit, and writes it under subDir with a random
// name.
func (s *LocalStorage) SaveImage(ctx context.Context, subDir string, r io.Reader) (string, error) {
	limit := s.maxBytes
	if limit <= 0 {
		limit = 5 << 20
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(data)) > limit {
		return "", ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	ext, ok := allowedImageTypes[mtype.String()]
	if !ok {
		s.log.Warnf("Rejected upload with media type %s", mtype.String())
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, mtype.String())
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, filepath.FromSlash(subDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media subdirectory: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, bytes.NewReader(data)); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return path.Join(subDir, name), nil
}

// Delete removes a previously saved file. Missing files are not an error.
func (s *LocalStorage) Delete(ctx context.Context, relPath string) error {
	if relPath == "" {
		return nil
	}
	clean := path.Clean("/" + relPath)
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete media file: %w", err)
	}
	return nil
}

func (s *LocalStorage) URL(relPath string) string {
	return strings.TrimRight(s.baseURL, "/") + "/" + strings.TrimLeft(relPath, "/")
}
