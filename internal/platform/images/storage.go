// Package images stores ad images on the local filesystem. Uploads are
// validated for type and size, renamed to collision-free names and served
// back under a public path prefix; the rest of the system passes image paths
// around as plain strings.
package images

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidImage is returned when an upload is not a jpg/jpeg/png image.
var ErrInvalidImage = errors.New("file is not a valid image, please use jpg/jpeg/png formats only")

// ErrImageTooLarge is returned when an upload exceeds the configured size cap.
var ErrImageTooLarge = errors.New("image is too large, please upload a smaller image")

var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

// Storage saves and deletes ad images under a single directory.
type Storage struct {
	dir          string
	publicPrefix string
	maxSize      int64
	logger       *slog.Logger
}

// NewStorage creates a Storage rooted at dir. Saved images are addressed as
// publicPrefix + filename; uploads larger than maxSize bytes are rejected.
func NewStorage(dir, publicPrefix string, maxSize int64, log *slog.Logger) *Storage {
	if log == nil {
		log = slog.Default()
	}
	return &Storage{
		dir:          dir,
		publicPrefix: publicPrefix,
		maxSize:      maxSize,
		logger:       log.With(slog.String("component", "image_storage")),
	}
}

// Save validates and stores one uploaded image and returns its public path.
// A nil reader or empty filename means no image was uploaded and yields ""
// without error.
func (s *Storage) Save(r io.Reader, filename string, size int64) (string, error) {
	if r == nil || filename == "" {
		s.logger.Warn("file is empty or no image was uploaded")
		return "", nil
	}
	if size > s.maxSize {
		return "", ErrImageTooLarge
	}

	// Sniff the content type from the first bytes rather than trusting the
	// client-supplied header.
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	head = head[:n]
	if _, ok := allowedContentTypes[http.DetectContentType(head)]; !ok {
		return "", ErrInvalidImage
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create images directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Error("failed to close image file", slog.String("error", cerr.Error()))
		}
	}()

	if _, err := f.Write(head); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if _, err := io.Copy(f, io.LimitReader(r, s.maxSize)); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	s.logger.Info("image saved", slog.String("file", name))
	return s.publicPrefix + name, nil
}

// Delete removes a stored image by its public path. An empty path or a file
// that is already gone is not an error.
func (s *Storage) Delete(imagePath string) bool {
	if imagePath == "" {
		s.logger.Info("no image path to delete")
		return true
	}

	name := filepath.Base(strings.TrimPrefix(imagePath, s.publicPrefix))
	full := filepath.Join(s.dir, name)

	err := os.Remove(full)
	switch {
	case err == nil:
		s.logger.Info("image deleted", slog.String("file", name))
		return true
	case errors.Is(err, os.ErrNotExist):
		s.logger.Warn("image does not exist", slog.String("file", name))
		return true
	default:
		s.logger.Error("failed to delete image", slog.String("file", name), slog.String("error", err.Error()))
		return false
	}
}
