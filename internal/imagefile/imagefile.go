// Package imagefile reads source images and writes converted text files.
package imagefile

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/renameio/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidImageFormat = errors.New("invalid image format")
	ErrDecodeFailure      = errors.New("failed to decode image")
	ErrWriteFailure       = errors.New("failed to write output")
)

// Formats lists the accepted image formats as reported by image.Decode.
var Formats = []string{"png", "jpeg", "bmp", "gif", "tiff", "webp"}

// Extensions lists the file extensions offered when browsing for an image.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tiff", ".webp"}

// Validate checks that path holds an image in one of the accepted formats by
// reading its header. The extension is not consulted.
func Validate(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidImageFormat, err)
	}
	if fi.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrInvalidImageFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidImageFormat, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidImageFormat, err)
	}
	if !slices.Contains(Formats, format) {
		return "", fmt.Errorf("%w: unsupported format %s", ErrInvalidImageFormat, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", fmt.Errorf("%w: empty image (%dx%d)", ErrInvalidImageFormat, cfg.Width, cfg.Height)
	}
	return format, nil
}

func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	return img, nil
}

// OutputPath returns <dir>/<stem>_ASCII.txt for the source image src.
func OutputPath(src, dir string) string {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+"_ASCII.txt")
}

// WriteText writes text to path atomically, so path either gets the full text
// or is left alone.
func WriteText(path, text string) error {
	if err := renameio.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	return nil
}
