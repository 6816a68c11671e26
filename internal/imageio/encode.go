// Package imageio reads and writes rendered frames.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// ErrUnknownFormat reports an output format or file extension that has no
// encoder.
var ErrUnknownFormat = errors.New("unknown image format")

// Formats lists the supported output formats.
var Formats = []string{"webp", "png", "tga"}

// Encode writes img to w in the named format: "webp" (lossless), "png" or
// "tga".
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch strings.ToLower(format) {
	case "webp":
		err = nativewebp.Encode(w, img, nil)
	case "png":
		err = png.Encode(w, img)
	case "tga":
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("imageio: %q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return fmt.Errorf("imageio: %s encode: %w", format, err)
	}
	return nil
}

// FormatOf returns the output format implied by path's extension.
func FormatOf(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, f := range Formats {
		if ext == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("imageio: extension %q: %w", ext, ErrUnknownFormat)
}

// Save encodes img to path, creating parent directories. The format follows
// the file extension.
func Save(path string, img image.Image) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("imageio: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: %w", err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
