package imageio

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var extensions = map[string]string{
	".png":  "png",
	".webp": "webp",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

// FormatFromPath maps an output file extension to an encoder name.
func FormatFromPath(path string) (string, bool) {
	format, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return format, ok
}

// Extension is the canonical file extension for an encoder name.
func Extension(format string) string {
	if format == "tiff" {
		return ".tiff"
	}
	return "." + format
}

func Encode(w io.Writer, f Frame, format string) error {
	if len(f.Pix) != f.Width*f.Height*4 {
		return fmt.Errorf("imageio: frame holds %d bytes, %dx%d needs %d",
			len(f.Pix), f.Width, f.Height, f.Width*f.Height*4)
	}

	img := f.Image()
	switch format {
	case "png":
		return png.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("imageio: unsupported output format %q", format)
	}
}

// Save writes f to path. The file is removed again if encoding fails.
func Save(path string, f Frame, format string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("imageio: %w", err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}

	if err := Encode(out, f, format); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("imageio: close %s: %w", path, err)
	}
	return nil
}
