package probe

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG header decoder
	_ "image/png"  // register PNG header decoder
	"os"

	_ "golang.org/x/image/webp" // register WebP header decoder
)

// ImageInfo holds header-level metadata for one image file.
type ImageInfo struct {
	Format string // Decoder name: "png", "jpeg" or "webp".
	Width  int
	Height int
	Size   int64 // Bytes on disk.
}

// Megapixels returns the pixel count in millions, 0 when unknown.
func (i *ImageInfo) Megapixels() float64 {
	if i.Width <= 0 || i.Height <= 0 {
		return 0
	}
	return float64(i.Width) * float64(i.Height) / 1e6
}

// Probe opens path and decodes only the image header.
func Probe(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}
	return &ImageInfo{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   fi.Size(),
	}, nil
}
