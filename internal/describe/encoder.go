package describe

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
)

// EncodedImage is an image payload tagged with its media type, ready to
// be sent to the description service.
type EncodedImage struct {
	MediaType string // e.g. "image/png"
	Data      []byte
}

// DataURL returns the payload as a base64 data URL.
func (e EncodedImage) DataURL() string {
	return "data:" + e.MediaType + ";base64," + base64.StdEncoding.EncodeToString(e.Data)
}

// MediaType derives the media type from path's extension, case-insensitive.
// "jpg" is normalized to "image/jpeg"; other extensions pass through.
func MediaType(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "jpg" {
		ext = "jpeg"
	}
	return "image/" + ext
}

// Encode reads the whole file at path. Any failure to read it in full is
// returned as a *ReadError.
func Encode(path string) (EncodedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EncodedImage{}, &ReadError{Path: path, Err: err}
	}
	return EncodedImage{MediaType: MediaType(path), Data: data}, nil
}
