package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
)

// MimeTypePNG is the MIME type of every encoded image.
const MimeTypePNG = "image/png"

// ErrEncoding wraps every failure to serialize an image.
var ErrEncoding = errors.New("image encoding failed")

// EncodePNG encodes img losslessly with bild's PNG encoder.
//
// The output depends only on the pixels and the image's color model, so two
// renders of the same request produce identical bytes. An image with an
// empty rectangle cannot be encoded and yields an error wrapping
// ErrEncoding, as does any failure inside the encoder.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return buf.Bytes(), nil
}

// SavePNG writes img to dir/name, creating dir if needed, and returns the
// written path.
func SavePNG(dir, name string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return path, nil
}

// DecodePNG decodes PNG bytes.
func DecodePNG(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// EncodedImage is a PNG ready to be returned to a client.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// NewEncodedImage wraps PNG bytes of a width x height image.
func NewEncodedImage(data []byte, width, height int) *EncodedImage {
	return &EncodedImage{
		Width:       width,
		Height:      height,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    MimeTypePNG,
	}
}
