package resizer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// JPEGQuality is used for .jpg/.jpeg outputs. Every other format is written
// with its codec defaults. image/jpeg has no Huffman-table optimization
// switch, so JPEG outputs are written at this quality without it.
const JPEGQuality = 90

var (
	ErrEmptyTarget          = errors.New("target size is empty")
	ErrUnsupportedExtension = errors.New("unsupported extension")
)

// decodeImage decodes an in-memory file. The second return value is true
// when the failure means the content is not a usable image of any known
// format (unrecognized, corrupt or truncated).
func decodeImage(data []byte) (image.Image, bool, error) {
	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, isUnrecognized(err), err
	}
	return m, false, nil
}

// isUnrecognized reports whether a decode failure means the content is not a
// usable image. Decoding runs on bytes already in memory whose signature
// matched, so only the codecs' explicit "valid but unsupported feature"
// errors count as processing errors.
func isUnrecognized(err error) bool {
	var (
		pngErr  png.UnsupportedError
		jpegErr jpeg.UnsupportedError
		tiffErr tiff.UnsupportedError
	)
	if errors.As(err, &pngErr) || errors.As(err, &jpegErr) || errors.As(err, &tiffErr) {
		return false
	}
	return true
}

// resample scales m to exactly w x h with a Lanczos-3 filter.
func resample(m image.Image, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyTarget, w, h)
	}
	return resize.Resize(uint(w), uint(h), m, resize.Lanczos3), nil
}

// encodeImage writes m in the format named by ext (any case).
func encodeImage(w io.Writer, m image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, m, &jpeg.Options{Quality: JPEGQuality})
	case ".png":
		return png.Encode(w, m)
	case ".gif":
		return gif.Encode(w, m, nil)
	case ".bmp":
		return bmp.Encode(w, m)
	case ".tiff":
		return tiff.Encode(w, m, nil)
	case ".webp":
		return webp.Encode(w, m, nil)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedExtension, ext)
	}
}
