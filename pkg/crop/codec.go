package crop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	"image/png"
	"math"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrUnsupportedFormat is returned when asked to encode to an unknown MIME type.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Encoder turns a baked image into file bytes.
type Encoder interface {
	Encode(ctx context.Context, img image.Image, mime string, quality float64) ([]byte, error)
}

// EncoderFunc adapts a function to Encoder.
type EncoderFunc func(ctx context.Context, img image.Image, mime string, quality float64) ([]byte, error)

// Encode implements Encoder.
func (f EncoderFunc) Encode(ctx context.Context, img image.Image, mime string, quality float64) ([]byte, error) {
	return f(ctx, img, mime, quality)
}

// ImageEncoder encodes with the standard PNG and JPEG encoders.
type ImageEncoder struct{}

// Encode implements Encoder. Quality is a 0..1 factor; PNG ignores it.
func (ImageEncoder) Encode(ctx context.Context, img image.Image, mime string, quality float64) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	var err error
	switch mime {
	case MimePNG:
		err = png.Encode(&buf, img)
	case MimeJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality(quality)})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func jpegQuality(q float64) int {
	v := int(math.Round(q * 100))
	switch {
	case v < 1:
		return 1
	case v > 100:
		return 100
	}
	return v
}

// Decode decodes file bytes. The declared content type picks the decoder for
// PNG and JPEG; anything else is sniffed.
func Decode(ctx context.Context, data []byte, contentType string) (image.Image, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var img image.Image
	var err error
	switch contentType {
	case MimePNG:
		img, err = png.Decode(bytes.NewReader(data))
	case MimeJPEG:
		img, err = jpeg.Decode(bytes.NewReader(data))
	default:
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil && (contentType == MimePNG || contentType == MimeJPEG) {
		// Declared types lie; sniff before giving up.
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return img, nil
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
