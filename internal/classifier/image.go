package classifier

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultMaxImagePixels caps width*height of an upload before full decode.
const DefaultMaxImagePixels = 40_000_000

var (
	// ErrUndecodableImage is returned when uploaded bytes are not a supported image.
	ErrUndecodableImage = errors.New("undecodable image data")
	// ErrImageTooLarge is returned when the declared dimensions exceed the pixel limit.
	ErrImageTooLarge = errors.New("image dimensions too large")
)

// DecodeImage decodes JPEG, PNG, GIF, BMP or WEBP data, applying EXIF orientation.
// The header is checked first; images with more than maxPixels pixels are
// refused without allocating a frame. maxPixels <= 0 selects DefaultMaxImagePixels.
func DecodeImage(r io.Reader, maxPixels int) (image.Image, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxImagePixels
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUndecodableImage)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, maxPixels)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUndecodableImage)
	}
	return img, nil
}

// Preprocess center-crops img to a square, resizes it to size x size and
// returns a normalized NCHW float32 buffer (batch of one, RGB).
func Preprocess(img image.Image, size int, mean, std [3]float32) []float32 {
	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	square := imaging.CropCenter(img, side, side)
	resized := resize.Resize(uint(size), uint(size), square, resize.Bilinear)

	plane := size * size
	out := make([]float32, 3*plane)
	rb := resized.Bounds()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, bl, _ := resized.At(rb.Min.X+x, rb.Min.Y+y).RGBA()
			i := y*size + x
			out[i] = (float32(r)/65535 - mean[0]) / std[0]
			out[plane+i] = (float32(g)/65535 - mean[1]) / std[1]
			out[2*plane+i] = (float32(bl)/65535 - mean[2]) / std[2]
		}
	}
	return out
}
