package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Processor resizes uploaded photos before they hit storage.
type Processor struct {
	maxWidth int
	quality  int // JPEG quality (1-100)
}

func NewProcessor(maxWidth, quality int) *Processor {
	if maxWidth <= 0 {
		maxWidth = 800
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{
		maxWidth: maxWidth,
		quality:  quality,
	}
}

// Process decodes the image, scales it down to the configured maximum
// width preserving aspect ratio, and re-encodes it. Images already
// narrow enough pass through a re-encode untouched in size.
func (p *Processor) Process(reader io.Reader) (io.Reader, string, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	resized := p.scaleDown(img)

	var buf bytes.Buffer
	switch format {
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, "", fmt.Errorf("failed to encode JPEG: %w", err)
		}
		format = "jpeg"
	case "png":
		if err := png.Encode(&buf, resized); err != nil {
			return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
		}
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}

	return &buf, format, nil
}

func (p *Processor) scaleDown(img image.Image) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= p.maxWidth {
		return img
	}

	newW := p.maxWidth
	newH := h * newW / w
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
