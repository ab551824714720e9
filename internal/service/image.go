package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxImageDimension bounds both sides of the image sent for analysis.
const MaxImageDimension = 512

// MaxImagePixels bounds the canvas an upload may declare. Larger images
// are rejected before their pixels are decoded.
const MaxImagePixels = 40_000_000

const jpegQuality = 92

// PrepareImage checks that data is an image, scales it to fit within
// MaxImageDimension keeping its aspect ratio, re-encodes it as JPEG and
// returns it base64 encoded. Any failure wraps ErrInvalidImage.
func PrepareImage(data []byte) (string, error) {
	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("%w: content type %s", ErrInvalidImage, ct)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidImage, cfg.Width, cfg.Height, MaxImagePixels)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	w, h := fitWithin(src.Bounds().Dx(), src.Bounds().Dy(), MaxImageDimension)
	if w == 0 || h == 0 {
		return "", fmt.Errorf("%w: empty image", ErrInvalidImage)
	}

	// JPEG has no alpha; flatten onto white.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// fitWithin scales w×h so the longer side is at most limit. Images already
// within the limit keep their size.
func fitWithin(w, h, limit int) (int, int) {
	switch {
	case w > h && w > limit:
		h = max(1, (h*limit+w/2)/w)
		w = limit
	case w <= h && h > limit:
		w = max(1, (w*limit+h/2)/h)
		h = limit
	}
	return w, h
}
