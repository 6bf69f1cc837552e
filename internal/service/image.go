package service

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"screen_navigator/internal/domain/models"

	"github.com/nfnt/resize"
)

// maxDecodePixels bounds the images downscale will decode. Compressed data
// can declare dimensions far larger than its size, and decoding allocates
// width*height*4 bytes or more.
const maxDecodePixels = 50_000_000

// downscale shrinks PNG and JPEG screenshots whose longer side exceeds
// maxDimension, keeping the aspect ratio. Anything it cannot decode (webp,
// corrupt data), that already fits or that is too large to decode safely is
// returned untouched.
func downscale(a *models.Artifact, maxDimension uint) (*models.Artifact, bool) {
	if maxDimension == 0 {
		return a, false
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(a.Data))
	if err != nil || (format != "png" && format != "jpeg") {
		return a, false
	}
	if uint(cfg.Width) <= maxDimension && uint(cfg.Height) <= maxDimension {
		return a, false
	}
	if exceedsDecodeLimit(cfg) {
		return a, false
	}

	img, _, err := image.Decode(bytes.NewReader(a.Data))
	if err != nil {
		return a, false
	}

	var w, h uint
	if cfg.Width >= cfg.Height {
		w = maxDimension
	} else {
		h = maxDimension
	}
	scaled := resize.Resize(w, h, img, resize.Lanczos3)

	var buf bytes.Buffer
	mimeType := "image/png"
	if format == "jpeg" {
		mimeType = "image/jpeg"
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 90})
	} else {
		err = png.Encode(&buf, scaled)
	}
	if err != nil {
		return a, false
	}

	out := *a
	out.Data = buf.Bytes()
	out.MimeType = mimeType
	return &out, true
}

func exceedsDecodeLimit(cfg image.Config) bool {
	return int64(cfg.Width)*int64(cfg.Height) > maxDecodePixels
}
