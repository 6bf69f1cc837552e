package service

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"screen_navigator/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

func TestDownscale(t *testing.T) {
	small := &models.Artifact{Name: "small.png", Data: encodeTestPNG(t, 50, 80)}
	out, scaled := downscale(small, 100)
	assert.False(t, scaled)
	assert.Same(t, small, out)

	tall := &models.Artifact{Name: "tall.png", Data: encodeTestPNG(t, 60, 300)}
	out, scaled = downscale(tall, 150)
	require.True(t, scaled)
	w, h := pngSize(t, out.Data)
	assert.Equal(t, 30, w)
	assert.Equal(t, 150, h)
	assert.Equal(t, "image/png", out.MimeType)
	assert.NotSame(t, tall, out)

	notImage := &models.Artifact{Name: "x.webp", Data: []byte("RIFF....WEBP")}
	out, scaled = downscale(notImage, 10)
	assert.False(t, scaled)
	assert.Same(t, notImage, out)

	out, scaled = downscale(tall, 0)
	assert.False(t, scaled)
	assert.Same(t, tall, out)
}

// pngHeader returns a PNG holding only the signature and an IHDR chunk for
// an 8-bit RGBA image of the given size.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	chunk := make([]byte, 0, 17)
	chunk = append(chunk, "IHDR"...)
	chunk = binary.BigEndian.AppendUint32(chunk, w)
	chunk = binary.BigEndian.AppendUint32(chunk, h)
	chunk = append(chunk, 8, 6, 0, 0, 0)

	binary.Write(&buf, binary.BigEndian, uint32(len(chunk)-4))
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDownscaleSkipsOversizedImages(t *testing.T) {
	data := pngHeader(20000, 20000)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 20000, cfg.Width)

	huge := &models.Artifact{Name: "huge.png", Data: data}
	out, scaled := downscale(huge, 1024)
	assert.False(t, scaled)
	assert.Same(t, huge, out)
}

func TestExceedsDecodeLimit(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{w: 1920, h: 1080, want: false},
		{w: 5000, h: 10000, want: false},
		{w: 8000, h: 8000, want: true},
		{w: 65535, h: 65535, want: true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exceedsDecodeLimit(image.Config{Width: tt.w, Height: tt.h}))
	}
}
