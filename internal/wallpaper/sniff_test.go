package wallpaper

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// writeImage writes an encoded image into dir and returns its path.
func writeImage(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestSniffDimensions(t *testing.T) {
	// SOI, APP0 of 16 bytes, DHT before the frame, then SOF2
	progressive := []byte{
		0xFF, 0xD8,
		0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0, 1, 1, 0, 0, 1, 0, 1, 0, 0,
		0xFF, 0xC4, 0x00, 0x04, 0x00, 0x00,
		0xFF, 0xFF, // fill
		0xFF, 0xC2, 0x00, 0x11, 0x08, 0x04, 0x38, 0x07, 0x80, 0x03,
	}

	tests := []struct {
		name   string
		data   []byte
		wantW  int
		wantH  int
		wantOK bool
	}{
		{"png", encodePNG(t, 640, 480), 640, 480, true},
		{"png 1x1", encodePNG(t, 1, 1), 1, 1, true},
		{"jpeg", encodeJPEG(t, 320, 200), 320, 200, true},
		{"jpeg skips DHT and fill bytes", progressive, 1920, 1080, true},
		{"truncated png", encodePNG(t, 10, 10)[:20], 0, 0, false},
		{"png without IHDR", append(append([]byte{}, pngMagic...), 0, 0, 0, 13, 'I', 'D', 'A', 'T', 0, 0, 0, 1, 0, 0, 0, 1), 0, 0, false},
		{"jpeg without SOF", []byte{0xFF, 0xD8, 0xFF, 0xD9}, 0, 0, false},
		{"truncated jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, 0, 0, false},
		{"gif", []byte("GIF89a\x10\x00\x10\x00"), 0, 0, false},
		{"empty", nil, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, ok := SniffDimensions(tt.data)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestImageDimensions(t *testing.T) {
	dir := t.TempDir()

	w, h := imageDimensions(writeImage(t, dir, "a.png", encodePNG(t, 300, 100)))
	assert.Equal(t, 300, w)
	assert.Equal(t, 100, h)

	w, h = imageDimensions(writeImage(t, dir, "b.webp", []byte("RIFF....WEBP")))
	assert.Equal(t, FallbackWidth, w)
	assert.Equal(t, FallbackHeight, h)

	w, h = imageDimensions(filepath.Join(dir, "missing.png"))
	assert.Equal(t, FallbackWidth, w)
	assert.Equal(t, FallbackHeight, h)
}
