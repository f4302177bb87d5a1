package wallpaper

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
)

// Fallback dimensions when the header cannot be read.
const (
	FallbackWidth  = 1920
	FallbackHeight = 1080
)

// sniffLimit bounds how much of a file is read looking for a JPEG SOF.
// EXIF segments are capped at 64KiB so this leaves plenty of room.
const sniffLimit = 512 << 10

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// SniffDimensions reads the pixel size from a PNG IHDR chunk or the first
// JPEG SOF segment. ok is false for any other input.
func SniffDimensions(b []byte) (width, height int, ok bool) {
	switch {
	case bytes.HasPrefix(b, pngMagic):
		return sniffPNG(b)
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8:
		return sniffJPEG(b)
	default:
		return 0, 0, false
	}
}

func sniffPNG(b []byte) (int, int, bool) {
	// magic(8) length(4) "IHDR"(4) width(4) height(4)
	if len(b) < 24 || string(b[12:16]) != "IHDR" {
		return 0, 0, false
	}
	w := binary.BigEndian.Uint32(b[16:20])
	h := binary.BigEndian.Uint32(b[20:24])
	if w == 0 || h == 0 || w > 1<<31-1 || h > 1<<31-1 {
		return 0, 0, false
	}
	return int(w), int(h), true
}

func sniffJPEG(b []byte) (int, int, bool) {
	i := 2
	for i+1 < len(b) {
		if b[i] != 0xFF {
			return 0, 0, false
		}
		marker := b[i+1]
		switch {
		case marker == 0xFF:
			// fill byte
			i++
			continue
		case marker == 0x01 || (marker >= 0xD0 && marker <= 0xD8):
			// standalone, no length
			i += 2
			continue
		case marker == 0xD9 || marker == 0xDA:
			// EOI or start of scan before any frame header
			return 0, 0, false
		}

		if i+4 > len(b) {
			return 0, 0, false
		}
		length := int(binary.BigEndian.Uint16(b[i+2 : i+4]))
		if length < 2 {
			return 0, 0, false
		}

		if isSOF(marker) {
			// length(2) precision(1) height(2) width(2)
			if i+9 > len(b) {
				return 0, 0, false
			}
			h := int(binary.BigEndian.Uint16(b[i+5 : i+7]))
			w := int(binary.BigEndian.Uint16(b[i+7 : i+9]))
			if w == 0 || h == 0 {
				return 0, 0, false
			}
			return w, h, true
		}

		i += 2 + length
	}
	return 0, 0, false
}

// isSOF reports whether marker starts a frame. C4, C8 and CC share the
// range but are DHT, JPG and DAC.
func isSOF(marker byte) bool {
	return marker >= 0xC0 && marker <= 0xCF &&
		marker != 0xC4 && marker != 0xC8 && marker != 0xCC
}

// imageDimensions sniffs the file header at path and falls back to
// 1920x1080 when that fails.
func imageDimensions(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return FallbackWidth, FallbackHeight
	}
	defer f.Close()

	head, err := io.ReadAll(io.LimitReader(f, sniffLimit))
	if err != nil {
		return FallbackWidth, FallbackHeight
	}
	if w, h, ok := SniffDimensions(head); ok {
		return w, h
	}
	return FallbackWidth, FallbackHeight
}
