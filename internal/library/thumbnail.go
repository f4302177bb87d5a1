package library

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ThumbnailWidth is the width of generated thumbnails in pixels.
const ThumbnailWidth = 300

// Thumbnails stores downscaled JPEG copies of wallpapers, indexed by the
// MD5 of the original path.
type Thumbnails struct {
	Dir string
}

// NewThumbnails uses <UserCacheDir>/wayper/thumbnails.
func NewThumbnails() (*Thumbnails, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return &Thumbnails{Dir: filepath.Join(cacheDir, "wayper", "thumbnails")}, nil
}

// PathFor returns where the thumbnail of original is stored.
func (t *Thumbnails) PathFor(original string) string {
	hash := md5.Sum([]byte(original))
	return filepath.Join(t.Dir, hex.EncodeToString(hash[:])+".jpg")
}

// Cached returns the thumbnail path if it was generated before.
func (t *Thumbnails) Cached(original string) (string, bool) {
	p := t.PathFor(original)
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

// Get returns the thumbnail of original, generating it when missing.
func (t *Thumbnails) Get(original string) (string, error) {
	if p, ok := t.Cached(original); ok {
		return p, nil
	}

	if err := os.MkdirAll(t.Dir, 0755); err != nil {
		return "", err
	}

	file, err := os.Open(original)
	if err != nil {
		return "", err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", original, err)
	}

	// Never upscale; height 0 keeps the aspect ratio
	width := uint(min(ThumbnailWidth, img.Bounds().Dx()))
	m := resize.Resize(width, 0, img, resize.Lanczos3)

	thumbPath := t.PathFor(original)
	tmp := thumbPath + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if err := jpeg.Encode(out, m, nil); err != nil {
		out.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return thumbPath, os.Rename(tmp, thumbPath)
}
