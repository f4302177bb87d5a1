package wallpaper

import "math"

// ScaleToFit returns the uniform scale that fits an iw x ih image inside a
// dw x dh display while keeping its aspect ratio.
func ScaleToFit(dw, dh, iw, ih int) float64 {
	sx := float64(dw) / float64(iw)
	sy := float64(dh) / float64(ih)
	return math.Min(sx, sy)
}

// CenterOffsets returns the top-left position that centers the image. The
// offsets go negative when the image is larger than the display.
func CenterOffsets(dw, dh, iw, ih int) (x, y int) {
	return (dw - iw) / 2, (dh - ih) / 2
}

// TileCount returns how many copies of the image cover the display on each
// axis. Image sizes must be positive.
func TileCount(dw, dh, iw, ih int) (x, y int) {
	x = int(math.Ceil(float64(dw) / float64(iw)))
	y = int(math.Ceil(float64(dh) / float64(ih)))
	return x, y
}

// Placement is where and how an image lands on a display.
type Placement struct {
	Mode Mode
	// ScaleX and ScaleY only differ for Stretch.
	ScaleX  float64
	ScaleY  float64
	Width   int
	Height  int
	OffsetX int
	OffsetY int
	TilesX  int
	TilesY  int
}

// Place computes the placement of an iw x ih image on a dw x dh display.
// ok is false when any size is not positive.
func Place(mode Mode, dw, dh, iw, ih int) (p Placement, ok bool) {
	if dw <= 0 || dh <= 0 || iw <= 0 || ih <= 0 {
		return Placement{Mode: mode}, false
	}

	p = Placement{Mode: mode, ScaleX: 1, ScaleY: 1, Width: iw, Height: ih, TilesX: 1, TilesY: 1}
	switch mode {
	case Stretch:
		p.ScaleX = float64(dw) / float64(iw)
		p.ScaleY = float64(dh) / float64(ih)
		p.Width, p.Height = dw, dh
	case Center:
		p.OffsetX, p.OffsetY = CenterOffsets(dw, dh, iw, ih)
	case Tile:
		p.TilesX, p.TilesY = TileCount(dw, dh, iw, ih)
	default:
		s := ScaleToFit(dw, dh, iw, ih)
		p.Mode = Scale
		p.ScaleX, p.ScaleY = s, s
		p.Width = int(float64(iw) * s)
		p.Height = int(float64(ih) * s)
		p.OffsetX, p.OffsetY = CenterOffsets(dw, dh, p.Width, p.Height)
	}
	return p, true
}
