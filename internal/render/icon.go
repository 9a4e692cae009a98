package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// DecodeARGBIcon interprets raw as a sequence of big-endian ARGB32 pixels,
// the wire format _NET_WM_ICON delivers windows icons in, and returns it as
// an image.Image ready for scaling.
func DecodeARGBIcon(raw []uint32, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := raw[y*w+x]
			a := uint8(px >> 24)
			r := uint8(px >> 16)
			g := uint8(px >> 8)
			b := uint8(px)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img
}

// ScaleIcon resizes src to the fixed IconSize x IconSize tab icon square
// using a bilinear scaler (golang.org/x/image/draw; stdlib image/draw has
// no scaling kernel, only alpha compositing).
func ScaleIcon(src image.Image) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, IconSize, IconSize))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
