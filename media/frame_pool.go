package media

import (
	"image"
	"sync"
)

// framePool recycles RGBA buffers for decoded frames that were never
// published, which happens whenever a seek or close abandons a decoder.

var framePool sync.Pool // stores *image.RGBA

// acquireFrame returns a reusable RGBA image sized to rect with Stride
// width*4 and a Pix slice of exactly width*height*4 bytes.
func acquireFrame(rect image.Rectangle) *image.RGBA {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := framePool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		img = &image.RGBA{Pix: make([]byte, needed), Stride: w * 4, Rect: rect}
	} else {
		img.Stride = w * 4
		img.Rect = rect
		img.Pix = img.Pix[:needed]
	}
	return img
}

// recycleFrame returns img to the pool. The caller must not touch it afterwards.
func recycleFrame(img *image.RGBA) {
	if img == nil || img.Pix == nil {
		return
	}
	framePool.Put(img)
}
