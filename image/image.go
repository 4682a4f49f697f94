// Package image renders a word card as a PNG-able image: the expression
// on top, its kana reading underneath.
package image

import (
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Renderer draws cards with a single configured font, which must cover
// the Japanese ranges.
type Renderer struct {
	fnt *opentype.Font
}

func NewRenderer(fontPath string) (*Renderer, error) {
	b, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, err
	}

	col, err := opentype.ParseCollection(b)
	if err != nil {
		return nil, err
	}
	fnt, err := col.Font(0)
	if err != nil {
		return nil, err
	}

	return &Renderer{fnt: fnt}, nil
}

func (r *Renderer) face(size float64) (font.Face, error) {
	return opentype.NewFace(r.fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Image draws expression over reading, sized to the requested height
// with the width following from the longer of the two lines.
func (r *Renderer) Image(height int, expression, reading string, fg, bg color.NRGBA) (*image.NRGBA, error) {
	startX := height / 8
	stopX := height / 8
	startY := height / 8
	stopY := height / 8
	padding := height / 8
	rest := height - startY - padding - stopY
	if rest < 0 {
		rest = 0
	}

	exprSize := float64(rest) / 2
	readSize := float64(rest) / 4

	exprFace, err := r.face(exprSize)
	if err != nil {
		return nil, err
	}
	readFace, err := r.face(readSize)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	src := image.NewUniform(fg)

	do := func(startX1, startX2 int) (int, int) {
		dwr := font.Drawer{
			Dst:  img,
			Src:  src,
			Face: exprFace,
		}

		dwr.Dot = fixed.P(startX1, startY+int(exprSize))
		dwr.DrawString(expression)
		width1 := int(dwr.Dot.X>>6) - startX

		dwr.Face = readFace
		dwr.Dot = fixed.P(startX2, startY+padding+int(exprSize)+int(readSize))
		dwr.DrawString(reading)
		width2 := int(dwr.Dot.X>>6) - startX
		return width1, width2
	}

	w1, w2 := do(startX, startX)
	w := w1 + startX + stopX
	startX1, startX2 := startX, startX+(w1-w2)/2
	if w2 > w {
		w = w2 + startX + stopX
		startX1, startX2 = startX+(w2-w1)/2, startX
	}

	img = image.NewNRGBA(image.Rect(0, 0, w, height))

	if bg.A != 0 {
		for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
			for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
				o := img.PixOffset(x, y)
				img.Pix[o+0] = bg.R
				img.Pix[o+1] = bg.G
				img.Pix[o+2] = bg.B
				img.Pix[o+3] = bg.A
			}
		}
	}
	do(startX1, startX2)

	return img, nil
}
