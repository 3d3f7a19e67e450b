package console

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"goprelude/pkg/grid"
)

var (
	// Face is the fixed-width font used for every cell.
	Face = basicfont.Face7x13

	Foreground = color.RGBA{0xC2, 0xC3, 0xC7, 0xFF}
	Background = color.RGBA{0x00, 0x00, 0x00, 0xFF}
)

// CellSize returns the pixel size of one character cell.
func CellSize() (w, h int) {
	return Face.Advance, Face.Height
}

// PixelSize returns the pixel size of the whole screen.
func PixelSize(s *Screen) (w, h int) {
	cw, ch := CellSize()
	return s.cols * cw, s.rows * ch
}

// Render draws the screen into dst, starting at dst's origin.
func Render(s *Screen, dst draw.Image) {
	w, h := PixelSize(s)
	origin := dst.Bounds().Min
	draw.Draw(dst, image.Rect(origin.X, origin.Y, origin.X+w, origin.Y+h), image.NewUniform(Background), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(Foreground),
		Face: Face,
	}
	cw, ch := CellSize()
	cells := s.Cells()
	for i, b := range cells {
		if b == blank {
			continue
		}
		x, y := grid.GetGridCoords(i, s.cols)
		d.Dot = fixed.P(origin.X+x*cw, origin.Y+y*ch+Face.Ascent)
		d.DrawBytes(cells[i : i+1])
	}
}

// Image renders the screen into a new RGBA image.
func Image(s *Screen) *image.RGBA {
	w, h := PixelSize(s)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	Render(s, img)
	return img
}

// SaveScreenshot encodes the screen as a PNG and writes it to filename.
func SaveScreenshot(s *Screen, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, Image(s))
}
