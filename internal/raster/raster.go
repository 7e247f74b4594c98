// Package raster turns frame descriptors into fixed-size RGBA images.
// Render is a pure function of its descriptor, which is what allows the
// worker pool in RenderAll to process frames in any completion order.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	nchess "github.com/corentings/chess/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/park285/pgn2gif/internal/frame"
)

const boardSquares = 8

// referenceMargin scales the coordinate gutter with board size: 15px on
// the stock 400px board.
const referenceMargin = 15.0 / 400.0

// Render draws one descriptor into a Size x Size image: squares, the
// last-move highlight, pieces, and optional coordinate labels.
func Render(d frame.Descriptor) (*image.RGBA, error) {
	margin := 0
	if d.Coordinates {
		margin = int(float64(d.Size) * referenceMargin)
	}
	square := (d.Size - 2*margin) / boardSquares
	if square <= 0 {
		return nil, fmt.Errorf("board size %d too small", d.Size)
	}
	origin := image.Point{X: margin, Y: margin}

	img := image.NewRGBA(image.Rect(0, 0, d.Size, d.Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(d.Theme.LightSquare), image.Point{}, draw.Src)

	drawSquares(img, d, square, origin)
	if d.Highlight != nil {
		drawOverlay(img, squareRect(d.Highlight.From, d.Orientation, square, origin), d.Theme.Highlight)
		drawOverlay(img, squareRect(d.Highlight.To, d.Orientation, square, origin), d.Theme.Highlight)
	}
	if err := drawPieces(img, d, square, origin); err != nil {
		return nil, err
	}
	if d.Coordinates {
		drawCoordinates(img, d, square, origin, margin)
	}
	return img, nil
}

func rankAt(row int, o frame.Orientation) nchess.Rank {
	if o == frame.BlackDown {
		return nchess.Rank(row)
	}
	return nchess.Rank(boardSquares - 1 - row)
}

func fileAt(col int, o frame.Orientation) nchess.File {
	if o == frame.BlackDown {
		return nchess.File(boardSquares - 1 - col)
	}
	return nchess.File(col)
}

// squareRect places a square on the canvas honoring orientation: flipping
// the board flips rows and columns together, so the absolute mapping of
// pieces to squares is unchanged.
func squareRect(sq nchess.Square, o frame.Orientation, square int, origin image.Point) image.Rectangle {
	row := boardSquares - 1 - int(sq.Rank())
	col := int(sq.File())
	if o == frame.BlackDown {
		row = int(sq.Rank())
		col = boardSquares - 1 - int(sq.File())
	}
	x := origin.X + col*square
	y := origin.Y + row*square
	return image.Rect(x, y, x+square, y+square)
}

func drawSquares(dst draw.Image, d frame.Descriptor, square int, origin image.Point) {
	for row := 0; row < boardSquares; row++ {
		for col := 0; col < boardSquares; col++ {
			sq := nchess.NewSquare(fileAt(col, d.Orientation), rankAt(row, d.Orientation))
			clr := d.Theme.LightSquare
			if (int(sq.File())+int(sq.Rank()))%2 == 0 {
				clr = d.Theme.DarkSquare
			}
			x := origin.X + col*square
			y := origin.Y + row*square
			draw.Draw(dst, image.Rect(x, y, x+square, y+square), image.NewUniform(clr), image.Point{}, draw.Src)
		}
	}
}

func drawPieces(dst draw.Image, d frame.Descriptor, square int, origin image.Point) error {
	for row := 0; row < boardSquares; row++ {
		for col := 0; col < boardSquares; col++ {
			sq := nchess.NewSquare(fileAt(col, d.Orientation), rankAt(row, d.Orientation))
			piece, ok := d.Pieces[sq]
			if !ok || piece == nchess.NoPiece {
				continue
			}
			img, err := pieceImage(piece, square)
			if err != nil {
				return err
			}
			rect := squareRect(sq, d.Orientation, square, origin)
			draw.Draw(dst, rect, img, image.Point{}, draw.Over)
		}
	}
	return nil
}

func drawOverlay(dst draw.Image, rect image.Rectangle, clr color.Color) {
	draw.Draw(dst, rect, image.NewUniform(clr), image.Point{}, draw.Over)
}

func drawCoordinates(dst draw.Image, d frame.Descriptor, square int, origin image.Point, margin int) {
	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(d.Theme.Coordinate),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()
	boardEndY := origin.Y + boardSquares*square

	for row := 0; row < boardSquares; row++ {
		label := rankAt(row, d.Orientation).String()
		centerY := origin.Y + row*square + square/2
		drawCentered(drawer, label, margin/2, centerY+ascent/2)
	}
	for col := 0; col < boardSquares; col++ {
		label := fileAt(col, d.Orientation).String()
		centerX := origin.X + col*square + square/2
		drawCentered(drawer, label, centerX, boardEndY+margin/2+ascent/2)
	}
}

func drawCentered(drawer *font.Drawer, text string, centerX, baseline int) {
	if text == "" {
		return
	}
	width := drawer.MeasureString(text).Round()
	drawer.Dot = fixed.P(centerX-width/2, baseline)
	drawer.DrawString(text)
}
