// Package gifenc assembles ordered raster frames into a looping GIF.
// Quantization and delta-frame storage happen here; the bitstream itself
// is produced by the standard encoder.
package gifenc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultFrameDuration and DefaultFrameRate mirror the documented
	// option defaults; Delay uses them to detect an explicit override.
	DefaultFrameDuration = 1.0
	DefaultFrameRate     = 1.0

	minPaletteSize = 2
	maxPaletteSize = 256
)

// EncodeError reports an encoding or output I/O failure.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return "encode animation: " + e.Err.Error() }
func (e *EncodeError) Unwrap() error { return e.Err }

// Options is the encoding configuration.
type Options struct {
	// LoopCount follows the GIF convention: 0 loops forever.
	LoopCount int
	// FrameDuration is seconds per frame.
	FrameDuration float64
	// FrameRate is frames per second; FrameRateExplicit records whether
	// the caller set it, as opposed to it holding the default.
	FrameRate         float64
	FrameRateExplicit bool
	// PaletteSize is the number of colors each frame is quantized to.
	PaletteSize int
	// DeltaFrames stores only the changed rectangle of each frame after
	// the first.
	DeltaFrames bool
}

// Delay resolves the per-frame delay in seconds. Duration and fps can
// both be supplied; the precedence is fixed so every run resolves them
// identically: fps wins only when it was explicitly set to a non-default
// value, otherwise duration governs.
func (o Options) Delay() float64 {
	if o.FrameRateExplicit && o.FrameRate > 0 && o.FrameRate != DefaultFrameRate {
		return 1 / o.FrameRate
	}
	if o.FrameDuration > 0 {
		return o.FrameDuration
	}
	if o.FrameRate > 0 {
		return 1 / o.FrameRate
	}
	return DefaultFrameDuration
}

// Encode writes the frame sequence to w as an animated GIF. The frame
// order is preserved exactly; every frame gets the same resolved delay.
func Encode(w io.Writer, frames []*image.RGBA, opts Options) error {
	if len(frames) == 0 {
		return &EncodeError{Err: errors.New("empty frame sequence")}
	}
	if opts.PaletteSize < minPaletteSize || opts.PaletteSize > maxPaletteSize {
		return &EncodeError{Err: fmt.Errorf("palette size %d out of range [%d,%d]", opts.PaletteSize, minPaletteSize, maxPaletteSize)}
	}

	delayCS := int(math.Round(opts.Delay() * 100))
	if delayCS < 1 {
		delayCS = 1
	}

	anim := &gif.GIF{LoopCount: opts.LoopCount}
	quantizer := quantize.MedianCutQuantizer{}

	for i, fr := range frames {
		rect := fr.Bounds()
		if opts.DeltaFrames && i > 0 {
			rect = changedRect(frames[i-1], fr)
		}

		pal := quantizer.Quantize(make(color.Palette, 0, opts.PaletteSize), fr.SubImage(rect))
		pimg := image.NewPaletted(rect, pal)
		draw.Draw(pimg, rect, fr, rect.Min, draw.Src)

		anim.Image = append(anim.Image, pimg)
		anim.Delay = append(anim.Delay, delayCS)
		anim.Disposal = append(anim.Disposal, gif.DisposalNone)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return &EncodeError{Err: err}
	}
	return nil
}

// WriteFile encodes to a uuid-suffixed temporary file next to path and
// renames it into place, so a failed run never leaves a partial artifact
// at the destination.
func WriteFile(path string, frames []*image.RGBA, opts Options, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(frames) == 0 {
		return &EncodeError{Err: errors.New("empty frame sequence")}
	}

	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	f, err := os.Create(tmp)
	if err != nil {
		return &EncodeError{Err: err}
	}

	if err := Encode(f, frames, opts); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &EncodeError{Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &EncodeError{Err: err}
	}

	logger.Info("animation written",
		zap.String("path", path),
		zap.Int("frames", len(frames)),
		zap.Float64("frame_delay_sec", opts.Delay()),
		zap.Int("loop_count", opts.LoopCount),
	)
	return nil
}

// changedRect returns the bounding rectangle of pixels that differ
// between two same-sized frames. Identical frames collapse to a single
// pixel in the top-left corner.
func changedRect(prev, cur *image.RGBA) image.Rectangle {
	b := cur.Bounds()
	if prev.Bounds() != b {
		return b
	}

	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		po := prev.PixOffset(b.Min.X, y)
		co := cur.PixOffset(b.Min.X, y)
		rowLen := b.Dx() * 4
		if bytes.Equal(prev.Pix[po:po+rowLen], cur.Pix[co:co+rowLen]) {
			continue
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			o := cur.PixOffset(x, y)
			p := prev.PixOffset(x, y)
			if !bytes.Equal(cur.Pix[o:o+4], prev.Pix[p:p+4]) {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				maxY = y
			}
		}
	}

	if minX > maxX || minY > maxY {
		return image.Rect(b.Min.X, b.Min.Y, b.Min.X+1, b.Min.Y+1)
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
