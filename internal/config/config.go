// Package config carries the full option surface of the converter and
// its validation rules. Flag binding lives in the cli package.
package config

import (
	"errors"
	"fmt"

	"github.com/park285/pgn2gif/internal/frame"
)

// Options covers every knob the converter exposes.
type Options struct {
	RecordPath string
	OutputPath string

	IncludeInitialPosition bool
	HighlightLastMove      bool
	Orientation            string
	BoardSize              int
	ShowCoordinates        bool
	StylePath              string

	LoopCount     int
	FrameDuration float64
	FrameRate     float64
	// FrameRateExplicit is set by the CLI when --fps was supplied, so
	// the duration-vs-fps precedence can be resolved deterministically.
	FrameRateExplicit bool
	PaletteSize       int
	DeltaFrames       bool

	Workers int
}

// Default returns the documented defaults. Paths have no default and
// must be supplied.
func Default() Options {
	return Options{
		IncludeInitialPosition: true,
		HighlightLastMove:      true,
		Orientation:            "white",
		BoardSize:              400,
		ShowCoordinates:        true,
		LoopCount:              0,
		FrameDuration:          1.0,
		FrameRate:              1.0,
		PaletteSize:            64,
		DeltaFrames:            true,
		Workers:                1,
	}
}

func (o *Options) Validate() error {
	if o.RecordPath == "" {
		return errors.New("pgn path is required")
	}
	if o.OutputPath == "" {
		return errors.New("gif path is required")
	}
	if _, err := frame.ParseOrientation(o.Orientation); err != nil {
		return err
	}
	if o.BoardSize < 8 {
		return fmt.Errorf("board size must be at least 8, got %d", o.BoardSize)
	}
	if o.LoopCount < 0 {
		return fmt.Errorf("loop count must not be negative, got %d", o.LoopCount)
	}
	if o.FrameDuration <= 0 {
		return fmt.Errorf("frame duration must be positive, got %v", o.FrameDuration)
	}
	if o.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %v", o.FrameRate)
	}
	if o.PaletteSize < 2 || o.PaletteSize > 256 {
		return fmt.Errorf("palette size must be in [2,256], got %d", o.PaletteSize)
	}
	if o.Workers < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", o.Workers)
	}
	return nil
}
