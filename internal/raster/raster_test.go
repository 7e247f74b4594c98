package raster

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/park285/pgn2gif/internal/frame"
	"github.com/park285/pgn2gif/internal/game"
	"github.com/park285/pgn2gif/internal/theme"
)

func testDescriptors(t *testing.T, opts frame.Options) []frame.Descriptor {
	t.Helper()
	positions, err := game.NewLoader(true, nil).Load(strings.NewReader("1. e4 e5 *"))
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	return frame.BuildAll(positions, opts)
}

func testOptions() frame.Options {
	return frame.Options{
		Orientation:       frame.WhiteDown,
		Size:              160,
		Coordinates:       true,
		HighlightLastMove: true,
		Theme:             theme.Default(),
	}
}

func TestRenderFrameSize(t *testing.T) {
	descs := testDescriptors(t, testOptions())
	img, err := Render(descs[0])
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 160 || h != 160 {
		t.Fatalf("frame size = %dx%d, want 160x160", w, h)
	}
}

func TestRenderAllMatchesSequentialOrder(t *testing.T) {
	descs := testDescriptors(t, testOptions())

	single, err := RenderAll(context.Background(), descs, 1, nil)
	if err != nil {
		t.Fatalf("RenderAll workers=1: %v", err)
	}
	parallel, err := RenderAll(context.Background(), descs, 4, nil)
	if err != nil {
		t.Fatalf("RenderAll workers=4: %v", err)
	}

	if len(single) != len(descs) || len(parallel) != len(descs) {
		t.Fatalf("frame counts = %d/%d, want %d", len(single), len(parallel), len(descs))
	}
	for i := range single {
		if !bytes.Equal(single[i].Pix, parallel[i].Pix) {
			t.Fatalf("frame %d differs between worker counts", i)
		}
	}
}

func TestRenderOrientationFlip(t *testing.T) {
	white := testDescriptors(t, testOptions())

	opts := testOptions()
	opts.Orientation = frame.BlackDown
	black := testDescriptors(t, opts)

	w, err := Render(white[1])
	if err != nil {
		t.Fatalf("render white-down: %v", err)
	}
	b, err := Render(black[1])
	if err != nil {
		t.Fatalf("render black-down: %v", err)
	}
	if bytes.Equal(w.Pix, b.Pix) {
		t.Fatalf("expected different images for flipped orientations")
	}
}

func TestRenderHighlightChangesOutput(t *testing.T) {
	withHighlight := testDescriptors(t, testOptions())

	opts := testOptions()
	opts.HighlightLastMove = false
	plain := testDescriptors(t, opts)

	a, err := Render(withHighlight[1])
	if err != nil {
		t.Fatalf("render highlighted: %v", err)
	}
	b, err := Render(plain[1])
	if err != nil {
		t.Fatalf("render plain: %v", err)
	}
	if bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("highlight had no visible effect")
	}
}

func TestRenderAllReportsFailingFrame(t *testing.T) {
	descs := testDescriptors(t, testOptions())
	descs[1].Size = 0 // too small to hold a board

	_, err := RenderAll(context.Background(), descs, 2, nil)
	if err == nil {
		t.Fatalf("expected render failure")
	}
	var rerr *RenderError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RenderError, got %T: %v", err, err)
	}
	if rerr.Frame != 1 {
		t.Fatalf("failing frame = %d, want 1", rerr.Frame)
	}
}
