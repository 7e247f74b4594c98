package cli

import (
	"context"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/park285/pgn2gif/internal/config"
)

func testRunOptions(t *testing.T, record string) config.Options {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	dir := t.TempDir()
	pgnPath := filepath.Join(dir, "game.pgn")
	if err := os.WriteFile(pgnPath, []byte(record), 0o644); err != nil {
		t.Fatalf("write record: %v", err)
	}

	opts := config.Default()
	opts.RecordPath = pgnPath
	opts.OutputPath = filepath.Join(dir, "game.gif")
	opts.BoardSize = 120
	return opts
}

func TestRunTwoMoveRecord(t *testing.T) {
	opts := testRunOptions(t, "1. e4 e5 *")
	opts.Workers = 2

	if err := run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(opts.OutputPath)
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer f.Close()

	decoded, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode artifact: %v", err)
	}
	if len(decoded.Image) != 3 {
		t.Fatalf("decoded %d frames, want 3 (initial + 2 plies)", len(decoded.Image))
	}
	if decoded.LoopCount != 0 {
		t.Fatalf("LoopCount = %d, want 0 (infinite)", decoded.LoopCount)
	}
	if got := decoded.Image[0].Bounds(); got != image.Rect(0, 0, 120, 120) {
		t.Fatalf("first frame bounds = %v, want 120x120", got)
	}
	// Later frames are delta-stored and must stay inside the canvas.
	for i, img := range decoded.Image[1:] {
		if !img.Bounds().In(image.Rect(0, 0, 120, 120)) {
			t.Fatalf("frame %d bounds %v outside canvas", i+1, img.Bounds())
		}
	}
}

func TestRunMalformedRecordWritesNothing(t *testing.T) {
	opts := testRunOptions(t, "1. qq9 *")

	if err := run(context.Background(), opts); err == nil {
		t.Fatalf("expected failure for malformed record")
	}
	if _, err := os.Stat(opts.OutputPath); !os.IsNotExist(err) {
		t.Fatalf("no artifact should exist after a failed run")
	}
}

func TestRunEmptyRecordWithoutInitialFails(t *testing.T) {
	opts := testRunOptions(t, "")
	opts.IncludeInitialPosition = false

	if err := run(context.Background(), opts); err == nil {
		t.Fatalf("expected failure: nothing to encode")
	}
	if _, err := os.Stat(opts.OutputPath); !os.IsNotExist(err) {
		t.Fatalf("no artifact should exist after a failed run")
	}
}
